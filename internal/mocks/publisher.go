package mocks

import (
	"context"

	"github.com/diillson/restaurante-api/internal/domain/event"
	"github.com/stretchr/testify/mock"
)

// MockPublisher é um mock para event.Publisher
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(ctx context.Context, evt event.Event) error {
	args := m.Called(ctx, evt)
	return args.Error(0)
}

func (m *MockPublisher) Close() error {
	args := m.Called()
	return args.Error(0)
}

// EventOfType casa qualquer evento do tipo informado em On/AssertCalled
func EventOfType(t event.Type) interface{} {
	return mock.MatchedBy(func(evt event.Event) bool {
		return evt.Type == t
	})
}
