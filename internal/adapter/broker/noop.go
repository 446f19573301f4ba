package broker

import (
	"context"

	"github.com/diillson/restaurante-api/internal/domain/event"
	"github.com/diillson/restaurante-api/pkg/config"
	"github.com/diillson/restaurante-api/pkg/resilience"
	"go.uber.org/zap"
)

// NoopPublisher descarta os eventos; usado com events.enabled=false
type NoopPublisher struct{}

func (NoopPublisher) Publish(context.Context, event.Event) error { return nil }

func (NoopPublisher) Close() error { return nil }

// NewPublisher escolhe o publicador conforme a configuração
func NewPublisher(cfg config.EventsConfig, recorder resilience.StateRecorder, logger *zap.Logger) event.Publisher {
	if !cfg.Enabled {
		logger.Info("Publicação de eventos desabilitada")
		return NoopPublisher{}
	}

	logger.Info("Publicando eventos no Kafka",
		zap.Strings("brokers", cfg.Brokers),
		zap.String("topic", cfg.Topic))
	return NewKafkaPublisher(cfg, recorder, logger)
}
