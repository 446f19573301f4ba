package event

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	OrderCreated      Type = "pedido.criado"
	OrderUpdated      Type = "pedido.atualizado"
	OrderDeleted      Type = "pedido.removido"
	PaymentRegistered Type = "pagamento.registrado"
)

// Event é um fato de domínio publicado depois do commit da transação
type Event struct {
	ID         string      `json:"id"`
	Type       Type        `json:"tipo"`
	OrderID    int64       `json:"idpedido"`
	OccurredAt time.Time   `json:"ocorrido_em"`
	Payload    interface{} `json:"dados,omitempty"`
}

func New(eventType Type, orderID int64, payload interface{}) Event {
	return Event{
		ID:         uuid.NewString(),
		Type:       eventType,
		OrderID:    orderID,
		OccurredAt: time.Now().UTC(),
		Payload:    payload,
	}
}

// Publisher envia eventos para fora do processo
type Publisher interface {
	Publish(ctx context.Context, evt Event) error
	Close() error
}
