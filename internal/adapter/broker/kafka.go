package broker

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/diillson/restaurante-api/internal/domain/event"
	"github.com/diillson/restaurante-api/pkg/config"
	"github.com/diillson/restaurante-api/pkg/resilience"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher publica eventos de pedidos num tópico Kafka. A chave da
// mensagem é o pedido, o que mantém a ordem dos eventos de um mesmo pedido.
// Com o broker fora do ar o circuit breaker abre e as publicações falham
// imediatamente, sem esperar o timeout de escrita dentro da requisição.
type KafkaPublisher struct {
	writer  messageWriter
	timeout time.Duration
	breaker *resilience.CircuitBreaker
	logger  *zap.Logger
}

func NewKafkaPublisher(cfg config.EventsConfig, recorder resilience.StateRecorder, logger *zap.Logger) *KafkaPublisher {
	timeout := cfg.WriteTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}

	writer := &kafka.Writer{
		Addr:         kafka.TCP(cfg.Brokers...),
		Topic:        cfg.Topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
		MaxAttempts:  3,
		WriteTimeout: timeout,
		ReadTimeout:  timeout,
	}

	return newKafkaPublisher(writer, timeout, recorder, logger)
}

func newKafkaPublisher(writer messageWriter, timeout time.Duration, recorder resilience.StateRecorder, logger *zap.Logger) *KafkaPublisher {
	breaker := resilience.NewCircuitBreaker(resilience.CircuitBreakerConfig{
		Name:            "kafka",
		MaxRequestsFail: 5,
		Timeout:         30 * time.Second,
	}, logger, recorder)

	return &KafkaPublisher{writer: writer, timeout: timeout, breaker: breaker, logger: logger}
}

func (p *KafkaPublisher) Publish(ctx context.Context, evt event.Event) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("falha ao serializar evento: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(fmt.Sprintf("pedido-%d", evt.OrderID)),
		Value: value,
		Time:  evt.OccurredAt,
		Headers: []kafka.Header{
			{Key: "tipo", Value: []byte(evt.Type)},
		},
	}

	err = p.breaker.Execute(ctx, func(ctx context.Context) error {
		ctx, cancel := context.WithTimeout(ctx, p.timeout)
		defer cancel()
		return p.writer.WriteMessages(ctx, msg)
	})
	if err != nil {
		return fmt.Errorf("falha ao publicar evento %s: %w", evt.Type, err)
	}

	p.logger.Debug("Evento publicado",
		zap.String("tipo", string(evt.Type)),
		zap.String("id", evt.ID),
		zap.Int64("pedido", evt.OrderID))
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
