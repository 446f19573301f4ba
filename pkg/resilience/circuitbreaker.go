package resilience

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

// ErrCircuitOpen é retornado quando o circuit breaker está aberto
var ErrCircuitOpen = errors.New("circuit breaker aberto")

// CircuitState representa os estados possíveis do circuit breaker
type CircuitState int

const (
	StateClosed CircuitState = iota
	StateOpen
	StateHalfOpen
)

func (s CircuitState) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateHalfOpen:
		return "half-open"
	default:
		return "closed"
	}
}

// StateRecorder recebe as transições de estado (implementado pelas métricas)
type StateRecorder interface {
	CircuitBreakerStateChanged(name string, open bool)
}

// CircuitBreakerConfig contém a configuração do circuit breaker
type CircuitBreakerConfig struct {
	Name            string
	MaxRequestsFail int           // Falhas consecutivas antes de abrir o circuito
	Timeout         time.Duration // Tempo aberto antes de tentar half-open
	MaxRequests     int           // Requisições simultâneas de teste no estado half-open
}

// CircuitBreaker evita esperar pelo timeout de uma dependência que já está falhando
type CircuitBreaker struct {
	name        string
	maxFails    int
	timeout     time.Duration
	maxRequests int

	mu               sync.Mutex
	state            CircuitState
	failCount        int
	nextAttemptTime  time.Time
	halfOpenRequests int

	now      func() time.Time
	logger   *zap.Logger
	recorder StateRecorder
}

// NewCircuitBreaker cria um novo circuit breaker; recorder pode ser nil
func NewCircuitBreaker(config CircuitBreakerConfig, logger *zap.Logger, recorder StateRecorder) *CircuitBreaker {
	if config.MaxRequestsFail <= 0 {
		config.MaxRequestsFail = 5
	}
	if config.Timeout <= 0 {
		config.Timeout = 30 * time.Second
	}
	if config.MaxRequests <= 0 {
		config.MaxRequests = 1
	}

	return &CircuitBreaker{
		name:        config.Name,
		maxFails:    config.MaxRequestsFail,
		timeout:     config.Timeout,
		maxRequests: config.MaxRequests,
		state:       StateClosed,
		now:         time.Now,
		logger:      logger,
		recorder:    recorder,
	}
}

// Execute executa fn se o circuito permitir e registra o resultado
func (cb *CircuitBreaker) Execute(ctx context.Context, fn func(context.Context) error) error {
	if !cb.allowRequest() {
		return ErrCircuitOpen
	}

	err := fn(ctx)
	cb.recordResult(err == nil)
	return err
}

func (cb *CircuitBreaker) allowRequest() bool {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		return true

	case StateOpen:
		if cb.now().Before(cb.nextAttemptTime) {
			return false
		}
		cb.toHalfOpen()
		cb.halfOpenRequests++
		return true

	case StateHalfOpen:
		if cb.halfOpenRequests >= cb.maxRequests {
			return false
		}
		cb.halfOpenRequests++
		return true
	}

	return false
}

func (cb *CircuitBreaker) recordResult(success bool) {
	cb.mu.Lock()
	defer cb.mu.Unlock()

	switch cb.state {
	case StateClosed:
		if success {
			cb.failCount = 0
			return
		}
		cb.failCount++
		cb.logger.Debug("circuit breaker registrou falha",
			zap.String("name", cb.name),
			zap.Int("failCount", cb.failCount),
			zap.Int("maxFails", cb.maxFails))
		if cb.failCount >= cb.maxFails {
			cb.toOpen()
		}

	case StateHalfOpen:
		if success {
			cb.toClosed()
		} else {
			cb.toOpen()
		}
	}
}

func (cb *CircuitBreaker) toOpen() {
	cb.state = StateOpen
	cb.nextAttemptTime = cb.now().Add(cb.timeout)
	if cb.recorder != nil {
		cb.recorder.CircuitBreakerStateChanged(cb.name, true)
	}
	cb.logger.Warn("circuit breaker aberto",
		zap.String("name", cb.name),
		zap.Time("nextAttempt", cb.nextAttemptTime))
}

func (cb *CircuitBreaker) toHalfOpen() {
	cb.state = StateHalfOpen
	cb.halfOpenRequests = 0
	cb.logger.Info("circuit breaker meio-aberto", zap.String("name", cb.name))
}

func (cb *CircuitBreaker) toClosed() {
	cb.state = StateClosed
	cb.failCount = 0
	if cb.recorder != nil {
		cb.recorder.CircuitBreakerStateChanged(cb.name, false)
	}
	cb.logger.Info("circuit breaker fechado", zap.String("name", cb.name))
}

// State retorna o estado atual do circuit breaker
func (cb *CircuitBreaker) State() CircuitState {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	return cb.state
}

// Reset volta ao estado fechado
func (cb *CircuitBreaker) Reset() {
	cb.mu.Lock()
	defer cb.mu.Unlock()
	cb.toClosed()
}
