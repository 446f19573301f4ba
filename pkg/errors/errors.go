package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Tipos de erro comuns
var (
	ErrNotFound        = errors.New("recurso não encontrado")
	ErrBadRequest      = errors.New("requisição inválida")
	ErrUnauthorized    = errors.New("não autorizado")
	ErrForbidden       = errors.New("acesso negado")
	ErrInternalServer  = errors.New("erro interno do servidor")
	ErrConflict        = errors.New("conflito de integridade")
	ErrValidation      = errors.New("dados inválidos")
	ErrTooManyRequests = errors.New("muitas requisições")
)

// APIError representa um erro da API com informações adicionais
type APIError struct {
	Code        int         `json:"-"`
	Message     string      `json:"error"`
	Details     interface{} `json:"details,omitempty"`
	OriginalErr error       `json:"-"`
}

// Error implementa a interface error
func (e *APIError) Error() string {
	if e.OriginalErr != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.OriginalErr)
	}
	return e.Message
}

// Unwrap permite usar errors.Is e errors.As
func (e *APIError) Unwrap() error {
	return e.OriginalErr
}

// Is compara pelo código HTTP, assim errors.Is(err, errors.ErrConflict) funciona
// para qualquer APIError de conflito.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.Code == http.StatusNotFound
	case ErrConflict:
		return e.Code == http.StatusConflict
	case ErrValidation, ErrBadRequest:
		return e.Code == http.StatusBadRequest
	case ErrUnauthorized:
		return e.Code == http.StatusUnauthorized
	case ErrForbidden:
		return e.Code == http.StatusForbidden
	case ErrTooManyRequests:
		return e.Code == http.StatusTooManyRequests
	case ErrInternalServer:
		return e.Code == http.StatusInternalServerError
	}
	return false
}

// New cria um novo APIError
func New(code int, message string, err error) *APIError {
	return &APIError{
		Code:        code,
		Message:     message,
		OriginalErr: err,
	}
}

// WithDetails adiciona detalhes ao erro
func (e *APIError) WithDetails(details interface{}) *APIError {
	e.Details = details
	return e
}

// NotFound cria um erro 404
func NotFound(resource string, err error) *APIError {
	message := fmt.Sprintf("%s não encontrado", resource)
	return New(http.StatusNotFound, message, err)
}

// NotFoundf cria um erro 404 com mensagem formatada
func NotFoundf(format string, args ...interface{}) *APIError {
	return New(http.StatusNotFound, fmt.Sprintf(format, args...), nil)
}

// BadRequest cria um erro 400
func BadRequest(message string, err error) *APIError {
	return New(http.StatusBadRequest, message, err)
}

// Validation cria um erro 400 para valores de campo inválidos
func Validation(message string, err error) *APIError {
	if message == "" {
		message = "Dados inválidos"
	}
	return New(http.StatusBadRequest, message, err)
}

// Conflict cria um erro 409
func Conflict(message string, err error) *APIError {
	if message == "" {
		message = "Conflito de integridade"
	}
	return New(http.StatusConflict, message, err)
}

// Unauthorized cria um erro 401
func Unauthorized(message string, err error) *APIError {
	if message == "" {
		message = "Autenticação necessária"
	}
	return New(http.StatusUnauthorized, message, err)
}

// Forbidden cria um erro 403
func Forbidden(message string, err error) *APIError {
	if message == "" {
		message = "Acesso negado"
	}
	return New(http.StatusForbidden, message, err)
}

// TooManyRequests cria um erro 429
func TooManyRequests(message string, err error) *APIError {
	if message == "" {
		message = "Taxa de requisições excedida"
	}
	return New(http.StatusTooManyRequests, message, err)
}

// InternalServer cria um erro 500
func InternalServer(message string, err error) *APIError {
	if message == "" {
		message = "Erro interno do servidor"
	}
	return New(http.StatusInternalServerError, message, err)
}

// FromError converte qualquer erro em APIError. Erros desconhecidos viram 500.
func FromError(err error) *APIError {
	if err == nil {
		return nil
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr
	}
	return InternalServer("", err)
}
