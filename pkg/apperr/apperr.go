// Package apperr classifies backend failures into the buckets the API
// reports to users: integrity violations, permission denials, schema
// problems, connectivity, auth and a generic fallback. Postgres failures
// are matched on their SQLSTATE code via pgconn, not on message text.
package apperr

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type Kind int

const (
	KindUnknown Kind = iota
	KindNotFound
	KindInvalid
	KindDuplicate       // unique violation, SQLSTATE 23505
	KindReferenced      // foreign key violation, SQLSTATE 23503
	KindPermission      // insufficient privilege / RLS, SQLSTATE 42501
	KindSchema          // undefined table, SQLSTATE 42P01
	KindPayloadTooLarge // HTTP 413
	KindNetwork
	KindAuth
	KindState // invalid lifecycle transition
)

// Error carries the classified kind together with the failed operation.
type Error struct {
	Kind Kind
	Op   string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Op
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// New wraps err with an explicit kind.
func New(kind Kind, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Classify inspects err and returns its kind. Explicitly wrapped errors win;
// otherwise pg error codes, jwt sentinels and net errors are checked in turn.
func Classify(err error) Kind {
	if err == nil {
		return KindUnknown
	}

	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505":
			return KindDuplicate
		case "23503":
			return KindReferenced
		case "42501":
			return KindPermission
		case "42P01":
			return KindSchema
		}
		if strings.Contains(pgErr.Message, "row level security") {
			return KindPermission
		}
		return KindUnknown
	}

	switch {
	case errors.Is(err, jwt.ErrTokenExpired),
		errors.Is(err, jwt.ErrTokenMalformed),
		errors.Is(err, jwt.ErrSignatureInvalid):
		return KindAuth
	case errors.Is(err, context.DeadlineExceeded):
		return KindNetwork
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return KindNetwork
	}

	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "network"), strings.Contains(msg, "connection refused"):
		return KindNetwork
	case strings.Contains(msg, "jwt"):
		return KindAuth
	case strings.Contains(msg, "not found"):
		return KindNotFound
	}

	return KindUnknown
}

// HTTPStatus maps a kind to the response status code.
func HTTPStatus(kind Kind) int {
	switch kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalid, KindState:
		return http.StatusBadRequest
	case KindDuplicate, KindReferenced:
		return http.StatusConflict
	case KindPermission:
		return http.StatusForbidden
	case KindAuth:
		return http.StatusUnauthorized
	case KindPayloadTooLarge:
		return http.StatusRequestEntityTooLarge
	case KindNetwork:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// UserMessage returns the localized message shown to end users.
func UserMessage(kind Kind) string {
	switch kind {
	case KindNotFound:
		return "Registro não encontrado"
	case KindInvalid:
		return "Dados inválidos"
	case KindDuplicate:
		return "Registro duplicado"
	case KindReferenced:
		return "Registro em uso por outro recurso"
	case KindPermission:
		return "Você não tem permissão para esta operação"
	case KindSchema:
		return "Erro de configuração do servidor"
	case KindPayloadTooLarge:
		return "Arquivo muito grande"
	case KindNetwork:
		return "Erro de conexão. Tente novamente"
	case KindAuth:
		return "Sessão expirada. Faça login novamente"
	case KindState:
		return "Operação não permitida no estado atual"
	default:
		return "Ocorreu um erro inesperado"
	}
}
