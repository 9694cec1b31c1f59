package apperr

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

func TestClassifyPgErrorCodes(t *testing.T) {
	cases := []struct {
		code string
		want Kind
	}{
		{"23505", KindDuplicate},
		{"23503", KindReferenced},
		{"42501", KindPermission},
		{"42P01", KindSchema},
		{"57014", KindUnknown},
	}

	for _, tc := range cases {
		err := fmt.Errorf("exec insert: %w", &pgconn.PgError{Code: tc.code})
		if got := Classify(err); got != tc.want {
			t.Errorf("Classify(SQLSTATE %s) = %v, want %v", tc.code, got, tc.want)
		}
	}
}

func TestClassifyRowLevelSecurity(t *testing.T) {
	err := &pgconn.PgError{Code: "42000", Message: "new row violates row level security policy"}
	if got := Classify(err); got != KindPermission {
		t.Fatalf("Classify = %v, want KindPermission", got)
	}
}

func TestClassifyWrappedKindWins(t *testing.T) {
	inner := &pgconn.PgError{Code: "23505"}
	err := New(KindState, "confirm booking", inner)
	if got := Classify(fmt.Errorf("handler: %w", err)); got != KindState {
		t.Fatalf("Classify = %v, explicit kind must win over pg code", got)
	}
}

func TestClassifySentinels(t *testing.T) {
	if got := Classify(jwt.ErrTokenExpired); got != KindAuth {
		t.Fatalf("Classify(jwt expired) = %v, want KindAuth", got)
	}
	if got := Classify(context.DeadlineExceeded); got != KindNetwork {
		t.Fatalf("Classify(deadline) = %v, want KindNetwork", got)
	}
	if got := Classify(errors.New("booking xyz not found")); got != KindNotFound {
		t.Fatalf("Classify(not found) = %v, want KindNotFound", got)
	}
	if got := Classify(errors.New("connection refused")); got != KindNetwork {
		t.Fatalf("Classify(refused) = %v, want KindNetwork", got)
	}
}

func TestHTTPStatusMapping(t *testing.T) {
	cases := []struct {
		kind Kind
		want int
	}{
		{KindNotFound, http.StatusNotFound},
		{KindInvalid, http.StatusBadRequest},
		{KindState, http.StatusBadRequest},
		{KindDuplicate, http.StatusConflict},
		{KindReferenced, http.StatusConflict},
		{KindPermission, http.StatusForbidden},
		{KindAuth, http.StatusUnauthorized},
		{KindPayloadTooLarge, http.StatusRequestEntityTooLarge},
		{KindNetwork, http.StatusServiceUnavailable},
		{KindUnknown, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := HTTPStatus(tc.kind); got != tc.want {
			t.Errorf("HTTPStatus(%v) = %d, want %d", tc.kind, got, tc.want)
		}
	}
}

func TestUserMessageAlwaysSet(t *testing.T) {
	for kind := KindUnknown; kind <= KindState; kind++ {
		if UserMessage(kind) == "" {
			t.Errorf("UserMessage(%v) is empty", kind)
		}
	}
}

func TestErrorFormatting(t *testing.T) {
	inner := errors.New("boom")
	err := New(KindInvalid, "validate request", inner)

	if err.Error() != "validate request: boom" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if !errors.Is(err, inner) {
		t.Fatal("Unwrap chain broken")
	}
}
