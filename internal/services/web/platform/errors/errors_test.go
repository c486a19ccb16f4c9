package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestHTTPStatusMapsKinds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "invalid input", err: E(KindInvalidInput, "bad"), want: http.StatusBadRequest},
		{name: "forbidden", err: E(KindForbidden, "forbidden"), want: http.StatusForbidden},
		{name: "not found", err: E(KindNotFound, "missing"), want: http.StatusNotFound},
		{name: "conflict", err: E(KindConflict, "conflict"), want: http.StatusConflict},
		{name: "unavailable", err: E(KindUnavailable, "unavailable"), want: http.StatusServiceUnavailable},
		{name: "unknown", err: E(KindUnknown, "unknown"), want: http.StatusInternalServerError},
		{name: "untyped", err: errors.New("boom"), want: http.StatusInternalServerError},
		{name: "wrapped typed", err: fmt.Errorf("outer: %w", E(KindNotFound, "missing")), want: http.StatusNotFound},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Fatalf("HTTPStatus() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestErrorStringFallsBackToKindWhenMessageEmpty(t *testing.T) {
	t.Parallel()

	err := Error{Kind: KindForbidden}
	if got := err.Error(); got != string(KindForbidden) {
		t.Fatalf("Error() = %q, want %q", got, string(KindForbidden))
	}
}

func TestWrapKeepsCause(t *testing.T) {
	t.Parallel()

	cause := errors.New("fetch failed")
	err := Wrap(KindUnavailable, cause)
	if !errors.Is(err, cause) {
		t.Fatalf("errors.Is(%v, cause) = false", err)
	}
	if KindOf(err) != KindUnavailable {
		t.Fatalf("KindOf() = %q, want %q", KindOf(err), KindUnavailable)
	}
	if err.Error() != "fetch failed" {
		t.Fatalf("Error() = %q", err.Error())
	}
	if Wrap(KindUnavailable, nil) != nil {
		t.Fatal("Wrap(nil) must return nil")
	}
}

func TestLocalizationKey(t *testing.T) {
	t.Parallel()

	if got := LocalizationKey(EK(KindNotFound, " not_found_title ", "missing")); got != "not_found_title" {
		t.Fatalf("LocalizationKey() = %q", got)
	}
	if got := LocalizationKey(errors.New("plain")); got != "" {
		t.Fatalf("LocalizationKey(plain) = %q, want empty", got)
	}
}
