package errors

import (
	"errors"
	"fmt"
	"testing"
)

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name string
		err  *Error
		want string
	}{
		{"plain", New(ErrCodeInvalidShade, "shade %d out of range", 7), "INVALID_SHADE: shade 7 out of range"},
		{"with cause", Wrap(ErrCodeNetwork, errors.New("connection reset"), "feedback request failed"),
			"NETWORK_ERROR: feedback request failed: connection reset"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestWrapUnwraps(t *testing.T) {
	cause := errors.New("disk full")
	err := Wrap(ErrCodeInternal, cause, "save composition")
	if errors.Unwrap(err) != cause || !errors.Is(err, cause) {
		t.Error("Wrap should keep the cause reachable")
	}
}

func TestIs(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code Code
		want bool
	}{
		{"matching code", New(ErrCodeNoSpace, "no space available"), ErrCodeNoSpace, true},
		{"other code", New(ErrCodeNoSpace, "no space available"), ErrCodeInvalidKind, false},
		{"outer code wins", Wrap(ErrCodeNetwork, New(ErrCodeRateLimited, "inner"), "outer"), ErrCodeNetwork, true},
		{"through fmt wrapping", fmt.Errorf("add: %w", New(ErrCodeImmutableShape, "challenge shape")), ErrCodeImmutableShape, true},
		{"plain error", errors.New("boom"), ErrCodeInternal, false},
		{"nil", nil, ErrCodeInternal, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.code); got != tt.want {
				t.Errorf("Is() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGetCodeAndUserMessage(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		code    Code
		message string
	}{
		{"coded", New(ErrCodeSessionNotFound, "session not found"), ErrCodeSessionNotFound, "session not found"},
		{"wrapped coded", fmt.Errorf("load: %w", New(ErrCodeInvalidBoard, "board too short")), ErrCodeInvalidBoard, "board too short"},
		{"plain", errors.New("plain error"), "", "plain error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := GetCode(tt.err); got != tt.code {
				t.Errorf("GetCode() = %q, want %q", got, tt.code)
			}
			if got := UserMessage(tt.err); got != tt.message {
				t.Errorf("UserMessage() = %q, want %q", got, tt.message)
			}
		})
	}
	if GetCode(nil) != "" {
		t.Error("GetCode(nil) should be empty")
	}
}

func TestSentinelMatching(t *testing.T) {
	sentinel := New(ErrCodeNoSpace, "no space available")
	wrapped := Wrap(ErrCodeInternal, sentinel, "add shape")

	if !errors.Is(wrapped, sentinel) {
		t.Error("errors.Is(wrapped, sentinel) = false, want true")
	}
	if !errors.Is(New(ErrCodeNoSpace, "no space available"), sentinel) {
		t.Error("equal code and message should match the sentinel")
	}
	if errors.Is(New(ErrCodeNoSpace, "other"), sentinel) {
		t.Error("different message should not match the sentinel")
	}

	var e *Error
	if !As(wrapped, &e) || e.Code != ErrCodeInternal {
		t.Errorf("As() = %v", e)
	}
}
