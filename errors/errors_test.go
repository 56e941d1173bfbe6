package errors

import (
	stderrors "errors"
	"fmt"
	"strings"
	"testing"
)

func TestAppError_New_Success(t *testing.T) {
	err := New(ErrCodeEmptyInput, "nothing here")
	if err.Code != ErrCodeEmptyInput {
		t.Errorf("expected code %s, got %s", ErrCodeEmptyInput, err.Code)
	}
	if err.Message != "nothing here" {
		t.Errorf("expected message 'nothing here', got %q", err.Message)
	}
}

func TestAppError_InvalidArgument_NamesParam(t *testing.T) {
	err := InvalidArgument("n", "must be positive")
	if err.Code != ErrCodeInvalidArgument {
		t.Errorf("expected INVALID_ARGUMENT, got %s", err.Code)
	}
	if !strings.Contains(err.Error(), "'n'") {
		t.Errorf("expected message to name the parameter, got %q", err.Error())
	}
	if err.Details["param"] != "n" {
		t.Errorf("expected param=n, got %v", err.Details["param"])
	}
}

func TestAppError_Is_MatchesByCode(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		want     bool
	}{
		{"empty input", EmptyInput("max"), ErrEmptyInput, true},
		{"no such element", NoSuchElement("nth", 3), ErrNoSuchElement, true},
		{"length mismatch", LengthMismatch("zip"), ErrLengthMismatch, true},
		{"incomplete batch", IncompleteBatch("batch", 1, 3), ErrIncompleteBatch, true},
		{"shutdown", Shutdown("pool"), ErrShutdown, true},
		{"timeout", Timeout("submit"), ErrTimeout, true},
		{"different kind", EmptyInput("max"), ErrNoSuchElement, false},
		{"wrapped", fmt.Errorf("outer: %w", InvalidArgument("step", "must be positive")), ErrInvalidArgument, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := stderrors.Is(tc.err, tc.sentinel); got != tc.want {
				t.Errorf("errors.Is = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestAppError_IsCode(t *testing.T) {
	err := fmt.Errorf("wrapped: %w", LengthMismatch("zip"))
	if !IsCode(err, ErrCodeLengthMismatch) {
		t.Error("expected IsCode to see through wrapping")
	}
	if IsCode(err, ErrCodeEmptyInput) {
		t.Error("expected IsCode to reject a different code")
	}
	if IsCode(nil, ErrCodeEmptyInput) {
		t.Error("expected IsCode(nil) to be false")
	}
}

func TestAppError_WithCause_Chain(t *testing.T) {
	cause := fmt.Errorf("root cause")
	err := Internal(nil).WithCause(cause)
	if err.Cause != cause {
		t.Error("expected cause to be set via WithCause")
	}
	if !strings.Contains(err.Error(), "root cause") {
		t.Errorf("Error() should contain cause, got %q", err.Error())
	}
	if !stderrors.Is(err, cause) {
		t.Error("expected errors.Is to reach the cause")
	}
}

func TestAppError_WithDetail_NilMap(t *testing.T) {
	err := &AppError{}
	err.WithDetail("key", "value")
	if err.Details == nil {
		t.Fatal("expected Details map to be initialized")
	}
	if err.Details["key"] != "value" {
		t.Errorf("expected key=value, got %v", err.Details["key"])
	}
}

func TestAsAppError(t *testing.T) {
	wrapped := fmt.Errorf("outer: %w", EmptyInput("sum"))
	appErr, ok := AsAppError(wrapped)
	if !ok {
		t.Fatal("expected AsAppError to succeed")
	}
	if appErr.Code != ErrCodeEmptyInput {
		t.Errorf("expected EMPTY_INPUT, got %s", appErr.Code)
	}
	if _, ok := AsAppError(fmt.Errorf("plain")); ok {
		t.Error("expected AsAppError to fail for a plain error")
	}
}

func TestAggregate_NilWhenEmpty(t *testing.T) {
	if err := Aggregate("zip"); err != nil {
		t.Errorf("expected nil, got %v", err)
	}
	if err := Aggregate("zip", nil, nil); err != nil {
		t.Errorf("expected nil for nil members, got %v", err)
	}
}

func TestAggregate_KeepsEveryFailure(t *testing.T) {
	a := fmt.Errorf("a failed")
	b := fmt.Errorf("b failed")
	err := Aggregate("race", a, nil, b)

	var agg *AggregateError
	if !stderrors.As(err, &agg) {
		t.Fatalf("expected *AggregateError, got %T", err)
	}
	if len(agg.Errors) != 2 {
		t.Fatalf("expected 2 failures, got %d", len(agg.Errors))
	}
	if !stderrors.Is(err, a) || !stderrors.Is(err, b) {
		t.Error("expected errors.Is to match both members")
	}
	s := err.Error()
	for _, want := range []string{"AGGREGATE_FAILURE", "race()", "a failed", "b failed"} {
		if !strings.Contains(s, want) {
			t.Errorf("expected %q in %q", want, s)
		}
	}
}

func TestAggregate_FlattensNested(t *testing.T) {
	a := fmt.Errorf("a")
	b := fmt.Errorf("b")
	c := fmt.Errorf("c")
	err := Aggregate("zip", Aggregate("zip", a, b), c)
	got := Failures(err)
	if len(got) != 3 {
		t.Fatalf("expected 3 flattened failures, got %d: %v", len(got), got)
	}
	if got[0] != a || got[1] != b || got[2] != c {
		t.Errorf("expected order [a b c], got %v", got)
	}
}

func TestFailures_PlainError(t *testing.T) {
	plain := fmt.Errorf("plain")
	got := Failures(plain)
	if len(got) != 1 || got[0] != plain {
		t.Errorf("expected [plain], got %v", got)
	}
	if Failures(nil) != nil {
		t.Error("expected nil for nil error")
	}
}

func TestIsKnownCode(t *testing.T) {
	if !IsKnownCode(ErrCodeAggregateFailure) {
		t.Error("AGGREGATE_FAILURE should be known")
	}
	if IsKnownCode(ErrorCode("NOPE")) {
		t.Error("unexpected known code")
	}
}
