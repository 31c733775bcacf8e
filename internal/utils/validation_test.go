package utils

import (
	"errors"
	"testing"
)

func TestValidators(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr bool
	}{
		{name: "not empty ok", err: NotEmpty("root")("/p")},
		{name: "not empty blank", err: NotEmpty("root")("  "), wantErr: true},
		{name: "regex ok", err: MatchesRegex("name", `^[a-z]+$`)("enum")},
		{name: "regex fail", err: MatchesRegex("name", `^[a-z]+$`)("Enum1"), wantErr: true},
		{name: "one of ok", err: IsOneOf("engine", "echo", "gin", "fiber")("gin")},
		{name: "one of fail", err: IsOneOf("engine", "echo", "gin", "fiber")("chi"), wantErr: true},
		{name: "range ok", err: InRange("offset", 0, 10)(10)},
		{name: "range fail", err: InRange("offset", 0, 10)(11), wantErr: true},
		{name: "offset ok", err: ValidateOffset("offset", 5)(5)},
		{name: "offset negative", err: ValidateOffset("offset", 5)(-1), wantErr: true},
		{name: "listen addr port only", err: ValidateListenAddr("addr")(":8080")},
		{name: "listen addr host", err: ValidateListenAddr("addr")("127.0.0.1:9000")},
		{name: "listen addr no port", err: ValidateListenAddr("addr")("localhost"), wantErr: true},
		{name: "listen addr empty", err: ValidateListenAddr("addr")(""), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.wantErr && tt.err == nil {
				t.Error("expected an error")
			}
			if !tt.wantErr && tt.err != nil {
				t.Errorf("unexpected error: %v", tt.err)
			}
		})
	}
}

func TestValidationError(t *testing.T) {
	err := NotEmpty("root")("")

	var validationErr ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("expected a ValidationError, got %T", err)
	}
	if validationErr.Field != "root" {
		t.Errorf("expected field root, got %q", validationErr.Field)
	}
	if got := err.Error(); got != "validation error for field 'root': cannot be empty" {
		t.Errorf("unexpected message %q", got)
	}
	if got := (ValidationError{Message: "bad"}).Error(); got != "validation error: bad" {
		t.Errorf("unexpected message %q", got)
	}
}

func TestValidatorChain(t *testing.T) {
	calls := 0
	counting := func(string) error { calls++; return nil }

	chain := NewValidatorChain(NotEmpty("name"), counting)
	if err := chain.Validate(""); err == nil {
		t.Error("expected the chain to fail")
	}
	if calls != 0 {
		t.Error("expected the chain to stop at the first failure")
	}

	chain.Add(MatchesRegex("name", `^x`))
	if err := chain.Validate("xy"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if calls != 1 {
		t.Errorf("expected 1 call, got %d", calls)
	}
}
