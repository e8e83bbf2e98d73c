package native

import (
	"testing"

	"github.com/cwbudde/vanilla/internal/errors"
)

func TestResolveArgTypeKnownNames(t *testing.T) {
	names := []string{"int8", "uint64", "float", "double", "long double", "string8", "const char*", "char*", "unsigned long"}
	for _, n := range names {
		if _, err := resolveArgType(n); err != nil {
			t.Fatalf("expected %q to resolve, got %v", n, err)
		}
	}
}

func TestResolveArgTypeUnknownNameFails(t *testing.T) {
	_, err := resolveArgType("nonsense")
	if err == nil || err.Kind != errors.KindUnknownNativeTypeName {
		t.Fatalf("expected unknown-native-type-name, got %v", err)
	}
}

func TestResolveArgTypeRejectsVoid(t *testing.T) {
	_, err := resolveArgType("void")
	if err == nil || err.Kind != errors.KindVoidAsArgumentType {
		t.Fatalf("expected void-as-argument-type, got %v", err)
	}
}

func TestResolveReturnTypeAllowsVoid(t *testing.T) {
	ct, err := resolveReturnType("void")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ct != cVoid {
		t.Fatalf("expected cVoid, got %v", ct)
	}
}

func TestResolveReturnTypeUnknownNameFails(t *testing.T) {
	_, err := resolveReturnType("nonsense")
	if err == nil || err.Kind != errors.KindUnknownNativeTypeName {
		t.Fatalf("expected unknown-native-type-name, got %v", err)
	}
}
