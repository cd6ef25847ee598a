package ion

import (
	"testing"
	"time"
)

func TestKeyKey(t *testing.T) {
	field := KeyKey.Field("count")
	if field.Key().Name() != "key" {
		t.Errorf("expected key 'key', got %q", field.Key().Name())
	}
}

func TestKeyError(t *testing.T) {
	field := KeyError.Field("something went wrong")
	if field.Key().Name() != "error" {
		t.Errorf("expected key 'error', got %q", field.Key().Name())
	}
}

func TestKeyDepth(t *testing.T) {
	field := KeyDepth.Field(2)
	if field.Key().Name() != "depth" {
		t.Errorf("expected key 'depth', got %q", field.Key().Name())
	}
}

func TestKeyPending(t *testing.T) {
	field := KeyPending.Field(5)
	if field.Key().Name() != "pending" {
		t.Errorf("expected key 'pending', got %q", field.Key().Name())
	}
}

func TestKeyDeps(t *testing.T) {
	field := KeyDeps.Field(3)
	if field.Key().Name() != "dependencies" {
		t.Errorf("expected key 'dependencies', got %q", field.Key().Name())
	}
}

func TestKeyDebounce(t *testing.T) {
	field := KeyDebounce.Field(100 * time.Millisecond)
	if field.Key().Name() != "debounce" {
		t.Errorf("expected key 'debounce', got %q", field.Key().Name())
	}
}

func TestKeyContentType(t *testing.T) {
	field := KeyContentType.Field("application/json")
	if field.Key().Name() != "content_type" {
		t.Errorf("expected key 'content_type', got %q", field.Key().Name())
	}
}

func TestKeyStates(t *testing.T) {
	if KeyOldState.Field("loading").Key().Name() != "old_state" {
		t.Error("bad old_state key")
	}
	if KeyNewState.Field("healthy").Key().Name() != "new_state" {
		t.Error("bad new_state key")
	}
}
