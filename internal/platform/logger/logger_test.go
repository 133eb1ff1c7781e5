package logger

import "testing"

func TestSanitizeRedactsSecrets(t *testing.T) {
	out := sanitizeKVs([]interface{}{"user_id", "u1", "Password", "hunter2", "token", "abc", "dangling"})

	want := []interface{}{"user_id", "u1", "Password", "[REDACTED]", "token", "[REDACTED]", "dangling"}
	if len(out) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(out))
	}
	for i := range want {
		if out[i] != want[i] {
			t.Fatalf("index %d: expected %v, got %v", i, want[i], out[i])
		}
	}
}

func TestNewModes(t *testing.T) {
	for _, mode := range []string{"development", "production"} {
		l, err := New(mode)
		if err != nil {
			t.Fatalf("new %s: %v", mode, err)
		}
		l.With("mode", mode).Info("logger ready")
	}
}
