package xmldiff

import "testing"

func TestNopLoggerDoesNotPanic(t *testing.T) {
	l := NewNopLogger()
	l.Debug("debug message", F("key", 1))
	l.Info("info message", F("key", "value"))
	l.Error("error message")
	if err := l.Sync(); err != nil {
		t.Fatalf("unexpected sync error: %v", err)
	}
}

func TestNewLoggerDebugLevel(t *testing.T) {
	l, err := NewLogger(true)
	if err != nil {
		t.Fatal(err)
	}
	l.Debug("should not panic")
	_ = l.Sync()
}
