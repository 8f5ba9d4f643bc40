package log

import (
	"bytes"
	"strings"
	"testing"
)

func TestLevelUnmarshalText(t *testing.T) {
	tests := []struct {
		text string
		want Level
		ok   bool
	}{
		{"debug", DEBUG, true},
		{" Info ", INFO, true},
		{"", INFO, true},
		{"WARN", WARN, true},
		{"error", ERROR, true},
		{"fatal", FATAL, true},
		{"verbose", INFO, false},
	}
	for _, tt := range tests {
		l := INFO
		ok := l.UnmarshalText([]byte(tt.text))
		if ok != tt.ok || l != tt.want {
			t.Errorf("UnmarshalText(%q) = %v,%v, want %v,%v", tt.text, l, ok, tt.want, tt.ok)
		}
	}
}

func TestPaddedString(t *testing.T) {
	for _, l := range []Level{DEBUG, INFO, WARN, ERROR, FATAL} {
		if got := l.PaddedString(); len(got) != 5 {
			t.Errorf("%v.PaddedString() = %q", l, got)
		}
	}
}

func TestLevelFilter(t *testing.T) {
	var out bytes.Buffer
	logger := New()
	logger.Setup(NewLogConfigurator(&out, "warn"))

	logger.Debugf("hidden %d", 1)
	logger.Infof("hidden %d", 2)
	logger.Warnf("shown %d", 3)
	logger.Errorf("shown %d", 4)

	got := out.String()
	if strings.Contains(got, "hidden") {
		t.Errorf("filtered messages written: %q", got)
	}
	if strings.Count(got, "shown") != 2 {
		t.Errorf("expected two messages, got %q", got)
	}
	if !strings.Contains(got, "WARN ") || !strings.Contains(got, "log_test.go") {
		t.Errorf("missing level or caller in %q", got)
	}
}

func TestFatalTerminates(t *testing.T) {
	var out bytes.Buffer
	logger := New()
	logger.SetOutput(&out)

	called := false
	saved := TerminateFunc
	TerminateFunc = func() { called = true }
	defer func() { TerminateFunc = saved }()

	logger.Fatal("boom")
	if !called {
		t.Error("TerminateFunc not called")
	}
	if !strings.Contains(out.String(), "FATAL") {
		t.Errorf("output = %q", out.String())
	}
}
