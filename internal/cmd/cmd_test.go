package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.td.teradata.com/sandbox/tam-ctl/internal/config"
)

func TestPrintPalette(t *testing.T) {
	var out bytes.Buffer
	if err := printPalette(&out); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 16 {
		t.Fatalf("printed %d lines, want 16", len(lines))
	}
	if !strings.HasPrefix(lines[0], " 0  232") || !strings.HasPrefix(lines[15], "15   15") {
		t.Errorf("unexpected table:\n%s", out.String())
	}
}

func TestPrintKeys(t *testing.T) {
	var out bytes.Buffer
	if err := printKeys(&out); err != nil {
		t.Fatal(err)
	}
	got := out.String()
	for _, want := range []string{"27;91;65", "\"UP\"", "WHITESPACE", "\"F12_SHIFT\""} {
		if !strings.Contains(got, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestFlagsOverrideConfig(t *testing.T) {
	saved := config.CLIConfig
	defer func() {
		config.CLIConfig = saved
		mode, portName = 0, ""
	}()

	mode, portName = 2, "/dev/ttyS9"
	if err := initConfigE(); err != nil {
		t.Fatal(err)
	}
	if config.CLIConfig.Terminal.Mode != 2 || config.CLIConfig.Serial.PortName != "/dev/ttyS9" {
		t.Errorf("flags not applied: %+v %+v", *config.CLIConfig.Terminal, *config.CLIConfig.Serial)
	}
}

func TestSubcommands(t *testing.T) {
	for _, name := range []string{"palette", "keys", "ports"} {
		c, _, err := rootCmd.Find([]string{name})
		if err != nil || c.Name() != name {
			t.Errorf("subcommand %s not registered: %v", name, err)
		}
	}
}
