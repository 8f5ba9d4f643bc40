package cmd

import (
	"context"
	"fmt"
	"io"
	"io/ioutil"
	"os"
	"os/signal"
	"sort"
	"syscall"

	"github.com/spf13/cobra"
	"github.td.teradata.com/sandbox/tam-ctl/internal/config"
	"github.td.teradata.com/sandbox/tam-ctl/internal/driver"
	"github.td.teradata.com/sandbox/tam-ctl/internal/log"
	"github.td.teradata.com/sandbox/tam-ctl/internal/services/console"
	"github.td.teradata.com/sandbox/tam-ctl/internal/services/keyboard"
	"github.td.teradata.com/sandbox/tam-ctl/internal/services/palette"
	"github.td.teradata.com/sandbox/tam-ctl/internal/services/serial"
)

var cfgFile string
var mode int
var portName string

var rootCmd = &cobra.Command{
	Use:           "tam",
	Short:         "tam draws coloured character frames on an ANSI terminal",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		logFile, err := setupLogging()
		if err != nil {
			return err
		}
		if logFile != nil {
			defer logFile.Close()
		}
		defer log.SetOutput(os.Stderr)

		c, err := console.Open(config.CLIConfig)
		if err != nil {
			return err
		}
		defer c.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return driver.New(c, config.CLIConfig.Terminal.FrameInterval).Run(ctx)
	},
}

var paletteCmd = &cobra.Command{
	Use:   "palette",
	Short: "print the colour index to 256-colour code table",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printPalette(cmd.OutOrStdout())
	},
}

var keysCmd = &cobra.Command{
	Use:   "keys",
	Short: "print the byte signatures of every decoded key",
	RunE: func(cmd *cobra.Command, args []string) error {
		return printKeys(cmd.OutOrStdout())
	},
}

var portsCmd = &cobra.Command{
	Use:   "ports",
	Short: "list serial ports a terminal can be attached to",
	RunE: func(cmd *cobra.Command, args []string) error {
		ports, err := serial.ListPorts()
		if err != nil {
			return err
		}
		if len(ports) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No serial ports found")
		}
		for _, port := range ports {
			fmt.Fprintf(cmd.OutOrStdout(), "Found port: %v\n", port)
		}
		return nil
	},
}

// Execute bootstraps the viper
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "configuration file for tam")
	rootCmd.Flags().IntVarP(&mode, "mode", "m", 0, "draw mode, 2 or 16 (default from the environment)")
	rootCmd.Flags().StringVarP(&portName, "serial", "s", "", "serial port of a terminal to draw on instead of this one")

	rootCmd.AddCommand(paletteCmd, keysCmd, portsCmd)
}

func initConfig() {
	if err := initConfigE(); err != nil {
		log.Fatal("Failed to load configuration: ", err)
	}
}

func initConfigE() error {
	if err := config.NewConfig(cfgFile); err != nil {
		return err
	}
	if mode != 0 {
		config.CLIConfig.Terminal.Mode = mode
	}
	if portName != "" {
		config.CLIConfig.Serial.PortName = portName
	}
	return nil
}

// setupLogging points the default logger at the configured file. Without a
// file, log output is discarded while the local terminal is drawn on.
func setupLogging() (*os.File, error) {
	cfg := config.CLIConfig.Log
	var w io.Writer = os.Stderr
	var f *os.File
	if cfg.File != "" {
		var err error
		f, err = os.OpenFile(cfg.File, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		w = f
	} else if config.CLIConfig.Serial.PortName == "" {
		w = ioutil.Discard
	}
	log.Setup(log.NewLogConfigurator(w, cfg.Level))
	return f, nil
}

func printPalette(w io.Writer) error {
	codes := palette.Codes()
	for i, code := range codes {
		if _, err := fmt.Fprintf(w, "%2d  %3d  \u001b[48;5;%dm    \u001b[0m\n", i, code, code); err != nil {
			return err
		}
	}
	return nil
}

func printKeys(w io.Writer) error {
	keys := keyboard.Table()
	sigs := make([]string, 0, len(keys))
	for sig := range keys {
		sigs = append(sigs, sig)
	}
	sort.Strings(sigs)
	for _, sig := range sigs {
		k := keys[sig]
		if _, err := fmt.Fprintf(w, "%-24s %-10s %q\n", sig, k.Class, k.Label); err != nil {
			return err
		}
	}
	return nil
}
