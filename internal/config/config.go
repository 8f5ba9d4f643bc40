package config

import (
	"bytes"
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"
)

const (
	defSerialBaudRate = 9600
	defSerialDataBits = 8
	defSerialStopBits = 1
	defSerialParity   = 0

	defTerminalDevice   = "/dev/tty"
	defTerminalMode     = 0 // pick from the environment
	defTerminalWidth    = 80
	defTerminalHeight   = 24
	defTerminalInterval = 50 * time.Millisecond

	defLogLevel = "INFO"

	EnvVarPrefix = "TAM"
)

var CLIConfig *Config
var replacer = strings.NewReplacer(".", "_")

type Config struct {
	Terminal *Terminal `mapstructure:"terminal" yaml:"terminal"`
	Serial   *Serial   `mapstructure:"serial" yaml:"serial"`
	Log      *Log      `mapstructure:"log" yaml:"log"`
}

type Terminal struct {
	// Device is the tty opened for raw input.
	Device string `mapstructure:"device" yaml:"device"`
	// Mode is the draw mode, 2 or 16. Zero selects it from the environment.
	Mode int `mapstructure:"mode" yaml:"mode"`
	// Width and Height size a serial terminal, which cannot report its own.
	Width  int `mapstructure:"width" yaml:"width"`
	Height int `mapstructure:"height" yaml:"height"`
	// FrameInterval is the pause between frames of the interactive loop.
	FrameInterval time.Duration `mapstructure:"frame_interval" yaml:"frame_interval"`
}

type Serial struct {
	// PortName selects a serial terminal instead of the local tty when set.
	PortName string  `mapstructure:"port_name" yaml:"port_name"`
	BaudRate int     `mapstructure:"baud_rate" yaml:"baud_rate"`
	DataBits int     `mapstructure:"data_bits" yaml:"data_bits"`
	StopBits float64 `mapstructure:"stop_bits" yaml:"stop_bits"` // 1, 1.5 or 2
	Parity   int     `mapstructure:"parity" yaml:"parity"`
}

type Log struct {
	Level string `mapstructure:"level" yaml:"level"`
	// File receives log output. Empty discards it while a terminal is in use.
	File string `mapstructure:"file" yaml:"file"`
}

func DefaultConfig() *Config {
	return &Config{
		Terminal: &Terminal{
			Device:        defTerminalDevice,
			Mode:          defTerminalMode,
			Width:         defTerminalWidth,
			Height:        defTerminalHeight,
			FrameInterval: defTerminalInterval,
		},
		Serial: &Serial{
			PortName: "",
			BaudRate: defSerialBaudRate,
			DataBits: defSerialDataBits,
			StopBits: defSerialStopBits,
			Parity:   defSerialParity,
		},
		Log: &Log{
			Level: defLogLevel,
		},
	}
}

// NewConfig loads the defaults, then cfgFile if it exists, then environment
// variables, into CLIConfig.
func NewConfig(cfgFile string) error {
	c, err := Load(cfgFile)
	if err != nil {
		return err
	}
	CLIConfig = c
	return nil
}

// Load reads configuration without touching CLIConfig.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	c := DefaultConfig()

	// set default values in viper.
	// Viper needs to know if a key exists in order to override it.
	// https://github.com/spf13/viper/issues/188
	b, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return nil, err
	}
	v.SetConfigType("yaml")
	if err := v.MergeConfig(bytes.NewReader(b)); err != nil {
		return nil, err
	}

	if cfgFile != "" {
		fi, err := os.Stat(cfgFile)
		if err != nil {
			return nil, fmt.Errorf("config file [%s]: %w", cfgFile, err)
		}
		if fi.IsDir() {
			return nil, fmt.Errorf("config file points to a directory, not a file [%s]", cfgFile)
		}
		// overwrite values from config
		v.SetConfigFile(cfgFile)
		if err := v.MergeInConfig(); err != nil {
			return nil, fmt.Errorf("unexpected error parsing config file [%s]: %w", fi.Name(), err)
		}
	}

	// Use environment variables as final override
	v.SetEnvPrefix(EnvVarPrefix)
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	// Preload environment bindings so they are processed on load
	if err := bindVars(v, reflect.TypeOf(*c), ""); err != nil {
		return nil, err
	}
	if err := v.Unmarshal(c); err != nil {
		return nil, err
	}
	return c, nil
}

func bindVars(v *viper.Viper, t reflect.Type, prefix string) error {
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		tag := field.Tag.Get("mapstructure")
		if tag == "" {
			continue
		}
		tag = prefix + tag

		if field.Type.Kind() == reflect.Struct {
			if err := bindVars(v, field.Type, tag+"."); err != nil {
				return err
			}
		} else if field.Type.Kind() == reflect.Ptr && field.Type.Elem().Kind() == reflect.Struct {
			if err := bindVars(v, field.Type.Elem(), tag+"."); err != nil {
				return err
			}
		} else if err := v.BindEnv(tag); err != nil {
			return fmt.Errorf("unable to bind to environment variable %s: %w", tag, err)
		}
	}
	return nil
}
