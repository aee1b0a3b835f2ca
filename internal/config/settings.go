package config

import (
	"io"
	"os"
	"time"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// SSH holds the listener settings of the SSH front end.
type SSH struct {
	Host    string `yaml:"host"`
	Port    string `yaml:"port"`
	HostKey string `yaml:"host_key"`
}

// Settings are the process-level options. Gameplay numbers live in tunables.go.
type Settings struct {
	TickRate   int    `yaml:"tick_rate"`
	ViewWidth  int    `yaml:"view_width"`
	ViewHeight int    `yaml:"view_height"`
	LogLevel   string `yaml:"log_level"`
	LogFile    string `yaml:"log_file"`
	StartLevel int    `yaml:"start_level"`
	UIAddr     string `yaml:"ui_addr"`
	Debug      bool   `yaml:"debug"`
	SSH        SSH    `yaml:"ssh"`
}

// Default returns the settings used when nothing is configured.
func Default() Settings {
	return Settings{
		TickRate:   60,
		ViewWidth:  160,
		ViewHeight: 96,
		LogLevel:   "info",
		LogFile:    "spiritwatch.log",
		StartLevel: 0,
		UIAddr:     "",
		SSH: SSH{
			Host:    "::",
			Port:    "2222",
			HostKey: "/app/keys/host_key",
		},
	}
}

// Load reads settings from a YAML file on top of the defaults.
// An empty path returns the defaults.
func Load(path string) (Settings, error) {
	if path == "" {
		return Default(), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return Settings{}, errors.Wrapf(err, "open settings %s", path)
	}
	defer f.Close()

	s, err := Parse(f)
	if err != nil {
		return Settings{}, errors.Wrapf(err, "settings %s", path)
	}
	return s, nil
}

// Parse decodes YAML settings on top of the defaults.
func Parse(r io.Reader) (Settings, error) {
	s := Default()
	if err := yaml.NewDecoder(r).Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return Settings{}, errors.Wrap(err, "decode settings")
	}
	if s.TickRate <= 0 {
		s.TickRate = Default().TickRate
	}
	return s, nil
}

// ApplyEnv overrides settings from the environment.
func (s *Settings) ApplyEnv() {
	s.TickRate = GetEnvInt("SPIRITWATCH_TICK_RATE", s.TickRate)
	s.ViewWidth = GetEnvInt("SPIRITWATCH_VIEW_WIDTH", s.ViewWidth)
	s.ViewHeight = GetEnvInt("SPIRITWATCH_VIEW_HEIGHT", s.ViewHeight)
	s.LogLevel = GetEnv("SPIRITWATCH_LOG_LEVEL", s.LogLevel)
	s.LogFile = GetEnv("SPIRITWATCH_LOG_FILE", s.LogFile)
	s.StartLevel = GetEnvInt("SPIRITWATCH_START_LEVEL", s.StartLevel)
	s.Debug = GetEnvBool("SPIRITWATCH_DEBUG", s.Debug)
	s.UIAddr = GetEnv("UI_ADDR", s.UIAddr)
	s.SSH.Host = GetEnv("SSH_HOST", s.SSH.Host)
	s.SSH.Port = GetEnv("SSH_PORT", s.SSH.Port)
	s.SSH.HostKey = GetEnv("SSH_HOST_KEY", s.SSH.HostKey)
	if s.TickRate <= 0 {
		s.TickRate = Default().TickRate
	}
}

// TickTime is the duration of one simulated frame.
func (s Settings) TickTime() time.Duration {
	return time.Second / time.Duration(s.TickRate)
}
