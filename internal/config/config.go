package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/adrg/xdg"
	"github.com/goccy/go-yaml"
	"github.com/rs/zerolog"
)

const (
	APP_NAME       = "asmscope"
	CONFIG_RELPATH = APP_NAME + "/config.yaml"

	COLOR_AUTO   = "auto"
	COLOR_ALWAYS = "always"
	COLOR_NEVER  = "never"

	DEFAULT_LOG_LEVEL   = "warn"
	DEFAULT_DUMP_INDENT = "  "
)

var (
	ErrInvalidConfig = errors.New("invalid configuration")
)

// Config holds the settings of the asmscope command, CLI flags override the values of the config file.
type Config struct {
	Color      string `yaml:"color"`
	LogLevel   string `yaml:"logLevel"`
	DumpIndent string `yaml:"dumpIndent"`
}

func Default() Config {
	return Config{
		Color:      COLOR_AUTO,
		LogLevel:   DEFAULT_LOG_LEVEL,
		DumpIndent: DEFAULT_DUMP_INDENT,
	}
}

// Load reads the config file in the XDG config directories, the default configuration
// is returned if there is no config file.
func Load() (Config, error) {
	path, err := xdg.SearchConfigFile(CONFIG_RELPATH)
	if err != nil {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile reads a YAML config file, missing fields keep their default value.
func LoadFile(path string) (Config, error) {
	content, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return Config{}, err
	}
	return Parse(content)
}

func Parse(content []byte) (Config, error) {
	config := Default()
	if err := yaml.Unmarshal(content, &config); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := config.Validate(); err != nil {
		return Config{}, err
	}
	return config, nil
}

func (c Config) Validate() error {
	switch c.Color {
	case COLOR_AUTO, COLOR_ALWAYS, COLOR_NEVER:
	default:
		return fmt.Errorf("%w: color should be one of %s, %s, %s", ErrInvalidConfig, COLOR_AUTO, COLOR_ALWAYS, COLOR_NEVER)
	}

	if _, err := c.ZerologLevel(); err != nil {
		return err
	}

	if strings.Trim(c.DumpIndent, " \t") != "" {
		return fmt.Errorf("%w: dump indent should only contain spaces and tabs, got %q", ErrInvalidConfig, c.DumpIndent)
	}
	return nil
}

func (c Config) ZerologLevel() (zerolog.Level, error) {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.NoLevel, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return level, nil
}

// ShouldColorize decides whether diagnostics are colorized: COLOR_AUTO honors the FORCE_COLOR and
// NO_COLOR environment variables and otherwise relies on $isTerminal.
func (c Config) ShouldColorize(isTerminal bool) bool {
	switch c.Color {
	case COLOR_ALWAYS:
		return true
	case COLOR_NEVER:
		return false
	}

	if envFlagSet("NO_COLOR") {
		return false
	}
	if envFlagSet("FORCE_COLOR") {
		return true
	}
	return isTerminal
}

func envFlagSet(name string) bool {
	s, ok := os.LookupEnv(name)
	return ok && len(s) != 0 && s != "false" && s != "0"
}
