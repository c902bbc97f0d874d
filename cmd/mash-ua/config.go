package main

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/mash-protocol/mash-ua/pkg/addrspace"
	"github.com/mash-protocol/mash-ua/pkg/service"
)

// Config holds the mash-ua settings. Values come from the defaults, then
// the -config file, then the flags given on the command line.
type Config struct {
	ConfigFile  string `yaml:"-"`
	Interactive bool   `yaml:"-"`

	SpaceFile   string `yaml:"space"`
	LogLevel    string `yaml:"log_level"`
	ProtocolLog string `yaml:"protocol_log"`

	CacheSize            int  `yaml:"cache_size"`
	Strict               bool `yaml:"strict_absolute_verification"`
	MaxTranslatePasses   int  `yaml:"max_translate_passes"`
	MaxBrowseRounds      int  `yaml:"max_browse_rounds"`
	MaxOperationsPerCall int  `yaml:"max_operations_per_call"`
	MaxReferencesPerNode int  `yaml:"max_references_per_node"`
}

func defaultConfig() Config {
	client := service.DefaultClientConfig()
	return Config{
		LogLevel:           "info",
		CacheSize:          client.CacheSize,
		MaxTranslatePasses: client.MaxTranslatePasses,
		MaxBrowseRounds:    client.MaxBrowseRounds,
	}
}

func registerFlags(fs *flag.FlagSet, c *Config) {
	fs.StringVar(&c.ConfigFile, "config", c.ConfigFile, "Configuration file path (YAML)")
	fs.BoolVar(&c.Interactive, "interactive", c.Interactive, "Enable interactive command mode")
	fs.StringVar(&c.SpaceFile, "space", c.SpaceFile, "Address space file (YAML)")
	fs.StringVar(&c.LogLevel, "log-level", c.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&c.ProtocolLog, "protocol-log", c.ProtocolLog, "File path for protocol event logging (CBOR format)")
	fs.IntVar(&c.CacheSize, "cache-size", c.CacheSize, "Resolution cache bound (0 = unbounded)")
	fs.BoolVar(&c.Strict, "strict", c.Strict, "Fail the whole batch on a malformed absolute address")
	fs.IntVar(&c.MaxTranslatePasses, "max-passes", c.MaxTranslatePasses, "Maximum translation passes per resolution")
	fs.IntVar(&c.MaxBrowseRounds, "max-browse-rounds", c.MaxBrowseRounds, "Maximum automatic BrowseNext rounds (0 = none)")
	fs.IntVar(&c.MaxOperationsPerCall, "max-ops", c.MaxOperationsPerCall, "Maximum targets per service call (0 = unlimited)")
	fs.IntVar(&c.MaxReferencesPerNode, "max-refs", c.MaxReferencesPerNode, "References per browse page served by the address space (0 = unlimited)")
}

// loadConfigFile decodes the YAML file at path over c. Unknown keys are
// rejected.
func loadConfigFile(path string, c *Config) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(c); err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}

// applyFlags copies the flags set on fs from src to dst.
func applyFlags(fs *flag.FlagSet, dst *Config, src Config) {
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "config":
			dst.ConfigFile = src.ConfigFile
		case "interactive":
			dst.Interactive = src.Interactive
		case "space":
			dst.SpaceFile = src.SpaceFile
		case "log-level":
			dst.LogLevel = src.LogLevel
		case "protocol-log":
			dst.ProtocolLog = src.ProtocolLog
		case "cache-size":
			dst.CacheSize = src.CacheSize
		case "strict":
			dst.Strict = src.Strict
		case "max-passes":
			dst.MaxTranslatePasses = src.MaxTranslatePasses
		case "max-browse-rounds":
			dst.MaxBrowseRounds = src.MaxBrowseRounds
		case "max-ops":
			dst.MaxOperationsPerCall = src.MaxOperationsPerCall
		case "max-refs":
			dst.MaxReferencesPerNode = src.MaxReferencesPerNode
		}
	})
}

// resolveConfig parses args into a Config, merging a -config file if one
// is named.
func resolveConfig(fs *flag.FlagSet, args []string) (Config, error) {
	flags := defaultConfig()
	registerFlags(fs, &flags)
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if flags.ConfigFile == "" {
		return flags, nil
	}

	merged := defaultConfig()
	if err := loadConfigFile(flags.ConfigFile, &merged); err != nil {
		return Config{}, err
	}
	applyFlags(fs, &merged, flags)
	return merged, nil
}

func parseLogLevel(s string) (slog.Level, error) {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level: %s (use: debug, info, warn, error)", s)
	}
}

func (c *Config) spaceConfig(logger *slog.Logger) addrspace.Config {
	cfg := addrspace.DefaultConfig()
	cfg.MaxReferencesPerNode = c.MaxReferencesPerNode
	cfg.Logger = logger
	return cfg
}

func (c *Config) clientConfig(logger *slog.Logger) service.ClientConfig {
	cfg := service.DefaultClientConfig()
	cfg.CacheSize = c.CacheSize
	cfg.StrictAbsoluteVerification = c.Strict
	cfg.MaxTranslatePasses = c.MaxTranslatePasses
	cfg.MaxBrowseRounds = c.MaxBrowseRounds
	cfg.MaxOperationsPerCall = c.MaxOperationsPerCall
	cfg.Logger = logger
	return cfg
}
