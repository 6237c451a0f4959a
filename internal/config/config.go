// Package config holds the validated search configuration and the viper
// wiring that fills it from flags, environment and an optional config file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/cheerioskun/grepninja/internal/models"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides (GREPNINJA_IGNORE_CASE=true)
const EnvPrefix = "GREPNINJA"

// Keys used in the viper store and the config file
const (
	KeyCount      = "count"
	KeyIgnoreCase = "ignore-case"
	KeyInvert     = "invert-match"
	KeyRecursive  = "recursive"
	KeyMaxDepth   = "max-depth"
	KeyVerbose    = "verbose"
)

var (
	ErrMissingPattern = errors.New("a pattern is required")
	ErrInvalidDepth = errors.New("max depth must not be negative")
)

// Search is the configuration for one search run
type Search struct {
	Pattern    string   `yaml:"-"`
	Paths      []string `yaml:"-"`
	Count      bool     `yaml:"count"`
	IgnoreCase bool     `yaml:"ignore-case"`
	Invert     bool     `yaml:"invert-match"`
	Recursive  bool     `yaml:"recursive"`
	MaxDepth   int      `yaml:"max-depth"` // 0 means unlimited
}

// Validate checks the configuration and fills defaults. An empty pattern is
// valid and selects every line.
func (s *Search) Validate() error {
	if s.MaxDepth < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidDepth, s.MaxDepth)
	}
	if len(s.Paths) == 0 {
		s.Paths = []string{models.StdinName}
	}
	return nil
}

// NewViper returns a viper store with defaults and environment binding set up
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyCount, false)
	v.SetDefault(KeyIgnoreCase, false)
	v.SetDefault(KeyInvert, false)
	v.SetDefault(KeyRecursive, false)
	v.SetDefault(KeyMaxDepth, 0)
	v.SetDefault(KeyVerbose, false)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	return v
}

// ReadConfigFile loads an explicit config file, or searches for
// .grepninja.yaml in the working directory and then $HOME. A missing
// implicit config file is not an error.
func ReadConfigFile(v *viper.Viper, explicit string) error {
	if explicit != "" {
		v.SetConfigFile(explicit)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", explicit, err)
		}
		return nil
	}

	v.SetConfigName(".grepninja")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// Load builds a validated Search from positional arguments (pattern first,
// then paths) and the viper store.
func Load(v *viper.Viper, args []string) (*Search, error) {
	if len(args) == 0 {
		return nil, ErrMissingPattern
	}

	search := &Search{
		Pattern:    args[0],
		Paths:      append([]string(nil), args[1:]...),
		Count:      v.GetBool(KeyCount),
		IgnoreCase: v.GetBool(KeyIgnoreCase),
		Invert:     v.GetBool(KeyInvert),
		Recursive:  v.GetBool(KeyRecursive),
		MaxDepth:   v.GetInt(KeyMaxDepth),
	}

	if err := search.Validate(); err != nil {
		return nil, err
	}
	return search, nil
}
