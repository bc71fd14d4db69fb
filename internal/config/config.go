// Package config loads orgsync settings from config file, environment,
// and bound command-line flags, in ascending precedence.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/orgtools/orgsync/internal/merge"
)

// Settings is the resolved configuration for a run.
type Settings struct {
	// BeOrgFile is the path to the BeOrg inbox file.
	BeOrgFile string `mapstructure:"beorg_file"`

	// JournellyFile is the path to the Journelly file.
	JournellyFile string `mapstructure:"journelly_file"`

	// Verbose enables per-task narration.
	Verbose bool `mapstructure:"verbose"`

	// AllowMissing treats a missing input file as empty.
	AllowMissing bool `mapstructure:"allow_missing"`

	// OpaquePlacement is where non-task groups land in each output:
	// "append" (default) or "prepend".
	OpaquePlacement string `mapstructure:"opaque_placement"`

	// Report is an optional path for the YAML warning report.
	Report string `mapstructure:"report"`

	// LogFile is an optional rolling log file for watch mode.
	LogFile string `mapstructure:"log_file"`

	// Debounce is how long watch mode waits after a file change before
	// re-running the sync.
	Debounce time.Duration `mapstructure:"debounce"`
}

// New returns a viper instance with orgsync defaults, environment
// binding (ORGSYNC_*), and config file discovery wired up.
//
// If configFile is empty, a .orgsync.yaml in the working directory or
// the home directory is used when present.
func New(configFile string) (*viper.Viper, error) {
	v := viper.New()

	// Every key needs a default so environment-only values survive
	// Unmarshal.
	v.SetDefault("beorg_file", "")
	v.SetDefault("journelly_file", "")
	v.SetDefault("verbose", false)
	v.SetDefault("allow_missing", false)
	v.SetDefault("opaque_placement", "append")
	v.SetDefault("report", "")
	v.SetDefault("log_file", "")
	v.SetDefault("debounce", 500*time.Millisecond)

	v.SetEnvPrefix("ORGSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(".orgsync")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}
	return v, nil
}

// FromViper extracts and validates Settings.
func FromViper(v *viper.Viper) (*Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	if _, err := s.Placement(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Placement maps the configured opaque placement name onto the merge
// policy.
func (s *Settings) Placement() (merge.Placement, error) {
	switch s.OpaquePlacement {
	case "", "append":
		return merge.PlaceAppend, nil
	case "prepend":
		return merge.PlacePrepend, nil
	default:
		return 0, fmt.Errorf("invalid opaque_placement %q (want append or prepend)", s.OpaquePlacement)
	}
}
