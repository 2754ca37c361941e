package config

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/DrSkyle/coactor/pkg/engine"
	"github.com/spf13/viper"
)

// ErrInvalidConfig wraps every validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config is the full set of coactor settings. Keys map onto the YAML file,
// COACTOR_* environment variables and command line flags.
type Config struct {
	APIKey string       `mapstructure:"api_key"`
	Seed   SeedConfig   `mapstructure:"seed"`
	Build  BuildConfig  `mapstructure:"build"`
	TMDb   ClientConfig `mapstructure:"tmdb"`

	// Output is a directory or an s3://bucket/prefix target.
	Output       string `mapstructure:"output"`
	OTLPEndpoint string `mapstructure:"otlp_endpoint"`

	Mock     bool `mapstructure:"mock"`
	TUI      bool `mapstructure:"tui"`
	JSONLogs bool `mapstructure:"json_logs"`
	Verbose  bool `mapstructure:"verbose"`
}

type SeedConfig struct {
	ID string `mapstructure:"id"`

	// Name labels the seed node. Left empty, it is filled in only for the
	// default seed id; other seeds get no seed node until named.
	Name string `mapstructure:"name"`
}

func (s SeedConfig) withDefaultName() SeedConfig {
	if s.Name == "" && s.ID == DefaultSeedID {
		s.Name = DefaultSeedName
	}
	return s
}

type BuildConfig struct {
	// MinVoteAverage drops credits rated below it. Zero disables the filter.
	MinVoteAverage float64 `mapstructure:"min_vote_average"`
	CastLimit      int     `mapstructure:"cast_limit"`
	Rounds         int     `mapstructure:"rounds"`
	Strict         bool    `mapstructure:"strict"`

	// CreditFilter is an optional CEL expression over id, title and vote_average.
	CreditFilter string `mapstructure:"credit_filter"`
}

type ClientConfig struct {
	BaseURL    string        `mapstructure:"base_url"`
	Language   string        `mapstructure:"language"`
	Timeout    time.Duration `mapstructure:"timeout"`
	MaxTries   int           `mapstructure:"max_tries"`
	RetryDelay time.Duration `mapstructure:"retry_delay"`
	Cache      CacheConfig   `mapstructure:"cache"`
}

type CacheConfig struct {
	// Dir enables the response cache when set.
	Dir string        `mapstructure:"dir"`
	TTL time.Duration `mapstructure:"ttl"`
}

// SetDefaults registers every default on v so that env lookups work for
// keys that never appear in a file.
func SetDefaults(v *viper.Viper) {
	d := Default()
	v.SetDefault("api_key", "")
	v.SetDefault("seed.id", d.Seed.ID)
	v.SetDefault("seed.name", "")
	v.SetDefault("build.min_vote_average", d.Build.MinVoteAverage)
	v.SetDefault("build.cast_limit", d.Build.CastLimit)
	v.SetDefault("build.rounds", d.Build.Rounds)
	v.SetDefault("build.strict", d.Build.Strict)
	v.SetDefault("build.credit_filter", "")
	v.SetDefault("tmdb.base_url", d.TMDb.BaseURL)
	v.SetDefault("tmdb.language", d.TMDb.Language)
	v.SetDefault("tmdb.timeout", d.TMDb.Timeout)
	v.SetDefault("tmdb.max_tries", d.TMDb.MaxTries)
	v.SetDefault("tmdb.retry_delay", d.TMDb.RetryDelay)
	v.SetDefault("tmdb.cache.dir", "")
	v.SetDefault("tmdb.cache.ttl", d.TMDb.Cache.TTL)
	v.SetDefault("output", d.Output)
	v.SetDefault("otlp_endpoint", "")
	v.SetDefault("mock", false)
	v.SetDefault("tui", false)
	v.SetDefault("json_logs", false)
	v.SetDefault("verbose", false)
}

// BindEnv makes COACTOR_SEED_ID style variables override file values.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes v into a Config and validates it.
func Load(v *viper.Viper) (Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	cfg.Seed = cfg.Seed.withDefaultName()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first invalid setting.
func (c Config) Validate() error {
	if c.APIKey == "" && !c.Mock {
		return fmt.Errorf("%w: api key is required (set %s_API_KEY or --api-key)", ErrInvalidConfig, EnvPrefix)
	}
	if id, err := strconv.ParseInt(c.Seed.ID, 10, 64); err != nil || id <= 0 {
		return fmt.Errorf("%w: seed id %q is not a positive integer", ErrInvalidConfig, c.Seed.ID)
	}
	if c.Build.CastLimit <= 0 {
		return fmt.Errorf("%w: cast limit must be positive, got %d", ErrInvalidConfig, c.Build.CastLimit)
	}
	if c.Build.Rounds < 0 {
		return fmt.Errorf("%w: rounds must not be negative, got %d", ErrInvalidConfig, c.Build.Rounds)
	}
	if c.Build.MinVoteAverage < 0 || c.Build.MinVoteAverage > 10 {
		return fmt.Errorf("%w: min vote average must be within 0..10, got %g", ErrInvalidConfig, c.Build.MinVoteAverage)
	}
	if c.TMDb.Timeout <= 0 {
		return fmt.Errorf("%w: timeout must be positive", ErrInvalidConfig)
	}
	if c.TMDb.MaxTries <= 0 {
		return fmt.Errorf("%w: max tries must be positive", ErrInvalidConfig)
	}
	return nil
}

// Engine converts the build settings for the expansion driver.
func (c Config) Engine() engine.Config {
	return engine.Config{
		SeedID:         c.Seed.ID,
		SeedName:       c.Seed.Name,
		MinVoteAverage: c.Build.MinVoteAverage,
		CastLimit:      c.Build.CastLimit,
		Rounds:         c.Build.Rounds,
		Strict:         c.Build.Strict,
	}
}
