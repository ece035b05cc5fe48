package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/hyperterse/seeder/core/domain"
	"github.com/hyperterse/seeder/core/generator"
	apperrors "github.com/hyperterse/seeder/core/shared/errors"
)

// DefaultProfile is read from the working directory when no --config is given.
const DefaultProfile = "seeder.yaml"

type ReviewRange struct {
	Min int `yaml:"min" validate:"gte=0"`
	Max int `yaml:"max" validate:"gtefield=Min"`
}

// Config is the resolved run configuration.
type Config struct {
	URI          string        `yaml:"uri"`
	Database     string        `yaml:"database" validate:"required"`
	Users        int           `yaml:"users" validate:"gte=0"`
	Orders       int           `yaml:"orders" validate:"gte=0"`
	Reviews      ReviewRange   `yaml:"reviews"`
	Seed         uint64        `yaml:"seed"`
	StrictEmails bool          `yaml:"strict_emails"`
	Catalog      string        `yaml:"catalog"`
	Timeout      time.Duration `yaml:"timeout" validate:"gt=0"`
	MetricsFile  string        `yaml:"metrics_file"`
	LogLevel     string        `yaml:"log_level" validate:"omitempty,oneof=error warn info debug 1 2 3 4"`

	DryRun bool `yaml:"-"`
	// Profile is the YAML file the values came from, empty when none was read.
	Profile string `yaml:"-"`
}

// Overrides carries command-line values. Nil pointers and empty strings
// leave the lower layers alone.
type Overrides struct {
	Profile     string
	URI         string
	Database    string
	Catalog     string
	MetricsFile string
	Users       *int
	Orders      *int
	Seed        *uint64
	DryRun      bool
}

// Default returns the built-in settings.
func Default() *Config {
	opts := generator.DefaultOptions()
	return &Config{
		Database:     "ecommerce",
		Users:        opts.Users,
		Orders:       opts.Orders,
		Reviews:      ReviewRange{Min: opts.ReviewsMin, Max: opts.ReviewsMax},
		StrictEmails: opts.StrictEmails,
		Timeout:      30 * time.Second,
	}
}

// Load layers defaults, the YAML profile, .env files, the environment and
// flags, in that order, then validates the result.
func Load(o Overrides) (*Config, error) {
	cfg := Default()

	profile, err := resolveProfile(o.Profile)
	if err != nil {
		return nil, err
	}
	if profile != "" {
		if err := cfg.readProfile(profile); err != nil {
			return nil, err
		}
		LoadEnvFiles(filepath.Dir(profile))
	} else {
		LoadEnvFiles("")
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	cfg.applyOverrides(o)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func resolveProfile(path string) (string, error) {
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return "", apperrors.WrapError(apperrors.ErrCodeConfiguration, "config file "+path+" not readable", err)
		}
		return path, nil
	}
	if _, err := os.Stat(DefaultProfile); err == nil {
		return DefaultProfile, nil
	}
	return "", nil
}

func (c *Config) readProfile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrCodeConfiguration, "failed to read "+path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return apperrors.WrapError(apperrors.ErrCodeConfiguration, "failed to parse "+path, err)
	}
	c.Profile = path
	// Catalog paths in a profile are relative to the profile.
	if c.Catalog != "" && !filepath.IsAbs(c.Catalog) {
		c.Catalog = filepath.Join(filepath.Dir(path), c.Catalog)
	}
	return nil
}

func (c *Config) applyEnv() error {
	overrideString("MONGODB_URI", &c.URI)
	overrideString("DB_NAME", &c.Database)
	overrideString("SEEDER_METRICS_FILE", &c.MetricsFile)
	overrideString("SEEDER_LOG_LEVEL", &c.LogLevel)
	if err := overrideInt("SEED_USERS_COUNT", &c.Users); err != nil {
		return err
	}
	if err := overrideInt("SEED_ORDERS_COUNT", &c.Orders); err != nil {
		return err
	}
	if value := os.Getenv("SEED_RANDOM_SEED"); value != "" {
		parsed, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return apperrors.WrapError(apperrors.ErrCodeConfiguration, "SEED_RANDOM_SEED must be a non-negative integer", err)
		}
		c.Seed = parsed
	}
	return nil
}

func (c *Config) applyOverrides(o Overrides) {
	if o.URI != "" {
		c.URI = o.URI
	}
	if o.Database != "" {
		c.Database = o.Database
	}
	if o.Catalog != "" {
		c.Catalog = o.Catalog
	}
	if o.MetricsFile != "" {
		c.MetricsFile = o.MetricsFile
	}
	if o.Users != nil {
		c.Users = *o.Users
	}
	if o.Orders != nil {
		c.Orders = *o.Orders
	}
	if o.Seed != nil {
		c.Seed = *o.Seed
	}
	c.DryRun = c.DryRun || o.DryRun
}

func overrideString(name string, target *string) {
	if value := os.Getenv(name); value != "" {
		*target = value
	}
}

func overrideInt(name string, target *int) error {
	value := os.Getenv(name)
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return apperrors.WrapError(apperrors.ErrCodeConfiguration, name+" must be an integer", err)
	}
	*target = parsed
	return nil
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks field constraints and that a store URI is present unless
// the run is dry.
func (c *Config) Validate() error {
	var problems []string
	if err := validate.Struct(c); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return apperrors.WrapError(apperrors.ErrCodeConfiguration, "invalid configuration", err)
		}
		for _, fe := range fieldErrs {
			problems = append(problems, fmt.Sprintf("%s failed %q (value %v)", fe.Namespace(), fe.Tag(), fe.Value()))
		}
	}
	if !c.DryRun {
		switch {
		case c.URI == "":
			problems = append(problems, "MONGODB_URI is not set")
		case !strings.HasPrefix(c.URI, "mongodb://") && !strings.HasPrefix(c.URI, "mongodb+srv://"):
			problems = append(problems, "MONGODB_URI must start with mongodb:// or mongodb+srv://")
		}
	}
	if len(problems) > 0 {
		return apperrors.Configuration("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return nil
}

// LoadCatalog returns the configured catalog, or the built-in one.
func (c *Config) LoadCatalog() ([]domain.ProductTemplate, error) {
	if c.Catalog == "" {
		return generator.DefaultCatalog(), nil
	}
	return generator.LoadCatalog(c.Catalog)
}

// GeneratorOptions maps the run settings onto the assembler options.
func (c *Config) GeneratorOptions(catalog []domain.ProductTemplate) generator.Options {
	return generator.Options{
		Users:        c.Users,
		Orders:       c.Orders,
		ReviewsMin:   c.Reviews.Min,
		ReviewsMax:   c.Reviews.Max,
		Catalog:      catalog,
		StrictEmails: c.StrictEmails,
		Seed:         c.Seed,
		Now:          time.Now,
	}
}
