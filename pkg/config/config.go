// Package config loads the pipeline configuration from defaults, an optional
// YAML file and REGPIPE_* environment variables.
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/YuminosukeSato/regpipe/pkg/errors"
)

// DefaultModel is the model kind used when none is configured.
const DefaultModel = "LinearRegressionModel"

// Config is the full pipeline configuration.
type Config struct {
	DataPath     string                 `mapstructure:"data_path" yaml:"data_path"`
	Model        string                 `mapstructure:"model" yaml:"model"`
	ModelOptions map[string]interface{} `mapstructure:"model_options" yaml:"model_options,omitempty"`

	// Cleaning schema
	LabelColumn    string   `mapstructure:"label_column" yaml:"label_column"`
	DropColumns    []string `mapstructure:"drop_columns" yaml:"drop_columns"`
	MedianColumns  []string `mapstructure:"median_columns" yaml:"median_columns"`
	TextFillColumn string   `mapstructure:"text_fill_column" yaml:"text_fill_column"`
	TextFillValue  string   `mapstructure:"text_fill_value" yaml:"text_fill_value"`

	// Split
	TestSize   float64 `mapstructure:"test_size" yaml:"test_size"`
	RandomSeed uint64  `mapstructure:"random_seed" yaml:"random_seed"`

	Delimiter string `mapstructure:"delimiter" yaml:"delimiter"`
	LogLevel  string `mapstructure:"log_level" yaml:"log_level"`
	PlotPath  string `mapstructure:"plot_path" yaml:"plot_path,omitempty"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("data_path", filepath.Join("data", "customers_dataset.csv"))
	v.SetDefault("model", DefaultModel)
	v.SetDefault("label_column", "review_score")
	v.SetDefault("drop_columns", []string{
		"order_approved_at",
		"order_delivered_carrier_date",
		"order_delivered_customer_date",
		"order_estimated_delivery_date",
		"order_purchase_timestamp",
		"customer_zip_code_prefix",
		"order_item_id",
	})
	v.SetDefault("median_columns", []string{
		"product_weight_g",
		"product_length_cm",
		"product_height_cm",
		"product_width_cm",
	})
	v.SetDefault("text_fill_column", "review_comment_message")
	v.SetDefault("text_fill_value", "No review")
	v.SetDefault("test_size", 0.2)
	v.SetDefault("random_seed", 42)
	v.SetDefault("delimiter", ",")
	v.SetDefault("log_level", "info")
	v.SetDefault("plot_path", "")
}

// Default returns the built-in configuration, ignoring env and files.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		panic(err)
	}
	return &c
}

// Load loads configuration from file, env, and defaults.
// Precedence: env > config file > defaults. An empty cfgFile skips the file.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("REGPIPE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, errors.NewIOError("config.Load", cfgFile, err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "unmarshal config")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks value ranges. It does not touch the filesystem.
func (c *Config) Validate() error {
	if c.Model == "" {
		return errors.NewValidationError("model", "must not be empty", c.Model)
	}
	if c.LabelColumn == "" {
		return errors.NewValidationError("label_column", "must not be empty", c.LabelColumn)
	}
	if c.TestSize <= 0 || c.TestSize >= 1 {
		return errors.NewValidationError("test_size", "must be in (0, 1)", c.TestSize)
	}
	if len([]rune(c.Delimiter)) != 1 {
		return errors.NewValidationError("delimiter", "must be a single character", c.Delimiter)
	}
	for _, col := range c.DropColumns {
		if col == c.LabelColumn {
			return errors.NewValidationError("drop_columns", "must not contain the label column", col)
		}
	}
	switch c.LogLevel {
	case "", "debug", "info", "warn", "error":
	default:
		return errors.NewValidationError("log_level", "must be one of debug, info, warn, error", c.LogLevel)
	}
	return nil
}

// DelimiterRune returns the configured delimiter as a rune, ',' when unset.
func (c *Config) DelimiterRune() rune {
	if r := []rune(c.Delimiter); len(r) == 1 {
		return r[0]
	}
	return ','
}

// Save writes c as YAML to path, creating the parent directory.
func Save(c *Config, path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(err, "mkdir config dir")
		}
	}
	b, err := yaml.Marshal(c)
	if err != nil {
		return errors.Wrap(err, "marshal yaml")
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return errors.Wrap(err, "write config")
	}
	return nil
}
