package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Window   WindowConfig  `mapstructure:"window"`
	Text     TextConfig    `mapstructure:"text"`
	Model    ModelConfig   `mapstructure:"model"`
	Runtime  RuntimeConfig `mapstructure:"runtime"`
	LogLevel string        `mapstructure:"log_level"`
}

type WindowConfig struct {
	Size          int     `mapstructure:"size"`
	Step          int     `mapstructure:"step"`
	TrainFraction float64 `mapstructure:"train_fraction"`
}

type TextConfig struct {
	Alphabet  string `mapstructure:"alphabet"`
	Lowercase bool   `mapstructure:"lowercase"`
	Fold      bool   `mapstructure:"fold"`
}

type ModelConfig struct {
	SeriesUnits int    `mapstructure:"series_units"`
	TextUnits   int    `mapstructure:"text_units"`
	Seed        uint64 `mapstructure:"seed"`
}

type RuntimeConfig struct {
	Threads int `mapstructure:"threads"`
}

type LoadOptions struct {
	Cmd        flagBinder
	ConfigFile string
	Defaults   Config
}

type flagBinder interface {
	Flags() *pflag.FlagSet
}

func DefaultConfig() Config {
	return Config{
		Window: WindowConfig{
			Size:          100,
			Step:          5,
			TrainFraction: 0.67,
		},
		Text: TextConfig{
			Alphabet:  "",
			Lowercase: true,
			Fold:      false,
		},
		Model: ModelConfig{
			SeriesUnits: 5,
			TextUnits:   200,
			Seed:        1,
		},
		Runtime: RuntimeConfig{
			Threads: 1,
		},
		LogLevel: "info",
	}
}

func RegisterFlags(fs *pflag.FlagSet, defaults Config) {
	fs.Int("window-size", defaults.Window.Size, "Characters or samples per input window")
	fs.Int("window-step", defaults.Window.Step, "Stride between text window start offsets")
	fs.Float64("window-train-fraction", defaults.Window.TrainFraction, "Leading fraction of pairs kept for training")
	fs.String("text-alphabet", defaults.Text.Alphabet, "Characters kept by the cleaner besides space (empty = a-z and !,.:;?)")
	fs.Bool("text-lowercase", defaults.Text.Lowercase, "Lowercase the corpus before cleaning")
	fs.Bool("text-fold", defaults.Text.Fold, "Strip diacritics before cleaning")
	fs.Int("model-series-units", defaults.Model.SeriesUnits, "LSTM width of the regression network")
	fs.Int("model-text-units", defaults.Model.TextUnits, "LSTM width of the character network")
	fs.Uint64("model-seed", defaults.Model.Seed, "Seed for weight initialization")
	fs.Int("runtime-threads", defaults.Runtime.Threads, "Tensor kernel goroutines")
	fs.String("log-level", defaults.LogLevel, "Log level (debug|info|warn|error)")
}

func Load(opts LoadOptions) (Config, error) {
	v := viper.New()

	setDefaults(v, opts.Defaults)
	if opts.Cmd != nil {
		if err := bindFlags(v, opts.Cmd.Flags()); err != nil {
			return Config{}, err
		}
	}

	v.SetEnvPrefix("RNNPREP")
	replacer := strings.NewReplacer("-", "_", ".", "_", "__", "_")
	v.SetEnvKeyReplacer(replacer)
	v.AutomaticEnv()

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	} else {
		v.SetConfigName("rnnprep")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Config{}, fmt.Errorf("read config file: %w", err)
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("decode config: %w", err)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, c Config) {
	v.SetDefault("window.size", c.Window.Size)
	v.SetDefault("window.step", c.Window.Step)
	v.SetDefault("window.train_fraction", c.Window.TrainFraction)
	v.SetDefault("text.alphabet", c.Text.Alphabet)
	v.SetDefault("text.lowercase", c.Text.Lowercase)
	v.SetDefault("text.fold", c.Text.Fold)
	v.SetDefault("model.series_units", c.Model.SeriesUnits)
	v.SetDefault("model.text_units", c.Model.TextUnits)
	v.SetDefault("model.seed", c.Model.Seed)
	v.SetDefault("runtime.threads", c.Runtime.Threads)
	v.SetDefault("log_level", c.LogLevel)
}

// flagKeys maps nested config keys to their command line flags.
var flagKeys = []struct {
	key  string
	flag string
}{
	{"window.size", "window-size"},
	{"window.step", "window-step"},
	{"window.train_fraction", "window-train-fraction"},
	{"text.alphabet", "text-alphabet"},
	{"text.lowercase", "text-lowercase"},
	{"text.fold", "text-fold"},
	{"model.series_units", "model-series-units"},
	{"model.text_units", "model-text-units"},
	{"model.seed", "model-seed"},
	{"runtime.threads", "runtime-threads"},
	{"log_level", "log-level"},
}

func bindFlags(v *viper.Viper, fs *pflag.FlagSet) error {
	for _, fk := range flagKeys {
		f := fs.Lookup(fk.flag)
		if f == nil {
			continue
		}

		if err := v.BindPFlag(fk.key, f); err != nil {
			return fmt.Errorf("bind flag %s: %w", fk.flag, err)
		}
	}

	return nil
}

// Validate reports settings that no command can run with.
func (c Config) Validate() error {
	if c.Window.Size < 1 {
		return fmt.Errorf("window.size must be >= 1, got %d", c.Window.Size)
	}

	if c.Window.Step < 1 {
		return fmt.Errorf("window.step must be >= 1, got %d", c.Window.Step)
	}

	if c.Window.TrainFraction <= 0 || c.Window.TrainFraction > 1 {
		return fmt.Errorf("window.train_fraction must be in (0, 1], got %v", c.Window.TrainFraction)
	}

	if c.Runtime.Threads < 1 {
		return fmt.Errorf("runtime.threads must be >= 1, got %d", c.Runtime.Threads)
	}

	return nil
}
