// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Load builds the configuration from, in increasing precedence: built-in
// defaults, an optional YAML config file, environment variables (e.g.
// INBOXGEN_NUM_DAYS), and explicitly set command-line flags. flags may be
// nil; configFile may be empty, in which case ./configs and the working
// directory are searched for config.yaml.
func Load(flags *pflag.FlagSet, configFile string) (*Config, error) {
	loadEnvFile()

	v := viper.New()
	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./configs")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("INBOXGEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		if err := bindFlags(v, flags); err != nil {
			return nil, err
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// A missing implicit config file is fine; an unreadable explicit one is not.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok || configFile != "" {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	return Load(nil, path)
}

// loadEnvFile picks up a .env next to the binary or the working directory.
func loadEnvFile() {
	for _, path := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// setDefaults mirrors the reference fixture profile. Defaults are applied
// through viper so an explicit zero in a config file stays zero.
func setDefaults(v *viper.Viper) {
	v.SetDefault("output_dir", "./inbox")
	v.SetDefault("start_date", "2025-10-01")
	v.SetDefault("num_days", 10)
	v.SetDefault("num_merchants", 50)
	v.SetDefault("apps_per_day", 120)
	v.SetDefault("disb_rate", 0.55)
	v.SetDefault("pays_per_disb", 5)
	v.SetDefault("no_header_every_n_days", 3)
	v.SetDefault("duplicate_rate", 0.03)
	v.SetDefault("invalid_rate", 0.01)
	v.SetDefault("broken_ref_rate", 0.01)
	v.SetDefault("late_arrival_rate", 0.08)
	v.SetDefault("seed", 42)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
}

// bindFlags maps dashed flag names onto the underscored config keys. Only
// flags the user actually set override file and env values.
func bindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		"output_dir":             "output-dir",
		"start_date":             "start-date",
		"num_days":               "num-days",
		"num_merchants":          "num-merchants",
		"apps_per_day":           "apps-per-day",
		"disb_rate":              "disb-rate",
		"pays_per_disb":          "pays-per-disb",
		"no_header_every_n_days": "no-header-every-n-days",
		"duplicate_rate":         "duplicate-rate",
		"invalid_rate":           "invalid-rate",
		"broken_ref_rate":        "broken-ref-rate",
		"late_arrival_rate":      "late-arrival-rate",
		"seed":                   "seed",
	}
	for key, name := range bindings {
		flag := flags.Lookup(name)
		if flag == nil || !flag.Changed {
			continue
		}
		if err := v.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("bind flag %s: %w", name, err)
		}
	}
	return nil
}
