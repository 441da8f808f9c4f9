// internal/common/config/config.go
package config

import "time"

// Config is the main application configuration struct. Every parameter the
// generation core consumes lives here; rates are probabilities in [0,1].
//
// There is deliberately no validation: a degenerate value (negative rate,
// zero merchant count) degrades into empty or trivial output instead of
// failing, since the generator's whole job is producing defective data.
type Config struct {
	OutputDir          string  `mapstructure:"output_dir"`
	StartDate          string  `mapstructure:"start_date"` // first batch date, YYYY-MM-DD
	NumDays            int     `mapstructure:"num_days"`
	NumMerchants       int     `mapstructure:"num_merchants"`
	AppsPerDay         int     `mapstructure:"apps_per_day"`
	DisbRate           float64 `mapstructure:"disb_rate"` // fraction of APPROVED apps disbursed
	PaysPerDisb        int     `mapstructure:"pays_per_disb"`
	NoHeaderEveryNDays int     `mapstructure:"no_header_every_n_days"` // 0 disables header omission
	DuplicateRate      float64 `mapstructure:"duplicate_rate"`
	InvalidRate        float64 `mapstructure:"invalid_rate"`
	BrokenRefRate      float64 `mapstructure:"broken_ref_rate"`
	LateArrivalRate    float64 `mapstructure:"late_arrival_rate"`
	Seed               int64   `mapstructure:"seed"`

	Logging LoggingConfig `mapstructure:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

const dateLayout = "2006-01-02"

// BatchStartDate parses the configured start date.
func (c *Config) BatchStartDate() (time.Time, error) {
	return time.Parse(dateLayout, c.StartDate)
}
