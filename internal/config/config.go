// Package config loads vetflow settings from YAML files.
package config

import "time"

// Config is the complete vetflow configuration.
type Config struct {
	Practice PracticeConfig `yaml:"practice"`
	Database DatabaseConfig `yaml:"database"`
	Dialogs  DialogConfig   `yaml:"dialogs"`
	Print    PrintConfig    `yaml:"print"`
	Retry    RetryConfig    `yaml:"retry"`
}

// PracticeConfig names the session's practice, location, till and clinician.
type PracticeConfig struct {
	Name      string `yaml:"name"`
	Location  string `yaml:"location"`
	Till      string `yaml:"till"`
	Clinician string `yaml:"clinician"`
}

// DatabaseConfig locates the object store. An empty path uses an in-memory store.
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// DialogConfig controls how dialogs are answered.
type DialogConfig struct {
	AutoApprove bool `yaml:"auto_approve"`
}

// PrintConfig controls document printing.
type PrintConfig struct {
	Enabled bool   `yaml:"enabled"`
	Printer string `yaml:"printer"`
}

// RetryConfig bounds how often a conflicting save is retried.
type RetryConfig struct {
	Attempts uint64        `yaml:"attempts"`
	Interval time.Duration `yaml:"interval"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Practice: PracticeConfig{
			Name:      "Vets R Us",
			Location:  "Main Branch",
			Till:      "Main Till",
			Clinician: "Dr Vet",
		},
		Print: PrintConfig{
			Enabled: true,
			Printer: "default",
		},
		Retry: RetryConfig{
			Attempts: 3,
			Interval: 50 * time.Millisecond,
		},
	}
}
