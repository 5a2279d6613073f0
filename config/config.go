/*
Package config loads service configuration.

Configuration comes from a YAML file named by CONFIG_PATH, with
environment-variable overrides; when CONFIG_PATH is unset only the
environment (and defaults) apply. Defaults reproduce the Star Security
biweekly rules, so a bare `server` binary behaves exactly like the
original payroll finisher.
*/
package config

import (
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/star-security/payroll-finisher/payroll"
)

type Config struct {
	Env        string `yaml:"env" env:"ENV" env-default:"dev"`
	HTTPServer `yaml:"http_server"`
	Payroll    Payroll `yaml:"payroll"`
}

type HTTPServer struct {
	Address     string        `yaml:"address" env:"HTTP_ADDRESS" env-default:":8080"`
	Timeout     time.Duration `yaml:"timeout" env:"HTTP_TIMEOUT" env-default:"15s"`
	IdleTimeout time.Duration `yaml:"idle_timeout" env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
}

type Payroll struct {
	OvertimeThresholdHours string `yaml:"overtime_threshold_hours" env:"OT_THRESHOLD_HOURS" env-default:"88"`
	HolidayItemLabel       string `yaml:"holiday_item_label" env:"HOLIDAY_ITEM_LABEL" env-default:"PHP (Holiday)"`
	OvertimeSuffix         string `yaml:"overtime_suffix" env:"OT_SUFFIX" env-default:" OT/ STAT"`
	CustomerValue          string `yaml:"customer_value" env:"CUSTOMER_VALUE" env-default:"STAR TOTAL"`
}

// MustLoad reads the configuration or exits.
func MustLoad() *Config {
	var cfg Config

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			log.Fatalf("cannot read config %s: %s", path, err)
		}
		return &cfg
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config from environment: %s", err)
	}
	return &cfg
}

// AllocatorConfig converts the loaded values into the allocator rule set.
// A malformed threshold is a configuration error, so it exits.
func (c *Config) AllocatorConfig() payroll.Config {
	threshold, err := payroll.ParseHours(c.Payroll.OvertimeThresholdHours)
	if err != nil {
		log.Fatalf("invalid overtime threshold %q: %s", c.Payroll.OvertimeThresholdHours, err)
	}
	return payroll.Config{
		OvertimeThreshold: threshold,
		HolidayItemLabel:  c.Payroll.HolidayItemLabel,
		OvertimeSuffix:    c.Payroll.OvertimeSuffix,
		CustomerValue:     c.Payroll.CustomerValue,
	}
}
