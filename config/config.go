package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/pelletier/go-toml/v2"

	"github.com/fabriqs/paysheet/payment"
)

const (
	EnvAPIURL         = "API_URL"
	EnvPublishableKey = "STRIPE_PUBLISHABLE_KEY"
	EnvPort           = "PORT"
)

//go:embed defaults.toml
var defaults []byte

// Config is read once at startup and treated as immutable afterwards.
type Config struct {
	Locale         string                 `toml:"locale" validate:"required,bcp47_language_tag"`
	PublishableKey string                 `toml:"-" validate:"required,startswith=pk_"`
	API            API                    `toml:"api"`
	Merchant       payment.MerchantConfig `toml:"merchant"`
	Purchase       Purchase               `toml:"purchase"`
	Checkout       Checkout               `toml:"checkout"`
	Log            Log                    `toml:"log"`
	Sentry         Sentry                 `toml:"sentry"`
	Server         Server                 `toml:"server"`
}

type API struct {
	URL     string   `toml:"url" validate:"required,url"`
	Timeout Duration `toml:"timeout"`
}

// Purchase is the single fixed-price item sold by the checkout.
type Purchase struct {
	Amount      int64  `toml:"amount" validate:"gt=0"`
	Currency    string `toml:"currency" validate:"required,iso4217"`
	Description string `toml:"description"`
}

func (p Purchase) Price() (payment.Money, error) {
	return payment.NewMoney(p.Amount, p.Currency)
}

type Checkout struct {
	// RestartDelay holds a failed attempt before the next one starts.
	RestartDelay Duration `toml:"restart_delay"`
}

type Log struct {
	Level  string `toml:"level" validate:"oneof=trace debug info warn error"`
	Format string `toml:"format" validate:"oneof=text json"`
}

type Sentry struct {
	DSN         string `toml:"dsn" validate:"omitempty,url"`
	Environment string `toml:"environment"`
}

type Server struct {
	Port          string   `toml:"port" validate:"required,numeric"`
	IntentTTL     Duration `toml:"intent_ttl"`
	SweepInterval Duration `toml:"sweep_interval"`
}

// Duration lets TOML carry values like "15s".
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.String()), nil
}

// Default returns the embedded deploy-time configuration without looking at
// the environment.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := toml.Unmarshal(defaults, cfg); err != nil {
		return nil, fmt.Errorf("decode defaults: %w", err)
	}
	return cfg, nil
}

// Load reads an optional .env file, applies API_URL, STRIPE_PUBLISHABLE_KEY and
// PORT on top of the defaults and validates the result.
func Load(envFiles ...string) (*Config, error) {
	if err := godotenv.Load(envFiles...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load env file: %w", err)
	}

	cfg, err := Default()
	if err != nil {
		return nil, err
	}

	if v, ok := os.LookupEnv(EnvAPIURL); ok && v != "" {
		cfg.API.URL = v
	}
	cfg.PublishableKey = os.Getenv(EnvPublishableKey)
	if v, ok := os.LookupEnv(EnvPort); ok && v != "" {
		cfg.Server.Port = v
	}

	if err := Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Validate(cfg *Config) error {
	if err := validator.New().Struct(cfg); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if cfg.Merchant.CurrencyCode != cfg.Purchase.Currency {
		return fmt.Errorf("invalid configuration: merchant currency %s does not match purchase currency %s",
			cfg.Merchant.CurrencyCode, cfg.Purchase.Currency)
	}
	return nil
}
