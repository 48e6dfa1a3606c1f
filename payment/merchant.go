package payment

// MerchantConfig is handed to the payment sheet together with every client
// secret. It is loaded once at startup and never mutated.
type MerchantConfig struct {
	DisplayName                 string `toml:"display_name" validate:"required"`
	CountryCode                 string `toml:"country_code" validate:"required,iso3166_1_alpha2"`
	CurrencyCode                string `toml:"currency_code" validate:"required,iso4217"`
	TestMode                    bool   `toml:"test_mode"`
	AllowsDelayedPaymentMethods bool   `toml:"allows_delayed_payment_methods"`
}
