package config

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

// Config holds webhook relay configuration loaded from the environment.
type Config struct {
	AppName            string
	LogLevel           string
	HTTPPort           string
	SlackWebhookURL    string
	TwilioAccountSID   string
	TwilioAuthToken    string
	DefaultSender      string
	SecondaryRecipient string
	ConfirmationText   string
	CountryCode        string
	TrunkPrefix        string
	MappingFile        string
	LogEndpoint        string
	ProviderTimeout    time.Duration
}

const defaultConfirmationText = "Thanks for getting in touch! We've received your enquiry and will get back to you shortly."

// Load loads configuration and performs basic validation.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		AppName:            getEnv("APP_NAME", "twilio-webhook"),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		HTTPPort:           getEnv("HTTP_PORT", "8080"),
		SlackWebhookURL:    getEnv("SLACK_WEBHOOK_URL", ""),
		TwilioAccountSID:   getEnv("TWILIO_ACCOUNT_SID", ""),
		TwilioAuthToken:    getEnv("TWILIO_AUTH_TOKEN", ""),
		DefaultSender:      getEnv("TWILIO_PHONE_NUMBER", ""),
		SecondaryRecipient: getEnv("SECONDARY_PHONE_NUMBER", ""),
		ConfirmationText:   getEnv("CONFIRMATION_TEXT", defaultConfirmationText),
		CountryCode:        getEnv("DEFAULT_COUNTRY_CODE", "44"),
		TrunkPrefix:        getEnv("TRUNK_PREFIX", "0"),
		MappingFile:        getEnv("MAPPING_FILE", "numbers.csv"),
		LogEndpoint:        getEnv("LOG_ENDPOINT", ""),
		ProviderTimeout:    getEnvAsDuration("PROVIDER_TIMEOUT", 10*time.Second),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var missing []string
	if c.TwilioAccountSID == "" {
		missing = append(missing, "TWILIO_ACCOUNT_SID")
	}
	if c.TwilioAuthToken == "" {
		missing = append(missing, "TWILIO_AUTH_TOKEN")
	}
	if c.DefaultSender == "" {
		missing = append(missing, "TWILIO_PHONE_NUMBER")
	}
	if c.SecondaryRecipient == "" {
		missing = append(missing, "SECONDARY_PHONE_NUMBER")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required environment variables: %v", missing)
	}
	return nil
}

func getEnv(key, def string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return def
	}
	return value
}

func getEnvAsDuration(key string, def time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		d, err := time.ParseDuration(value)
		if err != nil {
			log.Printf("invalid duration for %s, using default %s: %v", key, def, err)
			return def
		}
		return d
	}
	return def
}
