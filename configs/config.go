package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

func Config(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Println("Warning: .env file not found, reading from system environment variables")
	}

	return os.Getenv(key)
}

const (
	revolutSandboxURL = "https://sandbox-merchant.revolut.com/api"
	revolutLiveURL    = "https://merchant.revolut.com/api"
	revolutAPIVersion = "2024-09-01"

	duffelBaseURL = "https://api.duffel.com"
	duffelVersion = "v1"

	defaultFrontendURL = "https://payment.oggotrip.com"
)

// RevolutConfig is loaded once at startup and injected into the order
// client so nothing reads the environment mid-request.
type RevolutConfig struct {
	SecretKey  string
	APIVersion string
	TestMode   bool
	BaseURL    string
}

func LoadRevolutConfig() RevolutConfig {
	cfg := RevolutConfig{
		SecretKey:  Config("REVOLUT_SECRET_KEY"),
		APIVersion: Config("REVOLUT_API_VERSION"),
		TestMode:   Config("REVOLUT_TEST_MODE") == "true",
	}
	if cfg.APIVersion == "" {
		cfg.APIVersion = revolutAPIVersion
	}
	if cfg.TestMode {
		cfg.BaseURL = Config("REVOLUT_BASE_URL_TEST")
		if cfg.BaseURL == "" {
			cfg.BaseURL = revolutSandboxURL
		}
	} else {
		cfg.BaseURL = Config("REVOLUT_BASE_URL_LIVE")
		if cfg.BaseURL == "" {
			cfg.BaseURL = revolutLiveURL
		}
	}
	return cfg
}

type DuffelConfig struct {
	APIKey  string
	BaseURL string
	Version string
}

func LoadDuffelConfig() DuffelConfig {
	cfg := DuffelConfig{
		APIKey:  Config("DUFFEL_API_KEY"),
		BaseURL: Config("DUFFEL_BASE_URL"),
		Version: Config("DUFFEL_VERSION"),
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = duffelBaseURL
	}
	if cfg.Version == "" {
		cfg.Version = duffelVersion
	}
	return cfg
}

// RedirectConfig feeds the redirect base resolver: an optional explicit
// base wins over request headers, and the frontend URL is the last resort.
type RedirectConfig struct {
	ConfiguredBase string
	Fallback       string
}

func LoadRedirectConfig() RedirectConfig {
	cfg := RedirectConfig{
		ConfiguredBase: Config("PAYMENT_REDIRECT_BASE"),
		Fallback:       Config("FRONTEND_URL"),
	}
	if cfg.Fallback == "" {
		cfg.Fallback = defaultFrontendURL
	}
	return cfg
}

func IsProduction() bool {
	return Config("APP_ENV") == "production"
}
