package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// IC host defaults, selected by APP_ENV unless IC_HOST overrides.
const (
	productionICHost = "https://icp-api.io"
	localICHost      = "http://127.0.0.1:4943"
)

// Config is centralized process configuration.
// Keep infra values here and pass typed config into builders.
type Config struct {
	ServiceName string
	AppEnv      string
	HTTPPort    string
	PostgresDSN string

	// Remote ledger target. CanisterID empty disables the live backend
	// entirely and every call serves fixtures.
	ICHost       string
	CanisterID   string
	ProbeTimeout time.Duration

	// Pinata pinning credentials. Both empty disables the content store
	// and mint media degrades to the placeholder.
	PinataAPIKey    string
	PinataSecretKey string

	// Local keystore identity standing in for a browser wallet. Empty
	// principal means connect attempts fail with provider unavailable.
	WalletPrincipal  string
	WalletBalanceE8s uint64
	WalletPreLinked  bool

	AdminPrincipals     []string
	ModeratorPrincipals []string

	FixtureLatency time.Duration
	TradeTopic     string
}

func Load() (Config, error) {
	// Missing .env is fine; real environments inject variables directly.
	_ = godotenv.Load()

	service := os.Getenv("SERVICE_NAME")
	if service == "" {
		service = "mintmymoment"
	}

	appEnv := strings.TrimSpace(strings.ToLower(os.Getenv("APP_ENV")))
	if appEnv == "" {
		appEnv = "local"
	}

	port := os.Getenv("HTTP_PORT")
	if port == "" {
		port = "8080"
	}

	icHost := strings.TrimSpace(os.Getenv("IC_HOST"))
	if icHost == "" {
		if appEnv == "production" {
			icHost = productionICHost
		} else {
			icHost = localICHost
		}
	}

	topic := strings.TrimSpace(os.Getenv("TRADE_TOPIC"))
	if topic == "" {
		topic = "trading.trades"
	}

	admins := envList("ADMIN_PRINCIPALS")
	if len(admins) == 0 {
		admins = []string{"rrkah-fqaaa-aaaaa-aaaaq-cai"}
	}
	moderators := envList("MODERATOR_PRINCIPALS")
	if len(moderators) == 0 {
		moderators = []string{"rdmx6-jaaaa-aaaah-qcaiq-cai"}
	}

	return Config{
		ServiceName: service,
		AppEnv:      appEnv,
		HTTPPort:    port,
		PostgresDSN: os.Getenv("POSTGRES_DSN"),

		ICHost:       icHost,
		CanisterID:   strings.TrimSpace(os.Getenv("CANISTER_ID")),
		ProbeTimeout: envDuration("LEDGER_PROBE_TIMEOUT", 3*time.Second),

		PinataAPIKey:    strings.TrimSpace(os.Getenv("PINATA_API_KEY")),
		PinataSecretKey: strings.TrimSpace(os.Getenv("PINATA_SECRET_API_KEY")),

		WalletPrincipal:  strings.TrimSpace(os.Getenv("WALLET_PRINCIPAL")),
		WalletBalanceE8s: envUint("WALLET_BALANCE_E8S", 0),
		WalletPreLinked:  envBool("WALLET_PRELINKED", false),

		AdminPrincipals:     admins,
		ModeratorPrincipals: moderators,

		FixtureLatency: envDuration("FIXTURE_LATENCY", 300*time.Millisecond),
		TradeTopic:     topic,
	}, nil
}

func envList(name string) []string {
	var values []string
	for _, value := range strings.Split(os.Getenv(name), ",") {
		value = strings.TrimSpace(value)
		if value != "" {
			values = append(values, value)
		}
	}
	return values
}

func envUint(name string, fallback uint64) uint64 {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	if parsed, err := strconv.ParseUint(raw, 10, 64); err == nil {
		return parsed
	}
	return fallback
}

func envBool(name string, fallback bool) bool {
	raw := strings.TrimSpace(strings.ToLower(os.Getenv(name)))
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "t", "yes", "y", "on":
		return true
	case "0", "false", "f", "no", "n", "off":
		return false
	default:
		return fallback
	}
}

func envDuration(name string, fallback time.Duration) time.Duration {
	raw := strings.TrimSpace(os.Getenv(name))
	if raw == "" {
		return fallback
	}
	if parsed, err := time.ParseDuration(raw); err == nil {
		return parsed
	}
	if millis, err := strconv.Atoi(raw); err == nil {
		return time.Duration(millis) * time.Millisecond
	}
	return fallback
}
