package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/noah-isme/pos-tender/internal/common"
	"github.com/noah-isme/pos-tender/internal/payment"
)

// DefaultPaymentMethods is used when POS_PAYMENT_METHODS is unset.
const DefaultPaymentMethods = "Cash:Cash:default:returns,Card:Bank,Customer Credit:General"

// Config holds application configuration loaded from the environment.
type Config struct {
	AppEnv           string
	LogFormat        string
	LogLevel         string
	MetricsNamespace string
	Currency         string
	Locale           string
	PaymentMethods   []payment.Method
	Policy           payment.Policy
}

// Load reads configuration from environment variables and optional .env files.
func Load() (*Config, error) {
	_ = godotenv.Load()

	k := koanf.New(".")
	if err := k.Load(env.Provider("", ".", func(s string) string { return s }), nil); err != nil {
		return nil, fmt.Errorf("load env: %w", err)
	}

	methods, err := ParsePaymentMethods(valueOrDefault(k.String("POS_PAYMENT_METHODS"), DefaultPaymentMethods))
	if err != nil {
		return nil, fmt.Errorf("POS_PAYMENT_METHODS: %w", err)
	}

	cfg := &Config{
		AppEnv:           valueOrDefault(k.String("APP_ENV"), "development"),
		LogFormat:        valueOrDefault(k.String("OBS_LOG_FORMAT"), "json"),
		LogLevel:         valueOrDefault(k.String("OBS_LOG_LEVEL"), "info"),
		MetricsNamespace: valueOrDefault(k.String("METRICS_NAMESPACE"), "pos"),
		Currency:         strings.ToUpper(valueOrDefault(k.String("POS_CURRENCY"), "USD")),
		Locale:           valueOrDefault(k.String("POS_LOCALE"), "en-US"),
		PaymentMethods:   methods,
		Policy: payment.Policy{
			AllowPartialPayment: common.ParseBool(k.String("POS_ALLOW_PARTIAL_PAYMENT")),
			AllowWriteOffChange: common.ParseBool(k.String("POS_ALLOW_WRITE_OFF_CHANGE")),
		},
	}
	if len(cfg.Currency) != 3 {
		return nil, fmt.Errorf("POS_CURRENCY must be a 3-letter code, got %q", cfg.Currency)
	}
	return cfg, nil
}

// ParsePaymentMethods parses "Name:Type[:flag...]" items separated by commas.
// Flags are "default" and "returns". A missing type defaults to Cash.
func ParsePaymentMethods(value string) ([]payment.Method, error) {
	items := common.SplitAndTrim(value)
	methods := make([]payment.Method, 0, len(items))
	seen := make(map[string]struct{}, len(items))
	for _, item := range items {
		parts := strings.Split(item, ":")
		if len(parts) > 4 {
			return nil, fmt.Errorf("malformed method %q", item)
		}
		m := payment.Method{Name: strings.TrimSpace(parts[0]), Type: payment.TypeCash}
		if m.Name == "" {
			return nil, fmt.Errorf("malformed method %q", item)
		}
		if len(parts) > 1 && strings.TrimSpace(parts[1]) != "" {
			m.Type = strings.TrimSpace(parts[1])
		}
		for _, flag := range parts[min(len(parts), 2):] {
			switch strings.ToLower(strings.TrimSpace(flag)) {
			case "default":
				m.Default = true
			case "returns":
				m.AllowInReturns = true
			default:
				return nil, fmt.Errorf("unknown flag %q in method %q", flag, item)
			}
		}
		key := strings.ToLower(m.Name)
		if _, dup := seen[key]; dup {
			return nil, fmt.Errorf("duplicate method %q", m.Name)
		}
		seen[key] = struct{}{}
		methods = append(methods, m)
	}
	return methods, nil
}

func valueOrDefault(value, fallback string) string {
	if strings.TrimSpace(value) != "" {
		return strings.TrimSpace(value)
	}
	return fallback
}

// LoadForTests allows tests to override environment variables without touching the real environment.
func LoadForTests(env map[string]string) (*Config, error) {
	original := make(map[string]string, len(env))
	for key := range env {
		original[key] = os.Getenv(key)
		if err := setEnvVar(key, env[key]); err != nil {
			return nil, err
		}
	}
	cfg, err := Load()
	restoreErr := restoreEnv(original)
	if err != nil {
		return nil, err
	}
	return cfg, restoreErr
}

func setEnvVar(key, value string) error {
	if value == "" {
		return os.Unsetenv(key)
	}
	return os.Setenv(key, value)
}

func restoreEnv(values map[string]string) error {
	var errs []string
	for key, value := range values {
		if err := setEnvVar(key, value); err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", key, err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("restore env: %s", strings.Join(errs, "; "))
	}
	return nil
}
