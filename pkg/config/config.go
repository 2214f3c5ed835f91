package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/devantler-tech/tgops/pkg/apis/ops"
	mapstructure "github.com/go-viper/mapstructure/v2"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by the console.
const EnvPrefix = "TGOPS"

// Configuration keys.
const (
	KeyTelegramToken       = "telegram.token"
	KeyTelegramPollTimeout = "telegram.poll_timeout"
	KeyAllowedUsers        = "allowed_users"
	KeyAppLogs             = "app_logs"
	KeyKubeconfig          = "kubeconfig"
	KeyContext             = "context"
	KeyClusterTimeout      = "cluster.timeout"
	KeyMetricsAddress      = "metrics.address"
	KeyRateLimitPerMinute  = "rate_limit.per_minute"
	KeyLogLevel            = "log.level"
	KeyLogFormat           = "log.format"
)

// Validation errors.
var (
	ErrAllowlistEmpty = errors.New("allowed_users must contain at least one user id")
	ErrTokenMissing   = errors.New("telegram.token is required")
	ErrInvalidUserID  = errors.New("invalid user id")
	ErrInvalidAppLogs = errors.New("invalid app_logs")
)

// Config is the fully resolved console configuration.
type Config struct {
	Telegram     Telegram          `mapstructure:"telegram"`
	AllowedUsers []int64           `mapstructure:"allowed_users"`
	AppLogs      map[string]string `mapstructure:"app_logs"`
	Kubeconfig   string            `mapstructure:"kubeconfig"`
	Context      string            `mapstructure:"context"`
	Cluster      Cluster           `mapstructure:"cluster"`
	Metrics      Metrics           `mapstructure:"metrics"`
	RateLimit    RateLimit         `mapstructure:"rate_limit"`
	Log          Log               `mapstructure:"log"`
}

// Telegram configures the chat transport.
type Telegram struct {
	Token       string        `mapstructure:"token"`
	PollTimeout time.Duration `mapstructure:"poll_timeout"`
}

// Cluster configures the Kubernetes client.
type Cluster struct {
	// Timeout bounds every API request; timeouts surface as ClusterUnavailable.
	Timeout time.Duration `mapstructure:"timeout"`
}

// Metrics configures the Prometheus listener.
type Metrics struct {
	Address string `mapstructure:"address"`
}

// RateLimit configures per-caller throttling. Zero disables it.
type RateLimit struct {
	PerMinute int `mapstructure:"per_minute"`
}

// Log configures logging.
type Log struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

//nolint:gochecknoglobals // static key table
var envBindings = map[string][]string{
	KeyTelegramToken:       {"TGOPS_TELEGRAM_TOKEN", "TELEGRAM_BOT_TOKEN"},
	KeyTelegramPollTimeout: {"TGOPS_TELEGRAM_POLL_TIMEOUT"},
	KeyAllowedUsers:        {"TGOPS_ALLOWED_USERS", "ALLOWED_USERS"},
	KeyAppLogs:             {"TGOPS_APP_LOGS", "APP_LOGS_MAP"},
	KeyKubeconfig:          {"TGOPS_KUBECONFIG"},
	KeyContext:             {"TGOPS_CONTEXT"},
	KeyClusterTimeout:      {"TGOPS_CLUSTER_TIMEOUT"},
	KeyMetricsAddress:      {"TGOPS_METRICS_ADDRESS"},
	KeyRateLimitPerMinute:  {"TGOPS_RATE_LIMIT_PER_MINUTE"},
	KeyLogLevel:            {"TGOPS_LOG_LEVEL"},
	KeyLogFormat:           {"TGOPS_LOG_FORMAT"},
}

// NewViper creates a viper instance with defaults and environment bindings.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault(KeyTelegramPollTimeout, "60s")
	v.SetDefault(KeyClusterTimeout, "30s")
	v.SetDefault(KeyMetricsAddress, ":8000")
	v.SetDefault(KeyRateLimitPerMinute, 60)
	v.SetDefault(KeyLogLevel, "info")
	v.SetDefault(KeyLogFormat, "text")

	for key, names := range envBindings {
		// BindEnv only fails without a key.
		_ = v.BindEnv(append([]string{key}, names...)...)
	}

	return v
}

// BindFlags binds the flags present in flags to their configuration keys.
// Flags that are not defined are skipped.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	bindings := map[string]string{
		"kubeconfig":      KeyKubeconfig,
		"context":         KeyContext,
		"metrics-address": KeyMetricsAddress,
		"log-level":       KeyLogLevel,
		"log-format":      KeyLogFormat,
	}

	for flag, key := range bindings {
		if flags.Lookup(flag) == nil {
			continue
		}

		err := v.BindPFlag(key, flags.Lookup(flag))
		if err != nil {
			return fmt.Errorf("bind flag %q: %w", flag, err)
		}
	}

	return nil
}

// Load reads the optional config file and decodes the configuration.
// An empty path skips file loading.
func Load(v *viper.Viper, path string) (*Config, error) {
	if path != "" {
		v.SetConfigFile(path)

		err := v.ReadInConfig()
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config

	err := v.Unmarshal(&cfg, viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		expandEnvDecodeHook(),
		mapstructure.StringToTimeDurationHookFunc(),
		userIDsDecodeHook(),
		appLogsDecodeHook(),
	)))
	if err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	return &cfg, nil
}

// Validate checks the configuration. The token is only required when the
// chat transport is started.
func (c *Config) Validate(requireToken bool) error {
	var errs []error

	if len(c.AllowedUsers) == 0 {
		errs = append(errs, ErrAllowlistEmpty)
	}

	if requireToken && strings.TrimSpace(c.Telegram.Token) == "" {
		errs = append(errs, ErrTokenMissing)
	}

	return errors.Join(errs...)
}

// Identities returns the allowlist as caller identities.
func (c *Config) Identities() []ops.Identity {
	ids := make([]ops.Identity, 0, len(c.AllowedUsers))
	for _, id := range c.AllowedUsers {
		ids = append(ids, ops.Identity(id))
	}

	return ids
}
