package di

import (
	"fmt"
	"io"

	"github.com/devantler-tech/tgops/pkg/config"
	"github.com/devantler-tech/tgops/pkg/k8s"
	"github.com/devantler-tech/tgops/pkg/logging"
	"github.com/devantler-tech/tgops/pkg/svc/access"
	"github.com/devantler-tech/tgops/pkg/svc/chat/telegram"
	"github.com/devantler-tech/tgops/pkg/svc/dispatcher"
	"github.com/devantler-tech/tgops/pkg/svc/gateway"
	"github.com/devantler-tech/tgops/pkg/svc/metrics"
	"github.com/devantler-tech/tgops/pkg/svc/ratelimit"
	"github.com/devantler-tech/tgops/pkg/svc/remediation"
	"github.com/samber/do/v2"
)

// NewRuntime constructs the runtime shared by the CLI commands. Configuration
// is supplied per invocation with WithConfig.
func NewRuntime() *Runtime {
	return New(
		ProvideMetrics,
		ProvideClusterClients,
		ProvideGateway,
		ProvideCoordinator,
		ProvideGuard,
		ProvideLimiter,
		ProvideDispatcher,
		ProvideTelegramAPI,
		ProvideBot,
	)
}

// WithConfig provides the loaded configuration and the logger built from it.
func WithConfig(cfg *config.Config, logOutput io.Writer) Module {
	return func(i Injector) error {
		logger, err := logging.New(cfg.Log.Level, cfg.Log.Format, logOutput)
		if err != nil {
			return fmt.Errorf("configure logging: %w", err)
		}

		do.ProvideValue(i, cfg)
		do.ProvideValue(i, logger)

		return nil
	}
}

// ProvideMetrics registers the Prometheus recorder.
func ProvideMetrics(i Injector) error {
	do.Provide(i, func(i Injector) (*metrics.Prometheus, error) {
		logger, err := ResolveLogger(i)
		if err != nil {
			return nil, err
		}

		return metrics.NewPrometheus(logger.WithField("component", "metrics")), nil
	})

	return nil
}

// ProvideClusterClients registers the Kubernetes clients.
func ProvideClusterClients(i Injector) error {
	do.Provide(i, func(i Injector) (*k8s.Clients, error) {
		cfg, err := ResolveConfig(i)
		if err != nil {
			return nil, err
		}

		restConfig, err := k8s.ResolveRESTConfig(cfg.Kubeconfig, cfg.Context, cfg.Cluster.Timeout)
		if err != nil {
			return nil, err
		}

		clients, err := k8s.NewClients(restConfig)
		if err != nil {
			return nil, fmt.Errorf("create cluster clients: %w", err)
		}

		return clients, nil
	})

	return nil
}

// ProvideGateway registers the cluster gateway.
func ProvideGateway(i Injector) error {
	do.Provide(i, func(i Injector) (*gateway.Gateway, error) {
		clients, err := do.Invoke[*k8s.Clients](i)
		if err != nil {
			return nil, fmt.Errorf("resolve cluster clients dependency: %w", err)
		}

		logger, err := ResolveLogger(i)
		if err != nil {
			return nil, err
		}

		return gateway.New(clients, logger.WithField("component", "gateway")), nil
	})

	return nil
}

// ProvideCoordinator registers the remediation coordinator.
func ProvideCoordinator(i Injector) error {
	do.Provide(i, func(i Injector) (*remediation.Coordinator, error) {
		gw, err := do.Invoke[*gateway.Gateway](i)
		if err != nil {
			return nil, fmt.Errorf("resolve gateway dependency: %w", err)
		}

		logger, err := ResolveLogger(i)
		if err != nil {
			return nil, err
		}

		return remediation.NewCoordinator(gw, logger.WithField("component", "remediation")), nil
	})

	return nil
}

// ProvideGuard registers the allowlist guard.
func ProvideGuard(i Injector) error {
	do.Provide(i, func(i Injector) (*access.Guard, error) {
		cfg, err := ResolveConfig(i)
		if err != nil {
			return nil, err
		}

		logger, err := ResolveLogger(i)
		if err != nil {
			return nil, err
		}

		guard := access.NewGuard(cfg.Identities())
		logger.WithField("allowed_identities", guard.Size()).Info("allowlist loaded")

		return guard, nil
	})

	return nil
}

// ProvideLimiter registers the per-caller rate limiter. It resolves to nil
// when rate limiting is disabled.
func ProvideLimiter(i Injector) error {
	do.Provide(i, func(i Injector) (*ratelimit.Limiter, error) {
		cfg, err := ResolveConfig(i)
		if err != nil {
			return nil, err
		}

		return ratelimit.New(cfg.RateLimit.PerMinute), nil
	})

	return nil
}

// ProvideDispatcher registers the command dispatcher.
func ProvideDispatcher(i Injector) error {
	do.Provide(i, func(i Injector) (*dispatcher.Dispatcher, error) {
		cfg, err := ResolveConfig(i)
		if err != nil {
			return nil, err
		}

		logger, err := ResolveLogger(i)
		if err != nil {
			return nil, err
		}

		recorder, err := ResolveMetrics(i)
		if err != nil {
			return nil, err
		}

		gw, err := do.Invoke[*gateway.Gateway](i)
		if err != nil {
			return nil, fmt.Errorf("resolve gateway dependency: %w", err)
		}

		coordinator, err := do.Invoke[*remediation.Coordinator](i)
		if err != nil {
			return nil, fmt.Errorf("resolve coordinator dependency: %w", err)
		}

		guard, err := do.Invoke[*access.Guard](i)
		if err != nil {
			return nil, fmt.Errorf("resolve guard dependency: %w", err)
		}

		limiter, err := ResolveLimiter(i)
		if err != nil {
			return nil, err
		}

		deps := dispatcher.Dependencies{
			Guard:      guard,
			Gateway:    gw,
			Remediator: coordinator,
			Recorder:   recorder,
			Logger:     logger.WithField("component", "dispatcher"),
			LogLinks:   cfg.AppLogs,
		}

		// A nil *Limiter must not become a non-nil interface.
		if limiter != nil {
			deps.Limiter = limiter
		}

		return dispatcher.New(deps), nil
	})

	return nil
}

// ProvideTelegramAPI registers the Bot API client. Resolving it contacts
// Telegram to validate the token.
func ProvideTelegramAPI(i Injector) error {
	do.Provide(i, func(i Injector) (telegram.API, error) {
		cfg, err := ResolveConfig(i)
		if err != nil {
			return nil, err
		}

		api, err := telegram.NewAPI(cfg.Telegram.Token)
		if err != nil {
			return nil, fmt.Errorf("connect to telegram: %w", err)
		}

		return api, nil
	})

	return nil
}

// ProvideBot registers the chat transport.
func ProvideBot(i Injector) error {
	do.Provide(i, func(i Injector) (*telegram.Bot, error) {
		cfg, err := ResolveConfig(i)
		if err != nil {
			return nil, err
		}

		logger, err := ResolveLogger(i)
		if err != nil {
			return nil, err
		}

		api, err := do.Invoke[telegram.API](i)
		if err != nil {
			return nil, fmt.Errorf("resolve telegram api dependency: %w", err)
		}

		d, err := ResolveDispatcher(i)
		if err != nil {
			return nil, err
		}

		return telegram.New(api, d, logger.WithField("component", "telegram"), telegram.Options{
			PollTimeout: cfg.Telegram.PollTimeout,
		}), nil
	})

	return nil
}
