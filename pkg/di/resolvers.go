package di

import (
	"fmt"

	"github.com/devantler-tech/tgops/pkg/config"
	"github.com/devantler-tech/tgops/pkg/svc/chat/telegram"
	"github.com/devantler-tech/tgops/pkg/svc/dispatcher"
	"github.com/devantler-tech/tgops/pkg/svc/metrics"
	"github.com/devantler-tech/tgops/pkg/svc/ratelimit"
	"github.com/samber/do/v2"
	"github.com/sirupsen/logrus"
)

// ResolveConfig retrieves the configuration.
func ResolveConfig(injector Injector) (*config.Config, error) {
	cfg, err := do.Invoke[*config.Config](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve config dependency: %w", err)
	}

	return cfg, nil
}

// ResolveLogger retrieves the logger.
func ResolveLogger(injector Injector) (*logrus.Logger, error) {
	logger, err := do.Invoke[*logrus.Logger](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve logger dependency: %w", err)
	}

	return logger, nil
}

// ResolveMetrics retrieves the Prometheus recorder.
func ResolveMetrics(injector Injector) (*metrics.Prometheus, error) {
	recorder, err := do.Invoke[*metrics.Prometheus](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve metrics dependency: %w", err)
	}

	return recorder, nil
}

// ResolveLimiter retrieves the rate limiter; nil means rate limiting is off.
func ResolveLimiter(injector Injector) (*ratelimit.Limiter, error) {
	limiter, err := do.Invoke[*ratelimit.Limiter](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve rate limiter dependency: %w", err)
	}

	return limiter, nil
}

// ResolveDispatcher retrieves the command dispatcher.
func ResolveDispatcher(injector Injector) (*dispatcher.Dispatcher, error) {
	d, err := do.Invoke[*dispatcher.Dispatcher](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve dispatcher dependency: %w", err)
	}

	return d, nil
}

// ResolveBot retrieves the chat transport.
func ResolveBot(injector Injector) (*telegram.Bot, error) {
	bot, err := do.Invoke[*telegram.Bot](injector)
	if err != nil {
		return nil, fmt.Errorf("resolve bot dependency: %w", err)
	}

	return bot, nil
}
