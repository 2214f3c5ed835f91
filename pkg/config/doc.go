// Package config loads the console configuration.
//
// Configuration priority: defaults < config file < environment variables < flags.
// Environment variables use the TGOPS_ prefix with dots replaced by
// underscores (telegram.token becomes TGOPS_TELEGRAM_TOKEN). The variable
// names of the original bot deployment (TELEGRAM_BOT_TOKEN, ALLOWED_USERS,
// APP_LOGS_MAP) are accepted as fallbacks.
package config
