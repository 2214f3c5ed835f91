// Package metrics records console activity.
//
// Components depend on the narrow Recorder interface. The Prometheus
// implementation keeps its own registry and exposes it through Handler.
//
// Counters:
//
//	telegram_bot_commands_total{command,user_id}
//	telegram_bot_callbacks_total{action,user_id}
//	telegram_bot_errors_total{type,command}
//	telegram_bot_unauthorized_attempts_total{user_id}
//
// Histograms:
//
//	telegram_bot_command_latency_seconds{command}
//
// Timer Pattern:
//
//	timer := metrics.NewTimer()
//	defer timer.Observe(recorder, metrics.CommandLatencySeconds, metrics.Labels{"command": name})
package metrics
