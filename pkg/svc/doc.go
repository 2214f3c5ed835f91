// Package svc provides the service layer of tgops.
//
// Subpackages:
//   - access: allowlist checks for chat identities
//   - chat/telegram: long-polling Telegram transport
//   - dispatcher: command and button routing with metrics and error mapping
//   - gateway: cluster reads and writes with error classification
//   - health: HelmRelease health verdicts
//   - metrics: Prometheus recorder and latency timer
//   - opserr: the error taxonomy shared by every service
//   - ratelimit: per-identity token buckets
//   - remediation: single-flight reconcile requests per HelmRelease
package svc
