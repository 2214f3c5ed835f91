// Package ops defines the shared data model of the tgops console.
//
// The types in this package are snapshots produced per inbound event:
// caller identities, resource identities, labeled workloads and HelmRelease
// status records. None of them are persisted or mutated after construction.
package ops
