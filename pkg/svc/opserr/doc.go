// Package opserr provides the error taxonomy shared by the cluster gateway,
// the remediation coordinator and the command dispatcher.
//
// Lower layers wrap one of the sentinel errors defined here; the dispatcher is
// the only place converting them into user-facing text and metric labels.
package opserr
