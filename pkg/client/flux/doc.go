// Package flux reads Flux HelmRelease objects and requests their reconciliation.
//
// HelmReleases are accessed through the dynamic client and converted to the
// typed helm-controller API so that status conditions are interpreted with
// Flux's own condition vocabulary. Reconciliation is requested the same way
// the flux CLI does it: by stamping the reconcile.fluxcd.io/requestedAt
// annotation with the current time.
package flux
