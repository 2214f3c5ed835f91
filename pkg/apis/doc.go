// Package apis provides the domain types shared by the tgops services.
//
//   - ops: resource identifiers, workloads and HelmRelease status snapshots
package apis
