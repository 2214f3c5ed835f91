// Package client provides thin Kubernetes clients for the resources tgops
// reads and writes.
//
//   - flux: HelmRelease listing and reconcile requests through the dynamic client
//   - workloads: labeled pod listing through the typed clientset
package client
