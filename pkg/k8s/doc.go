// Package k8s provides Kubernetes client configuration for tgops.
//
// Key features:
//   - REST config building from an explicit kubeconfig (BuildRESTConfig)
//   - In-cluster or default-loading-rules fallback (ResolveRESTConfig)
//   - Typed and dynamic client construction (NewClients)
package k8s
