package k8s

import (
	"fmt"

	"k8s.io/client-go/dynamic"
	"k8s.io/client-go/kubernetes"
	"k8s.io/client-go/rest"
)

// Clients bundles the typed clientset used for core resources and the dynamic
// client used for Flux custom resources.
type Clients struct {
	Typed   kubernetes.Interface
	Dynamic dynamic.Interface
}

// NewClients creates both clients from a single REST config.
func NewClients(restConfig *rest.Config) (*Clients, error) {
	if restConfig == nil {
		return nil, ErrRESTConfigNil
	}

	clientset, err := kubernetes.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create kubernetes client: %w", err)
	}

	dynamicClient, err := dynamic.NewForConfig(restConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create dynamic client: %w", err)
	}

	return &Clients{Typed: clientset, Dynamic: dynamicClient}, nil
}
