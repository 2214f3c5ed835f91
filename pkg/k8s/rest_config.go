package k8s

import (
	"fmt"
	"time"

	"k8s.io/client-go/rest"
	"k8s.io/client-go/tools/clientcmd"
	ctrlconfig "sigs.k8s.io/controller-runtime/pkg/client/config"
)

// BuildRESTConfig builds a Kubernetes REST config from kubeconfig path and optional context.
//
// The kubeconfig parameter must be a non-empty path to a valid kubeconfig file.
// If context is empty, the current context from the kubeconfig is used.
//
// Returns ErrKubeconfigPathEmpty if kubeconfig path is empty.
func BuildRESTConfig(kubeconfig, context string) (*rest.Config, error) {
	if kubeconfig == "" {
		return nil, ErrKubeconfigPathEmpty
	}

	loadingRules := &clientcmd.ClientConfigLoadingRules{ExplicitPath: kubeconfig}

	overrides := &clientcmd.ConfigOverrides{}
	if context != "" {
		overrides.CurrentContext = context
	}

	clientConfig := clientcmd.NewNonInteractiveDeferredLoadingClientConfig(loadingRules, overrides)

	restConfig, err := clientConfig.ClientConfig()
	if err != nil {
		return nil, fmt.Errorf("failed to load kubeconfig: %w", err)
	}

	return restConfig, nil
}

// ResolveRESTConfig returns a REST config for the cluster the console operates on.
//
// An explicit kubeconfig path wins. Without one, the in-cluster service account
// is tried first and the standard loading rules (KUBECONFIG, ~/.kube/config)
// second, which is how the console runs both as a Deployment and locally.
//
// A positive timeout is applied to every API request so that a hung API server
// surfaces as a transport error instead of blocking a dispatch forever.
func ResolveRESTConfig(kubeconfig, context string, timeout time.Duration) (*rest.Config, error) {
	var (
		restConfig *rest.Config
		err        error
	)

	if kubeconfig != "" {
		restConfig, err = BuildRESTConfig(kubeconfig, context)
	} else {
		restConfig, err = ctrlconfig.GetConfigWithContext(context)
	}

	if err != nil {
		return nil, fmt.Errorf("resolve cluster config: %w", err)
	}

	if timeout > 0 {
		restConfig.Timeout = timeout
	}

	return restConfig, nil
}
