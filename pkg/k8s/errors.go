package k8s

import "errors"

// ErrKubeconfigPathEmpty is returned when kubeconfig path is empty.
var ErrKubeconfigPathEmpty = errors.New("kubeconfig path is empty")

// ErrRESTConfigNil is returned when a client is requested for a nil REST config.
var ErrRESTConfigNil = errors.New("rest config is nil")
