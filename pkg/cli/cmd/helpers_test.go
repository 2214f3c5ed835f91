package cmd_test

import (
	"sync"

	"github.com/devantler-tech/tgops/pkg/di"
	"github.com/devantler-tech/tgops/pkg/k8s"
	"github.com/devantler-tech/tgops/pkg/svc/chat/telegram"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/samber/do/v2"
	corev1 "k8s.io/api/core/v1"
	metav1 "k8s.io/apimachinery/pkg/apis/meta/v1"
	"k8s.io/apimachinery/pkg/apis/meta/v1/unstructured"
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	dynamicfake "k8s.io/client-go/dynamic/fake"
	"k8s.io/client-go/kubernetes/fake"
)

func fakeCluster() di.Module {
	return func(i di.Injector) error {
		clientset := fake.NewClientset(&corev1.Pod{
			ObjectMeta: metav1.ObjectMeta{Name: "api", Namespace: "prod", Labels: map[string]string{"tgops": "true"}},
			Status:     corev1.PodStatus{Phase: corev1.PodRunning},
		})

		release := &unstructured.Unstructured{Object: map[string]any{
			"apiVersion": "helm.toolkit.fluxcd.io/v2",
			"kind":       "HelmRelease",
			"metadata":   map[string]any{"name": "app1", "namespace": "prod"},
			"status": map[string]any{"conditions": []any{map[string]any{
				"type":               "Ready",
				"status":             "False",
				"reason":             "InstallFailed",
				"message":            "install retries exhausted",
				"lastTransitionTime": "2026-01-02T03:04:05Z",
			}}},
		}}

		dynamicClient := dynamicfake.NewSimpleDynamicClientWithCustomListKinds(
			runtime.NewScheme(),
			map[schema.GroupVersionResource]string{
				{Group: "helm.toolkit.fluxcd.io", Version: "v2", Resource: "helmreleases"}: "HelmReleaseList",
			},
			release,
		)

		do.OverrideValue(i, &k8s.Clients{Typed: clientset, Dynamic: dynamicClient})

		return nil
	}
}

// closedAPI is a Bot API whose update stream ends immediately.
type closedAPI struct {
	mu      sync.Mutex
	stopped bool
}

func (a *closedAPI) GetUpdatesChan(tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel {
	updates := make(chan tgbotapi.Update)
	close(updates)

	return updates
}

func (a *closedAPI) StopReceivingUpdates() {
	a.mu.Lock()
	defer a.mu.Unlock()

	a.stopped = true
}

func (a *closedAPI) Send(tgbotapi.Chattable) (tgbotapi.Message, error) {
	return tgbotapi.Message{}, nil
}

func (a *closedAPI) Request(tgbotapi.Chattable) (*tgbotapi.APIResponse, error) {
	return &tgbotapi.APIResponse{Ok: true}, nil
}

func fakeTelegram(api telegram.API) di.Module {
	return func(i di.Injector) error {
		do.OverrideValue[telegram.API](i, api)

		return nil
	}
}
