package notify_test

import (
	"bytes"
	"testing"

	"github.com/devantler-tech/tgops/pkg/utils/notify"
	"github.com/stretchr/testify/assert"
)

func TestWriteMessage(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		msg  notify.Message
		want string
	}{
		{
			name: "error",
			msg:  notify.Message{Type: notify.ErrorType, Content: "cluster unavailable"},
			want: "✗ cluster unavailable\n",
		},
		{
			name: "error with formatting",
			msg:  notify.Message{Type: notify.ErrorType, Content: "error: %s (%d)", Args: []any{"failed", 42}},
			want: "✗ error: failed (42)\n",
		},
		{
			name: "warning",
			msg:  notify.Message{Type: notify.WarningType, Content: "rate limited"},
			want: "⚠ rate limited\n",
		},
		{
			name: "success",
			msg:  notify.Message{Type: notify.SuccessType, Content: "reconciliation started"},
			want: "✔ reconciliation started\n",
		},
		{
			name: "activity",
			msg:  notify.Message{Type: notify.ActivityType, Content: "dispatching apps"},
			want: "► dispatching apps\n",
		},
		{
			name: "info",
			msg:  notify.Message{Type: notify.InfoType, Content: "no pods found"},
			want: "ℹ no pods found\n",
		},
		{
			name: "action",
			msg:  notify.Message{Type: notify.ActionType, Content: "reconcile:prod/app1"},
			want: "↳ reconcile:prod/app1\n",
		},
		{
			name: "multi-line content is indented",
			msg:  notify.Message{Type: notify.InfoType, Content: "🟢 prod/api\n   Status: Running\n\n🟡 dev/worker\n"},
			want: "ℹ 🟢 prod/api\n     Status: Running\n\n  🟡 dev/worker\n",
		},
		{
			name: "title",
			msg:  notify.Message{Type: notify.TitleType, Content: "Releases", Emoji: "⚠️"},
			want: "⚠️ Releases\n",
		},
		{
			name: "title default emoji",
			msg:  notify.Message{Type: notify.TitleType, Content: "Workloads"},
			want: "ℹ️ Workloads\n",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			t.Parallel()

			var out bytes.Buffer

			testCase.msg.Writer = &out
			notify.WriteMessage(testCase.msg)

			assert.Equal(t, testCase.want, out.String())
		})
	}
}

func TestConvenienceFunctions(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer

	notify.Errorf(&out, "e %d", 1)
	notify.Warningf(&out, "w %d", 2)
	notify.Activityf(&out, "a %d", 3)
	notify.Successf(&out, "s %d", 4)
	notify.Infof(&out, "i %d", 5)
	notify.Actionf(&out, "x %d", 6)
	notify.Titlef(&out, "🚀", "t %d", 7)

	assert.Equal(t, "✗ e 1\n⚠ w 2\n► a 3\n✔ s 4\nℹ i 5\n↳ x 6\n🚀 t 7\n", out.String())
}
