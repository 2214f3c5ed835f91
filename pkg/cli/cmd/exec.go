package cmd

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/devantler-tech/tgops/pkg/apis/ops"
	"github.com/devantler-tech/tgops/pkg/di"
	"github.com/devantler-tech/tgops/pkg/svc/dispatcher"
	"github.com/devantler-tech/tgops/pkg/svc/opserr"
	"github.com/devantler-tech/tgops/pkg/utils/notify"
	"github.com/spf13/cobra"
)

const (
	asFlag       = "as"
	callbackFlag = "callback"
)

// ErrDispatchFailed is returned when exec produces an Error, Unauthorized or
// RateLimited result.
var ErrDispatchFailed = errors.New("dispatch failed")

// NewExecCmd creates the exec command.
func NewExecCmd(runtimeContainer *di.Runtime, extra ...di.Module) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec <command> [payload]",
		Short: "Run a single command as a chat identity and print the result",
		Long: "Run a single command through the same access, rate limit and remediation " +
			"path the bot uses, against the configured cluster. Useful to check RBAC and " +
			"allowlist settings without a chat client.",
		Example: "  tgops exec --as 42 checkreleases\n" +
			"  tgops exec --as 42 --callback reconcile prod/app1",
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			identity, err := cmd.Flags().GetInt64(asFlag)
			if err != nil {
				return fmt.Errorf("read --%s: %w", asFlag, err)
			}

			callback, err := cmd.Flags().GetBool(callbackFlag)
			if err != nil {
				return fmt.Errorf("read --%s: %w", callbackFlag, err)
			}

			cfg, err := loadConfig(cmd, false)
			if err != nil {
				return err
			}

			event := dispatcher.Event{
				Identity: ops.Identity(identity),
				Command:  strings.TrimPrefix(args[0], "/"),
				Payload:  strings.Join(args[1:], " "),
				Callback: callback,
			}

			modules := append([]di.Module{di.WithConfig(cfg, cmd.ErrOrStderr())}, extra...)

			return runtimeContainer.Invoke(func(injector di.Injector) error {
				d, err := di.ResolveDispatcher(injector)
				if err != nil {
					return err
				}

				notify.Activityf(cmd.OutOrStdout(), "dispatching %s as %s", event.Command, event.Identity)

				return printResult(cmd.OutOrStdout(), d.Dispatch(cmd.Context(), event))
			}, modules...)
		},
	}

	cmd.Flags().Int64(asFlag, 0, "Identity to dispatch as")
	cmd.Flags().Bool(callbackFlag, false, "Dispatch as a button press instead of a command")
	_ = cmd.MarkFlagRequired(asFlag)

	return cmd
}

func printResult(out io.Writer, result dispatcher.Result) error {
	if result.Title != "" {
		notify.Titlef(out, titleEmoji(result.Kind), "%s", result.Title)
	}

	switch result.Kind {
	case dispatcher.KindError, dispatcher.KindUnauthorized:
		notify.Errorf(out, "%s", result.Body)
	case dispatcher.KindRateLimited, dispatcher.KindAlreadyPending:
		notify.Warningf(out, "%s", result.Body)
	case dispatcher.KindCompleted:
		notify.Successf(out, "%s", result.Body)
	default:
		notify.Infof(out, "%s", result.Body)
	}

	for _, action := range result.Actions {
		notify.Actionf(out, "%s  [%s]", action.Label, action.ID)
	}

	switch result.Kind {
	case dispatcher.KindUnauthorized:
		return fmt.Errorf("%w: %w", ErrDispatchFailed, opserr.ErrUnauthorized)
	case dispatcher.KindError, dispatcher.KindRateLimited:
		return fmt.Errorf("%w: %s", ErrDispatchFailed, result.ErrorKind)
	default:
		return nil
	}
}

func titleEmoji(kind dispatcher.Kind) string {
	switch kind {
	case dispatcher.KindReleases:
		return "⚠️"
	case dispatcher.KindWorkloads:
		return "📦"
	default:
		return "ℹ️"
	}
}
