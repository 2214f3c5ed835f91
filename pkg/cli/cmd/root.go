package cmd

import (
	"fmt"

	"github.com/devantler-tech/tgops/pkg/config"
	"github.com/devantler-tech/tgops/pkg/di"
	"github.com/spf13/cobra"
)

// Persistent flag names.
const (
	configFlag     = "config"
	kubeconfigFlag = "kubeconfig"
	contextFlag    = "context"
	logLevelFlag   = "log-level"
	logFormatFlag  = "log-format"
)

// NewRootCmd creates and returns the root command with version info and subcommands.
func NewRootCmd(version, commit, date string, extra ...di.Module) *cobra.Command {
	runtimeContainer := di.NewRuntime()

	cmd := &cobra.Command{
		Use:   "tgops",
		Short: "Operate a Kubernetes cluster from Telegram",
		Long: "tgops lets authorized operators list labeled workloads and reconcile stalled " +
			"Flux HelmReleases from a Telegram chat.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Version = fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)

	flags := cmd.PersistentFlags()
	flags.String(configFlag, "", "Path to a YAML config file")
	flags.String(kubeconfigFlag, "", "Path to a kubeconfig file (defaults to in-cluster or standard loading rules)")
	flags.String(contextFlag, "", "Kubeconfig context to use")
	flags.String(logLevelFlag, "info", "Log level (trace, debug, info, warn, error)")
	flags.String(logFormatFlag, "text", "Log format (text, json)")

	cmd.AddCommand(NewServeCmd(runtimeContainer, extra...))
	cmd.AddCommand(NewExecCmd(runtimeContainer, extra...))
	cmd.AddCommand(NewVersionCmd(version, commit, date))

	return cmd
}

// Execute runs the provided root command and handles errors.
func Execute(cmd *cobra.Command) error {
	err := cmd.Execute()
	if err != nil {
		return fmt.Errorf("command execution failed: %w", err)
	}

	return nil
}

// loadConfig resolves configuration from the config file, environment and flags.
func loadConfig(cmd *cobra.Command, requireToken bool) (*config.Config, error) {
	v := config.NewViper()

	err := config.BindFlags(v, cmd.Flags())
	if err != nil {
		return nil, err
	}

	path, err := cmd.Flags().GetString(configFlag)
	if err != nil {
		return nil, fmt.Errorf("read --%s: %w", configFlag, err)
	}

	cfg, err := config.Load(v, path)
	if err != nil {
		return nil, err
	}

	err = cfg.Validate(requireToken)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}
