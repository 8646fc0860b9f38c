// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"
)

var (
	configPath string
	modelName  string
	envFile    string
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "adkpatterns",
		Short: "Run agent workflow patterns against an LLM",
		Long: heredoc.Doc(`
			adkpatterns runs ready-made agent workflows built from four patterns:

			  topic          fan-out/fan-in analysis of a topic
			  release-notes  draft and critique release notes until they pass review
			  triage         route an incident to the right specialist
			  creative       route a creative brief to a poet, scriptwriter or copywriter
			  research       plan, execute and synthesize a market research report
			  fitness        calculate metrics, plan training and diet, and integrate both
			  review         write a paragraph and fact check it

			Configuration is read from --config (or $ADK_CONFIG) and ADK_* environment
			variables. A .env file is loaded first when present.
		`),
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")
	cmd.PersistentFlags().StringVar(&modelName, "model", "", "model name, overrides the config")
	cmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded before the config")

	cmd.AddCommand(
		newTopicCmd(),
		newReleaseNotesCmd(),
		newTriageCmd(),
		newCreativeCmd(),
		newResearchCmd(),
		newFitnessCmd(),
		newReviewCmd(),
		newVersionCmd(),
	)
	return cmd
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
