// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/go-a2a/adk-patterns/workflow"
)

func newTopicCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "topic <topic...>",
		Short: "Summarize, question and extract key terms of a topic in parallel",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			w, err := workflow.NewTopicAnalysis(a.invoker, a.opts...)
			if err != nil {
				return err
			}
			report, err := w.Run(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			renderTopic(cmd.OutOrStdout(), report)
			return nil
		},
	}
}

func newReleaseNotesCmd() *cobra.Command {
	var changelog string
	cmd := &cobra.Command{
		Use:   "release-notes",
		Short: "Draft release notes from a changelog and revise them until a critic accepts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			text, err := readInput(cmd.InOrStdin(), changelog)
			if err != nil {
				return err
			}
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			w, err := workflow.NewReleaseNotes(a.invoker, a.opts...)
			if err != nil {
				return err
			}
			result, err := w.Run(cmd.Context(), text)
			if err != nil {
				return err
			}
			renderReflection(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().StringVarP(&changelog, "changelog", "f", "-", "changelog file, - reads stdin")
	return cmd
}

func newTriageCmd() *cobra.Command {
	var samples bool
	cmd := &cobra.Command{
		Use:   "triage [incident...]",
		Short: "Route an incident summary to the right specialist",
		RunE: func(cmd *cobra.Command, args []string) error {
			requests, err := requestsFrom(args, samples)
			if err != nil {
				return err
			}
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			r, err := workflow.NewIncidentTriage(a.invoker, a.opts...)
			if err != nil {
				return err
			}
			return routeAll(cmd, r, requests)
		},
	}
	cmd.Flags().BoolVar(&samples, "samples", false, "triage the built-in sample incidents")
	return cmd
}

func newCreativeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "creative <brief...>",
		Short: "Route a creative brief to a poet, scriptwriter or ad copywriter",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			r, err := workflow.NewCreativeDirector(a.invoker, a.opts...)
			if err != nil {
				return err
			}
			return routeAll(cmd, r, []string{strings.Join(args, " ")})
		},
	}
}

func newResearchCmd() *cobra.Command {
	var p workflow.Product
	cmd := &cobra.Command{
		Use:   "research",
		Short: "Plan, execute and synthesize a market research report for a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			w, err := workflow.NewMarketResearch(a.invoker, a.opts...)
			if err != nil {
				return err
			}
			printStatus(cmd.ErrOrStderr(), "…", "researching "+p.Name, color.FgCyan)
			report, err := w.Run(cmd.Context(), p)
			if err != nil {
				return err
			}
			renderMarketReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&p.Name, "product", "", "product name")
	f.StringVar(&p.Category, "category", "", "product category")
	f.StringVar(&p.TargetMarket, "target", "", "target market")
	f.StringVar(&p.Region, "region", "", "region, defaults to North America")
	cmd.MarkFlagRequired("product")
	cmd.MarkFlagRequired("category")
	return cmd
}

func newFitnessCmd() *cobra.Command {
	var p workflow.Profile
	cmd := &cobra.Command{
		Use:   "fitness",
		Short: "Build a weekly exercise and diet plan from body metrics and a goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			w, err := workflow.NewFitnessPlan(a.invoker, a.opts...)
			if err != nil {
				return err
			}
			printStatus(cmd.ErrOrStderr(), "…", "planning for "+cmp.Or(p.Name, "you"), color.FgCyan)
			report, err := w.Run(cmd.Context(), p)
			if err != nil {
				return err
			}
			renderFitnessReport(cmd.OutOrStdout(), report)
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&p.Name, "name", "", "name of the person")
	f.StringVar(&p.Gender, "gender", "male", "male or female")
	f.IntVar(&p.Age, "age", 0, "age in years")
	f.Float64Var(&p.WeightKg, "weight", 0, "weight in kilograms")
	f.Float64Var(&p.HeightCm, "height", 0, "height in centimeters")
	f.Float64Var(&p.BodyFat, "body-fat", 20, "body fat percentage")
	f.Float64Var(&p.MuscleStrength, "strength", 0, "muscle strength in newtons")
	f.StringVar(&p.DietPreference, "diet", "Non-Vegetarian", "diet preference")
	f.StringVar(&p.Goal, "goal", "general fitness", "fitness goal, such as muscle gain or fat loss")
	f.StringVar(&p.MedicalCondition, "medical", "", "medical conditions to account for")
	f.StringVar(&p.ActivityLevel, "activity", "moderate", "sedentary, light, moderate, active or very_active")
	f.StringVar(&p.FitnessLevel, "level", "beginner", "beginner, intermediate or advanced")
	cmd.MarkFlagRequired("age")
	cmd.MarkFlagRequired("weight")
	cmd.MarkFlagRequired("height")
	return cmd
}

func newReviewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "review <subject...>",
		Short: "Write a short paragraph about a subject and fact check it",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd)
			if err != nil {
				return err
			}
			w, err := workflow.NewDraftReview(a.invoker, a.opts...)
			if err != nil {
				return err
			}
			result, err := w.Run(cmd.Context(), strings.Join(args, " "))
			if err != nil {
				return err
			}
			renderDraft(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

// routeAll routes each request in turn. A failed request is reported and the
// rest still run.
func routeAll(cmd *cobra.Command, r *workflow.Router, requests []string) error {
	out := cmd.OutOrStdout()
	var errs []error
	for i, req := range requests {
		if i > 0 {
			fmt.Fprintln(out)
		}
		d, err := r.Route(cmd.Context(), req)
		if err != nil {
			printStatus(out, "✗", err.Error(), color.FgRed)
			errs = append(errs, err)
			continue
		}
		renderDelegation(out, req, d)
	}
	return errors.Join(errs...)
}

func requestsFrom(args []string, samples bool) ([]string, error) {
	switch {
	case samples && len(args) > 0:
		return nil, errors.New("--samples takes no arguments")
	case samples:
		return workflow.SampleIncidents, nil
	case len(args) == 0:
		return nil, errors.New("an incident summary or --samples is required")
	}
	return []string{strings.Join(args, " ")}, nil
}

// readInput reads path, or r when path is "-".
func readInput(r io.Reader, path string) (string, error) {
	var (
		b   []byte
		err error
	)
	if path == "-" {
		b, err = io.ReadAll(r)
	} else {
		b, err = os.ReadFile(path)
	}
	if err != nil {
		return "", err
	}
	text := strings.TrimSpace(string(b))
	if text == "" {
		return "", errors.New("changelog is empty")
	}
	return text, nil
}
