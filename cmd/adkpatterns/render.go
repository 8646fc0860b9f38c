// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"github.com/go-a2a/adk-patterns/agent"
	"github.com/go-a2a/adk-patterns/types"
	"github.com/go-a2a/adk-patterns/workflow"
)

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	labelColor   = color.New(color.Bold)
)

func printStatus(w io.Writer, symbol, message string, attr color.Attribute) {
	c := color.New(attr)
	fmt.Fprintf(w, "%s %s\n", c.Sprint(symbol), message)
}

func printHeading(w io.Writer, title string) {
	fmt.Fprintf(w, "\n%s\n", headingColor.Sprint(title))
}

func printSection(w io.Writer, title, body string) {
	printHeading(w, title)
	fmt.Fprintln(w, strings.TrimSpace(body))
}

func printField(w io.Writer, label string, value any) {
	fmt.Fprintf(w, "%s %v\n", labelColor.Sprint(label+":"), value)
}

func renderTopic(w io.Writer, r *workflow.TopicReport) {
	printStatus(w, "✓", "analyzed "+r.Topic, color.FgGreen)
	printSection(w, "Summary", r.Summary)
	printSection(w, "Questions", r.Questions)
	printSection(w, "Key terms", r.KeyTerms)
	printSection(w, "Synthesis", r.Synthesis)
}

func renderReflection(w io.Writer, r *agent.ReflectionResult) {
	if r.Accepted() {
		printStatus(w, "✓", fmt.Sprintf("accepted after %d iteration(s)", r.Iterations), color.FgGreen)
	} else {
		printStatus(w, "!", fmt.Sprintf("iteration cap reached after %d iteration(s)", r.Iterations), color.FgYellow)
	}
	printField(w, "Score", fmt.Sprintf("%d/10", r.Score))
	for _, it := range r.History {
		printField(w, fmt.Sprintf("  iteration %d", it.Number), fmt.Sprintf("score %d, %d issue(s)", it.Critique.Score, len(it.Critique.Issues)))
	}
	printSection(w, "Release notes", r.Draft)
	if r.Reflection != "" {
		printSection(w, "Reviewer notes", r.Reflection)
	}
}

func renderDelegation(w io.Writer, request string, d *types.DelegationResult) {
	printField(w, "Request", request)
	if question, ok := d.Clarification(); ok {
		printStatus(w, "?", "clarification needed", color.FgYellow)
		fmt.Fprintln(w, strings.TrimSpace(question))
		return
	}
	printStatus(w, "→", d.Selected.Name(), color.FgGreen)
	fmt.Fprintln(w, strings.TrimSpace(d.Result.RawText))
}

func renderMarketReport(w io.Writer, r *workflow.MarketReport) {
	printHeading(w, "Research plan")
	printField(w, "Goal", r.Plan.ResearchGoal)
	for _, st := range r.Plan.Subtasks {
		fmt.Fprintf(w, "  %d. %s (%s)\n", st.Step, st.TaskName, st.ToolName)
	}

	rep := r.Report
	printSection(w, "Executive summary", rep.ExecutiveSummary)
	printSection(w, "Market analysis", rep.MarketAnalysis)
	printSection(w, "Competitive landscape", rep.CompetitiveLandscape)
	printSection(w, "Customer insights", rep.CustomerInsights)
	printSection(w, "Regulatory considerations", rep.RegulatoryConsiderations)
	printSection(w, "Launch recommendation", rep.LaunchRecommendation)
	fmt.Fprintln(w)
	printField(w, "Confidence", fmt.Sprintf("%.2f", rep.ConfidenceScore))
}

func renderDraft(w io.Writer, r *workflow.DraftResult) {
	printSection(w, "Draft", r.Draft)
	fmt.Fprintln(w)
	if r.Review.Accurate() {
		printStatus(w, "✓", r.Review.Status, color.FgGreen)
	} else {
		printStatus(w, "✗", r.Review.Status, color.FgRed)
	}
	fmt.Fprintln(w, strings.TrimSpace(r.Review.Reasoning))
}

func renderFitnessReport(w io.Writer, r *workflow.FitnessReport) {
	ex := r.Exercise
	printHeading(w, "Exercise plan")
	printField(w, "Goal", ex.FitnessGoal)
	for _, d := range ex.WeeklySchedule {
		fmt.Fprintf(w, "  %s: %s (%s)\n", d.Day, d.Focus, d.Duration)
		for i, e := range d.Exercises {
			if i < len(d.SetsReps) {
				e += " " + d.SetsReps[i]
			}
			fmt.Fprintf(w, "    - %s\n", e)
		}
	}

	diet := r.Diet
	printHeading(w, "Diet plan")
	printField(w, "Calories", diet.DailyCalorieTarget)
	printField(w, "Macros", diet.MacronutrientSplit)
	for _, m := range diet.WeeklyMeals {
		fmt.Fprintf(w, "  %s: %s / %s / %s\n", m.Day, m.Breakfast, m.Lunch, m.Dinner)
	}

	rep := r.Report
	printSection(w, "Executive summary", rep.ExecutiveSummary)
	printSection(w, "Integration strategy", rep.IntegrationStrategy)
	printHeading(w, "Weekly milestones")
	for _, m := range rep.WeeklyMilestones {
		fmt.Fprintf(w, "  - %s\n", m)
	}
	printHeading(w, "Safety reminders")
	for _, s := range rep.SafetyReminders {
		fmt.Fprintf(w, "  - %s\n", s)
	}
	fmt.Fprintln(w)
	printField(w, "Confidence", fmt.Sprintf("%.2f", rep.ConfidenceScore))
}
