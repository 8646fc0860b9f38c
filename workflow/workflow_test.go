// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package workflow_test

import (
	"context"
	"errors"
	"maps"
	"slices"
	"strings"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/go-a2a/adk-patterns/agent"
	"github.com/go-a2a/adk-patterns/types"
	"github.com/go-a2a/adk-patterns/workflow"
)

// scriptInvoker replies to each agent with the next of its scripted results.
type scriptInvoker struct {
	mu      sync.Mutex
	script  map[string][]*types.InvocationResult
	inputs  map[string][]string
	invoked []string
}

func newScriptInvoker() *scriptInvoker {
	return &scriptInvoker{
		script: make(map[string][]*types.InvocationResult),
		inputs: make(map[string][]string),
	}
}

func (s *scriptInvoker) reply(agentName string, results ...*types.InvocationResult) *scriptInvoker {
	s.script[agentName] = append(s.script[agentName], results...)
	return s
}

func (s *scriptInvoker) text(agentName string, texts ...string) *scriptInvoker {
	for _, t := range texts {
		s.reply(agentName, &types.InvocationResult{Agent: agentName, RawText: t, IsFinal: true})
	}
	return s
}

// Invoke implements [types.Invoker].
func (s *scriptInvoker) Invoke(_ context.Context, a *types.AgentDescriptor, input string) (*types.InvocationResult, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoked = append(s.invoked, a.Name())
	s.inputs[a.Name()] = append(s.inputs[a.Name()], input)
	queue := s.script[a.Name()]
	if len(queue) == 0 {
		return nil, &types.InvocationError{Agent: a.Name(), Err: errors.New("script exhausted")}
	}
	s.script[a.Name()] = queue[1:]
	return queue[0], nil
}

func TestTopicAnalysis(t *testing.T) {
	inv := newScriptInvoker().
		text("Summarizer", "Solar sails ride photon pressure.").
		text("Question Generator", "How fast? How far? How cheap?").
		text("Key Term Extractor", "photon, sail, pressure").
		text("Synthesizer", "A comprehensive answer.")

	w, err := workflow.NewTopicAnalysis(inv)
	if err != nil {
		t.Fatalf("NewTopicAnalysis: %v", err)
	}
	got, err := w.Run(t.Context(), "solar sails")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := &workflow.TopicReport{
		Topic:     "solar sails",
		Summary:   "Solar sails ride photon pressure.",
		Questions: "How fast? How far? How cheap?",
		KeyTerms:  "photon, sail, pressure",
		Synthesis: "A comprehensive answer.",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("report mismatch (-want +got):\n%s", diff)
	}

	prompt := inv.inputs["Synthesizer"][0]
	for _, s := range []string{
		"Summary: Solar sails ride photon pressure.",
		"Related Questions: How fast?",
		"Key Terms: photon, sail, pressure",
		"Original topic: solar sails",
	} {
		if !strings.Contains(prompt, s) {
			t.Fatalf("synthesis prompt %q does not contain %q", prompt, s)
		}
	}
}

func critique(score int, improvements string) *types.InvocationResult {
	c := &agent.Critique{Score: score, Strengths: "s", Issues: "i", ActionableImprovements: improvements}
	return &types.InvocationResult{
		Agent:      "Technical Editor Critic",
		Structured: &types.Structured{Schema: "Critique", Value: c},
		IsFinal:    true,
	}
}

func TestReleaseNotes(t *testing.T) {
	inv := newScriptInvoker().
		text("Release Notes Drafter", "v1 notes", "v2 notes").
		reply("Technical Editor Critic", critique(6, "add the migration step"), critique(9, "none"))

	w, err := workflow.NewReleaseNotes(inv, workflow.WithReflection(8, 3))
	if err != nil {
		t.Fatalf("NewReleaseNotes: %v", err)
	}
	got, err := w.Run(t.Context(), "- fix: crash on start")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !got.Accepted() || got.Iterations != 2 || got.Draft != "v2 notes" || got.Score != 9 {
		t.Fatalf("Run() = %+v", got)
	}

	drafts := inv.inputs["Release Notes Drafter"]
	if !strings.HasPrefix(drafts[0], "Changelog:\n- fix: crash on start\n") {
		t.Fatalf("initial prompt = %q", drafts[0])
	}
	for _, s := range []string{"Revise these release notes", "Current draft:\nv1 notes", "Actionable improvements:\nadd the migration step"} {
		if !strings.Contains(drafts[1], s) {
			t.Fatalf("revision prompt %q does not contain %q", drafts[1], s)
		}
	}
}

func TestReleaseNotes_InvalidConfig(t *testing.T) {
	if _, err := workflow.NewReleaseNotes(newScriptInvoker(), workflow.WithReflection(8, 0)); !errors.Is(err, types.ErrNonPositiveMaxIters) {
		t.Fatalf("NewReleaseNotes error = %v, want ErrNonPositiveMaxIters", err)
	}
}

func TestIncidentTriage(t *testing.T) {
	tests := map[string]struct {
		mode        agent.RoutingMode
		incident    string
		router      *types.InvocationResult
		wantInvoked []string
	}{
		"llm": {
			mode:        agent.RoutingModeLLM,
			incident:    workflow.SampleIncidents[1],
			router:      &types.InvocationResult{Agent: "Incident Triage", TransferTo: workflow.CloudCostAnalyst},
			wantInvoked: []string{"Incident Triage", workflow.CloudCostAnalyst},
		},
		"keyword": {
			mode:        agent.RoutingModeKeyword,
			incident:    workflow.SampleIncidents[1],
			wantInvoked: []string{workflow.CloudCostAnalyst},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			inv := newScriptInvoker().text(workflow.CloudCostAnalyst, "check autoscaling")
			if tt.router != nil {
				inv.reply("Incident Triage", tt.router)
			}

			w, err := workflow.NewIncidentTriage(inv, workflow.WithRoutingMode(tt.mode))
			if err != nil {
				t.Fatalf("NewIncidentTriage: %v", err)
			}
			got, err := w.Route(t.Context(), tt.incident)
			if err != nil {
				t.Fatalf("Route: %v", err)
			}
			if got.Selected.Name() != workflow.CloudCostAnalyst || got.Result.RawText != "check autoscaling" {
				t.Fatalf("Route() = %v, %+v", got.Selected.Name(), got.Result)
			}
			if diff := cmp.Diff(tt.wantInvoked, inv.invoked); diff != "" {
				t.Fatalf("invoked mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestIncidentPolicy(t *testing.T) {
	want := []string{
		workflow.LogsInvestigator,
		workflow.CloudCostAnalyst,
		workflow.NetworkAnalyst,
		"",
	}
	policy := workflow.IncidentPolicy()
	for i, incident := range workflow.SampleIncidents {
		got, _ := policy.Select(incident)
		if got != want[i] {
			t.Fatalf("Select(%q) = %q, want %q", incident, got, want[i])
		}
	}
}

func TestCreativeDirector(t *testing.T) {
	inv := newScriptInvoker().text(workflow.PoetAgent, "roses are red")

	w, err := workflow.NewCreativeDirector(inv, workflow.WithRoutingMode(agent.RoutingModeKeyword))
	if err != nil {
		t.Fatalf("NewCreativeDirector: %v", err)
	}
	if n := len(w.Specialists()); n != 3 {
		t.Fatalf("got %d specialists, want 3", n)
	}

	got, err := w.Route(t.Context(), "Write a haiku about autumn rain")
	if err != nil {
		t.Fatalf("Route: %v", err)
	}
	if got.Selected.Name() != workflow.PoetAgent {
		t.Fatalf("Selected = %s, want %s", got.Selected.Name(), workflow.PoetAgent)
	}
}

const planJSON = `{
  "product_name": "FitPal",
  "research_goal": "Validate launch",
  "subtasks": [
    {"step": 1, "task_name": "Market sizing", "description": "Size the market", "tool_name": "analyze_market_size", "rationale": "Know the TAM"}
  ],
  "estimated_duration": "2 weeks"
}`

const reportJSON = `{
  "executive_summary": "Launch.",
  "market_analysis": "Large.",
  "competitive_landscape": "Crowded.",
  "customer_insights": "Wants UX.",
  "regulatory_considerations": "GDPR.",
  "launch_recommendation": "Go.",
  "confidence_score": 0.8
}`

func TestMarketResearch(t *testing.T) {
	inv := newScriptInvoker().
		text("Research Planner", planJSON).
		text("Research Executor", "market is $2.5B").
		text("Research Synthesizer", "```json\n"+reportJSON+"\n```")

	w, err := workflow.NewMarketResearch(inv)
	if err != nil {
		t.Fatalf("NewMarketResearch: %v", err)
	}
	got, err := w.Run(t.Context(), workflow.Product{
		Name:         "FitPal",
		Category:     "fitness app",
		TargetMarket: "busy professionals",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	if got.Plan.ResearchGoal != "Validate launch" || len(got.Plan.Subtasks) != 1 {
		t.Fatalf("Plan = %+v", got.Plan)
	}
	if got.Report.LaunchRecommendation != "Go." || got.Report.ConfidenceScore != 0.8 {
		t.Fatalf("Report = %+v", got.Report)
	}
	if got.Findings != "market is $2.5B" {
		t.Fatalf("Findings = %q", got.Findings)
	}

	exec := inv.inputs["Research Executor"][0]
	for _, s := range []string{`"tool": "analyze_market_size"`, "Use 'busy professionals' as the target_segment parameter.", "Region: North America"} {
		if !strings.Contains(exec, s) {
			t.Fatalf("execution prompt %q does not contain %q", exec, s)
		}
	}
	if synth := inv.inputs["Research Synthesizer"][0]; !strings.Contains(synth, "RESEARCH FINDINGS:\nmarket is $2.5B") {
		t.Fatalf("synthesis prompt %q does not carry the findings", synth)
	}
}

func TestMarketResearch_InvalidPlan(t *testing.T) {
	inv := newScriptInvoker().text("Research Planner", `{"product_name": "x"}`)

	w, err := workflow.NewMarketResearch(inv)
	if err != nil {
		t.Fatalf("NewMarketResearch: %v", err)
	}
	_, err = w.Run(t.Context(), workflow.Product{Name: "x"})
	var schemaErr *types.SchemaValidationError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Run error = %v, want *types.SchemaValidationError", err)
	}
	if diff := cmp.Diff([]string{"Research Planner"}, inv.invoked); diff != "" {
		t.Fatalf("invoked mismatch (-want +got):\n%s", diff)
	}
}

func TestResearchTools(t *testing.T) {
	byName := make(map[string]types.Tool)
	for _, tool := range workflow.ResearchTools() {
		byName[tool.Name()] = tool
	}

	got, err := byName["analyze_market_size"].Run(t.Context(), map[string]any{
		"product_category": "fitness app",
		"region":           "Europe",
	})
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	insight, ok := got.(*workflow.MarketInsight)
	if !ok {
		t.Fatalf("Run() = %T, want *workflow.MarketInsight", got)
	}
	if insight.MarketSize != "$2.5B USD in Europe" {
		t.Fatalf("MarketSize = %q", insight.MarketSize)
	}

	if _, err := byName["gather_customer_insights"].Run(t.Context(), map[string]any{}); err == nil {
		t.Fatal("expected error for missing target_segment")
	}
}

func TestDraftReview(t *testing.T) {
	inv := newScriptInvoker().
		text("DraftWriter", "The moon landing happened in 1969.").
		text("FactChecker", `{"status": "ACCURATE", "reasoning": "Apollo 11 landed in July 1969."}`)

	w, err := workflow.NewDraftReview(inv)
	if err != nil {
		t.Fatalf("NewDraftReview: %v", err)
	}
	got, err := w.Run(t.Context(), "the moon landing")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if !got.Review.Accurate() {
		t.Fatalf("Review = %+v, want ACCURATE", got.Review)
	}
	if got, want := inv.inputs["FactChecker"][0], "Text to fact check:\nThe moon landing happened in 1969."; got != want {
		t.Fatalf("review prompt = %q, want %q", got, want)
	}
	if diff := cmp.Diff([]string{types.InputStage, workflow.StageDraftText, workflow.StageReviewOutput}, got.State.Names()); diff != "" {
		t.Fatalf("stages mismatch (-want +got):\n%s", diff)
	}
}

func TestDraftReview_InvalidStatus(t *testing.T) {
	inv := newScriptInvoker().
		text("DraftWriter", "draft").
		text("FactChecker", `{"status": "MAYBE", "reasoning": "unsure"}`)

	w, err := workflow.NewDraftReview(inv)
	if err != nil {
		t.Fatalf("NewDraftReview: %v", err)
	}
	var schemaErr *types.SchemaValidationError
	if _, err := w.Run(t.Context(), "x"); !errors.As(err, &schemaErr) {
		t.Fatalf("Run error = %v, want *types.SchemaValidationError", err)
	}
}

const exercisePlanJSON = `{
	"user_name": "Ana",
	"fitness_goal": "muscle gain",
	"weekly_schedule": [
		{"day": "Monday", "focus": "Push", "exercises": ["Bench press"], "sets_reps": ["4x8"], "duration": "60 min", "notes": "warm up first"},
		{"day": "Thursday", "focus": "Legs", "exercises": ["Squat"], "sets_reps": ["4x8"], "duration": "60 min", "notes": ""}
	],
	"warm_up_routine": "5 min row",
	"cool_down_routine": "stretch",
	"progressive_overload_strategy": "add 2.5kg weekly",
	"safety_precautions": ["use a spotter"]
}`

const dietPlanJSON = `{
	"user_name": "Ana",
	"diet_preference": "Vegetarian",
	"daily_calorie_target": "2600 kcal",
	"macronutrient_split": "25/45/30",
	"weekly_meals": [
		{"day": "Monday", "breakfast": "oats", "mid_morning_snack": "yogurt", "lunch": "dal", "evening_snack": "nuts", "dinner": "paneer",
		 "total_calories": "2600", "protein_grams": "140", "carbs_grams": "290", "fats_grams": "85"}
	],
	"meal_timing_guidelines": "protein every 4 hours",
	"hydration_recommendations": "3 liters",
	"supplement_suggestions": ["creatine"]
}`

const comprehensiveReportJSON = `{
	"executive_summary": "Train four days and eat in a surplus.",
	"user_profile_analysis": "Healthy adult.",
	"exercise_plan_overview": "Push and legs.",
	"diet_plan_overview": "Vegetarian surplus.",
	"integration_strategy": "Carbs around training.",
	"progress_tracking_methods": ["weekly weigh-in"],
	"weekly_milestones": ["week 1: learn the lifts"],
	"success_tips": ["sleep 8 hours"],
	"safety_reminders": ["stop on sharp pain"],
	"confidence_score": 0.85
}`

var ana = workflow.Profile{
	Name:           "Ana",
	Gender:         "Female",
	Age:            29,
	WeightKg:       62,
	HeightCm:       168,
	BodyFat:        24,
	DietPreference: "Vegetarian",
	Goal:           "muscle gain",
}

func TestFitnessPlan(t *testing.T) {
	inv := newScriptInvoker().
		text("Fitness Calculator", "BMI 21.97 (Normal weight)").
		text("Nutrition Calculator", "TDEE 2100").
		text("Exercise Planner", exercisePlanJSON).
		text("Diet Planner", dietPlanJSON).
		text("Fitness Synthesizer", "```json\n"+comprehensiveReportJSON+"\n```")

	w, err := workflow.NewFitnessPlan(inv)
	if err != nil {
		t.Fatalf("NewFitnessPlan: %v", err)
	}
	got, err := w.Run(t.Context(), ana)
	if err != nil {
		t.Fatalf("Run: %v", err)
	}

	want := []string{"Fitness Calculator", "Nutrition Calculator", "Exercise Planner", "Diet Planner", "Fitness Synthesizer"}
	if diff := cmp.Diff(want, inv.invoked); diff != "" {
		t.Fatalf("invoked mismatch (-want +got):\n%s", diff)
	}
	if got.Exercise.FitnessGoal != "muscle gain" || len(got.Exercise.WeeklySchedule) != 2 {
		t.Fatalf("Exercise = %+v", got.Exercise)
	}
	if got.Diet.DailyCalorieTarget != "2600 kcal" || len(got.Diet.WeeklyMeals) != 1 {
		t.Fatalf("Diet = %+v", got.Diet)
	}
	if got.Report.ConfidenceScore != 0.85 || got.Report.SuccessTips[0] != "sleep 8 hours" {
		t.Fatalf("Report = %+v", got.Report)
	}
	if got.Profile.ActivityLevel != "moderate" || got.Profile.FitnessLevel != "beginner" {
		t.Fatalf("Profile defaults = %q, %q", got.Profile.ActivityLevel, got.Profile.FitnessLevel)
	}
	if got.FitnessMetrics != "BMI 21.97 (Normal weight)" || got.NutritionMetrics != "TDEE 2100" {
		t.Fatalf("metrics = %q, %q", got.FitnessMetrics, got.NutritionMetrics)
	}

	prompts := map[string][]string{
		"Fitness Calculator":   {"Calculate BMI using their weight (62 kg) and height (168 cm)", "- Age: 29 years"},
		"Nutrition Calculator": {"gender (Female) and activity level (moderate)", "diet preference: Vegetarian"},
		"Exercise Planner":     {"CALCULATED FITNESS METRICS:\nBMI 21.97 (Normal weight)", "Consider medical conditions: None"},
		"Diet Planner":         {"CALCULATED NUTRITION METRICS:\nTDEE 2100"},
		"Fitness Synthesizer":  {"- Schedule: 2 days per week", "- Focus Areas: Push, Legs", "- Calorie Target: 2600 kcal"},
	}
	for name, wants := range prompts {
		prompt := inv.inputs[name][0]
		for _, s := range wants {
			if !strings.Contains(prompt, s) {
				t.Fatalf("%s prompt %q does not contain %q", name, prompt, s)
			}
		}
	}
	if strings.Contains(inv.inputs["Exercise Planner"][0], "TDEE 2100") {
		t.Fatal("exercise planner saw the nutrition metrics")
	}
}

func TestFitnessPlan_InvalidExercisePlan(t *testing.T) {
	inv := newScriptInvoker().
		text("Fitness Calculator", "BMI").
		text("Nutrition Calculator", "TDEE").
		text("Exercise Planner", `{"user_name": "Ana"}`).
		text("Diet Planner", dietPlanJSON)

	w, err := workflow.NewFitnessPlan(inv)
	if err != nil {
		t.Fatalf("NewFitnessPlan: %v", err)
	}
	_, err = w.Run(t.Context(), ana)
	var schemaErr *types.SchemaValidationError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("Run error = %v, want *types.SchemaValidationError", err)
	}
	if schemaErr.Agent != "Exercise Planner" {
		t.Fatalf("SchemaValidationError.Agent = %q", schemaErr.Agent)
	}
	if slices.Contains(inv.invoked, "Fitness Synthesizer") {
		t.Fatalf("synthesizer invoked after an invalid plan: %v", inv.invoked)
	}
}

func TestFitnessPlan_InvalidProfile(t *testing.T) {
	inv := newScriptInvoker()
	w, err := workflow.NewFitnessPlan(inv)
	if err != nil {
		t.Fatalf("NewFitnessPlan: %v", err)
	}
	if _, err := w.Run(t.Context(), workflow.Profile{Name: "nobody"}); err == nil {
		t.Fatal("expected error for an empty profile")
	}
	if len(inv.invoked) != 0 {
		t.Fatalf("invoked %v, want none", inv.invoked)
	}
}

func TestCalculateBMI(t *testing.T) {
	tests := map[string]struct {
		weight, height float64
		wantBMI        float64
		wantCategory   string
	}{
		"underweight": {weight: 50, height: 175, wantBMI: 16.33, wantCategory: "Underweight"},
		"normal":      {weight: 70, height: 175, wantBMI: 22.86, wantCategory: "Normal weight"},
		"overweight":  {weight: 90, height: 175, wantBMI: 29.39, wantCategory: "Overweight"},
		"obese":       {weight: 100, height: 170, wantBMI: 34.6, wantCategory: "Obese"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := workflow.CalculateBMI(tt.weight, tt.height)
			if err != nil {
				t.Fatalf("CalculateBMI: %v", err)
			}
			if got.BMI != tt.wantBMI || got.Category != tt.wantCategory {
				t.Fatalf("CalculateBMI(%v, %v) = %v %q, want %v %q", tt.weight, tt.height, got.BMI, got.Category, tt.wantBMI, tt.wantCategory)
			}
		})
	}

	if _, err := workflow.CalculateBMI(70, 0); err == nil {
		t.Fatal("expected error for zero height")
	}
}

func TestCalculateTDEE(t *testing.T) {
	tests := map[string]struct {
		weight, height float64
		age            int
		gender         string
		activity       string
		want           *workflow.TDEEResult
	}{
		"male moderate": {
			weight: 80, height: 180, age: 30, gender: "male", activity: "moderate",
			want: &workflow.TDEEResult{BMR: 1780, TDEE: 2759, MaintenanceCalories: 2759, WeightLossCalories: 2345, MuscleGainCalories: 3173},
		},
		"female light": {
			weight: 60, height: 165, age: 25, gender: "Female", activity: "light",
			want: &workflow.TDEEResult{BMR: 1345, TDEE: 1850, MaintenanceCalories: 1850, WeightLossCalories: 1572, MuscleGainCalories: 2127},
		},
		"unknown activity is moderate": {
			weight: 80, height: 180, age: 30, gender: "MALE", activity: "couch",
			want: &workflow.TDEEResult{BMR: 1780, TDEE: 2759, MaintenanceCalories: 2759, WeightLossCalories: 2345, MuscleGainCalories: 3173},
		},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := workflow.CalculateTDEE(tt.weight, tt.height, tt.age, tt.gender, tt.activity)
			if err != nil {
				t.Fatalf("CalculateTDEE: %v", err)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Fatalf("CalculateTDEE mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRecommendNutrition(t *testing.T) {
	got, err := workflow.RecommendNutrition("stay healthy", 2000, 50, "Vegetarian")
	if err != nil {
		t.Fatalf("RecommendNutrition: %v", err)
	}
	want := &workflow.NutritionTargets{
		DailyCalories:  2000,
		ProteinGrams:   80,
		CarbsGrams:     240,
		FatsGrams:      80,
		ProteinPercent: 16,
		CarbsPercent:   48,
		FatsPercent:    36,
		DietPreference: "Vegetarian",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("RecommendNutrition mismatch (-want +got):\n%s", diff)
	}

	if _, err := workflow.RecommendNutrition("fat loss", 0, 50, ""); err == nil {
		t.Fatal("expected error for zero tdee")
	}
}

func TestRecommendExercise(t *testing.T) {
	tests := map[string]string{
		"Build Muscle":    "8-12 reps for hypertrophy",
		"fat loss":        "12-15 reps with shorter rest",
		"weight loss":     "12-15 reps with shorter rest",
		"general fitness": "10-15 reps",
		"":                "10-15 reps",
	}
	for goal, want := range tests {
		if got := workflow.RecommendExercise(goal).RepRange; got != want {
			t.Errorf("RecommendExercise(%q).RepRange = %q, want %q", goal, got, want)
		}
	}
}

func TestFitnessTools(t *testing.T) {
	byName := make(map[string]types.Tool)
	for _, tool := range append(workflow.FitnessTools(), workflow.NutritionTools()...) {
		byName[tool.Name()] = tool
	}
	if diff := cmp.Diff([]string{"calculate_bmi", "calculate_tdee", "get_exercise_recommendations", "get_nutrition_recommendations"}, slices.Sorted(maps.Keys(byName))); diff != "" {
		t.Fatalf("tool names mismatch (-want +got):\n%s", diff)
	}

	got, err := byName["calculate_bmi"].Run(t.Context(), map[string]any{"weight_kg": 70.0, "height_cm": 175.0})
	if err != nil {
		t.Fatalf("calculate_bmi: %v", err)
	}
	if bmi, ok := got.(*workflow.BMIResult); !ok || bmi.BMI != 22.86 {
		t.Fatalf("calculate_bmi = %#v", got)
	}

	got, err = byName["calculate_tdee"].Run(t.Context(), map[string]any{
		"weight_kg": 80.0,
		"height_cm": 180.0,
		"age":       30.0,
		"gender":    "male",
	})
	if err != nil {
		t.Fatalf("calculate_tdee: %v", err)
	}
	if tdee, ok := got.(*workflow.TDEEResult); !ok || tdee.TDEE != 2759 {
		t.Fatalf("calculate_tdee = %#v", got)
	}

	if _, err := byName["calculate_tdee"].Run(t.Context(), map[string]any{"weight_kg": 80.0}); err == nil {
		t.Fatal("expected error for missing tdee arguments")
	}
	if _, err := byName["calculate_tdee"].Run(t.Context(), map[string]any{
		"weight_kg": 80.0, "height_cm": 180.0, "age": 30.0, "gender": "male", "activity_level": "couch",
	}); err == nil {
		t.Fatal("expected error for an activity level outside the enum")
	}
}
