// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"

	"github.com/go-a2a/adk-patterns/agent"
	"github.com/go-a2a/adk-patterns/internal/pool"
	"github.com/go-a2a/adk-patterns/schema"
	"github.com/go-a2a/adk-patterns/tool/tools"
	"github.com/go-a2a/adk-patterns/types"
)

// Fitness plan stage names.
const (
	StageFitnessMetrics   = "fitness_metrics"
	StageNutritionMetrics = "nutrition_metrics"
	StageExercisePlan     = "exercise_plan"
	StageDietPlan         = "diet_plan"
	StageFitnessReport    = "report"
)

// ExerciseDay is one day of an [ExercisePlan].
type ExerciseDay struct {
	Day       string   `json:"day"`
	Focus     string   `json:"focus"`
	Exercises []string `json:"exercises"`
	SetsReps  []string `json:"sets_reps"`
	Duration  string   `json:"duration"`
	Notes     string   `json:"notes"`
}

// ExercisePlan is the exercise planner's output.
type ExercisePlan struct {
	UserName                    string        `json:"user_name"`
	FitnessGoal                 string        `json:"fitness_goal"`
	WeeklySchedule              []ExerciseDay `json:"weekly_schedule"`
	WarmUpRoutine               string        `json:"warm_up_routine"`
	CoolDownRoutine             string        `json:"cool_down_routine"`
	ProgressiveOverloadStrategy string        `json:"progressive_overload_strategy"`
	SafetyPrecautions           []string      `json:"safety_precautions"`
}

// MealDay is one day of a [DietPlan].
type MealDay struct {
	Day             string `json:"day"`
	Breakfast       string `json:"breakfast"`
	MidMorningSnack string `json:"mid_morning_snack"`
	Lunch           string `json:"lunch"`
	EveningSnack    string `json:"evening_snack"`
	Dinner          string `json:"dinner"`
	TotalCalories   string `json:"total_calories"`
	ProteinGrams    string `json:"protein_grams"`
	CarbsGrams      string `json:"carbs_grams"`
	FatsGrams       string `json:"fats_grams"`
}

// DietPlan is the diet planner's output.
type DietPlan struct {
	UserName                 string    `json:"user_name"`
	DietPreference           string    `json:"diet_preference"`
	DailyCalorieTarget       string    `json:"daily_calorie_target"`
	MacronutrientSplit       string    `json:"macronutrient_split"`
	WeeklyMeals              []MealDay `json:"weekly_meals"`
	MealTimingGuidelines     string    `json:"meal_timing_guidelines"`
	HydrationRecommendations string    `json:"hydration_recommendations"`
	SupplementSuggestions    []string  `json:"supplement_suggestions"`
}

// ComprehensiveReport integrates an [ExercisePlan] and a [DietPlan].
type ComprehensiveReport struct {
	ExecutiveSummary        string   `json:"executive_summary"`
	UserProfileAnalysis     string   `json:"user_profile_analysis"`
	ExercisePlanOverview    string   `json:"exercise_plan_overview"`
	DietPlanOverview        string   `json:"diet_plan_overview"`
	IntegrationStrategy     string   `json:"integration_strategy"`
	ProgressTrackingMethods []string `json:"progress_tracking_methods"`
	WeeklyMilestones        []string `json:"weekly_milestones"`
	SuccessTips             []string `json:"success_tips"`
	SafetyReminders         []string `json:"safety_reminders"`
	ConfidenceScore         float64  `json:"confidence_score" jsonschema:"minimum=0,maximum=1"`
}

// BMIResult is the result of the calculate_bmi tool.
type BMIResult struct {
	BMI            float64 `json:"bmi"`
	Category       string  `json:"category"`
	Recommendation string  `json:"recommendation"`
}

// TDEEResult is the result of the calculate_tdee tool.
type TDEEResult struct {
	BMR                 float64 `json:"bmr"`
	TDEE                float64 `json:"tdee"`
	MaintenanceCalories float64 `json:"maintenance_calories"`
	WeightLossCalories  float64 `json:"weight_loss_calories"`
	MuscleGainCalories  float64 `json:"muscle_gain_calories"`
}

// ExerciseGuidance is the result of the get_exercise_recommendations tool.
type ExerciseGuidance struct {
	WorkoutSplit string `json:"workout_split"`
	Frequency    string `json:"frequency"`
	RepRange     string `json:"rep_range"`
	Cardio       string `json:"cardio"`
	Rest         string `json:"rest"`
}

// NutritionTargets is the result of the get_nutrition_recommendations tool.
type NutritionTargets struct {
	DailyCalories  float64 `json:"daily_calories"`
	ProteinGrams   float64 `json:"protein_grams"`
	CarbsGrams     float64 `json:"carbs_grams"`
	FatsGrams      float64 `json:"fats_grams"`
	ProteinPercent float64 `json:"protein_percent"`
	CarbsPercent   float64 `json:"carbs_percent"`
	FatsPercent    float64 `json:"fats_percent"`
	DietPreference string  `json:"diet_preference"`
}

// CalculateBMI returns the body mass index for a weight in kilograms and a
// height in centimeters, rounded to two decimals.
func CalculateBMI(weightKg, heightCm float64) (*BMIResult, error) {
	if weightKg <= 0 || heightCm <= 0 {
		return nil, fmt.Errorf("weight and height must be positive, got %gkg %gcm", weightKg, heightCm)
	}
	heightM := heightCm / 100
	bmi := round(weightKg/(heightM*heightM), 2)

	var category string
	switch {
	case bmi < 18.5:
		category = "Underweight"
	case bmi < 25:
		category = "Normal weight"
	case bmi < 30:
		category = "Overweight"
	default:
		category = "Obese"
	}
	return &BMIResult{
		BMI:            bmi,
		Category:       category,
		Recommendation: fmt.Sprintf("Your BMI is %.2f (%s)", bmi, category),
	}, nil
}

var activityMultipliers = map[string]float64{
	"sedentary":   1.2,
	"light":       1.375,
	"moderate":    1.55,
	"active":      1.725,
	"very_active": 1.9,
}

// CalculateTDEE returns the total daily energy expenditure from the
// Mifflin-St Jeor basal metabolic rate. Unknown activity levels count as
// moderate.
func CalculateTDEE(weightKg, heightCm float64, age int, gender, activityLevel string) (*TDEEResult, error) {
	if weightKg <= 0 || heightCm <= 0 || age <= 0 {
		return nil, fmt.Errorf("weight, height and age must be positive, got %gkg %gcm %d", weightKg, heightCm, age)
	}
	bmr := 10*weightKg + 6.25*heightCm - 5*float64(age)
	if strings.EqualFold(gender, "male") {
		bmr += 5
	} else {
		bmr -= 161
	}

	multiplier, ok := activityMultipliers[strings.ToLower(activityLevel)]
	if !ok {
		multiplier = activityMultipliers["moderate"]
	}
	tdee := bmr * multiplier

	return &TDEEResult{
		BMR:                 round(bmr, 0),
		TDEE:                round(tdee, 0),
		MaintenanceCalories: round(tdee, 0),
		WeightLossCalories:  round(tdee*0.85, 0),
		MuscleGainCalories:  round(tdee*1.15, 0),
	}, nil
}

type fitnessGoal int

const (
	goalGeneralFitness fitnessGoal = iota
	goalMuscleGain
	goalFatLoss
)

func classifyGoal(goal string) fitnessGoal {
	goal = strings.ToLower(goal)
	switch {
	case strings.Contains(goal, "muscle"):
		return goalMuscleGain
	case strings.Contains(goal, "fat"), strings.Contains(goal, "loss"):
		return goalFatLoss
	default:
		return goalGeneralFitness
	}
}

var exerciseGuidance = map[fitnessGoal]ExerciseGuidance{
	goalMuscleGain: {
		WorkoutSplit: "Push/Pull/Legs or Upper/Lower",
		Frequency:    "4-6 days per week",
		RepRange:     "8-12 reps for hypertrophy",
		Cardio:       "2-3 sessions per week (low intensity)",
		Rest:         "48 hours between same muscle groups",
	},
	goalFatLoss: {
		WorkoutSplit: "Full body or Upper/Lower",
		Frequency:    "4-5 days per week",
		RepRange:     "12-15 reps with shorter rest",
		Cardio:       "4-5 sessions per week (mix HIIT and steady state)",
		Rest:         "Active recovery recommended",
	},
	goalGeneralFitness: {
		WorkoutSplit: "Full body workouts",
		Frequency:    "3-4 days per week",
		RepRange:     "10-15 reps",
		Cardio:       "3 sessions per week",
		Rest:         "At least 1 full rest day per week",
	},
}

// RecommendExercise returns the training guidance for a goal. Goals
// mentioning muscle favor hypertrophy, goals mentioning fat or loss favor
// conditioning, and any other goal gets general fitness guidance.
func RecommendExercise(goal string) *ExerciseGuidance {
	g := exerciseGuidance[classifyGoal(goal)]
	return &g
}

// RecommendNutrition returns daily calorie and macronutrient targets for a
// goal, a TDEE and a body weight in kilograms.
func RecommendNutrition(goal string, tdee, weightKg float64, dietPreference string) (*NutritionTargets, error) {
	if tdee <= 0 || weightKg <= 0 {
		return nil, fmt.Errorf("tdee and weight must be positive, got %g %gkg", tdee, weightKg)
	}

	var calories, proteinPerKg, carbsShare, fatsShare float64
	switch classifyGoal(goal) {
	case goalMuscleGain:
		calories, proteinPerKg, carbsShare, fatsShare = tdee*1.15, 2.0, 0.40, 0.25
	case goalFatLoss:
		calories, proteinPerKg, carbsShare, fatsShare = tdee*0.85, 2.2, 0.35, 0.30
	default:
		calories, proteinPerKg, carbsShare, fatsShare = tdee, 1.6, 0.40, 0.30
	}

	protein := weightKg * proteinPerKg
	proteinCal := protein * 4
	remaining := calories - proteinCal
	carbsCal := remaining * carbsShare / (carbsShare + fatsShare)
	fatsCal := remaining * fatsShare / (carbsShare + fatsShare)

	return &NutritionTargets{
		DailyCalories:  round(calories, 0),
		ProteinGrams:   round(protein, 0),
		CarbsGrams:     round(carbsCal/4, 0),
		FatsGrams:      round(fatsCal/9, 0),
		ProteinPercent: round(proteinCal/calories*100, 0),
		CarbsPercent:   round(carbsCal/calories*100, 0),
		FatsPercent:    round(fatsCal/calories*100, 0),
		DietPreference: dietPreference,
	}, nil
}

func round(v float64, places int) float64 {
	p := math.Pow10(places)
	return math.Round(v*p) / p
}

type (
	bmiArgs struct {
		WeightKg float64 `json:"weight_kg" jsonschema:"description=Weight in kilograms"`
		HeightCm float64 `json:"height_cm" jsonschema:"description=Height in centimeters"`
	}
	tdeeArgs struct {
		WeightKg      float64 `json:"weight_kg" jsonschema:"description=Weight in kilograms"`
		HeightCm      float64 `json:"height_cm" jsonschema:"description=Height in centimeters"`
		Age           int     `json:"age" jsonschema:"description=Age in years"`
		Gender        string  `json:"gender" jsonschema:"description=Male or Female"`
		ActivityLevel string  `json:"activity_level,omitempty" jsonschema:"description=Activity level,enum=sedentary,enum=light,enum=moderate,enum=active,enum=very_active"`
	}
	exerciseArgs struct {
		Goal         string  `json:"goal" jsonschema:"description=Fitness goal (muscle gain or fat loss or general fitness)"`
		FitnessLevel string  `json:"fitness_level" jsonschema:"description=beginner or intermediate or advanced"`
		BodyFat      float64 `json:"body_fat" jsonschema:"description=Body fat percentage"`
	}
	nutritionArgs struct {
		Goal           string  `json:"goal" jsonschema:"description=Fitness goal"`
		TDEE           float64 `json:"tdee" jsonschema:"description=Total daily energy expenditure"`
		WeightKg       float64 `json:"weight_kg" jsonschema:"description=Body weight in kilograms"`
		DietPreference string  `json:"diet_preference" jsonschema:"description=Vegetarian or Non-Vegetarian"`
	}
)

// FitnessTools returns the tools of the fitness calculator.
func FitnessTools() []types.Tool {
	return []types.Tool{
		tools.MustFunctionTool("calculate_bmi", "Calculate Body Mass Index (BMI).",
			func(_ context.Context, args bmiArgs) (*BMIResult, error) {
				return CalculateBMI(args.WeightKg, args.HeightCm)
			}),
		tools.MustFunctionTool("get_exercise_recommendations", "Get exercise type recommendations based on goals.",
			func(_ context.Context, args exerciseArgs) (*ExerciseGuidance, error) {
				return RecommendExercise(args.Goal), nil
			}),
	}
}

// NutritionTools returns the tools of the nutrition calculator.
func NutritionTools() []types.Tool {
	return []types.Tool{
		tools.MustFunctionTool("calculate_tdee", "Calculate Total Daily Energy Expenditure (TDEE).",
			func(_ context.Context, args tdeeArgs) (*TDEEResult, error) {
				return CalculateTDEE(args.WeightKg, args.HeightCm, args.Age, args.Gender, args.ActivityLevel)
			}),
		tools.MustFunctionTool("get_nutrition_recommendations", "Get nutrition recommendations based on goals.",
			func(_ context.Context, args nutritionArgs) (*NutritionTargets, error) {
				return RecommendNutrition(args.Goal, args.TDEE, args.WeightKg, args.DietPreference)
			}),
	}
}

var (
	exercisePlanSchema        = schema.MustOf[ExercisePlan]()
	dietPlanSchema            = schema.MustOf[DietPlan]()
	comprehensiveReportSchema = schema.MustOf[ComprehensiveReport]()
)

// Profile describes the person a [FitnessPlan] plans for.
type Profile struct {
	Name             string
	Gender           string
	Age              int
	WeightKg         float64
	HeightCm         float64
	BodyFat          float64
	MuscleStrength   float64
	DietPreference   string
	Goal             string
	MedicalCondition string
	ActivityLevel    string
	FitnessLevel     string
}

func (p Profile) validate() error {
	var errs []error
	if p.Age <= 0 {
		errs = append(errs, errors.New("age must be positive"))
	}
	if p.WeightKg <= 0 {
		errs = append(errs, errors.New("weight must be positive"))
	}
	if p.HeightCm <= 0 {
		errs = append(errs, errors.New("height must be positive"))
	}
	if p.Goal == "" {
		errs = append(errs, errors.New("goal is required"))
	}
	return errors.Join(errs...)
}

// FitnessReport is the outcome of a [FitnessPlan].
type FitnessReport struct {
	Profile          Profile
	FitnessMetrics   string
	NutritionMetrics string
	Exercise         *ExercisePlan
	Diet             *DietPlan
	Report           *ComprehensiveReport
	State            *types.WorkflowState
}

// FitnessPlan computes fitness and nutrition metrics with calculator tools,
// turns each into a structured plan, and integrates both plans into a
// [ComprehensiveReport].
//
// Calculators carry tools and no output schema; planners carry an output
// schema and no tools.
type FitnessPlan struct {
	invoker         types.Invoker
	o               *options
	fitnessCalc     *types.AgentDescriptor
	nutritionCalc   *types.AgentDescriptor
	exercisePlanner *types.AgentDescriptor
	dietPlanner     *types.AgentDescriptor
	synthesizer     *types.AgentDescriptor
}

// NewFitnessPlan returns a [FitnessPlan] running on invoker.
func NewFitnessPlan(invoker types.Invoker, opts ...Option) (*FitnessPlan, error) {
	if invoker == nil {
		return nil, errors.New("fitness plan: nil invoker")
	}
	o := newOptions(opts)

	return &FitnessPlan{
		invoker: invoker,
		o:       o,
		fitnessCalc: o.descriptor("Fitness Calculator",
			types.WithInstruction(heredoc.Doc(`
				You are a fitness metrics calculator.

				Your role is to calculate key fitness metrics using the available tools:
				1. Use calculate_bmi to get Body Mass Index
				2. Use get_exercise_recommendations to get workout type recommendations

				Provide all calculated metrics clearly in your response.`)),
			types.WithTools(FitnessTools()...),
		),
		nutritionCalc: o.descriptor("Nutrition Calculator",
			types.WithInstruction(heredoc.Doc(`
				You are a nutrition metrics calculator.

				Your role is to calculate key nutrition metrics using the available tools:
				1. Use calculate_tdee to get Total Daily Energy Expenditure
				2. Use get_nutrition_recommendations to get macro targets

				Provide all calculated metrics clearly in your response.`)),
			types.WithTools(NutritionTools()...),
		),
		exercisePlanner: o.descriptor("Exercise Planner",
			types.WithInstruction(heredoc.Doc(`
				You are an expert fitness trainer and exercise scientist.

				Create detailed, personalized exercise plans based on the user's physical
				stats, the calculated fitness metrics, their goals and experience level,
				and any medical conditions.

				When creating exercise plans:
				1. Use the provided calculated metrics
				2. Design a complete weekly schedule with specific exercises
				3. Include sets, reps, rest periods, and progression strategies
				4. Provide warm-up and cool-down routines
				5. Add safety precautions based on medical conditions
				6. Ensure the plan is realistic and sustainable`)),
			types.WithOutputSchema(exercisePlanSchema),
		),
		dietPlanner: o.descriptor("Diet Planner",
			types.WithInstruction(heredoc.Doc(`
				You are an expert nutritionist and registered dietitian.

				Create detailed, personalized nutrition plans based on the user's metabolic
				needs, the calculated nutrition metrics, their goals, dietary preferences,
				and any medical conditions requiring dietary modifications.

				When creating diet plans:
				1. Use the provided calculated metrics
				2. Design a complete 7-day meal plan with specific foods and portions
				3. Ensure macronutrient targets are met daily
				4. Provide meal timing strategies to support training
				5. Include hydration and supplement recommendations
				6. Make meals practical, affordable, and culturally appropriate`)),
			types.WithOutputSchema(dietPlanSchema),
		),
		synthesizer: o.descriptor("Fitness Synthesizer",
			types.WithInstruction(heredoc.Doc(`
				You are a master fitness consultant who integrates exercise and nutrition plans.

				Analyze the exercise plan and the diet plan, and create an integrated strategy
				in which training and nutrition support each other. Provide practical
				implementation guidance, realistic milestones and success tips.

				Include an executive summary, a user profile analysis, an overview of each
				plan, the integration strategy, progress tracking methods, weekly milestones,
				success tips, safety reminders and a confidence score (0-1) based on plan
				feasibility.`)),
			types.WithOutputSchema(comprehensiveReportSchema),
		),
	}, nil
}

// Run plans for p.
//
// Activity level defaults to moderate and fitness level to beginner.
func (w *FitnessPlan) Run(ctx context.Context, p Profile) (*FitnessReport, error) {
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("fitness plan: %w", err)
	}
	if p.ActivityLevel == "" {
		p.ActivityLevel = "moderate"
	}
	if p.FitnessLevel == "" {
		p.FitnessLevel = "beginner"
	}
	profile := profilePrompt(p)

	seq, err := agent.NewSequentialAgent("fitness_plan", w.invoker,
		agent.Stage{
			Name: StageFitnessMetrics,
			Build: func(types.StateReader) (*types.AgentDescriptor, string, error) {
				return w.fitnessCalc, fitnessMetricsPrompt(profile, p), nil
			},
		},
		agent.Stage{
			Name: StageNutritionMetrics,
			Build: func(types.StateReader) (*types.AgentDescriptor, string, error) {
				return w.nutritionCalc, nutritionMetricsPrompt(profile, p), nil
			},
		},
		agent.Stage{
			Name:     StageExercisePlan,
			Requires: []string{StageFitnessMetrics},
			Build: func(state types.StateReader) (*types.AgentDescriptor, string, error) {
				return w.exercisePlanner, exercisePlanPrompt(profile, p, state.Text(StageFitnessMetrics)), nil
			},
		},
		agent.Stage{
			Name:     StageDietPlan,
			Requires: []string{StageNutritionMetrics},
			Build: func(state types.StateReader) (*types.AgentDescriptor, string, error) {
				return w.dietPlanner, dietPlanPrompt(profile, p, state.Text(StageNutritionMetrics)), nil
			},
		},
		agent.Stage{
			Name:     StageFitnessReport,
			Requires: []string{StageExercisePlan, StageDietPlan},
			Build: func(state types.StateReader) (*types.AgentDescriptor, string, error) {
				exercise, diet, err := recordedPlans(state)
				if err != nil {
					return nil, "", err
				}
				return w.synthesizer, fitnessSynthesisPrompt(profile, exercise, diet), nil
			},
		},
	)
	if err != nil {
		return nil, err
	}

	state, err := seq.WithMetrics(w.o.metrics).Run(ctx, profile)
	if err != nil {
		return nil, err
	}

	exercise, diet, err := recordedPlans(state)
	if err != nil {
		return nil, err
	}
	synth, _ := state.Get(StageFitnessReport)
	report, err := decode(comprehensiveReportSchema, synth)
	if err != nil {
		return nil, err
	}

	return &FitnessReport{
		Profile:          p,
		FitnessMetrics:   state.Text(StageFitnessMetrics),
		NutritionMetrics: state.Text(StageNutritionMetrics),
		Exercise:         exercise,
		Diet:             diet,
		Report:           report,
		State:            state,
	}, nil
}

func recordedPlans(state types.StateReader) (*ExercisePlan, *DietPlan, error) {
	res, err := state.Require(StageFitnessReport, StageExercisePlan)
	if err != nil {
		return nil, nil, err
	}
	exercise, err := decode(exercisePlanSchema, res)
	if err != nil {
		return nil, nil, err
	}
	if res, err = state.Require(StageFitnessReport, StageDietPlan); err != nil {
		return nil, nil, err
	}
	diet, err := decode(dietPlanSchema, res)
	if err != nil {
		return nil, nil, err
	}
	return exercise, diet, nil
}

func profilePrompt(p Profile) string {
	return heredoc.Docf(`
		Create a personalized fitness plan for:

		Personal Information:
		- Name: %s
		- Gender: %s
		- Age: %d years
		- Weight: %g kg
		- Height: %g cm
		- Body Fat: %g%%
		- Muscle Strength: %g N

		Goals & Preferences:
		- Diet Preference: %s
		- Fitness Goal: %s
		- Activity Level: %s
		- Fitness Level: %s
		- Medical Conditions: %s`,
		p.Name, p.Gender, p.Age, p.WeightKg, p.HeightCm, p.BodyFat, p.MuscleStrength,
		p.DietPreference, p.Goal, p.ActivityLevel, p.FitnessLevel, orNone(p.MedicalCondition))
}

func fitnessMetricsPrompt(profile string, p Profile) string {
	return profile + "\n\n" + heredoc.Docf(`
		Calculate fitness metrics for this user:
		1. Calculate BMI using their weight (%g kg) and height (%g cm)
		2. Get exercise recommendations based on their goal: %s, fitness level: %s and body fat: %g%%`,
		p.WeightKg, p.HeightCm, p.Goal, p.FitnessLevel, p.BodyFat)
}

func nutritionMetricsPrompt(profile string, p Profile) string {
	return profile + "\n\n" + heredoc.Docf(`
		Calculate nutrition metrics for this user:
		1. Calculate TDEE using weight (%g kg), height (%g cm), age (%d), gender (%s) and activity level (%s)
		2. Get nutrition recommendations based on goal: %s, calculated TDEE, weight (%g kg), and diet preference: %s`,
		p.WeightKg, p.HeightCm, p.Age, p.Gender, p.ActivityLevel, p.Goal, p.WeightKg, p.DietPreference)
}

func exercisePlanPrompt(profile string, p Profile, metrics string) string {
	return profile + "\n\nCALCULATED FITNESS METRICS:\n" + metrics + "\n\n" + heredoc.Docf(`
		Using the calculated BMI and exercise recommendations above, create a detailed weekly exercise plan.
		Focus on the user's goal: %s
		Consider medical conditions: %s

		Provide a complete exercise plan with weekly schedule, warm-up/cool-down routines, and safety precautions.`,
		p.Goal, orNone(p.MedicalCondition))
}

func dietPlanPrompt(profile string, p Profile, metrics string) string {
	return profile + "\n\nCALCULATED NUTRITION METRICS:\n" + metrics + "\n\n" + heredoc.Docf(`
		Using the calculated TDEE and nutrition recommendations above, create a detailed 7-day diet plan.
		Diet preference: %s
		Goal: %s
		Medical conditions: %s

		Provide a complete diet plan with meal timing, hydration, and supplement recommendations.`,
		p.DietPreference, p.Goal, orNone(p.MedicalCondition))
}

func fitnessSynthesisPrompt(profile string, exercise *ExercisePlan, diet *DietPlan) string {
	sb := pool.String.Get()
	defer pool.String.Put(sb)

	focus := make([]string, 0, len(exercise.WeeklySchedule))
	for _, d := range exercise.WeeklySchedule {
		focus = append(focus, d.Focus)
	}

	sb.WriteString("Create a comprehensive fitness report integrating the following plans:\n\n")
	sb.WriteString("USER PROFILE:\n")
	sb.WriteString(profile)
	sb.WriteString("\n\nEXERCISE PLAN SUMMARY:\n")
	fmt.Fprintf(sb, "- Goal: %s\n", exercise.FitnessGoal)
	fmt.Fprintf(sb, "- Schedule: %d days per week\n", len(exercise.WeeklySchedule))
	fmt.Fprintf(sb, "- Focus Areas: %s\n", strings.Join(focus, ", "))
	sb.WriteString("\nDIET PLAN SUMMARY:\n")
	fmt.Fprintf(sb, "- Diet Type: %s\n", diet.DietPreference)
	fmt.Fprintf(sb, "- Calorie Target: %s\n", diet.DailyCalorieTarget)
	fmt.Fprintf(sb, "- Macros: %s\n", diet.MacronutrientSplit)
	sb.WriteString("\nCreate an integrated report that shows how these plans work together to achieve the user's goals.")
	return sb.String()
}

func orNone(s string) string {
	if s == "" {
		return "None"
	}
	return s
}
