// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"context"
	"errors"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/bytedance/sonic"

	"github.com/go-a2a/adk-patterns/agent"
	"github.com/go-a2a/adk-patterns/schema"
	"github.com/go-a2a/adk-patterns/tool/tools"
	"github.com/go-a2a/adk-patterns/types"
)

// Market research stage names.
const (
	StagePlan      = "plan"
	StageExecute   = "execute"
	StageSynthesis = "synthesis"
)

// ResearchSubtask is one step of a [ResearchPlan].
type ResearchSubtask struct {
	Step        int    `json:"step"`
	TaskName    string `json:"task_name"`
	Description string `json:"description"`
	ToolName    string `json:"tool_name"`
	Rationale   string `json:"rationale"`
}

// ResearchPlan is the planner's output.
type ResearchPlan struct {
	ProductName       string            `json:"product_name"`
	ResearchGoal      string            `json:"research_goal"`
	Subtasks          []ResearchSubtask `json:"subtasks"`
	EstimatedDuration string            `json:"estimated_duration"`
}

// MarketInsight is the result of the market size tool.
type MarketInsight struct {
	MarketSize         string   `json:"market_size"`
	GrowthRate         string   `json:"growth_rate"`
	KeyTrends          []string `json:"key_trends"`
	TargetDemographics []string `json:"target_demographics"`
}

// CompetitorInsight is the result of the competitor tool.
type CompetitorInsight struct {
	MainCompetitors              []string `json:"main_competitors"`
	CompetitorStrengths          []string `json:"competitor_strengths"`
	MarketGaps                   []string `json:"market_gaps"`
	DifferentiationOpportunities []string `json:"differentiation_opportunities"`
}

// CustomerInsight is the result of the customer research tool.
type CustomerInsight struct {
	PainPoints       []string `json:"pain_points"`
	DesiredFeatures  []string `json:"desired_features"`
	PriceSensitivity string   `json:"price_sensitivity"`
	AdoptionBarriers []string `json:"adoption_barriers"`
}

// RegulatoryInsight is the result of the regulatory tool.
type RegulatoryInsight struct {
	RelevantRegulations     []string `json:"relevant_regulations"`
	ComplianceRequirements  []string `json:"compliance_requirements"`
	RiskLevel               string   `json:"risk_level"`
	EstimatedComplianceCost string   `json:"estimated_compliance_cost"`
}

// FinalReport is the synthesizer's output.
type FinalReport struct {
	ExecutiveSummary         string  `json:"executive_summary"`
	MarketAnalysis           string  `json:"market_analysis"`
	CompetitiveLandscape     string  `json:"competitive_landscape"`
	CustomerInsights         string  `json:"customer_insights"`
	RegulatoryConsiderations string  `json:"regulatory_considerations"`
	LaunchRecommendation     string  `json:"launch_recommendation"`
	ConfidenceScore          float64 `json:"confidence_score" jsonschema:"minimum=0,maximum=1"`
}

// Product describes the product a [MarketResearch] studies.
type Product struct {
	Name         string
	Category     string
	TargetMarket string
	Region       string
}

// MarketReport is the outcome of a [MarketResearch].
type MarketReport struct {
	Plan     *ResearchPlan
	Findings string
	Report   *FinalReport
	State    *types.WorkflowState
}

type (
	categoryRegionArgs struct {
		ProductCategory string `json:"product_category" jsonschema:"description=The product category to research"`
		Region          string `json:"region" jsonschema:"description=Geographic region for analysis"`
	}
	categoryArgs struct {
		ProductCategory string `json:"product_category" jsonschema:"description=The product category to research"`
	}
	segmentArgs struct {
		TargetSegment string `json:"target_segment" jsonschema:"description=The customer segment to research"`
	}
)

// ResearchTools returns the tools of the research executor. The data is
// simulated.
func ResearchTools() []types.Tool {
	return []types.Tool{
		tools.MustFunctionTool("analyze_market_size", "Analyze total addressable market size and growth trends.",
			func(_ context.Context, args categoryRegionArgs) (*MarketInsight, error) {
				return &MarketInsight{
					MarketSize: fmt.Sprintf("$2.5B USD in %s", args.Region),
					GrowthRate: "18% CAGR",
					KeyTrends: []string{
						"Increasing demand for sustainable solutions",
						"Mobile-first user preferences",
						"AI-powered personalization trending",
						"Subscription-based models growing",
					},
					TargetDemographics: []string{
						"Millennials (25-40 years)",
						"Tech-savvy professionals",
						"Urban population",
					},
				}, nil
			}),
		tools.MustFunctionTool("research_competitors", "Identify and analyze key competitors in the space.",
			func(_ context.Context, _ categoryArgs) (*CompetitorInsight, error) {
				return &CompetitorInsight{
					MainCompetitors: []string{
						"CompetitorA - Market leader with 35% share",
						"CompetitorB - Fast-growing startup with strong UX",
						"CompetitorC - Enterprise-focused solution",
					},
					CompetitorStrengths: []string{
						"Established brand recognition",
						"Large existing customer base",
						"Extensive distribution networks",
					},
					MarketGaps: []string{
						"Lack of personalization features",
						"Poor mobile experience",
						"Limited integration capabilities",
						"High pricing for SMBs",
					},
					DifferentiationOpportunities: []string{
						"AI-powered recommendations",
						"Superior mobile experience",
						"Flexible pricing tiers",
						"API-first architecture",
					},
				}, nil
			}),
		tools.MustFunctionTool("gather_customer_insights", "Gather insights about customer needs and pain points.",
			func(_ context.Context, _ segmentArgs) (*CustomerInsight, error) {
				return &CustomerInsight{
					PainPoints: []string{
						"Current solutions are too complex to use",
						"High switching costs",
						"Poor customer support",
						"Limited customization options",
					},
					DesiredFeatures: []string{
						"Intuitive user interface",
						"Real-time collaboration",
						"Mobile accessibility",
						"Advanced analytics dashboard",
						"Third-party integrations",
					},
					PriceSensitivity: "Moderate - willing to pay premium for better UX",
					AdoptionBarriers: []string{
						"Data migration concerns",
						"Learning curve",
						"Integration with existing tools",
						"Security concerns",
					},
				}, nil
			}),
		tools.MustFunctionTool("assess_regulatory_environment", "Assess regulatory requirements and compliance needs.",
			func(_ context.Context, _ categoryRegionArgs) (*RegulatoryInsight, error) {
				return &RegulatoryInsight{
					RelevantRegulations: []string{
						"GDPR for EU data protection",
						"CCPA for California privacy",
						"Industry-specific compliance standards",
					},
					ComplianceRequirements: []string{
						"Data encryption at rest and in transit",
						"User consent management",
						"Right to data deletion",
						"Regular security audits",
						"Privacy policy disclosure",
					},
					RiskLevel:               "Medium",
					EstimatedComplianceCost: "$150K-$250K initial setup + $50K annual",
				}, nil
			}),
	}
}

var (
	researchPlanSchema = schema.MustOf[ResearchPlan]()
	finalReportSchema  = schema.MustOf[FinalReport]()
)

// MarketResearch plans market research for a product launch, executes the
// plan with research tools, and synthesizes a launch report.
type MarketResearch struct {
	invoker     types.Invoker
	o           *options
	planner     *types.AgentDescriptor
	executor    *types.AgentDescriptor
	synthesizer *types.AgentDescriptor
}

// NewMarketResearch returns a [MarketResearch] running on invoker.
func NewMarketResearch(invoker types.Invoker, opts ...Option) (*MarketResearch, error) {
	if invoker == nil {
		return nil, errors.New("market research: nil invoker")
	}
	o := newOptions(opts)

	return &MarketResearch{
		invoker: invoker,
		o:       o,
		planner: o.descriptor("Research Planner",
			types.WithInstruction(heredoc.Doc(`
				You are an expert market research planning agent.

				Your role is to create comprehensive research plans for new product launches.

				When given a product idea and target market, you must:
				1. Analyze the research requirements
				2. Break down the research into specific subtasks
				3. Assign appropriate tools to each subtask
				4. Provide clear rationale for each research step

				Create a thorough plan covering:
				- Market size and trends analysis
				- Competitive landscape research
				- Customer needs and pain points
				- Regulatory and compliance requirements

				Be strategic and ensure the plan provides 360-degree market intelligence.`)),
			types.WithOutputSchema(researchPlanSchema),
		),
		executor: o.descriptor("Research Executor",
			types.WithInstruction(heredoc.Doc(`
				You are a research execution agent that carries out market research tasks.

				Your role is to:
				1. Execute each research subtask using the appropriate tools
				2. Ensure all required data is collected
				3. Handle any errors gracefully
				4. Provide clear summaries of findings

				Execute each task methodically and ensure comprehensive data collection.`)),
			types.WithTools(ResearchTools()...),
		),
		synthesizer: o.descriptor("Research Synthesizer",
			types.WithInstruction(heredoc.Doc(`
				You are an expert market research analyst who synthesizes findings into actionable reports.

				Your role is to:
				1. Analyze all research findings comprehensively
				2. Identify key insights and patterns across different research areas
				3. Assess market opportunity and launch viability
				4. Provide clear, data-driven recommendations
				5. Assign a confidence score (0-1) based on data quality and market signals

				Create a professional report with:
				- Executive Summary: 2-3 sentences highlighting key recommendation
				- Market Analysis: Size, growth, trends, and opportunities
				- Competitive Landscape: Gaps, threats, and differentiation strategies
				- Customer Insights: Needs, preferences, and adoption factors
				- Regulatory Considerations: Compliance requirements and risks
				- Launch Recommendation: Clear go/no-go with justification
				- Confidence Score: 0-1 scale based on market signals

				Be analytical, data-driven, and provide actionable strategic insights.`)),
			types.WithOutputSchema(finalReportSchema),
		),
	}, nil
}

// Run researches p.
func (w *MarketResearch) Run(ctx context.Context, p Product) (*MarketReport, error) {
	if p.Region == "" {
		p.Region = "North America"
	}

	seq, err := agent.NewSequentialAgent("market_research", w.invoker,
		agent.Stage{
			Name: StagePlan,
			Build: func(types.StateReader) (*types.AgentDescriptor, string, error) {
				return w.planner, planningPrompt(p), nil
			},
		},
		agent.Stage{
			Name:     StageExecute,
			Requires: []string{StagePlan},
			Build: func(state types.StateReader) (*types.AgentDescriptor, string, error) {
				plan, err := stagePlan(state)
				if err != nil {
					return nil, "", err
				}
				prompt, err := executionPrompt(p, plan)
				return w.executor, prompt, err
			},
		},
		agent.Stage{
			Name:     StageSynthesis,
			Requires: []string{StagePlan, StageExecute},
			Build: func(state types.StateReader) (*types.AgentDescriptor, string, error) {
				plan, err := stagePlan(state)
				if err != nil {
					return nil, "", err
				}
				prompt, err := synthesisPrompt(p, plan, state.Text(StageExecute))
				return w.synthesizer, prompt, err
			},
		},
	)
	if err != nil {
		return nil, err
	}

	state, err := seq.WithMetrics(w.o.metrics).Run(ctx, p.Name)
	if err != nil {
		return nil, err
	}

	plan, err := stagePlan(state)
	if err != nil {
		return nil, err
	}
	synth, _ := state.Get(StageSynthesis)
	report, err := decode(finalReportSchema, synth)
	if err != nil {
		return nil, err
	}

	return &MarketReport{
		Plan:     plan,
		Findings: state.Text(StageExecute),
		Report:   report,
		State:    state,
	}, nil
}

func stagePlan(state types.StateReader) (*ResearchPlan, error) {
	res, ok := state.Get(StagePlan)
	if !ok {
		return nil, &types.UndefinedStageError{Stage: StageExecute, Ref: StagePlan}
	}
	return decode(researchPlanSchema, res)
}

func planningPrompt(p Product) string {
	return heredoc.Docf(`
		Create a comprehensive market research plan for:

		Product Name: %s
		Product Category: %s
		Target Market: %s
		Region: %s

		Generate a detailed research plan with 4 key subtasks covering market analysis,
		competitor research, customer insights, and regulatory assessment.`,
		p.Name, p.Category, p.TargetMarket, p.Region)
}

type executionTask struct {
	Step        int    `json:"step"`
	Task        string `json:"task"`
	Tool        string `json:"tool"`
	Description string `json:"description"`
}

func executionPrompt(p Product, plan *ResearchPlan) (string, error) {
	tasks := make([]executionTask, len(plan.Subtasks))
	for i, st := range plan.Subtasks {
		tasks[i] = executionTask{Step: st.Step, Task: st.TaskName, Tool: st.ToolName, Description: st.Description}
	}
	data, err := sonic.ConfigStd.MarshalIndent(tasks, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode research tasks: %w", err)
	}

	return heredoc.Docf(`
		Execute the following market research plan:

		Product: %s
		Category: %s
		Region: %s

		Research Tasks:
		%s

		Execute each research task using the appropriate tools.
		Use '%s' as the product_category parameter.
		Use '%s' as the target_segment parameter.
		Use '%s' as the region parameter.

		Provide comprehensive findings from all research areas.`,
		p.Name, p.Category, p.Region, data, p.Category, p.TargetMarket, p.Region), nil
}

func synthesisPrompt(p Product, plan *ResearchPlan, findings string) (string, error) {
	data, err := sonic.ConfigStd.MarshalIndent(map[string]any{
		"goal":     plan.ResearchGoal,
		"subtasks": plan.Subtasks,
	}, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode research plan: %w", err)
	}

	return heredoc.Docf(`
		Synthesize comprehensive market research findings for %s.

		RESEARCH PLAN:
		%s

		RESEARCH FINDINGS:
		%s

		Create a comprehensive market research report with strategic recommendations.`,
		p.Name, data, findings), nil
}
