// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package workflow

import (
	"github.com/go-a2a/adk-patterns/agent"
	"github.com/go-a2a/adk-patterns/types"
)

// Incident triage specialists.
const (
	LogsInvestigator = "Logs Investigator"
	CloudCostAnalyst = "Cloud Cost Analyst"
	DeploymentSRE    = "Deployment SRE"
	NetworkAnalyst   = "Network Analyst"
)

// SampleIncidents are example incident summaries for the triage router.
var SampleIncidents = []string{
	"Spike in 500s and timeouts 10 minutes after the canary release in us-east-1.",
	"AWS billing anomaly: spend up 40% in 24h, autoscaling spiked vs traffic baseline.",
	"Elevated packet loss in EU region with WAF blocks and occasional TLS handshake failures.",
	"Users report slow pages, unclear root cause yet.",
}

// IncidentPolicy returns the triage keyword guidelines in priority order.
func IncidentPolicy() *agent.KeywordPolicy {
	return agent.MustKeywordPolicy(
		agent.KeywordRule{Target: LogsInvestigator, Keywords: []string{"logs", "timeout", "5xx", "500", "error", "exception"}},
		agent.KeywordRule{Target: CloudCostAnalyst, Keywords: []string{"billing", "cost", "spend", "budget", "anomaly"}},
		agent.KeywordRule{Target: DeploymentSRE, Keywords: []string{"deploy", "deployment", "release", "rollback", "canary", "feature flag"}},
		agent.KeywordRule{Target: NetworkAnalyst, Keywords: []string{"network", "dns", "tls", "waf", "cdn", "latency", "packet loss", "ingress", "egress"}},
	)
}

// NewIncidentTriage returns a [Router] that sends a DevOps incident to the
// specialist that should own it.
func NewIncidentTriage(invoker types.Invoker, opts ...Option) (*Router, error) {
	o := newOptions(opts)

	specialists := []*types.AgentDescriptor{
		o.descriptor(LogsInvestigator,
			types.WithDescription("Handles application/server log error spikes, 5xx timeouts, and exceptions."),
			types.WithInstruction("You are a specialist for log-related incidents. "+
				"Given an incident summary, produce a concrete step-by-step investigation plan. "+
				"Focus on centralized logging queries, error signatures, time windows, and rollback/patch suggestions."),
		),
		o.descriptor(CloudCostAnalyst,
			types.WithDescription("Handles billing anomalies, spend spikes, and budget overages across clouds."),
			types.WithInstruction("You are a cost anomaly specialist. "+
				"Given an incident summary, return a clear investigation and mitigation plan. "+
				"Focus on cost anomaly breakdowns by service/region, autoscaling events vs traffic baselines, and right-sizing or guardrails."),
		),
		o.descriptor(DeploymentSRE,
			types.WithDescription("Handles regressions related to deployments, releases, rollbacks, and feature flags."),
			types.WithInstruction("You are a deployment and release specialist. "+
				"Given an incident summary, draft a step-by-step plan to diagnose and mitigate deploy-related regressions. "+
				"Focus on diffing releases, health checks, error budgets, and canary rollback or feature flag disable."),
		),
		o.descriptor(NetworkAnalyst,
			types.WithDescription("Handles connectivity, DNS, TLS/SSL, WAF/CDN, latency, ingress/egress, and packet loss issues."),
			types.WithInstruction("You are a network specialist. "+
				"Given an incident summary, produce a concrete action plan. "+
				"Focus on connectivity diagnostics, DNS/TLS renewal checks, WAF/CDN behavior, and suggested failovers or cache purges."),
		),
	}

	return newRouter(invoker, o, "Incident Triage",
		"You are the first-line triage router for DevOps incidents. Read the incident carefully, then choose exactly one specialist to resolve it.",
		IncidentPolicy(), specialists)
}
