// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package agent

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"

	"github.com/go-a2a/adk-patterns/internal/pool"
	"github.com/go-a2a/adk-patterns/internal/telemetry"
	"github.com/go-a2a/adk-patterns/types"
)

// KeywordRule maps topic keywords to a specialist.
type KeywordRule struct {
	// Target is the name of the specialist.
	Target   string
	Keywords []string

	// Priority orders the rules; lower values win. Rules of equal priority
	// keep their declaration order.
	Priority int
}

// nonWord delimits keywords. Unlike \b it also separates keywords that start
// or end with punctuation, such as ".net".
const nonWord = `[^\pL\pN_]`

// KeywordPolicy is an ordered set of [KeywordRule].
type KeywordPolicy struct {
	rules    []KeywordRule
	patterns []*regexp.Regexp
}

// NewKeywordPolicy returns a policy over rules.
func NewKeywordPolicy(rules ...KeywordRule) (*KeywordPolicy, error) {
	p := &KeywordPolicy{
		rules: slices.Clone(rules),
	}
	slices.SortStableFunc(p.rules, func(a, b KeywordRule) int {
		return cmp.Compare(a.Priority, b.Priority)
	})

	p.patterns = make([]*regexp.Regexp, len(p.rules))
	for i, r := range p.rules {
		if r.Target == "" || len(r.Keywords) == 0 {
			return nil, fmt.Errorf("keyword rule %d: target and keywords are required", i)
		}
		alts := make([]string, len(r.Keywords))
		for j, kw := range r.Keywords {
			alts[j] = regexp.QuoteMeta(strings.ToLower(strings.TrimSpace(kw)))
		}
		re, err := regexp.Compile(`(?i)(?:^|` + nonWord + `)(?:` + strings.Join(alts, "|") + `)(?:s|es)?(?:` + nonWord + `|$)`)
		if err != nil {
			return nil, fmt.Errorf("keyword rule %q: %w", r.Target, err)
		}
		p.patterns[i] = re
	}

	return p, nil
}

// MustKeywordPolicy is like [NewKeywordPolicy] but panics on error.
func MustKeywordPolicy(rules ...KeywordRule) *KeywordPolicy {
	p, err := NewKeywordPolicy(rules...)
	if err != nil {
		panic(err)
	}
	return p
}

// Rules returns the rules in priority order.
func (p *KeywordPolicy) Rules() []KeywordRule {
	return slices.Clone(p.rules)
}

// Select returns the target of the first rule, in priority order, with a
// keyword in text. Keywords match case-insensitively as whole words, with an
// optional plural "s" or "es" suffix.
func (p *KeywordPolicy) Select(text string) (string, bool) {
	if p == nil {
		return "", false
	}
	for i, re := range p.patterns {
		if re.MatchString(text) {
			return p.rules[i].Target, true
		}
	}
	return "", false
}

// String renders the policy as routing guidelines.
func (p *KeywordPolicy) String() string {
	if p == nil {
		return ""
	}
	sb := pool.String.Get()
	defer pool.String.Put(sb)

	for i, r := range p.rules {
		fmt.Fprintf(sb, "%d. %s -> %s\n", i+1, strings.Join(r.Keywords, "/"), r.Target)
	}
	return sb.String()
}

// RoutingMode selects how a [RouterAgent] picks a specialist.
type RoutingMode int

const (
	// RoutingModeLLM lets the router agent choose through a transfer call.
	RoutingModeLLM RoutingMode = iota

	// RoutingModeKeyword applies the keyword policy locally and asks the
	// router agent only when no keyword matches.
	RoutingModeKeyword
)

// String returns a string representation of the [RoutingMode].
func (m RoutingMode) String() string {
	switch m {
	case RoutingModeLLM:
		return "llm"
	case RoutingModeKeyword:
		return "keyword"
	default:
		return fmt.Sprintf("RoutingMode(%d)", int(m))
	}
}

// ParseRoutingMode parses "llm" or "keyword".
func ParseRoutingMode(s string) (RoutingMode, error) {
	switch strings.ToLower(s) {
	case "", "llm":
		return RoutingModeLLM, nil
	case "keyword":
		return RoutingModeKeyword, nil
	}
	return 0, fmt.Errorf("unknown routing mode %q", s)
}

// RouterOption configures a [RouterAgent].
type RouterOption interface {
	apply(*RouterAgent)
}

type routerOptionFunc func(*RouterAgent)

func (o routerOptionFunc) apply(a *RouterAgent) { o(a) }

// WithKeywordPolicy sets the policy used in [RoutingModeKeyword].
func WithKeywordPolicy(policy *KeywordPolicy) RouterOption {
	return routerOptionFunc(func(a *RouterAgent) {
		a.policy = policy
	})
}

// WithRoutingMode sets the routing mode.
func WithRoutingMode(mode RoutingMode) RouterOption {
	return routerOptionFunc(func(a *RouterAgent) {
		a.mode = mode
	})
}

// RouterAgent delegates a request to exactly one of the handoff targets of a
// router agent.
type RouterAgent struct {
	router  *types.AgentDescriptor
	invoker types.Invoker
	policy  *KeywordPolicy
	mode    RoutingMode
	metrics *telemetry.Metrics
}

// NewRouterAgent returns a [RouterAgent] over the handoffs of router.
func NewRouterAgent(router *types.AgentDescriptor, invoker types.Invoker, opts ...RouterOption) (*RouterAgent, error) {
	if invoker == nil {
		return nil, errNilInvoker
	}
	if router == nil {
		return nil, errors.New("nil router")
	}
	if len(router.Handoffs()) == 0 {
		return nil, fmt.Errorf("router %q: %w", router.Name(), types.ErrNoHandoffs)
	}

	a := &RouterAgent{
		router:  router,
		invoker: invoker,
	}
	for _, o := range opts {
		o.apply(a)
	}

	if a.mode == RoutingModeKeyword && a.policy == nil {
		return nil, fmt.Errorf("router %q: keyword routing needs a keyword policy", router.Name())
	}
	if a.policy != nil {
		for _, r := range a.policy.rules {
			if _, ok := router.FindHandoff(r.Target); !ok {
				return nil, fmt.Errorf("router %q: keyword rule: %w: %q", router.Name(), types.ErrUnknownHandoff, r.Target)
			}
		}
	}

	return a, nil
}

// WithMetrics sets the metrics the agent reports to and returns a.
func (a *RouterAgent) WithMetrics(m *telemetry.Metrics) *RouterAgent {
	a.metrics = m
	return a
}

// Router returns the router agent.
func (a *RouterAgent) Router() *types.AgentDescriptor { return a.router }

// Specialists returns the reachable specialists in declaration order.
func (a *RouterAgent) Specialists() []*types.AgentDescriptor { return a.router.Handoffs() }

// Route selects one specialist for request and returns its result.
//
// When the router asks a clarifying question instead of transferring, the
// returned [types.DelegationResult] has no Selected agent and a non-final Result.
func (a *RouterAgent) Route(ctx context.Context, request string) (_ *types.DelegationResult, err error) {
	ctx, span, logger := startRun(ctx, "router", a.router.Name())
	defer func() {
		telemetry.EndSpan(span, err)
		a.metrics.ObserveWorkflow("router", a.router.Name(), err)
	}()

	if a.mode == RoutingModeKeyword {
		if target, ok := a.policy.Select(request); ok {
			logger.InfoContext(ctx, "routed by keyword", "specialist", target)
			specialist, _ := a.router.FindHandoff(target)
			return a.delegate(ctx, specialist, request)
		}
		logger.DebugContext(ctx, "no keyword matched, asking router")
	}

	decision, err := invoke(ctx, a.invoker, a.router, request)
	if err != nil {
		return nil, err
	}

	if decision.TransferTo == "" {
		logger.InfoContext(ctx, "router asked for clarification")
		clarification := *decision
		clarification.IsFinal = false
		return &types.DelegationResult{Result: &clarification}, nil
	}

	specialist, ok := a.router.FindHandoff(decision.TransferTo)
	if !ok {
		return nil, &types.InvocationError{
			Agent: a.router.Name(),
			Err:   fmt.Errorf("%w: %q", types.ErrUnknownHandoff, decision.TransferTo),
		}
	}
	logger.InfoContext(ctx, "routed by router", "specialist", specialist.Name())

	return a.delegate(ctx, specialist, request)
}

func (a *RouterAgent) delegate(ctx context.Context, specialist *types.AgentDescriptor, request string) (*types.DelegationResult, error) {
	ctx, span := telemetry.StartSpan(ctx, "delegate", telemetry.AttrAgent.String(specialist.Name()))
	result, err := invoke(ctx, a.invoker, specialist, request)
	telemetry.EndSpan(span, err)
	if err != nil {
		return nil, err
	}

	return &types.DelegationResult{
		Selected: specialist,
		Result:   result,
	}, nil
}

// RouterInstructions renders the instruction of a router agent: base, the
// capability of every specialist, the keyword guidelines of policy, and the
// clarification rule.
func RouterInstructions(base string, policy *KeywordPolicy, specialists []*types.AgentDescriptor) string {
	sb := pool.String.Get()
	defer pool.String.Put(sb)

	if base != "" {
		sb.WriteString(strings.TrimSpace(base))
		sb.WriteString("\n\n")
	}

	sb.WriteString("Specialists:\n")
	for _, s := range specialists {
		fmt.Fprintf(sb, "- %s: %s\n", s.Name(), s.Description())
	}

	if guidelines := policy.String(); guidelines != "" {
		sb.WriteString("\nRouting guidelines, in priority order; when several match, pick the first:\n")
		sb.WriteString(guidelines)
	}

	sb.WriteString(heredoc.Doc(`

		Delegate to exactly one specialist. If the request is ambiguous, ask exactly
		one brief clarifying question instead and do not delegate.`))

	return sb.String()
}
