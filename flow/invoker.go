// Copyright 2025 The Go A2A Authors
// SPDX-License-Identifier: Apache-2.0

package flow

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"google.golang.org/genai"

	"github.com/go-a2a/adk-patterns/internal/telemetry"
	"github.com/go-a2a/adk-patterns/model"
	"github.com/go-a2a/adk-patterns/pkg/logging"
	"github.com/go-a2a/adk-patterns/tool/tools"
	"github.com/go-a2a/adk-patterns/types"
)

// LLMInvoker is the model-backed Agent Invocation Service.
//
// Each invocation calls the model in a loop: tool calls are executed and their responses
// fed back until the model produces a final answer or selects a handoff target.
// An LLMInvoker holds no per-invocation state and is safe for concurrent use.
type LLMInvoker struct {
	defaultModel  model.Model
	resolver      ModelResolver
	maxToolRounds int
	metrics       *telemetry.Metrics
	logger        *slog.Logger
}

var _ types.Invoker = (*LLMInvoker)(nil)

// NewLLMInvoker returns an [LLMInvoker] using defaultModel for descriptors that do not
// name a model.
//
// Without a [ModelResolver], every descriptor runs on defaultModel and a descriptor's
// model name is passed to it as a per-request override.
func NewLLMInvoker(defaultModel model.Model, opts ...Option) *LLMInvoker {
	f := &LLMInvoker{
		defaultModel:  defaultModel,
		maxToolRounds: DefaultMaxToolRounds,
	}
	for _, opt := range opts {
		opt.apply(f)
	}
	return f
}

// Invoke implements [types.Invoker].
func (f *LLMInvoker) Invoke(ctx context.Context, agent *types.AgentDescriptor, input string) (result *types.InvocationResult, err error) {
	if agent == nil {
		return nil, errors.New("flow: nil agent descriptor")
	}

	ctx, span := telemetry.StartSpan(ctx, "invoke_agent", telemetry.AttrAgent.String(agent.Name()))
	logger := f.loggerFrom(ctx).With("agent", agent.Name())
	ctx = logging.NewContext(ctx, logger)

	start := time.Now()
	defer func() {
		var usage types.Usage
		if result != nil {
			usage = result.Usage
		}
		f.metrics.ObserveInvocation(agent.Name(), time.Since(start), usage, err)
		telemetry.EndSpan(span, err)
		if err != nil {
			logger.DebugContext(ctx, "invocation failed", "error", err, "elapsed", time.Since(start))
			return
		}
		logger.DebugContext(ctx, "invocation finished",
			"final", result.IsFinal,
			"transfer_to", result.TransferTo,
			"elapsed", time.Since(start),
		)
	}()

	m, err := f.resolveModel(ctx, agent)
	if err != nil {
		return nil, &types.InvocationError{Agent: agent.Name(), Err: err}
	}

	req, err := f.buildRequest(agent, input)
	if err != nil {
		return nil, &types.InvocationError{Agent: agent.Name(), Err: err}
	}

	return f.run(ctx, m, agent, req)
}

func (f *LLMInvoker) run(ctx context.Context, m model.Model, agent *types.AgentDescriptor, req *model.LLMRequest) (*types.InvocationResult, error) {
	invErr := func(err error) error {
		return &types.InvocationError{Agent: agent.Name(), Err: err}
	}

	var usage types.Usage
	for rounds := 0; ; rounds++ {
		if err := ctx.Err(); err != nil {
			return nil, invErr(err)
		}

		resp, err := m.GenerateContent(ctx, req)
		if err != nil {
			return nil, invErr(err)
		}
		if err := resp.Err(); err != nil {
			return nil, invErr(err)
		}
		usage.InputTokens += resp.Usage.InputTokens
		usage.OutputTokens += resp.Usage.OutputTokens

		calls := resp.FunctionCalls()
		if len(calls) == 0 {
			return f.finalize(agent, resp.Text(), usage)
		}

		if target, ok, err := transferTarget(agent, calls); ok || err != nil {
			if err != nil {
				return nil, invErr(err)
			}
			return &types.InvocationResult{
				Agent:      agent.Name(),
				RawText:    resp.Text(),
				TransferTo: target,
				Usage:      usage,
			}, nil
		}

		if rounds == f.maxToolRounds {
			return nil, invErr(fmt.Errorf("exceeded %d tool rounds", f.maxToolRounds))
		}

		populateClientFunctionCallID(calls)
		responses, err := f.handleFunctionCalls(ctx, agent, calls)
		if err != nil {
			return nil, invErr(err)
		}

		content := resp.Content
		if content.Role == "" {
			content.Role = genai.RoleModel
		}
		req.AppendContents(content, genai.NewContentFromParts(responses, genai.RoleUser))
	}
}

// transferTarget returns the handoff target selected by calls, if any.
func transferTarget(agent *types.AgentDescriptor, calls []*genai.FunctionCall) (string, bool, error) {
	if len(agent.Handoffs()) == 0 {
		return "", false, nil
	}
	for _, call := range calls {
		if call.Name != tools.TransferToAgentName {
			continue
		}
		target, err := tools.TransferTarget(call.Args)
		if err != nil {
			return "", false, err
		}
		if _, ok := agent.FindHandoff(target); !ok {
			return "", false, fmt.Errorf("%w: %q", types.ErrUnknownHandoff, target)
		}
		return target, true, nil
	}
	return "", false, nil
}

// finalize turns the final model text into a result.
func (f *LLMInvoker) finalize(agent *types.AgentDescriptor, text string, usage types.Usage) (*types.InvocationResult, error) {
	result := &types.InvocationResult{
		Agent:   agent.Name(),
		RawText: text,
		// text from an agent with handoffs that did not transfer is a clarifying question
		IsFinal: len(agent.Handoffs()) == 0,
		Usage:   usage,
	}

	schema := agent.OutputSchema()
	if schema == nil || !result.IsFinal {
		return result, nil
	}

	v, err := schema.Validate(text)
	if err != nil {
		return nil, &types.SchemaValidationError{
			Agent:  agent.Name(),
			Schema: schema.Name(),
			Raw:    text,
			Err:    err,
		}
	}
	result.Structured = &types.Structured{
		Schema: schema.Name(),
		Value:  v,
	}

	return result, nil
}

func (f *LLMInvoker) buildRequest(agent *types.AgentDescriptor, input string) (*model.LLMRequest, error) {
	schemaInst, err := buildOutputSchemaInstructions(agent.OutputSchema())
	if err != nil {
		return nil, err
	}

	req := model.NewLLMRequest(model.UserContent(input))
	req.Model = agent.Model()
	req.AppendInstructions(
		agent.Instruction(),
		buildTargetAgentsInstructions(agent.Handoffs()),
		schemaInst,
	)
	req.AppendTools(agent.Tools()...)
	if handoffs := agent.Handoffs(); len(handoffs) > 0 {
		req.AppendTools(tools.NewTransferTool(handoffs))
	}
	req.ResponseSchema = agent.OutputSchema()
	req.Config = agent.GenerateConfig()

	return req, nil
}

func (f *LLMInvoker) resolveModel(ctx context.Context, agent *types.AgentDescriptor) (model.Model, error) {
	name := agent.Model()
	if name != "" && f.resolver != nil {
		m, err := f.resolver(ctx, name)
		if err != nil {
			return nil, fmt.Errorf("resolve model %q: %w", name, err)
		}
		return m, nil
	}
	if f.defaultModel == nil {
		return nil, errors.New("no model configured")
	}
	return f.defaultModel, nil
}

func (f *LLMInvoker) loggerFrom(ctx context.Context) *slog.Logger {
	if logging.HasLogger(ctx) || f.logger == nil {
		return logging.FromContext(ctx)
	}
	return f.logger
}
