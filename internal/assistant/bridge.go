package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"strings"
	"time"

	"alumni-directory/internal/metrics"
)

var ErrEmptyQuery = errors.New("no query provided")

const (
	upstreamPrefix  = "LLM service error: "
	executionPrefix = "GraphQL execution error: "
)

// Bridge runs one assistant turn: generate, inject identity, execute, render.
type Bridge struct {
	gen    Generator
	exec   Executor
	policy Policy
	now    func() time.Time
}

func NewBridge(gen Generator, exec Executor, policy Policy) *Bridge {
	return &Bridge{gen: gen, exec: exec, policy: policy, now: time.Now}
}

// Run processes utterance on behalf of caller and returns the turns it
// produced, starting with the user turn. history is the conversation so far
// and is sent to the generator unchanged. The returned error mirrors the
// final error turn, if any.
func (b *Bridge) Run(ctx context.Context, caller Caller, utterance string, history []Turn) ([]Turn, error) {
	return b.run(ctx, caller, utterance, history, nil)
}

func (b *Bridge) run(ctx context.Context, caller Caller, utterance string, history []Turn, observe func(State)) ([]Turn, error) {
	if observe == nil {
		observe = func(State) {}
	}
	utterance = strings.TrimSpace(utterance)
	if utterance == "" {
		return nil, ErrEmptyQuery
	}

	turns := []Turn{b.turn(TurnUser, utterance)}
	fail := func(outcome, prefix string, err error) ([]Turn, error) {
		metrics.AssistantTurns.WithLabelValues(outcome).Inc()
		observe(StateErrored)
		return append(turns, b.turn(TurnError, prefix+err.Error())), err
	}

	observe(StateAwaitingLLM)
	reply, err := b.gen.Generate(ctx, utterance, history)
	if err != nil {
		log.Printf("assistant: generator failed: %v", err)
		return fail("upstream_error", upstreamPrefix, err)
	}

	if IsClarification(reply) {
		metrics.AssistantTurns.WithLabelValues("clarification").Inc()
		observe(StateClarifying)
		return append(turns, b.turn(TurnAssistant, ClarificationText(reply))), nil
	}
	turns = append(turns, b.turn(TurnLLM, reply))

	observe(StateAwaitingExecution)
	doc, err := InjectIdentity(Normalize(reply), caller, b.policy)
	if err != nil {
		log.Printf("assistant: rejected document for %q: %v", caller.AlumniID, err)
		return fail("rejected", executionPrefix, err)
	}
	kind := Classify(doc)

	data, err := b.exec.Execute(ctx, doc)
	if err != nil {
		return fail("execution_error", executionPrefix, err)
	}

	content, err := json.Marshal(data)
	if err != nil {
		return fail("execution_error", executionPrefix, err)
	}
	result := b.turn(TurnResult, string(content))
	result.Data = data
	result.Table = BuildTable(doc, data)

	metrics.AssistantTurns.WithLabelValues(string(kind)).Inc()
	observe(StateRendered)
	return append(turns, result), nil
}

func (b *Bridge) turn(t TurnType, content string) Turn {
	return Turn{Type: t, Content: content, Timestamp: b.now().UTC()}
}
