package assistant

import (
	"context"
	"errors"
	"sync"
)

var ErrTurnInProgress = errors.New("a turn is already in progress")

// Conversation is a client-held, append-only chat with the assistant.
// Only one turn may be in flight at a time.
type Conversation struct {
	bridge *Bridge
	caller Caller

	mu      sync.Mutex
	busy    bool
	state   State
	outcome State
	history []Turn
}

func NewConversation(bridge *Bridge, caller Caller) *Conversation {
	return &Conversation{bridge: bridge, caller: caller, state: StateIdle}
}

// SetCaller changes who later turns act as.
func (c *Conversation) SetCaller(caller Caller) {
	c.mu.Lock()
	c.caller = caller
	c.mu.Unlock()
}

// Submit runs one turn and appends its turns to the history.
func (c *Conversation) Submit(ctx context.Context, utterance string) ([]Turn, error) {
	c.mu.Lock()
	if c.busy {
		c.mu.Unlock()
		return nil, ErrTurnInProgress
	}
	c.busy = true
	caller := c.caller
	history := make([]Turn, len(c.history))
	copy(history, c.history)
	c.mu.Unlock()

	turns, err := c.bridge.run(ctx, caller, utterance, history, c.setState)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.busy = false
	c.history = append(c.history, turns...)
	if !errors.Is(err, ErrEmptyQuery) {
		c.outcome = c.state
	}
	c.state = StateIdle
	return turns, err
}

func (c *Conversation) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// LastOutcome is the state the most recent turn ended in: rendered,
// clarifying or errored. It is empty before the first turn.
func (c *Conversation) LastOutcome() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.outcome
}

func (c *Conversation) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// History returns a copy of every turn so far.
func (c *Conversation) History() []Turn {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Turn, len(c.history))
	copy(out, c.history)
	return out
}
