// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package submit

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/jeranaias/moonchat/internal/answer"
	"github.com/jeranaias/moonchat/internal/logging"
	"github.com/jeranaias/moonchat/internal/model"
)

// Guard errors. Neither mutates the transcript.
var (
	ErrEmptyInput = errors.New("submission is empty")
	ErrBusy       = errors.New("a submission is already in flight")
)

// State is the controller's position in the submission state machine.
type State int

const (
	StateIdle State = iota
	StateSubmitting
)

func (s State) String() string {
	if s == StateSubmitting {
		return "submitting"
	}
	return "idle"
}

// Asker is the slice of the answer client the controller needs.
type Asker interface {
	Ask(ctx context.Context, question string, history []model.Message) (*answer.ChatResponse, error)
}

// Options configures a Controller.
type Options struct {
	// FailureMessage replaces DefaultFailureMessage when set.
	FailureMessage string
	// Logger receives transition traces. Nil discards.
	Logger *log.Logger
}

// Controller enforces single-flight submissions against one transcript.
// It is the transcript's only writer after construction.
type Controller struct {
	mu       sync.Mutex
	state    State
	input    string
	store    *model.Transcript
	asker    Asker
	failure  string
	logger   *log.Logger
	inflight *Pending
}

// New creates an idle controller.
func New(store *model.Transcript, asker Asker, opts Options) *Controller {
	failure := opts.FailureMessage
	if failure == "" {
		failure = DefaultFailureMessage
	}
	return &Controller{
		store:   store,
		asker:   asker,
		failure: failure,
		logger:  logging.OrDiscard(opts.Logger).With("component", "submit", "session", store.ID()),
	}
}

// Transcript returns the store the controller writes to.
func (c *Controller) Transcript() *model.Transcript {
	return c.store
}

// State returns the current state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Busy reports whether a submission is in flight.
func (c *Controller) Busy() bool {
	return c.State() == StateSubmitting
}

// =============================================================================
// PENDING INPUT BUFFER
// =============================================================================

// SetInput replaces the pending input buffer.
func (c *Controller) SetInput(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.input = text
}

// Input returns the pending input buffer.
func (c *Controller) Input() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.input
}

// SubmitInput submits the pending input buffer.
func (c *Controller) SubmitInput(ctx context.Context) (model.Message, error) {
	return c.Submit(ctx, c.Input())
}

// =============================================================================
// SUBMISSION
// =============================================================================

// Pending is a submission that has entered Submitting and awaits its answer.
type Pending struct {
	Question string
	history  []model.Message
	asker    Asker
	started  time.Time
}

// Result is the outcome of a Pending call.
type Result struct {
	pending  *Pending
	Response *answer.ChatResponse
	Err      error
	Elapsed  time.Duration
}

// Run performs the single answer request. It touches no controller state and
// may run on any goroutine.
func (p *Pending) Run(ctx context.Context) Result {
	resp, err := p.asker.Ask(ctx, p.Question, p.history)
	if err == nil && resp == nil {
		err = &answer.ClientError{Kind: answer.KindService, Message: "empty response"}
	}
	return Result{pending: p, Response: resp, Err: err, Elapsed: time.Since(p.started)}
}

// Begin performs the guarded Idle -> Submitting transition: it appends the
// user message, clears the input buffer, and snapshots the prior transcript.
func (c *Controller) Begin(text string) (*Pending, error) {
	if strings.TrimSpace(text) == "" {
		return nil, ErrEmptyInput
	}

	c.mu.Lock()
	if c.state == StateSubmitting {
		c.mu.Unlock()
		c.logger.Debug("submit rejected", "reason", "busy")
		return nil, ErrBusy
	}
	c.state = StateSubmitting
	c.input = ""
	// Snapshot before appending: the question travels separately.
	p := &Pending{
		Question: text,
		history:  c.store.Messages(),
		asker:    c.asker,
		started:  time.Now(),
	}
	c.inflight = p
	c.mu.Unlock()

	c.store.Append(model.NewUserMessage(text))
	c.logger.Debug("submitting", "history", len(p.history))
	return p, nil
}

// Finish performs the Submitting -> Idle transition for res and returns the
// assistant message it appended. Results that do not belong to the current
// submission are ignored.
func (c *Controller) Finish(res Result) (model.Message, bool) {
	c.mu.Lock()
	if c.state != StateSubmitting || res.pending == nil || res.pending != c.inflight {
		c.mu.Unlock()
		return model.Message{}, false
	}
	// Claim the result; state stays Submitting until the answer is appended.
	c.inflight = nil
	c.mu.Unlock()

	var msg model.Message
	if res.Err != nil {
		msg = model.NewErrorMessage(FailureText(res.Err, c.failure), failureKind(res.Err))
		c.logger.Warn("submission failed", "err", res.Err, "elapsed", res.Elapsed)
	} else {
		msg = res.Response.ToMessage()
		c.logger.Debug("answered", "context_used", res.Response.ContextUsed(), "elapsed", res.Elapsed)
	}

	// Append before going idle so no new submission can interleave.
	c.store.Append(msg)

	c.mu.Lock()
	c.state = StateIdle
	c.mu.Unlock()
	return msg, true
}

// Submit runs a whole submission and returns the appended assistant message.
// The returned error is only ErrEmptyInput or ErrBusy; service failures are
// reported through the transcript.
func (c *Controller) Submit(ctx context.Context, text string) (model.Message, error) {
	p, err := c.Begin(text)
	if err != nil {
		return model.Message{}, err
	}
	msg, _ := c.Finish(p.Run(ctx))
	return msg, nil
}
