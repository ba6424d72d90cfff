// Package crudstate tracks the loading/error/success state of independent
// CRUD operations, one slot per operation, so a failing delete never hides
// a successful fetch.
package crudstate

import (
	"errors"
	"sync"
)

// DefaultErrorMessage is recorded when a failure carries no usable message.
const DefaultErrorMessage = "Something went wrong"

// Op names an operation slot.
type Op string

const (
	OpFetch  Op = "fetch"
	OpItem   Op = "item"
	OpCreate Op = "create"
	OpUpdate Op = "update"
	OpDelete Op = "delete"
)

// State is the observable state of one operation.
type State struct {
	Loading bool   `json:"loading"`
	Error   string `json:"error,omitempty"`
	Success string `json:"success,omitempty"`
}

// Idle reports whether the operation has never run or has been reset.
func (s State) Idle() bool {
	return s == State{}
}

// Messenger is implemented by errors that carry a user facing message.
type Messenger interface {
	UserMessage() string
}

// ErrorMessage returns the message to show for err.
func ErrorMessage(err error) string {
	if err == nil {
		return ""
	}
	var m Messenger
	if errors.As(err, &m) && m.UserMessage() != "" {
		return m.UserMessage()
	}
	if msg := err.Error(); msg != "" {
		return msg
	}
	return DefaultErrorMessage
}

// Tracker holds one State per operation. It is safe for concurrent use.
type Tracker struct {
	mu     sync.RWMutex
	states map[Op]State
}

func NewTracker() *Tracker {
	return &Tracker{states: make(map[Op]State)}
}

// Begin marks op as loading and clears its previous outcome.
func (t *Tracker) Begin(op Op) {
	t.set(op, State{Loading: true})
}

// Succeed records a successful outcome with an optional message.
func (t *Tracker) Succeed(op Op, message string) {
	t.set(op, State{Success: message})
}

// Fail records err as the outcome of op.
func (t *Tracker) Fail(op Op, err error) {
	msg := ErrorMessage(err)
	if msg == "" {
		msg = DefaultErrorMessage
	}
	t.set(op, State{Error: msg})
}

// Reset returns op to its idle state.
func (t *Tracker) Reset(op Op) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.states, op)
}

// ResetAll returns every operation to idle.
func (t *Tracker) ResetAll() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.states = make(map[Op]State)
}

func (t *Tracker) Get(op Op) State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.states[op]
}

// Snapshot copies all non-idle states.
func (t *Tracker) Snapshot() map[Op]State {
	t.mu.RLock()
	defer t.mu.RUnlock()
	out := make(map[Op]State, len(t.states))
	for op, s := range t.states {
		out[op] = s
	}
	return out
}

// Run wraps fn with Begin and Succeed/Fail and returns fn's error.
func (t *Tracker) Run(op Op, successMessage string, fn func() error) error {
	t.Begin(op)
	if err := fn(); err != nil {
		t.Fail(op, err)
		return err
	}
	t.Succeed(op, successMessage)
	return nil
}

func (t *Tracker) set(op Op, s State) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.states[op] = s
}
