package crudstate

import (
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

type apiErr struct{ msg string }

func (e apiErr) Error() string       { return "status 400: " + e.msg }
func (e apiErr) UserMessage() string { return e.msg }

func TestTracker_Run(t *testing.T) {
	tr := NewTracker()

	err := tr.Run(OpFetch, "", func() error {
		assert.True(t, tr.Get(OpFetch).Loading)
		return nil
	})
	assert.NoError(t, err)
	assert.Equal(t, State{}, tr.Get(OpFetch))

	err = tr.Run(OpDelete, "", func() error { return apiErr{msg: "post not found"} })
	assert.Error(t, err)
	assert.Equal(t, State{Error: "post not found"}, tr.Get(OpDelete))

	err = tr.Run(OpUpdate, "Post updated successfully", func() error { return nil })
	assert.NoError(t, err)
	assert.Equal(t, State{Success: "Post updated successfully"}, tr.Get(OpUpdate))

	assert.Equal(t, State{}, tr.Get(OpFetch), "operations are independent")
}

func TestTracker_BeginClearsOutcome(t *testing.T) {
	tr := NewTracker()
	tr.Fail(OpItem, errors.New("boom"))
	tr.Begin(OpItem)
	assert.Equal(t, State{Loading: true}, tr.Get(OpItem))
}

func TestTracker_Reset(t *testing.T) {
	tr := NewTracker()
	tr.Succeed(OpCreate, "ok")
	tr.Fail(OpDelete, errors.New("x"))

	tr.Reset(OpCreate)
	assert.True(t, tr.Get(OpCreate).Idle())
	assert.Len(t, tr.Snapshot(), 1)

	tr.ResetAll()
	assert.Empty(t, tr.Snapshot())
}

func TestErrorMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "nil", err: nil, want: ""},
		{name: "plain", err: errors.New("network down"), want: "network down"},
		{name: "messenger", err: apiErr{msg: "email already exists"}, want: "email already exists"},
		{name: "wrapped messenger", err: fmt.Errorf("create: %w", apiErr{msg: "invalid"}), want: "invalid"},
		{name: "empty messenger", err: apiErr{}, want: "status 400: "},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ErrorMessage(tt.err))
		})
	}
}

func TestTracker_FailWithEmptyMessage(t *testing.T) {
	tr := NewTracker()
	tr.Fail(OpFetch, errors.New(""))
	assert.Equal(t, DefaultErrorMessage, tr.Get(OpFetch).Error)
}

func TestTracker_Concurrent(t *testing.T) {
	tr := NewTracker()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			op := Op(fmt.Sprintf("op-%d", i%5))
			_ = tr.Run(op, "done", func() error { return nil })
			_ = tr.Get(op)
		}(i)
	}
	wg.Wait()
	assert.Len(t, tr.Snapshot(), 5)
}
