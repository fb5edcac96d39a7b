package keepalive

import (
	"context"
	"sync/atomic"

	"github.com/hupe1980/mcpkeepalive/core"
)

// outcome tags how a ping loop terminated, so shutdown can tell "this task
// acknowledged cancellation" apart from "this task died for another reason"
// without inspecting error types.
type outcome int

const (
	outcomeCancelled outcome = iota
	outcomeDisconnected
	outcomePingFailed
)

func (o outcome) String() string {
	switch o {
	case outcomeCancelled:
		return "cancelled"
	case outcomeDisconnected:
		return "disconnected"
	case outcomePingFailed:
		return "ping_failed"
	default:
		return "unknown"
	}
}

// task is the handle to one running ping loop. It is associated 1:1 with a
// session key while registered; the loop removes its own registry entry on
// exit, so an entry exists exactly while its loop has not yet terminated.
type task struct {
	key    core.SessionKey
	id     string
	cancel context.CancelFunc

	// pings counts attempts, for diagnostics only.
	pings atomic.Int64

	// outcome and err are written by the loop goroutine before done is
	// closed and must only be read after <-done.
	outcome outcome
	err     error
	done    chan struct{}
}

func newTask(key core.SessionKey, cancel context.CancelFunc) *task {
	return &task{
		key:    key,
		id:     core.NewID()[:8],
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// finished reports whether the loop has terminated.
func (t *task) finished() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}
