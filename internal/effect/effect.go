package effect

import (
	"sync/atomic"
	"time"

	"github.com/csheth/folio/internal/dom"
)

// Token identifies a piece of deferred work. Tokens are unique for the life
// of the process, so a widget can tell its own callbacks from stale ones.
type Token uint64

var counter uint64

// NextToken returns a fresh, non-zero token.
func NextToken() Token {
	return Token(atomic.AddUint64(&counter, 1))
}

// Effect is deferred work requested by a widget state machine. The host
// executes it and later reports back with the matching Token.
type Effect interface {
	effect()
}

// Frame asks for a callback at the next animation-frame boundary.
type Frame struct {
	Token Token
}

// AwaitTransition registers a transition-end listener on Target. The host
// delivers every transition end of Target until CancelTransition arrives.
type AwaitTransition struct {
	Target *dom.Element
	Token  Token
}

// CancelTransition deregisters a listener.
type CancelTransition struct {
	Token Token
}

// Timer schedules a one-shot timer.
type Timer struct {
	Name  string
	Token Token
	Delay time.Duration
}

// CancelTimer stops a pending timer. Cancelling an unknown token is a no-op.
type CancelTimer struct {
	Token Token
}

// Fetch starts a network request tagged with the loader epoch.
type Fetch struct {
	Epoch  uint64
	Manual bool
}

// Focus moves input focus to Target.
type Focus struct {
	Target *dom.Element
}

func (Frame) effect()            {}
func (AwaitTransition) effect()  {}
func (CancelTransition) effect() {}
func (Timer) effect()            {}
func (CancelTimer) effect()      {}
func (Fetch) effect()            {}
func (Focus) effect()            {}
