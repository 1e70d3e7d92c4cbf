package tui

import (
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/folio/internal/effect"
)

// scheduler owns the page's wall-clock timers. Fired timers are handed to
// the update loop through a channel that Wait listens on.
type scheduler struct {
	mu     sync.Mutex
	timers map[effect.Token]*time.Timer
	fired  chan timerFiredMsg
	done   chan struct{}
	once   sync.Once
}

func newScheduler() *scheduler {
	return &scheduler{
		timers: map[effect.Token]*time.Timer{},
		fired:  make(chan timerFiredMsg, 16),
		done:   make(chan struct{}),
	}
}

// Schedule starts t. Rescheduling a live token restarts it.
func (s *scheduler) Schedule(t effect.Timer) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.timers[t.Token]; ok {
		old.Stop()
	}
	token, name := t.Token, t.Name
	s.timers[token] = time.AfterFunc(t.Delay, func() {
		s.mu.Lock()
		_, live := s.timers[token]
		delete(s.timers, token)
		s.mu.Unlock()
		if !live {
			return
		}
		select {
		case s.fired <- timerFiredMsg{token: token, name: name}:
		case <-s.done:
		}
	})
}

// Cancel stops the timer for token. Unknown tokens are ignored.
func (s *scheduler) Cancel(token effect.Token) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if t, ok := s.timers[token]; ok {
		t.Stop()
		delete(s.timers, token)
	}
}

// Pending returns the number of timers that have not fired or been cancelled.
func (s *scheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.timers)
}

// Wait delivers the next fired timer. The update loop re-arms it after
// every timerFiredMsg.
func (s *scheduler) Wait() tea.Cmd {
	return func() tea.Msg {
		select {
		case msg := <-s.fired:
			return msg
		case <-s.done:
			return nil
		}
	}
}

// Stop cancels every timer and releases Wait.
func (s *scheduler) Stop() {
	s.once.Do(func() {
		s.mu.Lock()
		for token, t := range s.timers {
			t.Stop()
			delete(s.timers, token)
		}
		s.mu.Unlock()
		close(s.done)
	})
}
