package tui

import (
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/csheth/folio/internal/effect"
)

func waitMsg(t *testing.T, cmd tea.Cmd, timeout time.Duration) (tea.Msg, bool) {
	t.Helper()
	got := make(chan tea.Msg, 1)
	go func() { got <- cmd() }()
	select {
	case msg := <-got:
		return msg, true
	case <-time.After(timeout):
		return nil, false
	}
}

func TestSchedulerDeliversFiredTimers(t *testing.T) {
	t.Parallel()

	s := newScheduler()
	defer s.Stop()
	token := effect.NextToken()
	s.Schedule(effect.Timer{Name: "auto-hide", Token: token, Delay: time.Millisecond})

	msg, ok := waitMsg(t, s.Wait(), time.Second)
	if !ok {
		t.Fatal("timer did not fire")
	}
	fired, isFired := msg.(timerFiredMsg)
	if !isFired || fired.token != token || fired.name != "auto-hide" {
		t.Fatalf("unexpected message %#v", msg)
	}
	if s.Pending() != 0 {
		t.Fatalf("expected no pending timers, got %d", s.Pending())
	}
}

func TestSchedulerCancelStopsTimer(t *testing.T) {
	t.Parallel()

	s := newScheduler()
	defer s.Stop()
	cancelled := effect.NextToken()
	kept := effect.NextToken()
	s.Schedule(effect.Timer{Name: "hide-completion", Token: cancelled, Delay: 5 * time.Millisecond})
	s.Schedule(effect.Timer{Name: "submit-delay", Token: kept, Delay: 20 * time.Millisecond})
	s.Cancel(cancelled)
	s.Cancel(effect.NextToken())
	if s.Pending() != 1 {
		t.Fatalf("expected one pending timer, got %d", s.Pending())
	}

	msg, ok := waitMsg(t, s.Wait(), time.Second)
	if !ok {
		t.Fatal("kept timer did not fire")
	}
	if fired := msg.(timerFiredMsg); fired.token != kept {
		t.Fatalf("cancelled timer fired: %#v", fired)
	}
}

func TestSchedulerStopReleasesWait(t *testing.T) {
	t.Parallel()

	s := newScheduler()
	s.Schedule(effect.Timer{Name: "pulse", Token: effect.NextToken(), Delay: time.Hour})
	wait := s.Wait()
	s.Stop()
	s.Stop()

	msg, ok := waitMsg(t, wait, time.Second)
	if !ok {
		t.Fatal("wait did not return after stop")
	}
	if msg != nil {
		t.Fatalf("expected nil message after stop, got %#v", msg)
	}
	if s.Pending() != 0 {
		t.Fatalf("expected stop to clear timers, got %d", s.Pending())
	}
}
