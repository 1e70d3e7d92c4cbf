package tui

import (
	"github.com/csheth/folio/internal/advice"
	"github.com/csheth/folio/internal/effect"
	"github.com/csheth/folio/internal/prefs"
)

const (
	anchorAbout    = "about"
	anchorProjects = "projects"
	anchorAdvice   = "advice"
	anchorContact  = "contact"
)

var sectionSequence = []string{
	anchorAbout,
	anchorProjects,
	anchorAdvice,
	anchorContact,
}

const (
	minViewportWidth          = 40
	viewportHorizontalPadding = 4
	maxFieldWidth             = 60
)

// classPulse marks the theme toggle for a short highlight after a switch.
const classPulse = "is-pulsing"

const emptyProjectsText = "No projects to show yet. Check back soon."

// frameMsg is one animation frame.
type frameMsg struct{}

// timerFiredMsg reports that a scheduled timer ran to completion.
type timerFiredMsg struct {
	token effect.Token
	name  string
}

type adviceResultMsg struct {
	epoch  uint64
	result advice.Result
}

type themeSavedMsg struct {
	theme prefs.Theme
	err   error
}
