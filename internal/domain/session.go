package domain

import (
	"maps"
	"time"
)

// Mode selects which questionnaire is active.
type Mode int

const (
	ModeNone Mode = iota
	ModeRegistering
	ModeConsulting
)

func (m Mode) String() string {
	switch m {
	case ModeRegistering:
		return "registering"
	case ModeConsulting:
		return "consulting"
	default:
		return "none"
	}
}

// Phase is the sub-state within a mode.
type Phase int

const (
	PhaseInput Phase = iota
	PhaseConfirmRegister
	PhaseConfirmConsult
	PhaseEditConsult
)

func (p Phase) String() string {
	switch p {
	case PhaseConfirmRegister:
		return "confirm_register"
	case PhaseConfirmConsult:
		return "confirm_consult"
	case PhaseEditConsult:
		return "edit_consult"
	default:
		return "input"
	}
}

// Session is the dialogue state of a single user.
// In PhaseInput, Step indexes the next unanswered question of the active catalog.
type Session struct {
	Mode      Mode
	Phase     Phase
	Step      int
	Answers   map[string]string
	Retry     int
	UpdatedAt time.Time
}

// NewSession returns an idle session.
func NewSession() *Session {
	return &Session{
		Mode:    ModeNone,
		Phase:   PhaseInput,
		Answers: map[string]string{},
	}
}

// Reset starts a fresh pass of the given mode and phase.
func (s *Session) Reset(mode Mode, phase Phase) {
	s.Mode = mode
	s.Phase = phase
	s.Step = 0
	s.Answers = map[string]string{}
	s.Retry = 0
}

// Clone returns a deep copy so a failed transition leaves the stored session untouched.
func (s *Session) Clone() *Session {
	c := *s
	c.Answers = maps.Clone(s.Answers)
	if c.Answers == nil {
		c.Answers = map[string]string{}
	}
	return &c
}
