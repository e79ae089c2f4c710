package ui

import (
	"errors"
	"sync"
)

type Section string

const (
	SectionDashboard    Section = "dashboard"
	SectionRegister     Section = "register"
	SectionAppointments Section = "appointments"
	SectionStatus       Section = "status"
	SectionPatients     Section = "patients"
)

// DefaultSection is active when the client starts.
const DefaultSection = SectionDashboard

var ErrUnknownSection = errors.New("unknown section")

var sections = map[Section]bool{
	SectionDashboard:    true,
	SectionRegister:     true,
	SectionAppointments: true,
	SectionStatus:       true,
	SectionPatients:     true,
}

// Navigator is the view-switching state machine: exactly one section of a
// closed set is active. Transitions are purely local and idempotent.
type Navigator struct {
	mu       sync.Mutex
	active   Section
	onChange func(Section)
}

// NewNavigator starts at DefaultSection. onChange fires once per actual
// transition and may be nil.
func NewNavigator(onChange func(Section)) *Navigator {
	if onChange == nil {
		onChange = func(Section) {}
	}
	return &Navigator{active: DefaultSection, onChange: onChange}
}

// Activate makes s the active section. Reactivating the active section is a
// no-op with no observable side effect.
func (n *Navigator) Activate(s Section) error {
	if !sections[s] {
		return ErrUnknownSection
	}

	n.mu.Lock()
	if n.active == s {
		n.mu.Unlock()
		return nil
	}
	n.active = s
	n.mu.Unlock()

	n.onChange(s)
	return nil
}

func (n *Navigator) Active() Section {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.active
}
