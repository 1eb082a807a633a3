package view

import (
	"errors"
	"strings"

	"github.com/actuallystonmai/cineai/internal/domain"
)

type Phase int

const (
	PhaseIdle Phase = iota
	PhaseLoading
	PhaseSuccess
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseLoading:
		return "loading"
	case PhaseSuccess:
		return "success"
	default:
		return "unknown"
	}
}

var (
	ErrCannotSubmit = errors.New("form cannot be submitted: blank prompt or request in flight")
	ErrNotLoading   = errors.New("form has no request in flight")
)

// Form is the state of the prompt page. Movies always holds the list on
// display; it is only replaced when a request resolves.
type Form struct {
	Phase  Phase
	Prompt string
	Movies []domain.Movie

	settled Phase // phase to fall back to when a request fails
}

// CanSubmit reports whether the submit control is enabled.
func (f *Form) CanSubmit() bool {
	return f.Phase != PhaseLoading && strings.TrimSpace(f.Prompt) != ""
}

// Submit records prompt and starts a request.
func (f *Form) Submit(prompt string) error {
	if f.Phase == PhaseLoading {
		return ErrCannotSubmit
	}
	f.Prompt = prompt
	if !f.CanSubmit() {
		return ErrCannotSubmit
	}
	f.settled = f.Phase
	f.Phase = PhaseLoading
	return nil
}

// Show puts movies back on display, as carried over from a previous
// render. It has no effect while a request is in flight.
func (f *Form) Show(movies []domain.Movie) {
	if f.Phase == PhaseLoading {
		return
	}
	f.Movies = movies
	if len(movies) > 0 {
		f.Phase = PhaseSuccess
	}
}

// Resolve replaces the displayed list with movies.
func (f *Form) Resolve(movies []domain.Movie) error {
	if f.Phase != PhaseLoading {
		return ErrNotLoading
	}
	f.Movies = movies
	f.Phase = PhaseSuccess
	return nil
}

// Fail ends the request and keeps whatever was displayed before it.
func (f *Form) Fail() {
	if f.Phase == PhaseLoading {
		f.Phase = f.settled
	}
}

// Empty reports whether the empty state should be shown.
func (f *Form) Empty() bool {
	return len(f.Movies) == 0 && f.Phase != PhaseLoading
}
