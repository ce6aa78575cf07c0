// Package preview tracks per-section enhancement previews for a form being
// edited, before the rewritten text is applied back into the form.
package preview

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"resume-builder/internal/model"
	"resume-builder/internal/parser"
)

type State string

const (
	Idle      State = "idle"
	Enhancing State = "enhancing"
	Previewed State = "previewed"
	Applied   State = "applied"
	Discarded State = "discarded"
)

var ErrTransition = errors.New("invalid preview transition")

// Entry is the state of one section.
type Entry struct {
	State  State
	Result model.Enhancement
	Err    error
}

// EnhanceFunc rewrites the raw text of a section.
type EnhanceFunc func(ctx context.Context, section model.Section, text string) (model.Enhancement, error)

// Board holds one Entry per section. The zero value is not usable; call
// NewBoard.
type Board struct {
	mu      sync.Mutex
	entries map[model.Section]*Entry
}

func NewBoard() *Board {
	b := &Board{entries: make(map[model.Section]*Entry, len(model.Sections))}
	for _, s := range model.Sections {
		b.entries[s] = &Entry{State: Idle}
	}
	return b
}

func (b *Board) entry(s model.Section) (*Entry, error) {
	e, ok := b.entries[s]
	if !ok {
		return nil, fmt.Errorf("unknown section: %s", s)
	}
	return e, nil
}

func transitionErr(s model.Section, from State, action string) error {
	return fmt.Errorf("%w: cannot %s %s while %s", ErrTransition, action, s, from)
}

// Get returns a copy of the section's entry.
func (b *Board) Get(s model.Section) Entry {
	b.mu.Lock()
	defer b.mu.Unlock()
	if e, ok := b.entries[s]; ok {
		return *e
	}
	return Entry{State: Idle}
}

// Start moves a section into Enhancing. Any state except Enhancing may start.
func (b *Board) Start(s model.Section) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := b.entry(s)
	if err != nil {
		return err
	}
	if e.State == Enhancing {
		return transitionErr(s, e.State, "enhance")
	}
	*e = Entry{State: Enhancing}
	return nil
}

// Finish records the outcome of an enhancement. A failure returns the section
// to Idle with the error kept for display.
func (b *Board) Finish(s model.Section, result model.Enhancement, cause error) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := b.entry(s)
	if err != nil {
		return err
	}
	if e.State != Enhancing {
		return transitionErr(s, e.State, "finish")
	}
	if cause != nil {
		*e = Entry{State: Idle, Err: cause}
		return nil
	}
	*e = Entry{State: Previewed, Result: result}
	return nil
}

// Enhance runs fn for the section's current text and records the result.
func (b *Board) Enhance(ctx context.Context, s model.Section, form *parser.Form, fn EnhanceFunc) error {
	if err := b.Start(s); err != nil {
		return err
	}
	result, err := fn(ctx, s, form.Section(s))
	if ferr := b.Finish(s, result, err); ferr != nil {
		return ferr
	}
	return err
}

// Apply writes the previewed text into form.
func (b *Board) Apply(s model.Section, form *parser.Form) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := b.entry(s)
	if err != nil {
		return err
	}
	if e.State != Previewed {
		return transitionErr(s, e.State, "apply")
	}
	form.Set(s, FormText(e.Result))
	e.State = Applied
	return nil
}

// Discard drops the previewed text, leaving the form untouched.
func (b *Board) Discard(s model.Section) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	e, err := b.entry(s)
	if err != nil {
		return err
	}
	if e.State != Previewed {
		return transitionErr(s, e.State, "discard")
	}
	e.State = Discarded
	return nil
}

// FormText renders an enhancement back into the form's raw text layout:
// skills comma separated, everything else one item per line.
func FormText(e model.Enhancement) string {
	switch e.Section {
	case model.SectionSummary:
		if e.Text == "" {
			return strings.Join(e.Items, "\n")
		}
		return e.Text
	case model.SectionSkills:
		return strings.Join(e.Items, ", ")
	}
	return strings.Join(e.Items, "\n")
}

// Lines splits an enhancement into display lines for a preview pane.
func Lines(e model.Enhancement) []string {
	if e.Section == model.SectionSummary && e.Text != "" {
		return strings.Split(e.Text, "\n")
	}
	return e.Items
}
