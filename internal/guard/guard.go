// Package guard asks the operator what to do with the current document
// before it is replaced.
package guard

import "text-editor/internal/logger"

// Decision is the operator's answer to the unsaved-changes prompt.
type Decision int

const (
	// Cancel is also the answer when the prompt is dismissed.
	Cancel Decision = iota
	Save
	Discard
)

func (d Decision) String() string {
	switch d {
	case Save:
		return "save"
	case Discard:
		return "discard"
	default:
		return "cancel"
	}
}

// State of one guard invocation.
type State int

const (
	Prompting State = iota
	Saving
	Discarding
	Cancelled
)

func (s State) String() string {
	switch s {
	case Prompting:
		return "prompting"
	case Saving:
		return "saving"
	case Discarding:
		return "discarding"
	case Cancelled:
		return "cancelled"
	default:
		return "unknown"
	}
}

// Transition is what a decision leads to.
type Transition struct {
	State   State
	Save    bool
	Replace bool
}

// Plan maps a decision onto its terminal state. A Save always ends with the
// buffer replaced, whatever happened to the save itself.
func Plan(d Decision) Transition {
	switch d {
	case Save:
		return Transition{State: Saving, Save: true, Replace: true}
	case Discard:
		return Transition{State: Discarding, Replace: true}
	default:
		return Transition{State: Cancelled}
	}
}

// Prompter asks the three-way question and reports the answer through
// answer exactly once.
type Prompter interface {
	AskReplace(answer func(Decision))
}

// Clearer is the buffer being guarded.
type Clearer interface {
	Clear()
}

// SaveFunc runs the interactive save and calls done when it is over,
// whether it wrote, failed, or was cancelled.
type SaveFunc func(done func())

// Guard runs the prompt and applies the transition.
type Guard struct {
	prompter Prompter
	logger   logger.Logger
}

func New(p Prompter, l logger.Logger) *Guard {
	if l == nil {
		l = logger.NoOpLogger{}
	}
	return &Guard{prompter: p, logger: l}
}

// ConfirmReplace asks before buf is replaced. finished receives the final
// state once the buffer has been handled; it may be nil.
func (g *Guard) ConfirmReplace(buf Clearer, save SaveFunc, finished func(State)) {
	g.prompter.AskReplace(func(d Decision) {
		tr := Plan(d)
		g.logger.Debug("Guard", "replace decision", map[string]interface{}{
			"decision": d.String(),
			"state":    tr.State.String(),
		})

		complete := func() {
			if tr.Replace {
				buf.Clear()
			}
			if finished != nil {
				finished(tr.State)
			}
		}

		if tr.Save && save != nil {
			save(complete)
			return
		}
		complete()
	})
}
