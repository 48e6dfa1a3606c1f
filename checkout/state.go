package checkout

import "github.com/thoas/go-funk"

type State int

const (
	Uninitialized State = iota
	Initializing
	Ready
	Presenting
	Settled
	Cancelled
	Failed
)

var stateNames = map[State]string{
	Uninitialized: "uninitialized",
	Initializing:  "initializing",
	Ready:         "ready",
	Presenting:    "presenting",
	Settled:       "settled",
	Cancelled:     "cancelled",
	Failed:        "failed",
}

func (s State) String() string {
	if name, ok := stateNames[s]; ok {
		return name
	}
	return "unknown"
}

// edges is the whole lifecycle. Each terminal state has exactly one way out:
// the automatic restart into Initializing.
var edges = map[State][]State{
	Uninitialized: {Initializing},
	Initializing:  {Ready, Failed},
	Ready:         {Presenting},
	Presenting:    {Settled, Cancelled, Failed},
	Settled:       {Initializing},
	Cancelled:     {Initializing},
	Failed:        {Initializing},
}

var terminalStates = []State{Settled, Cancelled, Failed}

func (s State) IsTerminal() bool {
	return funk.Contains(terminalStates, s)
}

func (s State) CanTransition(to State) bool {
	return funk.Contains(edges[s], to)
}

// View is what the screen may know about a state. It is always derived from
// the state and never stored next to it.
type View struct {
	// Ready means the pay button is enabled.
	Ready bool
	// Busy means a payment sheet is on screen.
	Busy bool
}

func (s State) View() View {
	return View{
		Ready: s == Ready,
		Busy:  s == Presenting,
	}
}
