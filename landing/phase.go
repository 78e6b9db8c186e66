package landing

import "fmt"

// Phase is the landing narrative state. It drives both the cloud field and
// the crossfade sequencing.
type Phase int

const (
	PhaseIdle       Phase = 1 // intro; clouds drift and react to the pointer
	PhaseDispersing Phase = 2 // clouds fly off-screen while backgrounds fade
	PhaseSettled    Phase = 3 // end of the narrative; clouds frozen
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDispersing:
		return "dispersing"
	case PhaseSettled:
		return "settled"
	}
	return fmt.Sprintf("phase(%d)", int(p))
}

// PhaseSource is the read side of the controller, handed to collaborators.
type PhaseSource interface {
	Phase() Phase
}
