package dispute

import "fmt"

type Status uint8

const (
	StatusGrace Status = iota
	StatusWaiting
	StatusVoting
	StatusReveal
	StatusConcluded
)

func (s Status) String() string {
	switch s {
	case StatusGrace:
		return "grace"
	case StatusWaiting:
		return "waiting"
	case StatusVoting:
		return "voting"
	case StatusReveal:
		return "reveal"
	case StatusConcluded:
		return "concluded"
	default:
		return fmt.Sprintf("Status(%d)", uint8(s))
	}
}
