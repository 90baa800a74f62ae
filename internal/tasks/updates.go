package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data
}

// Operation phase enumeration
type Phase int

const (
	FetchGenre Phase = iota
	FetchTrack
)

func (p Phase) String() string {
	switch p {
	case FetchGenre:
		return "fetch_genre"
	case FetchTrack:
		return "fetch_track"
	default:
		return ""
	}
}

func startedUpdate(total int) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchGenre,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("Warming %d pages...", total),
	}
}

func completedUpdate(step, total int, res WarmResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   res.Phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s", step, total, res.Name),
		Data:    res,
	}
}

func failedUpdate(step, total int, res WarmResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   res.Phase,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s: %v", step, total, res.Key, res.Error),
		Data:    res,
	}
}
