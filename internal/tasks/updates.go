package tasks

import (
	"fmt"
)

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	AddSongs Phase = iota
	RemoveSongs
	Finished
)

func (p Phase) String() string {
	switch p {
	case AddSongs:
		return "add_songs"
	case RemoveSongs:
		return "remove_songs"
	case Finished:
		return "finished"
	default:
		return ""
	}
}

func phaseFor(remove bool) Phase {
	if remove {
		return RemoveSongs
	}
	return AddSongs
}

func startedUpdate(phase Phase, total int, dirID int64) ProgressUpdate {
	verb := "Adding"
	if phase == RemoveSongs {
		verb = "Removing"
	}
	return ProgressUpdate{
		Phase:   phase,
		Step:    0,
		Total:   total,
		Message: fmt.Sprintf("%s %d songs (playlist %d)...", verb, total, dirID),
	}
}

func songUpdate(phase Phase, step, total int, res SongResult) ProgressUpdate {
	var msg string
	switch {
	case res.Error != nil:
		msg = fmt.Sprintf("[%d/%d] ✗ %d: %v", step, total, res.SongID, res.Error)
	case !res.Success:
		msg = fmt.Sprintf("[%d/%d] ✗ %d: rejected", step, total, res.SongID)
	default:
		msg = fmt.Sprintf("[%d/%d] ✓ %d", step, total, res.SongID)
	}
	return ProgressUpdate{
		Phase:   phase,
		Step:    step,
		Total:   total,
		Message: msg,
		Data:    res,
	}
}

func finishedUpdate(result *BatchResult) ProgressUpdate {
	return ProgressUpdate{
		Phase:   Finished,
		Step:    result.Total,
		Total:   result.Total,
		Message: fmt.Sprintf("Done: %d succeeded, %d failed", result.Succeeded, result.Failed),
		Data:    result,
	}
}
