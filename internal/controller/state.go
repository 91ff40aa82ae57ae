package controller

import (
	"github.com/cristianoliveira/form-intray/internal/submission"
)

// Admission is the outcome of an arriving submission.
type Admission int

const (
	// Admitted means the submission was appended to the pending queue.
	Admitted Admission = iota
	// RejectedDismissed means the ID was dismissed earlier.
	RejectedDismissed
	// RejectedLiked means the ID is already in the liked list.
	RejectedLiked
	// RejectedInvalid means the submission had no ID.
	RejectedInvalid
)

func (a Admission) String() string {
	switch a {
	case Admitted:
		return "admitted"
	case RejectedDismissed:
		return "rejected_dismissed"
	case RejectedLiked:
		return "rejected_liked"
	case RejectedInvalid:
		return "rejected_invalid"
	default:
		return "unknown"
	}
}

// State is a point-in-time copy of the controller state for rendering.
type State struct {
	// Pending holds submissions awaiting a decision, in arrival order.
	Pending []submission.Submission
	// Liked holds liked submissions in the order they were persisted.
	Liked []submission.Submission
	// Dismissed holds every dismissed ID, sorted.
	Dismissed []string
	// Loading is true until Initialize completes.
	Loading bool
	// Ready is true once the liked list was loaded successfully.
	Ready bool
	// LoadErr is the persistent load failure, if any.
	LoadErr error
}
