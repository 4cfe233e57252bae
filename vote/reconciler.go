// Package vote holds the pure decision logic for toggling upvotes and
// downvotes on an activity. It computes what should change; callers apply
// the result to storage in a single transaction.
package vote

import "fmt"

// State is a voter's current relationship to one activity.
type State int

const (
	Neutral State = iota
	Upvoted
	Downvoted
)

func (s State) String() string {
	switch s {
	case Neutral:
		return "neutral"
	case Upvoted:
		return "upvoted"
	case Downvoted:
		return "downvoted"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

// Action is a requested vote.
type Action int

const (
	Upvote Action = iota
	Downvote
)

func (a Action) String() string {
	switch a {
	case Upvote:
		return "upvote"
	case Downvote:
		return "downvote"
	default:
		return fmt.Sprintf("action(%d)", int(a))
	}
}

// ParseAction maps the wire form of an action ("upvote"/"downvote").
func ParseAction(s string) (Action, error) {
	switch s {
	case "upvote":
		return Upvote, nil
	case "downvote":
		return Downvote, nil
	default:
		return 0, fmt.Errorf("unknown vote action %q", s)
	}
}

// Result describes the outcome of applying an Action to a State. The
// deltas cover both the numeric counters and set membership: a +1 means
// the voter enters that side's set, a -1 means they leave it.
type Result struct {
	NewState      State
	UpvoteDelta   int
	DownvoteDelta int
}

// StateOf maps persisted membership flags to a State. Membership in both
// sets at once violates the storage invariant and is rejected rather than
// guessed at.
func StateOf(hasUpvoted, hasDownvoted bool) (State, error) {
	if hasUpvoted && hasDownvoted {
		return Neutral, fmt.Errorf("voter present in both vote sets")
	}
	if hasUpvoted {
		return Upvoted, nil
	}
	if hasDownvoted {
		return Downvoted, nil
	}
	return Neutral, nil
}

// Apply computes the transition for one vote request. Requesting the side
// you already hold retracts it; requesting the opposite side retracts the
// old vote and applies the new one as one logical update. Apply performs
// no I/O and never returns deltas that would drive a counter negative
// when applied from the state it was given.
func Apply(current State, action Action) (Result, error) {
	switch current {
	case Neutral:
		switch action {
		case Upvote:
			return Result{NewState: Upvoted, UpvoteDelta: +1}, nil
		case Downvote:
			return Result{NewState: Downvoted, DownvoteDelta: +1}, nil
		}
	case Upvoted:
		switch action {
		case Upvote:
			return Result{NewState: Neutral, UpvoteDelta: -1}, nil
		case Downvote:
			return Result{NewState: Downvoted, UpvoteDelta: -1, DownvoteDelta: +1}, nil
		}
	case Downvoted:
		switch action {
		case Downvote:
			return Result{NewState: Neutral, DownvoteDelta: -1}, nil
		case Upvote:
			return Result{NewState: Upvoted, UpvoteDelta: +1, DownvoteDelta: -1}, nil
		}
	}
	return Result{}, fmt.Errorf("no transition for state %v, action %v", current, action)
}
