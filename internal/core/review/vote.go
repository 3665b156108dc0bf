// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package review

// VoteState is a user's current vote on a review.
type VoteState int

const (
	VoteNone VoteState = iota
	VoteUp
	VoteDown
)

// VoteTransition is the effect of one toggle: the next state and the
// counter adjustments to apply atomically with it.
type VoteTransition struct {
	Next          VoteState
	UpvoteDelta   int
	DownvoteDelta int
}

/*
ResolveVote computes the transition for a toggle in direction up (true) or
down (false) from current.

  - none           -> create the vote, +1 on its counter
  - same direction -> remove the vote, -1 on its counter
  - opposite       -> flip, +1 on the new counter and -1 on the old
*/
func ResolveVote(current VoteState, up bool) VoteTransition {
	wanted, other := VoteUp, VoteDown
	if !up {
		wanted, other = VoteDown, VoteUp
	}

	switch current {
	case wanted:
		return transition(VoteNone, wanted, -1)
	case other:
		next := transition(wanted, wanted, 1)
		return next.add(other, -1)
	default:
		return transition(wanted, wanted, 1)
	}
}

func transition(next, counter VoteState, delta int) VoteTransition {
	return VoteTransition{Next: next}.add(counter, delta)
}

func (t VoteTransition) add(counter VoteState, delta int) VoteTransition {
	if counter == VoteUp {
		t.UpvoteDelta += delta
	} else {
		t.DownvoteDelta += delta
	}
	return t
}
