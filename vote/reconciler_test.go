package vote_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mpatel17-ucsc/Campus-Hive-CSE115a-sub000/vote"
)

func TestApply_TransitionTable(t *testing.T) {
	cases := []struct {
		name    string
		current vote.State
		action  vote.Action
		want    vote.Result
	}{
		{"neutral upvote", vote.Neutral, vote.Upvote,
			vote.Result{NewState: vote.Upvoted, UpvoteDelta: +1}},
		{"neutral downvote", vote.Neutral, vote.Downvote,
			vote.Result{NewState: vote.Downvoted, DownvoteDelta: +1}},
		{"upvoted upvote retracts", vote.Upvoted, vote.Upvote,
			vote.Result{NewState: vote.Neutral, UpvoteDelta: -1}},
		{"upvoted downvote switches", vote.Upvoted, vote.Downvote,
			vote.Result{NewState: vote.Downvoted, UpvoteDelta: -1, DownvoteDelta: +1}},
		{"downvoted downvote retracts", vote.Downvoted, vote.Downvote,
			vote.Result{NewState: vote.Neutral, DownvoteDelta: -1}},
		{"downvoted upvote switches", vote.Downvoted, vote.Upvote,
			vote.Result{NewState: vote.Upvoted, UpvoteDelta: +1, DownvoteDelta: -1}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := vote.Apply(tc.current, tc.action)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestApply_ToggleOffIsIdempotentRoundTrip(t *testing.T) {
	first, err := vote.Apply(vote.Neutral, vote.Upvote)
	require.NoError(t, err)
	second, err := vote.Apply(first.NewState, vote.Upvote)
	require.NoError(t, err)

	assert.Equal(t, vote.Neutral, second.NewState)
	assert.Zero(t, first.UpvoteDelta+second.UpvoteDelta)
	assert.Zero(t, first.DownvoteDelta+second.DownvoteDelta)
}

func TestApply_UnknownInputs(t *testing.T) {
	_, err := vote.Apply(vote.State(42), vote.Upvote)
	assert.Error(t, err)

	_, err = vote.Apply(vote.Neutral, vote.Action(42))
	assert.Error(t, err)
}

func TestStateOf(t *testing.T) {
	s, err := vote.StateOf(false, false)
	require.NoError(t, err)
	assert.Equal(t, vote.Neutral, s)

	s, err = vote.StateOf(true, false)
	require.NoError(t, err)
	assert.Equal(t, vote.Upvoted, s)

	s, err = vote.StateOf(false, true)
	require.NoError(t, err)
	assert.Equal(t, vote.Downvoted, s)

	_, err = vote.StateOf(true, true)
	assert.Error(t, err, "both sets at once must be rejected")
}

func TestParseAction(t *testing.T) {
	a, err := vote.ParseAction("upvote")
	require.NoError(t, err)
	assert.Equal(t, vote.Upvote, a)

	a, err = vote.ParseAction("downvote")
	require.NoError(t, err)
	assert.Equal(t, vote.Downvote, a)

	_, err = vote.ParseAction("sideways")
	assert.Error(t, err)
}

// Counters and state are replayed through a long random action sequence:
// counts must track the state exactly, never go negative, and the voter
// must never hold both sides.
func TestApply_RandomSequenceKeepsInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(115))

	state := vote.Neutral
	up, down := 0, 0
	for i := 0; i < 1000; i++ {
		action := vote.Upvote
		if rng.Intn(2) == 1 {
			action = vote.Downvote
		}

		res, err := vote.Apply(state, action)
		require.NoError(t, err)

		up += res.UpvoteDelta
		down += res.DownvoteDelta
		state = res.NewState

		require.GreaterOrEqual(t, up, 0)
		require.GreaterOrEqual(t, down, 0)
		require.LessOrEqual(t, up+down, 1, "one voter holds at most one vote")

		switch state {
		case vote.Upvoted:
			require.Equal(t, 1, up)
			require.Equal(t, 0, down)
		case vote.Downvoted:
			require.Equal(t, 0, up)
			require.Equal(t, 1, down)
		case vote.Neutral:
			require.Equal(t, 0, up)
			require.Equal(t, 0, down)
		}
	}
}

// The two-step scenario from the product flow: fresh voter upvotes, then
// downvotes. The switch must move the vote in one logical update.
func TestApply_UpvoteThenDownvoteScenario(t *testing.T) {
	up, down := 0, 0

	res, err := vote.Apply(vote.Neutral, vote.Upvote)
	require.NoError(t, err)
	up += res.UpvoteDelta
	down += res.DownvoteDelta
	assert.Equal(t, vote.Upvoted, res.NewState)
	assert.Equal(t, 1, up)
	assert.Equal(t, 0, down)

	res, err = vote.Apply(res.NewState, vote.Downvote)
	require.NoError(t, err)
	up += res.UpvoteDelta
	down += res.DownvoteDelta
	assert.Equal(t, vote.Downvoted, res.NewState)
	assert.Equal(t, 0, up)
	assert.Equal(t, 1, down)
}
