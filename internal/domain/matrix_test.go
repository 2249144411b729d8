package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuadrantOfCoversEveryPair(t *testing.T) {
	want := map[[2]int]Quadrant{
		{1, 1}: QuadrantDoLater,
		{1, 2}: QuadrantDoLater,
		{1, 3}: QuadrantSchedule,
		{2, 1}: QuadrantDoLater,
		{2, 2}: QuadrantDoLater,
		{2, 3}: QuadrantSchedule,
		{3, 1}: QuadrantDelegate,
		{3, 2}: QuadrantDelegate,
		{3, 3}: QuadrantDoFirst,
	}
	for u := MinScore; u <= MaxScore; u++ {
		for i := MinScore; i <= MaxScore; i++ {
			got := QuadrantOf(u, i)
			assert.True(t, got.Valid(), "urgency=%d importance=%d", u, i)
			assert.Equal(t, want[[2]int{u, i}], got, "urgency=%d importance=%d", u, i)
		}
	}
}

func TestQuadrantOfTreatsLowAndMediumAlike(t *testing.T) {
	for i := MinScore; i <= MaxScore; i++ {
		assert.Equal(t, QuadrantOf(1, i), QuadrantOf(2, i))
		assert.Equal(t, QuadrantOf(i, 1), QuadrantOf(i, 2))
	}
}

func TestScoresOfRoundTrip(t *testing.T) {
	for _, q := range Quadrants {
		u, i, ok := ScoresOf(q)
		require.True(t, ok, q)
		assert.Equal(t, q, QuadrantOf(u, i))
	}
}

func TestScoresOfCanonicalizes(t *testing.T) {
	u, i, ok := ScoresOf(QuadrantOf(2, 3))
	require.True(t, ok)
	assert.Equal(t, 1, u)
	assert.Equal(t, 3, i)
}

func TestScoresOfUnknownQuadrant(t *testing.T) {
	_, _, ok := ScoresOf(Quadrant("urgent"))
	assert.False(t, ok)
}

func TestParseQuadrant(t *testing.T) {
	q, err := ParseQuadrant("delegate")
	require.NoError(t, err)
	assert.Equal(t, QuadrantDelegate, q)

	_, err = ParseQuadrant("DO_FIRST")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)

	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "quadrant", verr.Field)
}
