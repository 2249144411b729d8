package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilter(t *testing.T) {
	f, err := ParseFilter("")
	require.NoError(t, err)
	assert.Equal(t, FilterAll, f)

	_, err = ParseFilter("done")
	assert.ErrorIs(t, err, ErrValidation)

	done := Task{Completed: true}
	open := Task{}
	assert.True(t, FilterCompleted.Match(done))
	assert.False(t, FilterCompleted.Match(open))
	assert.True(t, FilterActive.Match(open))
	assert.True(t, FilterAll.Match(done))
}

func TestComputeStats(t *testing.T) {
	tasks := []Task{
		matrixTask(3, 3, QuadrantDoFirst),
		matrixTask(1, 3, QuadrantSchedule),
		{Title: "loose", Completed: true},
	}
	tasks[0].Completed = true

	s := ComputeStats(tasks)
	assert.Equal(t, 3, s.Total)
	assert.Equal(t, 2, s.Completed)
	assert.Equal(t, 1, s.Active)
	assert.Equal(t, 1, s.Uncategorized)
	assert.Equal(t, 1, s.ByQuadrant[QuadrantDoFirst])
	assert.Equal(t, 1, s.ByQuadrant[QuadrantSchedule])
	assert.Equal(t, 0, s.ByQuadrant[QuadrantDelegate])
}
