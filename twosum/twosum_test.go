package twosum_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stepwise/frame"
	"github.com/katalvlaran/stepwise/twosum"
)

func drain(t *testing.T, f *twosum.Finder) []frame.Frame {
	t.Helper()
	var out []frame.Frame
	for {
		fr, err := f.Next()
		if errors.Is(err, frame.ErrExhausted) {
			return out
		}
		require.NoError(t, err)
		out = append(out, fr)
	}
}

func TestFinder_FindsPair(t *testing.T) {
	f, err := twosum.New([]int{3, 7, 2, 11, 5, 15}, 9)
	require.NoError(t, err)

	frames := drain(t, f)
	require.Len(t, frames, 4)
	assert.Equal(t, twosum.LineInit, frames[0].Line)
	assert.Equal(t, twosum.LineStore, frames[1].Line)
	assert.Equal(t, twosum.LineStore, frames[2].Line)

	last := frames[3]
	assert.True(t, last.Final)
	assert.Equal(t, twosum.LineFound, last.Line)
	l, _ := last.Var("pairLeft")
	r, _ := last.Var("pairRight")
	assert.Equal(t, 1, l)
	assert.Equal(t, 2, r)

	seen, _ := last.Container("seen")
	assert.Equal(t, []frame.Entry{{Key: "3", Value: 0}, {Key: "7", Value: 1}}, seen.Entries)
}

func TestFinder_NotFound(t *testing.T) {
	f, err := twosum.New([]int{1, 2}, 10)
	require.NoError(t, err)
	frames := drain(t, f)
	require.Len(t, frames, 4)
	assert.Equal(t, twosum.LineNotFound, frames[3].Line)
	assert.True(t, frames[3].Final)
}

// TestFinder_UndoRestoresOverwrittenIndex walks back over a repeated value.
func TestFinder_UndoRestoresOverwrittenIndex(t *testing.T) {
	f, err := twosum.New([]int{4, 4, 1}, 100)
	require.NoError(t, err)
	forward := drain(t, f)
	require.Len(t, forward, 5)

	for i := len(forward) - 2; i >= 0; i-- {
		got, err := f.Undo()
		require.NoError(t, err)
		assert.True(t, got.Equal(forward[i]), "frame %d", i)
	}
	_, err = f.Undo()
	assert.ErrorIs(t, err, frame.ErrExhausted)

	// stepping forward again reproduces the same sequence
	for i := 1; i < len(forward); i++ {
		got, err := f.Next()
		require.NoError(t, err)
		assert.True(t, got.Equal(forward[i]))
	}
}

func TestNew_Empty(t *testing.T) {
	_, err := twosum.New(nil, 1)
	assert.ErrorIs(t, err, frame.ErrConfiguration)
	assert.ErrorIs(t, err, twosum.ErrEmptyArray)
}
