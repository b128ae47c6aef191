package window_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stepwise/frame"
	"github.com/katalvlaran/stepwise/window"
)

type stepper interface {
	Next() (frame.Frame, error)
}

func drain(t *testing.T, s stepper) []frame.Frame {
	t.Helper()
	var out []frame.Frame
	for {
		f, err := s.Next()
		if errors.Is(err, frame.ErrExhausted) {
			return out
		}
		require.NoError(t, err)
		out = append(out, f)
	}
}

func intVar(t *testing.T, f frame.Frame, name string) int {
	t.Helper()
	v, ok := f.Var(name)
	require.True(t, ok, "variable %q missing", name)
	n, ok := v.(int)
	require.True(t, ok, "variable %q is %T", name, v)
	return n
}

func TestNewFixed_Validation(t *testing.T) {
	arr := []int{1, 2, 3}
	cases := []struct {
		name string
		size int
		opts []window.Option
		err  error
	}{
		{"Zero", 0, nil, window.ErrWindowSize},
		{"Negative", -2, nil, window.ErrWindowSize},
		{"Oversize", 4, nil, window.ErrWindowSize},
		{"OversizeClamped", 4, []window.Option{window.WithClampOversize()}, nil},
		{"Exact", 3, nil, nil},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := window.NewFixed(arr, tc.size, tc.opts...)
			if tc.err == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tc.err)
			assert.ErrorIs(t, err, frame.ErrConfiguration)
		})
	}
}

// TestFixed_SlidingSums walks the reference array with size 3.
func TestFixed_SlidingSums(t *testing.T) {
	w, err := window.NewFixed([]int{3, 1, 4, 1, 5, 9, 2, 6}, 3)
	require.NoError(t, err)
	require.Equal(t, 6, w.Len())

	frames := drain(t, w)
	require.Len(t, frames, 6)

	wantSums := []int{8, 6, 10, 15, 16, 17}
	for i, f := range frames {
		assert.Equal(t, i, intVar(t, f, "left"))
		assert.Equal(t, i+2, intVar(t, f, "right"))
		assert.Equal(t, wantSums[i], intVar(t, f, "sum"))
	}
	assert.Equal(t, window.LineInit, frames[0].Line)
	assert.Equal(t, window.LineSlide, frames[1].Line)

	last := frames[len(frames)-1]
	assert.True(t, last.Final)
	assert.Equal(t, 17, intVar(t, last, "maxSum"))
	assert.Equal(t, 5, intVar(t, last, "bestLeft"))

	arr, _ := last.Container("array")
	assert.Contains(t, arr.Cells[5].Flags, frame.FlagInWindow)
	assert.NotContains(t, arr.Cells[4].Flags, frame.FlagInWindow)
}

// TestFixed_RandomAccess checks that FrameAt does not depend on Next.
func TestFixed_RandomAccess(t *testing.T) {
	w, err := window.NewFixed([]int{5, -2, 7, 0, 3}, 2)
	require.NoError(t, err)
	frames := drain(t, w)

	for i := len(frames) - 1; i >= 0; i-- {
		f, err := w.FrameAt(i)
		require.NoError(t, err)
		assert.True(t, f.Equal(frames[i]))
	}
	_, err = w.FrameAt(len(frames))
	assert.ErrorIs(t, err, frame.ErrOutOfRange)
}

// TestFixed_OversizeSingleFrame: a clamped window spans the whole array once.
func TestFixed_OversizeSingleFrame(t *testing.T) {
	w, err := window.NewFixed([]int{4, 2}, 10, window.WithClampOversize())
	require.NoError(t, err)
	require.Equal(t, 1, w.Len())
	require.Equal(t, 2, w.Size())

	f, _ := w.FrameAt(0)
	assert.True(t, f.Final)
	assert.Equal(t, 6, intVar(t, f, "sum"))

	empty, err := window.NewFixed(nil, 3, window.WithClampOversize())
	require.NoError(t, err)
	f, _ = empty.FrameAt(0)
	assert.Equal(t, window.LineEmpty, f.Line)
	assert.True(t, f.Final)
}

func TestNewVariable_Validation(t *testing.T) {
	_, err := window.NewVariable(nil, 3)
	assert.ErrorIs(t, err, window.ErrEmptyArray)
	_, err = window.NewVariable([]int{1, -1}, 3)
	assert.ErrorIs(t, err, window.ErrNegative)
	_, err = window.NewVariable([]int{1}, -1)
	assert.ErrorIs(t, err, frame.ErrConfiguration)
}

// longestUnder is the quadratic reference answer.
func longestUnder(arr []int, limit int) int {
	best := 0
	for i := range arr {
		sum := 0
		for j := i; j < len(arr); j++ {
			sum += arr[j]
			if sum <= limit && j-i+1 > best {
				best = j - i + 1
			}
		}
	}
	return best
}

// TestVariable_FindsLongestWindow compares against brute force.
func TestVariable_FindsLongestWindow(t *testing.T) {
	cases := []struct {
		arr   []int
		limit int
	}{
		{[]int{2, 1, 3, 1, 1, 4}, 5},
		{[]int{9, 9, 9}, 3},
		{[]int{1, 1, 1, 1}, 10},
		{[]int{4, 1, 1, 1, 6, 1, 1}, 4},
	}
	for _, tc := range cases {
		w, err := window.NewVariable(tc.arr, tc.limit)
		require.NoError(t, err)
		frames := drain(t, w)
		require.NotEmpty(t, frames)

		last := frames[len(frames)-1]
		assert.True(t, last.Final)
		assert.Equal(t, window.LineDone, last.Line)
		assert.Equal(t, longestUnder(tc.arr, tc.limit), intVar(t, last, "bestLength"), "arr=%v limit=%d", tc.arr, tc.limit)

		for i, f := range frames {
			assert.Equal(t, i, f.Index)
			assert.Equal(t, i == len(frames)-1, f.Final)
		}
	}
}

// TestVariable_ResetReplaysIdentically covers determinism across Reset.
func TestVariable_ResetReplaysIdentically(t *testing.T) {
	w, err := window.NewVariable([]int{3, 1, 2, 7, 1}, 6)
	require.NoError(t, err)
	first := drain(t, w)
	_, err = w.Next()
	assert.ErrorIs(t, err, frame.ErrExhausted)

	w.Reset()
	assert.Equal(t, first, drain(t, w))
}
