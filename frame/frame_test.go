package frame_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stepwise/frame"
)

// TestBuilder_CopiesInputs ensures later mutation of working state never
// leaks into a built frame.
func TestBuilder_CopiesInputs(t *testing.T) {
	values := []int{1, 2, 3}
	queue := []string{"a", "b"}
	entries := []frame.Entry{{Key: "2", Value: 1}}
	grid := [][]frame.GridCell{{{Land: true, Flags: []frame.Flag{frame.FlagCurrent}}}}

	f := frame.New(0, "init", "start").
		Array("arr", values, func(i int) []frame.Flag {
			if i == 1 {
				return []frame.Flag{frame.FlagCurrent}
			}
			return nil
		}).
		Queue("queue", queue).
		Map("counts", entries).
		Grid("grid", grid).
		Build()

	values[0] = 99
	queue[0] = "z"
	entries[0].Value = 7
	grid[0][0].Flags[0] = frame.FlagVisited

	arr, ok := f.Container("arr")
	require.True(t, ok)
	assert.Equal(t, 1, arr.Cells[0].Value)
	assert.Nil(t, arr.Cells[0].Flags)
	assert.Equal(t, []frame.Flag{frame.FlagCurrent}, arr.Cells[1].Flags)

	q, _ := f.Container("queue")
	assert.Equal(t, []string{"a", "b"}, q.Items)
	m, _ := f.Container("counts")
	assert.Equal(t, 1, m.Entries[0].Value)
	g, _ := f.Container("grid")
	assert.Equal(t, frame.FlagCurrent, g.Grid[0][0].Flags[0])
}

// TestFrame_SameStateIgnoresNarration checks that only variables and
// containers take part in state equality.
func TestFrame_SameStateIgnoresNarration(t *testing.T) {
	a := frame.New(3, "visit", "Visit node 2").Var("node", "2").List("visited", []string{"1", "2"}).Build()
	b := frame.New(7, "expand", "different words").Var("node", "2").List("visited", []string{"1", "2"}).Build()
	c := frame.New(3, "visit", "Visit node 2").Var("node", "3").List("visited", []string{"1", "2"}).Build()

	assert.True(t, a.SameState(b))
	assert.False(t, a.Equal(b))
	assert.False(t, a.SameState(c))
}

// TestFrame_CloneIsDeep verifies Clone shares no backing arrays.
func TestFrame_CloneIsDeep(t *testing.T) {
	f := frame.New(1, "l", "n").
		Var("x", 1).
		Array("arr", []int{4, 5}, func(int) []frame.Flag { return []frame.Flag{frame.FlagInWindow} }).
		Stack("stack", []string{"1"}).
		Final().
		Build()

	c := f.Clone()
	require.True(t, c.Equal(f))

	c.Variables[0].Value = 2
	c.Containers[0].Cells[0].Flags[0] = frame.FlagBest
	c.Containers[1].Items[0] = "9"

	v, _ := f.Var("x")
	assert.Equal(t, 1, v)
	assert.Equal(t, frame.FlagInWindow, f.Containers[0].Cells[0].Flags[0])
	assert.Equal(t, "1", f.Containers[1].Items[0])
}

// TestFrame_CloneKeepsEmptyContainers covers the drained frontier of a
// finished traversal: empty containers must survive Clone as empty.
func TestFrame_CloneKeepsEmptyContainers(t *testing.T) {
	f := frame.New(6, "done", "Queue drained").
		Queue("queue", nil).
		Stack("stack", []string{}).
		List("attempts", nil).
		Map("map", nil).
		Grid("grid", [][]frame.GridCell{{{Land: true, Flags: []frame.Flag{}}}}).
		Final().
		Build()

	c := f.Clone()
	assert.True(t, c.Equal(f))
	assert.True(t, c.SameState(f))
	assert.True(t, f.SameState(c))
	for _, name := range []string{"queue", "stack", "attempts"} {
		got, ok := c.Container(name)
		require.True(t, ok, name)
		assert.NotNil(t, got.Items, name)
		assert.Empty(t, got.Items, name)
	}
	m, _ := c.Container("map")
	assert.NotNil(t, m.Entries)

	bare := frame.New(0, "", "").Build()
	assert.True(t, bare.Clone().Equal(bare))
}

// TestFrame_Lookups covers Var and Container misses.
func TestFrame_Lookups(t *testing.T) {
	f := frame.New(0, "", "").Var("left", 0).Build()
	_, ok := f.Var("right")
	assert.False(t, ok)
	_, ok = f.Container("queue")
	assert.False(t, ok)
}

// TestFrame_JSONShape pins the field names renderers rely on.
func TestFrame_JSONShape(t *testing.T) {
	f := frame.New(2, "compare", "Compare").Var("sum", 7).Queue("queue", []string{"3"}).Final().Build()
	raw, err := json.Marshal(f)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	assert.EqualValues(t, 2, decoded["index"])
	assert.Equal(t, "compare", decoded["line"])
	assert.Equal(t, true, decoded["final"])
	assert.Len(t, decoded["containers"], 1)
}
