package replay_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/stepwise/frame"
	"github.com/katalvlaran/stepwise/frequency"
	"github.com/katalvlaran/stepwise/gitscenario"
	"github.com/katalvlaran/stepwise/gridlabel"
	"github.com/katalvlaran/stepwise/replay"
	"github.com/katalvlaran/stepwise/traversal"
	"github.com/katalvlaran/stepwise/twopointer"
	"github.com/katalvlaran/stepwise/twosum"
	"github.com/katalvlaran/stepwise/window"
)

// manualClock is a Scheduler that only fires when told to.
type manualClock struct {
	mu      sync.Mutex
	pending []*manualTimer
}

type manualTimer struct {
	clock   *manualClock
	d       time.Duration
	f       func()
	stopped bool
	fired   bool
}

func (m *manualClock) AfterFunc(d time.Duration, f func()) replay.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	t := &manualTimer{clock: m, d: d, f: f}
	m.pending = append(m.pending, t)
	return t
}

func (t *manualTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()
	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}

// live returns the timers neither stopped nor fired.
func (m *manualClock) live() []*manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []*manualTimer
	for _, t := range m.pending {
		if !t.stopped && !t.fired {
			out = append(out, t)
		}
	}
	return out
}

// last returns the most recently scheduled timer, live or not.
func (m *manualClock) last() *manualTimer {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.pending) == 0 {
		return nil
	}
	return m.pending[len(m.pending)-1]
}

// Fire runs the oldest live timer and reports whether there was one.
func (m *manualClock) Fire() bool {
	m.mu.Lock()
	var next *manualTimer
	for _, t := range m.pending {
		if !t.stopped && !t.fired {
			next = t
			break
		}
	}
	if next == nil {
		m.mu.Unlock()
		return false
	}
	next.fired = true
	m.mu.Unlock()
	next.f()
	return true
}

// FireAll runs live timers until none is left, at most limit times.
func (m *manualClock) FireAll(limit int) int {
	n := 0
	for n < limit && m.Fire() {
		n++
	}
	return n
}

func newController(t *testing.T, opts ...replay.Option) (*replay.Controller, *manualClock) {
	t.Helper()
	clock := &manualClock{}
	c, err := replay.New(append([]replay.Option{replay.WithScheduler(clock)}, opts...)...)
	require.NoError(t, err)
	return c, clock
}

// scenario builds a fresh instrumentation of one kind.
type scenario struct {
	name  string
	build func(t *testing.T) replay.Instrumentation
}

func scenarios() []scenario {
	return []scenario{
		{"two-pointer/found", func(t *testing.T) replay.Instrumentation {
			s, err := twopointer.New([]int{1, 2, 3, 4, 5, 6, 7, 8, 9}, 13)
			require.NoError(t, err)
			return s
		}},
		{"two-pointer/not-found", func(t *testing.T) replay.Instrumentation {
			s, err := twopointer.New([]int{1, 2, 3, 4, 5, 6, 7, 8, 9}, 100)
			require.NoError(t, err)
			return s
		}},
		{"fixed-window", func(t *testing.T) replay.Instrumentation {
			w, err := window.NewFixed([]int{2, 1, 5, 1, 3, 2}, 3)
			require.NoError(t, err)
			return w
		}},
		{"variable-window", func(t *testing.T) replay.Instrumentation {
			w, err := window.NewVariable([]int{3, 1, 2, 7, 4, 2, 1, 1, 5}, 8)
			require.NoError(t, err)
			return w
		}},
		{"frequency", func(t *testing.T) replay.Instrumentation {
			c, err := frequency.New([]int{2, 3, 2, 5, 3, 2, 8, 5})
			require.NoError(t, err)
			return c
		}},
		{"two-sum", func(t *testing.T) replay.Instrumentation {
			f, err := twosum.New([]int{3, 7, 2, 11, 5, 15}, 9)
			require.NoError(t, err)
			return f
		}},
		{"bfs", func(t *testing.T) replay.Instrumentation {
			tr, err := traversal.FromLevelOrder("1", "2", "3", "4", "5", "6", "7")
			require.NoError(t, err)
			w, err := traversal.BFS(tr)
			require.NoError(t, err)
			return w
		}},
		{"dfs", func(t *testing.T) replay.Instrumentation {
			tr, err := traversal.FromLevelOrder("1", "2", "3", "4", "5", "6", "7")
			require.NoError(t, err)
			w, err := traversal.DFS(tr)
			require.NoError(t, err)
			return w
		}},
		{"git", func(t *testing.T) replay.Instrumentation {
			sc, err := gitscenario.New(gitscenario.Command{
				ID:     "add",
				Name:   "git add",
				Before: gitscenario.State{WorkingDirectory: []gitscenario.File{{Name: "a.go", Status: gitscenario.StatusModified}}},
				After: gitscenario.State{
					WorkingDirectory: []gitscenario.File{{Name: "a.go", Status: gitscenario.StatusModified}},
					StagingArea:      []gitscenario.File{{Name: "a.go", Status: gitscenario.StatusModified}},
				},
				Steps: []gitscenario.Step{{Description: "scan"}, {Description: "move a.go"}, {Description: "staged"}},
			})
			require.NoError(t, err)
			return sc
		}},
		{"grid", func(t *testing.T) replay.Instrumentation {
			g, err := gridlabel.NewGrid([][]int{
				{1, 1, 0, 0, 0},
				{1, 1, 0, 0, 1},
				{0, 0, 0, 1, 1},
				{0, 0, 0, 0, 0},
				{1, 0, 0, 1, 1},
			}, gridlabel.DefaultGridOptions())
			require.NoError(t, err)
			return gridlabel.NewLabeler(g)
		}},
	}
}

// drain steps c forward until the boundary and returns frames 0..final.
func drain(t *testing.T, c *replay.Controller) []frame.Frame {
	t.Helper()
	first, err := c.Reset()
	require.NoError(t, err)
	out := []frame.Frame{first}
	for {
		f, err := c.StepForward()
		if err != nil {
			require.ErrorIs(t, err, replay.ErrBoundary)
			return out
		}
		out = append(out, f)
	}
}
