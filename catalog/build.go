package catalog

import (
	"fmt"

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

// Kinds lists every kind Build understands.
func Kinds() []string {
	return []string{
		twopointer.Kind,
		window.KindFixed,
		window.KindVariable,
		frequency.Kind,
		twosum.Kind,
		traversal.KindBFS,
		traversal.KindDFS,
		gridlabel.Kind,
		gitscenario.Kind,
	}
}

// Build returns a fresh instrumentation for s, positioned before frame 0.
// Every failure wraps frame.ErrConfiguration.
func Build(s Scenario) (replay.Instrumentation, error) {
	inst, err := build(s)
	if err != nil {
		return nil, fmt.Errorf("catalog: scenario %q: %w", s.Name, err)
	}

	return inst, nil
}

func build(s Scenario) (replay.Instrumentation, error) {
	switch s.Kind {
	case twopointer.Kind:
		return twopointer.New(s.Array, s.Target)

	case window.KindFixed:
		var opts []window.Option
		if s.ClampOversize {
			opts = append(opts, window.WithClampOversize())
		}
		return window.NewFixed(s.Array, s.Window, opts...)

	case window.KindVariable:
		return window.NewVariable(s.Array, s.Limit)

	case frequency.Kind:
		return frequency.New(s.Array)

	case twosum.Kind:
		return twosum.New(s.Array, s.Target)

	case traversal.KindBFS, traversal.KindDFS:
		t, err := s.tree()
		if err != nil {
			return nil, err
		}
		var opts []traversal.Option
		if s.Coalesce {
			opts = append(opts, traversal.WithCoalesce())
		}
		if s.MaxDepth != 0 {
			opts = append(opts, traversal.WithMaxDepth(s.MaxDepth))
		}
		if s.Kind == traversal.KindDFS {
			return traversal.DFS(t, opts...)
		}
		return traversal.BFS(t, opts...)

	case gridlabel.Kind:
		opts := gridlabel.DefaultGridOptions()
		switch s.Connectivity {
		case 0, 4:
		case 8:
			opts.Conn = gridlabel.Conn8
		default:
			return nil, fmt.Errorf("%w: connectivity %d, want 4 or 8", frame.ErrConfiguration, s.Connectivity)
		}
		if s.LandThreshold != 0 {
			opts.LandThreshold = s.LandThreshold
		}
		g, err := gridlabel.NewGrid(s.Grid, opts)
		if err != nil {
			return nil, err
		}
		return gridlabel.NewLabeler(g), nil

	case gitscenario.Kind:
		if s.Git == nil {
			return nil, fmt.Errorf("%w: %w: git", frame.ErrConfiguration, ErrMissingField)
		}
		return gitscenario.New(*s.Git)

	default:
		return nil, fmt.Errorf("%w: %w: %q", frame.ErrConfiguration, ErrUnknownKind, s.Kind)
	}
}

func (s Scenario) tree() (*traversal.Tree, error) {
	switch {
	case s.Tree == nil:
		return nil, fmt.Errorf("%w: %w: tree", frame.ErrConfiguration, ErrMissingField)
	case len(s.Tree.LevelOrder) > 0:
		return traversal.FromLevelOrder(s.Tree.LevelOrder...)
	default:
		return traversal.FromChildren(s.Tree.Root, s.Tree.Children)
	}
}
