package gitscenario

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/stepwise/frame"
)

// Scenario is the seekable frame view of a Command.
type Scenario struct {
	cmd    Command
	total  int
	cursor int
}

// New validates cmd and returns its Scenario. A command without steps still
// yields two frames: before and after.
func New(cmd Command) (*Scenario, error) {
	if strings.TrimSpace(cmd.ID) == "" {
		return nil, fmt.Errorf("%w: %w", frame.ErrConfiguration, ErrMissingID)
	}
	total := len(cmd.Steps) + 1
	if len(cmd.Steps) == 0 {
		total = 2
	}

	return &Scenario{cmd: cmd, total: total}, nil
}

// Kind returns the catalog name.
func (s *Scenario) Kind() string { return Kind }

// Command returns the underlying command.
func (s *Scenario) Command() Command { return s.cmd }

// Listing shows the command lines between the before and after markers.
// The first command line carries LineStep.
func (s *Scenario) Listing() []frame.Line {
	out := []frame.Line{{ID: LineBefore, Code: "# before"}}
	code := s.cmd.Code
	if code == "" {
		code = s.cmd.Name
	}
	for i, l := range strings.Split(code, "\n") {
		id := LineStep
		if i > 0 {
			id = fmt.Sprintf("code-%d", i)
		}
		out = append(out, frame.Line{ID: id, Code: l})
	}

	return append(out, frame.Line{ID: LineAfter, Code: "# after"})
}

// Len returns the number of frames.
func (s *Scenario) Len() int { return s.total }

// Next returns the frame following the last one returned by Next.
func (s *Scenario) Next() (frame.Frame, error) {
	if s.cursor >= s.total {
		return frame.Frame{}, frame.ErrExhausted
	}
	f, err := s.FrameAt(s.cursor)
	if err != nil {
		return frame.Frame{}, err
	}
	s.cursor++

	return f, nil
}

// Reset rewinds Next to frame 0.
func (s *Scenario) Reset() { s.cursor = 0 }

// FrameAt renders frame i.
func (s *Scenario) FrameAt(i int) (frame.Frame, error) {
	if i < 0 || i >= s.total {
		return frame.Frame{}, fmt.Errorf("%w: %d not in [0,%d)", frame.ErrOutOfRange, i, s.total)
	}
	last := s.total - 1
	switch {
	case i == 0:
		narrative := fmt.Sprintf("Before %s", s.cmd.Name)
		if s.cmd.Description != "" {
			narrative += ": " + s.cmd.Description
		}
		return s.render(i, LineBefore, narrative, "", s.cmd.Before).Build(), nil

	case i == last:
		narrative := s.cmd.Explanation
		animation := ""
		if n := len(s.cmd.Steps); n > 0 {
			narrative = s.cmd.Steps[n-1].Description
			animation = s.cmd.Steps[n-1].Animation
		}
		if changes := Diff(s.cmd.Before, s.cmd.After); len(changes) > 0 {
			narrative += ". Changes: " + strings.Join(changes, "; ")
		}
		return s.render(i, LineAfter, narrative, animation, s.cmd.After).Final().Build(), nil

	default:
		st := s.cmd.Steps[i-1]
		return s.render(i, LineStep, st.Description, st.Animation, s.cmd.Before).Build(), nil
	}
}

func (s *Scenario) render(i int, line, narrative, animation string, st State) *frame.Builder {
	return frame.New(i, line, narrative).
		Var("step", i).
		Var("totalSteps", len(s.cmd.Steps)).
		Var("animation", animation).
		Var("currentBranch", st.CurrentBranch).
		Var("head", st.Head).
		Var("dangerous", s.cmd.Dangerous).
		List("warnings", s.cmd.Warnings).
		List("workingDirectory", files(st.WorkingDirectory)).
		List("stagingArea", files(st.StagingArea)).
		List("localBranches", branches(st.Local.Branches, st.CurrentBranch)).
		List("localCommits", commits(st.Local.Commits)).
		List("localTags", tags(st.Local.Tags)).
		List("remoteBranches", branches(st.Remote.Branches, "")).
		List("remoteCommits", commits(st.Remote.Commits))
}

func files(fs []File) []string {
	out := make([]string, 0, len(fs))
	for _, f := range fs {
		out = append(out, fmt.Sprintf("%s (%s)", f.Name, f.Status))
	}
	return out
}

func branches(bs []Branch, current string) []string {
	out := make([]string, 0, len(bs))
	for _, b := range bs {
		mark := ""
		if b.Active || (current != "" && b.Name == current) {
			mark = "*"
		}
		target := b.CommitHash
		if target == "" {
			target = "(no commits)"
		}
		out = append(out, fmt.Sprintf("%s%s -> %s", mark, b.Name, target))
	}
	return out
}

func commits(cs []Commit) []string {
	out := make([]string, 0, len(cs))
	for _, c := range cs {
		out = append(out, c.Hash+" "+c.Message)
	}
	return out
}

func tags(ts []Tag) []string {
	out := make([]string, 0, len(ts))
	for _, t := range ts {
		out = append(out, t.Name+" -> "+t.CommitHash)
	}
	return out
}
