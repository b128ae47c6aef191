package catalog

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/stepwise/gitscenario"
	"github.com/katalvlaran/stepwise/replay"
)

//go:embed default.yaml
var defaultYAML []byte

// gitYAML holds the git command walkthroughs as a `commands: [...]`
// document.
//
//go:embed git.yaml
var gitYAML []byte

// GitPrefix names the scenario of a git command: GitPrefix + command id.
const GitPrefix = "git-"

// Catalog is an ordered, immutable set of validated scenarios.
type Catalog struct {
	scenarios []Scenario
	byName    map[string]int
}

type document struct {
	Scenarios []Scenario `yaml:"scenarios"`
}

// Parse decodes a `scenarios: [...]` document. Every scenario is built
// once so invalid inputs are rejected here rather than at load time.
func Parse(data []byte) (*Catalog, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	c := &Catalog{byName: make(map[string]int, len(doc.Scenarios))}
	for i, s := range doc.Scenarios {
		if s.Name == "" {
			return nil, fmt.Errorf("%w: name of scenario #%d", ErrMissingField, i)
		}
		if _, dup := c.byName[s.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, s.Name)
		}
		if _, err := Build(s); err != nil {
			return nil, err
		}
		c.byName[s.Name] = len(c.scenarios)
		c.scenarios = append(c.scenarios, s)
	}

	return c, nil
}

// Load reads and parses the catalog file at path.
func Load(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}

	return Parse(data)
}

// Default returns the embedded catalog of reference scenarios followed by
// the embedded git commands.
func Default() (*Catalog, error) {
	c, err := Parse(defaultYAML)
	if err != nil {
		return nil, err
	}
	cmds, err := gitscenario.ParseCommands(gitYAML)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return c.WithCommands(cmds)
}

// LoadCommands reads a `commands: [...]` file of git walkthroughs and
// returns c extended by them.
func (c *Catalog) LoadCommands(path string) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	cmds, err := gitscenario.ParseCommands(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return c.WithCommands(cmds)
}

// WithCommands returns a new catalog holding the scenarios of c plus one
// git-scenario entry per command, named GitPrefix + id. c is unchanged.
func (c *Catalog) WithCommands(cmds []gitscenario.Command) (*Catalog, error) {
	out := &Catalog{
		scenarios: append(make([]Scenario, 0, len(c.scenarios)+len(cmds)), c.scenarios...),
		byName:    make(map[string]int, len(c.scenarios)+len(cmds)),
	}
	for name, i := range c.byName {
		out.byName[name] = i
	}
	for _, cmd := range cmds {
		s := Scenario{Name: GitPrefix + cmd.ID, Kind: gitscenario.Kind, Title: cmd.Name, Git: &cmd}
		if _, dup := out.byName[s.Name]; dup {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateName, s.Name)
		}
		if _, err := Build(s); err != nil {
			return nil, err
		}
		out.byName[s.Name] = len(out.scenarios)
		out.scenarios = append(out.scenarios, s)
	}

	return out, nil
}

// Len returns the number of scenarios.
func (c *Catalog) Len() int { return len(c.scenarios) }

// List returns the scenarios in declaration order.
func (c *Catalog) List() []Scenario {
	return append([]Scenario(nil), c.scenarios...)
}

// Lookup returns the scenario called name.
func (c *Catalog) Lookup(name string) (Scenario, bool) {
	i, ok := c.byName[name]
	if !ok {
		return Scenario{}, false
	}

	return c.scenarios[i], true
}

// Build returns a fresh instrumentation for the scenario called name.
func (c *Catalog) Build(name string) (replay.Instrumentation, error) {
	s, ok := c.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownScenario, name)
	}

	return Build(s)
}
