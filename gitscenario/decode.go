package gitscenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

type document struct {
	Commands []Command `yaml:"commands"`
}

// ParseCommands decodes a YAML document of the form `commands: [...]`.
// Unknown fields, missing ids and duplicate ids are rejected.
func ParseCommands(data []byte) ([]Command, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var doc document
	if err := dec.Decode(&doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}
	seen := make(map[string]bool, len(doc.Commands))
	for i, c := range doc.Commands {
		if c.ID == "" {
			return nil, fmt.Errorf("%w: command #%d", ErrMissingID, i)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, c.ID)
		}
		seen[c.ID] = true
	}

	return doc.Commands, nil
}
