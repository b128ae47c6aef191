package gitscenario

import (
	"errors"
)

// Sentinel errors for command validation and decoding.
var (
	// ErrMissingID is returned for a command without an id.
	ErrMissingID = errors.New("gitscenario: command id is empty")

	// ErrDuplicateID is returned when two commands of one document share an id.
	ErrDuplicateID = errors.New("gitscenario: duplicate command id")

	// ErrDecode wraps YAML syntax and schema errors.
	ErrDecode = errors.New("gitscenario: cannot decode commands")
)

// Kind is the catalog name of this instrumentation.
const Kind = "git-scenario"

// Highlight line identifiers.
const (
	LineBefore = "before"
	LineStep   = "step"
	LineAfter  = "after"
)

// FileStatus is the state of a file in the working tree or the index.
type FileStatus string

// File statuses.
const (
	StatusUntracked  FileStatus = "untracked"
	StatusModified   FileStatus = "modified"
	StatusAdded      FileStatus = "added"
	StatusDeleted    FileStatus = "deleted"
	StatusRenamed    FileStatus = "renamed"
	StatusUnmodified FileStatus = "unmodified"
)

// File is one entry of the working directory or the staging area.
type File struct {
	Name   string     `yaml:"name" json:"name"`
	Status FileStatus `yaml:"status" json:"status"`
}

// Commit is one node of the history. Parents is set for merge commits.
type Commit struct {
	Hash    string   `yaml:"hash" json:"hash"`
	Message string   `yaml:"message" json:"message"`
	Parent  string   `yaml:"parent,omitempty" json:"parent,omitempty"`
	Parents []string `yaml:"parents,omitempty" json:"parents,omitempty"`
	Branch  string   `yaml:"branch" json:"branch"`
}

// Branch is a named ref pointing at a commit.
type Branch struct {
	Name       string `yaml:"name" json:"name"`
	CommitHash string `yaml:"commitHash" json:"commitHash"`
	Active     bool   `yaml:"active,omitempty" json:"active,omitempty"`
	Remote     bool   `yaml:"remote,omitempty" json:"remote,omitempty"`
}

// Tag is a fixed ref.
type Tag struct {
	Name       string `yaml:"name" json:"name"`
	CommitHash string `yaml:"commitHash" json:"commitHash"`
}

// Repository is the ref and commit graph of one side.
type Repository struct {
	Branches []Branch `yaml:"branches,omitempty" json:"branches,omitempty"`
	Commits  []Commit `yaml:"commits,omitempty" json:"commits,omitempty"`
	Tags     []Tag    `yaml:"tags,omitempty" json:"tags,omitempty"`
}

// State is the full picture shown before or after a command.
type State struct {
	WorkingDirectory []File     `yaml:"workingDirectory,omitempty" json:"workingDirectory,omitempty"`
	StagingArea      []File     `yaml:"stagingArea,omitempty" json:"stagingArea,omitempty"`
	Local            Repository `yaml:"localRepository" json:"localRepository"`
	Remote           Repository `yaml:"remoteRepository" json:"remoteRepository"`
	CurrentBranch    string     `yaml:"currentBranch" json:"currentBranch"`
	Head             string     `yaml:"head" json:"head"`
}

// Step is one narrated stage of a command.
type Step struct {
	Description string `yaml:"description" json:"description"`
	Animation   string `yaml:"animation,omitempty" json:"animation,omitempty"`
}

// Command is a declarative scenario.
type Command struct {
	ID          string   `yaml:"id" json:"id"`
	Name        string   `yaml:"name" json:"name"`
	Description string   `yaml:"description,omitempty" json:"description,omitempty"`
	Category    string   `yaml:"category,omitempty" json:"category,omitempty"`
	Explanation string   `yaml:"explanation,omitempty" json:"explanation,omitempty"`
	Code        string   `yaml:"code,omitempty" json:"code,omitempty"`
	Output      string   `yaml:"output,omitempty" json:"output,omitempty"`
	Dangerous   bool     `yaml:"dangerous,omitempty" json:"dangerous,omitempty"`
	Warnings    []string `yaml:"warnings,omitempty" json:"warnings,omitempty"`
	Before      State    `yaml:"before" json:"before"`
	After       State    `yaml:"after" json:"after"`
	Steps       []Step   `yaml:"steps,omitempty" json:"steps,omitempty"`
}
