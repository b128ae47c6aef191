package gitscenario

import (
	"fmt"
)

// Diff lists what a command changed, in a fixed order: current branch,
// HEAD, staging area, local refs and commits, then remote refs and commits.
// An empty result means the states are equivalent for display.
func Diff(before, after State) []string {
	var out []string
	if before.CurrentBranch != after.CurrentBranch {
		out = append(out, fmt.Sprintf("switched to branch %s", orNone(after.CurrentBranch)))
	}
	if before.Head != after.Head {
		out = append(out, fmt.Sprintf("HEAD %s -> %s", orNone(before.Head), orNone(after.Head)))
	}
	out = append(out, fileChanges("staged", "unstaged", before.StagingArea, after.StagingArea)...)
	out = append(out, repoChanges("local", before.Local, after.Local)...)
	out = append(out, repoChanges("remote", before.Remote, after.Remote)...)

	return out
}

func fileChanges(added, removed string, before, after []File) []string {
	var out []string
	prev := make(map[string]bool, len(before))
	for _, f := range before {
		prev[f.Name] = true
	}
	next := make(map[string]bool, len(after))
	for _, f := range after {
		next[f.Name] = true
		if !prev[f.Name] {
			out = append(out, added+" "+f.Name)
		}
	}
	for _, f := range before {
		if !next[f.Name] {
			out = append(out, removed+" "+f.Name)
		}
	}
	return out
}

func repoChanges(side string, before, after Repository) []string {
	var out []string

	refs := make(map[string]string, len(before.Branches))
	for _, b := range before.Branches {
		refs[b.Name] = b.CommitHash
	}
	kept := make(map[string]bool, len(after.Branches))
	for _, b := range after.Branches {
		kept[b.Name] = true
		old, ok := refs[b.Name]
		switch {
		case !ok:
			out = append(out, fmt.Sprintf("%s: new branch %s", side, b.Name))
		case old != b.CommitHash:
			out = append(out, fmt.Sprintf("%s: %s %s -> %s", side, b.Name, orNone(old), orNone(b.CommitHash)))
		}
	}
	for _, b := range before.Branches {
		if !kept[b.Name] {
			out = append(out, fmt.Sprintf("%s: deleted branch %s", side, b.Name))
		}
	}

	had := make(map[string]bool, len(before.Commits))
	for _, c := range before.Commits {
		had[c.Hash] = true
	}
	has := make(map[string]bool, len(after.Commits))
	for _, c := range after.Commits {
		has[c.Hash] = true
		if !had[c.Hash] {
			out = append(out, fmt.Sprintf("%s: new commit %s", side, c.Hash))
		}
	}
	for _, c := range before.Commits {
		if !has[c.Hash] {
			out = append(out, fmt.Sprintf("%s: dropped commit %s", side, c.Hash))
		}
	}

	return out
}

func orNone(s string) string {
	if s == "" {
		return "(none)"
	}
	return s
}
