// Package gitscenario replays declarative git-command scenarios.
//
// A Command stores only the repository state before and after the command
// plus the narrated steps in between; nothing is derived. A Scenario turns
// it into frames: frame 0 shows the before state, each step gets its own
// frame carrying the step text over the before state, and the last frame
// shows the after state. Every frame is a function of its index alone, so
// a Scenario is random-seekable.
//
// Commands are declared in YAML:
//
//	id: commit
//	name: git commit
//	code: git commit -m "Update styling"
//	before:
//	  stagingArea: [{name: index.html, status: modified}]
//	  localRepository:
//	    branches: [{name: main, commitHash: a1b2c3d, active: true}]
//	    commits:  [{hash: a1b2c3d, message: Initial commit, branch: main}]
//	  currentBranch: main
//	  head: a1b2c3d
//	after: ...
//	steps:
//	  - {description: Reading staged files..., animation: highlight}
package gitscenario
