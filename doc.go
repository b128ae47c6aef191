// Package stepwise is a deterministic step-replay engine for algorithm
// visualizers: instrumented algorithms emit immutable frames, and a replay
// controller moves a session through them (play, pause, step, seek, reset)
// at an adjustable speed.
//
// What is in the box?
//
//	frame/        Frame, Variable, Container and the frame Builder
//	twopointer/   two pointers on a sorted array (random-seekable)
//	window/       fixed window (random-seekable) and variable window
//	frequency/    hash-map frequency count (reversible)
//	twosum/       hash-map two-sum on an unsorted array (reversible)
//	traversal/    BFS level order and DFS pre-order over a tree
//	gridlabel/    island counting by DFS flood fill, 4- or 8-connected
//	gitscenario/  declarative git-command walkthroughs
//	replay/       the Controller and its three stepping strategies
//	catalog/      named scenarios declared in YAML
//	httpapi/      JSON and server-sent events over chi
//	kvstore/      get/set/clear store, in memory or SQLite
//	ratelimit/    sliding per-minute and per-day request caps
//	apikey/       credential storage
//	config/       STEPWISE_* environment configuration
//	cmd/stepwise  the server binary
//
// Frame flow:
//
//	Instrumentation ──Next/FrameAt/Undo──▶ cursor ──▶ Controller ──▶ Observer
//	                                                      ▲
//	                          Scheduler.AfterFunc ────────┘ (tick, gen)
//
// Every instrumentation produces frame 0 as its initial state and marks its
// last frame Final. Random-seekable ones compute any frame from its index;
// reversible ones undo the last step exactly; the rest are cached by the
// controller as they are produced.
//
// Quick start:
//
//	c, _ := replay.New()
//	s, _ := twopointer.New([]int{1, 2, 3, 4, 5, 6, 7, 8, 9}, 13)
//	c.Load(s)
//	c.Play() // one frame per second at speed 1.0
package stepwise
