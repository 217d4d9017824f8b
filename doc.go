// Package algoviz animates classic data structures and algorithms step by
// step, for a 3D renderer that draws whatever snapshots it is fed.
//
// 🚀 What is algoviz?
//
//	A set of independent animated-operation engines that share one shape:
//		• an in-memory structure
//		• the discrete steps of the classic algorithm
//		• a playback loop that moves, colors and highlights nodes with timed pauses
//
// Engines:
//
//	linkedlist/ singly, doubly and circular lists (insert/delete at head or tail)
//	bst/        binary search tree: insert, delete, search, traversals
//	rbtree/     red-black tree with animated recoloring and rotations
//	explorer/   BFS and DFS over an editable graph (core/, bfs/, dfs/, builder/)
//	sorting/    bubble, selection, insertion, merge and quick sort as replayable steps
//
// Shared plumbing:
//
//	anim/    Pacer (pause, resume, speed), busy Guard and the frame Sink
//	geom/    vectors, easing and tree layout
//	feed/    websocket hub that coalesces frames per topic
//	metrics/ prometheus counters for frames, notices and commands
//	server/  command dispatch over /ws, plus /metrics and /healthz
//
// ✨ Guarantees
//
//   - One animation per engine at a time; a second request is rejected with anim.ErrBusy.
//   - Every operation takes a context and stops at its next pause when cancelled.
//   - Tree invariants hold after every operation, stopped or not.
//
// Quick start:
//
//	go run ./cmd/algoviz serve
//	go run ./cmd/algoviz tree --kind rb 10 20 30 15
package algoviz
