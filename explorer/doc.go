// SPDX-License-Identifier: MIT

// Package explorer is the animated graph traversal engine. It owns a
// core.Graph, runs bfs.BFS and dfs.DFS with hooks that paint node and edge
// states, and publishes a Snapshot (graph, BFS queue, DFS stack, enter/exit
// history, visit order, caption) to an anim.Sink after every step.
//
// Traversals pause through the shared anim.Pacer and stop at the next
// suspension point once Stop is called or their context is cancelled.
// Graph edits go through the Explorer and are rejected with anim.ErrBusy
// while a traversal runs.
package explorer
