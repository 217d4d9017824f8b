// Package bst implements the animated binary-search-tree engine.
//
// What
//
//   - Insert, Delete, Search and Traverse (pre/in/post-order) descend the tree
//     one node at a time, highlighting the node and captioning the comparison
//     before pausing on the shared anim.Pacer.
//   - Positions are recomputed top-down after every structural change, so the
//     tree always renders as a balanced-looking layout (geom.TreeLayout).
//   - Delete handles leaf, one-child (splice, child inherits the display
//     position) and two-children (copy the in-order successor, then delete it
//     from the right subtree) cases.
//
// Errors
//
//   - ErrDuplicate   insert of a value already present (no mutation).
//   - ErrNotFound    delete of an absent value (no mutation).
//   - anim.ErrBusy   any operation while another is in flight.
//
// Cancellation
//
//	A cancelled context aborts the descent. Once a structural change has
//	started the operation finishes without further pauses.
package bst
