// Package linkedlist implements the animated singly, doubly and
// singly-circular linked-list engines.
//
// All three variants keep their nodes in one ordered slice; next/prev arrows
// are derived from positions when a Snapshot is taken. The circular variant
// additionally walks every node (highlighting each for TraversalDelay) before
// any insert or delete, to show the cost of finding the tail whose
// wrap-around pointer must be updated.
//
// Errors:
//
//   - ErrEmpty      delete on an empty list (no mutation).
//   - ErrFull       insert into a list of MaxLength nodes.
//   - anim.ErrBusy  any operation while another is in flight.
package linkedlist
