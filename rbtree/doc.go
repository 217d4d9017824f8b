// Package rbtree implements the animated red-black tree engine.
//
// Nodes live in an index arena. Slot 0 is the BLACK nil leaf shared by every
// empty child link, so delete-fixup handles a nil x like any other node.
//
// Every recolor and rotation is a separate visible step: the engine applies
// it, recomputes the top-down layout, captions the case ("uncle 20 is RED:
// recolor") and pauses on the shared anim.Pacer.
//
// Insert descends like a plain BST, attaches a RED leaf and runs the classic
// insert-fixup (recolor under a RED uncle, otherwise rotate the inner child
// outward and rotate at the grandparent). Delete transplants the node or its
// in-order successor and, when a BLACK node was removed, runs the four-case
// delete-fixup.
//
// Check verifies the red-black invariants, BST ordering and parent links. A
// rotation without the required child, or a missing sibling during
// delete-fixup, panics with an assertion failure.
package rbtree
