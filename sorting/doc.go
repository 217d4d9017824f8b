// SPDX-License-Identifier: MIT

// Package sorting animates comparison sorts.
//
// Sorting happens in two stages. Generate runs bubble, selection,
// insertion, merge or quick sort on a private copy of the array and records
// every visible action as a Step that names elements by id. A Player then
// eases each step over StepFrames frames and commits the reordering only
// after its last frame, so a cancelled run never leaves an element between
// slots. Replay applies the same reordering without animation.
//
// Engine ties the two to an array loaded with Load or Randomize, the busy
// flag and an anim.Sink.
package sorting
