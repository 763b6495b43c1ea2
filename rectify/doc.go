// Package rectify nudges an already-built search path so that its last
// configuration gets closer to the next target pixel, without changing any
// pixel the path has visited.
//
// A unit rotation of arm k is "inserted" into an earlier valid step either by
// cancelling an opposite rotation of arm k there (and letting a smaller arm
// rotate instead) or by adding it while a smaller arm stops rotating. The
// substitution is propagated to every later configuration and accepted only
// if all their tips stay where they were. Steps stay valid and the scan stops
// at the first stored jump.
//
// Complexity: InsertMove is O(n·k·n) in the worst case for a suffix of n
// valid steps; in practice a substitution is found or rejected within the
// last few steps.
package rectify
