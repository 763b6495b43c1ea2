// Package checkpoint persists partial lifts in an embedded BadgerDB.
//
// A Record stores the raw best path of one engine (one configuration per tour
// point, jumps unexpanded) with its frontier and cumulative loss. Records are
// keyed by run id and label, so a later run can resume from the furthest
// partial path through search.Engine.LoadPartial.
package checkpoint
