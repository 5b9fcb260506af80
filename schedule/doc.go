// Package schedule runs resumable tasks one bounded step per tick.
//
// A [Scheduler] holds named tasks. An external frame loop calls
// [Scheduler.Tick] once per frame; each tick steps every live task once. A
// task keeps its own progress and returns [Continue] to be stepped again on
// the next tick or [Done] to be removed.
//
// Scheduling is cooperative and single-goroutine: a Scheduler is not safe
// for concurrent use. [Driver] is a paced frame loop for programs without
// one of their own.
package schedule
