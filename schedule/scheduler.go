package schedule

import (
	"context"
	"log/slog"
)

// Result is the continuation signal returned by a task step.
type Result int

const (
	// Done ends the task. It is the zero value.
	Done Result = iota

	// Continue asks for another step on the next tick.
	Continue
)

// String returns "done" or "continue".
func (r Result) String() string {
	if r == Continue {
		return "continue"
	}
	return "done"
}

// Task is a resumable unit of work. Step performs one bounded slice of it.
type Task interface {
	Step() Result
}

// TaskFunc adapts a function to Task.
type TaskFunc func() Result

// Step calls f.
func (f TaskFunc) Step() Result { return f() }

type job struct {
	name      string
	task      Task
	cancelled bool
}

// Scheduler steps named tasks once per tick, in registration order.
type Scheduler struct {
	jobs   []*job
	byName map[string]*job
	log    *slog.Logger
}

// Option configures a Scheduler.
type Option func(*Scheduler)

// WithLogger sets the logger for scheduling events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Scheduler) {
		if l != nil {
			s.log = l
		}
	}
}

// New creates an empty scheduler.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		byName: make(map[string]*job),
		log:    slog.New(discard{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Schedule registers task under name. A task already registered under name
// is replaced without being stepped again; callers that care cancel first.
func (s *Scheduler) Schedule(name string, task Task) {
	if old, ok := s.byName[name]; ok {
		s.log.Debug("job replaced", "job", name)
		s.remove(old)
	}
	j := &job{name: name, task: task}
	s.jobs = append(s.jobs, j)
	s.byName[name] = j
	s.log.Debug("job scheduled", "job", name)
}

// Cancel removes the task registered under name. It is a no-op when no
// such task exists. A cancelled task is never stepped again, even later in
// the tick that is currently running.
func (s *Scheduler) Cancel(name string) {
	j, ok := s.byName[name]
	if !ok {
		return
	}
	s.remove(j)
	s.log.Debug("job cancelled", "job", name)
}

// Has reports whether a task is registered under name.
func (s *Scheduler) Has(name string) bool {
	_, ok := s.byName[name]
	return ok
}

// Len returns the number of registered tasks.
func (s *Scheduler) Len() int { return len(s.jobs) }

// Tick steps every registered task once and returns the number of steps
// run. Tasks scheduled during the tick are first stepped on the next one.
func (s *Scheduler) Tick() int {
	jobs := append([]*job(nil), s.jobs...)
	steps := 0
	for _, j := range jobs {
		if j.cancelled {
			continue
		}
		r := j.task.Step()
		steps++
		if r == Done && !j.cancelled {
			s.remove(j)
			s.log.Debug("job done", "job", j.name)
		}
	}
	return steps
}

// Drain ticks until no task is left or maxTicks ticks have run (no limit
// when maxTicks <= 0). It returns the number of ticks.
func (s *Scheduler) Drain(maxTicks int) int {
	ticks := 0
	for s.Len() > 0 && (maxTicks <= 0 || ticks < maxTicks) {
		s.Tick()
		ticks++
	}
	return ticks
}

func (s *Scheduler) remove(j *job) {
	j.cancelled = true
	if s.byName[j.name] == j {
		delete(s.byName, j.name)
	}
	for i, o := range s.jobs {
		if o == j {
			s.jobs = append(s.jobs[:i], s.jobs[i+1:]...)
			break
		}
	}
}

// discard is a slog.Handler that drops every record.
type discard struct{}

func (discard) Enabled(context.Context, slog.Level) bool  { return false }
func (discard) Handle(context.Context, slog.Record) error { return nil }
func (d discard) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discard) WithGroup(string) slog.Handler           { return d }
