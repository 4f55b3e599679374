package nav

// Scheduler runs a task after the current synchronous work, on the host's
// single-threaded loop.
type Scheduler interface {
	Defer(task func())
}

// SchedulerFunc adapts a function to Scheduler.
type SchedulerFunc func(task func())

// Defer calls f.
func (f SchedulerFunc) Defer(task func()) {
	f(task)
}

// Queue is a FIFO Scheduler drained by the host.
type Queue struct {
	tasks []func()
}

// Defer enqueues task.
func (q *Queue) Defer(task func()) {
	q.tasks = append(q.tasks, task)
}

// Pending returns the number of queued tasks.
func (q *Queue) Pending() int {
	return len(q.tasks)
}

// RunPending runs the tasks queued before the call and returns how many ran.
// Tasks deferred while running wait for the next call.
func (q *Queue) RunPending() int {
	tasks := q.tasks
	q.tasks = nil
	for _, task := range tasks {
		task()
	}
	return len(tasks)
}
