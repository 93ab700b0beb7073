package browser

import (
	"sync"

	"sentinel/task"
)

// TaskRunner drains one tab's work queue on its own goroutine so page loads
// never block the UI thread.
type TaskRunner struct {
	tasks     []*task.Task
	condition *sync.Cond
	needsQuit bool
}

func NewTaskRunner() *TaskRunner {
	return &TaskRunner{
		tasks:     make([]*task.Task, 0),
		condition: sync.NewCond(&sync.Mutex{}),
	}
}

func (t *TaskRunner) ScheduleTask(tsk *task.Task) {
	t.condition.L.Lock()
	t.tasks = append(t.tasks, tsk)
	t.condition.Broadcast()
	t.condition.L.Unlock()
}

func (t *TaskRunner) ClearPendingTasks() {
	t.condition.L.Lock()
	t.tasks = t.tasks[:0]
	t.condition.L.Unlock()
}

func (t *TaskRunner) Run() {
	for {
		t.condition.L.Lock()
		needsQuit := t.needsQuit
		t.condition.L.Unlock()
		if needsQuit {
			return
		}

		var tsk *task.Task
		t.condition.L.Lock()
		if len(t.tasks) > 0 {
			tsk = t.tasks[0]
			t.tasks = t.tasks[1:]
		}
		t.condition.L.Unlock()
		if tsk != nil {
			tsk.Run()
		}

		t.condition.L.Lock()
		if len(t.tasks) == 0 && !t.needsQuit {
			t.condition.Wait()
		}
		t.condition.L.Unlock()
	}
}

func (t *TaskRunner) StartThread() {
	go t.Run()
}

func (t *TaskRunner) SetNeedsQuit() {
	t.condition.L.Lock()
	t.needsQuit = true
	t.condition.Broadcast()
	t.condition.L.Unlock()
}
