package task

// Task is one unit of tab work, run off the UI thread at most once.
type Task struct {
	code func()
}

func New(code func()) *Task {
	return &Task{code: code}
}

func (t *Task) Run() {
	if t.code == nil {
		return
	}
	t.code()
	t.code = nil
}
