package screens

import (
	"strings"
	"time"

	"github.com/google/uuid"
	perrors "github.com/jrsteele09/cds-portal/internal/errors"
)

// TaskStatus is the state of a to-do item.
type TaskStatus string

const (
	StatusPending   TaskStatus = "pending"
	StatusCompleted TaskStatus = "completed"
)

// Task is one to-do item. Tasks live only as long as the screen.
type Task struct {
	ID          string
	Title       string
	Status      TaskStatus
	CreatedAt   time.Time
	CompletedAt *time.Time
}

func (t Task) Done() bool {
	return t.Status == StatusCompleted
}

type ToDoCallbacks struct {
	OnBack func()
}

// ToDo is the to-do list. Its back action always targets the Welcome screen.
type ToDo struct {
	callbacks ToDoCallbacks
	now       func() time.Time
	tasks     []Task
	notice    Notice
}

func NewToDo(callbacks ToDoCallbacks, now func() time.Time) *ToDo {
	if now == nil {
		now = time.Now
	}
	return &ToDo{callbacks: callbacks, now: now}
}

// Add appends a pending task.
func (s *ToDo) Add(title string) (Task, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		s.notice = failure(MsgFillAllFields)
		return Task{}, perrors.Wrapf(perrors.ErrMissingFields, "[ToDo Add]")
	}
	task := Task{
		ID:        uuid.NewString(),
		Title:     title,
		Status:    StatusPending,
		CreatedAt: s.now(),
	}
	s.tasks = append(s.tasks, task)
	s.notice = Notice{}
	return task, nil
}

// Toggle flips a task between pending and completed.
func (s *ToDo) Toggle(id string) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}
	t := &s.tasks[i]
	if t.Done() {
		t.Status = StatusPending
		t.CompletedAt = nil
		return nil
	}
	now := s.now()
	t.Status = StatusCompleted
	t.CompletedAt = &now
	return nil
}

func (s *ToDo) Delete(id string) error {
	i, err := s.index(id)
	if err != nil {
		return err
	}
	s.tasks = append(s.tasks[:i], s.tasks[i+1:]...)
	return nil
}

func (s *ToDo) Back() {
	call(s.callbacks.OnBack)
}

func (s *ToDo) index(id string) (int, error) {
	for i, t := range s.tasks {
		if t.ID == id {
			return i, nil
		}
	}
	return -1, perrors.Wrapf(perrors.ErrNotFound, "[ToDo] task %q", id)
}

type ToDoView struct {
	Tasks     []Task
	Remaining int
	Notice    Notice
}

func (s *ToDo) View() ToDoView {
	v := ToDoView{Tasks: make([]Task, len(s.tasks)), Notice: s.notice}
	copy(v.Tasks, s.tasks)
	for _, t := range s.tasks {
		if !t.Done() {
			v.Remaining++
		}
	}
	return v
}
