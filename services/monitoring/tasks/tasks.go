package tasks

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/AgroVault/AgroVault-Backend/services/monitoring/logging"
)

// Task is a named unit of background work. A zero interval means the
// task runs once; otherwise it recurs on the interval.
type Task struct {
	ID       string
	Name     string
	Fn       func(context.Context) error
	Interval time.Duration
	LastRun  time.Time
}

// TaskScheduler runs registered tasks on their intervals until stopped.
type TaskScheduler struct {
	tasks  map[string]*Task
	mu     sync.RWMutex
	ctx    context.Context
	cancel context.CancelFunc
	logger *logging.Logger
}

func NewTaskScheduler(logger *logging.Logger) *TaskScheduler {
	ctx, cancel := context.WithCancel(context.Background())
	return &TaskScheduler{
		tasks:  make(map[string]*Task),
		ctx:    ctx,
		cancel: cancel,
		logger: logger,
	}
}

func (ts *TaskScheduler) AddTask(id, name string, fn func(context.Context) error, interval time.Duration) (*Task, error) {
	ts.mu.Lock()
	defer ts.mu.Unlock()

	if _, exists := ts.tasks[id]; exists {
		return nil, fmt.Errorf("task with ID %s already exists", id)
	}

	task := &Task{
		ID:       id,
		Name:     name,
		Fn:       fn,
		Interval: interval,
	}

	ts.tasks[id] = task
	ts.logger.Info(fmt.Sprintf("Added task %s to scheduler", id))
	return task, nil
}

// ScheduleTask starts a task after the given delay, then keeps
// re-running it on its interval.
func (ts *TaskScheduler) ScheduleTask(id string, delay time.Duration) error {
	ts.mu.RLock()
	task, exists := ts.tasks[id]
	ts.mu.RUnlock()

	if !exists {
		return fmt.Errorf("task with ID %s not found", id)
	}

	ts.logger.Info(fmt.Sprintf("Scheduling task %s to run in %s", id, delay))

	go func() {
		timer := time.NewTimer(delay)
		defer timer.Stop()

		for {
			select {
			case <-ts.ctx.Done():
				ts.logger.Info(fmt.Sprintf("Task %s context cancelled", id))
				return
			case <-timer.C:
				if err := task.Fn(ts.ctx); err != nil {
					ts.logger.Error(fmt.Sprintf("Task %s failed: %v", task.Name, err))
				}

				ts.mu.Lock()
				task.LastRun = time.Now()
				ts.mu.Unlock()

				if task.Interval <= 0 {
					return
				}
				timer.Reset(task.Interval)
			}
		}
	}()

	return nil
}

// RunTask executes a task immediately, outside its schedule.
func (ts *TaskScheduler) RunTask(id string) error {
	ts.mu.RLock()
	task, exists := ts.tasks[id]
	ts.mu.RUnlock()

	if !exists {
		return fmt.Errorf("task with ID %s not found", id)
	}

	ts.logger.Info(fmt.Sprintf("Running task %s", id))
	go func() {
		if err := task.Fn(ts.ctx); err != nil {
			ts.logger.Error(fmt.Sprintf("Task %s failed: %v", task.Name, err))
		}
		ts.mu.Lock()
		task.LastRun = time.Now()
		ts.mu.Unlock()
	}()

	return nil
}

func (ts *TaskScheduler) Stop() {
	ts.cancel()
}
