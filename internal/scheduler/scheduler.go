package scheduler

import (
	"log/slog"
	"sync"
	"time"

	"github.com/rocketscienceinc/tictactoe-chatbot/internal/entity"
)

// Handle is a one-shot scheduled callback. Cancel is idempotent and safe to
// call after the callback has already run.
type Handle struct {
	mu       sync.Mutex
	timer    *time.Timer
	fired    bool
	canceled bool
}

func (that *Handle) Cancel() {
	if that == nil {
		return
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	if that.fired || that.canceled {
		return
	}

	that.canceled = true
	that.timer.Stop()
}

// Canceled reports whether Cancel won the race against the timer.
func (that *Handle) Canceled() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.canceled
}

// Fired reports whether the callback was started.
func (that *Handle) Fired() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	return that.fired
}

func (that *Handle) claim() bool {
	that.mu.Lock()
	defer that.mu.Unlock()

	if that.canceled || that.fired {
		return false
	}

	that.fired = true

	return true
}

type Scheduler struct {
	logger *slog.Logger
}

func New(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		logger: logger.With("component", "scheduler"),
	}
}

// Schedule runs callback once after delay unless the handle is canceled first.
// The callback is responsible for serializing itself against other work on
// the same chat.
func (that *Scheduler) Schedule(name string, delay time.Duration, callback func()) entity.Cancelable {
	handle := &Handle{}

	handle.mu.Lock()
	handle.timer = time.AfterFunc(delay, func() {
		if !handle.claim() {
			return
		}

		defer func() {
			if err := recover(); err != nil {
				that.logger.Error("scheduled callback panicked", "name", name, "error", err)
			}
		}()

		that.logger.Debug("scheduled callback fired", "name", name)
		callback()
	})
	handle.mu.Unlock()

	return handle
}
