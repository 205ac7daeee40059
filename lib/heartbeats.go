package lib

import (
	"log/slog"
	"time"
)

// Heartbeats periodically logs that a long running step is still in progress.
type Heartbeats struct {
	logger    *slog.Logger
	startTime time.Time
	// [initialDelay] - The time to wait before the first heartbeat.
	initialDelay time.Duration
	// [interval] - The time between heartbeats after the first one.
	interval time.Duration

	step  string
	attrs []any
}

func NewHeartbeats(logger *slog.Logger, initialDelay, interval time.Duration, step string, attrs ...any) *Heartbeats {
	return &Heartbeats{
		logger:       logger,
		initialDelay: initialDelay,
		interval:     interval,
		step:         step,
		attrs:        attrs,
	}
}

// Start begins logging in the background, the returned func stops it.
func (h *Heartbeats) Start() func() {
	h.startTime = time.Now()
	done := make(chan struct{})
	go h.run(done)
	return func() {
		close(done)
	}
}

func (h *Heartbeats) run(done <-chan struct{}) {
	timer := time.NewTimer(h.initialDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
	case <-done:
		return
	}

	h.beat()
	ticker := time.NewTicker(h.interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			h.beat()
		}
	}
}

func (h *Heartbeats) beat() {
	args := append([]any{slog.String("step", h.step), slog.Duration("elapsed", time.Since(h.startTime))}, h.attrs...)
	h.logger.Info("Still working", args...)
}
