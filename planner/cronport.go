package planner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Deliver is invoked when a scheduled notification fires.
type Deliver func(userID string, n Notification)

// LocalPort is an in-process device port: repeating descriptors become
// daily cron jobs and one-shots become timers, both delivering through an
// injected callback. It stands in for the device notification surface
// when the backend itself drives reminder delivery (e.g. web push).
type LocalPort struct {
	userID  string
	runner  *cron.Cron
	deliver Deliver

	mu      sync.Mutex
	pending map[int]*scheduledEntry
}

type scheduledEntry struct {
	notification Notification
	cronID       cron.EntryID
	timer        *time.Timer
}

// PortRegistry hands out one LocalPort per user off a shared cron runner.
type PortRegistry struct {
	runner  *cron.Cron
	deliver Deliver

	mu    sync.Mutex
	ports map[string]*LocalPort
}

func NewPortRegistry(deliver Deliver) *PortRegistry {
	runner := cron.New(cron.WithLocation(time.Local))
	runner.Start()
	return &PortRegistry{
		runner:  runner,
		deliver: deliver,
		ports:   make(map[string]*LocalPort),
	}
}

// PortFor returns the user's port, creating it on first use.
func (r *PortRegistry) PortFor(userID string) Port {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.ports[userID]; ok {
		return p
	}
	p := &LocalPort{
		userID:  userID,
		runner:  r.runner,
		deliver: r.deliver,
		pending: make(map[int]*scheduledEntry),
	}
	r.ports[userID] = p
	return p
}

// Stop halts the shared cron runner and waits for running jobs.
func (r *PortRegistry) Stop() {
	<-r.runner.Stop().Done()
}

// CheckPermissions always grants: an in-process port has nothing to ask.
func (p *LocalPort) CheckPermissions(ctx context.Context) (PermissionState, error) {
	return PermissionGranted, nil
}

func (p *LocalPort) RequestPermissions(ctx context.Context) (PermissionState, error) {
	return PermissionGranted, nil
}

// CreateChannel is a no-op; channels are a mobile platform concept.
func (p *LocalPort) CreateChannel(ctx context.Context, ch Channel) error {
	return nil
}

func (p *LocalPort) Pending(ctx context.Context) ([]Notification, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]Notification, 0, len(p.pending))
	for _, entry := range p.pending {
		out = append(out, entry.notification)
	}
	return out, nil
}

func (p *LocalPort) Cancel(ctx context.Context, ids []int) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, id := range ids {
		p.remove(id)
	}
	return nil
}

func (p *LocalPort) Schedule(ctx context.Context, notifications []Notification) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, n := range notifications {
		// Same-id re-schedules replace the previous registration.
		p.remove(n.ID)
		entry := &scheduledEntry{notification: n}
		switch {
		case n.Schedule.At != nil:
			entry.timer = p.oneShot(n)
		case n.Schedule.On != nil && n.Schedule.Repeats:
			spec := fmt.Sprintf("%d %d * * *", n.Schedule.On.Minute, n.Schedule.On.Hour)
			cronID, err := p.runner.AddFunc(spec, func() { p.deliver(p.userID, n) })
			if err != nil {
				return fmt.Errorf("registering repeating notification %d: %w", n.ID, err)
			}
			entry.cronID = cronID
		default:
			return fmt.Errorf("notification %d has no trigger", n.ID)
		}
		p.pending[n.ID] = entry
	}
	return nil
}

func (p *LocalPort) oneShot(n Notification) *time.Timer {
	delay := time.Until(*n.Schedule.At)
	if delay < 0 {
		delay = 0
	}
	var t *time.Timer
	t = time.AfterFunc(delay, func() {
		p.deliver(p.userID, n)
		p.mu.Lock()
		// Only clear the entry if it still belongs to this timer; a
		// reschedule may have replaced it in the meantime.
		if entry, ok := p.pending[n.ID]; ok && entry.timer == t {
			delete(p.pending, n.ID)
		}
		p.mu.Unlock()
	})
	return t
}

// remove drops an entry and releases its trigger. Caller holds p.mu.
func (p *LocalPort) remove(id int) {
	entry, ok := p.pending[id]
	if !ok {
		return
	}
	if entry.timer != nil {
		entry.timer.Stop()
	}
	if entry.cronID != 0 {
		p.runner.Remove(entry.cronID)
	}
	delete(p.pending, id)
}
