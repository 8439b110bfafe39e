package machine

import (
	"context"
	"errors"
)

// ErrQueueFull is returned when the control channel has no room.
var ErrQueueFull = errors.New("transport control queue full")

// Machine is the caller-side handle to a running transport.
type Machine struct {
	Profile Profile

	cmds     chan<- Command
	progress *Progress
}

// NewMachine creates a Machine that controls t. The transport itself
// must be driven separately, typically with `go t.Run()`.
func NewMachine(p Profile, t *Transport) *Machine {
	return &Machine{
		Profile:  p,
		cmds:     t.Commands(),
		progress: t.Progress(),
	}
}

// Progress returns the latest transport report.
func (m *Machine) Progress() Report { return m.progress.Load() }

// Changed returns a channel closed on the next progress update.
func (m *Machine) Changed() <-chan struct{} { return m.progress.Changed() }

// Control queues cmd, blocking until there is room or ctx is done.
func (m *Machine) Control(ctx context.Context, cmd Command) error {
	select {
	case m.cmds <- cmd:
		return nil
	default:
	}

	select {
	case m.cmds <- cmd:
		return nil
	case <-ctx.Done():
		return ErrQueueFull
	}
}

// Run replaces whatever is queued with lines and starts sending.
func (m *Machine) Run(ctx context.Context, lines []string) error {
	return m.Control(ctx, Send(lines))
}
