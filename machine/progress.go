package machine

import (
	"errors"
	"strings"
	"sync"
)

// Status is the state of the transport.
type Status int

const (
	StatusWaiting Status = iota
	StatusRunning
	StatusPaused
	StatusStopped
	StatusCancelling
)

func (s Status) String() string {
	switch s {
	case StatusWaiting:
		return "waiting"
	case StatusRunning:
		return "running"
	case StatusPaused:
		return "paused"
	case StatusStopped:
		return "stopped"
	case StatusCancelling:
		return "cancelling"
	}
	return "unknown"
}

func (s Status) MarshalText() ([]byte, error) { return []byte(s.String()), nil }

func (s *Status) UnmarshalText(data []byte) error {
	for v := StatusWaiting; v <= StatusCancelling; v++ {
		if strings.EqualFold(v.String(), string(data)) {
			*s = v
			return nil
		}
	}
	return errors.New("unknown transport status: " + string(data))
}

// Report is a snapshot of transport progress.
type Report struct {
	// Remaining is the number of lines not yet written.
	Remaining int    `json:"remaining"`
	Status    Status `json:"status"`

	// Aborted is set when the last job was abandoned after an
	// unacknowledged line, until the next job is sent.
	Aborted bool `json:"aborted,omitempty"`
}

// Progress holds the most recent Report. Storing never blocks and
// readers only ever see the latest value.
type Progress struct {
	mx      sync.Mutex
	last    Report
	changed chan struct{}
}

func NewProgress() *Progress {
	return &Progress{changed: make(chan struct{})}
}

// Store replaces the current report and wakes any waiting readers.
func (p *Progress) Store(r Report) {
	p.mx.Lock()
	p.last = r
	close(p.changed)
	p.changed = make(chan struct{})
	p.mx.Unlock()
}

// Load returns the current report.
func (p *Progress) Load() Report {
	p.mx.Lock()
	defer p.mx.Unlock()
	return p.last
}

// Changed returns a channel that is closed on the next Store.
func (p *Progress) Changed() <-chan struct{} {
	p.mx.Lock()
	defer p.mx.Unlock()
	return p.changed
}
