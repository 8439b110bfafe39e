package machine

import (
	"bytes"
	"errors"
	"io"
	"log"
	"os"
	"strings"
	"time"
)

const (
	// DefaultQueueSize is the capacity of the control channel.
	DefaultQueueSize = 64

	haltByte = '!'
)

var ackToken = []byte("ok")

// errStopped ends the transport loop after a stop command.
var errStopped = errors.New("transport stopped")

// AckPolicy decides what happens when a line is not acknowledged in time.
type AckPolicy int

const (
	// AckSoft logs a warning and continues with the next line.
	AckSoft AckPolicy = iota
	// AckAbort logs an error and abandons the job.
	AckAbort
)

func (p AckPolicy) String() string {
	if p == AckAbort {
		return "abort"
	}
	return "soft"
}

// ParseAckPolicy parses "soft" or "abort".
func ParseAckPolicy(s string) (AckPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "soft":
		return AckSoft, nil
	case "abort":
		return AckAbort, nil
	}
	return 0, errors.New("unknown ack policy: " + s)
}

// TransportConfig configures a Transport. Zero values are replaced
// with defaults.
type TransportConfig struct {
	// TickInterval is the sleep between loop iterations.
	TickInterval time.Duration

	// AckAttempts is the number of reads made while waiting for `ok`,
	// with AckDelay between each.
	AckAttempts int
	AckDelay    time.Duration
	AckPolicy   AckPolicy

	QueueSize int

	Logger  *log.Logger
	Clock   Clock
	Metrics *Metrics
}

func (cfg TransportConfig) withDefaults() TransportConfig {
	if cfg.TickInterval == 0 {
		cfg.TickInterval = 10 * time.Millisecond
	}
	if cfg.AckAttempts <= 0 {
		cfg.AckAttempts = 50
	}
	if cfg.AckDelay == 0 {
		cfg.AckDelay = 20 * time.Millisecond
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = DefaultQueueSize
	}
	if cfg.Logger == nil {
		cfg.Logger = log.New(os.Stderr, "transport: ", log.LstdFlags)
	}
	if cfg.Clock == nil {
		cfg.Clock = realClock{}
	}
	if cfg.Metrics == nil {
		cfg.Metrics = NewMetrics(nil)
	}
	return cfg
}

// Transport owns a controller link and streams buffered lines to it,
// one per tick, waiting for an acknowledgement after each.
//
// All state belongs to the goroutine calling Run (or Tick); other
// goroutines interact only through Commands and Progress.
type Transport struct {
	link     Link
	cmds     chan Command
	progress *Progress
	cfg      TransportConfig
	log      *log.Logger

	status  Status
	aborted bool

	// buf holds pending lines in reverse order, so the next line is last.
	buf []string

	readBuf []byte
	resp    []byte
}

// NewTransport creates a Transport that takes ownership of link.
// The link must not be used by anything else afterwards.
func NewTransport(link Link, cfg TransportConfig) *Transport {
	cfg = cfg.withDefaults()
	t := &Transport{
		link:     link,
		cmds:     make(chan Command, cfg.QueueSize),
		progress: NewProgress(),
		cfg:      cfg,
		log:      cfg.Logger,
		status:   StatusWaiting,
		readBuf:  make([]byte, 256),
	}
	t.publish()
	return t
}

// Commands returns the control channel. It must stay open for as long
// as the transport is running.
func (t *Transport) Commands() chan<- Command { return t.cmds }

// Progress returns the progress observable.
func (t *Transport) Progress() *Progress { return t.progress }

// Status returns the current status. It is only safe to call from
// the goroutine driving the transport.
func (t *Transport) Status() Status { return t.status }

// Buffered returns the number of pending lines. It is only safe to call
// from the goroutine driving the transport.
func (t *Transport) Buffered() int { return len(t.buf) }

// Run drives the transport until a stop command is received.
//
// It returns ErrControlChannelClosed if the control channel is closed first.
func (t *Transport) Run() error {
	for {
		err := t.Tick()
		if err == errStopped {
			return nil
		}
		if err != nil {
			t.log.Println("ERROR:", err)
			return err
		}
		t.cfg.Clock.Sleep(t.cfg.TickInterval)
	}
}

// Tick handles at most one pending control message and, while running,
// sends at most one line.
func (t *Transport) Tick() error {
	if t.status == StatusStopped {
		return errStopped
	}

	select {
	case cmd, ok := <-t.cmds:
		if !ok {
			return ErrControlChannelClosed
		}
		t.handle(cmd)
	default:
	}

	switch t.status {
	case StatusStopped:
		return errStopped
	case StatusRunning:
		t.sendNext()
	}
	return nil
}

func (t *Transport) setStatus(s Status) {
	if s != t.status {
		t.log.Printf("status %s -> %s", t.status, s)
	}
	t.status = s
}

func (t *Transport) publish() {
	t.cfg.Metrics.Remaining.Set(float64(len(t.buf)))
	t.cfg.Metrics.Status.Set(float64(t.status))
	t.progress.Store(Report{Remaining: len(t.buf), Status: t.status, Aborted: t.aborted})
}

func (t *Transport) reset() {
	t.buf = nil
}

func (t *Transport) handle(cmd Command) {
	if t.status == StatusCancelling {
		switch cmd.Type {
		case CommandPause, CommandRun:
			t.log.Printf("WARN: ignoring %s while cancelling", cmd.Type)
			return
		}
	}

	switch cmd.Type {
	case CommandWait:
		t.reset()
		t.setStatus(StatusWaiting)
	case CommandSend:
		buf := make([]string, len(cmd.Lines))
		for i, ln := range cmd.Lines {
			buf[len(buf)-1-i] = ln
		}
		t.buf = buf
		t.aborted = false
		t.setStatus(StatusRunning)
	case CommandPause:
		t.setStatus(StatusPaused)
	case CommandRun:
		t.setStatus(StatusRunning)
	case CommandStop:
		t.reset()
		t.setStatus(StatusStopped)
	case CommandCancel:
		_, err := t.link.Write([]byte{haltByte})
		if err != nil {
			t.log.Println("ERROR: write halt:", err)
		}
		t.cfg.Metrics.Halts.Inc()
		t.setStatus(StatusCancelling)
	default:
		t.log.Printf("WARN: unknown command %d", cmd.Type)
		return
	}
	t.publish()
}

func (t *Transport) sendNext() {
	if len(t.buf) == 0 {
		t.setStatus(StatusWaiting)
		t.publish()
		return
	}

	line := t.buf[len(t.buf)-1]
	t.buf = t.buf[:len(t.buf)-1]

	_, err := io.WriteString(t.link, line+"\n")
	if err != nil {
		t.log.Printf("ERROR: write %q: %v", line, err)
		// keep the line so resuming sends it again
		t.buf = append(t.buf, line)
		t.cfg.Metrics.WriteFailures.Inc()
		t.setStatus(StatusPaused)
		t.publish()
		return
	}
	t.cfg.Metrics.LinesWritten.Inc()

	if !t.waitAck() {
		t.cfg.Metrics.AckTimeouts.Inc()
		if t.cfg.AckPolicy == AckAbort {
			t.log.Printf("ERROR: no ack for %q, aborting job with %d lines left", line, len(t.buf))
			t.reset()
			t.aborted = true
			t.setStatus(StatusWaiting)
			t.publish()
			return
		}
		t.log.Printf("WARN: no ack for %q after %d attempts", line, t.cfg.AckAttempts)
	}

	if len(t.buf) == 0 {
		t.setStatus(StatusWaiting)
	}
	t.publish()
}

// waitAck polls the link until the response contains `ok` or the
// attempts run out.
func (t *Transport) waitAck() bool {
	t.resp = t.resp[:0]
	for i := 0; i < t.cfg.AckAttempts; i++ {
		n, err := t.link.Read(t.readBuf)
		if n > 0 {
			t.resp = append(t.resp, t.readBuf[:n]...)
			if bytes.Contains(t.resp, ackToken) {
				if bytes.Contains(t.resp, []byte("error")) {
					t.log.Printf("WARN: controller: %s", bytes.TrimSpace(t.resp))
				}
				return true
			}
		}
		if err != nil && err != io.EOF {
			t.log.Println("ERROR: read:", err)
		}
		if i < t.cfg.AckAttempts-1 {
			t.cfg.Clock.Sleep(t.cfg.AckDelay)
		}
	}
	if len(t.resp) > 0 {
		t.log.Printf("WARN: controller: %s", bytes.TrimSpace(t.resp))
	}
	return false
}
