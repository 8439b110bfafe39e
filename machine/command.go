package machine

import "errors"

// ErrControlChannelClosed is returned by Transport.Run when the
// control channel is closed while the transport is alive.
var ErrControlChannelClosed = errors.New("transport control channel closed")

// CommandType identifies a transport control message.
type CommandType int

const (
	// CommandWait clears the buffer and goes idle.
	CommandWait CommandType = iota
	// CommandSend replaces the buffer and starts draining it.
	CommandSend
	// CommandPause suspends draining, keeping the buffer.
	CommandPause
	// CommandRun resumes draining.
	CommandRun
	// CommandStop clears the buffer and terminates the transport.
	CommandStop
	// CommandCancel writes the halt byte immediately.
	CommandCancel
)

func (c CommandType) String() string {
	switch c {
	case CommandWait:
		return "wait"
	case CommandSend:
		return "send"
	case CommandPause:
		return "pause"
	case CommandRun:
		return "run"
	case CommandStop:
		return "stop"
	case CommandCancel:
		return "cancel"
	}
	return "unknown"
}

// Command is a control message for the transport.
type Command struct {
	Type CommandType

	// Lines are used by CommandSend, in send order.
	Lines []string
}

func Wait() Command   { return Command{Type: CommandWait} }
func Pause() Command  { return Command{Type: CommandPause} }
func Resume() Command { return Command{Type: CommandRun} }
func Stop() Command   { return Command{Type: CommandStop} }
func Cancel() Command { return Command{Type: CommandCancel} }

// Send returns a command that queues lines for sending.
func Send(lines []string) Command {
	return Command{Type: CommandSend, Lines: lines}
}
