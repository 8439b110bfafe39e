package machine

import (
	"bytes"
	"log"
	"strings"

	"github.com/mastercactapus/drawbot/gcode"
	"github.com/mastercactapus/drawbot/spjs"
)

// spjsSource is the part of spjs.Client used by SPJSLink.
type spjsSource interface {
	Messages() <-chan interface{}
	Send(port, data string) error
	SendNoBuf(port, data string) error
	Open(port string, baud int, algorithm string) error
}

var _ spjsSource = &spjs.Client{}

// SPJSLink is a Link to a serial port shared through a Serial Port
// JSON Server.
type SPJSLink struct {
	sp        spjsSource
	port      string
	baud      int
	algorithm string

	pending bytes.Buffer
}

var _ Link = &SPJSLink{}

// NewSPJSLink returns a Link writing to the profile's port through sp.
// The link must be the only reader of sp's messages.
func NewSPJSLink(sp *spjs.Client, p Profile) *SPJSLink {
	return &SPJSLink{sp: sp, port: p.Port, baud: p.BaudRate, algorithm: bufferAlgorithm(p.Flavor)}
}

// bufferAlgorithm returns the SPJS buffer flow algorithm for f.
func bufferAlgorithm(f gcode.Flavor) string {
	switch f {
	case gcode.GRBL:
		return "grbl"
	case gcode.Marlin:
		return "marlin"
	}
	return "default"
}

// Write sends p as a single command. The halt byte bypasses the
// server queue.
func (l *SPJSLink) Write(p []byte) (int, error) {
	data := strings.TrimRight(string(p), "\n")
	var err error
	if len(p) == 1 && p[0] == haltByte {
		err = l.sp.SendNoBuf(l.port, data)
	} else {
		err = l.sp.Send(l.port, data)
	}
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

// Read returns any data received from the port so far, without blocking.
func (l *SPJSLink) Read(p []byte) (int, error) {
	l.drain()
	if l.pending.Len() == 0 {
		return 0, nil
	}
	return l.pending.Read(p)
}

func (l *SPJSLink) drain() {
	for {
		select {
		case msg := <-l.sp.Messages():
			l.handle(msg)
		default:
			return
		}
	}
}

func (l *SPJSLink) handle(msg interface{}) {
	switch msg := msg.(type) {
	case *spjs.DataFrame:
		if msg.Port == l.port || msg.Port == "" {
			l.pending.WriteString(msg.Data)
		}
	case *spjs.ErrorMessage:
		log.Println("ERROR: spjs:", msg.Error)
	case *spjs.SerialPortList:
		for _, port := range msg.SerialPorts {
			if port.Name != l.port || port.IsOpen {
				continue
			}
			err := l.sp.Open(l.port, l.baud, l.algorithm)
			if err != nil {
				log.Println("ERROR: spjs open:", err)
			}
		}
	}
}
