package machine

import (
	"io"
	"time"

	"github.com/tarm/serial"
)

// A Link is the byte stream to a controller.
//
// Reads must return within a short timeout. A read of zero bytes,
// with or without io.EOF, means nothing has arrived yet.
type Link interface {
	io.Reader
	io.Writer
}

// serialReadTimeout bounds each read during an acknowledgement wait.
const serialReadTimeout = 100 * time.Millisecond

// OpenSerial opens the serial port named by the profile.
func OpenSerial(p Profile) (io.ReadWriteCloser, error) {
	return serial.OpenPort(&serial.Config{
		Name:        p.Port,
		Baud:        p.BaudRate,
		ReadTimeout: serialReadTimeout,
	})
}
