package machine

import "time"

// Clock provides the delays used by the transport loop.
type Clock interface {
	Sleep(time.Duration)
}

type realClock struct{}

func (realClock) Sleep(d time.Duration) { time.Sleep(d) }
