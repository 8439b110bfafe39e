package machine

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMachine_Control(t *testing.T) {
	tr, _ := newTestTransport(&mockLink{reply: "ok\n"}, TransportConfig{QueueSize: 1})
	m := NewMachine(Profile{Device: "test"}, tr)

	require.NoError(t, m.Run(context.Background(), []string{"G0 X1"}))

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, m.Control(ctx, Pause()), ErrQueueFull)

	require.NoError(t, tr.Tick())
	assert.Equal(t, Report{Remaining: 0, Status: StatusWaiting}, m.Progress())
	require.NoError(t, m.Control(context.Background(), Pause()))
}
