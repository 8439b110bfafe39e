package main

import (
	"context"
	"io/ioutil"
	"log"
	"strings"
	"testing"
	"time"

	"github.com/mastercactapus/drawbot/machine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadProgram(t *testing.T) {
	lines, err := readProgram(strings.NewReader("; test\nG21\n\nG1 X1 ; draw\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"G21", "G1 X1"}, lines)

	_, err = readProgram(strings.NewReader("G1 X1\n@@\n"))
	assert.Error(t, err)
}

func TestStream(t *testing.T) {
	link := &okLink{}
	tr := machine.NewTransport(link, machine.TransportConfig{
		TickInterval: time.Millisecond,
		AckDelay:     time.Millisecond,
		Logger:       log.New(ioutil.Discard, "", 0),
	})
	m := machine.NewMachine(machine.Profile{}, tr)
	done := make(chan error, 1)
	go func() { done <- tr.Run() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	require.NoError(t, stream(ctx, m, []string{"G21", "G0 X1", "G1 Y2"}))
	assert.Equal(t, []string{"G21", "G0 X1", "G1 Y2"}, link.Written())

	require.NoError(t, m.Control(ctx, machine.Stop()))
	assert.NoError(t, <-done)
}

// silentLink accepts writes but never answers.
type silentLink struct{ okLink }

func (l *silentLink) Read(p []byte) (int, error) { return 0, nil }

func TestStream_Aborted(t *testing.T) {
	link := &silentLink{}
	tr := machine.NewTransport(link, machine.TransportConfig{
		TickInterval: time.Millisecond,
		AckDelay:     time.Millisecond,
		AckAttempts:  2,
		AckPolicy:    machine.AckAbort,
		Logger:       log.New(ioutil.Discard, "", 0),
	})
	m := machine.NewMachine(machine.Profile{}, tr)
	done := make(chan error, 1)
	go func() { done <- tr.Run() }()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := stream(ctx, m, []string{"G21", "G0 X1", "G1 Y2", "G1 X2"})
	assert.Error(t, err)
	assert.Len(t, link.Written(), 1)

	require.NoError(t, m.Control(ctx, machine.Stop()))
	assert.NoError(t, <-done)
}
