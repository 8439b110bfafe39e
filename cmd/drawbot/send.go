package main

import (
	"context"
	"errors"
	"io"
	"io/ioutil"
	"log"
	"os"
	"os/signal"

	"github.com/mastercactapus/drawbot/gcode"
	"github.com/mastercactapus/drawbot/machine"
	"github.com/spf13/cobra"
)

var sendCmd = &cobra.Command{
	Use:   "send <file.gcode>",
	Short: "Stream a G-code file to the machine",
	Args:  cobra.ExactArgs(1),
	RunE:  runSend,
}

func init() {
	sendCmd.Flags().String("spjs", "", "Websocket URL of an SPJS server to use instead of opening the port directly.")
}

func readProgram(r io.Reader) ([]string, error) {
	data, err := ioutil.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return gcode.Parse(string(data))
}

// stream queues lines on m and blocks until they have all been sent,
// the transport leaves the running state, or ctx is done.
//
// The transport publishes nothing while idle, so every update after
// queueing belongs to this job.
func stream(ctx context.Context, m *machine.Machine, lines []string) error {
	changed := m.Changed()
	err := m.Run(ctx, lines)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-changed:
		}
		changed = m.Changed()

		r := m.Progress()
		switch r.Status {
		case machine.StatusWaiting:
			if r.Aborted {
				return errors.New("job aborted: controller did not acknowledge a line")
			}
			return nil
		case machine.StatusPaused:
			return errors.New("transport paused after a write failure")
		case machine.StatusStopped, machine.StatusCancelling:
			return errors.New("transport " + r.Status.String())
		}
	}
}

func runSend(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	spjsURL, _ := cmd.Flags().GetString("spjs")

	f, err := os.Open(args[0])
	if err != nil {
		return err
	}
	lines, err := readProgram(f)
	f.Close()
	if err != nil {
		return err
	}

	settings, err := machine.LoadSettings(cfgPath)
	if err != nil {
		return err
	}
	link, closer, err := openLink(settings, spjsURL)
	if err != nil {
		return err
	}
	defer closer.Close()

	tr := machine.NewTransport(link, settings.Transport)
	m := machine.NewMachine(settings.Profile, tr)
	done := make(chan error, 1)
	go func() { done <- tr.Run() }()

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	log.Printf("Sending %d lines to %s", len(lines), settings.Port)
	err = stream(ctx, m, lines)
	if ctx.Err() != nil {
		log.Println("Interrupted, halting machine.")
		m.Control(context.Background(), machine.Cancel())
	}
	m.Control(context.Background(), machine.Stop())
	if runErr := <-done; runErr != nil {
		return runErr
	}
	return err
}
