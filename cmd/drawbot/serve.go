package main

import (
	"context"
	"io"
	"log"
	"net/http"

	"github.com/mastercactapus/drawbot/gcode"
	"github.com/mastercactapus/drawbot/job"
	"github.com/mastercactapus/drawbot/machine"
	"github.com/mastercactapus/drawbot/spjs"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and stream jobs to the machine",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().String("addr", ":3000", "Address to bind the API server to.")
	serveCmd.Flags().String("spjs", "", "Websocket URL of an SPJS server to use instead of opening the port directly.")
}

// openLink opens the controller link described by the settings.
func openLink(s *machine.Settings, spjsURL string) (machine.Link, io.Closer, error) {
	if spjsURL != "" {
		sp := spjs.Dial(spjsURL)
		return machine.NewSPJSLink(sp, s.Profile), sp, nil
	}

	port, err := machine.OpenSerial(s.Profile)
	if err != nil {
		return nil, nil, err
	}
	return port, port, nil
}

func runServe(cmd *cobra.Command, args []string) error {
	cfgPath, _ := cmd.Flags().GetString("config")
	addr, _ := cmd.Flags().GetString("addr")
	spjsURL, _ := cmd.Flags().GetString("spjs")

	settings, err := machine.LoadSettings(cfgPath)
	if err != nil {
		return err
	}
	log.Printf("machine %q: %s, %gx%g on %s", settings.Device, settings.Flavor, settings.Dimensions.X, settings.Dimensions.Y, settings.Port)

	link, closer, err := openLink(settings, spjsURL)
	if err != nil {
		return err
	}
	defer closer.Close()

	reg := prometheus.NewRegistry()
	tcfg := settings.Transport
	tcfg.Metrics = machine.NewMetrics(reg)
	tr := machine.NewTransport(link, tcfg)
	m := machine.NewMachine(settings.Profile, tr)
	jobs := job.NewStore(&settings.Dimensions, gcode.Absolute)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	a := newAPI(ctx, m, jobs)
	a.router.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))

	handler := http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "*")
		log.Printf("%s %s - %s", req.Method, req.URL.Path, req.RemoteAddr)
		a.ServeHTTP(w, req)
	})
	srv := &http.Server{Addr: addr, Handler: handler}

	go func() {
		err := tr.Run()
		if err != nil {
			// nothing can control the machine anymore
			log.Fatal("FATAL: transport: ", err)
		}
		log.Println("Transport stopped, shutting down.")
		srv.Shutdown(context.Background())
	}()

	log.Println("Listening on", addr)
	err = srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
