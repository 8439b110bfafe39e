package main

import (
	"context"
	"encoding/json"
	"errors"
	"io/ioutil"
	"log"
	"net/http"
	"strings"
	"time"

	sse "github.com/alexandrevicenzi/go-sse"
	"github.com/gorilla/mux"
	"github.com/mastercactapus/drawbot/gcode"
	"github.com/mastercactapus/drawbot/job"
	"github.com/mastercactapus/drawbot/machine"
)

// controlTimeout bounds how long a request waits for room in the
// transport control queue.
const controlTimeout = 2 * time.Second

type api struct {
	http.Handler
	router *mux.Router
	m      *machine.Machine
	jobs   *job.Store
	sse    *sse.Server
}

func newAPI(ctx context.Context, m *machine.Machine, jobs *job.Store) *api {
	r := mux.NewRouter()

	a := &api{
		Handler: r,
		router:  r,
		m:       m,
		jobs:    jobs,
		sse: sse.NewServer(&sse.Options{
			Logger: log.New(ioutil.Discard, "", 0),
		}),
	}

	r.HandleFunc("/machine", a.getMachine).Methods("GET")
	r.HandleFunc("/movements", a.postMovements).Methods("POST")
	r.HandleFunc("/run/{handle}", a.postRun).Methods("POST")
	r.HandleFunc("/run/{handle}", a.getRun).Methods("GET")
	r.HandleFunc("/rendered/{handle}", a.getRendered).Methods("GET")
	r.HandleFunc("/pause", a.control(machine.Pause)).Methods("POST")
	r.HandleFunc("/resume", a.control(machine.Resume)).Methods("POST")
	r.HandleFunc("/cancel", a.control(machine.Cancel)).Methods("POST")
	r.HandleFunc("/wait", a.control(machine.Wait)).Methods("POST")
	r.HandleFunc("/stop", a.control(machine.Stop)).Methods("POST")
	r.PathPrefix("/events/").Handler(a.sse)

	go a.publishProgress(ctx)

	return a
}

func (a *api) publishProgress(ctx context.Context) {
	defer a.sse.Shutdown()
	changed := a.m.Changed()
	for {
		select {
		case <-ctx.Done():
			return
		case <-changed:
		}
		changed = a.m.Changed()
		data, err := json.Marshal(a.m.Progress())
		if err != nil {
			log.Printf("ERROR: marshal json: %+v", err)
			continue
		}
		a.sse.SendMessage("/events/progress", sse.SimpleMessage(string(data)))
	}
}

func writeJSON(w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	err := json.NewEncoder(w).Encode(v)
	if err != nil {
		log.Println("ERROR: encode:", err)
	}
}

func (a *api) handle(w http.ResponseWriter, req *http.Request) (*job.Job, bool) {
	h, err := job.ParseHandle(mux.Vars(req)["handle"])
	if err != nil {
		http.Error(w, "invalid handle", http.StatusBadRequest)
		return nil, false
	}
	j, err := a.jobs.Get(h)
	if err != nil {
		http.Error(w, err.Error(), http.StatusNotFound)
		return nil, false
	}
	return j, true
}

func (a *api) getMachine(w http.ResponseWriter, req *http.Request) {
	writeJSON(w, a.m.Profile)
}

func (a *api) postMovements(w http.ResponseWriter, req *http.Request) {
	var movements []gcode.Movement
	err := json.NewDecoder(req.Body).Decode(&movements)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	j, err := a.jobs.Submit(movements)
	if err != nil {
		log.Printf("ERROR: submit: %+v", err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Write([]byte(j.Handle.String()))
}

func (a *api) postRun(w http.ResponseWriter, req *http.Request) {
	j, ok := a.handle(w, req)
	if !ok {
		return
	}

	lines, err := a.jobs.Program(j.Handle, a.m.Profile.Flavor)
	if err != nil {
		log.Printf("ERROR: render %s: %+v", j.Handle, err)
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}

	ctx, cancel := context.WithTimeout(req.Context(), controlTimeout)
	defer cancel()
	err = a.m.Run(ctx, lines)
	if err != nil {
		log.Printf("ERROR: run %s: %+v", j.Handle, err)
		http.Error(w, err.Error(), http.StatusServiceUnavailable)
		return
	}
}

func (a *api) getRun(w http.ResponseWriter, req *http.Request) {
	if _, ok := a.handle(w, req); !ok {
		return
	}
	writeJSON(w, a.m.Progress().Remaining)
}

func (a *api) getRendered(w http.ResponseWriter, req *http.Request) {
	j, ok := a.handle(w, req)
	if !ok {
		return
	}

	if req.FormValue("format") != "gcode" {
		writeJSON(w, gcode.Simulate(j.Operations))
		return
	}

	lines, err := a.jobs.Program(j.Handle, a.m.Profile.Flavor)
	if errors.Is(err, gcode.ErrNoProgramTemplate) {
		// still useful to inspect the job itself
		lines, err = gcode.RenderAll(j.Operations, a.m.Profile.Flavor)
	}
	if err != nil {
		http.Error(w, err.Error(), http.StatusUnprocessableEntity)
		return
	}
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(strings.Join(lines, "\n") + "\n"))
}

func (a *api) control(cmd func() machine.Command) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		ctx, cancel := context.WithTimeout(req.Context(), controlTimeout)
		defer cancel()
		c := cmd()
		err := a.m.Control(ctx, c)
		if err != nil {
			log.Printf("ERROR: %s: %+v", c.Type, err)
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
	}
}
