// Package job caches translated drawing jobs by a content-addressed handle.
package job

import (
	"encoding/binary"
	"errors"
	"math"
	"strconv"
	"sync"

	"github.com/cespare/xxhash/v2"
	"github.com/mastercactapus/drawbot/coord"
	"github.com/mastercactapus/drawbot/gcode"
)

// ErrNotFound is returned for a handle that was never submitted.
var ErrNotFound = errors.New("job not found")

// Handle identifies a job by the content of its movement list.
type Handle uint64

func (h Handle) String() string { return strconv.FormatUint(uint64(h), 10) }

// ParseHandle parses the decimal form returned by Handle.String.
func ParseHandle(s string) (Handle, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return Handle(v), nil
}

// Hash returns the handle for movements. Identical lists always
// produce the same handle; the float bit patterns are hashed, not their values.
func Hash(movements []gcode.Movement) Handle {
	d := xxhash.New()
	var buf [9]byte
	for _, m := range movements {
		binary.LittleEndian.PutUint32(buf[0:], math.Float32bits(m.Dest.X))
		binary.LittleEndian.PutUint32(buf[4:], math.Float32bits(m.Dest.Y))
		buf[8] = 0
		if m.PenDown {
			buf[8] = 1
		}
		d.Write(buf[:])
	}
	return Handle(d.Sum64())
}

// Job is a translated movement list.
type Job struct {
	Handle     Handle
	Movements  []gcode.Movement
	Operations []gcode.Operation
}

// Store holds every submitted job in memory. Nothing is ever evicted.
type Store struct {
	bed  *coord.Vec2D
	mode gcode.Position

	mx   sync.Mutex
	jobs map[Handle]*Job
}

// NewStore creates a Store interpreting movements with mode. If bed is
// non-nil, movements are clamped to it before translation.
func NewStore(bed *coord.Vec2D, mode gcode.Position) *Store {
	return &Store{
		bed:  bed,
		mode: mode,
		jobs: make(map[Handle]*Job),
	}
}

// Submit translates movements and caches the result. Submitting an
// identical list again returns the cached job.
func (s *Store) Submit(movements []gcode.Movement) (*Job, error) {
	h := Hash(movements)

	s.mx.Lock()
	j := s.jobs[h]
	s.mx.Unlock()
	if j != nil {
		return j, nil
	}

	if s.bed != nil {
		movements = gcode.ClampMovements(movements, *s.bed, s.mode)
	} else {
		movements = append([]gcode.Movement(nil), movements...)
	}
	ops, _, err := gcode.Translate(movements, s.mode)
	if err != nil {
		return nil, err
	}
	j = &Job{Handle: h, Movements: movements, Operations: ops}

	s.mx.Lock()
	defer s.mx.Unlock()
	if existing := s.jobs[h]; existing != nil {
		return existing, nil
	}
	s.jobs[h] = j
	return j, nil
}

// Get returns the job for h.
func (s *Store) Get(h Handle) (*Job, error) {
	s.mx.Lock()
	defer s.mx.Unlock()
	j := s.jobs[h]
	if j == nil {
		return nil, ErrNotFound
	}
	return j, nil
}

// Program renders the complete program for h in flavor f.
func (s *Store) Program(h Handle, f gcode.Flavor) ([]string, error) {
	j, err := s.Get(h)
	if err != nil {
		return nil, err
	}
	return gcode.Program(j.Operations, f)
}

// Len returns the number of cached jobs.
func (s *Store) Len() int {
	s.mx.Lock()
	defer s.mx.Unlock()
	return len(s.jobs)
}
