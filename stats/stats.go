// Package stats collects usage observations for the stomp-go client.
//
// Each externally visible client operation (makeConnection, connect, send)
// records one Observation with a Recorder supplied at construction time.
// The default recorder discards observations; callers who want the log own
// a Log instance and read it back whole. Retention and export are out of
// scope.
package stats

import (
	"sync"
	"time"
)

// Observation is one timed client operation.
type Observation struct {
	Command  string
	Duration time.Duration
}

// Seconds returns the duration in float seconds.
func (o Observation) Seconds() float64 {
	return o.Duration.Seconds()
}

// Recorder receives one observation per externally visible operation.
// Implementations must be safe for use from a single session; the client
// never calls Record concurrently with itself.
type Recorder interface {
	Record(command string, elapsed time.Duration)
}

// Nop discards every observation. It is the default recorder.
type Nop struct{}

// Record implements Recorder.
func (Nop) Record(string, time.Duration) {}

// Log is an append-only in-memory Recorder.
type Log struct {
	mu  sync.Mutex
	obs []Observation
}

// NewLog creates an empty observation log.
func NewLog() *Log {
	return &Log{}
}

// Record implements Recorder.
func (l *Log) Record(command string, elapsed time.Duration) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.obs = append(l.obs, Observation{Command: command, Duration: elapsed})
}

// Observations returns a snapshot copy of everything recorded so far.
func (l *Log) Observations() []Observation {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Observation, len(l.obs))
	copy(out, l.obs)
	return out
}

// Len returns the number of recorded observations.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.obs)
}

// Reset clears the log.
func (l *Log) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.obs = nil
}

var _ Recorder = Nop{}
var _ Recorder = (*Log)(nil)
