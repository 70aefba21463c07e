// Package alerts keeps the audit trail of flagged CEA submissions.
package alerts

import (
	"sync"
	"time"
)

// TimeLayout formats alert timestamps as HH:MM:SS.
const TimeLayout = "15:04:05"

// Alert is one flagged submission.
type Alert struct {
	Time     string `json:"time"`
	UserType string `json:"userType"`
	Sector   string `json:"sector"`
	Problem  string `json:"problem"`
}

// Log is an append-only, unbounded, in-memory alert list. Entries live for the life of the
// process.
type Log struct {
	mu      sync.Mutex
	entries []Alert
	now     func() time.Time

	subs    map[int]chan Alert
	nextSub int
}

// Option configures a Log.
type Option func(*Log)

// WithClock overrides the wall clock used to stamp alerts.
func WithClock(now func() time.Time) Option {
	return func(l *Log) { l.now = now }
}

// NewLog creates an empty log stamped with local wall-clock time.
func NewLog(opts ...Option) *Log {
	l := &Log{
		now:  time.Now,
		subs: make(map[int]chan Alert),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Record appends a new alert and fans it out to subscribers. Slow subscribers miss
// alerts rather than block the writer.
func (l *Log) Record(userType, sector, problem string) Alert {
	alert := Alert{
		Time:     l.now().Local().Format(TimeLayout),
		UserType: userType,
		Sector:   sector,
		Problem:  problem,
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, alert)
	for _, ch := range l.subs {
		select {
		case ch <- alert:
		default:
		}
	}
	return alert
}

// List returns every alert in insertion order, newest last.
func (l *Log) List() []Alert {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]Alert, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of recorded alerts.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Subscribe registers a listener for alerts recorded from now on. The returned cancel func
// unregisters and closes the channel.
func (l *Log) Subscribe(buffer int) (<-chan Alert, func()) {
	ch := make(chan Alert, buffer)

	l.mu.Lock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = ch
	l.mu.Unlock()

	var once sync.Once
	cancel := func() {
		once.Do(func() {
			l.mu.Lock()
			delete(l.subs, id)
			l.mu.Unlock()
			close(ch)
		})
	}
	return ch, cancel
}
