package msgcode

import (
	"strings"
	"sync"
	"time"
)

const overflowStatKey = "__overflow__"

// Stats is a point-in-time copy of a catalog's counters.
type Stats struct {
	MissingMessages map[string]int
	LoadFailures    map[string]int
	DroppedEvents   map[string]int
	Loads           int
	LastLoadAt      time.Time
}

type catalogStats struct {
	mu              sync.Mutex
	missingMessages map[string]int
	loadFailures    map[string]int
	droppedEvents   map[string]int
	loads           int
	maxKeys         int
	lastLoadAt      time.Time
}

func newCatalogStats(maxKeys int) catalogStats {
	return catalogStats{
		missingMessages: map[string]int{},
		loadFailures:    map[string]int{},
		droppedEvents:   map[string]int{},
		maxKeys:         maxKeys,
	}
}

func sanitizeStatKey(key string) string {
	key = strings.TrimSpace(key)
	if key == "" {
		return "unknown"
	}
	if len(key) > 120 {
		return key[:120]
	}
	return key
}

func (s *catalogStats) increment(target map[string]int, key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if target == nil {
		return
	}
	key = sanitizeStatKey(key)
	if s.maxKeys > 0 {
		if _, exists := target[key]; !exists {
			if _, hasOverflow := target[overflowStatKey]; hasOverflow {
				if len(target) >= s.maxKeys {
					key = overflowStatKey
				}
			} else if len(target) >= s.maxKeys-1 {
				key = overflowStatKey
			}
		}
	}
	target[key]++
}

func (s *catalogStats) incrementMissingMessage(code string) {
	s.increment(s.missingMessages, code)
}

func (s *catalogStats) incrementLoadFailure(locator string) {
	s.increment(s.loadFailures, locator)
}

func (s *catalogStats) incrementDroppedEvent(reason string) {
	s.increment(s.droppedEvents, reason)
}

func (s *catalogStats) recordLoad(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loads++
	s.lastLoadAt = t
}

func (s *catalogStats) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.missingMessages = map[string]int{}
	s.loadFailures = map[string]int{}
	s.droppedEvents = map[string]int{}
	s.loads = 0
	s.lastLoadAt = time.Time{}
}

func (s *catalogStats) snapshot() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()

	copyMap := func(input map[string]int) map[string]int {
		output := make(map[string]int, len(input))
		for k, v := range input {
			output[k] = v
		}
		return output
	}

	return Stats{
		MissingMessages: copyMap(s.missingMessages),
		LoadFailures:    copyMap(s.loadFailures),
		DroppedEvents:   copyMap(s.droppedEvents),
		Loads:           s.loads,
		LastLoadAt:      s.lastLoadAt,
	}
}

type observerEventType int

const (
	observerEventMessageMissing observerEventType = iota
	observerEventLoaded
	observerEventLoadFailure
)

type observerEvent struct {
	kind    observerEventType
	code    string
	locator string
	count   int
	err     error
}

func safeObserverCall(fn func()) {
	defer func() {
		_ = recover()
	}()
	fn()
}

// observerQueue delivers events to an Observer from a single goroutine.
type observerQueue struct {
	mu       sync.RWMutex
	observer Observer
	ch       chan observerEvent
	done     chan struct{}
	stats    *catalogStats
}

func newObserverQueue(observer Observer, buffer int, stats *catalogStats) *observerQueue {
	q := &observerQueue{observer: observer, stats: stats}
	if observer == nil {
		return q
	}
	ch := make(chan observerEvent, buffer)
	q.ch = ch
	q.done = make(chan struct{})
	go q.run(ch)
	return q
}

func (q *observerQueue) run(ch <-chan observerEvent) {
	defer close(q.done)
	for evt := range ch {
		switch evt.kind {
		case observerEventMessageMissing:
			safeObserverCall(func() {
				q.observer.OnMessageMissing(evt.code)
			})
		case observerEventLoaded:
			safeObserverCall(func() {
				q.observer.OnLoaded(evt.locator, evt.count)
			})
		case observerEventLoadFailure:
			safeObserverCall(func() {
				q.observer.OnLoadFailure(evt.locator, evt.err)
			})
		}
	}
}

func (q *observerQueue) publish(evt observerEvent) {
	q.mu.RLock()
	defer q.mu.RUnlock()
	if q.ch == nil {
		return
	}
	select {
	case q.ch <- evt:
	default:
		q.stats.incrementDroppedEvent("observer_queue_full")
	}
}

func (q *observerQueue) close() {
	q.mu.Lock()
	if q.ch == nil {
		q.mu.Unlock()
		return
	}
	close(q.ch)
	q.ch = nil
	q.mu.Unlock()
	<-q.done
}
