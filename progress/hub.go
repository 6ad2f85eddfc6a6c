// Package progress broadcasts live solve snapshots to websocket
// subscribers. It mirrors the teacher's single-goroutine event-loop hub:
// one goroutine owns the subscriber set and every mutation is routed
// through a channel instead of a mutex.
package progress

import (
	"encoding/json"
	"log"

	"github.com/google/uuid"
)

// Snapshot is one progress update broadcast to subscribers of a run.
type Snapshot struct {
	RunID          string `json:"runId"`
	StatesVisited  int    `json:"statesVisited"`
	OpenSetSize    int    `json:"openSetSize"`
	BestF          int    `json:"bestF"`
	Done           bool   `json:"done"`
	Solved         bool   `json:"solved,omitempty"`
	PushesRequired int    `json:"pushesRequired,omitempty"`
}

type subscriber struct {
	runID string
	send  chan []byte
}

// Hub owns the subscriber set for every in-flight run and fans snapshots
// out to the subscribers watching that run.
type Hub struct {
	subscribers map[*subscriber]bool
	register    chan *subscriber
	unregister  chan *subscriber
	publish     chan Snapshot
}

// NewHub constructs a Hub. Call Run in its own goroutine before Publish.
func NewHub() *Hub {
	return &Hub{
		subscribers: make(map[*subscriber]bool),
		register:    make(chan *subscriber),
		unregister:  make(chan *subscriber),
		publish:     make(chan Snapshot, 64),
	}
}

// Run is the hub's single event loop; it must run in its own goroutine
// for the lifetime of the hub.
func (h *Hub) Run() {
	for {
		select {
		case s := <-h.register:
			h.subscribers[s] = true
		case s := <-h.unregister:
			if _, ok := h.subscribers[s]; ok {
				delete(h.subscribers, s)
				close(s.send)
			}
		case snap := <-h.publish:
			h.broadcast(snap)
		}
	}
}

// Publish queues a snapshot for broadcast to subscribers of snap.RunID.
// Safe to call from the solver's goroutine; never blocks the caller for
// more than a channel send.
func (h *Hub) Publish(snap Snapshot) {
	h.publish <- snap
}

func (h *Hub) broadcast(snap Snapshot) {
	data, err := json.Marshal(snap)
	if err != nil {
		log.Printf("progress: marshal snapshot: %v", err)
		return
	}
	for s := range h.subscribers {
		if s.runID != snap.RunID {
			continue
		}
		select {
		case s.send <- data:
		default:
			// subscriber too slow to keep up: drop it rather than block
			// the whole broadcast.
			delete(h.subscribers, s)
			close(s.send)
		}
	}
}

// NewRunID mints a run identifier for a solve, suitable for both the
// history store's primary key and a progress subscription topic.
func NewRunID() string {
	return uuid.New().String()
}
