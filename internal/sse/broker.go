// Package sse implements a Server-Sent Events broker for live task and
// vault updates.
package sse

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/starford/quicktask/internal/models"
)

// heartbeat is how often an idle stream gets a comment line so proxies keep
// it open.
const heartbeat = 25 * time.Second

// Event types.
const (
	EventTaskAdded     = "task.added"
	EventVaultsChanged = "vaults.changed"
)

// Event represents an SSE event to broadcast.
type Event struct {
	Type string `json:"type"`
	Data any    `json:"data"`
}

// TaskAdded is the payload of a task.added event.
type TaskAdded struct {
	Vault string `json:"vault"`
	Path  string `json:"path"`
	Line  string `json:"line"`
}

// Broker manages SSE client connections and broadcasts events.
//
// Concurrency model: a single internal event loop (goroutine) owns mutable state
// (clients, pending vault list, throttle timestamp). Public methods communicate
// with this loop through channels, so no mutexes are required.
type Broker struct {
	vaultsMin time.Duration

	subscribeCh   chan chan []byte
	unsubscribeCh chan chan []byte
	publishCh     chan Event
	vaultsCh      chan []models.Vault
	countReqCh    chan chan int

	stopCh  chan struct{}
	stopped chan struct{}
	closed  atomic.Bool
}

// NewBroker creates a new SSE broker. vaults.changed events are sent at most
// once per vaultsThrottle; the latest list is delivered when the window ends.
func NewBroker(vaultsThrottle time.Duration) *Broker {
	if vaultsThrottle <= 0 {
		vaultsThrottle = 2 * time.Second
	}

	b := &Broker{
		vaultsMin:     vaultsThrottle,
		subscribeCh:   make(chan chan []byte),
		unsubscribeCh: make(chan chan []byte),
		publishCh:     make(chan Event, 256),
		vaultsCh:      make(chan []models.Vault, 16),
		countReqCh:    make(chan chan int),
		stopCh:        make(chan struct{}),
		stopped:       make(chan struct{}),
	}

	go b.run()
	return b
}

func (b *Broker) run() {
	defer close(b.stopped)

	clients := make(map[chan []byte]struct{})
	var lastVaults time.Time
	var pending []models.Vault
	var havePending bool
	var flush <-chan time.Time
	var seq uint64

	broadcast := func(event Event) {
		payload, err := json.Marshal(event.Data)
		if err != nil {
			return
		}
		seq++
		raw := []byte(fmt.Sprintf("id: %d\nevent: %s\ndata: %s\n\n", seq, event.Type, payload))

		for ch := range clients {
			select {
			case ch <- raw:
			default:
				// Client buffer full; skip to avoid blocking broker loop.
			}
		}
	}

	sendVaults := func() {
		broadcast(Event{Type: EventVaultsChanged, Data: map[string]any{"vaults": pending}})
		lastVaults = time.Now()
		pending, havePending, flush = nil, false, nil
	}

	for {
		select {
		case <-b.stopCh:
			for ch := range clients {
				close(ch)
			}
			return

		case ch := <-b.subscribeCh:
			clients[ch] = struct{}{}

		case ch := <-b.unsubscribeCh:
			if _, ok := clients[ch]; ok {
				delete(clients, ch)
				close(ch)
			}

		case event := <-b.publishCh:
			broadcast(event)

		case vaults := <-b.vaultsCh:
			pending, havePending = vaults, true
			if wait := b.vaultsMin - time.Since(lastVaults); wait <= 0 {
				sendVaults()
			} else if flush == nil {
				flush = time.After(wait)
			}

		case <-flush:
			if havePending {
				sendVaults()
			}

		case resp := <-b.countReqCh:
			resp <- len(clients)
		}
	}
}

// Close gracefully stops broker loop and closes all client channels.
func (b *Broker) Close() {
	if b.closed.CompareAndSwap(false, true) {
		close(b.stopCh)
	}
	<-b.stopped
}

// Subscribe adds a new client and returns its channel.
func (b *Broker) Subscribe() chan []byte {
	ch := make(chan []byte, 64)
	if b.closed.Load() {
		close(ch)
		return ch
	}

	select {
	case b.subscribeCh <- ch:
	case <-b.stopped:
		close(ch)
	}

	return ch
}

// Unsubscribe removes a client and closes its channel.
func (b *Broker) Unsubscribe(ch chan []byte) {
	if b.closed.Load() {
		return
	}
	select {
	case b.unsubscribeCh <- ch:
	case <-b.stopped:
	}
}

// ClientCount returns the number of connected clients.
func (b *Broker) ClientCount() int {
	if b.closed.Load() {
		return 0
	}

	resp := make(chan int, 1)
	select {
	case b.countReqCh <- resp:
	case <-b.stopped:
		return 0
	}

	select {
	case n := <-resp:
		return n
	case <-b.stopped:
		return 0
	}
}

// Publish sends an event to all connected clients.
func (b *Broker) Publish(event Event) {
	if b.closed.Load() {
		return
	}
	select {
	case b.publishCh <- event:
	case <-b.stopped:
	}
}

// PublishTaskAdded announces a task written to a daily note.
func (b *Broker) PublishTaskAdded(vaultPath, notePath, line string) {
	b.Publish(Event{Type: EventTaskAdded, Data: TaskAdded{Vault: vaultPath, Path: notePath, Line: line}})
}

// PublishVaultsChanged announces a new vault list, subject to throttling.
func (b *Broker) PublishVaultsChanged(vaults []models.Vault) {
	if b.closed.Load() {
		return
	}
	if vaults == nil {
		vaults = []models.Vault{}
	}
	select {
	case b.vaultsCh <- vaults:
	case <-b.stopped:
	}
}

// ServeHTTP is the SSE endpoint handler (GET /api/events).
func (b *Broker) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	ping := time.NewTicker(heartbeat)
	defer ping.Stop()

	ctx := r.Context()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ping.C:
			_, _ = w.Write([]byte(": ping\n\n"))
			flusher.Flush()
		case msg, ok := <-ch:
			if !ok {
				return
			}
			_, _ = w.Write(msg)
			flusher.Flush()
		}
	}
}
