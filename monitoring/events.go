package monitoring

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/sarchlab/distill/sim"
	"github.com/sarchlab/distill/tower"
	"github.com/sarchlab/distill/world"
)

// An Event is what the monitor streams to websocket clients.
type Event struct {
	Tick    uint64    `json:"tick"`
	Kind    string    `json:"kind"`
	Tower   tower.Pos `json:"tower"`
	Height  int       `json:"height"`
	Recipe  string    `json:"recipe,omitempty"`
	Reason  string    `json:"reason,omitempty"`
	Drained int       `json:"drained,omitempty"`
	Stage   int       `json:"stage,omitempty"`
}

// Func turns tower and world hooks into events.
func (m *Monitor) Func(ctx sim.HookCtx) {
	evt, ok := m.toEvent(ctx)
	if !ok {
		return
	}

	if m.engine != nil {
		evt.Tick = uint64(m.engine.CurrentTime())
	}

	m.events.publish(evt)
}

func (m *Monitor) toEvent(ctx sim.HookCtx) (Event, bool) {
	switch ctx.Pos {
	case tower.HookPosDistilled, tower.HookPosProcessRejected:
		t := ctx.Domain.(*tower.Tower)
		res := ctx.Detail.(tower.Result)

		evt := Event{
			Kind:   "rejected",
			Tower:  t.ControllerPos(),
			Height: t.Height(),
			Reason: res.Reason.String(),
		}

		if res.OK {
			evt.Kind = "distilled"
			evt.Reason = ""
			evt.Drained = res.Drained.Amount
		}

		if res.Recipe != nil {
			evt.Recipe = res.Recipe.ID
		}

		return evt, true
	case tower.HookPosStageAdded, tower.HookPosStageRemoved:
		t := ctx.Domain.(*tower.Tower)

		kind := "stage_added"
		if ctx.Pos == tower.HookPosStageRemoved {
			kind = "stage_removed"
		}

		return Event{
			Kind:   kind,
			Tower:  t.ControllerPos(),
			Height: t.Height(),
			Stage:  ctx.Detail.(int),
		}, true
	case world.HookPosTowerFormed, world.HookPosTowerDestroyed:
		t := ctx.Item.(*tower.Tower)

		kind := "formed"
		if ctx.Pos == world.HookPosTowerDestroyed {
			kind = "destroyed"
		}

		return Event{
			Kind:   kind,
			Tower:  t.ControllerPos(),
			Height: t.Height(),
		}, true
	}

	return Event{}, false
}

// eventHub fans events out to websocket clients. Each client has its own
// buffered queue; a client that falls behind loses events instead of
// stalling the simulation.
type eventHub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	upgrader websocket.Upgrader
}

type client struct {
	conn  *websocket.Conn
	queue chan []byte
}

const clientQueueSize = 256

func newEventHub() *eventHub {
	return &eventHub{
		clients: make(map[*client]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
}

func (h *eventHub) numClients() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.clients)
}

func (h *eventHub) publish(evt Event) {
	data, err := json.Marshal(evt)
	dieOnErr(err)

	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		select {
		case c.queue <- data:
		default:
		}
	}
}

func (h *eventHub) serveWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	c := &client{
		conn:  conn,
		queue: make(chan []byte, clientQueueSize),
	}

	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()

	go h.readUntilClosed(c)
	h.writeLoop(c)
}

// readUntilClosed drains control frames and drops the client once the peer
// goes away.
func (h *eventHub) readUntilClosed(c *client) {
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.remove(c)
			return
		}
	}
}

func (h *eventHub) writeLoop(c *client) {
	defer h.remove(c)

	for data := range c.queue {
		_ = c.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))

		err := c.conn.WriteMessage(websocket.TextMessage, data)
		if err != nil {
			return
		}
	}
}

func (h *eventHub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if _, ok := h.clients[c]; !ok {
		return
	}

	delete(h.clients, c)
	close(c.queue)
	c.conn.Close()
}
