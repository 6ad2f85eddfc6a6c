package progress

import (
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

const writeWait = 10 * time.Second

// Handler upgrades a request to a websocket connection and streams
// snapshots for the run named by the "run" query parameter until the
// client disconnects.
func (h *Hub) Handler(w http.ResponseWriter, r *http.Request) {
	runID := r.URL.Query().Get("run")
	if runID == "" {
		http.Error(w, "missing run query parameter", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("progress: upgrade: %v", err)
		return
	}

	sub := &subscriber{runID: runID, send: make(chan []byte, 16)}
	h.register <- sub

	go h.writePump(conn, sub)
	go h.readPump(conn, sub)
}

// writePump drains sub.send to the connection until the hub closes the
// channel (subscriber removed) or the write fails.
func (h *Hub) writePump(conn *websocket.Conn, sub *subscriber) {
	defer conn.Close()
	for data := range sub.send {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			return
		}
	}
	conn.WriteMessage(websocket.CloseMessage, []byte{})
}

// readPump discards client messages; its only job is to notice the
// connection closing and unregister the subscriber.
func (h *Hub) readPump(conn *websocket.Conn, sub *subscriber) {
	defer func() {
		h.unregister <- sub
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}
