package events

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"
)

const (
	Subprotocol  = "filegate-events.1"
	writeTimeout = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	Subprotocols:      []string{Subprotocol},
	EnableCompression: false,
}

// Serve upgrades the request and streams every published entry as a JSON
// text message until the client leaves or the broadcaster closes.
func Serve(rsp http.ResponseWriter, req *http.Request, b *Broadcaster) error {
	conn, err := upgrader.Upgrade(rsp, req, nil)
	if err != nil {
		return err
	}
	defer conn.Close()

	ch := b.Subscribe()
	defer b.Unsubscribe(ch)

	// the stream is one way; reading only notices the client leaving
	gone := make(chan struct{})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case <-gone:
			return nil
		case e, ok := <-ch:
			if !ok {
				conn.WriteControl(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down"),
					time.Now().Add(writeTimeout))
				return nil
			}
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteJSON(e); err != nil {
				return err
			}
		}
	}
}
