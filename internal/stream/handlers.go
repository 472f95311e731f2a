package stream

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes exposes the live record feed. Clients subscribe to the
// session id returned by starting a recording.
func RegisterRoutes(r fiber.Router, hub *Hub) {
	r.Get("/ws/:sessionID", websocket.New(func(c *websocket.Conn) {
		sessionID := c.Params("sessionID")
		client := hub.Register(sessionID)

		writerDone := make(chan struct{})
		go func() {
			defer close(writerDone)
			for {
				select {
				case msg := <-client.Send:
					if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
						return
					}
				case <-client.Done():
					return
				}
			}
		}()

		for {
			if _, _, err := c.ReadMessage(); err != nil {
				break
			}
		}
		hub.Unregister(client)
		<-writerDone
	}))
}
