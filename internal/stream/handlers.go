package stream

import (
	"encoding/json"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type controlMessage struct {
	Event string `json:"event"`
	Room  string `json:"room"`
}

func RegisterRoutes(r fiber.Router, hub *Hub) {
	r.Get("/ws", websocket.New(func(c *websocket.Conn) {
		client := hub.Register()

		done := make(chan struct{})
		go func() {
			for msg := range client.Send {
				if err := c.WriteMessage(websocket.TextMessage, msg); err != nil {
					break
				}
			}
			close(done)
		}()

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}
			var ctrl controlMessage
			if err := json.Unmarshal(msg, &ctrl); err != nil {
				continue
			}
			switch ctrl.Event {
			case "joinRoom":
				hub.Join(client, ctrl.Room)
			case "leaveRoom":
				hub.Leave(client, ctrl.Room)
			}
		}

		// Closing the send channel unblocks the writer.
		hub.Unregister(client)
		<-done
	}))
}
