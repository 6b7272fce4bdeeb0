package realtime

import "github.com/rs/zerolog/log"

// Hub maintains the set of connected clients and broadcasts content events
// to them.
type Hub struct {
	clients map[*Client]bool

	// Outbound messages for global broadcast.
	broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		broadcast:  make(chan []byte, 64),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Realtime client connected")
		case client := <-h.Unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Info().Int("total_clients", len(h.clients)).Msg("Realtime client disconnected")
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					// Slow client; drop it rather than stall the loop.
					close(client.Send)
					delete(h.clients, client)
				}
			}
		}
	}
}

// Publish queues a content event for broadcast. It never blocks the caller:
// if the broadcast buffer is full the event is dropped.
func (h *Hub) Publish(event string, payload any) {
	msg := Message{Event: event, Payload: payload}.Encode()
	select {
	case h.broadcast <- msg:
	default:
		log.Warn().Str("event", event).Msg("Realtime broadcast buffer full, dropping event")
	}
}
