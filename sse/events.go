package sse

import (
	"fmt"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

// Broadcaster manages event-stream connections and pushes payment events to
// all connected dashboards, replacing client-side polling.
type Broadcaster struct {
	clients map[chan string]bool
	mu      sync.Mutex
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		clients: make(map[chan string]bool),
	}
}

// Register adds a new client to the broadcaster.
func (b *Broadcaster) Register(client chan string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clients[client] = true
}

// Unregister removes a client from the broadcaster. Broadcast may already
// have dropped a stalled client, so the channel is only closed once.
func (b *Broadcaster) Unregister(client chan string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[client]; ok {
		delete(b.clients, client)
		close(client)
	}
}

// Broadcast sends a message to all registered clients.
func (b *Broadcaster) Broadcast(message string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for client := range b.clients {
		select {
		case client <- message:
		case <-time.After(1 * time.Second):
			// If the client is not responding, unregister them.
			delete(b.clients, client)
			close(client)
		}
	}
}

var Events = NewBroadcaster()

// PaymentEventsSSE streams payment events ("payment request created",
// "payment received", "refund issued") to the client.
func PaymentEventsSSE(c *gin.Context) {
	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Header("Access-Control-Allow-Origin", "*")

	clientChan := make(chan string)

	Events.Register(clientChan)
	defer Events.Unregister(clientChan)
	fmt.Fprintf(c.Writer, "data: %s\n\n", "connected")
	c.Writer.Flush()
	for {
		select {
		case message, ok := <-clientChan:
			if !ok {
				return
			}
			fmt.Fprintf(c.Writer, "data: %s\n\n", message)
			c.Writer.Flush()
		case <-c.Writer.CloseNotify():
			return
		}
	}
}
