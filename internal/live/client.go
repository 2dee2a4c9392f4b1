package live

import "grievgo/backend/internal/models"

// Client is one subscriber to the live complaint feed. It abstracts the
// transport so the hub can manage websocket clients and test doubles
// uniformly.
type Client interface {
	// GetUserID returns the unique identifier of the subscribed user.
	GetUserID() string

	// GetSendChannel returns the channel the hub pushes events into for
	// this client. It is a send-only channel.
	GetSendChannel() chan<- models.StatusEvent

	// Run starts the client's pumps handling the underlying connection.
	Run()
	// Close gracefully shuts down the client's connection and channels.
	Close()
}
