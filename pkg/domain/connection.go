package domain

// ConnectionStatus is the tri-state of a connection request.
type ConnectionStatus string

const (
	ConnectionPending  ConnectionStatus = "pending"
	ConnectionAccepted ConnectionStatus = "accepted"
	ConnectionDeclined ConnectionStatus = "declined"
)

// ValidConnectionStatus returns true for one of the three known states.
func ValidConnectionStatus(s ConnectionStatus) bool {
	switch s {
	case ConnectionPending, ConnectionAccepted, ConnectionDeclined:
		return true
	}
	return false
}

// Connection is a networking request between two users. UpdatedAt is
// refreshed on every status transition.
type Connection struct {
	ID         string           `json:"id"`
	SenderID   string           `json:"senderId"`
	ReceiverID string           `json:"receiverId"`
	Status     ConnectionStatus `json:"status"`
	CreatedAt  Time             `json:"createdAt"`
	UpdatedAt  Time             `json:"updatedAt"`
}

// Involves reports whether the given user is either end of the connection.
func (c Connection) Involves(userID string) bool {
	return c.SenderID == userID || c.ReceiverID == userID
}
