package domain

import "context"

// Transport delivers rendered text to a phone number. Implementations must be
// safe for concurrent use and must report every failure as an error value.
type Transport interface {
	Send(ctx context.Context, phone, text string) error
	Method() DeliveryMethod
}

// BridgeStatus is the chat-bridge health payload
type BridgeStatus struct {
	ActiveConnections int `json:"active_connections"`
	MappedMessages    int `json:"mapped_messages"`
}

// BridgeState summarizes bridge health for the admin surface
type BridgeState string

const (
	BridgeConnected    BridgeState = "connected"
	BridgeRunning      BridgeState = "running"
	BridgeError        BridgeState = "error"
	BridgeDisconnected BridgeState = "disconnected"
)

// State derives the admin-facing state from a successful health probe.
func (s BridgeStatus) State() BridgeState {
	if s.ActiveConnections > 0 {
		return BridgeConnected
	}
	return BridgeRunning
}
