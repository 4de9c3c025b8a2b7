package game

import (
	"encoding/json"
	"fmt"
)

// Message type for WebSocket communication between client and server.
type MessageType string

const (
	MsgTypeNew    MessageType = "new"    // Client wants to start a new game
	MsgTypeJoin   MessageType = "join"   // Client wants to reattach to an existing game
	MsgTypeSelect MessageType = "select" // Client toggles the selection of a card
	MsgTypePlay   MessageType = "play"   // Client plays the current selection
	MsgTypeHint   MessageType = "hint"   // Client asks for a hint; server answers with the hint
	MsgTypeState  MessageType = "state"  // Server sends full game state
	MsgTypeResult MessageType = "result" // Server sends the outcome of a play
	MsgTypePing   MessageType = "ping"   // Server pings client to check it is alive
	MsgTypePong   MessageType = "pong"   // Client responds to ping
	MsgTypeError  MessageType = "error"  // Server sends an error message
)

// WsMessage represents a WebSocket message.
type WsMessage struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// NewWsMessage creates a new WsMessage with a marshaled payload.
func NewWsMessage(msgType MessageType, payload interface{}) (WsMessage, error) {
	if payload == nil {
		return WsMessage{Type: msgType}, nil
	}
	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return WsMessage{}, fmt.Errorf("failed to marshal payload: %w", err)
	}
	return WsMessage{
		Type:    msgType,
		Payload: payloadBytes,
	}, nil
}

// Parse unmarshals the message payload into one of the message types (NewMessage, StateMessage, etc.)
func (m *WsMessage) Parse() (any, error) {
	var target any
	switch m.Type {
	case MsgTypeNew:
		target = &NewMessage{}
	case MsgTypeJoin:
		target = &JoinMessage{}
	case MsgTypeSelect:
		target = &SelectMessage{}
	case MsgTypePlay:
		target = &PlayMessage{}
	case MsgTypeHint:
		target = &HintMessage{}
	case MsgTypeState:
		target = &StateMessage{}
	case MsgTypeResult:
		target = &ResultMessage{}
	case MsgTypePing:
		target = &PingMessage{}
	case MsgTypePong:
		target = &PongMessage{}
	case MsgTypeError:
		target = &ErrorMessage{}
	default:
		return nil, fmt.Errorf("unknown message type: %s", m.Type)
	}

	if len(m.Payload) == 0 {
		return target, nil
	}

	err := json.Unmarshal(m.Payload, target)
	return target, err
}

// NewMessage is the payload for MsgTypeNew
type NewMessage struct {
	Variant Variant `json:"variant"`
}

// JoinMessage is the payload for MsgTypeJoin
type JoinMessage struct {
	GameID string `json:"game_id"`
}

// SelectMessage is the payload for MsgTypeSelect
type SelectMessage struct {
	Index int `json:"index"` // Position of the card in the table
}

// PlayMessage: empty, the current selection is played.
type PlayMessage struct{}

// HintMessage is the payload for MsgTypeHint.
// Requests from the client leave it empty.
type HintMessage struct {
	Indices []int `json:"indices"`
}

// StateMessage is the payload for MsgTypeState
type StateMessage struct {
	Game GameView `json:"game"`
}

// ResultMessage is the payload for MsgTypeResult
type ResultMessage struct {
	Response PlayResponse `json:"response"`
	Cards    []CardView   `json:"cards"` // The cards that were played
}

// PingMessage is the payload for MsgTypePing
type PingMessage struct {
	ServerTime int64 `json:"server_time"` // Nanoseconds since Unix epoch
}

// PongMessage is the payload for MsgTypePong
type PongMessage struct {
	ServerTime int64 `json:"server_time"` // Same value from Ping
	ClientTime int64 `json:"client_time"` // Client's own timestamp
}

// ErrorMessage is the payload for MsgTypeError
type ErrorMessage struct {
	Message string `json:"message"`
}
