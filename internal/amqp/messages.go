package amqp

import (
	"encoding/json"
	"errors"
	"fmt"

	"billbook/internal/core"
)

// MessageVersion is bumped whenever BillEventMessage changes incompatibly.
const MessageVersion = 1

// BillEventMessage is the body published for every bill write.
// The event carries the bill snapshot so consumers need no database access.
type BillEventMessage struct {
	Version int `json:"version"`
	core.BillEvent
}

// NewBillEventMessage wraps ev at the current message version
func NewBillEventMessage(ev core.BillEvent) *BillEventMessage {
	return &BillEventMessage{Version: MessageVersion, BillEvent: ev}
}

// ToJSON converts the message to JSON bytes
func (m *BillEventMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// RoutingKey is the AMQP message type, e.g. "bill.created".
func (m *BillEventMessage) RoutingKey() string {
	return "bill." + string(m.Op)
}

// BillEventMessageFromJSON decodes and sanity-checks a message body.
func BillEventMessageFromJSON(data []byte) (*BillEventMessage, error) {
	var msg BillEventMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	if msg.Version != MessageVersion {
		return nil, fmt.Errorf("unsupported message version %d", msg.Version)
	}
	if msg.ID == "" {
		return nil, errors.New("message has no bill id")
	}
	switch msg.Op {
	case core.BillCreated, core.BillUpdated, core.BillDeleted:
	default:
		return nil, fmt.Errorf("unknown bill op %q", msg.Op)
	}
	return &msg, nil
}
