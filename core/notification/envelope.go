package notification

import (
	"encoding/json"
	"fmt"
)

// Envelope is the queued message body.
type Envelope struct {
	Message Notification `json:"message"`
}

// PushRequest is the body of a Pub/Sub push delivery.
type PushRequest struct {
	Message struct {
		Data       []byte            `json:"data"`
		MessageID  string            `json:"messageId,omitempty"`
		Attributes map[string]string `json:"attributes,omitempty"`
	} `json:"message"`
	Subscription string `json:"subscription,omitempty"`
}

// Encode wraps a unit in an envelope.
func Encode(unit Notification) ([]byte, error) {
	return json.Marshal(Envelope{Message: unit})
}

// DecodeEnvelope unwraps a queued message body.
func DecodeEnvelope(data []byte) (Notification, error) {
	var env Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: envelope: %v", ErrMalformed, err)
	}
	if env.Message == nil {
		return nil, fmt.Errorf("%w: envelope without message", ErrMalformed)
	}
	return env.Message, nil
}

// DecodePush unwraps a push delivery down to its unit.
func DecodePush(body []byte) (Notification, error) {
	var req PushRequest
	if err := json.Unmarshal(body, &req); err != nil {
		return nil, fmt.Errorf("%w: push request: %v", ErrMalformed, err)
	}
	if len(req.Message.Data) == 0 {
		return nil, fmt.Errorf("%w: push request without message data", ErrMalformed)
	}
	return DecodeEnvelope(req.Message.Data)
}
