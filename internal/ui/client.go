package ui

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gorilla/websocket"
)

// handshakeTimeout bounds the WebSocket dial to the gateway.
const handshakeTimeout = 5 * time.Second

// StreamEvent is one decoded payload as delivered by the gateway's
// /v1/stream endpoint.
type StreamEvent struct {
	ReceivedAt  time.Time       `json:"received_at"`
	Source      string          `json:"source"`
	PayloadSize int             `json:"payload_size"`
	Document    map[string]any  `json:"document"`
	RawDocument json.RawMessage `json:"-"`
}

// StreamClient reads decoded payload events from a gateway stream.
type StreamClient struct {
	url  string
	conn *websocket.Conn
}

// Connect dials the gateway's stream endpoint.
func Connect(streamURL string) (*StreamClient, error) {
	dialer := websocket.Dialer{HandshakeTimeout: handshakeTimeout}
	conn, _, err := dialer.Dial(streamURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", streamURL, err)
	}
	return &StreamClient{url: streamURL, conn: conn}, nil
}

// ReadEvent blocks until the next decoded payload event arrives.
func (c *StreamClient) ReadEvent() (*StreamEvent, error) {
	_, msg, err := c.conn.ReadMessage()
	if err != nil {
		return nil, fmt.Errorf("stream read failed: %w", err)
	}

	var event StreamEvent
	if err := json.Unmarshal(msg, &event); err != nil {
		return nil, fmt.Errorf("malformed stream event: %w", err)
	}

	// Keep the raw document for order-preserving rendering.
	var envelope struct {
		Document json.RawMessage `json:"document"`
	}
	if err := json.Unmarshal(msg, &envelope); err == nil {
		event.RawDocument = envelope.Document
	}

	return &event, nil
}

// URL returns the stream endpoint this client is connected to.
func (c *StreamClient) URL() string {
	return c.url
}

// Close closes the underlying connection.
func (c *StreamClient) Close() error {
	return c.conn.Close()
}

// DocumentKeys returns the document's keys in their on-wire order,
// recovered from the raw JSON. Falls back to unspecified map order when
// the raw document is unavailable.
func (e *StreamEvent) DocumentKeys() []string {
	if len(e.RawDocument) > 0 {
		if keys, err := orderedKeys(e.RawDocument); err == nil {
			return keys
		}
	}
	keys := make([]string, 0, len(e.Document))
	for k := range e.Document {
		keys = append(keys, k)
	}
	return keys
}

// orderedKeys extracts top-level object keys in document order.
func orderedKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("document is not an object")
	}

	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		keys = append(keys, key)

		// Skip the value.
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}
