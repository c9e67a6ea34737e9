package ui

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func makeEvent(t *testing.T, doc string) *StreamEvent {
	t.Helper()

	event := &StreamEvent{
		ReceivedAt:  time.Now(),
		Source:      "127.0.0.1:50000",
		PayloadSize: 8,
		RawDocument: json.RawMessage(doc),
	}
	if err := json.Unmarshal([]byte(doc), &event.Document); err != nil {
		t.Fatalf("bad test document: %v", err)
	}
	return event
}

func TestApplyEventKeepsFirstSeenOrder(t *testing.T) {
	m := NewWatchModel("test-gw", "ws://example/v1/stream")

	m.applyEvent(makeEvent(t, `{"Temperature_1":27.2,"Humidity_2":65.5}`))
	m.applyEvent(makeEvent(t, `{"Humidity_2":66.0,"Presence_3":1}`))

	want := []string{"Temperature_1", "Humidity_2", "Presence_3"}
	if len(m.order) != len(want) {
		t.Fatalf("order = %v, want %v", m.order, want)
	}
	for i, k := range want {
		if m.order[i] != k {
			t.Errorf("order[%d] = %q, want %q", i, m.order[i], k)
		}
	}

	if m.readings["Humidity_2"].Value != 66.0 {
		t.Errorf("Humidity_2 = %v, want updated value 66", m.readings["Humidity_2"].Value)
	}
	if m.TotalPayloads != 2 {
		t.Errorf("TotalPayloads = %d, want 2", m.TotalPayloads)
	}
}

func TestApplyEventFreshTracking(t *testing.T) {
	m := NewWatchModel("test-gw", "ws://example/v1/stream")

	m.applyEvent(makeEvent(t, `{"Temperature_1":27.2}`))
	m.applyEvent(makeEvent(t, `{"Presence_3":1}`))

	if m.fresh["Temperature_1"] {
		t.Error("Temperature_1 still marked fresh after later payload")
	}
	if !m.fresh["Presence_3"] {
		t.Error("Presence_3 not marked fresh")
	}
}

func TestApplyEventLogCapped(t *testing.T) {
	m := NewWatchModel("test-gw", "ws://example/v1/stream")

	for i := 0; i < maxEventLog+5; i++ {
		m.applyEvent(makeEvent(t, `{"Temperature_1":27.2}`))
	}

	if len(m.events) != maxEventLog {
		t.Errorf("event log length = %d, want %d", len(m.events), maxEventLog)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		name string
		in   any
		want string
	}{
		{
			name: "float drops trailing zeroes",
			in:   27.2,
			want: "27.2",
		},
		{
			name: "integer-valued float",
			in:   float64(1),
			want: "1",
		},
		{
			name: "vector",
			in:   map[string]any{"x": 1.234, "y": -1.234, "z": 0.0},
			want: "x=1.234  y=-1.234  z=0",
		},
		{
			name: "position",
			in:   map[string]any{"latitude": 39.9688, "longitude": -40.6298, "altitude": 25.0},
			want: "latitude=39.9688  longitude=-40.6298  altitude=25",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := formatValue(tt.in); got != tt.want {
				t.Errorf("formatValue(%v) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDocumentKeysPreservesWireOrder(t *testing.T) {
	event := makeEvent(t, `{"Temperature_5":25.5,"Analog Input_1":-12.34,"GPS_2":{"latitude":1,"longitude":2,"altitude":3}}`)

	keys := event.DocumentKeys()
	want := []string{"Temperature_5", "Analog Input_1", "GPS_2"}
	if strings.Join(keys, ",") != strings.Join(want, ",") {
		t.Errorf("DocumentKeys() = %v, want %v", keys, want)
	}
}

func TestDocumentKeysFallsBackWithoutRaw(t *testing.T) {
	event := makeEvent(t, `{"Temperature_1":27.2,"Humidity_2":65.5}`)
	event.RawDocument = nil

	keys := event.DocumentKeys()
	if len(keys) != 2 {
		t.Errorf("DocumentKeys() = %v, want 2 keys", keys)
	}
}
