package store

import (
	"encoding/json"
	"fmt"

	"github.com/btxtech/prontuario/internal/record"
)

// marshalPayload converts a document payload to JSON TEXT for the
// events.payload column. Clinical events store the empty string.
func marshalPayload(p *record.DocPayload) (string, error) {
	if p == nil {
		return "", nil
	}
	data, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("marshal payload: %w", err)
	}
	return string(data), nil
}

// unmarshalPayload parses the payload column back into the union
// variant selected by the event type. Empty text means no payload.
func unmarshalPayload(t record.EventType, data string) (*record.DocPayload, error) {
	if data == "" || data == "{}" || !t.Documental() {
		return nil, nil
	}
	p, err := record.DecodePayload(t, []byte(data))
	if err != nil {
		return nil, fmt.Errorf("unmarshal payload: %w", err)
	}
	return p, nil
}

// marshalSettings converts settings to JSON TEXT for the single
// settings row.
func marshalSettings(st record.Settings) (string, error) {
	data, err := json.Marshal(st)
	if err != nil {
		return "", fmt.Errorf("marshal settings: %w", err)
	}
	return string(data), nil
}

// unmarshalSettings parses the settings row value.
func unmarshalSettings(data string) (record.Settings, error) {
	var st record.Settings
	if data == "" {
		return st, nil
	}
	if err := json.Unmarshal([]byte(data), &st); err != nil {
		return record.Settings{}, fmt.Errorf("unmarshal settings: %w", err)
	}
	return st, nil
}
