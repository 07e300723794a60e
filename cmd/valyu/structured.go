package main

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// parseStructured validates a --structured argument and returns it compacted.
func parseStructured(raw string) (json.RawMessage, error) {
	var buf bytes.Buffer
	if err := json.Compact(&buf, []byte(raw)); err != nil {
		return nil, fmt.Errorf("parse --structured: %w", err)
	}
	return json.RawMessage(buf.Bytes()), nil
}
