package httputil

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxJSONBodySize caps JSON request bodies
const MaxJSONBodySize = 10 << 20

// ErrInvalidJSON is returned when a body is present but is not JSON
var ErrInvalidJSON = errors.New("invalid JSON")

// ReadJSON reads the request body as raw JSON without decoding it.
// An empty body yields nil so callers can tell "no body" from "{}".
func ReadJSON(w http.ResponseWriter, r *http.Request) (json.RawMessage, error) {
	// Limit request body (requires w for proper 413 response)
	r.Body = http.MaxBytesReader(w, r.Body, MaxJSONBodySize)

	data, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, fmt.Errorf("read body: %w", err)
	}

	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	if !json.Valid(data) {
		return nil, ErrInvalidJSON
	}
	return json.RawMessage(data), nil
}
