// Package parse decodes raw payloads from the TfL Unified API into
// plain structs. It knows about the wire format only; filtering and
// normalization happen in the root package.
package parse

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
	"github.com/spkg/bom"
)

// The BOM reader strips unicode BOMs if present. Upstream shouldn't
// send one, but stripping it is free and json.Decoder chokes on it.
func decode(data []byte, v interface{}) error {
	dec := json.NewDecoder(bom.NewReader(bytes.NewReader(data)))
	if err := dec.Decode(v); err != nil {
		return errors.Wrap(err, "decoding payload")
	}
	return nil
}

// Reports the first JSON token of the payload, so callers can tell an
// array response from an object response.
func firstToken(data []byte) (json.Delim, error) {
	dec := json.NewDecoder(bom.NewReader(bytes.NewReader(data)))
	tok, err := dec.Token()
	if err != nil {
		if err == io.EOF {
			return 0, errors.New("empty payload")
		}
		return 0, errors.Wrap(err, "reading payload")
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return 0, errors.Errorf("unexpected token %v", tok)
	}
	return delim, nil
}
