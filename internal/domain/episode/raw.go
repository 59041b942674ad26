package episode

import (
	"bytes"
	"encoding/json"
)

// Raw is an export row with every field preserved, for tools that rewrite the export.
type Raw map[string]json.RawMessage

// Field keys rewritten by the export tools.
const (
	KeyTags = "Tags"
)

// Text reads a field with the same leniency as Record.
func (r Raw) Text(key string) string {
	msg, ok := r[key]
	if !ok {
		return ""
	}
	var t Text
	if err := t.UnmarshalJSON(msg); err != nil {
		return ""
	}
	return string(t)
}

// SetText stores a string field. Characters such as & < > are kept as-is, not
// rewritten to \u escapes.
func (r Raw) SetText(key, value string) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	_ = enc.Encode(value) //nolint:errchkjson // strings always encode
	r[key] = bytes.TrimSuffix(buf.Bytes(), []byte("\n"))
}
