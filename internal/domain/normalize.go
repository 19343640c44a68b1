package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

var jsonNull = []byte("null")

func isEmptyJSON(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) == 0 || bytes.Equal(raw, jsonNull)
}

// ParseStringList normalizes list fields such as sizes and colors. The API
// sends them in several shapes; the fallback chain is
// array -> JSON-encoded array in a string -> comma-separated string -> empty.
// Entries are trimmed and blanks dropped. The result is never nil.
func ParseStringList(raw json.RawMessage) []string {
	if isEmptyJSON(raw) {
		return []string{}
	}

	var items []any
	if err := json.Unmarshal(raw, &items); err == nil {
		return cleanList(stringify(items))
	}

	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return []string{}
	}
	s = strings.TrimSpace(s)

	if strings.HasPrefix(s, "[") {
		if err := json.Unmarshal([]byte(s), &items); err == nil {
			return cleanList(stringify(items))
		}
	}

	return cleanList(strings.Split(s, ","))
}

func stringify(items []any) []string {
	out := make([]string, 0, len(items))
	for _, it := range items {
		switch v := it.(type) {
		case string:
			out = append(out, v)
		case nil:
		default:
			out = append(out, fmt.Sprint(v))
		}
	}
	return out
}

func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// ParseID reads an identifier that is either a plain string or number, or a
// populated document carrying _id or id.
func ParseID(raw json.RawMessage) string {
	if isEmptyJSON(raw) {
		return ""
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return strings.TrimSpace(s)
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err == nil {
		return n.String()
	}

	var doc struct {
		MongoID json.RawMessage `json:"_id"`
		ID      json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(raw, &doc); err == nil {
		if id := ParseID(doc.MongoID); id != "" {
			return id
		}
		return ParseID(doc.ID)
	}
	return ""
}

// FlexInt decodes an integer sent either as a JSON number or a numeric string.
// Fractions are truncated; anything unparseable decodes to 0.
type FlexInt int

func (f *FlexInt) UnmarshalJSON(b []byte) error {
	if isEmptyJSON(b) {
		*f = 0
		return nil
	}
	s := strings.Trim(string(bytes.TrimSpace(b)), `"`)
	if n, err := strconv.Atoi(s); err == nil {
		*f = FlexInt(n)
		return nil
	}
	if x, err := strconv.ParseFloat(s, 64); err == nil {
		*f = FlexInt(int(x))
		return nil
	}
	*f = 0
	return nil
}
