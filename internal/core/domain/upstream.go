package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// upstreamObject is a catalog entry exactly as the external API sent it.
type upstreamObject map[string]json.RawMessage

func decodeObject(data []byte) (upstreamObject, error) {
	var obj upstreamObject
	if err := json.Unmarshal(data, &obj); err != nil {
		return nil, err
	}
	if obj == nil {
		return nil, errors.New("catalog entry is null")
	}
	return obj, nil
}

// encode writes the object with extra merged over it.
func (o upstreamObject) encode(extra map[string]any) ([]byte, error) {
	out := make(map[string]any, len(o)+len(extra))
	for k, v := range o {
		out[k] = v
	}
	for k, v := range extra {
		out[k] = v
	}
	return json.Marshal(out)
}

// fieldReader extracts scalar fields from an upstream object, keeping the
// first error. Absent and null fields read as zero values.
type fieldReader struct {
	obj upstreamObject
	err error
}

// text accepts a string or a number; numbers keep their JSON spelling so a
// numeric id 7 reads as "7".
func (r *fieldReader) text(key string) string {
	raw, ok := r.present(key)
	if !ok {
		return ""
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		r.fail(key, "string or number")
		return ""
	}
	return n.String()
}

// number accepts a number or a numeric string.
func (r *fieldReader) number(key string) float64 {
	raw, ok := r.present(key)
	if !ok {
		return 0
	}
	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		var s string
		if json.Unmarshal(raw, &s) != nil {
			r.fail(key, "number")
			return 0
		}
		n = json.Number(strings.TrimSpace(s))
	}
	f, err := n.Float64()
	if err != nil {
		r.fail(key, "number")
		return 0
	}
	return f
}

func (r *fieldReader) present(key string) (json.RawMessage, bool) {
	if r.err != nil {
		return nil, false
	}
	raw, ok := r.obj[key]
	if !ok || bytes.Equal(bytes.TrimSpace(raw), []byte("null")) {
		return nil, false
	}
	return raw, true
}

func (r *fieldReader) fail(key, want string) {
	r.err = fmt.Errorf("catalog field %q: expected %s", key, want)
}
