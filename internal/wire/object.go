// Package wire decodes plugin payloads into ordered JSON members and
// answers structural type questions about individual values.
package wire

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/pkg/errors"
)

// Member is one name/value pair of a JSON object, in document order.
type Member struct {
	Name  string
	Value json.RawMessage
}

// Object is a decoded JSON object that remembers member order.
type Object []Member

// Has reports whether the object contains name.
func (o Object) Has(name string) bool {
	_, ok := o.Get(name)
	return ok
}

// Get returns the raw value of the last member called name.
func (o Object) Get(name string) (json.RawMessage, bool) {
	for i := len(o) - 1; i >= 0; i-- {
		if o[i].Name == name {
			return o[i].Value, true
		}
	}
	return nil, false
}

// DecodeObject decodes raw as a single JSON object. Anything else,
// including trailing data after the object, is an error.
func DecodeObject(raw []byte) (Object, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	tok, err := dec.Token()
	if err == io.EOF {
		return nil, errors.New("payload is empty")
	}
	if err != nil {
		return nil, errors.Wrap(err, "decode payload")
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errors.Errorf("payload must be a JSON object, got %s", describeToken(tok))
	}

	obj := Object{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, errors.Wrap(err, "decode member name")
		}
		name, ok := tok.(string)
		if !ok {
			return nil, errors.Errorf("unexpected member name %v", tok)
		}
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, errors.Wrapf(err, "decode member %q", name)
		}
		obj = append(obj, Member{Name: name, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, errors.Wrap(err, "decode end of object")
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, errors.New("unexpected data after JSON object")
	}
	return obj, nil
}

func describeToken(tok json.Token) string {
	switch v := tok.(type) {
	case json.Delim:
		if v == '[' {
			return "array"
		}
		return string(v)
	case string:
		return "string"
	case bool:
		return "boolean"
	case json.Number, float64:
		return "number"
	case nil:
		return "null"
	default:
		return "unknown token"
	}
}
