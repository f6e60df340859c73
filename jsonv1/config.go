package jsonv1

import (
	"bytes"
	"encoding/json"

	"github.com/vitas/task-adapters/adapter"
	"github.com/vitas/task-adapters/internal/wire"
	"github.com/vitas/task-adapters/task"
)

const (
	fieldDefaultValue = "default-value"
	fieldSecure       = "secure"
	fieldRequired     = "required"
)

// propertyWire is the outbound form of a property. The default value is
// the plugin's own declaration and is never echoed back.
type propertyWire struct {
	Value    *string `json:"value,omitempty"`
	Secure   bool    `json:"secure"`
	Required bool    `json:"required"`
}

// configWire marshals a config as an object keyed by property key,
// keeping the config's order.
type configWire []task.Property

func (c configWire) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range c {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		value, err := json.Marshal(propertyWire{
			Value:    p.Value,
			Secure:   p.IsSecure(),
			Required: p.IsRequired(),
		})
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// SerializeConfig encodes cfg as
//
//	{"<key>": {"value": "...", "secure": false, "required": true}, ...}
//
// "value" is omitted for properties without one; absent flags are false.
func (h *Handler) SerializeConfig(cfg *task.Config) []byte {
	return mustMarshal(configWire(cfg.Properties()))
}

// DeserializeConfig decodes a plugin's configuration declaration:
//
//	{"<key>": {"default-value": "...", "secure": true, "required": false}, ...}
//
// Every member becomes a property, in document order. All members are
// checked before failing, and every violation is reported.
func (h *Handler) DeserializeConfig(raw []byte) (*task.Config, error) {
	obj, err := h.decode(adapter.TargetTaskConfig, raw)
	if err != nil {
		return nil, err
	}

	var c adapter.Collector
	if len(obj) == 0 {
		c.Add("The Json for Task Config cannot be empty")
	}

	cfg := task.NewConfig()
	seen := make(map[string]bool, len(obj))
	for _, m := range obj {
		if seen[m.Name] {
			c.Addf("Key: '%s' - The Json for Task Config contains a duplicate key", m.Name)
			continue
		}
		seen[m.Name] = true
		cfg.Add(parseProperty(m, &c))
	}

	if err := h.check(&c, adapter.TargetTaskConfig, raw); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseProperty(m wire.Member, c *adapter.Collector) task.Property {
	p := task.NewProperty(m.Name)
	if wire.IsNull(m.Value) {
		return p
	}

	fields, err := wire.DecodeObject(m.Value)
	if err != nil {
		c.Addf("Key: '%s' - The Json for Task Config should contain an object", m.Name)
		return p
	}

	if raw, ok := fields.Get(fieldDefaultValue); ok {
		if s, ok := wire.String(raw); ok {
			p = p.WithDefault(s)
		} else {
			c.Addf("Key: '%s' - The Json for Task Config should contain a not-null 'default-value' of type String", m.Name)
		}
	}
	if raw, ok := fields.Get(fieldSecure); ok {
		if b, ok := wire.Bool(raw); ok {
			p = p.WithSecure(b)
		} else {
			c.Addf("Key: '%s' - The Json for Task Config should contain a 'secure' field of type Boolean", m.Name)
		}
	}
	if raw, ok := fields.Get(fieldRequired); ok {
		if b, ok := wire.Bool(raw); ok {
			p = p.WithRequired(b)
		} else {
			c.Addf("Key: '%s' - The Json for Task Config should contain a 'required' field of type Boolean", m.Name)
		}
	}
	return p
}

// mustMarshal encodes values built only from strings, bools and maps of
// strings, which cannot fail.
func mustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic("jsonv1: marshal: " + err.Error())
	}
	return b
}
