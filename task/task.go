// Package task defines the host-side objects exchanged with task plugins.
//
// Values in this package are plain data. Wire formats live in the
// versioned handler packages (see jsonv1); nothing here knows about JSON
// field names.
package task

// Property is a single entry of a task configuration.
//
// Optional attributes are pointers so that "absent" stays distinct from
// an explicit zero value: Secure == nil is not the same as *Secure == false.
type Property struct {
	Key          string
	Value        *string
	DefaultValue *string
	Secure       *bool
	Required     *bool
}

// NewProperty returns a property with only its key set.
func NewProperty(key string) Property {
	return Property{Key: key}
}

func (p Property) WithValue(v string) Property {
	p.Value = &v
	return p
}

func (p Property) WithDefault(v string) Property {
	p.DefaultValue = &v
	return p
}

func (p Property) WithSecure(b bool) Property {
	p.Secure = &b
	return p
}

func (p Property) WithRequired(b bool) Property {
	p.Required = &b
	return p
}

// IsSecure reports the effective secure flag. An absent flag is false.
func (p Property) IsSecure() bool { return p.Secure != nil && *p.Secure }

// IsRequired reports the effective required flag. An absent flag is false.
func (p Property) IsRequired() bool { return p.Required != nil && *p.Required }

// Config is an ordered set of properties with unique keys.
// The zero value is an empty config ready to use.
type Config struct {
	props []Property
	index map[string]int
}

// NewConfig builds a config from props, keeping the first position of a
// key and the last value written for it.
func NewConfig(props ...Property) *Config {
	c := &Config{}
	for _, p := range props {
		c.Add(p)
	}
	return c
}

// Add appends p, or replaces the existing property with the same key in place.
func (c *Config) Add(p Property) {
	if c.index == nil {
		c.index = map[string]int{}
	}
	if i, ok := c.index[p.Key]; ok {
		c.props[i] = p
		return
	}
	c.index[p.Key] = len(c.props)
	c.props = append(c.props, p)
}

// Get returns the property stored under key.
func (c *Config) Get(key string) (Property, bool) {
	if c == nil {
		return Property{}, false
	}
	i, ok := c.index[key]
	if !ok {
		return Property{}, false
	}
	return c.props[i], true
}

// Properties returns a copy of the properties in insertion order.
func (c *Config) Properties() []Property {
	if c == nil {
		return nil
	}
	out := make([]Property, len(c.props))
	copy(out, c.props)
	return out
}

// Keys returns the property keys in insertion order.
func (c *Config) Keys() []string {
	if c == nil {
		return nil
	}
	keys := make([]string, len(c.props))
	for i, p := range c.props {
		keys[i] = p.Key
	}
	return keys
}

func (c *Config) Len() int {
	if c == nil {
		return 0
	}
	return len(c.props)
}

// ExecutionContext is what the host knows about the environment a task
// runs in. WorkingDirectory is expected to be absolute; nothing checks it.
type ExecutionContext struct {
	EnvironmentVariables map[string]string
	WorkingDirectory     string
}
