package runtime

// PropertyDescriptor is an ES5.1 §8.10 property descriptor: either a data
// descriptor (Value/Writable) or an accessor descriptor (Get/Set), plus the
// Enumerable/Configurable attributes common to both. IsAccessor selects
// which half is live, mirroring the teacher's PropertyDescriptor/
// PropertyAccessor split between data access and metadata.
type PropertyDescriptor struct {
	Value        Value
	Writable     bool
	Get          *Object
	Set          *Object
	Enumerable   bool
	Configurable bool
	IsAccessor   bool
}

// DataProperty builds a fully-writable, enumerable, configurable data
// descriptor — the shape most properties created by the evaluator and
// builtins start as (spec.md §4.7's "ordinary property creation" default).
func DataProperty(v Value) *PropertyDescriptor {
	return &PropertyDescriptor{Value: v, Writable: true, Enumerable: true, Configurable: true}
}

// AccessorProperty builds an accessor descriptor from a getter and/or
// setter function object (either may be nil).
func AccessorProperty(get, set *Object, enumerable, configurable bool) *PropertyDescriptor {
	return &PropertyDescriptor{Get: get, Set: set, Enumerable: enumerable, Configurable: configurable, IsAccessor: true}
}

// IsDataDescriptor reports whether d describes a data property (ES5.1
// §8.10.2). A nil descriptor is neither.
func (d *PropertyDescriptor) IsDataDescriptor() bool {
	return d != nil && !d.IsAccessor
}

// IsAccessorDescriptor reports whether d describes an accessor property
// (ES5.1 §8.10.1).
func (d *PropertyDescriptor) IsAccessorDescriptor() bool {
	return d != nil && d.IsAccessor
}

// propertyMap is an insertion-ordered string-keyed map of property
// descriptors. Go's map has no iteration order, but ES5.1 property
// enumeration order (for-in, Object.keys, JSON.stringify) is observable, so
// own-property names are additionally tracked in order.
type propertyMap struct {
	entries map[string]*PropertyDescriptor
	order   []string
}

func newPropertyMap() *propertyMap {
	return &propertyMap{entries: make(map[string]*PropertyDescriptor)}
}

func (m *propertyMap) get(name string) *PropertyDescriptor {
	return m.entries[name]
}

func (m *propertyMap) has(name string) bool {
	_, ok := m.entries[name]
	return ok
}

func (m *propertyMap) set(name string, d *PropertyDescriptor) {
	if _, exists := m.entries[name]; !exists {
		m.order = append(m.order, name)
	}
	m.entries[name] = d
}

func (m *propertyMap) delete(name string) {
	if _, exists := m.entries[name]; !exists {
		return
	}
	delete(m.entries, name)
	for i, n := range m.order {
		if n == name {
			m.order = append(m.order[:i], m.order[i+1:]...)
			break
		}
	}
}

// names returns own property names in insertion order.
func (m *propertyMap) names() []string {
	out := make([]string, len(m.order))
	copy(out, m.order)
	return out
}
