package runtime

// Reference is the ES5.1 §8.7 Reference type: the transient, non-Value
// result of evaluating an identifier or member expression, carrying enough
// information for GetValue/PutValue (internal/interp, since resolving a
// primitive base through ToObject needs the running Realm's wrapper
// prototypes) to read or write the referenced binding or property.
type Reference struct {
	// Base is the base value: a *Object or primitive Value for a property
	// reference, or nil for an environment-record reference (see Env).
	Base Value
	// Env is set instead of Base when this reference resolves to a
	// binding in an environment record (an identifier reference) rather
	// than a property of an object.
	Env EnvironmentRecord
	// Name is the referenced property name or binding identifier.
	Name string
	// Strict marks whether the reference was produced by strict-mode code,
	// controlling whether a failed PutValue raises or is ignored.
	Strict bool
}

// IsUnresolvable reports whether this reference has no base at all — the
// identifier named by Name does not exist in any environment record on the
// scope chain (ES5.1 §8.7, GetBase/HasPrimitiveBase combination used by
// GetValue to decide whether to raise ReferenceError).
func (r *Reference) IsUnresolvable() bool {
	return r.Env == nil && r.Base == nil
}

// IsPropertyReference reports whether this reference names a property of
// an object or primitive, rather than an environment-record binding.
func (r *Reference) IsPropertyReference() bool {
	return r.Env == nil && r.Base != nil
}

// HasPrimitiveBase reports whether Base holds a Boolean/Number/String
// rather than an Object — GetValue must go through ToObject to read a
// property off of one (ES5.1 §8.7.1 step 3).
func (r *Reference) HasPrimitiveBase() bool {
	if !r.IsPropertyReference() {
		return false
	}
	switch r.Base.(type) {
	case *Object:
		return false
	default:
		return true
	}
}

// NewPropertyReference builds a Reference to a named property of base.
func NewPropertyReference(base Value, name string, strict bool) *Reference {
	return &Reference{Base: base, Name: name, Strict: strict}
}

// NewEnvironmentReference builds a Reference to an identifier binding
// resolved to env (nil env means the identifier is unresolvable).
func NewEnvironmentReference(env EnvironmentRecord, name string, strict bool) *Reference {
	return &Reference{Env: env, Name: name, Strict: strict}
}
