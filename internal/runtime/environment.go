package runtime

// EnvironmentRecord is the common interface of ES5.1 §10.2's two flavors of
// environment record: Declarative (function scopes, catch clauses) and
// Object (the global object, and `with` statement scopes). A
// LexicalEnvironment chains one of these to an Outer environment, forming
// the scope chain spec.md §3.5 describes.
//
// This mirrors the teacher's Environment.Get/Set/Define/Has split
// (_examples/CWBudde-go-dws/internal/interp/runtime/environment.go) but is
// reshaped around ES5.1's own binding vocabulary (mutable/immutable
// bindings, delete-ability, the `with` object record's unscopables-free
// HasProperty delegation) and split into two concrete implementations
// instead of one, since the Object variant must delegate to a host object's
// [[Get]]/[[Put]]/[[HasProperty]]/[[Delete]] rather than a private Go map.
type EnvironmentRecord interface {
	// HasBinding reports whether this record has a binding for name.
	HasBinding(name string) bool
	// CreateMutableBinding creates a new mutable binding for name,
	// initialized to Undefined. deletable marks whether the binding may
	// later be removed with DeleteBinding (true for `var`/function
	// declarations created by eval, false for ordinary var/function
	// declarations at the top of a function or program).
	CreateMutableBinding(name string, deletable bool)
	// SetMutableBinding assigns value to name's binding. strict controls
	// whether assigning to an immutable or read-only binding raises a
	// TypeError (true) or is silently ignored (false) — ES5.1 §10.2.1. For
	// a name the record lacks, the declarative record raises a
	// ReferenceError when strict and otherwise creates the binding; the
	// object record performs a [[Put]] on its backing object.
	SetMutableBinding(name string, value Value, strict bool) *Exception
	// GetBindingValue returns name's bound value, or raises a
	// ReferenceError if unresolvable (strict) or returns Undefined
	// (non-strict, only relevant for the unusual case of an unresolvable
	// binding reported as "resolvable" by HasBinding racing a delete).
	GetBindingValue(name string, strict bool) (Value, *Exception)
	// DeleteBinding removes name's binding, returning whether it could be
	// deleted (a non-deletable binding reports false; a missing one reports
	// true).
	DeleteBinding(name string) bool
	// ImplicitThisValue returns the `this` value a `with` statement's
	// object environment record supplies when invoking an unqualified
	// function-call expression resolved through it (ES5.1 §10.2.1.2.6);
	// Declarative records always return Undefined.
	ImplicitThisValue() Value
}

// binding is one declarative-record entry.
type binding struct {
	value       Value
	mutable     bool
	deletable   bool
	initialized bool
}

// DeclarativeEnvironmentRecord implements ES5.1 §10.2.1.1: a private,
// set of name->value bindings, used for function call scopes, the catch
// clause's single exception binding, and a named function expression's
// self-binding (CreateImmutableBinding).
type DeclarativeEnvironmentRecord struct {
	bindings map[string]*binding
}

// NewDeclarativeEnvironmentRecord creates an empty declarative record.
func NewDeclarativeEnvironmentRecord() *DeclarativeEnvironmentRecord {
	return &DeclarativeEnvironmentRecord{bindings: make(map[string]*binding)}
}

func (r *DeclarativeEnvironmentRecord) HasBinding(name string) bool {
	_, ok := r.bindings[name]
	return ok
}

func (r *DeclarativeEnvironmentRecord) CreateMutableBinding(name string, deletable bool) {
	r.bindings[name] = &binding{value: Undefined, mutable: true, deletable: deletable, initialized: true}
}

// CreateImmutableBinding creates an uninitialized immutable binding, used
// for a named function expression's own identifier (ES5.1 §13 NOTE 2).
func (r *DeclarativeEnvironmentRecord) CreateImmutableBinding(name string) {
	r.bindings[name] = &binding{mutable: false, initialized: false}
}

// InitializeImmutableBinding gives an immutable binding its one and only
// value.
func (r *DeclarativeEnvironmentRecord) InitializeImmutableBinding(name string, value Value) {
	if b, ok := r.bindings[name]; ok {
		b.value = value
		b.initialized = true
	}
}

func (r *DeclarativeEnvironmentRecord) SetMutableBinding(name string, value Value, strict bool) *Exception {
	b, ok := r.bindings[name]
	if !ok {
		if strict {
			return NewReferenceError(name + " is not defined")
		}
		r.bindings[name] = &binding{value: value, mutable: true, deletable: true, initialized: true}
		return nil
	}
	if !b.mutable {
		if strict {
			return NewTypeError("assignment to constant variable " + name)
		}
		return nil
	}
	b.value = value
	b.initialized = true
	return nil
}

func (r *DeclarativeEnvironmentRecord) GetBindingValue(name string, strict bool) (Value, *Exception) {
	b, ok := r.bindings[name]
	if !ok || !b.initialized {
		if strict {
			return Undefined, NewReferenceError(name + " is not defined")
		}
		return Undefined, nil
	}
	return b.value, nil
}

func (r *DeclarativeEnvironmentRecord) DeleteBinding(name string) bool {
	b, ok := r.bindings[name]
	if !ok {
		return true
	}
	if !b.deletable {
		return false
	}
	delete(r.bindings, name)
	return true
}

func (r *DeclarativeEnvironmentRecord) ImplicitThisValue() Value { return Undefined }

// ObjectEnvironmentRecord implements ES5.1 §10.2.1.2: bindings are
// properties of a backing object — the global object for the program-level
// environment, or the expression object for a `with` statement.
type ObjectEnvironmentRecord struct {
	Bindings      *Object
	ProvideThis   bool // true only for `with` statement object records
}

// NewObjectEnvironmentRecord wraps obj as an environment record.
func NewObjectEnvironmentRecord(obj *Object, provideThis bool) *ObjectEnvironmentRecord {
	return &ObjectEnvironmentRecord{Bindings: obj, ProvideThis: provideThis}
}

func (r *ObjectEnvironmentRecord) HasBinding(name string) bool {
	return r.Bindings.HasProperty(name)
}

func (r *ObjectEnvironmentRecord) CreateMutableBinding(name string, deletable bool) {
	r.Bindings.DefineDataProperty(name, Undefined, true, true, deletable)
}

func (r *ObjectEnvironmentRecord) SetMutableBinding(name string, value Value, strict bool) *Exception {
	return r.Bindings.Put(name, value, strict)
}

func (r *ObjectEnvironmentRecord) GetBindingValue(name string, strict bool) (Value, *Exception) {
	if !r.Bindings.HasProperty(name) {
		if strict {
			return Undefined, NewReferenceError(name + " is not defined")
		}
		return Undefined, nil
	}
	return r.Bindings.Get(name)
}

func (r *ObjectEnvironmentRecord) DeleteBinding(name string) bool {
	ok, _ := r.Bindings.Delete(name, false)
	return ok
}

func (r *ObjectEnvironmentRecord) ImplicitThisValue() Value {
	if r.ProvideThis {
		return r.Bindings
	}
	return Undefined
}

// LexicalEnvironment is a node in the scope chain: an environment record
// plus a pointer to the next-outer environment (nil at the global
// environment), per ES5.1 §10.2.
type LexicalEnvironment struct {
	Record EnvironmentRecord
	Outer  *LexicalEnvironment
}

// NewLexicalEnvironment links record to outer.
func NewLexicalEnvironment(record EnvironmentRecord, outer *LexicalEnvironment) *LexicalEnvironment {
	return &LexicalEnvironment{Record: record, Outer: outer}
}
