package interp

import (
	"github.com/es5lang/es5/internal/builtins"
	"github.com/es5lang/es5/internal/runtime"
)

// Realm bundles everything spec.md §4.7 says must exist before a program
// runs: the global object, all intrinsic prototypes/constructors, and the
// global execution context those intrinsics are reachable from. Grounded
// on how _examples/CWBudde-go-dws/internal/interp/interpreter.go wires its
// own global Environment and built-in registry together at construction
// time, generalized here into its own type since ES5.1's global object is
// itself a scriptable Object (properties can be added/removed/shadowed at
// runtime) rather than a fixed symbol table.
type Realm struct {
	intrinsics *builtins.Intrinsics

	globalEnv *runtime.LexicalEnvironment
	globalCtx *runtime.ExecutionContext

	errorConstructors map[string]*runtime.Object
}

// NewRealm builds a fresh Realm: a new Intrinsics graph, a global Object
// Environment Record wrapping its GlobalObject (ES5.1 §10.2.3), and the
// global execution context program evaluation runs under.
func NewRealm(interp *Interpreter) *Realm {
	in := builtins.NewIntrinsics(
		func(args []string) {
			if interp.output != nil {
				interp.output(args)
			}
		},
		interp.rand.Float64,
	)

	globalRecord := &runtime.ObjectEnvironmentRecord{Bindings: in.GlobalObject, ProvideThis: false}
	globalEnv := runtime.NewLexicalEnvironment(globalRecord, nil)
	globalCtx := runtime.NewGlobalExecutionContext(globalEnv, in.GlobalObject, false)

	return &Realm{
		intrinsics:        in,
		globalEnv:         globalEnv,
		globalCtx:         globalCtx,
		errorConstructors: in.AllErrorConstructors(),
	}
}

// GlobalObject returns the realm's global object, e.g. for a host (pkg/es5)
// to install additional bindings before running a program.
func (r *Realm) GlobalObject() *runtime.Object { return r.intrinsics.GlobalObject }

// Intrinsics exposes the realm's built-in prototypes/constructors, used by
// evaluator code that needs to construct or recognize a built-in value
// (e.g. boxing a primitive `this` against the right prototype, or building
// the `arguments` object against ObjectPrototype).
func (r *Realm) Intrinsics() *builtins.Intrinsics { return r.intrinsics }
