package runtime

// CompletionType is the discriminant of an ES5.1 §8.9 Completion record.
type CompletionType int

const (
	// Normal completion: continue to the next statement (or, for
	// expression evaluation, just the resulting Value).
	Normal CompletionType = iota
	// Break unwinds to the nearest enclosing (optionally labeled) loop or
	// switch statement.
	Break
	// Continue unwinds to the top of the nearest enclosing (optionally
	// labeled) loop's next iteration.
	Continue
	// Return unwinds the current function call, yielding Value as the
	// call's result.
	Return
	// Throw unwinds to the nearest enclosing try/catch (or out of the
	// program), carrying an *Exception instead of a plain Value.
	Throw
)

// Completion is the statement-evaluator's return type (spec.md §3.3):
// every statement produces one, and the block/loop/switch/try evaluators
// inspect Type to decide whether to keep evaluating, unwind, or propagate.
type Completion struct {
	Type      CompletionType
	Value     Value
	Target    string // label for Break/Continue; "" means the nearest unlabeled target
	Exception *Exception
}

// NormalCompletion wraps a Value as a Normal completion — the common case
// for expression statements and most abstract operations.
func NormalCompletion(v Value) Completion { return Completion{Type: Normal, Value: v} }

// BreakCompletion and ContinueCompletion build unwind signals, optionally
// carrying the label a labeled break/continue statement named.
func BreakCompletion(label string) Completion    { return Completion{Type: Break, Target: label} }
func ContinueCompletion(label string) Completion { return Completion{Type: Continue, Target: label} }

// ReturnCompletion builds a function-return signal carrying its value.
func ReturnCompletion(v Value) Completion { return Completion{Type: Return, Value: v} }

// ThrowCompletion wraps an *Exception as a Throw completion.
func ThrowCompletion(exc *Exception) Completion { return Completion{Type: Throw, Exception: exc} }

// IsAbrupt reports whether this completion is anything other than Normal —
// ES5.1's term for a completion that must unwind past ordinary statement
// sequencing (§8.9).
func (c Completion) IsAbrupt() bool { return c.Type != Normal }
