// Package fallback substitutes a default result or alternate computation
// when the wrapped execution ultimately fails.
//
// A Fallback either carries a static Value or a Handler that computes one
// from the failure:
//
//	f := fallback.New[string](fallback.Config[string]{
//	    Value: "cached-default",
//	    HandleIf: func(err error) bool {
//	        return policy.KindOf(err) == policy.KindCircuitOpen
//	    },
//	})
//
// Failures not matched by HandleIf propagate unchanged, so fallback layers
// with different predicates chain cleanly through policy.Wrap: the
// innermost layer handles what it recognizes, anything else bubbles out.
package fallback
