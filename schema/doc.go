// Package schema declares output shapes for structured generation and
// validates candidate values against them.
//
// A Schema names a set of Fields; each Field carries a primitive or
// composite type, an optional enum domain, numeric bounds and an Optional
// flag. Object and array fields recurse, so arbitrarily nested shapes can
// be declared.
//
// Validation is deliberately strict. Downstream persistence and chained
// agents assume exact-typed data, so the validator rejects rather than
// coerces: a numeric-looking string never becomes a number, an unknown
// enum value is never clamped to the nearest legal one. All failures from
// one pass are collected into a single *ValidationError so a caller (or a
// prompt-repair loop built on top) can see every offending field at once.
//
//	s := &schema.Schema{
//		Name: "score",
//		Fields: map[string]schema.Field{
//			"value":  schema.IntRange(0, 100),
//			"reason": schema.String(),
//		},
//	}
//	out, err := s.Validate(map[string]any{"value": 87, "reason": "strong fit"})
package schema
