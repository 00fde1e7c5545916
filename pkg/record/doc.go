// Package record models the host-framework seams templated attributes rely
// on: reading and writing a named attribute on a record, running callbacks
// before validation, and persisting the result. Persistence itself is a black
// box; MemoryStore exists so the save sequence can be exercised end to end.
package record
