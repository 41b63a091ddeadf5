package wire

// Config controls optional decode behaviors. The zero value matches the
// reference wire behavior. Config is passed per call; the package keeps no
// global state, so every function here is safe for concurrent use as long
// as callers don't share a *Message or *Encoder/*Decoder across goroutines.
type Config struct {
	// RejectDuplicateFields: when true, a field number that appears more
	// than once in a buffer fails the decode with ErrDuplicateField. When
	// false (default), the last occurrence wins and keeps the position of
	// the first one.
	RejectDuplicateFields bool
}
