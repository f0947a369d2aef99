package errcode

// Error code convention:
// - 0: no error
// - 4xxx: client-correctable errors (bad input, unknown template)
// - 5xxx: system errors that abort the render (missing fonts, failed draws)
const (
	OK              = 0
	InvalidInput    = 4000
	UnknownTemplate = 4001
	SystemError     = 5000
	FontMissing     = 5001
)
