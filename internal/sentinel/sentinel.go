package sentinel

// Compile-time check that Error implements the error interface.
var _ error = Error("")

// Error is an error backed by a string constant. Because the type is
// comparable, the == comparison errors.Is falls back on matches correctly
// through wrapped error chains, and const declarations prevent the
// reassignment that errors.New vars allow.
type Error string

// Error implements the error interface.
func (e Error) Error() string {
	return string(e)
}
