/*
Package errors provides semantic error types for the objectassoc library.

The core registry operations never fail: a missing association and a value
stored under a different type both read as "absent". The errors here are
returned by the strict lookups and by configuration loading.

Common Errors:

	var (
	    ErrNotFound     = errors.New("association not found")
	    ErrTypeMismatch = errors.New("association type mismatch")
	    ErrInvalidInput = errors.New("invalid input")
	)

Usage:

	session, err := registry.Lookup[Session](reg, conn, sessionKey)
	if err != nil {
	    if errors.IsTypeMismatch(err) {
	        // stored under a different type
	    }
	    return err
	}

	err := errors.NewNotFoundError("net.Conn@0xc000010000", "session")
	err := errors.NewTypeMismatchError("session", "*main.Session", "*main.User")
	err := errors.NewValidationError("shards", "must be positive")

The error types implement the error interface and support wrapping,
making them compatible with Go's standard error handling patterns.
*/
package errors
