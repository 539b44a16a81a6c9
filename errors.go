package noteshub

import (
	"errors"
	"fmt"
	"os"
)

var (
	// ErrContentRootInvalid is returned when the content root cannot be read at all.
	ErrContentRootInvalid = errors.New("invalid content root")

	// ErrOutputLayout is returned when the output directory tree cannot be created.
	ErrOutputLayout = errors.New("cannot create output layout")

	// ErrConverterUnavailable is returned by the Unavailable document converter.
	ErrConverterUnavailable = errors.New("document converter unavailable")

	// ErrUnsupportedConfig is returned for config files of an unknown format.
	ErrUnsupportedConfig = errors.New("unsupported config format")
)

// FileError is a per-file failure.  It never stops a build; it is collected
// into the BuildResult and reported at the end.
type FileError struct {
	// Path of the failing file relative to the content root
	File string
	Err  error
}

func (e *FileError) Error() string {
	return fmt.Sprintf("%s: %s", e.File, e.Err.Error())
}

func (e *FileError) Unwrap() error {
	return e.Err
}

func panicOrError(err error) error {
	if err != nil {
		if os.Getenv("PANIC_ON_ALL_ERRORS") == "true" || os.Getenv("NOTESHUB_PANIC_ON_ERRORS") == "true" {
			panic(err)
		}
	}
	return err
}
