package permissions

import (
	"errors"
	"fmt"
	"io/fs"
)

// Normalization errors. A not-found path is never reported through these;
// it is an expected race and ends as OutcomeVanished.
var (
	// ErrReadMode is returned when the current mode of a path cannot be read.
	ErrReadMode = errors.New("could not load permissions")

	// ErrWriteMode is returned when the corrected mode cannot be written back.
	ErrWriteMode = errors.New("could not update permissions")

	// ErrInvalidMode is returned when the filesystem rejects the mode value
	// itself. MetadataFS implementations may wrap it to signal that case.
	ErrInvalidMode = errors.New("invalid permissions")
)

// WrapReadMode wraps ErrReadMode with the path and underlying cause.
func WrapReadMode(path string, err error) error {
	return fmt.Errorf("%w %s: %w", ErrReadMode, path, err)
}

// WrapWriteMode wraps ErrWriteMode with the path and underlying cause.
func WrapWriteMode(path string, err error) error {
	return fmt.Errorf("%w %s: %w", ErrWriteMode, path, err)
}

// WrapInvalidMode wraps ErrInvalidMode with the rejected mode and cause.
func WrapInvalidMode(path string, mode fs.FileMode, err error) error {
	return fmt.Errorf("%w %s for %s: %w", ErrInvalidMode, mode, path, err)
}

// isNotFound reports whether err means the path no longer exists.
func isNotFound(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

// isInvalidMode reports whether err means the mode value was rejected.
func isInvalidMode(err error) bool {
	return errors.Is(err, ErrInvalidMode) || errors.Is(err, fs.ErrInvalid) || isPlatformInvalid(err)
}
