//go:build unix

package permissions

import (
	"errors"

	"golang.org/x/sys/unix"
)

// Supported reports whether the platform has POSIX permission bits.
const Supported = true

func isPlatformInvalid(err error) bool {
	return errors.Is(err, unix.EINVAL)
}
