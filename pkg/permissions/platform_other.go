//go:build !unix

package permissions

// Supported reports whether the platform has POSIX permission bits. The
// policy has no meaning without them, so callers treat it as a no-op.
const Supported = false

func isPlatformInvalid(error) bool {
	return false
}
