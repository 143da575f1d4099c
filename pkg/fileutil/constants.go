// Package fileutil provides the filesystem abstraction and permission constants.
package fileutil

// Standard file permission constants
const (
	// ReadWriteUserPermission represents read/write permissions for the file owner only (0600 in octal)
	ReadWriteUserPermission = 0o600
	// ReadWriteUserReadOthers represents read/write for owner, read for others (0644 in octal)
	ReadWriteUserReadOthers = 0o644
	// ReadWriteExecuteUserReadExecuteOthers represents rwx for owner, r-x for group and others (0755 in octal)
	ReadWriteExecuteUserReadExecuteOthers = 0o755
	// NormalizedFilePermission is the smallest mode a regular file has after normalization (0664 in octal)
	NormalizedFilePermission = 0o664
	// NormalizedDirPermission is the smallest mode a directory has after normalization (0775 in octal)
	NormalizedDirPermission = 0o775
)
