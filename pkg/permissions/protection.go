// Package permissions normalizes POSIX permission bits on directories and
// regular files.
//
// The policy only ever adds bits: owner and group get read and write, others
// get read, and directories additionally get execute for all three subjects.
// Any bit that was set before normalization stays set.
package permissions

import (
	"io/fs"
	"strings"
)

// Subject is one of the three POSIX permission scopes.
type Subject int

// Permission subjects, in the order they appear in a mode string.
const (
	Owner Subject = iota
	Group
	Other
)

// Subjects lists every subject in mode-string order.
var Subjects = []Subject{Owner, Group, Other}

// shift returns the bit offset of the subject inside the permission field.
func (s Subject) shift() uint {
	switch s {
	case Owner:
		return 6
	case Group:
		return 3
	default:
		return 0
	}
}

// String returns the subject name.
func (s Subject) String() string {
	switch s {
	case Owner:
		return "owner"
	case Group:
		return "group"
	case Other:
		return "other"
	default:
		return "unknown"
	}
}

// Protection is the read/write/execute set granted to one subject.
type Protection uint8

// Protection flags.
const (
	Execute Protection = 1 << iota
	Write
	Read

	// None grants nothing.
	None Protection = 0
	// ReadWrite grants read and write.
	ReadWrite = Read | Write
	// All grants read, write and execute.
	All = Read | Write | Execute
)

// Has reports whether every flag in want is set.
func (p Protection) Has(want Protection) bool {
	return p&want == want
}

// With returns p with the flags in add set.
func (p Protection) With(add Protection) Protection {
	return (p | add) & All
}

// Missing returns the flags in want that p does not have.
func (p Protection) Missing(want Protection) Protection {
	return want &^ p & All
}

// String renders the set the way ls does, e.g. "rw-".
func (p Protection) String() string {
	var b strings.Builder
	for _, f := range []struct {
		flag Protection
		char byte
	}{{Read, 'r'}, {Write, 'w'}, {Execute, 'x'}} {
		if p.Has(f.flag) {
			b.WriteByte(f.char)
		} else {
			b.WriteByte('-')
		}
	}
	return b.String()
}

// ProtectionOf extracts the protection set of one subject from mode.
func ProtectionOf(mode fs.FileMode, s Subject) Protection {
	return Protection(mode>>s.shift()) & All
}

// WithProtection replaces the protection set of one subject in mode. Type
// bits, setuid/setgid/sticky and the other subjects are left as they are.
func WithProtection(mode fs.FileMode, s Subject, p Protection) fs.FileMode {
	mask := fs.FileMode(All) << s.shift()
	return mode&^mask | fs.FileMode(p&All)<<s.shift()
}
