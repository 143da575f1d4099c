package permissions

import "io/fs"

// Required returns the minimum protection set the policy demands for a
// subject. Directories additionally need execute so they can be traversed.
func Required(s Subject, isDir bool) Protection {
	want := ReadWrite
	if s == Other {
		want = Read
	}
	if isDir {
		want |= Execute
	}
	return want
}

// Apply adds every bit the policy requires to mode and reports whether
// anything had to be added. Bits are never removed.
func Apply(mode fs.FileMode, isDir bool) (fs.FileMode, bool) {
	target := mode
	changed := false
	for _, s := range Subjects {
		have := ProtectionOf(mode, s)
		missing := have.Missing(Required(s, isDir))
		if missing == None {
			continue
		}
		changed = true
		target = WithProtection(target, s, have.With(missing))
	}
	return target, changed
}
