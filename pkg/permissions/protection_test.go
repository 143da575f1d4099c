package permissions

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProtectionOf(t *testing.T) {
	tests := []struct {
		name  string
		mode  fs.FileMode
		owner Protection
		group Protection
		other Protection
	}{
		{name: "none", mode: 0, owner: None, group: None, other: None},
		{name: "0644", mode: 0o644, owner: ReadWrite, group: Read, other: Read},
		{name: "0751", mode: 0o751, owner: All, group: Read | Execute, other: Execute},
		{name: "dir 0700", mode: fs.ModeDir | 0o700, owner: All, group: None, other: None},
		{name: "setuid ignored", mode: fs.ModeSetuid | 0o020, owner: None, group: Write, other: None},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.owner, ProtectionOf(tt.mode, Owner))
			assert.Equal(t, tt.group, ProtectionOf(tt.mode, Group))
			assert.Equal(t, tt.other, ProtectionOf(tt.mode, Other))
		})
	}
}

func TestWithProtection(t *testing.T) {
	tests := []struct {
		name    string
		mode    fs.FileMode
		subject Subject
		set     Protection
		want    fs.FileMode
	}{
		{name: "owner on empty", mode: 0, subject: Owner, set: ReadWrite, want: 0o600},
		{name: "group replaces", mode: 0o070, subject: Group, set: Read, want: 0o040},
		{name: "other keeps owner", mode: 0o700, subject: Other, set: Read | Execute, want: 0o705},
		{name: "type and sticky kept", mode: fs.ModeDir | fs.ModeSticky | 0o700, subject: Other, set: All, want: fs.ModeDir | fs.ModeSticky | 0o707},
		{name: "extra bits masked", mode: 0, subject: Owner, set: Protection(0xff), want: 0o700},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, WithProtection(tt.mode, tt.subject, tt.set))
		})
	}
}

func TestProtectionSetOperations(t *testing.T) {
	assert.True(t, All.Has(ReadWrite))
	assert.False(t, Read.Has(ReadWrite))
	assert.True(t, None.Has(None))

	assert.Equal(t, ReadWrite, Read.With(Write))
	assert.Equal(t, Read, Read.With(Read), "With must not toggle bits")

	assert.Equal(t, Write, Read.Missing(ReadWrite))
	assert.Equal(t, None, All.Missing(ReadWrite))
	assert.Equal(t, Read|Execute, Write.Missing(All))
}

func TestProtectionString(t *testing.T) {
	assert.Equal(t, "---", None.String())
	assert.Equal(t, "rw-", ReadWrite.String())
	assert.Equal(t, "r-x", (Read | Execute).String())
	assert.Equal(t, "rwx", All.String())
}

func TestSubjectString(t *testing.T) {
	assert.Equal(t, "owner", Owner.String())
	assert.Equal(t, "group", Group.String())
	assert.Equal(t, "other", Other.String())
	assert.Equal(t, "unknown", Subject(7).String())
}
