package permissions

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequired(t *testing.T) {
	tests := []struct {
		subject Subject
		isDir   bool
		want    Protection
	}{
		{subject: Owner, isDir: false, want: ReadWrite},
		{subject: Group, isDir: false, want: ReadWrite},
		{subject: Other, isDir: false, want: Read},
		{subject: Owner, isDir: true, want: All},
		{subject: Group, isDir: true, want: All},
		{subject: Other, isDir: true, want: Read | Execute},
	}

	for _, tt := range tests {
		name := tt.subject.String()
		if tt.isDir {
			name += "/dir"
		}
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, tt.want, Required(tt.subject, tt.isDir))
		})
	}
}

func TestApply(t *testing.T) {
	tests := []struct {
		name        string
		mode        fs.FileMode
		isDir       bool
		want        fs.FileMode
		wantChanged bool
	}{
		{name: "empty file", mode: 0, want: 0o664, wantChanged: true},
		{name: "empty dir", mode: fs.ModeDir, isDir: true, want: fs.ModeDir | 0o775, wantChanged: true},
		{name: "owner exec kept", mode: 0o740, want: 0o764, wantChanged: true},
		{name: "conformant file", mode: 0o664, want: 0o664},
		{name: "wide file untouched", mode: 0o777, want: 0o777},
		{name: "conformant dir", mode: fs.ModeDir | 0o775, isDir: true, want: fs.ModeDir | 0o775},
		{name: "dir other write kept", mode: fs.ModeDir | 0o702, isDir: true, want: fs.ModeDir | 0o777, wantChanged: true},
		{name: "setgid dir", mode: fs.ModeDir | fs.ModeSetgid | 0o750, isDir: true, want: fs.ModeDir | fs.ModeSetgid | 0o775, wantChanged: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed := Apply(tt.mode, tt.isDir)
			assert.Equal(t, tt.want, got, "got %s, want %s", got, tt.want)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

// Every permission combination, for both entry kinds: bits are only added,
// every subject has its required set, and a second pass changes nothing.
func TestApplyExhaustive(t *testing.T) {
	for _, isDir := range []bool{false, true} {
		for perm := fs.FileMode(0); perm <= fs.ModePerm; perm++ {
			mode := perm
			if isDir {
				mode |= fs.ModeDir
			}

			got, changed := Apply(mode, isDir)
			require.Equal(t, mode, got&mode, "bits cleared from %s", mode)
			require.Equal(t, mode.Type(), got.Type(), "type changed for %s", mode)

			for _, s := range Subjects {
				require.True(t, ProtectionOf(got, s).Has(Required(s, isDir)))
			}

			again, changedAgain := Apply(got, isDir)
			require.False(t, changedAgain, "second pass changed %s", got)
			require.Equal(t, got, again)
			require.Equal(t, got != mode, changed)
		}
	}
}
