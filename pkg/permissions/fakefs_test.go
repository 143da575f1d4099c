package permissions

import (
	"io/fs"
	"time"
)

// fakeInfo is a minimal fs.FileInfo.
type fakeInfo struct {
	name string
	mode fs.FileMode
}

func (i fakeInfo) Name() string       { return i.name }
func (i fakeInfo) Size() int64        { return 0 }
func (i fakeInfo) Mode() fs.FileMode  { return i.mode }
func (i fakeInfo) ModTime() time.Time { return time.Time{} }
func (i fakeInfo) IsDir() bool        { return i.mode.IsDir() }
func (i fakeInfo) Sys() any           { return nil }

type chmodCall struct {
	Path string
	Mode fs.FileMode
}

// fakeFS records every call and lets tests inject failures per path.
type fakeFS struct {
	modes     map[string]fs.FileMode
	lstatErr  map[string]error
	chmodErr  map[string]error
	lstatLog  []string
	chmodLog  []chmodCall
	keepModes bool
}

func newFakeFS() *fakeFS {
	return &fakeFS{
		modes:    map[string]fs.FileMode{},
		lstatErr: map[string]error{},
		chmodErr: map[string]error{},
	}
}

func (f *fakeFS) Lstat(name string) (fs.FileInfo, error) {
	f.lstatLog = append(f.lstatLog, name)
	if err, ok := f.lstatErr[name]; ok {
		return nil, err
	}
	mode, ok := f.modes[name]
	if !ok {
		return nil, &fs.PathError{Op: "lstat", Path: name, Err: fs.ErrNotExist}
	}
	return fakeInfo{name: name, mode: mode}, nil
}

func (f *fakeFS) Chmod(name string, mode fs.FileMode) error {
	f.chmodLog = append(f.chmodLog, chmodCall{Path: name, Mode: mode})
	if err, ok := f.chmodErr[name]; ok {
		return err
	}
	if !f.keepModes {
		f.modes[name] = f.modes[name]&fs.ModeType | mode
	}
	return nil
}
