package a

import "os"

const sharedFilePerm = 0o664

func writes() {
	_ = os.WriteFile("x", nil, 0o600) // want `use the permission constant 'fileutil.ReadWriteUserPermission' instead of hardcoded '0o600' in WriteFile`
	_ = os.WriteFile("x", nil, 0644)  // want `use the permission constant 'fileutil.ReadWriteUserReadOthers' instead of hardcoded '0644' in WriteFile`
	_ = os.WriteFile("x", nil, sharedFilePerm)
}

func modes() {
	_ = os.Chmod("x", 0o664)        // want `'fileutil.NormalizedFilePermission'`
	_ = os.Mkdir("d", 0o775)        // want `'fileutil.NormalizedDirPermission'`
	_ = os.MkdirAll("d/e", 0o755)   // want `'fileutil.ReadWriteExecuteUserReadExecuteOthers'`
	_ = os.Chmod("x", 0o1777)       // want `hardcoded permission '0o1777' in Chmod`
	_ = os.Chmod("x", os.ModePerm)
}

type fake struct{}

func (fake) Chmod(string) error { return nil }

func shortCall() {
	_ = fake{}.Chmod("x")
}
