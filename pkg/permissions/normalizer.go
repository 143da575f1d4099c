package permissions

import (
	"io/fs"

	"github.com/lucas-albers-lz4/permnorm/pkg/debug"
	log "github.com/lucas-albers-lz4/permnorm/pkg/log"
)

// MetadataFS is the filesystem metadata interface the normalizer consumes.
// Lstat must not follow a final symlink. Both operations report a missing
// path with an error matching fs.ErrNotExist.
type MetadataFS interface {
	Lstat(name string) (fs.FileInfo, error)
	Chmod(name string, mode fs.FileMode) error
}

// Outcome classifies what happened to one path.
type Outcome int

// Outcomes of NormalizeOne.
const (
	// OutcomeUnchanged means the mode already conformed; nothing was written.
	OutcomeUnchanged Outcome = iota
	// OutcomeUpdated means missing bits were added and written back once.
	OutcomeUpdated
	// OutcomeSkipped means the path is neither a directory nor a regular file.
	OutcomeSkipped
	// OutcomeVanished means the path disappeared before it could be read or written.
	OutcomeVanished
	// OutcomeReadError means the current mode could not be read.
	OutcomeReadError
	// OutcomeWriteError means the corrected mode could not be written.
	OutcomeWriteError
	// OutcomeInvalidMode means the filesystem rejected the mode value.
	OutcomeInvalidMode
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUnchanged:
		return "unchanged"
	case OutcomeUpdated:
		return "updated"
	case OutcomeSkipped:
		return "skipped"
	case OutcomeVanished:
		return "vanished"
	case OutcomeReadError:
		return "read-error"
	case OutcomeWriteError:
		return "write-error"
	case OutcomeInvalidMode:
		return "invalid-mode"
	default:
		return "unknown"
	}
}

// Failed reports whether the outcome is one of the logged error outcomes.
func (o Outcome) Failed() bool {
	return o == OutcomeReadError || o == OutcomeWriteError || o == OutcomeInvalidMode
}

// Result describes the processing of a single path.
type Result struct {
	Path    string
	Outcome Outcome
	// Before is the mode as read; zero when the read failed.
	Before fs.FileMode
	// After is the mode the path has once processing ends. It differs from
	// Before only when Outcome is OutcomeUpdated.
	After fs.FileMode
	// Err is set for the error outcomes only.
	Err error
}

// Options configures a Normalizer.
type Options struct {
	// Debug receives development diagnostics such as paths that vanished.
	// Nil disables them.
	Debug *debug.Channel

	// OnResult, if set, is called after each path has been processed.
	OnResult func(Result)
}

// Normalizer applies the permission policy to paths on a MetadataFS.
type Normalizer struct {
	fsys MetadataFS
	opts Options
}

// NewNormalizer returns a normalizer operating on fsys.
func NewNormalizer(fsys MetadataFS, opts Options) *Normalizer {
	return &Normalizer{fsys: fsys, opts: opts}
}

// writableBits are the mode bits Chmod accepts; type bits are never written.
const writableBits = fs.ModePerm | fs.ModeSetuid | fs.ModeSetgid | fs.ModeSticky

// NormalizeOne reads the mode of path, adds whatever the policy requires and
// writes it back only if something was missing. It never panics and never
// retries; failures are classified in the returned Result.
func (n *Normalizer) NormalizeOne(path string) Result {
	res := n.normalize(path)
	n.report(res)
	if n.opts.OnResult != nil {
		n.opts.OnResult(res)
	}
	return res
}

func (n *Normalizer) normalize(path string) Result {
	res := Result{Path: path}

	info, err := n.fsys.Lstat(path)
	if err != nil {
		if isNotFound(err) {
			res.Outcome = OutcomeVanished
			n.opts.Debug.Printf("load permissions: %s: %v", path, err)
			return res
		}
		res.Outcome = OutcomeReadError
		res.Err = WrapReadMode(path, err)
		return res
	}

	mode := info.Mode()
	res.Before, res.After = mode, mode

	isDir := mode.IsDir()
	if !isDir && !mode.IsRegular() {
		res.Outcome = OutcomeSkipped
		return res
	}

	target, changed := Apply(mode, isDir)
	if !changed {
		res.Outcome = OutcomeUnchanged
		return res
	}

	if err := n.fsys.Chmod(path, target&writableBits); err != nil {
		switch {
		case isNotFound(err):
			res.Outcome = OutcomeVanished
			n.opts.Debug.Printf("update permissions: %s: %v", path, err)
		case isInvalidMode(err):
			res.Outcome = OutcomeInvalidMode
			res.Err = WrapInvalidMode(path, target, err)
		default:
			res.Outcome = OutcomeWriteError
			res.Err = WrapWriteMode(path, err)
		}
		return res
	}

	res.Outcome = OutcomeUpdated
	res.After = target
	return res
}

func (n *Normalizer) report(res Result) {
	switch res.Outcome {
	case OutcomeUpdated:
		log.Debug("Updated permissions", "path", res.Path, "from", res.Before.String(), "to", res.After.String())
	case OutcomeSkipped:
		log.Debug("Skipping non-regular file", "path", res.Path, "mode", res.Before.String())
	case OutcomeReadError, OutcomeWriteError:
		log.Warn(res.Err.Error(), "path", res.Path)
	case OutcomeInvalidMode:
		log.Error(res.Err.Error(), "path", res.Path)
	}
}

// NormalizeAll runs NormalizeOne over paths in order. Every occurrence of a
// path is processed, duplicates included, and no failure stops the batch.
func (n *Normalizer) NormalizeAll(paths []string) {
	for _, p := range paths {
		n.opts.Debug.Printf("Validating file permissions of %s", p)
		n.NormalizeOne(p)
	}
}
