// Package pathlist loads the ordered list of paths to normalize from a file.
//
// Two formats are understood. Text lists hold one path per line, taken
// verbatim: only a trailing '\r' is stripped and empty lines are skipped, so
// names with surrounding spaces or a leading '#' survive. YAML manifests hold
// either a top-level sequence of strings or a mapping with a "paths"
// sequence, and may carry YAML comments. Order and duplicates are preserved
// in both.
package pathlist

import (
	"bufio"
	"bytes"
	"io"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/lucas-albers-lz4/permnorm/pkg/fileutil"
)

// Stdin is the file name that selects standard input.
const Stdin = "-"

// Format is the encoding of a path list.
type Format int

// Supported formats.
const (
	FormatText Format = iota
	FormatYAML
)

// Path list errors.
var (
	// ErrPathListRead is returned when the list cannot be read.
	ErrPathListRead = errors.New("failed to read path list")
	// ErrPathListFormat is returned when the list content is malformed.
	ErrPathListFormat = errors.New("malformed path list")
)

// manifest is the mapping form of a YAML path list.
type manifest struct {
	Paths []string `yaml:"paths"`
}

// FormatFor picks the format from the file extension.
func FormatFor(name string) Format {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatText
	}
}

// Load reads the list stored in name on fsys. Stdin reads stdin as text.
func Load(fsys fileutil.FS, name string, stdin io.Reader) ([]string, error) {
	if name == Stdin {
		return Parse(stdin, FormatText)
	}
	data, err := fsys.ReadFile(name)
	if err != nil {
		return nil, errors.Wrapf(ErrPathListRead, "%s: %v", name, err)
	}
	paths, err := Parse(bytes.NewReader(data), FormatFor(name))
	if err != nil {
		return nil, errors.Wrapf(err, "path list %s", name)
	}
	return paths, nil
}

// Parse decodes a list from r.
func Parse(r io.Reader, format Format) ([]string, error) {
	if format == FormatYAML {
		return parseYAML(r)
	}
	return parseText(r)
}

func parseText(r io.Reader) ([]string, error) {
	var paths []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		if line == "" {
			continue
		}
		paths = append(paths, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(ErrPathListRead, err.Error())
	}
	return paths, nil
}

func parseYAML(r io.Reader) ([]string, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, errors.Wrap(ErrPathListFormat, err.Error())
	}

	var paths []string
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}
	switch root.Kind {
	case yaml.SequenceNode:
		if err := root.Decode(&paths); err != nil {
			return nil, errors.Wrap(ErrPathListFormat, err.Error())
		}
	case yaml.MappingNode:
		var m manifest
		if err := root.Decode(&m); err != nil {
			return nil, errors.Wrap(ErrPathListFormat, err.Error())
		}
		paths = m.Paths
	default:
		return nil, errors.Wrapf(ErrPathListFormat, "expected a sequence or a mapping with 'paths' at line %d", root.Line)
	}

	for i, p := range paths {
		if p == "" {
			return nil, errors.Wrapf(ErrPathListFormat, "entry %d is empty", i+1)
		}
	}
	return paths, nil
}
