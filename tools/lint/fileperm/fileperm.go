// Package fileperm provides a linter that flags hardcoded permission bits
// passed to Chmod, WriteFile, Mkdir and MkdirAll.
package fileperm

import (
	"go/ast"
	"go/token"
	"strconv"
	"strings"

	"golang.org/x/tools/go/analysis"
	"golang.org/x/tools/go/analysis/passes/inspect"
	"golang.org/x/tools/go/ast/inspector"
)

// Analyzer reports permission literals that should be fileutil constants.
var Analyzer = &analysis.Analyzer{
	Name:     "fileperm",
	Doc:      "checks for hardcoded file permission literals instead of using constants",
	Requires: []*analysis.Analyzer{inspect.Analyzer},
	Run:      run,
}

// Index of the permission argument per function name.
const (
	ChmodPermArgIndex     = 1
	MkdirPermArgIndex     = 1
	WriteFilePermArgIndex = 2
)

var permArgIndex = map[string]int{
	"Chmod":     ChmodPermArgIndex,
	"Mkdir":     MkdirPermArgIndex,
	"MkdirAll":  MkdirPermArgIndex,
	"WriteFile": WriteFilePermArgIndex,
}

// Constants to suggest, by value.
var permConstants = map[int64]string{
	0o600: "fileutil.ReadWriteUserPermission",
	0o644: "fileutil.ReadWriteUserReadOthers",
	0o755: "fileutil.ReadWriteExecuteUserReadExecuteOthers",
	0o664: "fileutil.NormalizedFilePermission",
	0o775: "fileutil.NormalizedDirPermission",
}

func run(pass *analysis.Pass) (interface{}, error) {
	insp := pass.ResultOf[inspect.Analyzer].(*inspector.Inspector)

	insp.Preorder([]ast.Node{(*ast.CallExpr)(nil)}, func(n ast.Node) {
		call := n.(*ast.CallExpr)
		fun, ok := call.Fun.(*ast.SelectorExpr)
		if !ok {
			return
		}
		idx, ok := permArgIndex[fun.Sel.Name]
		if !ok || len(call.Args) <= idx {
			return
		}
		lit, ok := call.Args[idx].(*ast.BasicLit)
		if !ok || lit.Kind != token.INT {
			return
		}
		value, err := strconv.ParseInt(strings.ReplaceAll(lit.Value, "_", ""), 0, 64)
		if err != nil {
			return
		}
		if name, known := permConstants[value]; known {
			pass.Reportf(lit.Pos(), "use the permission constant '%s' instead of hardcoded '%s' in %s", name, lit.Value, fun.Sel.Name)
			return
		}
		pass.Reportf(lit.Pos(), "hardcoded permission '%s' in %s: declare a named constant in pkg/fileutil", lit.Value, fun.Sel.Name)
	})

	return nil, nil
}
