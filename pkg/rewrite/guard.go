package rewrite

import (
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// FileInfo is the environment a rule guard is evaluated against.
type FileInfo struct {
	Name string // base name of the file
	Path string // full path as scanned
	Dir  string // directory the scan ran over
}

func guardEnv(f FileInfo) map[string]any {
	return map[string]any{
		"name": f.Name,
		"path": f.Path,
		"dir":  f.Dir,
	}
}

// guard is a compiled `when` expression.
type guard struct {
	src  string
	prog *vm.Program
}

func compileGuard(src string) (*guard, error) {
	prog, err := expr.Compile(src, expr.Env(guardEnv(FileInfo{})), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("compile guard %q: %w", src, err)
	}
	return &guard{src: src, prog: prog}, nil
}

func (g *guard) eval(f FileInfo) (bool, error) {
	out, err := expr.Run(g.prog, guardEnv(f))
	if err != nil {
		return false, fmt.Errorf("eval guard %q: %w", g.src, err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("guard %q did not return bool (got %T: %v)", g.src, out, out)
	}
	return b, nil
}
