package modulegraph

import (
	"os"
	"strings"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/config"
	"github.com/lumina-lang/lumina/internal/diagnostics"
	"github.com/lumina-lang/lumina/internal/parser"
	"github.com/lumina-lang/lumina/internal/token"
	"github.com/lumina-lang/lumina/internal/utils"
)

// zeroLoc stands in for a diagnostic's location when it concerns a whole
// import specifier rather than one source span; Resolve's caller
// (BindImports in bindings.go) overwrites it with the ImportStatement's own
// location.
var zeroLoc = ast.NewLoc(token.Position{}, token.Position{})

// Registry is the C2 module graph: the @std prelude plus a lazily-populated
// cache of lockfile- and relative-path-resolved module exports, grounded on
// funxy's Loader.LoadedModules cache (internal/modules/loader.go).
type Registry struct {
	ProjectRoot string
	Prelude     map[string]*NamespaceExport
	Lockfile    *Lockfile
	cache       map[string]*NamespaceExport
}

// NewRegistry loads the project lockfile (if any) and the built-in prelude.
func NewRegistry(projectRoot string) (*Registry, error) {
	lf, err := LoadLockfile(projectRoot)
	if err != nil {
		return nil, err
	}
	return &Registry{
		ProjectRoot: projectRoot,
		Prelude:     NewPrelude(),
		Lockfile:    lf,
		cache:       map[string]*NamespaceExport{},
	}, nil
}

// Resolve resolves one import specifier,: `@std/...` against
// the prelude, relative specifiers against fileDir, everything else against
// the lockfile.
func (r *Registry) Resolve(specifier, fileDir string) (*NamespaceExport, *diagnostics.Diagnostic) {
	if strings.HasPrefix(specifier, config.StdPrefix) {
		if ns, ok := r.Prelude[specifier]; ok {
			return ns, nil
		}
		return nil, nil
	}

	if strings.HasPrefix(specifier, ".") {
		path := utils.ResolveImportPath(fileDir, specifier)
		if !config.HasSourceExt(path) {
			path += config.SourceFileExt
		}
		return r.loadFileExports(path, specifier)
	}

	pkgName, subpath := splitSpecifier(specifier)
	if !r.Lockfile.HasPackage(pkgName) {
		return nil, diagnostics.New(diagnostics.CodePkgUnknownPackage, zeroLoc, "unknown package %q", pkgName)
	}
	path, ok := r.Lockfile.Resolve(specifier)
	if !ok {
		if subpath != "" {
			return nil, diagnostics.New(diagnostics.CodePkgMissingSubpath, zeroLoc, "package %q has no subpath export %q", pkgName, subpath)
		}
		return nil, diagnostics.New(diagnostics.CodePkgMalformedLock, zeroLoc, "package %q has no lumina export entry", pkgName)
	}
	return r.loadFileExports(path, specifier)
}

func (r *Registry) loadFileExports(path, specifier string) (*NamespaceExport, *diagnostics.Diagnostic) {
	if ns, ok := r.cache[path]; ok {
		return ns, nil
	}

	src, err := os.ReadFile(path)
	if err != nil {
		return nil, diagnostics.New(diagnostics.CodePkgMalformedLock, zeroLoc, "cannot read module %q: %v", specifier, err)
	}

	prog, _ := parser.Adapt(string(src), path)
	ns := &NamespaceExport{Specifier: specifier, Exports: exportsOf(prog)}
	r.cache[path] = ns
	return ns, nil
}

// exportsOf extracts the public top-level declarations of prog as a flat
// export set. Inference of function signatures happens later (C4); at C2
// time a declared annotation is taken at face value and a missing one is
// recorded as a TypeHole, resolved once C4 runs over this file directly.
func exportsOf(prog *ast.Program) map[string]Export {
	out := map[string]Export{}
	for _, stmt := range prog.Statements {
		switch n := stmt.(type) {
		case *ast.FnDecl:
			if n.Visibility != ast.Public {
				continue
			}
			params := make([]ast.TypeExpr, len(n.Params))
			names := make([]string, len(n.Params))
			for i, p := range n.Params {
				params[i] = p.Type
				names[i] = p.Name
			}
			ret := n.ReturnType
			if ret == nil {
				ret = &ast.TypeHole{Loc: n.Loc}
			}
			out[n.Name] = FunctionExport{ParamTypes: params, ParamNames: names, ReturnType: ret}
		case *ast.StructDecl:
			if n.Visibility == ast.Public {
				out[n.Name] = TypeExport{Name: n.Name, TypeParams: n.TypeParams}
			}
		case *ast.EnumDecl:
			if n.Visibility == ast.Public {
				out[n.Name] = TypeExport{Name: n.Name, TypeParams: n.TypeParams}
			}
		case *ast.TypeDecl:
			if n.Visibility == ast.Public {
				out[n.Name] = TypeExport{Name: n.Name, TypeParams: n.TypeParams}
			}
		case *ast.Let:
			out[n.Name] = ValueExport{Name: n.Name, Type: n.TypeAnno}
		}
	}
	return out
}
