package modulegraph

import (
	"strings"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/config"
	"github.com/lumina-lang/lumina/internal/diagnostics"
	"github.com/lumina-lang/lumina/internal/utils"
)

// BindImports resolves every import in prog and injects the prelude,
// producing the per-file local-binding table C3 starts name resolution
// from: `import * as NS` binds NS to the whole namespace,
// `import pkg.{a as b}` binds b to a's export, `import pkg.*` flattens every
// export into the file scope, and a bare `import pkg` binds pkg's last path
// segment to the namespace for qualified access.
func BindImports(prog *ast.Program, reg *Registry) (map[string]Export, []*diagnostics.Diagnostic) {
	bindings := map[string]Export{}
	var diags []*diagnostics.Diagnostic
	fileDir := utils.GetModuleDir(prog.File)

	for _, imp := range prog.Imports {
		ns, diag := reg.Resolve(imp.Path, fileDir)
		if diag != nil {
			diag.Location = imp.Loc
			diags = append(diags, diag)
			continue
		}
		if ns == nil {
			diags = append(diags, diagnostics.New(diagnostics.CodePkgUnknownPackage, imp.Loc, "unknown package %q", imp.Path))
			continue
		}

		switch {
		case imp.Namespace:
			name := imp.Alias
			if name == "" {
				name = lastSegment(imp.Path)
			}
			bindings[name] = *ns

		case imp.Wildcard:
			moduleName := lastSegment(imp.Path)
			for name, exp := range ns.Exports {
				local := name
				if _, collides := bindings[local]; collides {
					local = utils.ModuleMemberFallbackName(moduleName, name)
				}
				bindings[local] = exp
			}

		case len(imp.Names) > 0:
			for _, name := range imp.Names {
				exp, ok := ns.Exports[name]
				if !ok {
					diags = append(diags, diagnostics.New(diagnostics.CodePkgMissingSubpath, imp.Loc, "module %q has no export %q", imp.Path, name))
					continue
				}
				local := name
				if alias, ok := imp.Aliases[name]; ok {
					local = alias
				}
				bindings[local] = exp
			}

		default:
			name := imp.Alias
			if name == "" {
				if strings.HasPrefix(imp.Path, ".") {
					name = utils.ExtractModuleName(imp.Path)
				} else {
					name = lastSegment(imp.Path)
				}
			}
			bindings[name] = *ns
		}
	}

	for _, specifier := range sortedStdSpecifiers() {
		name := lastSegment(specifier)
		if _, shadowed := bindings[name]; shadowed {
			continue
		}
		bindings[name] = *reg.Prelude[specifier]
	}

	return bindings, diags
}

func lastSegment(path string) string {
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' {
			return path[i+1:]
		}
	}
	return path
}

func sortedStdSpecifiers() []string {
	out := make([]string, len(config.StdModules))
	for i, m := range config.StdModules {
		out[i] = config.StdPrefix + m
	}
	return out
}
