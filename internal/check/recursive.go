package check

import (
	"strings"

	"github.com/lumina-lang/lumina/internal/ast"
	"github.com/lumina-lang/lumina/internal/diagnostics"
)

// indirectionWrappers are the named types that break a struct/struct field
// cycle.
var indirectionWrappers = map[string]bool{
	"Option": true, "Box": true, "Ref": true,
}

// checkRecursiveStructs detects structs that contain themselves (directly or
// transitively) without going through Option/Box/Ref, and proposes those
// wrappers as the fix.
func (c *checker) checkRecursiveStructs() {
	graph := map[string][]string{}
	for name, sd := range c.structs {
		for _, f := range sd.Fields {
			graph[name] = append(graph[name], directStructRefs(f.Type)...)
		}
	}

	visited := map[string]int{} // 0 unvisited, 1 in-progress, 2 done
	for name := range c.structs {
		if visited[name] == 0 {
			c.findCycle(name, graph, visited, nil)
		}
	}
}

func (c *checker) findCycle(name string, graph map[string][]string, visited map[string]int, path []string) {
	visited[name] = 1
	path = append(path, name)
	for _, dep := range graph[name] {
		switch visited[dep] {
		case 1:
			idx := -1
			for i, n := range path {
				if n == dep {
					idx = i
					break
				}
			}
			if idx >= 0 {
				cycle := append(append([]string{}, path[idx:]...), dep)
				sd := c.structs[dep]
				d := c.addf(diagnostics.CodeRecursiveStruct, sd, "recursive struct cycle: %s", strings.Join(cycle, " -> "))
				d.WithRelated(sd.Location(), "wrap the offending field in Option<...>, Box<...>, or Ref<...> to break the cycle")
			}
		case 0:
			c.findCycle(dep, graph, visited, path)
		}
	}
	visited[name] = 2
}

// directStructRefs returns the struct type names te directly refers to,
// skipping through any recognized indirection wrapper (which is exactly the
// point at which the cycle is considered broken).
func directStructRefs(te ast.TypeExpr) []string {
	nt, ok := te.(*ast.NamedType)
	if !ok {
		return nil
	}
	if indirectionWrappers[nt.Name] {
		return nil
	}
	out := []string{nt.Name}
	for _, a := range nt.Args {
		out = append(out, directStructRefs(a)...)
	}
	return out
}
