// Command luminac is the Lumina compiler CLI: it drives the parse, infer,
// check, monomorphize, optimize, and codegen pipeline over a single source
// file and writes the generated JS (and optional source map) next to the
// input, rebuilt on Cobra the way Consensys-go-corset's pkg/cmd/root.go
// fronts its own compiler pipeline.
package main

import "github.com/lumina-lang/lumina/cmd/luminac/cli"

func main() {
	cli.Execute()
}
