// Package symbols implements the C3 symbol/name resolver: a
// two-pass hoist-then-walk resolver producing a Table of per-scope Symbols,
// grounded on funxy's internal/symbols package (SymbolTable/Symbol),
// simplified to Lumina's flatter (non-trait-dictionary) binding model.
package symbols

import "github.com/lumina-lang/lumina/internal/token"

// Kind classifies what a Symbol names.
type Kind int

const (
	KindVar Kind = iota
	KindFunc
	KindType
	KindStruct
	KindEnum
	KindTrait
	KindModule
)

// Symbol is one name bound in a Scope.
type Symbol struct {
	Name      string
	Kind      Kind
	Loc       token.Location
	Mutable   bool
	Read      bool
	Written   bool
	Pending   bool // function declared without a return annotation
	FromOuter bool // enclosing-scope flag; nothing in this package sets it, so it stays false
}
