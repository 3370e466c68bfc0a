// Package types is the C4 type data model: a plain
// sum-of-Primitive/Adt/Function/Var/Scheme system, simplified from the
// teacher's row-polymorphic internal/typesystem package (TRecord/TUnion/
// TForall/HKT are teacher features this package deliberately drops) to match Lumina's flatter struct/enum/generic-function model.
package types

import (
	"fmt"
	"sort"
	"strings"
)

// Type is any inferred or declared Lumina type.
type Type interface {
	String() string
	Apply(Subst) Type
	FreeVars() []string
}

// Primitive is a built-in scalar: i8/i16/i32/i64, u8/u16/u32/u64, f32/f64,
// bool, string, unit.
type Primitive struct {
	Name string
}

func (t Primitive) String() string       { return t.Name }
func (t Primitive) Apply(Subst) Type     { return t }
func (t Primitive) FreeVars() []string   { return nil }

// Adt is a struct or enum type, identified structurally by Name and arity
// of Args.
type Adt struct {
	Name string
	Args []Type
}

func (t Adt) String() string {
	if len(t.Args) == 0 {
		return t.Name
	}
	parts := make([]string, len(t.Args))
	for i, a := range t.Args {
		parts[i] = a.String()
	}
	return fmt.Sprintf("%s<%s>", t.Name, strings.Join(parts, ", "))
}

func (t Adt) Apply(s Subst) Type {
	args := make([]Type, len(t.Args))
	for i, a := range t.Args {
		args[i] = a.Apply(s)
	}
	return Adt{Name: t.Name, Args: args}
}

func (t Adt) FreeVars() []string {
	var out []string
	for _, a := range t.Args {
		out = append(out, a.FreeVars()...)
	}
	return dedupe(out)
}

// Function is a function type, unified argument-wise.
type Function struct {
	Params []Type
	Return Type
}

func (t Function) String() string {
	parts := make([]string, len(t.Params))
	for i, p := range t.Params {
		parts[i] = p.String()
	}
	return fmt.Sprintf("fn(%s) -> %s", strings.Join(parts, ", "), t.Return.String())
}

func (t Function) Apply(s Subst) Type {
	params := make([]Type, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.Apply(s)
	}
	return Function{Params: params, Return: t.Return.Apply(s)}
}

func (t Function) FreeVars() []string {
	var out []string
	for _, p := range t.Params {
		out = append(out, p.FreeVars()...)
	}
	out = append(out, t.Return.FreeVars()...)
	return dedupe(out)
}

// Var is an unresolved type variable, fresh per hole/missing annotation or
// per instantiation of a Scheme.
type Var struct {
	Name string
}

func (t Var) String() string { return "'" + t.Name }

func (t Var) Apply(s Subst) Type {
	if repl, ok := s[t.Name]; ok {
		if v, ok := repl.(Var); ok && v.Name == t.Name {
			return t
		}
		return repl.Apply(s)
	}
	return t
}

func (t Var) FreeVars() []string { return []string{t.Name} }

// ConstInt is a const-generic integer payload; it unifies
// only with another ConstInt carrying the identical Value, or with a Var
// standing for an uninstantiated const parameter.
type ConstInt struct {
	Value int64
}

func (t ConstInt) String() string     { return fmt.Sprintf("%d", t.Value) }
func (t ConstInt) Apply(Subst) Type   { return t }
func (t ConstInt) FreeVars() []string { return nil }

// Array is a fixed-size array type `[Elem; Size]`, where Size is either a
// ConstInt literal or a Var standing for an uninstantiated const-generic
// parameter.
type Array struct {
	Elem Type
	Size Type
}

func (t Array) String() string { return fmt.Sprintf("[%s; %s]", t.Elem.String(), t.Size.String()) }

func (t Array) Apply(s Subst) Type {
	return Array{Elem: t.Elem.Apply(s), Size: t.Size.Apply(s)}
}

func (t Array) FreeVars() []string {
	return dedupe(append(t.Elem.FreeVars(), t.Size.FreeVars()...))
}

// Bound is one trait bound on a Scheme's quantified variable.
type Bound struct {
	Var   string
	Trait string
}

// Scheme is a let-generalized polymorphic type: `forall Vars (with Bounds). Type`
//.
type Scheme struct {
	Vars   []string
	Bounds []Bound
	Type   Type
}

func (t Scheme) String() string {
	if len(t.Vars) == 0 {
		return t.Type.String()
	}
	return fmt.Sprintf("forall %s. %s", strings.Join(t.Vars, " "), t.Type.String())
}

func (t Scheme) Apply(s Subst) Type {
	filtered := Subst{}
	bound := map[string]bool{}
	for _, v := range t.Vars {
		bound[v] = true
	}
	for k, v := range s {
		if !bound[k] {
			filtered[k] = v
		}
	}
	return Scheme{Vars: t.Vars, Bounds: t.Bounds, Type: t.Type.Apply(filtered)}
}

func (t Scheme) FreeVars() []string {
	bound := map[string]bool{}
	for _, v := range t.Vars {
		bound[v] = true
	}
	var out []string
	for _, v := range t.Type.FreeVars() {
		if !bound[v] {
			out = append(out, v)
		}
	}
	return dedupe(out)
}

// Subst maps type variable names to their replacement types.
type Subst map[string]Type

// Compose returns a substitution equivalent to applying s1 then s2.
func (s1 Subst) Compose(s2 Subst) Subst {
	out := Subst{}
	for k, v := range s2 {
		out[k] = v
	}
	for k, v := range s1 {
		out[k] = v.Apply(s2)
	}
	return out
}

func dedupe(names []string) []string {
	seen := map[string]bool{}
	var out []string
	for _, n := range names {
		if !seen[n] {
			seen[n] = true
			out = append(out, n)
		}
	}
	sort.Strings(out)
	return out
}
