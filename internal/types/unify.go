package types

import "fmt"

// UnifyError reports two types that could not be unified. C5/C4 callers
// turn this into a TYPE_MISMATCH diagnostic at the relevant source location.
type UnifyError struct {
	Left, Right Type
}

func (e *UnifyError) Error() string {
	return fmt.Sprintf("cannot unify %s with %s", e.Left.String(), e.Right.String())
}

// OccursError reports an attempt to bind a type variable to a type that
// contains it, which would build an infinite type.
type OccursError struct {
	Var string
	In  Type
}

func (e *OccursError) Error() string {
	return fmt.Sprintf("occurs check failed: '%s occurs in %s", e.Var, e.In.String())
}

// Unify finds the most general substitution making a and b equal, following
// funxy's Subst-returning Unify shape but dropping row-polymorphism,
// HKT partial application, and union/record subtyping: ADTs unify
// structurally on Name and arg count, functions unify argument-wise with an
// invariant return type, and ConstInt payloads must match exactly.
func Unify(a, b Type) (Subst, error) {
	switch l := a.(type) {
	case Var:
		return bindVar(l.Name, b)
	}
	switch r := b.(type) {
	case Var:
		return bindVar(r.Name, a)
	}

	switch l := a.(type) {
	case Primitive:
		r, ok := b.(Primitive)
		if !ok || l.Name != r.Name {
			return nil, &UnifyError{Left: a, Right: b}
		}
		return Subst{}, nil

	case ConstInt:
		r, ok := b.(ConstInt)
		if !ok || l.Value != r.Value {
			return nil, &UnifyError{Left: a, Right: b}
		}
		return Subst{}, nil

	case Adt:
		r, ok := b.(Adt)
		if !ok || l.Name != r.Name || len(l.Args) != len(r.Args) {
			return nil, &UnifyError{Left: a, Right: b}
		}
		return unifyList(l.Args, r.Args)

	case Array:
		r, ok := b.(Array)
		if !ok {
			return nil, &UnifyError{Left: a, Right: b}
		}
		return unifyList([]Type{l.Elem, l.Size}, []Type{r.Elem, r.Size})

	case Function:
		r, ok := b.(Function)
		if !ok || len(l.Params) != len(r.Params) {
			return nil, &UnifyError{Left: a, Right: b}
		}
		s, err := unifyList(l.Params, r.Params)
		if err != nil {
			return nil, err
		}
		s2, err := Unify(l.Return.Apply(s), r.Return.Apply(s))
		if err != nil {
			return nil, err
		}
		return s.Compose(s2), nil

	case Scheme:
		// Schemes are instantiated by the caller (C4's infer engine) before
		// unification; reaching here means two unresolved schemes met,
		// which only happens for names with no call site. Unify their
		// bodies structurally so HM pass-through at least isn't fatal.
		r, ok := b.(Scheme)
		if !ok {
			return Unify(l.Type, b)
		}
		return Unify(l.Type, r.Type)
	}

	return nil, &UnifyError{Left: a, Right: b}
}

func unifyList(as, bs []Type) (Subst, error) {
	s := Subst{}
	for i := range as {
		sub, err := Unify(as[i].Apply(s), bs[i].Apply(s))
		if err != nil {
			return nil, err
		}
		s = s.Compose(sub)
	}
	return s, nil
}

func bindVar(name string, t Type) (Subst, error) {
	if v, ok := t.(Var); ok && v.Name == name {
		return Subst{}, nil
	}
	if occurs(name, t) {
		return nil, &OccursError{Var: name, In: t}
	}
	return Subst{name: t}, nil
}

func occurs(name string, t Type) bool {
	for _, v := range t.FreeVars() {
		if v == name {
			return true
		}
	}
	return false
}

// Instantiate replaces a Scheme's quantified variables with fresh ones,
// returning the instantiated type and the bounds carried over, keyed by the
// fresh variable names so the caller can check them against impls.
func Instantiate(sch Scheme, fresh func() string) (Type, map[string]string) {
	s := Subst{}
	renamed := map[string]string{}
	for _, v := range sch.Vars {
		nv := fresh()
		s[v] = Var{Name: nv}
		renamed[v] = nv
	}
	bounds := map[string]string{}
	for _, b := range sch.Bounds {
		if nv, ok := renamed[b.Var]; ok {
			bounds[nv] = b.Trait
		}
	}
	return sch.Type.Apply(s), bounds
}

// Generalize produces a Scheme quantifying every free variable of t that is
// not free in the enclosing environment.
func Generalize(envFree map[string]bool, t Type, bounds []Bound) Scheme {
	var vars []string
	for _, v := range t.FreeVars() {
		if !envFree[v] {
			vars = append(vars, v)
		}
	}
	var kept []Bound
	quantified := map[string]bool{}
	for _, v := range vars {
		quantified[v] = true
	}
	for _, b := range bounds {
		if quantified[b.Var] {
			kept = append(kept, b)
		}
	}
	return Scheme{Vars: vars, Bounds: kept, Type: t}
}
