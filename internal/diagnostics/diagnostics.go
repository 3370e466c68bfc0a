// Package diagnostics implements the structured error/warning record shared
// by every compiler phase. Phases append to a Collector and
// never abort; the collector is sorted and handed off at the end of a file's
// analysis, mirroring funxy's per-file diagnostic ownership model.
package diagnostics

import (
	"fmt"
	"sort"

	"github.com/lumina-lang/lumina/internal/token"
)

// Severity is the classification of a Diagnostic.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
	SeverityInfo    Severity = "info"
)

// Well-known diagnostic codes.
const (
	CodeArgTypeMismatch       = "LUM-001"
	CodeUnknownIdentifier     = "UNKNOWN_IDENTIFIER"
	CodeUnknownType           = "UNKNOWN_TYPE"
	CodeUnknownFunction       = "UNKNOWN_FUNCTION"
	CodeUnknownMember         = "UNKNOWN_MEMBER"
	CodeUnresolvedMember      = "UNRESOLVED_MEMBER"
	CodeUnknownQualifier      = "UNKNOWN_QUALIFIER"
	CodeQualifierMismatch     = "QUALIFIER_MISMATCH"
	CodeBoundMismatch         = "BOUND_MISMATCH"
	CodeRefLvalueRequired     = "REF_LVALUE_REQUIRED"
	CodeRefMutRequired        = "REF_MUT_REQUIRED"
	CodeShadowedBinding       = "SHADOWED_BINDING"
	CodeShadowedImport        = "SHADOWED_IMPORT"
	CodeMatchNotExhaustive    = "MATCH_NOT_EXHAUSTIVE"
	CodeDuplicateMatchArm     = "DUPLICATE_MATCH_ARM"
	CodeRecursiveStruct       = "RECURSIVE_STRUCT"
	CodeTypeError             = "TYPE_ERROR"
	CodeLint                  = "LINT"
	CodeUseBeforeAssignment   = "USE_BEFORE_ASSIGNMENT"
	CodeImmutableReassignment = "IMMUTABLE_REASSIGNMENT"
	CodeRedeclaration         = "REDECLARATION"
	CodeInternal              = "INTERNAL"
	CodeSyntaxError           = "SYNTAX_ERROR"
	CodePkgUnknownPackage     = "PKG-001"
	CodePkgMalformedLock      = "PKG-002"
	CodePkgMissingSubpath     = "PKG-003"
)

// RelatedInfo points at a secondary location relevant to a Diagnostic,
// e.g. the outer declaration a shadowing binding hides.
type RelatedInfo struct {
	Location token.Location
	Message  string
}

// Diagnostic is the structured record every phase emits.
type Diagnostic struct {
	Code               string
	Severity           Severity
	Message            string
	Source             string
	Location           token.Location
	RelatedInformation []RelatedInfo
}

const sourceName = "lumina"

// New builds an error-severity Diagnostic at the given location.
func New(code string, loc token.Location, format string, args ...interface{}) *Diagnostic {
	return &Diagnostic{
		Code:     code,
		Severity: SeverityError,
		Message:  fmt.Sprintf(format, args...),
		Source:   sourceName,
		Location: loc,
	}
}

// NewAt is New but takes a token directly, matching funxy's call shape.
func NewAt(code string, tok token.Token, format string, args ...interface{}) *Diagnostic {
	return New(code, tok.Location, format, args...)
}

// Warning builds a warning-severity Diagnostic.
func Warning(code string, loc token.Location, format string, args ...interface{}) *Diagnostic {
	d := New(code, loc, format, args...)
	d.Severity = SeverityWarning
	return d
}

// WithRelated returns d with one related-information entry appended.
func (d *Diagnostic) WithRelated(loc token.Location, message string) *Diagnostic {
	d.RelatedInformation = append(d.RelatedInformation, RelatedInfo{Location: loc, Message: message})
	return d
}

// Collector accumulates diagnostics for a single compilation unit. It never
// panics and never discards a diagnostic; see  propagation rules.
type Collector struct {
	items []*Diagnostic
}

// Add appends a diagnostic if non-nil.
func (c *Collector) Add(d *Diagnostic) {
	if d == nil {
		return
	}
	c.items = append(c.items, d)
}

// AddAll appends every non-nil diagnostic in ds.
func (c *Collector) AddAll(ds []*Diagnostic) {
	for _, d := range ds {
		c.Add(d)
	}
}

// HasErrors reports whether any collected diagnostic has error severity.
func (c *Collector) HasErrors() bool {
	for _, d := range c.items {
		if d.Severity == SeverityError {
			return true
		}
	}
	return false
}

// Items returns the diagnostics sorted by source location, then code, which
// is the stable order  requires for user-visible output.
func (c *Collector) Items() []*Diagnostic {
	out := make([]*Diagnostic, len(c.items))
	copy(out, c.items)
	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i].Location.Start, out[j].Location.Start
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return out[i].Code < out[j].Code
	})
	return out
}
