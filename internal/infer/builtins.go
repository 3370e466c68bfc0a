package infer

import "github.com/lumina-lang/lumina/internal/types"

var (
	I64  = types.Primitive{Name: "i64"}
	F64  = types.Primitive{Name: "f64"}
	Bool = types.Primitive{Name: "bool"}
	Str  = types.Primitive{Name: "string"}
	Unit = types.Primitive{Name: "unit"}
)

var primitiveNames = map[string]bool{
	"i8": true, "i16": true, "i32": true, "i64": true,
	"u8": true, "u16": true, "u32": true, "u64": true,
	"f32": true, "f64": true,
	"bool": true, "string": true, "unit": true, "usize": true,
}

func isNumericPrimitive(t types.Type) bool {
	p, ok := t.(types.Primitive)
	if !ok {
		return false
	}
	switch p.Name {
	case "i8", "i16", "i32", "i64", "u8", "u16", "u32", "u64", "f32", "f64", "usize":
		return true
	}
	return false
}
