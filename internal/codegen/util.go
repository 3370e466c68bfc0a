package codegen

import "encoding/json"

// jsonString renders s as a JSON-quoted JS string literal. JSON quoting is
// a valid subset of JS string literal syntax, so this doubles as the
// string-literal emitter with no extra escaping logic needed.
func jsonString(s string) string {
	out, err := json.Marshal(s)
	if err != nil {
		return `""`
	}
	return string(out)
}
