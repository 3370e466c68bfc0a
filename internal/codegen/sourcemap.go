// Package codegen implements the JS code generator: a text emitter with
// an inline source-map builder, try-desugaring, SSA hoisting,
// match-expression lowering to an arrow-function IIFE, numeric casts, and
// JSON-quoted strings.
//
// No dependency-free Go library builds source maps (the handful of
// available sourcemap packages are consumers/decoders only), so the
// VLQ/mappings builder below is hand-rolled against the public
// source-map-v3 format directly.
package codegen

import (
	"encoding/json"
	"strings"
)

const base64Chars = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// segment is one (generated column) -> (source line, source column)
// mapping within a single generated line, stored pre-VLQ-encoding.
type segment struct {
	genCol    int
	srcLine   int
	srcCol    int
	sourceIdx int
}

// SourceMapBuilder accumulates (generated line/col) -> (source line/col)
// mappings while the emitter writes text, and serializes a standard
// source-map-v3 object on demand.
type SourceMapBuilder struct {
	file    string
	sources []string
	lines   [][]segment
}

// NewSourceMapBuilder starts a builder for one output file generated from
// a single input source.
func NewSourceMapBuilder(file, source string) *SourceMapBuilder {
	return &SourceMapBuilder{file: file, sources: []string{source}, lines: [][]segment{{}}}
}

// Add records that genCol on the current generated line maps back to
// (srcLine, srcCol). Callers advance lines explicitly via NewLine.
func (b *SourceMapBuilder) Add(genCol, srcLine, srcCol int) {
	last := len(b.lines) - 1
	b.lines[last] = append(b.lines[last], segment{genCol: genCol, srcLine: srcLine, srcCol: srcCol})
}

// NewLine starts a new generated line in the mapping table; call this each
// time the emitter writes a newline to its output buffer.
func (b *SourceMapBuilder) NewLine() {
	b.lines = append(b.lines, []segment{})
}

type rawSourceMap struct {
	Version    int      `json:"version"`
	File       string   `json:"file"`
	SourceRoot string   `json:"sourceRoot"`
	Sources    []string `json:"sources"`
	Names      []string `json:"names"`
	Mappings   string   `json:"mappings"`
}

// Serialize produces a standard source-map-v3 JSON document.
func (b *SourceMapBuilder) Serialize() string {
	var mappingsBuilder strings.Builder
	prevGenCol, prevSrcLine, prevSrcCol, prevSourceIdx := 0, 0, 0, 0

	for lineIdx, segs := range b.lines {
		if lineIdx > 0 {
			mappingsBuilder.WriteByte(';')
		}
		prevGenCol = 0
		for i, s := range segs {
			if i > 0 {
				mappingsBuilder.WriteByte(',')
			}
			mappingsBuilder.WriteString(encodeVLQ(s.genCol - prevGenCol))
			mappingsBuilder.WriteString(encodeVLQ(s.sourceIdx - prevSourceIdx))
			mappingsBuilder.WriteString(encodeVLQ(s.srcLine - prevSrcLine))
			mappingsBuilder.WriteString(encodeVLQ(s.srcCol - prevSrcCol))
			prevGenCol = s.genCol
			prevSrcLine = s.srcLine
			prevSrcCol = s.srcCol
			prevSourceIdx = s.sourceIdx
		}
	}

	raw := rawSourceMap{
		Version:  3,
		File:     b.file,
		Sources:  b.sources,
		Names:    []string{},
		Mappings: mappingsBuilder.String(),
	}
	out, err := json.Marshal(raw)
	if err != nil {
		return "{}"
	}
	return string(out)
}

// encodeVLQ implements the base64-VLQ scheme the source-map-v3 spec uses:
// each value is sign-shifted into its low bit, then emitted 5 bits at a
// time from least to most significant, with a continuation bit set on
// every group but the last.
func encodeVLQ(value int) string {
	var vlq int
	if value < 0 {
		vlq = ((-value) << 1) | 1
	} else {
		vlq = value << 1
	}

	var out strings.Builder
	for {
		digit := vlq & 0x1f
		vlq >>= 5
		if vlq > 0 {
			digit |= 0x20
		}
		out.WriteByte(base64Chars[digit])
		if vlq == 0 {
			break
		}
	}
	return out.String()
}
