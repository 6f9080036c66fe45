// ABOUTME: Turns snippet source into something the interpreter can run on its own.
// ABOUTME: SynthDefs are added and played in a fork; everything else gets a trailing .play.

package wrap

import (
	"regexp"
	"strings"
)

// DefaultSynthName is used when no SynthDef name can be found.
const DefaultSynthName = "default"

var addCall = regexp.MustCompile(`\.add;?`)

// Wrap applies the first matching rule:
//
//   - SynthDef source is sent inside a fork that adds it, syncs with the
//     server, and starts a Synth of the same name.
//   - Pdef or Pbind source is parenthesized and played.
//   - Source that already calls .play is sent unchanged.
//   - Anything else is parenthesized and played.
func Wrap(code string) string {
	switch {
	case strings.Contains(code, "SynthDef(") || strings.Contains(code, "SynthDef.new("):
		def := code
		if strings.Contains(code, ".add") {
			def = addCall.ReplaceAllString(code, "")
		}
		return "fork {\n" +
			"    " + strings.TrimSpace(def) + ".add;\n" +
			"    s.sync;\n" +
			"    Synth(\\" + SynthDefName(code) + ");\n" +
			"};"
	case strings.Contains(code, "Pdef(") || strings.Contains(code, "Pbind("):
		return playBlock(code)
	case strings.Contains(code, ".play"):
		return code
	default:
		return playBlock(code)
	}
}

func playBlock(code string) string {
	return "(\n" + code + "\n).play;"
}

// SynthDefName returns the symbol after the first backslash following the
// SynthDef opener, up to the next comma (or closing paren when there is no
// comma).
func SynthDefName(code string) string {
	start := strings.Index(code, "SynthDef(")
	if start < 0 {
		start = strings.Index(code, "SynthDef.new(")
	}
	if start < 0 {
		return DefaultSynthName
	}

	slash := strings.IndexByte(code[start:], '\\')
	if slash < 0 {
		return DefaultSynthName
	}
	rest := code[start+slash+1:]

	end := strings.IndexByte(rest, ',')
	if end < 0 {
		end = strings.IndexByte(rest, ')')
	}
	if end < 0 {
		return DefaultSynthName
	}
	return strings.TrimSpace(rest[:end])
}
