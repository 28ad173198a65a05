// Package assets embeds the authored item templates and the glyphs used by
// the sandbox.
package assets

import _ "embed"

// Templates is the default YAML template set.
//
//go:embed templates.yaml
var Templates []byte

// Emoji constants used as entity glyphs.
const (
	GlyphPlayer  = "🧙"
	GlyphUnknown = "❔"
)
