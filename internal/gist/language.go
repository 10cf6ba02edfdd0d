package gist

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// UnknownLanguage is the sentinel used when no language could be resolved,
// neither by the API nor by lexer lookup. GitHub has no language actually
// named "Unknown", so the sentinel cannot collide with a real one.
const UnknownLanguage = "Unknown"

// ResolveLanguage normalizes the language of a gist file. The API value wins
// when present; otherwise the filename is run through chroma's lexer
// registry. Fallback and plaintext lexers count as unresolved.
func ResolveLanguage(apiLanguage, filename string) string {
	if apiLanguage != "" {
		return apiLanguage
	}

	var lexer chroma.Lexer
	if lexer = lexers.Get(filename); lexer == nil {
		return UnknownLanguage
	}

	name := lexer.Config().Name
	if name == "fallback" || name == "plaintext" {
		return UnknownLanguage
	}
	return name
}
