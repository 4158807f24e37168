package components

import (
	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
)

// analyseLimit bounds how much text content analysis looks at.
const analyseLimit = 4096

// Language names the language of a file from its name, falling back to its
// content. Unknown files are "Plain Text".
func Language(path, text string) string {
	lexer := lexers.Match(path)
	if lexer == nil && text != "" {
		if len(text) > analyseLimit {
			text = text[:analyseLimit]
		}
		lexer = lexers.Analyse(text)
	}
	if lexer == nil {
		return "Plain Text"
	}
	return lexerName(lexer)
}

func lexerName(l chroma.Lexer) string {
	if cfg := l.Config(); cfg != nil && cfg.Name != "" {
		return cfg.Name
	}
	return "Plain Text"
}
