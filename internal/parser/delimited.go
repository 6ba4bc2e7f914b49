package parser

import "github.com/ferra-lang/ferra/internal/lexer"

// delimitedConfig configures parseDelimited, adapted from the teacher's
// generic delimited-list helper to this package's Stream/diag plumbing.
type delimitedConfig struct {
	Closing   lexer.TokenType
	Separator lexer.TokenType // defaults to COMMA

	AllowEmpty    bool
	AllowTrailing bool

	MissingElementContext string
}

type delimitedResult[T any] struct {
	Items    []T
	Trailing bool
}

// parseDelimited parses a Separator-joined, Closing-terminated list whose
// elements are produced by parseItem, consuming the Closing token on
// success. The caller must have already consumed the opening delimiter
// and left the cursor on the first element (or on Closing, for an empty
// list).
func parseDelimited[T any](p *Parser, cfg delimitedConfig, parseItem func(idx int) (T, bool)) (delimitedResult[T], bool) {
	var result delimitedResult[T]
	sep := cfg.Separator
	if sep == "" {
		sep = lexer.COMMA
	}

	if p.check(cfg.Closing) {
		if !cfg.AllowEmpty {
			p.reportUnexpected("an element", cfg.MissingElementContext)
			return result, false
		}
		p.advance()
		return result, true
	}

	for {
		item, ok := parseItem(len(result.Items))
		if !ok {
			return result, false
		}
		result.Items = append(result.Items, item)

		if p.match(sep) {
			if p.check(cfg.Closing) {
				if !cfg.AllowTrailing {
					p.reportUnexpected("an element", cfg.MissingElementContext)
					return result, false
				}
				result.Trailing = true
				p.advance()
				return result, true
			}
			continue
		}

		if p.check(cfg.Closing) {
			p.advance()
			return result, true
		}

		p.reportUnexpected("'"+string(sep)+"' or '"+string(cfg.Closing)+"'", cfg.MissingElementContext)
		return result, false
	}
}
