package cpu

import (
	"regexp"
	"strings"
)

var (
	identifierRe = regexp.MustCompile(`^[_A-Za-z][_A-Za-z0-9]*$`)
	integerRe    = regexp.MustCompile(`^[+-]?[0-9]+$`)
	expressionRe = regexp.MustCompile(`^\$\((.*)\)$`)
)

// IsIdentifier returns true if the whole word is a letter or underscore
// followed by letters, digits or underscores.
func IsIdentifier(word string) bool {
	return identifierRe.MatchString(word)
}

// IsInteger returns true if the whole word is an optionally signed run of
// at least one decimal digit. Range is not checked.
func IsInteger(word string) bool {
	return integerRe.MatchString(word)
}

// isExpression returns the body of a $(...) compile-time expression.
func isExpression(word string) (expr string, ok bool) {
	match := expressionRe.FindStringSubmatch(word)
	if match == nil {
		return
	}

	return match[1], true
}

func isSpace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\v' || ch == '\f' || ch == '\r'
}

// nextWord splits the next whitespace delimited word from text.
func nextWord(text string) (word string, rest string) {
	text = strings.TrimLeft(text, " \t\n\v\f\r")
	end := 0
	for end < len(text) && !isSpace(text[end]) {
		end++
	}

	return text[:end], text[end:]
}

// nextQuoted splits the next word from text. A word starting with a
// double quote runs to the matching unescaped quote, and may contain
// whitespace; a backslash escapes the following character. An unterminated
// quote runs to the end of text.
func nextQuoted(text string) (word string, rest string) {
	text = strings.TrimLeft(text, " \t\n\v\f\r")
	if len(text) == 0 || text[0] != '"' {
		return nextWord(text)
	}

	var quoted strings.Builder
	for n := 1; n < len(text); n++ {
		ch := text[n]
		switch {
		case ch == '\\' && n+1 < len(text):
			n++
			quoted.WriteByte(text[n])
		case ch == '"':
			return quoted.String(), text[n+1:]
		default:
			quoted.WriteByte(ch)
		}
	}

	return quoted.String(), ""
}

// splitLine splits a source line into its label, mnemonic and operand.
func splitLine(line string) (label, mnemonic, operand string) {
	rest := line
	if len(line) > 0 && line[0] != ' ' && line[0] != '\t' {
		label, rest = nextWord(rest)
	}
	mnemonic, rest = nextWord(rest)
	operand, _ = nextQuoted(rest)

	return
}
