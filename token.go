package rowrender

import (
	"regexp"
	"strings"
)

// TokenKind identifies the kind of a template [Token].
type TokenKind int

const (
	TokenText TokenKind = iota
	TokenVariable
	TokenForStart
	TokenForEnd
	TokenIfStart
	TokenElse
	TokenIfEnd
	TokenInclude
)

func (k TokenKind) String() string {
	switch k {
	case TokenText:
		return "Text"
	case TokenVariable:
		return "Variable"
	case TokenForStart:
		return "ForStart"
	case TokenForEnd:
		return "ForEnd"
	case TokenIfStart:
		return "IfStart"
	case TokenElse:
		return "Else"
	case TokenIfEnd:
		return "IfEnd"
	case TokenInclude:
		return "Include"
	default:
		return "Unknown"
	}
}

// Token is one piece of a scanned template.
//
//   - Text: Text holds the literal text.
//   - Variable: Name is the field name.
//   - ForStart: Name is the item name, List the list field.
//   - IfStart: Name is the condition field.
//   - Include: Name is the included path.
type Token struct {
	Kind TokenKind
	Text string
	Name string
	List string
}

// Directives never span lines.
var directivePattern = regexp.MustCompile(`\{\{.*?\}\}|\{%.*?%\}`)

// Tokenize scans a template into tokens in source order. Statements it does
// not understand, and for loops without exactly one " in ", produce no token.
func Tokenize(src string) []Token {
	var tokens []Token
	last := 0
	for _, loc := range directivePattern.FindAllStringIndex(src, -1) {
		if loc[0] > last {
			tokens = append(tokens, Token{Kind: TokenText, Text: src[last:loc[0]]})
		}
		if tok, ok := parseDirective(src[loc[0]:loc[1]]); ok {
			tokens = append(tokens, tok)
		}
		last = loc[1]
	}
	if last < len(src) {
		tokens = append(tokens, Token{Kind: TokenText, Text: src[last:]})
	}
	return tokens
}

func parseDirective(raw string) (Token, bool) {
	inner := strings.TrimSpace(raw[2 : len(raw)-2])
	if strings.HasPrefix(raw, "{{") {
		return Token{Kind: TokenVariable, Name: inner}, true
	}
	switch {
	case strings.HasPrefix(inner, "for "):
		parts := strings.Split(inner[len("for "):], " in ")
		if len(parts) != 2 {
			return Token{}, false
		}
		return Token{
			Kind: TokenForStart,
			Name: strings.TrimSpace(parts[0]),
			List: strings.TrimSpace(parts[1]),
		}, true
	case inner == "endfor":
		return Token{Kind: TokenForEnd}, true
	case strings.HasPrefix(inner, "if "):
		return Token{Kind: TokenIfStart, Name: strings.TrimSpace(inner[len("if "):])}, true
	case inner == "else":
		return Token{Kind: TokenElse}, true
	case inner == "endif":
		return Token{Kind: TokenIfEnd}, true
	case strings.HasPrefix(inner, "include "):
		return Token{Kind: TokenInclude, Name: strings.TrimSpace(inner[len("include "):])}, true
	}
	return Token{}, false
}
