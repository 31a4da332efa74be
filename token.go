package formula

import (
	"strconv"
	"strings"
	"unicode"
)

// TokenKind identifies the lexical category of a Token.
type TokenKind int8

const (
	tokenNone TokenKind = iota
	// TokenInteger is a maximal run of decimal digits with no decimal
	// separator.
	TokenInteger
	// TokenFloat is a number containing a decimal separator or an exponent.
	TokenFloat
	// TokenIdentifier is a variable, function, or constant name.
	TokenIdentifier
	// TokenOperation is one of the arithmetic operators + - * / % ^.
	TokenOperation
	// TokenLeftBracket is an opening parenthesis.
	TokenLeftBracket
	// TokenRightBracket is a closing parenthesis.
	TokenRightBracket
	// TokenArgSeparator is the locale's function-argument separator.
	TokenArgSeparator
	// tokenEOF marks the end of the formula text. It is not exported: the
	// reader's next returns it, with a nil error, only to the AST builder.
	tokenEOF
)

func (k TokenKind) String() string {
	switch k {
	case TokenInteger:
		return "Integer"
	case TokenFloat:
		return "FloatingPoint"
	case TokenIdentifier:
		return "Identifier"
	case TokenOperation:
		return "Operation"
	case TokenLeftBracket:
		return "LeftBracket"
	case TokenRightBracket:
		return "RightBracket"
	case TokenArgSeparator:
		return "ArgumentSeparator"
	case tokenEOF:
		return "EOF"
	default:
		return "None"
	}
}

// Token is a single lexeme produced by the token reader.
type Token struct {
	Kind TokenKind
	Text string
	// Pos is the 0-based character index in the source formula at which the
	// token begins.
	Pos int
	// Value is the parsed numeric value, valid when Kind is TokenInteger or
	// TokenFloat.
	Value float64
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// tokenReader converts formula text into a stream of tokens. It does not
// validate token sequences; structural errors are the AST builder's
// responsibility.
type tokenReader struct {
	src    []rune
	pos    int
	locale Locale
	pushed *Token
}

func newTokenReader(text string, locale Locale) *tokenReader {
	return &tokenReader{src: []rune(text), locale: locale}
}

// push unreads a token so the next call to next returns it again. It is an
// error to push twice without an intervening next.
func (r *tokenReader) push(tok Token) {
	if r.pushed != nil {
		panic("formula: double push")
	}
	r.pushed = &tok
}

func (r *tokenReader) peekRune() (rune, bool) {
	if r.pos >= len(r.src) {
		return 0, false
	}
	return r.src[r.pos], true
}

// next scans and returns the next token. At the end of input it returns a
// tokenEOF token with a nil error.
func (r *tokenReader) next() (Token, error) {
	if r.pushed != nil {
		tok := *r.pushed
		r.pushed = nil
		return tok, nil
	}
	for {
		c, ok := r.peekRune()
		if !ok {
			return Token{Kind: tokenEOF, Pos: r.pos}, nil
		}
		if unicode.IsSpace(c) {
			r.pos++
			continue
		}
		break
	}
	start := r.pos
	c, _ := r.peekRune()
	switch {
	case unicode.IsDigit(c) || c == r.locale.DecimalSeparator:
		return r.scanNumber(start)
	case c == '_' || unicode.IsLetter(c):
		return r.scanIdentifier(start)
	case c == r.locale.ArgumentSeparator:
		r.pos++
		return Token{Kind: TokenArgSeparator, Text: string(c), Pos: start}, nil
	case c == '(':
		r.pos++
		return Token{Kind: TokenLeftBracket, Text: "(", Pos: start}, nil
	case c == ')':
		r.pos++
		return Token{Kind: TokenRightBracket, Text: ")", Pos: start}, nil
	case strings.ContainsRune(operatorRunes, c):
		r.pos++
		return Token{Kind: TokenOperation, Text: string(c), Pos: start}, nil
	default:
		r.pos++
		return Token{}, &LexError{Col: start, Text: string(c)}
	}
}

// operatorRunes are the six arithmetic operators this core's grammar
// requires. An extended grammar (comparison operators) is outside the core
// the AST builder implements here.
const operatorRunes = "+-*/%^"

func (r *tokenReader) scanNumber(start int) (Token, error) {
	var b strings.Builder
	seenDot := false
	seenExp := false
	for {
		c, ok := r.peekRune()
		if !ok {
			break
		}
		switch {
		case unicode.IsDigit(c):
			b.WriteRune(c)
			r.pos++
		case c == r.locale.DecimalSeparator && !seenDot && !seenExp:
			seenDot = true
			b.WriteByte('.')
			r.pos++
		case (c == 'e' || c == 'E') && !seenExp && b.Len() > 0:
			seenExp = true
			b.WriteRune(c)
			r.pos++
			if c2, ok := r.peekRune(); ok && (c2 == '+' || c2 == '-') {
				b.WriteRune(c2)
				r.pos++
			}
		default:
			goto done
		}
	}
done:
	text := b.String()
	if text == "" || text == "." {
		return Token{}, &LexError{Col: start, Text: text, Kind: "number"}
	}
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		return Token{}, &LexError{Col: start, Text: text, Kind: "number"}
	}
	kind := TokenInteger
	if seenDot || seenExp {
		kind = TokenFloat
	}
	return Token{Kind: kind, Text: text, Pos: start, Value: v}, nil
}

func (r *tokenReader) scanIdentifier(start int) (Token, error) {
	var b strings.Builder
	for {
		c, ok := r.peekRune()
		if !ok || !(c == '_' || unicode.IsLetter(c) || unicode.IsDigit(c)) {
			break
		}
		b.WriteRune(c)
		r.pos++
	}
	return Token{Kind: TokenIdentifier, Text: strings.ToLower(b.String()), Pos: start}, nil
}
