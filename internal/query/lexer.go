package query

import (
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

type tokenType int

const (
	tokenEOF tokenType = iota
	tokenNewline
	tokenIdentifier
	tokenNumber
	tokenString
	tokenTrue
	tokenFalse
	tokenNull
	tokenAssign
	tokenEqual
	tokenNotEqual
	tokenLess
	tokenLessEqual
	tokenGreater
	tokenGreaterEqual
	tokenAnd
	tokenOr
	tokenNot
	tokenIn
	tokenIf
	tokenElse
	tokenFor
	tokenPlus
	tokenMinus
	tokenStar
	tokenSlash
	tokenPercent
	tokenDot
	tokenComma
	tokenColon
	tokenSemicolon
	tokenLParen
	tokenRParen
	tokenLBracket
	tokenRBracket
	tokenLBrace
	tokenRBrace
)

type token struct {
	typ     tokenType
	literal string
	pos     int
}

// keywords maps the JSON spellings and their Python equivalents onto the
// same tokens.
var keywords = map[string]tokenType{
	"true":  tokenTrue,
	"True":  tokenTrue,
	"false": tokenFalse,
	"False": tokenFalse,
	"null":  tokenNull,
	"None":  tokenNull,
	"and":   tokenAnd,
	"or":    tokenOr,
	"not":   tokenNot,
	"in":    tokenIn,
	"if":    tokenIf,
	"else":  tokenElse,
	"for":   tokenFor,
}

var singleCharTokens = map[byte]tokenType{
	'+': tokenPlus,
	'*': tokenStar,
	'/': tokenSlash,
	'%': tokenPercent,
	'.': tokenDot,
	',': tokenComma,
	':': tokenColon,
	';': tokenSemicolon,
	'(': tokenLParen,
	')': tokenRParen,
	'[': tokenLBracket,
	']': tokenRBracket,
	'{': tokenLBrace,
	'}': tokenRBrace,
}

func lex(input string) ([]token, error) {
	tokens := make([]token, 0, len(input)/2)
	pos := 0

	for pos < len(input) {
		ch := input[pos]
		if ch == '\n' {
			tokens = append(tokens, token{typ: tokenNewline, pos: pos})
			pos++
			continue
		}
		if unicode.IsSpace(rune(ch)) {
			pos++
			continue
		}

		if isIdentifierStart(rune(ch)) {
			start := pos
			pos++
			for pos < len(input) && isIdentifierPart(rune(input[pos])) {
				pos++
			}
			literal := input[start:pos]
			if typ, ok := keywords[literal]; ok {
				tokens = append(tokens, token{typ: typ, literal: literal, pos: start})
			} else {
				tokens = append(tokens, token{typ: tokenIdentifier, literal: literal, pos: start})
			}
			continue
		}

		if isNumberStart(input, pos) {
			numberToken, nextPos, err := lexNumber(input, pos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, numberToken)
			pos = nextPos
			continue
		}

		if ch == '\'' || ch == '"' {
			literal, nextPos, err := lexString(input, pos)
			if err != nil {
				return nil, err
			}
			tokens = append(tokens, token{typ: tokenString, literal: literal, pos: pos})
			pos = nextPos
			continue
		}

		if typ, ok := singleCharTokens[ch]; ok {
			tokens = append(tokens, token{typ: typ, pos: pos})
			pos++
			continue
		}

		switch ch {
		case '-':
			tokens = append(tokens, token{typ: tokenMinus, pos: pos})
			pos++
		case '=':
			if pos+1 < len(input) && input[pos+1] == '=' {
				tokens = append(tokens, token{typ: tokenEqual, pos: pos})
				pos += 2
			} else {
				tokens = append(tokens, token{typ: tokenAssign, pos: pos})
				pos++
			}
		case '!':
			if pos+1 < len(input) && input[pos+1] == '=' {
				tokens = append(tokens, token{typ: tokenNotEqual, pos: pos})
				pos += 2
			} else {
				tokens = append(tokens, token{typ: tokenNot, pos: pos})
				pos++
			}
		case '<':
			if pos+1 < len(input) && input[pos+1] == '=' {
				tokens = append(tokens, token{typ: tokenLessEqual, pos: pos})
				pos += 2
			} else {
				tokens = append(tokens, token{typ: tokenLess, pos: pos})
				pos++
			}
		case '>':
			if pos+1 < len(input) && input[pos+1] == '=' {
				tokens = append(tokens, token{typ: tokenGreaterEqual, pos: pos})
				pos += 2
			} else {
				tokens = append(tokens, token{typ: tokenGreater, pos: pos})
				pos++
			}
		case '&':
			if pos+1 < len(input) && input[pos+1] == '&' {
				tokens = append(tokens, token{typ: tokenAnd, pos: pos})
				pos += 2
			} else {
				return nil, parseErrorf(pos, "unexpected '&'")
			}
		case '|':
			if pos+1 < len(input) && input[pos+1] == '|' {
				tokens = append(tokens, token{typ: tokenOr, pos: pos})
				pos += 2
			} else {
				return nil, parseErrorf(pos, "unexpected '|'")
			}
		default:
			return nil, parseErrorf(pos, "unexpected character %q", ch)
		}
	}

	tokens = append(tokens, token{typ: tokenEOF, pos: len(input)})
	return tokens, nil
}

func isIdentifierStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}

func isIdentifierPart(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

func isNumberStart(input string, pos int) bool {
	return input[pos] >= '0' && input[pos] <= '9'
}

func lexNumber(input string, start int) (token, int, error) {
	pos := start

	digitStart := pos
	for pos < len(input) && input[pos] >= '0' && input[pos] <= '9' {
		pos++
	}
	if pos == digitStart {
		return token{}, 0, parseErrorf(start, "invalid number")
	}

	if pos < len(input) && input[pos] == '.' {
		pos++
		fracStart := pos
		for pos < len(input) && input[pos] >= '0' && input[pos] <= '9' {
			pos++
		}
		if pos == fracStart {
			return token{}, 0, parseErrorf(start, "invalid decimal number")
		}
	}

	if pos < len(input) && (input[pos] == 'e' || input[pos] == 'E') {
		pos++
		if pos < len(input) && (input[pos] == '+' || input[pos] == '-') {
			pos++
		}
		expStart := pos
		for pos < len(input) && input[pos] >= '0' && input[pos] <= '9' {
			pos++
		}
		if pos == expStart {
			return token{}, 0, parseErrorf(start, "invalid exponent")
		}
	}

	literal := input[start:pos]
	if _, err := strconv.ParseFloat(literal, 64); err != nil {
		return token{}, 0, parseErrorf(start, "invalid number %q", literal)
	}

	return token{typ: tokenNumber, literal: literal, pos: start}, pos, nil
}

// lexString decodes a single- or double-quoted string, including \uXXXX
// escapes and surrogate pairs, so re-parsing encoder output is lossless.
func lexString(input string, start int) (string, int, error) {
	quote := input[start]
	var b strings.Builder

	for pos := start + 1; pos < len(input); pos++ {
		ch := input[pos]
		if ch == quote {
			return b.String(), pos + 1, nil
		}

		if ch == '\n' || ch == '\r' {
			return "", 0, parseErrorf(start, "unterminated string")
		}

		if ch != '\\' {
			b.WriteByte(ch)
			continue
		}

		pos++
		if pos >= len(input) {
			return "", 0, parseErrorf(start, "unterminated escape sequence")
		}
		escaped := input[pos]
		switch escaped {
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case '/':
			b.WriteByte('/')
		case '\\':
			b.WriteByte('\\')
		case '\'', '"':
			b.WriteByte(escaped)
		case 'u':
			decoded, consumed, ok := decodeUnicodeEscape(input[pos+1:])
			if !ok {
				return "", 0, parseErrorf(start, "invalid unicode escape")
			}
			b.WriteRune(decoded)
			pos += consumed
		default:
			b.WriteByte(escaped)
		}
	}

	return "", 0, parseErrorf(start, "unterminated string")
}

// decodeUnicodeEscape reads the 4 hex digits after \u, joining surrogate
// pairs when a second \uXXXX escape follows immediately.
func decodeUnicodeEscape(rest string) (rune, int, bool) {
	if len(rest) < 4 {
		return 0, 0, false
	}
	first, err := strconv.ParseUint(rest[:4], 16, 32)
	if err != nil {
		return 0, 0, false
	}
	r := rune(first)
	if !utf16.IsSurrogate(r) {
		return r, 4, true
	}

	if len(rest) >= 10 && rest[4] == '\\' && rest[5] == 'u' {
		second, err := strconv.ParseUint(rest[6:10], 16, 32)
		if err == nil {
			if decoded := utf16.DecodeRune(r, rune(second)); decoded != utf8.RuneError {
				return decoded, 10, true
			}
		}
	}

	return utf8.RuneError, 4, true
}
