/*
Package scanner converts Lox source text into a token stream.

A small hand-rolled state machine: next switches on the current
byte, advance steps the cursor, peek looks ahead without consuming.
Line/column bookkeeping tracks the source index where the current
line began so column can be computed without rescanning.
*/
package scanner

import (
	"strconv"

	"github.com/kodelox/tlox/loxerr"
	"github.com/kodelox/tlox/token"
)

// Scanner performs lexical analysis of Lox source code, tracking
// position, line and column (measured from the start of the current
// source line).
type Scanner struct {
	src       string
	start     int // index of the first byte of the lexeme being scanned
	current   int // index of the next unread byte
	line      int
	lineStart int // source index where the current line began
}

// New creates a Scanner positioned at the beginning of src.
func New(src string) *Scanner {
	return &Scanner{src: src, line: 1}
}

// Scan tokenizes the entire source, returning the token list terminated
// by an EOF token, or the first ScanError encountered: the scanner
// stops at the first unrecoverable lexical error.
func Scan(src string) ([]token.Token, error) {
	s := New(src)
	var tokens []token.Token
	for {
		tok, err := s.next()
		if err != nil {
			return nil, err
		}
		tokens = append(tokens, tok)
		if tok.IsEOF() {
			return tokens, nil
		}
	}
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.src)
}

func (s *Scanner) peek() byte {
	if s.isAtEnd() {
		return 0
	}
	return s.src[s.current]
}

func (s *Scanner) peekNext() byte {
	if s.current+1 >= len(s.src) {
		return 0
	}
	return s.src[s.current+1]
}

func (s *Scanner) advance() byte {
	c := s.src[s.current]
	s.current++
	return c
}

// match consumes the current byte only if it equals want, and reports
// whether it did.
func (s *Scanner) match(want byte) bool {
	if s.peek() != want {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) column() int {
	return s.start - s.lineStart + 1
}

func (s *Scanner) make(kind token.Kind, literal any) token.Token {
	return token.New(kind, s.src[s.start:s.current], literal, s.line, s.column())
}

func (s *Scanner) skipWhitespaceAndComments() {
	for !s.isAtEnd() {
		switch c := s.peek(); c {
		case ' ', '\r', '\t':
			s.current++
		case '\n':
			s.current++
			s.line++
			s.lineStart = s.current
		case '/':
			if s.peekNext() == '/' {
				for !s.isAtEnd() && s.peek() != '\n' {
					s.current++
				}
			} else {
				return
			}
		default:
			return
		}
	}
}

// next scans and returns the next token, or a ScanError.
func (s *Scanner) next() (token.Token, error) {
	s.skipWhitespaceAndComments()
	s.start = s.current
	if s.isAtEnd() {
		return token.New(token.EOF, "", nil, s.line, s.current-s.lineStart+1), nil
	}

	c := s.advance()
	switch c {
	case '(':
		return s.make(token.LeftParen, nil), nil
	case ')':
		return s.make(token.RightParen, nil), nil
	case '{':
		return s.make(token.LeftBrace, nil), nil
	case '}':
		return s.make(token.RightBrace, nil), nil
	case ',':
		return s.make(token.Comma, nil), nil
	case '-':
		return s.make(token.Minus, nil), nil
	case '+':
		return s.make(token.Plus, nil), nil
	case ';':
		return s.make(token.Semicolon, nil), nil
	case '*':
		return s.make(token.Star, nil), nil
	case '/':
		return s.make(token.Slash, nil), nil
	case '!':
		if s.match('=') {
			return s.make(token.BangEqual, nil), nil
		}
		return s.make(token.Bang, nil), nil
	case '=':
		if s.match('=') {
			return s.make(token.EqualEqual, nil), nil
		}
		return s.make(token.Equal, nil), nil
	case '<':
		if s.match('=') {
			return s.make(token.LessEqual, nil), nil
		}
		return s.make(token.Less, nil), nil
	case '>':
		if s.match('=') {
			return s.make(token.GreaterEqual, nil), nil
		}
		return s.make(token.Greater, nil), nil
	case '.':
		return s.make(token.Dot, nil), nil
	case '"':
		return s.readString()
	default:
		if isDigit(c) {
			return s.readNumber(), nil
		}
		if isAlpha(c) {
			return s.readIdentifier(), nil
		}
		return token.Token{}, &loxerr.ScanError{
			Message: "Unexpected character: " + string(c) + ".",
			Line:    s.line,
		}
	}
}

func (s *Scanner) readString() (token.Token, error) {
	startLine := s.line
	startColumn := s.column()
	for !s.isAtEnd() && s.peek() != '"' {
		if s.peek() == '\n' {
			s.line++
			s.current++
			s.lineStart = s.current
			continue
		}
		s.current++
	}
	if s.isAtEnd() {
		return token.Token{}, &loxerr.ScanError{
			Message: "Unterminated string.",
			Line:    startLine,
		}
	}
	s.current++ // consume closing quote
	value := s.src[s.start+1 : s.current-1]
	return token.New(token.String, s.src[s.start:s.current], value, startLine, startColumn), nil
}

func (s *Scanner) readNumber() token.Token {
	for isDigit(s.peek()) {
		s.current++
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.current++ // consume '.'
		for isDigit(s.peek()) {
			s.current++
		}
	}
	lexeme := s.src[s.start:s.current]
	value, _ := strconv.ParseFloat(lexeme, 64)
	return s.make(token.Number, value)
}

func (s *Scanner) readIdentifier() token.Token {
	for isAlphaNumeric(s.peek()) {
		s.current++
	}
	lexeme := s.src[s.start:s.current]
	return s.make(token.Lookup(lexeme), nil)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
