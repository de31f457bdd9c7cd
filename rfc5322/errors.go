package rfc5322

import (
	"errors"
	"fmt"
)

// ErrEOF matches, with errors.Is, errors of kind KindEOF.
var ErrEOF = errors.New("unexpected end of input")

// ErrorKind classifies an Error.
type ErrorKind int

const (
	// KindEOF means input ended while a construct was still required.
	KindEOF ErrorKind = iota

	// KindToken is a grammar mismatch at a specific byte.
	KindToken

	// KindIO means the output writer failed. Never a reason to try another
	// production.
	KindIO
)

func (k ErrorKind) String() string {
	switch k {
	case KindEOF:
		return "eof"
	case KindToken:
		return "token"
	case KindIO:
		return "io"
	}
	return fmt.Sprintf("kind%d", int(k))
}

// Token identifies a grammar production, for diagnostics.
type Token int

const (
	TokenFWS Token = iota
	TokenCFWS
	TokenComment
	TokenQuotedPair
	TokenQuotedString
	TokenQtext
	TokenAddress
	TokenLocalPart
	TokenDomain
	TokenDomainLiteral
	TokenAtom
	TokenDotAtom
	TokenAtext
	TokenWord
	TokenPhrase
)

var tokenNames = []string{
	TokenFWS:           "FWS",
	TokenCFWS:          "CFWS",
	TokenComment:       "comment",
	TokenQuotedPair:    "quoted-pair",
	TokenQuotedString:  "quoted-string",
	TokenQtext:         "qtext",
	TokenAddress:       "address",
	TokenLocalPart:     "local-part",
	TokenDomain:        "domain",
	TokenDomainLiteral: "domain-literal",
	TokenAtom:          "atom",
	TokenDotAtom:       "dot-atom",
	TokenAtext:         "atext",
	TokenWord:          "word",
	TokenPhrase:        "phrase",
}

// String returns the RFC 5322 name of the production.
func (t Token) String() string {
	if t >= 0 && int(t) < len(tokenNames) {
		return tokenNames[t]
	}
	return fmt.Sprintf("token%d", int(t))
}

// Error is returned by all parse functions.
//
// For KindToken, Token, Byte and Position describe the offending byte. Position is
// the absolute offset in the input of the Cursor. For KindIO, Err is the error
// returned by the writer. Cause is optionally set to the error of an alternative
// that was abandoned before this error occurred, it is for diagnostics only.
type Error struct {
	Kind     ErrorKind
	Token    Token
	Byte     byte
	Position int
	Err      error
	Cause    *Error
}

func (e *Error) Error() string {
	var s string
	switch e.Kind {
	case KindEOF:
		s = ErrEOF.Error()
	case KindToken:
		s = fmt.Sprintf("%s: unexpected byte %q at position %d", e.Token, e.Byte, e.Position)
	case KindIO:
		s = fmt.Sprintf("write: %v", e.Err)
	default:
		s = e.Kind.String()
	}
	if e.Cause != nil {
		s += " (after " + e.Cause.Error() + ")"
	}
	return s
}

// Unwrap returns the writer error for KindIO.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrEOF) work for KindEOF errors.
func (e *Error) Is(target error) bool {
	return target == ErrEOF && e.Kind == KindEOF
}

func errEOF() *Error {
	return &Error{Kind: KindEOF}
}

func errToken(token Token, c Cursor) *Error {
	if c.Empty() {
		return errEOF()
	}
	return &Error{Kind: KindToken, Token: token, Byte: c.Remaining()[0], Position: c.Position()}
}

func errTokenAt(token Token, c Cursor, offset int) *Error {
	b := c.Remaining()
	if offset >= len(b) {
		return errEOF()
	}
	return &Error{Kind: KindToken, Token: token, Byte: b[offset], Position: c.Position() + offset}
}

func errIO(err error) *Error {
	return &Error{Kind: KindIO, Err: err}
}

// withCause returns e with cause set as its cause, unless e already has one.
func withCause(e, cause *Error) *Error {
	if e != nil && e.Cause == nil && cause != nil && e != cause {
		e.Cause = cause
	}
	return e
}

func kind(err error) (ErrorKind, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind, true
	}
	return 0, false
}

// IsEOF returns whether err is an Error of kind KindEOF.
func IsEOF(err error) bool {
	k, ok := kind(err)
	return ok && k == KindEOF
}

// IsToken returns whether err is an Error of kind KindToken.
func IsToken(err error) bool {
	k, ok := kind(err)
	return ok && k == KindToken
}

// IsIO returns whether err is an Error of kind KindIO.
func IsIO(err error) bool {
	k, ok := kind(err)
	return ok && k == KindIO
}

// recoverable returns whether another production can be tried after err.
func recoverable(err *Error) bool {
	return err != nil && err.Kind != KindIO
}
