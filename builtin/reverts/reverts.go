// Copyright (c) 2025 The VeChainThor developers
//
// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

// Package reverts defines the errors returned when an operation is rejected.
// A rejected operation leaves no state changes behind.
package reverts

import (
	"errors"
	"fmt"
)

// Kind classifies a rejection.
type Kind uint8

const (
	Unauthorized Kind = iota + 1
	InvalidState
	NotTimeYet
	TooSoon
	NoChange
	InsufficientBalance
	ArithmeticOverflow
	Underflow
	NotFound
)

var kindNames = map[Kind]string{
	Unauthorized:        "unauthorized",
	InvalidState:        "invalid state",
	NotTimeYet:          "not time yet",
	TooSoon:             "too soon",
	NoChange:            "no change",
	InsufficientBalance: "insufficient balance",
	ArithmeticOverflow:  "arithmetic overflow",
	Underflow:           "underflow",
	NotFound:            "not found",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Error is a rejected operation.
type Error struct {
	Kind    Kind
	Message string
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.String()
	}
	return e.Kind.String() + ": " + e.Message
}

// Is matches another *Error of the same kind, so sentinel comparisons work with errors.Is.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Kind == e.Kind
}

// Is reports whether err is a rejection of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.Kind == kind
}

// IsRevertErr reports whether err is a rejection of any kind.
func IsRevertErr(err any) bool {
	if err == nil {
		return false
	}
	e, ok := err.(error)
	if !ok {
		return false
	}
	var ve *Error
	return errors.As(e, &ve)
}
