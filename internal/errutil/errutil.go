// Package errutil defines the error taxonomy used across the analysis
// core and a small helper for building causal "when X: Y" chains, the
// way failures are reported from deep inside the pipeline up to a
// per-sequence result.
package errutil

import (
	"errors"
	"fmt"

	"github.com/mitchellh/go-wordwrap"
)

// Kind classifies a failure so callers (QC, the pipeline writer, a CLI)
// can decide how to react without string-matching messages.
type Kind int

const (
	// KindInternal covers bugs: invariants the analysis code itself
	// violated.
	KindInternal Kind = iota
	// KindInputParse covers malformed FASTA/GFF3/JSON input.
	KindInputParse
	// KindInvalidReference covers a reference sequence or annotation
	// that is internally inconsistent (e.g. a CDS not a multiple of 3).
	KindInvalidReference
	// KindAlignmentFailure covers a query that could not be aligned
	// to the reference (seed match failure, band too large, ...).
	KindAlignmentFailure
	// KindTranslationFailure covers a CDS that could not be translated
	// after a successful nucleotide alignment.
	KindTranslationFailure
)

func (k Kind) String() string {
	switch k {
	case KindInputParse:
		return "input parse error"
	case KindInvalidReference:
		return "invalid reference"
	case KindAlignmentFailure:
		return "alignment failure"
	case KindTranslationFailure:
		return "translation failure"
	default:
		return "internal error"
	}
}

// Error is the core error type. It carries a Kind plus a chain of
// "when" context frames, outermost first.
type Error struct {
	kind  Kind
	chain []string
	cause error
}

// New creates a bare error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{kind: kind, chain: []string{message}}
}

// Wrap attaches a "when <context>" frame to err, preserving its Kind
// if err is already one of ours, defaulting to KindInternal otherwise.
func Wrap(err error, context string) *Error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return &Error{kind: e.kind, chain: append([]string{context}, e.chain...), cause: e.cause}
	}
	return &Error{kind: KindInternal, chain: []string{context}, cause: err}
}

// WrapKind is like Wrap but overrides the Kind, used when a lower
// layer returned a plain error but the caller knows the proper
// classification (e.g. a bufio.Scanner error while reading FASTA is
// really an input parse error).
func WrapKind(err error, kind Kind, context string) *Error {
	if err == nil {
		return nil
	}
	w := Wrap(err, context)
	w.kind = kind
	return w
}

func (e *Error) Kind() Kind { return e.kind }

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Error() string {
	msg := ""
	for i, frame := range e.chain {
		if i > 0 {
			msg += ": "
		}
		msg += "when " + frame
	}
	if e.cause != nil {
		msg += ": " + e.cause.Error()
	}
	return msg
}

// Is reports whether err is an *Error of the given kind.
func Is(err error, kind Kind) bool {
	var e *Error
	if !errors.As(err, &e) {
		return false
	}
	return e.kind == kind
}

// Display renders err for a human-facing report (CLI output, result
// warnings list), word-wrapped to a terminal-friendly width.
func Display(err error) string {
	return wordwrap.WrapString(err.Error(), 100)
}

// Causef builds a plain formatted error without attaching a Kind,
// for use with Wrap/WrapKind at the point where context is known.
func Causef(format string, args ...any) error {
	return fmt.Errorf(format, args...)
}
