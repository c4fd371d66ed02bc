package monplugin

import "errors"

var (
	// ErrRangeSyntax is returned for threshold ranges which cannot be parsed.
	ErrRangeSyntax = errors.New("malformed range")

	// ErrInvalidLabel is returned for performance labels containing ' or =.
	ErrInvalidLabel = errors.New("label contains illegal characters")

	// ErrIllegalInstruction is returned when single and multi entity performance data get mixed.
	ErrIllegalInstruction = errors.New("illegal instruction")

	// ErrUnknownSeverity is returned for unknown severity names.
	ErrUnknownSeverity = errors.New("unknown severity")
)
