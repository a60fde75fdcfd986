package contracts

import "errors"

// Analytics error kinds. Every failure is deterministic and raised by
// input validation; callers match with errors.Is. The raising component
// wraps these with the offending input so the message names which value
// violated which precondition. None of them is ever downgraded to a
// default value: a zero in place of a failed metric would feed a
// misleading recommendation downstream.
var (
	// ErrInsufficientHistory: the series spans fewer than 2 distinct
	// calendar years, so annual return and volatility are undefined.
	ErrInsufficientHistory = errors.New("insufficient history")

	// ErrEmptyCandidateSet: ranking was asked to pick from zero candidates.
	ErrEmptyCandidateSet = errors.New("empty candidate set")

	// ErrDivisionUndefined: a score term needs the reciprocal of a value
	// that is exactly zero.
	ErrDivisionUndefined = errors.New("division undefined")

	// ErrInvalidInput: an argument is outside its documented domain.
	ErrInvalidInput = errors.New("invalid input")

	// ErrZeroReturnUndefined: the annuity inversion divides by zero when
	// the assumed annual return is exactly zero.
	ErrZeroReturnUndefined = errors.New("zero return undefined")

	// ErrUndefinedExponentiation: raising a negative base to a fractional
	// exponent has no real-valued result.
	ErrUndefinedExponentiation = errors.New("undefined exponentiation")
)
