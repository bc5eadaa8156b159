// Package pgwire bridges numeric values to PostgreSQL: the binary NUMERIC
// transfer format, typmod passthrough, and the pgx v5 type system so pools
// bind and scan numeric.Numeric directly.
package pgwire

import (
	"strconv"

	"github.com/coachpo/pgnumeric/errs"
	"github.com/coachpo/pgnumeric/numeric"
)

const (
	opReceive       = "pgwire.Receive"
	opTypmodReceive = "pgwire.TypmodReceive"
)

// Send renders x in the PostgreSQL binary NUMERIC transfer format:
// big-endian digit count, weight, sign code and display scale words
// followed by the base-10000 digits.
func Send(x numeric.Numeric) []byte {
	b, err := x.MarshalBinary()
	if err != nil {
		// Canonical values always encode.
		panic(err)
	}
	return b
}

// Receive parses PostgreSQL binary NUMERIC bytes, validating each field
// the way a wire receiver must.
func Receive(data []byte) (numeric.Numeric, error) {
	var n numeric.Numeric
	if err := n.UnmarshalBinary(data); err != nil {
		return numeric.Numeric{}, errs.New(opReceive, errs.CodeOf(err),
			errs.WithMessage("malformed binary numeric"),
			errs.WithCause(err))
	}
	return n, nil
}

// TypmodSend renders a typmod as its wire representation.
func TypmodSend(t numeric.Typmod) int32 {
	return int32(t)
}

// TypmodReceive validates a wire typmod. Unconstrained passes through;
// anything else must decode to a precision and scale the type accepts.
func TypmodReceive(raw int32) (numeric.Typmod, error) {
	t := numeric.Typmod(raw)
	if t == numeric.Unconstrained {
		return t, nil
	}
	if !t.Valid() {
		return numeric.Unconstrained, errs.New(opTypmodReceive, errs.CodeInvalidArgument,
			errs.WithMessage("invalid numeric typmod"),
			errs.WithInput(strconv.FormatInt(int64(raw), 10)))
	}
	round, err := numeric.MakeTypmod(t.Precision(), t.Scale())
	if err != nil {
		return numeric.Unconstrained, errs.New(opTypmodReceive, errs.CodeInvalidArgument,
			errs.WithMessage("invalid numeric typmod"),
			errs.WithInput(strconv.FormatInt(int64(raw), 10)),
			errs.WithCause(err))
	}
	if round != t {
		return numeric.Unconstrained, errs.New(opTypmodReceive, errs.CodeInvalidArgument,
			errs.WithMessage("invalid numeric typmod"),
			errs.WithInput(strconv.FormatInt(int64(raw), 10)))
	}
	return t, nil
}
