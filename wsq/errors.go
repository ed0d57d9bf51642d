package wsq

import (
	"errors"

	"github.com/romainwurtz/nist-fingerprint/errs"
)

// errUnexpectedEOD is wrapped by decodeErr whenever the bit cursor or a
// direct table reader runs past the end of the compressed buffer.
var errUnexpectedEOD = errors.New("unexpected end of WSQ data")

// errMarkerHit is wrapped by decodeErr when the Huffman decoding loop asks
// for a data bit but finds a marker instead, meaning the current block
// ended without its terminating symbol ever being read as expected.
var errMarkerHit = errors.New("marker encountered while reading entropy-coded data")

// DecodeError is returned by Decode for any WSQ-level failure. It always
// wraps an *errs.Error with errs.DecodeErr, carrying an optional byte
// offset into the compressed input.
type DecodeError = errs.Error

func decodeErr(op string, offset int, err error) *DecodeError {
	off := offset
	return errs.NewDecode(op, &off, err)
}

func decodeErrNoOffset(op string, err error) *DecodeError {
	return errs.NewDecode(op, nil, err)
}
