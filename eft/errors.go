package eft

import "github.com/romainwurtz/nist-fingerprint/errs"

// ParseError is returned by Parse for any structural failure in the EFT
// container. It always wraps an *errs.Error with errs.ParseErr, carrying an
// optional byte offset and, when the failure is scoped to a single ANSI/NIST
// record, that record's type.
type ParseError = errs.Error

func parseErr(op string, offset *int, err error) *ParseError {
	return errs.NewParse(op, offset, nil, err)
}

func parseErrRecord(op string, offset *int, recordType int, err error) *ParseError {
	return errs.NewParse(op, offset, errs.Int(recordType), err)
}
