// Package validation contains the logic for validating
// request data.
//
// It decodes the request body field by field against the payload's declared
// wire names, then uses the `validator` library to enforce rules (like
// required fields) defined in struct tags, and extracts every failure into
// a format the client can understand. All failing fields are reported in
// one pass: validation never short-circuits on the first error.
package validation
