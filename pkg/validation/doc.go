// Package validation checks a model.Form before it is serialized. Partner
// identifiers and room/plan values are required once trimmed; commission is
// optional but must be a number when present. Each failure is reported as an
// Issue keyed by the dotted field path built with model.Path, so front ends can
// highlight exactly the offending inputs and show one aggregate message.
package validation
