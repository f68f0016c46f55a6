// Package publish implements all-or-nothing output replacement.
//
// The renderer writes into a scratch directory next to the target; the
// scratch tree is validated for completeness and only then swapped into
// place. Any failure before the swap leaves the previous output byte-for-byte
// untouched.
package publish
