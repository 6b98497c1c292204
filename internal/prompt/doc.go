// Package prompt asks the operator questions over line-oriented input.
//
// IOPrompter renders numbered choices to a writer and reads answers from a
// reader, so interactive flows can be driven by canned input in tests.
package prompt
