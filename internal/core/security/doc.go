// Package security screens suggested commands before they reach the executor.
//
// The checker is a literal, case-sensitive substring denylist. It is not
// tokenized or path-normalized, so an obfuscated or reformatted destructive
// command (extra spaces, quoting, variables, a different flag order) passes
// straight through. It catches the obvious cases only and must not be treated
// as a security boundary; the user confirmation prompt is the real gate.
package security
