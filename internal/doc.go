// Package internal contains helper utilities that are intentionally private to goSSO,
// currently secure random token generation.
//
// # What this package must NOT do
//
//   - Export types that appear in the public goSSO API.
//   - Be imported by any package outside the goSSO module.
package internal
