// Package contacts resolves opposing team names to captain and vice-captain
// email addresses.
//
// The primary implementation parses a locally maintained tab-separated
// contacts file. An alternate best-effort implementation delegates the same
// lookup to a locally hosted language model; both sit behind the Directory
// interface so the caller never depends on which path produced the result.
package contacts
