// Package task defines the suggestion-driven task workflow: a task tracks
// one trade suggestion through human approval and simulated execution. The
// package holds the domain types and the store contract; the in-memory
// implementation lives in the memory sub-package.
package task
