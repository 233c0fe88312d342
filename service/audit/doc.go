// Package audit defines the immutable event records that document every
// state-affecting action on a task. Events are appended in creation order
// and never mutated or removed afterwards.
package audit
