// Package workflow implements the generic idempotent decision protocol
// shared by the task and opportunity stores: a decision lands on an entity
// at most once; an identical resubmission is absorbed as a duplicate; a
// differing resubmission or a decision arriving in the wrong state is a
// conflict. Stores parameterize the protocol with their entity and decision
// types instead of duplicating it.
package workflow
