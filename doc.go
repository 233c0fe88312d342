// Package openclaw provides the approval-gated execution workflow behind the
// NOFA/OpenClaw integration: a copilot submits trade suggestions or
// opportunities, a human answers yes/no through a chat channel, and the
// stores transition each record to its terminal state exactly once while
// keeping an immutable audit trail.
//
// The root package is a façade wiring the pluggable service layers:
//
//   - task        – suggestion-driven task workflow with simulated execution
//   - opportunity – chat review queue for lighter yes/no items
//   - executor    – execution seam (simulator stub by default)
//   - gateway     – thin HTTP transport mapping store outcomes to envelopes
//
// Typical embedding:
//
//	srv, _ := openclaw.New()
//	srv.Start(ctx)
//	http.ListenAndServe(addr, srv.Handler())
package openclaw
