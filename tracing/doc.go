// Package tracing wraps OpenTelemetry so the rest of the code base can open
// and close spans through a couple of helpers without importing the upstream
// packages directly. Initialisation is optional; without it spans are no-ops.
package tracing
