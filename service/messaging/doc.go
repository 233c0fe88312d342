// Package messaging defines the queue abstraction the stores publish their
// notifications through. Implementations live in sub-packages; the memory
// vendor is the default for a single-process deployment.
package messaging
