// Package gateway is the thin HTTP transport over the task and opportunity
// stores. It owns no workflow logic: it decodes requests, invokes store
// operations and maps their outcome kinds onto protocol status codes and the
// uniform response envelope. Signature headers (X-NOFA-Signature,
// X-OpenClaw-Signature) are accepted as opaque values and never enforced.
package gateway
