package clock

import "time"

// NowFunc returns current time. Override in tests for determinism.
var NowFunc = time.Now

// Now is a thin wrapper around NowFunc.
func Now() time.Time { return NowFunc() }

// NowUTC returns the current time in UTC truncated to whole seconds – the
// resolution store timestamps and audit events are recorded at.
func NowUTC() time.Time { return Now().UTC().Truncate(time.Second) }
