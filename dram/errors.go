package dram

import "github.com/Helios113/ramulator2/dram/internal/errs"

// ConfigurationError reports a problem in the organization/timing
// configuration that prevents a Device from being built.
type ConfigurationError = errs.ConfigurationError

// InternalInvariantViolation reports a node state that the engine's own
// resolver or row-buffer logic found inconsistent. These are unrecoverable:
// the caller should let the panic surface rather than try to continue.
type InternalInvariantViolation = errs.InternalInvariantViolation
