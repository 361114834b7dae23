package spirv

import (
	"fmt"

	"github.com/pkg/errors"
)

// UnsupportedVersionError is returned when Options.Version names a SPIR-V
// major/minor combination this backend does not target.
type UnsupportedVersionError struct {
	Version Version
}

func (e *UnsupportedVersionError) Error() string {
	return fmt.Sprintf("spirv: unsupported target version %s", e.Version)
}

// MissingCapabilitiesError is returned when the module requires a SPIR-V
// capability that Options.Capabilities did not enable.
type MissingCapabilitiesError struct {
	Required []Capability
}

func (e *MissingCapabilitiesError) Error() string {
	return fmt.Sprintf("spirv: missing required capabilities: %v", e.Required)
}

// FeatureNotImplementedError is returned for IR constructs this backend
// recognizes but does not yet lower, as opposed to malformed input.
type FeatureNotImplementedError struct {
	Feature string
}

func (e *FeatureNotImplementedError) Error() string {
	return fmt.Sprintf("spirv: not implemented: %s", e.Feature)
}

// ResolveError wraps a type-resolution failure surfaced by the typifier
// collaborator while lowering an expression. The underlying cause is kept
// reachable through errors.Cause/errors.Unwrap.
type ResolveError struct {
	cause error
}

func (e *ResolveError) Error() string { return "spirv: type resolution failed: " + e.cause.Error() }
func (e *ResolveError) Unwrap() error { return e.cause }
func (e *ResolveError) Cause() error  { return e.cause }

// wrapResolve adapts a typifier error into the Error taxonomy's Resolve
// variant, preserving the original error for errors.Cause/errors.As.
func wrapResolve(err error) error {
	if err == nil {
		return nil
	}
	return &ResolveError{cause: err}
}

// validateVersion fails fast when the requested target version is outside
// the 1.0-1.6 range this backend understands, before any emission begins.
func validateVersion(v Version) error {
	switch v {
	case Version1_0, Version1_1, Version1_2, Version1_3, Version1_4, Version1_5, Version1_6:
		return nil
	default:
		return errors.WithStack(&UnsupportedVersionError{Version: v})
	}
}
