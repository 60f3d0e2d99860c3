// Package errors provides the structured error taxonomy for stratum-installer.
//
// Every condition that halts a run is reported through one of the sentinel
// errors below, usually wrapped in a contextual type that records which
// directory, URL or file was involved. The CLI maps sentinels to exit codes
// and prints the contextual fields as remediation hints instead of crashing
// with a raw error.
//
// # Error Types
//
// Base errors (sentinel errors):
//   - ErrDirectoryUnavailable - game or resource pack directory missing or read-only
//   - ErrCredentialUnavailable - access token could not be read or saved (non-fatal)
//   - ErrCatalogUnreachable - project list request failed
//   - ErrCatalogMalformed - project list response could not be decoded
//   - ErrNoTiersAvailable - no bundle tier to select from
//   - ErrInstall - an installation phase failed
//   - ErrInvalid - validation failed
//   - ErrCanceled - user canceled operation
//
// Wrapped error types (add context):
//   - DirectoryError{Path, Reason, Err} - directory access errors
//   - CatalogError{Kind, URL, Status, Err} - catalog request errors
//   - ConfigError{Path, Err} - configuration errors
//
// # Usage
//
//	return &errors.DirectoryError{Path: dir, Reason: errors.ReasonMissing}
//
//	if errors.IsCatalogUnreachable(err) {
//	    // tell the user to check the connection or token
//	}
package errors

import (
	"errors"
	"fmt"
)

// Base error types (sentinel errors).
var (
	// ErrDirectoryUnavailable indicates the target directory is missing or not writable.
	ErrDirectoryUnavailable = baseError("directory unavailable")

	// ErrCredentialUnavailable indicates the access token could not be obtained or stored.
	ErrCredentialUnavailable = baseError("credential unavailable")

	// ErrCatalogUnreachable indicates the catalog request could not be completed.
	ErrCatalogUnreachable = baseError("catalog unreachable")

	// ErrCatalogMalformed indicates the catalog response could not be parsed.
	ErrCatalogMalformed = baseError("catalog malformed")

	// ErrNoTiersAvailable indicates the catalog held no installable tier.
	ErrNoTiersAvailable = baseError("no tiers available")

	// ErrInstall indicates an installation phase failed.
	ErrInstall = baseError("installation failed")

	// ErrInvalid indicates validation failed.
	ErrInvalid = baseError("invalid")

	// ErrCanceled indicates the user canceled an operation.
	ErrCanceled = baseError("canceled")
)

// baseError is a string that implements error.
type baseError string

func (e baseError) Error() string { return string(e) }

// Reasons a directory is unavailable.
const (
	ReasonMissing    = "doesn't exist"
	ReasonNotDir     = "is not a directory"
	ReasonReadOnly   = "is read-only"
	ReasonUnreadable = "cannot be read"
	ReasonUnresolved = "could not be located"
)

// DirectoryError represents a directory that cannot be used for installation.
type DirectoryError struct {
	// Path is the directory that failed the check.
	Path string
	// Reason is a short human readable reason (see the Reason constants).
	Reason string
	// Err is the underlying error (optional).
	Err error
}

func (e *DirectoryError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s %s: %s", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("%s %s", e.Path, e.Reason)
}

func (e *DirectoryError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrDirectoryUnavailable}
	}
	return []error{ErrDirectoryUnavailable, e.Err}
}

// CatalogError represents a failed catalog query.
type CatalogError struct {
	// Kind is ErrCatalogUnreachable or ErrCatalogMalformed.
	Kind error
	// URL is the requested catalog URL.
	URL string
	// Status is the HTTP status code, 0 when no response was received.
	Status int
	// Err is the underlying error.
	Err error
}

func (e *CatalogError) Error() string {
	if e.Status != 0 {
		return fmt.Sprintf("%s: %s returned status %d: %s", e.Kind, e.URL, e.Status, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.URL, e.Err)
}

func (e *CatalogError) Unwrap() []error { return []error{e.Kind, e.Err} }

// ConfigError represents an error related to configuration.
type ConfigError struct {
	// Path is the configuration file path (optional).
	Path string
	// Err is the underlying error.
	Err error
}

func (e *ConfigError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("config %s: %s", e.Path, e.Err)
	}
	return fmt.Sprintf("config: %s", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// Wrap adds context to an error by wrapping it with an operation name.
// The returned error implements Unwrap() allowing errors.Is and errors.As
// to work with the wrapped error.
func Wrap(err error, op string) error {
	return &wrappedError{op: op, err: err}
}

// wrappedError is an error with an operation context.
type wrappedError struct {
	op  string
	err error
}

func (e *wrappedError) Error() string { return fmt.Sprintf("%s: %s", e.op, e.err) }
func (e *wrappedError) Unwrap() error { return e.err }

// IsDirectoryUnavailable reports whether err is or wraps ErrDirectoryUnavailable.
func IsDirectoryUnavailable(err error) bool {
	return errors.Is(err, ErrDirectoryUnavailable)
}

// IsCredentialUnavailable reports whether err is or wraps ErrCredentialUnavailable.
func IsCredentialUnavailable(err error) bool {
	return errors.Is(err, ErrCredentialUnavailable)
}

// IsCatalogUnreachable reports whether err is or wraps ErrCatalogUnreachable.
func IsCatalogUnreachable(err error) bool {
	return errors.Is(err, ErrCatalogUnreachable)
}

// IsCatalogMalformed reports whether err is or wraps ErrCatalogMalformed.
func IsCatalogMalformed(err error) bool {
	return errors.Is(err, ErrCatalogMalformed)
}

// IsNoTiersAvailable reports whether err is or wraps ErrNoTiersAvailable.
func IsNoTiersAvailable(err error) bool {
	return errors.Is(err, ErrNoTiersAvailable)
}

// IsInstall reports whether err is or wraps ErrInstall.
func IsInstall(err error) bool {
	return errors.Is(err, ErrInstall)
}

// IsInvalid reports whether err is or wraps ErrInvalid.
func IsInvalid(err error) bool {
	return errors.Is(err, ErrInvalid)
}

// IsCanceled reports whether err is or wraps ErrCanceled.
func IsCanceled(err error) bool {
	return errors.Is(err, ErrCanceled)
}

// AsDirectoryError reports whether err can be typed as a *DirectoryError.
func AsDirectoryError(err error) (*DirectoryError, bool) {
	var de *DirectoryError
	if errors.As(err, &de) {
		return de, true
	}
	return nil, false
}

// AsCatalogError reports whether err can be typed as a *CatalogError.
func AsCatalogError(err error) (*CatalogError, bool) {
	var ce *CatalogError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// AsConfigError reports whether err can be typed as a *ConfigError.
func AsConfigError(err error) (*ConfigError, bool) {
	var ce *ConfigError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// Exit codes returned by the CLI.
const (
	ExitSuccess        = 0   // Installation completed
	ExitGenericError   = 1   // Generic error (config, prompts)
	ExitDirectoryError = 2   // Game or resource pack directory unavailable
	ExitNetworkError   = 3   // Catalog unreachable or malformed
	ExitNoTiers        = 4   // Catalog had nothing to install
	ExitInstallError   = 5   // An installation phase failed
	ExitCanceled       = 130 // Interrupted by the user
)

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitSuccess
	case IsCanceled(err):
		return ExitCanceled
	case IsDirectoryUnavailable(err):
		return ExitDirectoryError
	case IsCatalogUnreachable(err), IsCatalogMalformed(err):
		return ExitNetworkError
	case IsNoTiersAvailable(err):
		return ExitNoTiers
	case IsInstall(err):
		return ExitInstallError
	default:
		return ExitGenericError
	}
}

// Hint returns a one-line remediation for err, or "" when there is none.
func Hint(err error) string {
	if de, ok := AsDirectoryError(err); ok {
		switch de.Reason {
		case ReasonMissing:
			return fmt.Sprintf("create %s or point --game-dir/--target-dir at your installation", de.Path)
		case ReasonReadOnly:
			return fmt.Sprintf("make %s writable or run the installer as its owner", de.Path)
		}
		return "check --game-dir and --target-dir"
	}

	if ce, ok := AsCatalogError(err); ok {
		switch ce.Status {
		case 401, 403:
			return "the access token was rejected; run `stratum-installer login` with a new token"
		case 0:
			return "check your internet connection"
		}
		if errors.Is(ce.Kind, ErrCatalogMalformed) {
			return "the download server sent an unexpected response; try again later"
		}
		return "the download server returned an error; try again later"
	}

	switch {
	case IsNoTiersAvailable(err):
		return "your token may not grant access to any tier"
	case IsInstall(err):
		return "run the installer again to retry"
	}
	return ""
}
