package record

import (
	"errors"
	"fmt"
)

// Kind is the closed enumeration of recoverable pipeline failures. Every
// failure the loader swallows is classified as exactly one Kind.
type Kind int

const (
	KindUnexpected Kind = iota
	KindCredential
	KindConnectivity
	KindStoreNotFound
	KindTableNotFound
	KindSchemaMismatch
	KindConfigFallback
)

// String returns the kind's stable identifier, used in logs.
func (k Kind) String() string {
	switch k {
	case KindCredential:
		return "credential"
	case KindConnectivity:
		return "connectivity"
	case KindStoreNotFound:
		return "store_not_found"
	case KindTableNotFound:
		return "table_not_found"
	case KindSchemaMismatch:
		return "schema_mismatch"
	case KindConfigFallback:
		return "config_fallback"
	default:
		return "unexpected"
	}
}

// Severity distinguishes warnings (load proceeded) from errors (load
// degraded to an empty set).
type Severity int

const (
	SeverityWarning Severity = iota
	SeverityError
)

// Diagnostic is a reported, non-fatal description of a recovered failure.
// Message is human-readable and names the identifiers involved; Err
// preserves the underlying technical error for logs.
type Diagnostic struct {
	Kind     Kind
	Severity Severity
	Message  string
	Err      error
}

// UserMessage pairs the diagnostic with actionable guidance and a support
// code users can quote when reporting problems.
type UserMessage struct {
	Message string // What happened
	Action  string // What to do about it
	Code    string // Support reference code
}

// User maps the diagnostic onto user-facing guidance. Codes:
//
//	CRED001   - credentials missing or malformed
//	NET001    - remote store unreachable
//	STORE001  - spreadsheet not found
//	TBL001    - worksheet not found
//	SCHEMA001 - header does not match canonical schema
//	CFG001    - fallback spreadsheet ID in use
//	ERR000    - anything else; check logs for the original error
func (d Diagnostic) User() UserMessage {
	switch d.Kind {
	case KindCredential:
		return UserMessage{
			Message: d.Message,
			Action:  "Check the service-account secret or the credential file",
			Code:    "CRED001",
		}
	case KindConnectivity:
		return UserMessage{
			Message: d.Message,
			Action:  "Verify credentials and network access, then reload",
			Code:    "NET001",
		}
	case KindStoreNotFound:
		return UserMessage{
			Message: d.Message,
			Action:  "Check the spreadsheet ID and its sharing settings",
			Code:    "STORE001",
		}
	case KindTableNotFound:
		return UserMessage{
			Message: d.Message,
			Action:  "Check the worksheet name in the configuration",
			Code:    "TBL001",
		}
	case KindSchemaMismatch:
		return UserMessage{
			Message: d.Message,
			Action:  "Align the worksheet header with the canonical columns",
			Code:    "SCHEMA001",
		}
	case KindConfigFallback:
		return UserMessage{
			Message: d.Message,
			Action:  "Set SPREADSHEET_ID to silence this warning",
			Code:    "CFG001",
		}
	default:
		return UserMessage{
			Message: d.Message,
			Action:  "Try reloading; check application logs if it persists",
			Code:    "ERR000",
		}
	}
}

// classify converts a row-source error into the diagnostics for one load.
// A credential failure produces two messages, mirroring what the user
// sees: which credential source failed, and that records could not be
// loaded because the store is unreachable.
func classify(err error, loc Locator) []Diagnostic {
	var credErr *CredentialError
	if errors.As(err, &credErr) {
		return []Diagnostic{
			{
				Kind:     KindCredential,
				Severity: SeverityError,
				Message:  fmt.Sprintf("failed to build credentials (source: %s): %v", credErr.Source, credErr.Err),
				Err:      err,
			},
			{
				Kind:     KindConnectivity,
				Severity: SeverityError,
				Message:  "cannot connect to the record store, records were not loaded; check the credential configuration",
				Err:      err,
			},
		}
	}

	var storeErr *StoreNotFoundError
	if errors.As(err, &storeErr) {
		return []Diagnostic{{
			Kind:     KindStoreNotFound,
			Severity: SeverityError,
			Message:  fmt.Sprintf("spreadsheet %s not found or not shared with the service account", storeErr.StoreID),
			Err:      err,
		}}
	}

	var tableErr *TableNotFoundError
	if errors.As(err, &tableErr) {
		return []Diagnostic{{
			Kind:     KindTableNotFound,
			Severity: SeverityError,
			Message:  fmt.Sprintf("worksheet %q not found in spreadsheet %s", tableErr.Table, tableErr.StoreID),
			Err:      err,
		}}
	}

	var connErr *ConnectivityError
	if errors.As(err, &connErr) {
		return []Diagnostic{{
			Kind:     KindConnectivity,
			Severity: SeverityError,
			Message:  fmt.Sprintf("reading from spreadsheet %s failed: %v", loc.StoreID, connErr.Err),
			Err:      err,
		}}
	}

	return []Diagnostic{{
		Kind:     KindUnexpected,
		Severity: SeverityError,
		Message:  fmt.Sprintf("unexpected error while loading records: %T: %v", err, err),
		Err:      err,
	}}
}
