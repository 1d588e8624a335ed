package record

import "fmt"

// Typed errors for the closed failure taxonomy of the pipeline. The row
// source returns these; the loader classifies them with errors.As and
// converts them to diagnostics instead of letting them escape.

// CredentialError means credentials could not be built or the client
// could not be authorized. Source names which configuration source was
// attempted ("environment", "file", or "none").
type CredentialError struct {
	Source string
	Err    error
}

func (e *CredentialError) Error() string {
	return fmt.Sprintf("credentials unavailable (source: %s): %v", e.Source, e.Err)
}

func (e *CredentialError) Unwrap() error { return e.Err }

// ConnectivityError means the client authorized but a remote call failed.
type ConnectivityError struct {
	Op  string
	Err error
}

func (e *ConnectivityError) Error() string {
	return fmt.Sprintf("remote call %s failed: %v", e.Op, e.Err)
}

func (e *ConnectivityError) Unwrap() error { return e.Err }

// StoreNotFoundError means the spreadsheet does not exist or is not
// shared with the configured account.
type StoreNotFoundError struct {
	StoreID string
}

func (e *StoreNotFoundError) Error() string {
	return fmt.Sprintf("spreadsheet %s not found or not accessible", e.StoreID)
}

// TableNotFoundError means the named worksheet is absent from an
// otherwise reachable spreadsheet.
type TableNotFoundError struct {
	StoreID string
	Table   string
}

func (e *TableNotFoundError) Error() string {
	return fmt.Sprintf("worksheet %q not found in spreadsheet %s", e.Table, e.StoreID)
}
