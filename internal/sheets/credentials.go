package sheets

import (
	"errors"
	"fmt"
	"os"
)

// ErrNotAvailable is returned by a CredentialSource whose configuration
// is simply absent, as opposed to present but broken. The provider moves
// on to the next source.
var ErrNotAvailable = errors.New("credentials not available")

// Scopes requested for the Sheets client. The pipeline is read-only, so
// only the read-only spreadsheet scope is needed.
var Scopes = []string{
	"https://www.googleapis.com/auth/spreadsheets.readonly",
}

// Credentials is raw service-account JSON plus the name of the source it
// came from, for diagnostics.
type Credentials struct {
	JSON   []byte
	Source string
}

// CredentialSource resolves service-account JSON from one configuration
// source. Sources are tried in priority order and never merged.
type CredentialSource interface {
	Resolve() (*Credentials, error)
}

// EnvCredentials reads the whole service-account JSON from a secret
// supplied by the hosting environment. It takes precedence over the file
// source when present.
type EnvCredentials struct {
	JSON string
}

func (e EnvCredentials) Resolve() (*Credentials, error) {
	if e.JSON == "" {
		return nil, ErrNotAvailable
	}
	return &Credentials{JSON: []byte(e.JSON), Source: "environment"}, nil
}

// FileCredentials reads service-account JSON from a local file,
// conventionally service_account.json.
type FileCredentials struct {
	Path string
}

func (f FileCredentials) Resolve() (*Credentials, error) {
	raw, err := os.ReadFile(f.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotAvailable
		}
		return nil, fmt.Errorf("reading credential file %s: %w", f.Path, err)
	}
	return &Credentials{JSON: raw, Source: "file:" + f.Path}, nil
}
