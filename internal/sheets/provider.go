// Package sheets provides the authenticated handle to the remote
// spreadsheet store and implements the pipeline's row source on top of
// the Google Sheets API.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"golang.org/x/oauth2/google"
	gsheets "google.golang.org/api/sheets/v4"

	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/waic/matchlog/internal/record"
)

// Provider lazily builds and caches the Sheets client for the process
// lifetime. Credential sources are tried in priority order; the first one
// whose configuration is present wins. Initialization runs once even
// under concurrent callers; the outcome, success or failure, is cached.
// There is no expiry or refresh: a handle that later goes bad surfaces
// its failure at use time.
type Provider struct {
	sources []CredentialSource

	initOnce sync.Once
	svc      *gsheets.Service
	initErr  error
}

// NewProvider creates a Provider over the given credential sources.
func NewProvider(sources ...CredentialSource) *Provider {
	return &Provider{sources: sources}
}

// client returns the cached Sheets service, building it on first call.
// Failures come back as *record.CredentialError and never panic.
func (p *Provider) client(ctx context.Context) (*gsheets.Service, error) {
	p.initOnce.Do(func() {
		p.svc, p.initErr = p.connect(ctx)
		if p.initErr != nil {
			slog.Error("sheets client unavailable", "error", p.initErr)
		} else {
			slog.Info("sheets client ready")
		}
	})
	return p.svc, p.initErr
}

func (p *Provider) connect(ctx context.Context) (*gsheets.Service, error) {
	creds, err := p.resolveCredentials()
	if err != nil {
		return nil, err
	}

	gc, err := google.CredentialsFromJSON(ctx, creds.JSON, Scopes...)
	if err != nil {
		return nil, &record.CredentialError{
			Source: creds.Source,
			Err:    fmt.Errorf("parsing service-account JSON: %w", err),
		}
	}

	svc, err := gsheets.NewService(ctx, option.WithCredentials(gc))
	if err != nil {
		return nil, &record.CredentialError{
			Source: creds.Source,
			Err:    fmt.Errorf("authorizing sheets client: %w", err),
		}
	}

	slog.Info("sheets client authorized", "credential_source", creds.Source)
	return svc, nil
}

// resolveCredentials walks the source list and returns the first present
// set of credentials. A source that is present but broken stops the walk;
// the two sources are never merged.
func (p *Provider) resolveCredentials() (*Credentials, error) {
	for _, src := range p.sources {
		creds, err := src.Resolve()
		if errors.Is(err, ErrNotAvailable) {
			continue
		}
		if err != nil {
			return nil, &record.CredentialError{Source: sourceName(src), Err: err}
		}
		return creds, nil
	}
	return nil, &record.CredentialError{
		Source: "none",
		Err:    errors.New("no credential source is configured"),
	}
}

func sourceName(src CredentialSource) string {
	switch s := src.(type) {
	case EnvCredentials:
		return "environment"
	case FileCredentials:
		return "file:" + s.Path
	default:
		return fmt.Sprintf("%T", src)
	}
}

// Rows fetches the raw value grid of a worksheet. It satisfies
// record.RowSource, mapping transport failures onto the pipeline's typed
// errors: missing or unshared spreadsheets become StoreNotFoundError, a
// missing worksheet becomes TableNotFoundError, and everything else a
// ConnectivityError.
func (p *Provider) Rows(ctx context.Context, storeID, table string) ([][]string, error) {
	svc, err := p.client(ctx)
	if err != nil {
		return nil, err
	}

	meta, err := svc.Spreadsheets.Get(storeID).
		Fields("sheets.properties.title").
		Context(ctx).Do()
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == 404 || apiErr.Code == 403) {
			return nil, &record.StoreNotFoundError{StoreID: storeID}
		}
		return nil, &record.ConnectivityError{Op: "spreadsheets.get", Err: err}
	}

	found := false
	for _, sh := range meta.Sheets {
		if sh.Properties != nil && sh.Properties.Title == table {
			found = true
			break
		}
	}
	if !found {
		return nil, &record.TableNotFoundError{StoreID: storeID, Table: table}
	}

	vals, err := svc.Spreadsheets.Values.Get(storeID, "'"+table+"'").
		Context(ctx).Do()
	if err != nil {
		return nil, &record.ConnectivityError{Op: "spreadsheets.values.get", Err: err}
	}

	return toGrid(vals.Values), nil
}

// toGrid converts the API's loosely-typed cells to strings. Numbers keep
// their shortest decimal form so "7" does not become "7.000000".
func toGrid(values [][]interface{}) [][]string {
	grid := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = cellString(v)
		}
		grid[i] = cells
	}
	return grid
}

func cellString(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	case bool:
		if c {
			return "TRUE"
		}
		return "FALSE"
	case float64:
		return formatNumber(c)
	default:
		return fmt.Sprint(c)
	}
}

func formatNumber(f float64) string {
	if f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%g", f)
}
