// Package source provides adapters that load the score manifest and
// per-month submission resources from their backing store.
//
// Resources follow the conventional layout: a manifest at config.json
// listing month identifiers, and one month<ID>.json file per month.
package source

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/okian/tally/internal/domain/model"
)

// Source loads the manifest and individual months.
type Source interface {
	// Manifest returns the list of month identifiers to aggregate.
	Manifest(ctx context.Context) (Manifest, error)

	// Month loads one month's submissions. Missing or unreachable
	// resources fail with ErrLoad, malformed payloads with ErrParse.
	Month(ctx context.Context, id string) (model.Month, error)
}

// Manifest is the parsed config.json resource.
type Manifest struct {
	Months []string `json:"months"`
}

// manifestDoc is the wire shape of config.json. Month identifiers appear in
// the wild both as JSON strings and as bare numbers; both normalize to
// strings.
type manifestDoc struct {
	Months []json.RawMessage `json:"months"`
}

// parseManifest decodes config.json bytes into a normalized Manifest.
func parseManifest(data []byte) (Manifest, error) {
	var doc manifestDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return Manifest{}, fmt.Errorf("manifest: %w: %w", ErrParse, err)
	}

	m := Manifest{Months: make([]string, 0, len(doc.Months))}
	for _, raw := range doc.Months {
		var s string
		if err := json.Unmarshal(raw, &s); err == nil {
			m.Months = append(m.Months, s)
			continue
		}
		var n json.Number
		if err := json.Unmarshal(raw, &n); err == nil {
			m.Months = append(m.Months, n.String())
			continue
		}
		return Manifest{}, fmt.Errorf("manifest: month id %s: %w", raw, ErrParse)
	}
	return m, nil
}

// parseMonth decodes a month<ID>.json payload.
func parseMonth(id string, data []byte) (model.Month, error) {
	var month model.Month
	if err := json.Unmarshal(data, &month); err != nil {
		return model.Month{}, fmt.Errorf("month %s: %w: %w", id, ErrParse, err)
	}
	month.ID = id
	return month, nil
}

// monthFile returns the resource name for a month identifier.
func monthFile(id string) string {
	return "month" + id + ".json"
}

// manifestFile is the resource name of the manifest.
const manifestFile = "config.json"
