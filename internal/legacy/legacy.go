// Package legacy reads the data.json kept by the previous desktop app: a
// JSON array of [id, value] pairs where id is the receive time in Unix
// milliseconds, formatted as a string.
package legacy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/zjrosen/dbug/internal/log"
	"github.com/zjrosen/dbug/internal/payload"
)

// ImportPath is the request path recorded for imported payloads.
const ImportPath = "/imported"

// Record is one entry of data.json.
type Record struct {
	ID         string
	ReceivedAt time.Time
	Value      json.RawMessage
}

// Load parses the file at path. Entries that are not [string, value]
// pairs are skipped and counted. An id that is not a millisecond
// timestamp takes the file's modification time.
func Load(path string) ([]Record, int, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user supplied import path
	if err != nil {
		return nil, 0, fmt.Errorf("reading %s: %w", path, err)
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, 0, fmt.Errorf("stat %s: %w", path, err)
	}
	return Parse(data, info.ModTime())
}

// Parse is Load without the file system. fallback stamps records whose
// id is not a timestamp.
func Parse(data []byte, fallback time.Time) ([]Record, int, error) {
	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, 0, fmt.Errorf("parsing legacy data: %w", err)
	}

	records := make([]Record, 0, len(entries))
	skipped := 0
	for i, raw := range entries {
		var pair []json.RawMessage
		if err := json.Unmarshal(raw, &pair); err != nil || len(pair) != 2 {
			log.Warn(log.CatImport, "Skipping malformed entry", "index", i)
			skipped++
			continue
		}
		var id string
		if err := json.Unmarshal(pair[0], &id); err != nil {
			log.Warn(log.CatImport, "Skipping entry without string id", "index", i)
			skipped++
			continue
		}
		records = append(records, Record{
			ID:         id,
			ReceivedAt: parseID(id, fallback),
			Value:      pair[1],
		})
	}
	return records, skipped, nil
}

func parseID(id string, fallback time.Time) time.Time {
	ms, err := strconv.ParseInt(id, 10, 64)
	if err != nil || ms <= 0 {
		return fallback.UTC()
	}
	return time.UnixMilli(ms).UTC()
}

// Adder stores a body with an explicit receive time.
type Adder interface {
	AddAt(ctx context.Context, path string, body []byte, at time.Time) (*payload.Payload, error)
}

// Result summarizes an import.
type Result struct {
	Imported int
	Skipped  int
}

// Import loads path and stores every record through svc under ImportPath.
// Records the store rejects as invalid are skipped; any other store error
// aborts the import.
func Import(ctx context.Context, svc Adder, path string) (Result, error) {
	records, skipped, err := Load(path)
	if err != nil {
		return Result{}, err
	}

	res := Result{Skipped: skipped}
	for _, rec := range records {
		if _, err := svc.AddAt(ctx, ImportPath, rec.Value, rec.ReceivedAt); err != nil {
			if errors.Is(err, payload.ErrEmptyBody) || errors.Is(err, payload.ErrInvalidJSON) {
				res.Skipped++
				continue
			}
			return res, fmt.Errorf("importing record %s: %w", rec.ID, err)
		}
		res.Imported++
	}

	log.Info(log.CatImport, "Legacy import finished", "path", path, "imported", res.Imported, "skipped", res.Skipped)
	return res, nil
}
