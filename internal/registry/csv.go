package registry

import (
	"crypto/md5" //nolint:gosec // content-addressing key, not a security boundary
	"encoding/csv"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
)

// columnSet holds the resolved index of each recognized CSV column. Columns
// this service doesn't use (e.g. "done", "legal_basis") are simply never
// looked up; unrecognized columns are ignored entirely, matching
// original_source/jur_checker.py's behavior of reading the whole row into a
// dict and only pulling out the keys it needs.
type columnSet struct {
	id      int
	name    int // first match of "entity_name" else "name"
	typ     int
	aliases int
}

const colMissing = -1

// LoadCSV reads and parses the registry CSV at path into a slice of
// typed Entry records. The header row is read once and its columns are
// resolved up front (spec's redesign guidance: a typed port parses the
// header once, not repeated per-row dict probing).
func LoadCSV(path string) ([]Entry, error) {
	f, err := os.Open(path) //nolint:gosec // operator-controlled registry path from config
	if err != nil {
		return nil, fmt.Errorf("open registry csv: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // tolerate ragged trailing columns

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("read registry csv header: %w", err)
	}
	cols := resolveColumns(header)

	var entries []Entry
	rowIndex := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read registry csv row %d: %w", rowIndex, err)
		}
		rowIndex++

		entry, ok := parseRow(record, cols, rowIndex)
		if !ok {
			continue // empty name: skip row, matching the reference's "if not entity_name: continue"
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func resolveColumns(header []string) columnSet {
	cols := columnSet{id: colMissing, name: colMissing, typ: colMissing, aliases: colMissing}
	nameIdx := colMissing
	entityNameIdx := colMissing

	for i, h := range header {
		switch strings.ToLower(strings.TrimSpace(h)) {
		case "id":
			cols.id = i
		case "entity_name":
			entityNameIdx = i
		case "name":
			nameIdx = i
		case "type":
			cols.typ = i
		case "aliases":
			cols.aliases = i
		}
	}

	// Support both CSV formats: "entity_name" or "name" (original_source's
	// entity_data.get('entity_name', entity_data.get('name', ''))).
	if entityNameIdx != colMissing {
		cols.name = entityNameIdx
	} else {
		cols.name = nameIdx
	}

	return cols
}

func field(record []string, idx int) string {
	if idx == colMissing || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func parseRow(record []string, cols columnSet, rowIndex int) (Entry, bool) {
	name := field(record, cols.name)
	if name == "" {
		return Entry{}, false
	}

	id := field(record, cols.id)
	if id == "" {
		id = fmt.Sprintf("unknown_%d", rowIndex)
	}

	typ := classifyEntityType(field(record, cols.typ))

	entry := Entry{ID: id, Name: name, Type: typ}

	if raw := field(record, cols.aliases); raw != "" {
		var precomputed []string
		if err := json.Unmarshal([]byte(raw), &precomputed); err == nil {
			entry.AliasesPrecomputed = precomputed
		}
		// Parse failure: leave AliasesPrecomputed nil so the caller falls
		// back to generating aliases, matching the reference's
		// try/except JSONDecodeError → regenerate behavior.
	}

	return entry, true
}

// HashFile returns the MD5 hash of the file at path, hex-encoded, used as
// the cache-key component that detects registry content changes.
func HashFile(path string) (string, error) {
	f, err := os.Open(path) //nolint:gosec // operator-controlled registry path from config
	if err != nil {
		return "", fmt.Errorf("open %s for hashing: %w", path, err)
	}
	defer f.Close()

	h := md5.New() //nolint:gosec // content-addressing key, not a security boundary
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("hash %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
