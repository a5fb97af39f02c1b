package differ

import (
	"encoding/json"
	"fmt"
	"sort"

	"github.com/erraggy/rostertools/parser"
)

// DefaultKeyField is the identifier column compared when none is configured.
const DefaultKeyField = "EMP ID"

// CountChange records how many records an identifier had on each side of a
// diff, for identifiers that are duplicated on at least one side.
type CountChange struct {
	// Value is the canonical string form of the identifier
	Value string
	// OldCount is the number of records on the old side
	OldCount int
	// NewCount is the number of records on the new side
	NewCount int
}

// DiffResult contains the results of comparing two rosters keyed by an
// identifier field. All lists are ordered by key ascending.
type DiffResult struct {
	// KeyField is the identifier column the comparison grouped on
	KeyField string
	// OldRecords is the number of records on the old side
	OldRecords int
	// NewRecords is the number of records on the new side
	NewRecords int
	// Added contains identifiers present only on the new side
	Added []string
	// Removed contains identifiers present only on the old side
	Removed []string
	// Changed contains identifiers present on both sides whose record
	// content differs. For duplicated identifiers the multiset of records
	// is compared, so reordering alone is not a change.
	Changed []string
	// DuplicateDelta contains per-identifier count changes where either
	// side has more than one record
	DuplicateDelta []CountChange
	// OldPath is the source path of the old roster (when parsed from one)
	OldPath string
	// NewPath is the source path of the new roster (when parsed from one)
	NewPath string
}

// HasChanges returns true if the diff found any difference.
func (r *DiffResult) HasChanges() bool {
	return len(r.Added) > 0 || len(r.Removed) > 0 || len(r.Changed) > 0 || len(r.DuplicateDelta) > 0
}

// Differ compares two rosters keyed by an identifier field
type Differ struct {
	// KeyField is the identifier column to group on.
	// Defaults to "EMP ID" if not set.
	KeyField string
	// UserAgent is the User-Agent string used when fetching URLs
	// Defaults to "rostertools" if not set
	UserAgent string
}

// New creates a new Differ instance with default settings
func New() *Differ {
	return &Differ{KeyField: DefaultKeyField}
}

// keyField returns the configured key field or the default.
func (d *Differ) keyField() string {
	if d.KeyField != "" {
		return d.KeyField
	}
	return DefaultKeyField
}

// DiffFiles parses two roster files or URLs and compares them.
func (d *Differ) DiffFiles(oldPath, newPath string) (*DiffResult, error) {
	p := parser.New()
	p.UserAgent = d.UserAgent

	oldResult, err := p.Parse(oldPath)
	if err != nil {
		return nil, fmt.Errorf("differ: failed to parse old roster: %w", err)
	}
	newResult, err := p.Parse(newPath)
	if err != nil {
		return nil, fmt.Errorf("differ: failed to parse new roster: %w", err)
	}
	return d.Diff(oldResult, newResult)
}

// Diff compares two parsed rosters.
func (d *Differ) Diff(oldRoster, newRoster *parser.ParseResult) (*DiffResult, error) {
	result, err := d.DiffRecords(oldRoster.Records, newRoster.Records)
	if err != nil {
		return nil, err
	}
	result.OldPath = oldRoster.SourcePath
	result.NewPath = newRoster.SourcePath
	return result, nil
}

// DiffRecords compares two record slices keyed by the identifier field.
// Records lacking the key field on either side are ignored; the checker is
// the tool for reporting those.
func (d *Differ) DiffRecords(oldRecords, newRecords []parser.Record) (*DiffResult, error) {
	keyField := d.keyField()

	oldGroups, err := groupByKey(oldRecords, keyField)
	if err != nil {
		return nil, err
	}
	newGroups, err := groupByKey(newRecords, keyField)
	if err != nil {
		return nil, err
	}

	result := &DiffResult{
		KeyField:   keyField,
		OldRecords: len(oldRecords),
		NewRecords: len(newRecords),
	}

	for key, newGroup := range newGroups {
		oldGroup, ok := oldGroups[key]
		if !ok {
			result.Added = append(result.Added, key)
			continue
		}
		if !sameMultiset(oldGroup, newGroup) {
			result.Changed = append(result.Changed, key)
		}
		if (len(oldGroup) > 1 || len(newGroup) > 1) && len(oldGroup) != len(newGroup) {
			result.DuplicateDelta = append(result.DuplicateDelta, CountChange{
				Value:    key,
				OldCount: len(oldGroup),
				NewCount: len(newGroup),
			})
		}
	}
	for key := range oldGroups {
		if _, ok := newGroups[key]; !ok {
			result.Removed = append(result.Removed, key)
		}
	}

	sort.Strings(result.Added)
	sort.Strings(result.Removed)
	sort.Strings(result.Changed)
	sort.Slice(result.DuplicateDelta, func(i, j int) bool {
		return result.DuplicateDelta[i].Value < result.DuplicateDelta[j].Value
	})

	return result, nil
}

// groupByKey buckets each record's canonical JSON encoding under its
// canonical key value. Encoding once here makes multiset comparison a plain
// string-slice comparison.
func groupByKey(records []parser.Record, keyField string) (map[string][]string, error) {
	groups := make(map[string][]string)
	for i, rec := range records {
		value, ok := rec[keyField]
		if !ok || value == nil {
			continue
		}
		encoded, err := json.Marshal(rec)
		if err != nil {
			return nil, fmt.Errorf("differ: failed to encode record %d: %w", i+1, err)
		}
		key := parser.CanonicalString(value)
		groups[key] = append(groups[key], string(encoded))
	}
	return groups, nil
}

// sameMultiset reports whether two groups hold the same records regardless
// of order. encoding/json sorts map keys, so equal records encode equally.
func sameMultiset(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := make([]string, len(a))
	bs := make([]string, len(b))
	copy(as, a)
	copy(bs, b)
	sort.Strings(as)
	sort.Strings(bs)
	for i := range as {
		if as[i] != bs[i] {
			return false
		}
	}
	return true
}
