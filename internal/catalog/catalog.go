package catalog

import (
	"bufio"
	"bytes"
	"embed"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"draftkit/internal/logging"
)

//go:embed embedded/*.ndjson
var embeddedCorpora embed.FS

// DataSource records where the catalog contents came from.
type DataSource int

const (
	SourceNone DataSource = iota
	SourceEmbedded
	SourceRuntime
)

func (s DataSource) String() string {
	switch s {
	case SourceRuntime:
		return "runtime"
	case SourceEmbedded:
		return "embedded"
	default:
		return "none"
	}
}

// Catalog is the per-framework component index. It is read-only after Load.
type Catalog struct {
	source  DataSource
	records map[Framework][]*ComponentRecord
	byID    map[Framework]map[string]*ComponentRecord
}

// Load builds the catalog from the runtime components directory, falling
// back to the embedded seed corpus when the directory holds nothing. A
// missing or empty data set yields an empty catalog, never an error.
func Load(componentsDir string) *Catalog {
	c := newEmpty()

	loaded := 0
	for _, fw := range Frameworks {
		path := filepath.Join(componentsDir, string(fw)+"-v4.ndjson")
		f, err := os.Open(path)
		if err != nil {
			continue
		}
		n := c.readCorpus(fw, f)
		f.Close()
		loaded += n
	}
	if loaded > 0 {
		c.source = SourceRuntime
		logging.Debug("Catalog loaded from runtime data", "dir", componentsDir, "records", loaded)
		return c
	}

	for _, fw := range Frameworks {
		data, err := embeddedCorpora.ReadFile("embedded/" + string(fw) + "-v4.ndjson")
		if err != nil {
			continue
		}
		loaded += c.readCorpus(fw, bytes.NewReader(data))
	}
	if loaded > 0 {
		c.source = SourceEmbedded
	}
	return c
}

// LoadEmbedded ignores any runtime data; used by tests and `info`.
func LoadEmbedded() *Catalog {
	c := newEmpty()
	for _, fw := range Frameworks {
		data, err := embeddedCorpora.ReadFile("embedded/" + string(fw) + "-v4.ndjson")
		if err != nil {
			continue
		}
		c.readCorpus(fw, bytes.NewReader(data))
	}
	c.source = SourceEmbedded
	return c
}

func newEmpty() *Catalog {
	c := &Catalog{
		source:  SourceNone,
		records: make(map[Framework][]*ComponentRecord),
		byID:    make(map[Framework]map[string]*ComponentRecord),
	}
	for _, fw := range Frameworks {
		c.byID[fw] = make(map[string]*ComponentRecord)
	}
	return c
}

// readCorpus consumes one NDJSON stream. Malformed lines are skipped; line
// order is preserved and defines search tie-break order.
func (c *Catalog) readCorpus(fw Framework, r io.Reader) int {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)

	n := 0
	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var rec ComponentRecord
		if err := json.Unmarshal(raw, &rec); err != nil {
			logging.Debug("Skipping malformed catalog line", "framework", fw, "line", line, "error", err)
			continue
		}
		if rec.ID == "" {
			continue
		}
		c.records[fw] = append(c.records[fw], &rec)
		c.byID[fw][rec.ID] = &rec
		n++
	}
	if err := scanner.Err(); err != nil {
		logging.Warn("Catalog corpus read stopped early", "framework", fw, "error", err)
	}
	return n
}

func (c *Catalog) Source() DataSource { return c.source }

// HasFramework reports whether the framework parsed to at least one record.
func (c *Catalog) HasFramework(fw Framework) bool { return len(c.records[fw]) > 0 }

func (c *Catalog) FindByID(fw Framework, id string) (*ComponentRecord, bool) {
	rec, ok := c.byID[fw][id]
	return rec, ok
}

// All returns the records in insertion order. Callers must not mutate.
func (c *Catalog) All(fw Framework) []*ComponentRecord { return c.records[fw] }

func (c *Catalog) ComponentCount(fw Framework) int { return len(c.records[fw]) }

// TotalCount sums the record counts across all frameworks.
func (c *Catalog) TotalCount() int {
	total := 0
	for _, fw := range Frameworks {
		total += len(c.records[fw])
	}
	return total
}

// Search finds records by case-insensitive substring over name and taxonomy,
// in insertion order. An empty query matches everything; truncation is the
// caller's concern.
func (c *Catalog) Search(fw Framework, query string) []*ComponentRecord {
	queryLower := strings.ToLower(query)
	var out []*ComponentRecord
	for _, rec := range c.records[fw] {
		if rec.matches(queryLower) {
			out = append(out, rec)
		}
	}
	return out
}

// Categories counts records per top-level category for a framework, sorted
// by category name for stable output.
func (c *Catalog) Categories(fw Framework) []CategoryCount {
	counts := make(map[string]int)
	for _, rec := range c.records[fw] {
		counts[rec.Category]++
	}
	names := make([]string, 0, len(counts))
	for name := range counts {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]CategoryCount, 0, len(names))
	for _, name := range names {
		out = append(out, CategoryCount{Name: name, Count: counts[name]})
	}
	return out
}

type CategoryCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}
