package equation

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"golang.org/x/mod/semver"
)

var (
	// ErrNotFound is returned when an equation index is outside the catalog.
	ErrNotFound = errors.New("equation not found")

	// ErrInvalidCatalog is returned when a catalog document fails validation.
	ErrInvalidCatalog = errors.New("invalid equation catalog")
)

// supportedMajor is the catalog document major version this build reads.
const supportedMajor = "v1"

//go:embed catalog.json
var embeddedCatalog []byte

// Catalog is the ordered, immutable list of equations per kind. Order
// defines the unlock sequence; the index is the record's identity.
type Catalog struct {
	version string
	records map[Kind][]Record
}

type catalogDocument struct {
	Version   string   `json:"version"`
	Linear    []Record `json:"linear"`
	Quadratic []Record `json:"quadratic"`
}

var defaultCatalog = sync.OnceValues(func() (*Catalog, error) {
	return Parse(embeddedCatalog)
})

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	return defaultCatalog()
}

// LoadFile reads and validates a catalog document from disk.
func LoadFile(path string) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog: %w", err)
	}
	defer f.Close()
	return Load(f)
}

// Load reads and validates a catalog document.
func Load(r io.Reader) (*Catalog, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return Parse(raw)
}

// Parse validates raw catalog JSON and builds a Catalog.
func Parse(raw []byte) (*Catalog, error) {
	if err := validateDocument(raw); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	var doc catalogDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidCatalog, err)
	}

	if !semver.IsValid(doc.Version) || semver.Major(doc.Version) != supportedMajor {
		return nil, fmt.Errorf("%w: unsupported version %q (want %s.x)", ErrInvalidCatalog, doc.Version, supportedMajor)
	}

	c := &Catalog{
		version: doc.Version,
		records: map[Kind][]Record{
			KindLinear:    stamp(doc.Linear, KindLinear, 1),
			KindQuadratic: stamp(doc.Quadratic, KindQuadratic, 2),
		},
	}
	return c, nil
}

func stamp(records []Record, kind Kind, degree int) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		r.Kind = kind
		if r.Degree == 0 {
			r.Degree = degree
		}
		out[i] = r
	}
	return out
}

// Version returns the catalog document version.
func (c *Catalog) Version() string {
	return c.version
}

// Len returns the number of equations of the given kind.
func (c *Catalog) Len(kind Kind) int {
	return len(c.records[kind])
}

// Equations returns the records of the given kind in unlock order.
func (c *Catalog) Equations(kind Kind) []Record {
	src := c.records[kind]
	out := make([]Record, len(src))
	copy(out, src)
	return out
}

// Get returns the record at index for the given kind.
func (c *Catalog) Get(kind Kind, index int) (Record, error) {
	recs := c.records[kind]
	if index < 0 || index >= len(recs) {
		return Record{}, fmt.Errorf("%w: %s #%d", ErrNotFound, kind, index)
	}
	return recs[index], nil
}
