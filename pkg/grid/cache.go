package grid

import (
	"fmt"
	"reflect"

	"github.com/go-logr/logr"
)

// Identifier lets a predicate supply its own cache identity.
// Predicates without it are identified by reference.
type Identifier interface {
	Identity() string
}

// Cache memoizes the last built Grid and RangeGrid by input identity.
// Records are identified by slice identity, not content: rebuild with a new
// slice to force recomputation. Build errors are not cached.
type Cache struct {
	log logr.Logger

	gridKey   string
	grid      *Grid
	rangeKey  string
	rangeGrid *RangeGrid

	hits   int
	misses int
}

// NewCache returns an empty cache logging misses at V(2).
func NewCache(log logr.Logger) *Cache {
	return &Cache{log: log}
}

// Grid returns the cached grid for in, building it on a miss.
func (c *Cache) Grid(in Input) (*Grid, error) {
	key := fingerprint(in, nil, nil)
	if c.grid != nil && c.gridKey == key {
		c.hits++
		return c.grid, nil
	}
	c.misses++
	c.log.V(2).Info("grid cache miss", "rows", in.Rows, "columns", in.Columns)
	g, err := Build(in)
	if err != nil {
		return nil, err
	}
	c.gridKey, c.grid = key, g
	return g, nil
}

// RangeGrid returns the cached range grid for in, building it on a miss.
func (c *Cache) RangeGrid(in RangeInput) (*RangeGrid, error) {
	key := fingerprint(in.Input, in.Start, in.End)
	if c.rangeGrid != nil && c.rangeKey == key {
		c.hits++
		return c.rangeGrid, nil
	}
	c.misses++
	c.log.V(2).Info("range grid cache miss", "rows", in.Rows, "columns", in.Columns, "start", in.Start, "end", in.End)
	g, err := BuildRange(in)
	if err != nil {
		return nil, err
	}
	c.rangeKey, c.rangeGrid = key, g
	return g, nil
}

// Hits returns the number of lookups served from the cache.
func (c *Cache) Hits() int { return c.hits }

// Misses returns the number of lookups that rebuilt.
func (c *Cache) Misses() int { return c.misses }

// Reset drops the cached entries.
func (c *Cache) Reset() {
	c.gridKey, c.grid = "", nil
	c.rangeKey, c.rangeGrid = "", nil
}

func fingerprint(in Input, start, end any) string {
	records := "none"
	if in.Records != nil {
		records = fmt.Sprintf("%x:%d", reflect.ValueOf(in.Records).Pointer(), len(in.Records))
	}
	return fmt.Sprintf("%d|%d|%s|%s|%T:%#v|%T:%#v",
		in.Rows, in.Columns, records, predicateIdentity(in.Disable), start, start, end, end)
}

func predicateIdentity(p DisablePredicate) string {
	if p == nil {
		return "nil"
	}
	if id, ok := p.(Identifier); ok {
		return fmt.Sprintf("%T:%s", p, id.Identity())
	}
	rv := reflect.ValueOf(p)
	switch rv.Kind() {
	case reflect.Func, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Chan, reflect.UnsafePointer:
		return fmt.Sprintf("%T@%x", p, rv.Pointer())
	default:
		return fmt.Sprintf("%T:%#v", p, p)
	}
}
