// Package method holds the catalog of study methods a session can be run
// with.
package method

import (
	"cmp"
	"slices"
	"sort"
	"time"

	"github.com/maruel/natural"
)

// Method is an immutable catalog entry.
type Method struct {
	Key         string        `json:"key"`
	Name        string        `json:"name"`
	Description string        `json:"description"`
	Duration    time.Duration `json:"duration"`
}

// DurationSeconds returns the whole-second length of the method.
func (m Method) DurationSeconds() int {
	return int(m.Duration / time.Second)
}

// DurationMinutes returns the whole-minute length of the method.
func (m Method) DurationMinutes() int {
	return int(m.Duration / time.Minute)
}

// Catalog is a read-only set of methods keyed by Method.Key.
type Catalog struct {
	methods map[string]Method
}

// NewCatalog validates the methods and builds a catalog from them.
func NewCatalog(methods ...Method) (*Catalog, error) {
	c := &Catalog{
		methods: make(map[string]Method, len(methods)),
	}

	for _, m := range methods {
		if m.Key == "" {
			return nil, errEmptyKey
		}

		if m.Duration < time.Second {
			return nil, errInvalidDuration.Fmt(m.Key, m.Duration)
		}

		if _, ok := c.methods[m.Key]; ok {
			return nil, errDuplicateKey.Fmt(m.Key)
		}

		if m.Name == "" {
			m.Name = m.Key
		}

		c.methods[m.Key] = m
	}

	return c, nil
}

// Defaults returns the built-in study methods.
func Defaults() []Method {
	return []Method{
		{
			Key:         "quick",
			Name:        "Quick Study",
			Duration:    15 * time.Minute,
			Description: "15 minutes for quick review or short tasks",
		},
		{
			Key:         "pomodoro",
			Name:        "Pomodoro",
			Duration:    25 * time.Minute,
			Description: "25 minutes of focused work followed by a 5-minute break",
		},
		{
			Key:         "focus",
			Name:        "Focus",
			Duration:    45 * time.Minute,
			Description: "45 minutes of deep focus work",
		},
		{
			Key:         "deepwork",
			Name:        "Deep Work",
			Duration:    90 * time.Minute,
			Description: "90 minutes of intensive deep work session",
		},
		{
			Key:         "marathon",
			Name:        "Marathon",
			Duration:    120 * time.Minute,
			Description: "2 hours for extended study sessions",
		},
	}
}

// Default returns a catalog of the built-in methods.
func Default() *Catalog {
	c, _ := NewCatalog(Defaults()...)
	return c
}

// Get looks up a method by key.
func (c *Catalog) Get(key string) (Method, error) {
	m, ok := c.methods[key]
	if !ok {
		return Method{}, errUnknownMethod.Fmt(key)
	}

	return m, nil
}

// Has reports whether key is in the catalog.
func (c *Catalog) Has(key string) bool {
	_, ok := c.methods[key]
	return ok
}

// Len returns the number of methods.
func (c *Catalog) Len() int {
	return len(c.methods)
}

// Keys returns the method keys in natural order.
func (c *Catalog) Keys() []string {
	keys := make([]string, 0, len(c.methods))
	for k := range c.methods {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		return natural.Less(keys[i], keys[j])
	})

	return keys
}

// ByDuration returns the methods ordered from shortest to longest.
func (c *Catalog) ByDuration() []Method {
	list := make([]Method, 0, len(c.methods))
	for _, k := range c.Keys() {
		list = append(list, c.methods[k])
	}

	slices.SortStableFunc(list, func(a, b Method) int {
		return cmp.Compare(a.Duration, b.Duration)
	})

	return list
}

// Subset returns the named methods ordered from shortest to longest.
func (c *Catalog) Subset(keys ...string) ([]Method, error) {
	list := make([]Method, 0, len(keys))

	for _, k := range keys {
		m, err := c.Get(k)
		if err != nil {
			return nil, err
		}

		list = append(list, m)
	}

	slices.SortStableFunc(list, func(a, b Method) int {
		return cmp.Compare(a.Duration, b.Duration)
	})

	return list, nil
}
