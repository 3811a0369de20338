package stubapi

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// record is a stored item. Fields are kept as decoded JSON.
type record map[string]any

func (r record) clone() record {
	out := make(record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

func (r record) str(key string) string {
	if v, ok := r[key]; ok && v != nil {
		return fmt.Sprint(v)
	}
	return ""
}

// collection is an insertion-ordered set of records. Callers hold Server.mu.
type collection struct {
	order []string
	items map[string]record
}

func newCollection() *collection {
	return &collection{items: make(map[string]record)}
}

func (c *collection) len() int { return len(c.order) }

func (c *collection) all() []record {
	out := make([]record, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.items[id])
	}
	return out
}

// list returns records whose fields equal every filter value, in insertion
// order. "limit" caps the result; "page" is 1-based.
func (c *collection) list(q url.Values) []record {
	limit, _ := strconv.Atoi(q.Get("limit"))
	page, _ := strconv.Atoi(q.Get("page"))
	if page < 1 {
		page = 1
	}

	out := []record{}
	for _, rec := range c.all() {
		if matches(rec, q) {
			out = append(out, rec.clone())
		}
	}
	if limit > 0 {
		start := (page - 1) * limit
		if start >= len(out) {
			return []record{}
		}
		out = out[start:min(start+limit, len(out))]
	}
	return out
}

func matches(rec record, q url.Values) bool {
	for key, vals := range q {
		switch key {
		case "limit", "page":
			continue
		case "search":
			needle := strings.ToLower(vals[0])
			if !strings.Contains(strings.ToLower(rec.str("title")+" "+rec.str("name")), needle) {
				return false
			}
		default:
			if rec.str(key) != vals[0] {
				return false
			}
		}
	}
	return true
}

func (c *collection) get(id string) (record, bool) {
	rec, ok := c.items[id]
	return rec, ok
}

func (c *collection) find(key, value string) (record, bool) {
	for _, id := range c.order {
		if c.items[id].str(key) == value {
			return c.items[id], true
		}
	}
	return nil, false
}

func (c *collection) insert(rec record, now string) record {
	id := uuid.NewString()
	rec["id"] = id
	if _, ok := rec["createdAt"]; !ok {
		rec["createdAt"] = now
	}
	c.order = append(c.order, id)
	c.items[id] = rec
	return rec
}

// replace overwrites the record's fields, keeping its id and createdAt.
func (c *collection) replace(id string, rec record, now string) (record, bool) {
	old, ok := c.items[id]
	if !ok {
		return nil, false
	}
	rec["id"] = id
	if created, ok := old["createdAt"]; ok {
		rec["createdAt"] = created
	}
	rec["updatedAt"] = now
	c.items[id] = rec
	return rec, true
}

func (c *collection) delete(id string) bool {
	if _, ok := c.items[id]; !ok {
		return false
	}
	delete(c.items, id)
	for i, v := range c.order {
		if v == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return true
}

// slugify lowercases s and joins its words with dashes.
func slugify(s string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			dash = false
		case b.Len() > 0 && !dash:
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
