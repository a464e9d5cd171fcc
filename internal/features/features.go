package features

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// DefaultLimit is the page size used whenever the client does not ask for
// one (or asks for something that is not a positive integer).
const DefaultLimit = 50

// reserved query keys drive the chain itself and must NEVER leak into a
// WHERE clause.
var reserved = map[string]bool{
	"page":    true,
	"sort":    true,
	"limit":   true,
	"fields":  true,
	"keyword": true,
}

// comparison operator suffixes accepted in filter keys, e.g. "price[gte]=10".
var operators = map[string]string{
	"gte": ">=",
	"gt":  ">",
	"lte": "<=",
	"lt":  "<",
}

// Pagination is the metadata block returned next to every list response.
// Next/Prev are pointers so they disappear from the JSON when there is no
// next or previous page.
type Pagination struct {
	CurrentPage   int  `json:"currentPage"`
	Limit         int  `json:"limit"`
	NumberOfPages int  `json:"numberOfPages"`
	Next          *int `json:"next,omitempty"`
	Prev          *int `json:"prev,omitempty"`
}

// Query is an immutable descriptor of a list query: table, WHERE conditions,
// ordering, response field mask and paging window. Every modifier returns a
// NEW Query value; nothing here ever talks to the database. Rendering the
// final SQL (SelectSQL/CountSQL) and executing it are the caller's job,
// as separate explicit steps.
type Query struct {
	table      string
	columns    []string
	conds      []string
	args       []any
	orderBy    string
	fieldMask  map[string]bool
	limit      int
	offset     int
	pagination Pagination
}

// New starts a descriptor over the given table, selecting the given columns.
func New(table string, columns ...string) Query {
	return Query{table: table, columns: columns}
}

// clone gives modifiers a fresh value whose slices are safe to append to.
func (q Query) clone() Query {
	c := q
	c.conds = append([]string(nil), q.conds...)
	c.args = append([]any(nil), q.args...)
	return c
}

// Where adds a fixed base condition (e.g. excluding admin accounts from a
// user listing). Not driven by client input.
func (q Query) Where(cond string, args ...any) Query {
	c := q.clone()
	c.conds = append(c.conds, cond)
	c.args = append(c.args, args...)
	return c
}

// Filter translates the client's query parameters into WHERE predicates.
// Reserved keys are skipped, and only parameters named in 'allowed' (a map
// of parameter name -> column name) are honoured; everything else is
// silently ignored. A key may carry a comparison suffix: "sold[gte]=5"
// becomes "sold >= ?". Raw values only ever enter the query as bind
// arguments, never as SQL text.
func (q Query) Filter(params url.Values, allowed map[string]string) Query {
	c := q.clone()
	for key, values := range params {
		if reserved[key] || len(values) == 0 {
			continue
		}

		field, op := key, "="
		if i := strings.IndexByte(key, '['); i > 0 && strings.HasSuffix(key, "]") {
			if sqlOp, ok := operators[key[i+1:len(key)-1]]; ok {
				field, op = key[:i], sqlOp
			} else {
				continue
			}
		}

		column, ok := allowed[field]
		if !ok {
			continue
		}
		c.conds = append(c.conds, fmt.Sprintf("%s %s ?", column, op))
		c.args = append(c.args, values[0])
	}
	return c
}

// Sort parses a comma separated field list ("-" prefix = descending) into
// an ORDER BY spec. Unknown fields are dropped. When nothing usable is
// supplied the order falls back to newest-first with the id as a tiebreak,
// so the ordering is always deterministic.
func (q Query) Sort(param string, allowed map[string]string) Query {
	c := q.clone()

	var parts []string
	for _, field := range strings.Split(param, ",") {
		field = strings.TrimSpace(field)
		direction := "ASC"
		if strings.HasPrefix(field, "-") {
			field = field[1:]
			direction = "DESC"
		}
		if column, ok := allowed[field]; ok {
			parts = append(parts, column+" "+direction)
		}
	}

	if len(parts) == 0 {
		c.orderBy = "created_at DESC, id DESC"
	} else {
		c.orderBy = strings.Join(parts, ", ")
	}
	return c
}

// LimitFields records which response fields the client asked for
// ("fields=name,email"). An empty or unusable list means "all fields".
// The mask is applied to outbound maps with ApplyFieldMask; it does not
// change the SQL, so the same scan path serves every projection.
func (q Query) LimitFields(param string, allowed map[string]bool) Query {
	c := q.clone()

	mask := map[string]bool{}
	for _, field := range strings.Split(param, ",") {
		field = strings.TrimSpace(field)
		if allowed[field] {
			mask[field] = true
		}
	}
	if len(mask) > 0 {
		c.fieldMask = mask
	}
	return c
}

// Search builds one OR-combined predicate matching the keyword as a
// case-insensitive substring across the given columns.
func (q Query) Search(keyword string, columns ...string) Query {
	if keyword == "" || len(columns) == 0 {
		return q
	}
	c := q.clone()

	needle := "%" + strings.ToLower(keyword) + "%"
	var parts []string
	for _, column := range columns {
		parts = append(parts, fmt.Sprintf("LOWER(%s) LIKE ?", column))
		c.args = append(c.args, needle)
	}
	c.conds = append(c.conds, "("+strings.Join(parts, " OR ")+")")
	return c
}

// Paginate fixes the paging window and computes the pagination metadata for
// the given total row count. Page and limit default to 1 and DefaultLimit;
// anything non-numeric or non-positive degrades to the default instead of
// failing.
func (q Query) Paginate(pageParam, limitParam string, total int) Query {
	c := q.clone()

	page := positiveIntOr(pageParam, 1)
	limit := positiveIntOr(limitParam, DefaultLimit)

	numberOfPages := (total + limit - 1) / limit

	c.limit = limit
	c.offset = (page - 1) * limit
	c.pagination = Pagination{
		CurrentPage:   page,
		Limit:         limit,
		NumberOfPages: numberOfPages,
	}
	if page < numberOfPages {
		next := page + 1
		c.pagination.Next = &next
	}
	if page > 1 {
		prev := page - 1
		c.pagination.Prev = &prev
	}
	return c
}

// Pagination returns the metadata computed by Paginate.
func (q Query) Pagination() Pagination {
	return q.pagination
}

// SelectSQL renders the full SELECT statement plus its bind arguments.
func (q Query) SelectSQL() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT ")
	b.WriteString(strings.Join(q.columns, ", "))
	b.WriteString(" FROM ")
	b.WriteString(q.table)

	args := append([]any(nil), q.args...)
	if len(q.conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(q.conds, " AND "))
	}
	if q.orderBy != "" {
		b.WriteString(" ORDER BY ")
		b.WriteString(q.orderBy)
	}
	if q.limit > 0 {
		b.WriteString(" LIMIT ? OFFSET ?")
		args = append(args, q.limit, q.offset)
	}
	return b.String(), args
}

// CountSQL renders the matching COUNT(*) statement (no ordering or paging).
func (q Query) CountSQL() (string, []any) {
	var b strings.Builder
	b.WriteString("SELECT COUNT(*) FROM ")
	b.WriteString(q.table)
	if len(q.conds) > 0 {
		b.WriteString(" WHERE ")
		b.WriteString(strings.Join(q.conds, " AND "))
	}
	return b.String(), append([]any(nil), q.args...)
}

// ApplyFieldMask projects an outbound record down to the fields recorded by
// LimitFields. With no mask the record passes through untouched.
func (q Query) ApplyFieldMask(record map[string]any) map[string]any {
	if len(q.fieldMask) == 0 {
		return record
	}
	projected := map[string]any{}
	for field := range q.fieldMask {
		if value, ok := record[field]; ok {
			projected[field] = value
		}
	}
	return projected
}

func positiveIntOr(s string, fallback int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return fallback
	}
	return n
}
