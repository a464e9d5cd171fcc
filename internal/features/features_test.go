package features

import (
	"net/url"
	"strings"
	"testing"
)

var testAllowed = map[string]string{
	"name":  "name",
	"email": "email",
	"sold":  "sold",
}

func TestFilterExcludesReservedKeys(t *testing.T) {
	params := url.Values{
		"page":    {"2"},
		"sort":    {"name"},
		"limit":   {"10"},
		"fields":  {"name,email"},
		"keyword": {"shoes"},
		"name":    {"ali"},
	}

	q := New("users", "id", "name").Filter(params, testAllowed)
	sql, args := q.SelectSQL()

	for _, reserved := range []string{"page", "sort", "limit", "fields", "keyword"} {
		if strings.Contains(sql, reserved+" ") {
			t.Errorf("reserved key %q leaked into SQL: %s", reserved, sql)
		}
	}
	if !strings.Contains(sql, "name = ?") {
		t.Errorf("expected name predicate, got: %s", sql)
	}
	if len(args) != 1 || args[0] != "ali" {
		t.Errorf("expected args [ali], got %v", args)
	}
}

func TestFilterOperatorSuffixes(t *testing.T) {
	cases := []struct {
		key  string
		want string
	}{
		{"sold[gte]", "sold >= ?"},
		{"sold[gt]", "sold > ?"},
		{"sold[lte]", "sold <= ?"},
		{"sold[lt]", "sold < ?"},
	}

	for _, tc := range cases {
		params := url.Values{tc.key: {"5"}}
		sql, args := New("products", "id").Filter(params, testAllowed).SelectSQL()
		if !strings.Contains(sql, tc.want) {
			t.Errorf("%s: expected %q in %q", tc.key, tc.want, sql)
		}
		if len(args) != 1 || args[0] != "5" {
			t.Errorf("%s: expected args [5], got %v", tc.key, args)
		}
	}
}

func TestFilterIgnoresUnknownFields(t *testing.T) {
	params := url.Values{
		"password_hash":    {"x"},
		"1=1; DROP TABLE":  {"x"},
		"sold[unknown-op]": {"x"},
	}

	sql, args := New("users", "id").Filter(params, testAllowed).SelectSQL()
	if strings.Contains(sql, "WHERE") {
		t.Errorf("unknown fields must not produce predicates, got: %s", sql)
	}
	if len(args) != 0 {
		t.Errorf("expected no args, got %v", args)
	}
}

func TestSortSpec(t *testing.T) {
	allowed := map[string]string{"name": "name", "createdAt": "created_at"}

	sql, _ := New("users", "id").Sort("-createdAt,name", allowed).SelectSQL()
	if !strings.Contains(sql, "ORDER BY created_at DESC, name ASC") {
		t.Errorf("unexpected sort spec: %s", sql)
	}

	// Default must be deterministic.
	sql, _ = New("users", "id").Sort("", allowed).SelectSQL()
	if !strings.Contains(sql, "ORDER BY created_at DESC, id DESC") {
		t.Errorf("unexpected default sort: %s", sql)
	}

	// Unknown sort fields degrade to the default, never to SQL text.
	sql, _ = New("users", "id").Sort("password_hash; --", allowed).SelectSQL()
	if !strings.Contains(sql, "ORDER BY created_at DESC, id DESC") {
		t.Errorf("unknown sort field should fall back to default: %s", sql)
	}
}

func TestSearchBuildsCaseInsensitiveOrPredicate(t *testing.T) {
	sql, args := New("users", "id").Search("Ali", "name", "email").SelectSQL()

	if !strings.Contains(sql, "(LOWER(name) LIKE ? OR LOWER(email) LIKE ?)") {
		t.Errorf("unexpected search predicate: %s", sql)
	}
	if len(args) != 2 || args[0] != "%ali%" || args[1] != "%ali%" {
		t.Errorf("unexpected search args: %v", args)
	}

	// Empty keyword is a no-op.
	sql, args = New("users", "id").Search("", "name").SelectSQL()
	if strings.Contains(sql, "LIKE") || len(args) != 0 {
		t.Errorf("empty keyword must not add a predicate: %s %v", sql, args)
	}
}

func TestPaginateMetadata(t *testing.T) {
	q := New("users", "id").Paginate("2", "5", 12)
	p := q.Pagination()

	if p.CurrentPage != 2 || p.Limit != 5 || p.NumberOfPages != 3 {
		t.Fatalf("unexpected pagination: %+v", p)
	}
	if p.Next == nil || *p.Next != 3 {
		t.Errorf("expected next page 3, got %v", p.Next)
	}
	if p.Prev == nil || *p.Prev != 1 {
		t.Errorf("expected prev page 1, got %v", p.Prev)
	}

	_, args := q.SelectSQL()
	if len(args) != 2 || args[0] != 5 || args[1] != 5 {
		t.Errorf("expected LIMIT 5 OFFSET 5, got args %v", args)
	}
}

func TestPaginateEdges(t *testing.T) {
	// First page: no prev.
	p := New("users", "id").Paginate("1", "5", 12).Pagination()
	if p.Prev != nil {
		t.Errorf("page 1 must have no prev, got %v", *p.Prev)
	}
	if p.Next == nil || *p.Next != 2 {
		t.Errorf("expected next 2, got %v", p.Next)
	}

	// Last page: no next.
	p = New("users", "id").Paginate("3", "5", 12).Pagination()
	if p.Next != nil {
		t.Errorf("last page must have no next, got %v", *p.Next)
	}

	// Exact division.
	p = New("users", "id").Paginate("1", "4", 12).Pagination()
	if p.NumberOfPages != 3 {
		t.Errorf("expected 3 pages for 12/4, got %d", p.NumberOfPages)
	}
}

func TestPaginateDegradesToDefaults(t *testing.T) {
	for _, bad := range []string{"", "abc", "0", "-3", "1.5"} {
		p := New("users", "id").Paginate(bad, bad, 100).Pagination()
		if p.CurrentPage != 1 {
			t.Errorf("page %q: expected default page 1, got %d", bad, p.CurrentPage)
		}
		if p.Limit != DefaultLimit {
			t.Errorf("limit %q: expected default %d, got %d", bad, DefaultLimit, p.Limit)
		}
	}
}

func TestLimitFieldsMask(t *testing.T) {
	allowed := map[string]bool{"id": true, "name": true, "email": true}
	record := map[string]any{"id": int64(1), "name": "ali", "email": "a@b.c", "role": "user"}

	q := New("users", "id").LimitFields("name,email,password", allowed)
	projected := q.ApplyFieldMask(record)

	if len(projected) != 2 || projected["name"] != "ali" || projected["email"] != "a@b.c" {
		t.Errorf("unexpected projection: %v", projected)
	}

	// No mask means the record passes through whole.
	q = New("users", "id").LimitFields("", allowed)
	if got := q.ApplyFieldMask(record); len(got) != len(record) {
		t.Errorf("empty field list must return all fields, got %v", got)
	}
}

func TestModifiersDoNotMutateReceiver(t *testing.T) {
	base := New("users", "id", "name").Where("role <> ?", "admin")
	baseSQL, baseArgs := base.SelectSQL()

	params := url.Values{"name": {"x"}, "keyword": {"y"}}
	_ = base.Filter(params, testAllowed).
		Sort("-name", map[string]string{"name": "name"}).
		Search("y", "name").
		Paginate("2", "5", 40)

	sqlAfter, argsAfter := base.SelectSQL()
	if sqlAfter != baseSQL {
		t.Errorf("base descriptor mutated: %q -> %q", baseSQL, sqlAfter)
	}
	if len(argsAfter) != len(baseArgs) {
		t.Errorf("base args mutated: %v -> %v", baseArgs, argsAfter)
	}
}

func TestCountSQLHasNoPaging(t *testing.T) {
	q := New("users", "id").Where("role <> ?", "admin").Paginate("2", "5", 12)
	sql, args := q.CountSQL()

	if sql != "SELECT COUNT(*) FROM users WHERE role <> ?" {
		t.Errorf("unexpected count SQL: %s", sql)
	}
	if len(args) != 1 {
		t.Errorf("unexpected count args: %v", args)
	}
}
