// Package repository implements database access for the app configuration
// entities. Localized entities are stored as a parent row plus one child row
// per language; flat derived keys never reach SQL.
package repository

import (
	"fmt"
	"strings"

	"github.com/wingbank/appconfig/internal/util"
)

// Filter narrows list queries. Page is zero-based. Status is an exact match
// and only honored by entities that carry a status column.
type Filter struct {
	Search string
	Status string
	Page   int
	Size   int
}

func (f Filter) limits() (limit, offset int) {
	size := util.SanitizeLimit(f.Size)
	page := f.Page
	if page < 0 {
		page = 0
	}
	return size, page * size
}

// bind rewrites ? placeholders to $n for postgres. MySQL keeps ? as-is.
func bind(driver, q string) string {
	if driver != "postgres" {
		return q
	}
	var b strings.Builder
	n := 0
	for _, r := range q {
		if r == '?' {
			n++
			fmt.Fprintf(&b, "$%d", n)
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

func placeholders(n int) string {
	if n <= 0 {
		return ""
	}
	return strings.TrimRight(strings.Repeat("?,", n), ",")
}
