package handler

import (
	"testing"

	"github.com/wingbank/appconfig/internal/api/schema"
)

func TestListInputSanitize(t *testing.T) {
	in := listInput{Page: -1}
	in.sanitize()
	if in.Size != 50 || in.Page != 0 {
		t.Fatalf("sanitized = %+v, want size 50 page 0", in)
	}
	in = listInput{Size: 1000, Page: 3}
	in.sanitize()
	if in.Size != 200 || in.Page != 3 {
		t.Fatalf("sanitized = %+v, want size clamped to 200", in)
	}
}

func TestPagedEnvelopeUsesEffectiveSize(t *testing.T) {
	// a request omitting size must not report a truncated first page as last
	in := listInput{}
	in.sanitize()
	page := schema.NewPaged(make([]string, in.Size), in.Page, in.Size, 100)
	if page.Last {
		t.Fatal("first of two pages reported last")
	}
	if page.TotalPages != 2 || page.Size != 50 {
		t.Fatalf("envelope = %+v, want totalPages 2 size 50", page)
	}
}
