package httputil

import (
	"errors"
	"net/http/httptest"
	"testing"
)

func TestParsePageDefaults(t *testing.T) {
	r := httptest.NewRequest("GET", "/videos", nil)

	p, err := ParsePage(r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Number != 1 || p.Limit != 10 {
		t.Errorf("got page=%d limit=%d, want 1/10", p.Number, p.Limit)
	}
	if p.Offset() != 0 {
		t.Errorf("got offset %d, want 0", p.Offset())
	}
}

func TestParsePageOffsets(t *testing.T) {
	// 25 items at limit 10 span pages 1..3; page 4 starts past the end.
	cases := []struct {
		page       string
		wantOffset int
	}{
		{"1", 0},
		{"2", 10},
		{"3", 20},
		{"4", 30},
	}

	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/videos?page="+tc.page+"&limit=10", nil)
		p, err := ParsePage(r)
		if err != nil {
			t.Fatalf("page %s: %v", tc.page, err)
		}
		if p.Offset() != tc.wantOffset {
			t.Errorf("page %s: got offset %d, want %d", tc.page, p.Offset(), tc.wantOffset)
		}
	}
}

func TestParsePageRejectsBadValues(t *testing.T) {
	cases := []struct {
		query string
		want  error
	}{
		{"page=0", ErrInvalidPage},
		{"page=-1", ErrInvalidPage},
		{"page=abc", ErrInvalidPage},
		{"limit=0", ErrInvalidLimit},
		{"limit=-5", ErrInvalidLimit},
		{"limit=ten", ErrInvalidLimit},
	}

	for _, tc := range cases {
		r := httptest.NewRequest("GET", "/videos?"+tc.query, nil)
		if _, err := ParsePage(r); !errors.Is(err, tc.want) {
			t.Errorf("%s: got %v, want %v", tc.query, err, tc.want)
		}
	}
}

func TestParsePageCapsLimit(t *testing.T) {
	r := httptest.NewRequest("GET", "/videos?limit=5000", nil)

	p, err := ParsePage(r)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if p.Limit != MaxLimit {
		t.Errorf("got limit %d, want %d", p.Limit, MaxLimit)
	}
}
