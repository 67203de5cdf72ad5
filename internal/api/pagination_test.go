package api

import (
	"net/http/httptest"
	"testing"
)

func TestPageParams(t *testing.T) {
	cases := []struct {
		url        string
		wantLimit  int
		wantOffset int
	}{
		{"/api/patients", 20, 0},
		{"/api/patients?limit=5&offset=10", 5, 10},
		{"/api/patients?limit=500", 100, 0},
		{"/api/patients?limit=-1&offset=-3", 20, 0},
		{"/api/patients?limit=abc&offset=xyz", 20, 0},
	}
	for _, c := range cases {
		r := httptest.NewRequest("GET", c.url, nil)
		limit, offset := pageParams(r)
		if limit != c.wantLimit || offset != c.wantOffset {
			t.Errorf("%s: limit=%d offset=%d, esperava %d/%d", c.url, limit, offset, c.wantLimit, c.wantOffset)
		}
	}
}
