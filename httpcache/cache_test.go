package httpcache

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/etnz/stockchart"
)

func TestDiskCache(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.URL.Path == "/missing" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprintf(w, `{"path":%q,"calls":%d}`, r.URL.Path, calls)
	}))
	defer srv.Close()

	dir := t.TempDir()
	client := newClient(http.DefaultTransport, dir, stockchart.Daily)
	ctx := context.Background()

	type payload struct {
		Path  string `json:"path"`
		Calls int    `json:"calls"`
	}
	for i := range 3 {
		var got payload
		if err := GetJSON(ctx, client, srv.URL+"/eod/KS11.INDX", &got); err != nil {
			t.Fatalf("GetJSON() #%d error = %v", i, err)
		}
		if got.Calls != 1 || got.Path != "/eod/KS11.INDX" {
			t.Errorf("GetJSON() #%d = %+v, want the first response", i, got)
		}
	}
	if calls != 1 {
		t.Errorf("server was called %d times, want 1", calls)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("cache has %d entries, want 1", len(entries))
	}

	// errors are not cached
	for range 2 {
		var got payload
		err := GetJSON(ctx, client, srv.URL+"/missing", &got)
		var status *StatusError
		if !errors.As(err, &status) || status.StatusCode != http.StatusNotFound {
			t.Errorf("GetJSON(/missing) error = %v, want a 404 StatusError", err)
		}
	}
	if calls != 3 {
		t.Errorf("server was called %d times, want 3", calls)
	}
}

func TestDiskCache_Expires(t *testing.T) {
	calls := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		fmt.Fprint(w, `{}`)
	}))
	defer srv.Close()

	day := stockchart.NewDate(2018, 12, 31)
	cache := &diskCache{base: http.DefaultTransport, period: stockchart.Daily, dir: t.TempDir(), today: func() stockchart.Date { return day }}
	client := &http.Client{Transport: cache}

	var v struct{}
	for _, next := range []int{0, 0, 1, 0} {
		day = day.Add(next)
		if err := GetJSON(context.Background(), client, srv.URL, &v); err != nil {
			t.Fatal(err)
		}
	}
	if calls != 2 {
		t.Errorf("server was called %d times, want 2 (one per day)", calls)
	}
}
