package growi

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestSearchPages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/_api/search" {
			t.Errorf("path = %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "deploy" {
			t.Errorf("q = %q", got)
		}
		if got := r.URL.Query().Get("path"); got != "/" {
			t.Errorf("path = %q, want default /", got)
		}
		_, _ = w.Write([]byte(`{
			"meta": {"total": 12},
			"data": [
				{"_id": "p1", "path": "/ops/deploy", "_score": 4.2},
				{"_source": {"_id": "p2", "path": "/dev/deploy"}, "_score": 3.1}
			]
		}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, APIVersionV3)
	result, err := client.SearchPages(t.Context(), SearchPagesArgs{Query: "deploy"})
	if err != nil {
		t.Fatalf("SearchPages: %v", err)
	}
	if len(result.Hits) != 2 {
		t.Fatalf("hits = %d, want 2", len(result.Hits))
	}
	// Hits keep the backend's relevance order and both envelope shapes
	// resolve to a page.
	if result.Hits[0].Page.Path != "/ops/deploy" {
		t.Errorf("first hit = %q", result.Hits[0].Page.Path)
	}
	if result.Hits[1].Page.ID != "p2" {
		t.Errorf("second hit id = %q, _source shape not handled", result.Hits[1].Page.ID)
	}
	if result.Hits[0].Score != 4.2 {
		t.Errorf("score = %v", result.Hits[0].Score)
	}
	if result.TotalHits != 12 || !result.HasMore {
		t.Errorf("total = %d, hasMore = %v", result.TotalHits, result.HasMore)
	}
}

func TestSearchPages_EmptyQuery(t *testing.T) {
	client, _ := NewClient(testConfig("https://wiki.example.com", APIVersionV3), testLogger())
	_, err := client.SearchPages(t.Context(), SearchPagesArgs{Query: "   "})
	if !IsKind(err, KindInvalidArgument) {
		t.Errorf("kind = %q, want invalid_argument", KindOf(err))
	}
}

func TestSearchPages_SubtreeFilter(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("path"); got != "/ops" {
			t.Errorf("path = %q, want /ops", got)
		}
		_, _ = w.Write([]byte(`{"meta": {"total": 0}, "data": []}`))
	}))
	defer server.Close()

	client := newTestClient(t, server, APIVersionV3)
	result, err := client.SearchPages(t.Context(), SearchPagesArgs{Query: "x", Path: "/ops"})
	if err != nil {
		t.Fatalf("SearchPages: %v", err)
	}
	if len(result.Hits) != 0 || result.HasMore {
		t.Errorf("result = %+v, want empty window", result)
	}
}
