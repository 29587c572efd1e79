package sdk

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// graphQLFixture replays canned responses keyed by a substring of the
// incoming query text.
func graphQLFixture(t *testing.T, responses map[string]string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Query string `json:"query"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		for marker, resp := range responses {
			if strings.Contains(body.Query, marker) {
				_, _ = w.Write([]byte(resp))
				return
			}
		}
		_, _ = w.Write([]byte(`{"data": {"roots": []}}`))
	}))
}

func TestNew_RequiresEndpoint(t *testing.T) {
	if _, err := New(); err == nil {
		t.Fatal("expected error without endpoint")
	}
}

func TestSearchProfiles_EndToEnd(t *testing.T) {
	srv := graphQLFixture(t, map[string]string{
		"where": `{"data": {"roots": [{"id": "1", "slug": "the-grid"}]}}`,
	})
	defer srv.Close()

	client, err := New(WithEndpoint(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	set := NewSelectionSet(Select("profileSector", "Data"))
	refs := client.SearchProfiles(context.Background(), set)

	if len(refs) != 1 || refs[0].Slug != "the-grid" {
		t.Fatalf("refs = %v", refs)
	}
}

func TestSearchProfiles_EmptySetListsAll(t *testing.T) {
	srv := graphQLFixture(t, map[string]string{
		"roots": `{"data": {"roots": [{"id": "1", "slug": "a"}, {"id": "2", "slug": "b"}]}}`,
	})
	defer srv.Close()

	client, err := New(WithEndpoint(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	refs := client.SearchProfiles(context.Background(), nil)
	if len(refs) != 2 {
		t.Fatalf("refs = %v", refs)
	}
}

func TestProfiles_Card(t *testing.T) {
	srv := graphQLFixture(t, map[string]string{
		"profileInfos": `{"data": {"profileInfos": [{"name": "The Grid"}]}}`,
	})
	defer srv.Close()

	client, err := New(WithEndpoint(srv.URL))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer client.Close()

	card, err := client.Profiles().Card(context.Background(), 0, "1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(card.Text, "The Grid") {
		t.Errorf("card = %q", card.Text)
	}
}
