package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/go-devconnector/internal/domain/entity"
)

type recorded struct {
	method string
	path   string
	body   string
}

func fakeES(t *testing.T, handler func(w http.ResponseWriter, r *http.Request)) (*elasticsearch.Client, *[]recorded) {
	t.Helper()
	var mu sync.Mutex
	calls := []recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		calls = append(calls, recorded{method: r.Method, path: r.URL.Path, body: string(b)})
		mu.Unlock()
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return es, &calls
}

func TestIndexSendsProfileDocument(t *testing.T) {
	es, calls := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"result":"created"}`))
	})
	idx := NewProfileIndex(es, "profiles")

	p := &entity.Profile{UserID: "u1", Status: "Developer", Skills: []string{"go"}, UpdatedAt: time.Now()}
	require.NoError(t, idx.Index(context.Background(), p, &entity.User{Name: "Ana"}))

	require.Len(t, *calls, 1)
	call := (*calls)[0]
	assert.Equal(t, http.MethodPut, call.method)
	assert.Equal(t, "/profiles/_doc/u1", call.path)

	var doc map[string]any
	require.NoError(t, json.Unmarshal([]byte(call.body), &doc))
	assert.Equal(t, "Ana", doc["name"])
	assert.Equal(t, []any{"go"}, doc["skills"])
}

func TestDeleteIgnoresMissingDocument(t *testing.T) {
	es, _ := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"result":"not_found"}`))
	})
	idx := NewProfileIndex(es, "profiles")
	assert.NoError(t, idx.Delete(context.Background(), "u1"))
}

func TestSearchReturnsUserIDs(t *testing.T) {
	es, calls := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits":{"hits":[{"_id":"u2"},{"_id":"u1"}]}}`))
	})
	idx := NewProfileIndex(es, "profiles")

	ids, err := idx.Search(context.Background(), "golang", 0)
	require.NoError(t, err)
	assert.Equal(t, []string{"u2", "u1"}, ids)

	require.Len(t, *calls, 1)
	assert.True(t, strings.HasSuffix((*calls)[0].path, "/profiles/_search"))
	assert.Contains(t, (*calls)[0].body, `"size":10`)
}

func TestSearchCapsResultSize(t *testing.T) {
	es, calls := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"hits":{"hits":[]}}`))
	})
	idx := NewProfileIndex(es, "profiles")

	for _, size := range []int{100, 50, 7} {
		_, err := idx.Search(context.Background(), "golang", size)
		require.NoError(t, err)
	}
	require.Len(t, *calls, 3)
	assert.Contains(t, (*calls)[0].body, `"size":50`)
	assert.Contains(t, (*calls)[1].body, `"size":50`)
	assert.Contains(t, (*calls)[2].body, `"size":7`)
}

func TestSearchSurfacesErrorStatus(t *testing.T) {
	es, _ := fakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"boom"}`))
	})
	idx := NewProfileIndex(es, "profiles")
	_, err := idx.Search(context.Background(), "golang", 5)
	assert.Error(t, err)
}
