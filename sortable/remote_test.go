package sortable

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRemoteStorePushAndFetch(t *testing.T) {
	var stored OrderRecord
	var gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/orders/watchlist", r.URL.Path)
		gotAuth = r.Header.Get("Authorization")
		switch r.Method {
		case http.MethodPut:
			require.NoError(t, json.NewDecoder(r.Body).Decode(&stored))
			w.WriteHeader(http.StatusNoContent)
		case http.MethodGet:
			json.NewEncoder(w).Encode(stored)
		}
	}))
	defer srv.Close()

	remote := NewRemoteStore(srv.URL, "sekrit")
	entries := []OrderEntry{{ID: "TSLA", Order: 0}, {ID: "AAPL", Order: 1}}
	require.NoError(t, remote.Push("watchlist", entries))
	assert.Equal(t, "Bearer sekrit", gotAuth)

	fetched, err := remote.Fetch("watchlist")
	require.NoError(t, err)
	assert.Equal(t, entries, fetched)
}

func TestRemoteStoreNonSuccessIsNoOrder(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	remote := NewRemoteStore(srv.URL, "")
	entries, err := remote.Fetch("watchlist")
	assert.Error(t, err)
	assert.Nil(t, entries)
}

func TestRemoteStoreRetriesServerErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	remote := NewRemoteStore(srv.URL, "")
	require.NoError(t, remote.Push("k", nil))
	assert.Equal(t, 3, calls)
}

func TestPersisterFallsBackToRemote(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(OrderRecord{Order: []OrderEntry{{ID: "BTC", Order: 0}}})
	}))
	defer srv.Close()

	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	p := NewPersister(store, NewRemoteStore(srv.URL, ""), nil)

	entries := p.Load("portfolio")
	require.Len(t, entries, 1)
	assert.Equal(t, "BTC", entries[0].ID)
}

func TestPersisterPrefersLocalRecord(t *testing.T) {
	var remoteCalls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		remoteCalls++
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, store.SaveOrder("k", []OrderEntry{{ID: "x", Order: 0}}))

	p := NewPersister(store, NewRemoteStore(srv.URL, ""), nil)
	entries := p.Load("k")
	require.Len(t, entries, 1)
	assert.Zero(t, remoteCalls, "remote is only consulted on a local miss")
}

func TestPersisterSaveSurvivesRemoteFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// 4xx responses are not retried and must not roll back the local save.
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	p := NewPersister(store, NewRemoteStore(srv.URL, ""), nil)

	p.Save("k", []OrderEntry{{ID: "x", Order: 0}})

	entries, err := store.LoadOrder("k")
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}
