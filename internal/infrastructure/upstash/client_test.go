package upstash_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nguyenkim2108/league-scheude/internal/core/ports"
	"github.com/Nguyenkim2108/league-scheude/internal/infrastructure/upstash"
)

// fakeUpstash answers REST commands from an in-memory map.
type fakeUpstash struct {
	mu     sync.Mutex
	data   map[string]string
	ttls   map[string]int
	denied map[string]bool
	auth   []string
}

func newFakeUpstash(t *testing.T) (*fakeUpstash, *upstash.Client) {
	f := &fakeUpstash{data: map[string]string{}, ttls: map[string]int{}, denied: map[string]bool{}}
	srv := httptest.NewServer(http.HandlerFunc(f.serve))
	t.Cleanup(srv.Close)
	client, err := upstash.NewClient(upstash.Config{URL: srv.URL + "/", Token: "secret", Timeout: 2 * time.Second})
	require.NoError(t, err)
	return f, client
}

func (f *fakeUpstash) serve(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.auth = append(f.auth, r.Header.Get("Authorization"))
	w.Header().Set("Content-Type", "application/json")

	var args []string
	if err := json.NewDecoder(r.Body).Decode(&args); err != nil || len(args) == 0 {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "ERR malformed"})
		return
	}
	if f.denied[args[0]] {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{
			"error": "NOPERM this user has no permissions to run the '" + args[0] + "' command",
		})
		return
	}

	var result any
	switch args[0] {
	case "GET":
		if v, ok := f.data[args[1]]; ok {
			result = v
		}
	case "SET":
		f.data[args[1]] = args[2]
		delete(f.ttls, args[1])
		result = "OK"
	case "SETEX":
		secs, _ := strconv.Atoi(args[2])
		f.data[args[1]] = args[3]
		f.ttls[args[1]] = secs
		result = "OK"
	case "DEL":
		n := 0
		if _, ok := f.data[args[1]]; ok {
			n = 1
		}
		delete(f.data, args[1])
		result = n
	case "PING":
		result = "PONG"
	}
	_ = json.NewEncoder(w).Encode(map[string]any{"result": result})
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := upstash.NewClient(upstash.Config{URL: "https://example.upstash.io"})
	require.Error(t, err)
	_, err = upstash.NewClient(upstash.Config{Token: "t"})
	require.Error(t, err)
}

func TestClient_Commands(t *testing.T) {
	f, client := newFakeUpstash(t)
	ctx := context.Background()

	require.NoError(t, client.Ping(ctx))

	_, ok, err := client.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, client.Set(ctx, "k", `{"a":1}`))
	v, ok, err := client.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `{"a":1}`, v)

	require.NoError(t, client.SetWithExpiry(ctx, "t", `"v"`, 90*time.Second))
	assert.Equal(t, 90, f.ttls["t"])

	require.NoError(t, client.Delete(ctx, "k"))
	_, ok, err = client.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	require.Equal(t, "upstash", client.Name())
	require.NoError(t, client.Close())
	for _, h := range f.auth {
		assert.Equal(t, "Bearer secret", h)
	}
}

func TestClient_SubSecondTTLRoundsUp(t *testing.T) {
	f, client := newFakeUpstash(t)
	require.NoError(t, client.SetWithExpiry(context.Background(), "k", "1", 200*time.Millisecond))
	assert.Equal(t, 1, f.ttls["k"])
}

func TestClient_PermissionDenied(t *testing.T) {
	f, client := newFakeUpstash(t)
	f.denied["SETEX"] = true
	f.denied["DEL"] = true
	ctx := context.Background()

	err := client.SetWithExpiry(ctx, "k", "v", time.Minute)
	require.True(t, errors.Is(err, ports.ErrPermissionDenied))
	require.ErrorIs(t, client.Delete(ctx, "k"), ports.ErrPermissionDenied)
	require.NoError(t, client.Set(ctx, "k", "v"))
}

func TestClient_ServerErrorIsNotPermission(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()
	client, err := upstash.NewClient(upstash.Config{URL: srv.URL, Token: "t"})
	require.NoError(t, err)

	err = client.Set(context.Background(), "k", "v")
	require.Error(t, err)
	require.False(t, errors.Is(err, ports.ErrPermissionDenied))
}

func TestClient_UnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()
	client, err := upstash.NewClient(upstash.Config{URL: url, Token: "t", Timeout: time.Second})
	require.NoError(t, err)

	_, _, err = client.Get(context.Background(), "k")
	require.Error(t, err)
}
