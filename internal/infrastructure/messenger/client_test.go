package messenger

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClient_Send(t *testing.T) {
	var received map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/messages", r.URL.Path)
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusAccepted)
	}))
	defer srv.Close()

	client := NewClient(Config{Endpoint: srv.URL + "/", Timeout: time.Second})
	err := client.Send(context.Background(), "discord", " review-1 ", "hello")
	require.NoError(t, err)

	assert.Equal(t, "review-1", received["userId"])
	assert.Equal(t, "hello", received["text"])
	assert.Equal(t, "discord", received["destination"])
}

func TestClient_Send_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "bad destination", http.StatusBadRequest)
	}))
	defer srv.Close()

	client := NewClient(Config{Endpoint: srv.URL})
	err := client.Send(context.Background(), "nowhere", "u1", "hello")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status=400")
	assert.Contains(t, err.Error(), "bad destination")
}

func TestClient_NotConfigured(t *testing.T) {
	client := NewClient(Config{})
	assert.False(t, client.Configured())
	assert.ErrorIs(t, client.Send(context.Background(), "d", "u", "t"), ErrNotConfigured)
}

func TestClient_RequiresUserID(t *testing.T) {
	client := NewClient(Config{Endpoint: "http://127.0.0.1:1"})
	assert.Error(t, client.Send(context.Background(), "d", " ", "t"))
}

func TestClient_SendWithRetry(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(Config{Endpoint: srv.URL, RatePerSecond: 100})
	err := client.SendWithRetry(context.Background(), "discord", "u1", "hello", 3, time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestClient_SendWithRetry_GivesUp(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	client := NewClient(Config{Endpoint: srv.URL})
	err := client.SendWithRetry(context.Background(), "discord", "u1", "hello", 2, 0)
	require.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))

	assert.Error(t, client.SendWithRetry(context.Background(), " ", "u1", "hello", 1, 0))
}

func TestClient_CircuitOpensAfterConsecutiveFailures(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	client := NewClient(Config{Endpoint: srv.URL})
	for i := 0; i < 5; i++ {
		require.Error(t, client.Send(context.Background(), "d", "u1", "t"))
	}
	err := client.Send(context.Background(), "d", "u1", "t")
	assert.ErrorIs(t, err, ErrCircuitOpen)
	assert.Equal(t, int32(5), atomic.LoadInt32(&calls))
}

func TestClient_Send_SkipsExpiredContext(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	client := NewClient(Config{Endpoint: srv.URL, RatePerSecond: 1})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := client.Send(ctx, "discord", "u1", "hello")
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, int32(0), hits.Load())
}
