package main

import (
	"net"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShutdownServer_DrainsInFlightRequests(t *testing.T) {
	handled := make(chan struct{})
	srv := &http.Server{
		Handler: http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
			close(handled)
		}),
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	go srv.Serve(ln)

	var wg sync.WaitGroup
	wg.Add(1)
	var status int
	go func() {
		defer wg.Done()
		resp, err := http.Get("http://" + ln.Addr().String())
		if err != nil {
			return
		}
		status = resp.StatusCode
		resp.Body.Close()
	}()

	// Let the request reach the handler, then shut down around it.
	time.Sleep(50 * time.Millisecond)
	shutdownServer(srv)
	wg.Wait()

	select {
	case <-handled:
	default:
		t.Fatal("in-flight request was dropped during shutdown")
	}
	assert.Equal(t, http.StatusOK, status)
}
