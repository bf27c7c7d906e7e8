package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/vitrina-next/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	events []string
}

func (r *recorder) add(event string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) list() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

type fakeService struct {
	name     string
	startErr error
	rec      *recorder
}

func (f *fakeService) Name() string { return f.name }

func (f *fakeService) Start(ctx context.Context) error {
	if f.startErr != nil {
		return f.startErr
	}
	<-ctx.Done()
	return nil
}

func (f *fakeService) Stop(context.Context) error {
	f.rec.add("stop:" + f.name)
	return nil
}

func TestRunnerStopsInReverseOrderOnCancel(t *testing.T) {
	rec := &recorder{}
	runner := NewRunner(&fakeService{name: "http", rec: rec}, &fakeService{name: "worker", rec: rec})
	runner.OnShutdown("queue_client", func() error { rec.add("close:queue_client"); return nil })
	runner.OnShutdown("redis", func() error { rec.add("close:redis"); return errors.New("already closed") })

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- runner.Run(ctx, time.Second, nil) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("runner did not stop")
	}
	assert.Equal(t, []string{"stop:worker", "stop:http", "close:redis", "close:queue_client"}, rec.list())
	assert.Equal(t, []string{"http", "worker"}, runner.Services())
}

func TestRunnerReturnsServiceError(t *testing.T) {
	rec := &recorder{}
	boom := errors.New("bind failed")
	runner := NewRunner(&fakeService{name: "http", startErr: boom, rec: rec}, &fakeService{name: "worker", rec: rec})

	err := runner.Run(t.Context(), time.Second, nil)
	require.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "service http")
	assert.ElementsMatch(t, []string{"stop:worker", "stop:http"}, rec.list())
}

func TestRunnerRejectsEmptyAndNil(t *testing.T) {
	require.Error(t, NewRunner().Run(t.Context(), time.Second, nil))
	require.Error(t, NewRunner(nil).Run(t.Context(), time.Second, nil))
	require.Error(t, RunWithOptions(nil, Options{}))
}

func TestRunRejectsUnknownMode(t *testing.T) {
	err := Run(Options{Config: &config.Config{}, Mode: "cron"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestHTTPServiceServesAndStops(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	svc := NewHTTPService(config.ServerConfig{Host: "127.0.0.1", Port: "0", ReadHeaderTimeoutSeconds: 5}, handler)
	addr, err := svc.Listen()
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- svc.Start(t.Context()) }()

	resp, err := http.Get(fmt.Sprintf("http://%s/health", addr.String()))
	require.NoError(t, err)
	_ = resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	require.NoError(t, svc.Stop(t.Context()))
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(3 * time.Second):
		t.Fatal("http service did not stop")
	}
}
