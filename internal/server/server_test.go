package server

import (
	"context"
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/set-night/intakebot/internal/config"
)

func TestHealthz(t *testing.T) {
	tests := []struct {
		name  string
		ready func(context.Context) error
		code  int
		body  string
	}{
		{"no check", nil, http.StatusOK, `"ok"`},
		{"ready", func(context.Context) error { return nil }, http.StatusOK, `"ok"`},
		{"down", func(context.Context) error { return errors.New("db down") }, http.StatusServiceUnavailable, `"unavailable"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(NewRouter(Deps{Ready: tt.ready}))
			defer srv.Close()

			resp, err := http.Get(srv.URL + "/healthz")
			if err != nil {
				t.Fatal(err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)

			if resp.StatusCode != tt.code {
				t.Errorf("status = %d, want %d", resp.StatusCode, tt.code)
			}
			if !strings.Contains(string(body), tt.body) {
				t.Errorf("body = %s", body)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_hits_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()

	srv := httptest.NewServer(NewRouter(Deps{Gatherer: reg}))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if !strings.Contains(string(body), "test_hits_total 1") {
		t.Errorf("metrics body missing counter:\n%s", body)
	}
}

func TestWebhookRoute(t *testing.T) {
	hits := 0
	hook := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewServer(NewRouter(Deps{Webhook: hook}))
	defer srv.Close()

	resp, err := http.Post(srv.URL+config.WebhookPath, "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if hits != 1 {
		t.Errorf("webhook hits = %d, want 1", hits)
	}

	resp, err = http.Get(srv.URL + config.WebhookPath)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Errorf("GET webhook status = %d, want 405", resp.StatusCode)
	}
}

func TestNoWebhookWhenPolling(t *testing.T) {
	srv := httptest.NewServer(NewRouter(Deps{}))
	defer srv.Close()

	resp, err := http.Post(srv.URL+config.WebhookPath, "application/json", strings.NewReader("{}"))
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Errorf("status = %d, want 404", resp.StatusCode)
	}
}

func TestRunStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- Run(ctx, 0, NewRouter(Deps{})) }()
	cancel()
	if err := <-done; err != nil {
		t.Errorf("Run = %v", err)
	}
}

func TestRunFailsWhenPortTaken(t *testing.T) {
	ln, err := net.Listen("tcp", ":0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	port := ln.Addr().(*net.TCPAddr).Port

	done := make(chan error, 1)
	go func() { done <- Run(context.Background(), port, NewRouter(Deps{})) }()

	select {
	case err := <-done:
		if err == nil {
			t.Error("expected an error for a port in use")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return for a port in use")
	}
}
