package server_test

import (
	"io"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/frenchcert/frenchcert/internal/config"
	"github.com/frenchcert/frenchcert/internal/server"
	"github.com/frenchcert/frenchcert/pkg/lifecycle"
)

func testConfig() *config.ServerConfig {
	return &config.ServerConfig{
		Host:            "127.0.0.1",
		Port:            0,
		ReadTimeout:     "5s",
		WriteTimeout:    "5s",
		ShutdownTimeout: "5s",
	}
}

func TestStart_ServesAndShutsDown(t *testing.T) {
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("test response"))
	})

	sys := server.New(testConfig(), handler, slog.New(slog.DiscardHandler))
	lc := lifecycle.New()

	if err := sys.Start(lc); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}

	resp, err := http.Get("http://" + sys.Addr())
	if err != nil {
		t.Fatalf("GET failed: %v", err)
	}
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()

	if string(body) != "test response" {
		t.Errorf("body = %q, want %q", body, "test response")
	}

	if err := lc.Shutdown(5 * time.Second); err != nil {
		t.Fatalf("Shutdown() failed: %v", err)
	}

	if _, err := http.Get("http://" + sys.Addr()); err == nil {
		t.Error("server still accepting requests after shutdown")
	}
}

func TestStart_BindFailure(t *testing.T) {
	first := server.New(testConfig(), http.NotFoundHandler(), slog.New(slog.DiscardHandler))
	lc := lifecycle.New()
	if err := first.Start(lc); err != nil {
		t.Fatalf("Start() failed: %v", err)
	}
	defer lc.Shutdown(5 * time.Second)

	cfg := testConfig()
	_, port, _ := splitHostPort(first.Addr())
	cfg.Port = port

	second := server.New(cfg, http.NotFoundHandler(), slog.New(slog.DiscardHandler))
	if err := second.Start(lifecycle.New()); err == nil {
		t.Error("Start() should fail when the port is taken")
	}
}

func splitHostPort(addr string) (string, int, error) {
	host, p, err := net.SplitHostPort(addr)
	if err != nil {
		return "", 0, err
	}
	port, err := strconv.Atoi(p)
	return host, port, err
}
