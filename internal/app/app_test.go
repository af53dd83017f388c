package app

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/briidgedotone/narra/pkg/logger"
)

func TestHealthz(t *testing.T) {
	srv := httptest.NewServer(newHealthServer(logger.NewNop(), 0).Handler)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK || string(body) != "ok" {
		t.Fatalf("got %d %q", resp.StatusCode, body)
	}
}
