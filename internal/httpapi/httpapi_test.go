package httpapi

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"go.uber.org/zap"

	"github.com/StefanKarpinski/bam/internal/index"
	"github.com/StefanKarpinski/bam/internal/lookup"
	"github.com/StefanKarpinski/bam/internal/mph"
)

func newTestHandler(t *testing.T, data []byte) http.Handler {
	t.Helper()

	ix, err := index.Build(data, mph.CHD, 0.9)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	svc := lookup.New(data, ix)
	log := zap.NewNop().Sugar()
	return Handler(svc, log)
}

func TestHandlerS1(t *testing.T) {
	data := []byte("alpha\tone\nbeta\ttwo\ngamma\tthree\n")
	h := newTestHandler(t, data)

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/beta")
	if err != nil {
		t.Fatalf("GET /beta: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /beta: status %d", resp.StatusCode)
	}
	buf := make([]byte, 64)
	n, _ := resp.Body.Read(buf)
	if string(buf[:n]) != "two\n" {
		t.Fatalf("GET /beta: body %q", buf[:n])
	}

	resp2, err := http.Get(srv.URL + "/delta")
	if err != nil {
		t.Fatalf("GET /delta: %v", err)
	}
	defer resp2.Body.Close()
	if resp2.StatusCode != http.StatusNotFound {
		t.Fatalf("GET /delta: status %d", resp2.StatusCode)
	}
}

func TestHandlerRejectsNonGet(t *testing.T) {
	data := []byte("alpha\tone\n")
	h := newTestHandler(t, data)

	srv := httptest.NewServer(h)
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/alpha", "text/plain", nil)
	if err != nil {
		t.Fatalf("POST /alpha: %v", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusMethodNotAllowed {
		t.Fatalf("POST /alpha: status %d, want 405", resp.StatusCode)
	}
}
