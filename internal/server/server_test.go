package server

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"connectrpc.com/connect"
	"google.golang.org/protobuf/types/known/emptypb"

	"github.com/mmynk/choretracker/pkg/api/apiconnect"
)

func setupRouter(t *testing.T) *httptest.Server {
	t.Helper()

	dir := t.TempDir()
	files := map[string]string{
		"index.html": "<html>app</html>",
		"app.js":     "console.log('chores')",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatalf("failed to write %s: %v", name, err)
		}
	}

	path, handler := apiconnect.NewAuthServiceHandler(apiconnect.UnimplementedAuthServiceHandler{})
	server := httptest.NewServer(NewRouter(dir, Service{Path: path, Handler: handler}))
	t.Cleanup(server.Close)
	return server
}

func get(t *testing.T, url string) (int, string) {
	t.Helper()
	resp, err := http.Get(url)
	if err != nil {
		t.Fatalf("GET %s failed: %v", url, err)
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	return resp.StatusCode, string(body)
}

func TestRouter_Endpoints(t *testing.T) {
	server := setupRouter(t)

	tests := []struct {
		path       string
		wantStatus int
		wantBody   string
	}{
		{"/healthz", http.StatusOK, "ok"},
		{"/metrics", http.StatusOK, "go_goroutines"},
		{"/", http.StatusOK, "<html>app</html>"},
		{"/app.js", http.StatusOK, "console.log"},
		{"/groups/123", http.StatusOK, "<html>app</html>"},
		{"/choretracker.v1.UnknownService/Call", http.StatusNotFound, ""},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			status, body := get(t, server.URL+tt.path)
			if status != tt.wantStatus {
				t.Errorf("status: expected %d, got %d", tt.wantStatus, status)
			}
			if !strings.Contains(body, tt.wantBody) {
				t.Errorf("body %q does not contain %q", body, tt.wantBody)
			}
		})
	}
}

func TestRouter_MountsConnectServices(t *testing.T) {
	server := setupRouter(t)
	client := apiconnect.NewAuthServiceClient(http.DefaultClient, server.URL)

	_, err := client.Logout(context.Background(), connect.NewRequest(&emptypb.Empty{}))
	if connect.CodeOf(err) != connect.CodeUnimplemented {
		t.Errorf("expected unimplemented from the mounted service, got %v", err)
	}
}

func TestRouter_CORSPreflight(t *testing.T) {
	server := setupRouter(t)

	req, err := http.NewRequest(http.MethodOptions, server.URL+apiconnect.AuthServiceLoginProcedure, nil)
	if err != nil {
		t.Fatal(err)
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("preflight failed: %v", err)
	}
	resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Errorf("status: expected 200, got %d", resp.StatusCode)
	}
	if got := resp.Header.Get("Access-Control-Allow-Headers"); !strings.Contains(got, "Authorization") {
		t.Errorf("Authorization not allowed: %q", got)
	}
}
