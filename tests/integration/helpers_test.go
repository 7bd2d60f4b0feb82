//go:build integration
// +build integration

package integration

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strings"
	"testing"
)

func envOrDefault(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func baseURL() string {
	return envOrDefault("INTEGRATION_BASE_URL", "http://localhost:8080")
}

func apiURL(path string) string {
	return baseURL() + envOrDefault("INTEGRATION_BASE_PATH", "/api/trivia") + path
}

// doJSON sends payload (when non-nil) and decodes the JSON response body.
func doJSON(t *testing.T, method, url string, payload interface{}) (int, map[string]interface{}) {
	t.Helper()

	var body *bytes.Reader
	switch p := payload.(type) {
	case nil:
		body = bytes.NewReader(nil)
	case string:
		body = bytes.NewReader([]byte(p))
	default:
		data, err := json.Marshal(p)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("build request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, url, err)
	}
	defer resp.Body.Close()

	var out map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		t.Fatalf("decode %s %s response: %v", method, url, err)
	}
	return resp.StatusCode, out
}

func expectEnvelope(t *testing.T, status int, body map[string]interface{}, want int) {
	t.Helper()
	if status != want {
		t.Fatalf("expected %d, got %d: %v", want, status, body)
	}
	if body["error"] != float64(want) || body["success"] != false {
		t.Fatalf("unexpected error envelope: %v", body)
	}
}

func createQuestion(t *testing.T, category int) int64 {
	t.Helper()
	status, body := doJSON(t, http.MethodPost, apiURL("/questions"), map[string]interface{}{
		"question":   fmt.Sprintf("Integration question %s?", strings.ToUpper(t.Name())),
		"answer":     "42",
		"category":   category,
		"difficulty": 2,
	})
	if status != http.StatusOK {
		t.Fatalf("create question: status %d: %v", status, body)
	}
	id, ok := body["id"].(float64)
	if !ok {
		t.Fatalf("missing id in create response: %v", body)
	}
	return int64(id)
}
