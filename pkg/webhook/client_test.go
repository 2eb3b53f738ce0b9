package webhook

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Utgast/cabletherm/pkg/config"
	"github.com/Utgast/cabletherm/pkg/models"
)

func TestSend(t *testing.T) {
	cfg := config.DefaultConfig()
	cfg.Quiet = true

	t.Run("posts the result as json", func(t *testing.T) {
		var got models.SolveResult
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
				t.Errorf("decode: %v", err)
			}
			w.WriteHeader(http.StatusOK)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, cfg)
		err := c.Send(models.SolveResult{RequestID: "r-1", Mode: "ampacity", Success: true})
		if err != nil {
			t.Fatal(err)
		}
		if got.RequestID != "r-1" || got.Mode != "ampacity" {
			t.Errorf("payload = %+v", got)
		}
	})

	t.Run("http errors are reported", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
		}))
		defer srv.Close()

		c := NewClient(srv.URL, cfg)
		if err := c.Send(models.SolveResult{RequestID: "r-2"}); err == nil {
			t.Error("want error for 502 response")
		}
	})

	t.Run("empty url is a no-op", func(t *testing.T) {
		c := NewClient("", cfg)
		if err := c.Send(models.SolveResult{RequestID: "r-3"}); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})
}
