package webhook

import (
	"bytes"
	"crypto/tls"
	"encoding/json"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/Utgast/cabletherm/pkg/config"
	"github.com/Utgast/cabletherm/pkg/models"
)

// Client posts finished solve results to a report endpoint. The transport
// keeps idle connections warm because result bursts follow batch submits.
type Client struct {
	url        string
	httpClient *http.Client
	cfg        *config.Config
	bufferPool sync.Pool
}

// NewClient creates a webhook client with connection pooling. An empty URL
// yields a client whose Send is a no-op.
func NewClient(url string, cfg *config.Config) *Client {
	transport := &http.Transport{
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 20,
		IdleConnTimeout:     90 * time.Second,

		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,

		TLSHandshakeTimeout:   10 * time.Second,
		TLSClientConfig:       &tls.Config{},
		ResponseHeaderTimeout: 30 * time.Second,

		// Payloads are small; compression costs more than it saves.
		DisableCompression: true,
	}

	return &Client{
		url: url,
		cfg: cfg,
		httpClient: &http.Client{
			Timeout:   45 * time.Second,
			Transport: transport,
		},
		bufferPool: sync.Pool{
			New: func() interface{} {
				return bytes.NewBuffer(make([]byte, 0, 1024))
			},
		},
	}
}

// Send posts one solve result. Failures are returned, not retried; the
// caller decides whether a missed report matters.
func (c *Client) Send(result models.SolveResult) error {
	if c.url == "" {
		return nil
	}

	buf := c.bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer c.bufferPool.Put(buf)

	if err := json.NewEncoder(buf).Encode(result); err != nil {
		return fmt.Errorf("marshal webhook payload: %w", err)
	}

	resp, err := c.httpClient.Post(c.url, "application/json", bytes.NewReader(buf.Bytes()))
	if err != nil {
		return fmt.Errorf("send webhook: %w", err)
	}
	defer resp.Body.Close()

	if !c.cfg.Quiet {
		log.Printf("webhook sent - ID: %s, mode: %s, status: %d",
			result.RequestID, result.Mode, resp.StatusCode)
	}

	if resp.StatusCode >= 400 {
		return fmt.Errorf("webhook request failed with status %d", resp.StatusCode)
	}
	return nil
}
