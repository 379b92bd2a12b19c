// Package tiles fetches raster map tiles from XYZ tile servers.
package tiles

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"log/slog"
	"net"
	"net/http"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// OSM is the OpenStreetMap standard tile layer.
const OSM = "https://tile.openstreetmap.org/{z}/{x}/{y}.png"

// UserAgent identifies the client, as required by the OSM tile usage policy.
const UserAgent = "floodmapper/1.0 (+https://github.com/rtm0/floodmapper)"

var placeholderRE = regexp.MustCompile(`\{[xyz]\}`)

// Client is a tile server client.
type Client struct {
	logger      *slog.Logger
	httpCli     *http.Client
	urlTemplate string
}

// NewClient creates a new tile client for a URL template containing the
// {z}, {x} and {y} placeholders.
func NewClient(logger *slog.Logger, urlTemplate string, maxConns int) (*Client, error) {
	for _, p := range []string{"{z}", "{x}", "{y}"} {
		if !strings.Contains(urlTemplate, p) {
			return nil, fmt.Errorf("tile URL %q lacks the %s placeholder", urlTemplate, p)
		}
	}
	return &Client{
		logger: logger,
		httpCli: &http.Client{
			Timeout: time.Minute,
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout:   30 * time.Second,
					KeepAlive: 30 * time.Second,
				}).DialContext,
				MaxIdleConns:        maxConns,
				IdleConnTimeout:     30 * time.Second,
				MaxIdleConnsPerHost: maxConns,
				MaxConnsPerHost:     maxConns,
			},
		},
		urlTemplate: urlTemplate,
	}, nil
}

// URL returns the address of tile t.
func (c *Client) URL(t Tile) string {
	return placeholderRE.ReplaceAllStringFunc(c.urlTemplate, func(p string) string {
		switch p {
		case "{z}":
			return strconv.Itoa(t.Z)
		case "{x}":
			return strconv.Itoa(t.X)
		default:
			return strconv.Itoa(t.Y)
		}
	})
}

// Fetch downloads and decodes tile t.
func (c *Client) Fetch(ctx context.Context, t Tile) (image.Image, error) {
	url := c.URL(t)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", UserAgent)

	res, err := c.httpCli.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer res.Body.Close()
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", url, err)
	}
	if res.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s: unexpected status %d", url, res.StatusCode)
	}
	img, _, err := image.Decode(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("decoding %s: %w", url, err)
	}
	c.logger.Debug("fetched tile", "z", t.Z, "x", t.X, "y", t.Y)
	return img, nil
}

// Close releases idle connections.
func (c *Client) Close() {
	c.httpCli.CloseIdleConnections()
}
