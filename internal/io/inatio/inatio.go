// Package inatio looks up taxa on the iNaturalist API. Responses are
// cached in a key-value store keyed by the queried common name, since
// batches repeat popular species constantly.
package inatio

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/biodivbd/lepiobs/internal/ent/kv"
	"github.com/biodivbd/lepiobs/internal/ent/taxapi"
	"github.com/gnames/gnfmt"
)

// URL is the default iNaturalist API endpoint.
const URL = "https://api.inaturalist.org/v1"

const maxBodySize = 10_000_000

type inatio struct {
	url    string
	client *http.Client
	cache  kv.KeyVal
	enc    gnfmt.Encoder
}

// New returns a taxapi.Lookup backed by the iNaturalist API. The cache
// is optional; pass nil to query the network every time.
func New(apiURL string, cache kv.KeyVal) taxapi.Lookup {
	if apiURL == "" {
		apiURL = URL
	}
	return &inatio{
		url:    strings.TrimRight(apiURL, "/"),
		client: &http.Client{Timeout: 10 * time.Second},
		cache:  cache,
		enc:    gnfmt.GNgob{},
	}
}

// taxaResult matches the fields of the API response we care about.
type taxaResult struct {
	Results []struct {
		Name string `json:"name"`
	} `json:"results"`
}

// TaxaByName returns candidate scientific names for a common name.
func (l *inatio) TaxaByName(
	ctx context.Context,
	commonName string,
) ([]string, error) {
	key := []byte(strings.ToLower(strings.TrimSpace(commonName)))
	if len(key) == 0 {
		return nil, nil
	}

	if names, ok := l.fromCache(key); ok {
		return names, nil
	}

	names, err := l.fetch(ctx, commonName)
	if err != nil {
		return nil, err
	}
	l.toCache(key, names)
	return names, nil
}

func (l *inatio) fetch(ctx context.Context, commonName string) ([]string, error) {
	reqURL := fmt.Sprintf("%s/taxa?q=%s", l.url, url.QueryEscape(commonName))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("taxa lookup: unexpected status %s", resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return nil, err
	}

	var res taxaResult
	encJSON := gnfmt.GNjson{}
	if err = encJSON.Decode(body, &res); err != nil {
		return nil, err
	}

	names := make([]string, 0, len(res.Results))
	for _, r := range res.Results {
		if r.Name != "" {
			names = append(names, r.Name)
		}
	}
	return names, nil
}

func (l *inatio) fromCache(key []byte) ([]string, bool) {
	if l.cache == nil {
		return nil, false
	}
	cached, err := l.cache.GetValue(key)
	if err != nil || cached == nil {
		return nil, false
	}
	var names []string
	if err = l.enc.Decode(cached, &names); err != nil {
		slog.Warn("Cannot decode cached taxa", "error", err, "key", string(key))
		return nil, false
	}
	return names, true
}

func (l *inatio) toCache(key []byte, names []string) {
	if l.cache == nil {
		return
	}
	val, err := l.enc.Encode(names)
	if err != nil {
		slog.Warn("Cannot encode taxa for cache", "error", err)
		return
	}
	if err = l.cache.SetValue(key, val); err != nil {
		slog.Warn("Cannot cache taxa", "error", err, "key", string(key))
	}
}
