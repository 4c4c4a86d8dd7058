package spotify

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"tastebud/application/ports"
	apperrors "tastebud/pkg/errors"
)

const (
	tokenURL = "https://accounts.spotify.com/api/token"
	// trackCacheTTL bounds how long a looked-up track is served from cache.
	// Catalog metadata is effectively immutable, the TTL just bounds memory.
	trackCacheTTL = time.Hour
)

// Client resolves track metadata from the Spotify Web API using the
// client-credentials flow. Responses are stored verbatim; the service never
// reinterprets catalog data.
type Client struct {
	httpClient   *http.Client
	baseURL      string
	clientID     string
	clientSecret string
	cache        ports.Cache
	logger       *zap.Logger

	mu          sync.Mutex
	accessToken string
	tokenExpiry time.Time
}

// NewClient creates a catalog client
func NewClient(baseURL, clientID, clientSecret string, cache ports.Cache, logger *zap.Logger) ports.TrackCatalog {
	return &Client{
		httpClient:   &http.Client{Timeout: 10 * time.Second},
		baseURL:      strings.TrimRight(baseURL, "/"),
		clientID:     clientID,
		clientSecret: clientSecret,
		cache:        cache,
		logger:       logger,
	}
}

// tokenResponse is the client-credentials grant response
type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// trackResponse is the subset of the track object the service stores
type trackResponse struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Artists []struct {
		Name string `json:"name"`
	} `json:"artists"`
	Album struct {
		Name   string `json:"name"`
		Images []struct {
			URL string `json:"url"`
		} `json:"images"`
	} `json:"album"`
	PreviewURL string `json:"preview_url"`
	DurationMs int    `json:"duration_ms"`
	Popularity int    `json:"popularity"`
}

type searchResponse struct {
	Tracks struct {
		Items []trackResponse `json:"items"`
	} `json:"tracks"`
}

// Lookup fetches a track by its catalog ID
func (c *Client) Lookup(ctx context.Context, spotifyID string) (*ports.CatalogTrack, error) {
	cacheKey := "spotify:track:" + spotifyID
	if cached, found := c.cache.Get(ctx, cacheKey); found {
		if track, ok := cached.(*ports.CatalogTrack); ok {
			return track, nil
		}
	}

	var resp trackResponse
	if err := c.get(ctx, "/tracks/"+url.PathEscape(spotifyID), &resp); err != nil {
		return nil, err
	}
	if resp.ID == "" {
		return nil, apperrors.NewNotFoundError("track")
	}

	track := toCatalogTrack(resp)
	_ = c.cache.Set(ctx, cacheKey, track, trackCacheTTL)
	return track, nil
}

// Search finds tracks matching a free-text query
func (c *Client) Search(ctx context.Context, query string, limit int) ([]*ports.CatalogTrack, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("type", "track")
	params.Set("limit", strconv.Itoa(limit))

	var resp searchResponse
	if err := c.get(ctx, "/search?"+params.Encode(), &resp); err != nil {
		return nil, err
	}

	tracks := make([]*ports.CatalogTrack, 0, len(resp.Tracks.Items))
	for _, item := range resp.Tracks.Items {
		tracks = append(tracks, toCatalogTrack(item))
	}
	return tracks, nil
}

// get performs an authenticated GET against the catalog API
func (c *Client) get(ctx context.Context, path string, out interface{}) error {
	token, err := c.token(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return apperrors.NewExternalError("spotify", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.NewExternalError("spotify", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return apperrors.NewNotFoundError("track")
	case resp.StatusCode == http.StatusTooManyRequests:
		return apperrors.NewExternalError("spotify", fmt.Errorf("rate limited")).WithRetryable(true)
	case resp.StatusCode != http.StatusOK:
		c.logger.Warn("catalog request failed",
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
		)
		return apperrors.NewExternalError("spotify", fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.NewExternalError("spotify", err)
	}
	return nil
}

// token returns a valid access token, refreshing it when close to expiry
func (c *Client) token(ctx context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.accessToken != "" && time.Now().Before(c.tokenExpiry.Add(-30*time.Second)) {
		return c.accessToken, nil
	}

	body := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tokenURL, body)
	if err != nil {
		return "", apperrors.NewExternalError("spotify", err)
	}
	creds := base64.StdEncoding.EncodeToString([]byte(c.clientID + ":" + c.clientSecret))
	req.Header.Set("Authorization", "Basic "+creds)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", apperrors.NewExternalError("spotify", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", apperrors.NewExternalError("spotify", fmt.Errorf("token request failed with status %d", resp.StatusCode))
	}

	var tr tokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return "", apperrors.NewExternalError("spotify", err)
	}

	c.accessToken = tr.AccessToken
	c.tokenExpiry = time.Now().Add(time.Duration(tr.ExpiresIn) * time.Second)
	return c.accessToken, nil
}

func toCatalogTrack(resp trackResponse) *ports.CatalogTrack {
	track := &ports.CatalogTrack{
		SpotifyID:  resp.ID,
		Title:      resp.Name,
		Album:      resp.Album.Name,
		PreviewURL: resp.PreviewURL,
		DurationMs: resp.DurationMs,
		Popularity: resp.Popularity,
	}

	names := make([]string, 0, len(resp.Artists))
	for _, a := range resp.Artists {
		names = append(names, a.Name)
	}
	track.Artist = strings.Join(names, ", ")

	if len(resp.Album.Images) > 0 {
		track.AlbumArtURL = resp.Album.Images[0].URL
	}

	return track
}
