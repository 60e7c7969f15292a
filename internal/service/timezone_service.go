package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"transaction-management/pkg/cache"
	"transaction-management/pkg/config"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
)

// NewHTTPClient builds the outbound client shared by every request.
func NewHTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// TimeZoneService resolves coordinates to IANA zone names through a
// timeapi.io-compatible endpoint.
type TimeZoneService struct {
	httpClient     *http.Client
	baseURL        string
	maxAttempts    int
	initialBackoff time.Duration
	cache          cache.StringCache
	logger         *zap.Logger
}

func NewTimeZoneService(httpClient *http.Client, cfg *config.TimeZoneConfig, zoneCache cache.StringCache, logger *zap.Logger) *TimeZoneService {
	if zoneCache == nil {
		zoneCache = cache.Nop{}
	}
	maxAttempts := cfg.MaxAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}
	return &TimeZoneService{
		httpClient:     httpClient,
		baseURL:        cfg.APIURL,
		maxAttempts:    maxAttempts,
		initialBackoff: cfg.InitialBackoff,
		cache:          zoneCache,
		logger:         logger,
	}
}

type timeZoneResponse struct {
	TimeZone string `json:"timeZone"`
}

// retryableStatusError marks a response worth another attempt.
type retryableStatusError struct {
	status int
	body   string
}

func (e *retryableStatusError) Error() string {
	return fmt.Sprintf("time zone API returned status %d: %s", e.status, e.body)
}

// Resolve returns the zone name for location ("lat,long"). It makes at most
// maxAttempts calls; transport errors, 429 and 5xx are retried with
// exponential backoff, everything else fails immediately.
func (s *TimeZoneService) Resolve(ctx context.Context, location string) (string, error) {
	lat, long, err := splitLocation(location)
	if err != nil {
		return "", err
	}
	key := lat + "," + long

	if zone, ok := s.cache.Get(ctx, key); ok {
		if _, err := time.LoadLocation(zone); err == nil {
			return zone, nil
		}
	}

	query := url.Values{}
	query.Set("latitude", lat)
	query.Set("longitude", long)
	endpoint := s.baseURL + "?" + query.Encode()

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = s.initialBackoff
	policy.MaxElapsedTime = 0

	attempt := 0
	operation := func() (string, error) {
		attempt++
		return s.fetch(ctx, endpoint)
	}
	notify := func(err error, wait time.Duration) {
		s.logger.Warn("Time zone lookup failed, retrying",
			zap.String("location", key),
			zap.Int("attempt", attempt),
			zap.Int("max_attempts", s.maxAttempts),
			zap.Duration("backoff", wait),
			zap.Error(err),
		)
	}

	zone, err := backoff.RetryNotifyWithData(
		operation,
		backoff.WithContext(backoff.WithMaxRetries(policy, uint64(s.maxAttempts-1)), ctx),
		notify,
	)
	if err != nil {
		s.logger.Error("Time zone lookup gave up",
			zap.String("location", key),
			zap.Int("attempts", attempt),
			zap.Error(err),
		)
		return "", fmt.Errorf("%w for %q after %d attempt(s): %w", ErrTimeZoneNotFound, key, attempt, err)
	}

	s.cache.Set(ctx, key, zone)
	return zone, nil
}

func (s *TimeZoneService) fetch(ctx context.Context, endpoint string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", backoff.Permanent(fmt.Errorf("failed to create request: %w", err))
	}
	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", backoff.Permanent(err)
		}
		return "", fmt.Errorf("time zone request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		statusErr := &retryableStatusError{status: resp.StatusCode, body: strings.TrimSpace(string(bodyBytes))}
		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			return "", statusErr
		}
		return "", backoff.Permanent(statusErr)
	}

	var body timeZoneResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("failed to decode time zone response: %w", err)
	}
	if body.TimeZone == "" {
		return "", backoff.Permanent(fmt.Errorf("response has no timeZone field"))
	}
	if _, err := time.LoadLocation(body.TimeZone); err != nil {
		return "", backoff.Permanent(fmt.Errorf("unknown time zone %q: %w", body.TimeZone, err))
	}

	return body.TimeZone, nil
}

// splitLocation parses "lat,long" after removing spaces.
func splitLocation(location string) (string, string, error) {
	normalized := strings.ReplaceAll(location, " ", "")
	parts := strings.Split(normalized, ",")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("%w: %q", ErrInvalidLocation, location)
	}
	lat, err := strconv.ParseFloat(parts[0], 64)
	if err != nil || lat < -90 || lat > 90 {
		return "", "", fmt.Errorf("%w: latitude %q", ErrInvalidLocation, parts[0])
	}
	long, err := strconv.ParseFloat(parts[1], 64)
	if err != nil || long < -180 || long > 180 {
		return "", "", fmt.Errorf("%w: longitude %q", ErrInvalidLocation, parts[1])
	}
	return parts[0], parts[1], nil
}
