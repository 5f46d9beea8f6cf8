package calendar

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/username/workhour-report/pkg/dateutil"
	"go.uber.org/zap"
)

const (
	DefaultAPIURL      = "https://feiertage-api.de/api/"
	defaultHTTPTimeout = 10 * time.Second
	defaultCacheTTL    = 24 * time.Hour
)

// APISource implements HolidaySource using a feiertage-api.de compatible API
type APISource struct {
	baseURL    string
	httpClient *http.Client
	logger     *zap.Logger
	cache      map[string]*cachedYear
	cacheMu    sync.RWMutex
	cacheTTL   time.Duration
}

type cachedYear struct {
	data      map[string]string
	fetchedAt time.Time
}

// apiHoliday is one entry of the API response.
// The response is an object keyed by holiday name:
// {"Neujahrstag": {"datum": "2023-01-01", "hinweis": ""}, ...}
type apiHoliday struct {
	Datum   string `json:"datum"`
	Hinweis string `json:"hinweis"`
}

// NewAPISource creates a new APISource instance
func NewAPISource(baseURL string, cacheTTL time.Duration, logger *zap.Logger) *APISource {
	if baseURL == "" {
		baseURL = DefaultAPIURL
	}
	if cacheTTL == 0 {
		cacheTTL = defaultCacheTTL
	}

	return &APISource{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: defaultHTTPTimeout,
		},
		logger:   logger,
		cache:    make(map[string]*cachedYear),
		cacheTTL: cacheTTL,
	}
}

// Holidays returns the public holidays of region in year
func (s *APISource) Holidays(region string, year int) (map[string]string, error) {
	region = strings.ToUpper(region)
	cacheKey := fmt.Sprintf("%s-%d", region, year)

	s.cacheMu.RLock()
	if cached, ok := s.cache[cacheKey]; ok {
		if time.Since(cached.fetchedAt) < s.cacheTTL {
			s.cacheMu.RUnlock()
			s.logger.Debug("Using cached holidays",
				zap.String("region", region),
				zap.Int("year", year))
			return cached.data, nil
		}
	}
	s.cacheMu.RUnlock()

	holidays, err := s.fetchYear(region, year)
	if err != nil {
		return nil, err
	}

	s.cacheMu.Lock()
	s.cache[cacheKey] = &cachedYear{
		data:      holidays,
		fetchedAt: time.Now(),
	}
	s.cacheMu.Unlock()

	return holidays, nil
}

// fetchYear fetches all holidays of one year and region
func (s *APISource) fetchYear(region string, year int) (map[string]string, error) {
	u, err := url.Parse(s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid holiday API URL: %w", err)
	}
	q := u.Query()
	q.Set("jahr", strconv.Itoa(year))
	q.Set("nur_land", region)
	u.RawQuery = q.Encode()

	s.logger.Debug("Fetching holidays",
		zap.String("url", u.String()),
		zap.String("region", region),
		zap.Int("year", year))

	resp, err := s.httpClient.Get(u.String())
	if err != nil {
		return nil, fmt.Errorf("failed to fetch holidays: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("holiday API returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	holidays, err := s.parseResponse(year, body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse holiday response: %w", err)
	}

	s.logger.Info("Holidays fetched from API",
		zap.String("region", region),
		zap.Int("year", year),
		zap.Int("count", len(holidays)))

	return holidays, nil
}

// parseResponse converts the API payload into a date -> name map
func (s *APISource) parseResponse(year int, body []byte) (map[string]string, error) {
	var payload map[string]apiHoliday
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}

	holidays := make(map[string]string, len(payload))
	for name, h := range payload {
		date, err := time.Parse(dateutil.DateLayout, h.Datum)
		if err != nil {
			s.logger.Warn("Failed to parse holiday date",
				zap.String("holiday", name),
				zap.String("date", h.Datum),
				zap.Error(err))
			continue
		}
		if date.Year() != year {
			continue
		}
		holidays[dateutil.Key(date)] = name
	}

	return holidays, nil
}

// ClearCache clears the cache
func (s *APISource) ClearCache() {
	s.cacheMu.Lock()
	defer s.cacheMu.Unlock()

	s.cache = make(map[string]*cachedYear)
	s.logger.Info("Holiday cache cleared")
}
