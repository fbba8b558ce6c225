package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jsky9292/youtubedata-analytics/internal/service/cache"
)

// ResolverService scrapes a channel page's canonical link when the data API
// cannot resolve a handle. It is the fallback path only; the API search runs
// first and usually wins.
type ResolverService struct {
	httpClient *http.Client
	cache      *cache.CacheService
	logger     *zap.Logger
	baseURL    string
}

const (
	youtubeBaseURL      = "https://www.youtube.com"
	resolverCacheExpiry = 30 * time.Minute
	resolverTimeout     = 15 * time.Second
)

var canonicalChannelRe = regexp.MustCompile(`/channel/(UC[a-zA-Z0-9_-]{22})`)

func NewResolverService(cacheService *cache.CacheService, logger *zap.Logger) *ResolverService {
	return &ResolverService{
		httpClient: &http.Client{
			Timeout: resolverTimeout,
		},
		cache:   cacheService,
		logger:  logger,
		baseURL: youtubeBaseURL,
	}
}

// ResolveHandle fetches the public channel page for a handle and extracts the
// canonical UC id from the page head.
func (rs *ResolverService) ResolveHandle(ctx context.Context, handle string) (string, error) {
	clean := strings.TrimSpace(strings.TrimPrefix(handle, "@"))
	if clean == "" {
		return "", fmt.Errorf("empty handle")
	}

	cacheKey := fmt.Sprintf("resolver:handle:%s", clean)
	var cached string
	if err := rs.cache.Get(ctx, cacheKey, &cached); err == nil && cached != "" {
		rs.logger.Debug("Resolver cache hit", zap.String("handle", clean))
		return cached, nil
	}

	pageURL := fmt.Sprintf("%s/@%s", rs.baseURL, url.PathEscape(clean))
	rs.logger.Info("Resolving handle via channel page (FALLBACK MODE)",
		zap.String("handle", clean),
		zap.String("url", pageURL))

	channelID, err := rs.scrapeChannelID(ctx, pageURL)
	if err != nil {
		return "", fmt.Errorf("handle resolution failed: %w", err)
	}

	if err := rs.cache.Set(ctx, cacheKey, channelID, resolverCacheExpiry); err != nil {
		rs.logger.Warn("Failed to cache resolved handle", zap.Error(err))
	}

	rs.logger.Info("Handle resolved",
		zap.String("handle", clean),
		zap.String("channel_id", channelID))

	return channelID, nil
}

// ResolveURL extracts the canonical channel id from any channel page URL.
func (rs *ResolverService) ResolveURL(ctx context.Context, pageURL string) (string, error) {
	if !strings.Contains(pageURL, "youtube.com") {
		return "", fmt.Errorf("not a YouTube URL: %s", pageURL)
	}
	return rs.scrapeChannelID(ctx, pageURL)
}

func (rs *ResolverService) scrapeChannelID(ctx context.Context, pageURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", pageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (compatible; AnalyticsBot/1.0)")
	req.Header.Set("Accept-Language", "ko-KR,ko;q=0.9,en;q=0.8")

	resp, err := rs.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("HTTP request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return "", fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", fmt.Errorf("HTML parse failed: %w", err)
	}

	// The canonical link is authoritative; og:url and the identifier meta are
	// fallbacks for pages served in a reduced shell.
	if href, ok := doc.Find(`link[rel="canonical"]`).Attr("href"); ok {
		if m := canonicalChannelRe.FindStringSubmatch(href); m != nil {
			return m[1], nil
		}
	}
	if content, ok := doc.Find(`meta[property="og:url"]`).Attr("content"); ok {
		if m := canonicalChannelRe.FindStringSubmatch(content); m != nil {
			return m[1], nil
		}
	}
	if content, ok := doc.Find(`meta[itemprop="identifier"]`).Attr("content"); ok {
		if strings.HasPrefix(content, "UC") && len(content) == 24 {
			return content, nil
		}
	}

	return "", &StructureChangedError{
		Message: "No canonical channel link found - HTML structure may have changed",
	}
}

// StructureChangedError signals that the channel page markup no longer carries
// the canonical link where we expect it.
type StructureChangedError struct {
	Message string
}

func (e *StructureChangedError) Error() string {
	return e.Message
}

func IsStructureError(err error) bool {
	_, ok := err.(*StructureChangedError)
	return ok
}
