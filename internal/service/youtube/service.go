package youtube

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	"google.golang.org/api/youtube/v3"

	"github.com/jsky9292/youtubedata-analytics/internal/constants"
	"github.com/jsky9292/youtubedata-analytics/internal/domain"
	"github.com/jsky9292/youtubedata-analytics/internal/service/cache"
	"github.com/jsky9292/youtubedata-analytics/pkg/errors"
)

// Service wraps the data API v3 with quota bookkeeping and Redis caching.
// Quota resets at midnight Pacific, matching the API console's accounting.
type Service struct {
	api        *youtube.Service
	cache      *cache.CacheService
	logger     *zap.Logger
	quotaUsed  int
	quotaMu    sync.Mutex
	quotaReset time.Time
}

var (
	channelIDRe     = regexp.MustCompile(`^UC[a-zA-Z0-9_-]{22}$`)
	handleURLRe     = regexp.MustCompile(`youtube\.com/@([^/?\s&]+)`)
	handleDirectRe  = regexp.MustCompile(`^@([^/?\s&]+)$`)
	handleBareRe    = regexp.MustCompile(`^([가-힣a-zA-Z0-9_.]+)$`)
	videoURLRe      = regexp.MustCompile(`youtube\.com/watch\?v=([a-zA-Z0-9_-]+)`)
	channelURLRe    = regexp.MustCompile(`youtube\.com/channel/([a-zA-Z0-9_-]{24})`)
	customURLRe     = regexp.MustCompile(`youtube\.com/c/([^/?\s&]+)`)
	legacyUserURLRe = regexp.MustCompile(`youtube\.com/user/([^/?\s&]+)`)
)

func NewService(apiKey string, cacheService *cache.CacheService, logger *zap.Logger) (*Service, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("YouTube API key is required")
	}

	ctx := context.Background()
	api, err := youtube.NewService(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create YouTube service: %w", err)
	}

	s := &Service{
		api:        api,
		cache:      cacheService,
		logger:     logger,
		quotaReset: nextQuotaReset(),
	}

	logger.Info("YouTube service initialized",
		zap.Time("quotaReset", s.quotaReset))

	return s, nil
}

func nextQuotaReset() time.Time {
	pt, _ := time.LoadLocation("America/Los_Angeles")
	now := time.Now().In(pt)
	return time.Date(now.Year(), now.Month(), now.Day()+1, 0, 0, 0, 0, pt)
}

func (s *Service) checkQuota(cost int) error {
	s.quotaMu.Lock()
	defer s.quotaMu.Unlock()

	if time.Now().After(s.quotaReset) {
		s.quotaUsed = 0
		s.quotaReset = nextQuotaReset()
		s.logger.Info("YouTube API quota auto-reset",
			zap.Time("nextReset", s.quotaReset))
	}

	if s.quotaUsed+cost > constants.QuotaCost.DailyBudget-constants.QuotaCost.SafetyMargin {
		return errors.NewQuotaError(
			fmt.Sprintf("YouTube API 할당량 초과: %d/%d 사용", s.quotaUsed, constants.QuotaCost.DailyBudget),
			s.quotaUsed, constants.QuotaCost.DailyBudget)
	}

	return nil
}

func (s *Service) consumeQuota(cost int) {
	s.quotaMu.Lock()
	defer s.quotaMu.Unlock()

	s.quotaUsed += cost
	remaining := constants.QuotaCost.DailyBudget - s.quotaUsed

	s.logger.Debug("YouTube API quota consumed",
		zap.Int("cost", cost),
		zap.Int("used", s.quotaUsed),
		zap.Int("remaining", remaining))

	if remaining < constants.QuotaCost.SafetyMargin {
		s.logger.Warn("YouTube API quota running low",
			zap.Int("remaining", remaining),
			zap.Time("resetTime", s.quotaReset))
	}
}

func (s *Service) GetQuotaStatus() (used int, remaining int, resetTime time.Time) {
	s.quotaMu.Lock()
	defer s.quotaMu.Unlock()

	if time.Now().After(s.quotaReset) {
		return 0, constants.QuotaCost.DailyBudget, nextQuotaReset()
	}
	return s.quotaUsed, constants.QuotaCost.DailyBudget - s.quotaUsed, s.quotaReset
}

// ResolveChannelID turns any accepted channel reference into a canonical UC id.
// Accepted forms: the id itself, @handle (Korean handles included), channel,
// custom and legacy user URLs, a video URL, or a free-text channel name.
func (s *Service) ResolveChannelID(ctx context.Context, input string) (string, error) {
	decoded := strings.TrimSpace(input)
	for i := 0; i < 3; i++ {
		next, err := url.QueryUnescape(decoded)
		if err != nil || next == decoded {
			break
		}
		decoded = next
	}

	if channelIDRe.MatchString(decoded) {
		return decoded, nil
	}

	if cached, err := s.cache.GetResolvedChannelID(ctx, decoded); err == nil && cached != "" {
		s.logger.Debug("Channel resolution cache hit", zap.String("query", decoded))
		return cached, nil
	}

	id, err := s.resolve(ctx, decoded)
	if err != nil {
		return "", err
	}

	if cacheErr := s.cache.AddResolvedChannel(ctx, decoded, id); cacheErr != nil {
		s.logger.Warn("Failed to cache resolved channel", zap.Error(cacheErr))
	}
	return id, nil
}

func (s *Service) resolve(ctx context.Context, decoded string) (string, error) {
	for _, re := range []*regexp.Regexp{handleURLRe, handleDirectRe, handleBareRe} {
		if m := re.FindStringSubmatch(decoded); m != nil {
			handle := strings.TrimSpace(m[1])
			handle = strings.SplitN(handle, "?", 2)[0]
			handle = strings.SplitN(handle, "&", 2)[0]
			if handle == "" {
				continue
			}
			if id, err := s.channelIDByHandle(ctx, handle); err == nil && id != "" {
				return id, nil
			}
		}
	}

	if m := videoURLRe.FindStringSubmatch(decoded); m != nil {
		videoID := strings.SplitN(m[1], "&", 2)[0]
		if video, err := s.GetVideoDetails(ctx, videoID); err == nil && video.ChannelID != "" {
			return video.ChannelID, nil
		}
	}

	if m := channelURLRe.FindStringSubmatch(decoded); m != nil {
		return m[1], nil
	}
	for _, re := range []*regexp.Regexp{customURLRe, legacyUserURLRe} {
		if m := re.FindStringSubmatch(decoded); m != nil {
			if id, err := s.channelIDByUsername(ctx, m[1]); err == nil && id != "" {
				return id, nil
			}
		}
	}

	return s.searchChannel(ctx, decoded)
}

// channelIDByHandle resolves a handle through search because channels.list
// forHandle misses many non-ASCII handles.
func (s *Service) channelIDByHandle(ctx context.Context, handle string) (string, error) {
	clean := strings.TrimSpace(strings.TrimPrefix(handle, "@"))

	if err := s.checkQuota(constants.QuotaCost.SearchList); err != nil {
		return "", err
	}

	response, err := s.api.Search.List([]string{"snippet"}).
		Q("@" + clean).
		Type("channel").
		MaxResults(10).
		Context(ctx).Do()
	if err != nil {
		return "", s.wrapAPIError(err)
	}
	s.consumeQuota(constants.QuotaCost.SearchList)

	if len(response.Items) == 0 {
		return "", errors.NewAPIError(fmt.Sprintf("채널을 찾을 수 없습니다: @%s", clean), 404, nil)
	}

	lower := strings.ToLower(clean)
	for _, item := range response.Items {
		title := strings.ToLower(item.Snippet.Title)
		if strings.Contains(title, lower) || strings.Contains(lower, title) {
			return item.Snippet.ChannelId, nil
		}
	}
	return response.Items[0].Snippet.ChannelId, nil
}

func (s *Service) channelIDByUsername(ctx context.Context, username string) (string, error) {
	if err := s.checkQuota(constants.QuotaCost.ChannelsList); err != nil {
		return "", err
	}

	response, err := s.api.Channels.List([]string{"id"}).
		ForUsername(username).
		Context(ctx).Do()
	if err == nil && len(response.Items) > 0 {
		s.consumeQuota(constants.QuotaCost.ChannelsList)
		return response.Items[0].Id, nil
	}

	return s.searchChannel(ctx, username)
}

func (s *Service) searchChannel(ctx context.Context, query string) (string, error) {
	if err := s.checkQuota(constants.QuotaCost.SearchList); err != nil {
		return "", err
	}

	response, err := s.api.Search.List([]string{"snippet"}).
		Q(query).
		Type("channel").
		MaxResults(1).
		Context(ctx).Do()
	if err != nil {
		return "", s.wrapAPIError(err)
	}
	s.consumeQuota(constants.QuotaCost.SearchList)

	if len(response.Items) == 0 {
		return "", errors.NewAPIError(fmt.Sprintf("채널을 찾을 수 없습니다: %s", query), 404, nil)
	}
	return response.Items[0].Snippet.ChannelId, nil
}

func (s *Service) GetChannelInfo(ctx context.Context, channelID string) (*domain.Channel, error) {
	cacheKey := fmt.Sprintf("youtube:channel:%s", channelID)
	if cached, found := s.cache.GetChannel(ctx, cacheKey); found {
		s.logger.Debug("Channel info cache hit", zap.String("channel", channelID))
		return cached, nil
	}

	if err := s.checkQuota(constants.QuotaCost.ChannelsList); err != nil {
		return nil, err
	}

	response, err := s.api.Channels.List([]string{"snippet", "statistics", "contentDetails", "brandingSettings"}).
		Id(channelID).
		Context(ctx).Do()
	if err != nil {
		return nil, s.wrapAPIError(err)
	}
	s.consumeQuota(constants.QuotaCost.ChannelsList)

	if len(response.Items) == 0 {
		return nil, errors.NewAPIError(fmt.Sprintf("채널을 찾을 수 없습니다: %s", channelID), 404, nil)
	}

	item := response.Items[0]
	channel := &domain.Channel{
		ChannelID:       channelID,
		ChannelName:     item.Snippet.Title,
		ChannelURL:      fmt.Sprintf("https://www.youtube.com/channel/%s", channelID),
		Description:     item.Snippet.Description,
		SubscriberCount: int64(item.Statistics.SubscriberCount),
		VideoCount:      int64(item.Statistics.VideoCount),
		ViewCount:       int64(item.Statistics.ViewCount),
		PublishedAt:     item.Snippet.PublishedAt,
		Country:         item.Snippet.Country,
		CustomURL:       item.Snippet.CustomUrl,
	}
	if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.High != nil {
		channel.ThumbnailURL = item.Snippet.Thumbnails.High.Url
	}
	if item.ContentDetails != nil && item.ContentDetails.RelatedPlaylists != nil {
		channel.UploadsPlaylistID = item.ContentDetails.RelatedPlaylists.Uploads
	}

	s.cache.SetChannel(ctx, cacheKey, channel, constants.CacheTTL.ChannelInfo)
	return channel, nil
}

// GetChannelVideos pages through the channel's uploads playlist and hydrates
// each page with full statistics in one videos.list call.
func (s *Service) GetChannelVideos(ctx context.Context, channelID string, maxResults int) ([]domain.Video, error) {
	if maxResults <= 0 || maxResults > constants.AnalysisLimits.MaxVideos {
		maxResults = constants.AnalysisLimits.MaxVideos
	}

	cacheKey := fmt.Sprintf("youtube:videos:%s:%d", channelID, maxResults)
	if cached, found := s.cache.GetVideos(ctx, cacheKey); found {
		s.logger.Debug("Video list cache hit",
			zap.String("channel", channelID),
			zap.Int("videos", len(cached)))
		return cached, nil
	}

	channel, err := s.GetChannelInfo(ctx, channelID)
	if err != nil {
		return nil, err
	}
	if channel.UploadsPlaylistID == "" {
		return nil, errors.NewAPIError("업로드 플레이리스트를 찾을 수 없습니다", 404,
			map[string]any{"channel_id": channelID})
	}

	videos := make([]domain.Video, 0, maxResults)
	pageToken := ""

	for len(videos) < maxResults {
		pageSize := int64(constants.APIConfig.MaxPageSize)
		if remaining := maxResults - len(videos); remaining < constants.APIConfig.MaxPageSize {
			pageSize = int64(remaining)
		}

		cost := constants.QuotaCost.PlaylistItemsList + constants.QuotaCost.VideosList
		if err := s.checkQuota(cost); err != nil {
			return nil, err
		}

		playlistCall := s.api.PlaylistItems.List([]string{"contentDetails", "snippet"}).
			PlaylistId(channel.UploadsPlaylistID).
			MaxResults(pageSize)
		if pageToken != "" {
			playlistCall = playlistCall.PageToken(pageToken)
		}
		playlistResponse, err := playlistCall.Context(ctx).Do()
		if err != nil {
			return nil, s.wrapAPIError(err)
		}

		videoIDs := make([]string, 0, len(playlistResponse.Items))
		for _, item := range playlistResponse.Items {
			if item.ContentDetails != nil && item.ContentDetails.VideoId != "" {
				videoIDs = append(videoIDs, item.ContentDetails.VideoId)
			}
		}
		if len(videoIDs) == 0 {
			break
		}

		videosResponse, err := s.api.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
			Id(videoIDs...).
			Context(ctx).Do()
		if err != nil {
			return nil, s.wrapAPIError(err)
		}
		s.consumeQuota(cost)

		for _, item := range videosResponse.Items {
			videos = append(videos, parseVideo(item, channelID))
		}

		pageToken = playlistResponse.NextPageToken
		if pageToken == "" {
			break
		}
	}

	s.cache.SetVideos(ctx, cacheKey, videos, constants.CacheTTL.VideoList)

	s.logger.Info("Channel videos fetched",
		zap.String("channel", channelID),
		zap.Int("videos", len(videos)))

	return videos, nil
}

func (s *Service) GetVideoDetails(ctx context.Context, videoID string) (*domain.Video, error) {
	if err := s.checkQuota(constants.QuotaCost.VideosList); err != nil {
		return nil, err
	}

	response, err := s.api.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(videoID).
		Context(ctx).Do()
	if err != nil {
		return nil, s.wrapAPIError(err)
	}
	s.consumeQuota(constants.QuotaCost.VideosList)

	if len(response.Items) == 0 {
		return nil, errors.NewAPIError(fmt.Sprintf("영상을 찾을 수 없습니다: %s", videoID), 404, nil)
	}

	item := response.Items[0]
	video := parseVideo(item, item.Snippet.ChannelId)
	return &video, nil
}

// SearchVideos runs a relevance-ordered keyword search and hydrates the hits.
func (s *Service) SearchVideos(ctx context.Context, query string, maxResults int) ([]domain.Video, error) {
	if maxResults <= 0 || maxResults > constants.APIConfig.MaxPageSize {
		maxResults = 25
	}

	cost := constants.QuotaCost.SearchList + constants.QuotaCost.VideosList
	if err := s.checkQuota(cost); err != nil {
		return nil, err
	}

	searchResponse, err := s.api.Search.List([]string{"id", "snippet"}).
		Q(query).
		Type("video").
		MaxResults(int64(maxResults)).
		Order("relevance").
		Context(ctx).Do()
	if err != nil {
		return nil, s.wrapAPIError(err)
	}

	videoIDs := make([]string, 0, len(searchResponse.Items))
	for _, item := range searchResponse.Items {
		if item.Id != nil && item.Id.VideoId != "" {
			videoIDs = append(videoIDs, item.Id.VideoId)
		}
	}
	if len(videoIDs) == 0 {
		s.consumeQuota(constants.QuotaCost.SearchList)
		return []domain.Video{}, nil
	}

	videosResponse, err := s.api.Videos.List([]string{"snippet", "statistics", "contentDetails"}).
		Id(videoIDs...).
		Context(ctx).Do()
	if err != nil {
		return nil, s.wrapAPIError(err)
	}
	s.consumeQuota(cost)

	videos := make([]domain.Video, 0, len(videosResponse.Items))
	for _, item := range videosResponse.Items {
		videos = append(videos, parseVideo(item, item.Snippet.ChannelId))
	}
	return videos, nil
}

func parseVideo(item *youtube.Video, channelID string) domain.Video {
	video := domain.Video{
		VideoID:   item.Id,
		ChannelID: channelID,
	}
	if item.Snippet != nil {
		video.Title = item.Snippet.Title
		video.Description = truncate(item.Snippet.Description, 500)
		video.PublishedAt = item.Snippet.PublishedAt
		video.Tags = item.Snippet.Tags
		video.CategoryID = item.Snippet.CategoryId
		if item.Snippet.Thumbnails != nil && item.Snippet.Thumbnails.High != nil {
			video.ThumbnailURL = item.Snippet.Thumbnails.High.Url
		}
	}
	if item.Statistics != nil {
		video.ViewCount = int64(item.Statistics.ViewCount)
		video.LikeCount = int64(item.Statistics.LikeCount)
		video.CommentCount = int64(item.Statistics.CommentCount)
	}
	if item.ContentDetails != nil {
		video.Duration = item.ContentDetails.Duration
	}
	return video
}

func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}

func (s *Service) wrapAPIError(err error) error {
	if apiErr, ok := err.(*googleapi.Error); ok && apiErr.Code == 403 {
		s.quotaMu.Lock()
		used := s.quotaUsed
		s.quotaMu.Unlock()
		return errors.NewQuotaError("YouTube API 할당량이 소진되었습니다", used, constants.QuotaCost.DailyBudget)
	}
	return errors.NewAPIError("YouTube API 오류", 502, map[string]any{"cause": err.Error()})
}
