package analyzer

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/jsky9292/youtubedata-analytics/internal/domain"
	"github.com/jsky9292/youtubedata-analytics/internal/util"
)

// counter tallies strings while remembering first-seen order, so ties in
// mostCommon resolve deterministically.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: make(map[string]int)}
}

func (c *counter) add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *counter) mostCommon(n int) []domain.WordCount {
	keys := make([]string, len(c.order))
	copy(keys, c.order)
	sort.SliceStable(keys, func(i, j int) bool {
		return c.counts[keys[i]] > c.counts[keys[j]]
	})
	if n > 0 && len(keys) > n {
		keys = keys[:n]
	}
	out := make([]domain.WordCount, len(keys))
	for i, k := range keys {
		out[i] = domain.WordCount{Word: k, Count: c.counts[k]}
	}
	return out
}

func (c *counter) toMap() map[string]int {
	out := make(map[string]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}

var (
	titleWordRe   = regexp.MustCompile(`[가-힣]+|[a-zA-Z]+|\d+`)
	koreanWordRe  = regexp.MustCompile(`[가-힣]+`)
	digitRe       = regexp.MustCompile(`\d`)
	titleEmojiRe  = regexp.MustCompile(`[\x{1F300}-\x{1F9FF}]`)
)

// titlePatterns summarizes the titles of one video subset.
func titlePatterns(videos []domain.Video) *domain.TitlePatterns {
	lengths := make([]float64, len(videos))
	words := newCounter()
	flags := domain.TitlePatternFlags{}

	minLen, maxLen := 0, 0
	for i, v := range videos {
		length := util.RuneLen(v.Title)
		lengths[i] = float64(length)
		if i == 0 || length < minLen {
			minLen = length
		}
		if length > maxLen {
			maxLen = length
		}

		for _, w := range titleWordRe.FindAllString(v.Title, -1) {
			if util.RuneLen(w) > 1 {
				words.add(strings.ToLower(w))
			}
		}

		if digitRe.MatchString(v.Title) {
			flags.HasNumbers++
		}
		if strings.Contains(v.Title, "?") {
			flags.HasQuestion++
		}
		if titleEmojiRe.MatchString(v.Title) {
			flags.HasEmoji++
		}
		if strings.Contains(v.Title, "[") || strings.Contains(v.Title, "【") {
			flags.HasBrackets++
		}
	}

	return &domain.TitlePatterns{
		AvgLength:     int(math.Round(mean(lengths))),
		MinLength:     minLen,
		MaxLength:     maxLen,
		TopWords:      words.mostCommon(10),
		Patterns:      flags,
		TotalAnalyzed: len(videos),
	}
}

// durationPatterns buckets a subset's video lengths.
func durationPatterns(videos []domain.Video) *domain.DurationPatterns {
	var durations []int
	for _, v := range videos {
		if d := durationToSeconds(v.Duration); d > 0 {
			durations = append(durations, d)
		}
	}
	if len(durations) == 0 {
		return &domain.DurationPatterns{Distribution: map[string]int{}}
	}

	dist := map[string]int{
		"shorts (1분 이하)":  0,
		"short (1-5분)":    0,
		"medium (5-10분)":  0,
		"long (10-20분)":   0,
		"very_long (20분+)": 0,
	}
	total := 0
	for _, d := range durations {
		total += d
		switch {
		case d <= 60:
			dist["shorts (1분 이하)"]++
		case d <= 300:
			dist["short (1-5분)"]++
		case d <= 600:
			dist["medium (5-10분)"]++
		case d <= 1200:
			dist["long (10-20분)"]++
		default:
			dist["very_long (20분+)"]++
		}
	}

	return &domain.DurationPatterns{
		AvgDurationSeconds: int(math.Round(float64(total) / float64(len(durations)))),
		Distribution:       dist,
	}
}

// tagAnalysis summarizes tag usage of one video subset.
func tagAnalysis(videos []domain.Video) *domain.TagAnalysis {
	tags := newCounter()
	totalTags := 0
	videosWithTags := 0

	for _, v := range videos {
		if len(v.Tags) > 0 {
			videosWithTags++
		}
		for _, t := range v.Tags {
			tags.add(t)
			totalTags++
		}
	}

	avgTags := 0
	if len(videos) > 0 {
		avgTags = int(math.Round(float64(totalTags) / float64(len(videos))))
	}

	return &domain.TagAnalysis{
		TopTags:         tags.mostCommon(15),
		AvgTagsPerVideo: avgTags,
		VideosWithTags:  videosWithTags,
		TotalUniqueTags: len(tags.counts),
	}
}

// uploadTimes reports the most common publish weekdays and hours of a subset.
func uploadTimes(videos []domain.Video) *domain.UploadTimeAnalysis {
	weekdays := newCounter()
	hourCounts := make(map[int]int)
	var hourOrder []int

	for _, v := range videos {
		t, ok := util.ParseTimestamp(v.PublishedAt)
		if !ok {
			continue
		}
		weekdays.add(t.Weekday().String())
		h := t.Hour()
		if _, seen := hourCounts[h]; !seen {
			hourOrder = append(hourOrder, h)
		}
		hourCounts[h]++
	}

	sort.SliceStable(hourOrder, func(i, j int) bool {
		return hourCounts[hourOrder[i]] > hourCounts[hourOrder[j]]
	})
	if len(hourOrder) > 5 {
		hourOrder = hourOrder[:5]
	}
	bestHours := make([]domain.HourCount, 0, len(hourOrder))
	for _, h := range hourOrder {
		bestHours = append(bestHours, domain.HourCount{Hour: h, Count: hourCounts[h]})
	}

	return &domain.UploadTimeAnalysis{
		BestWeekdays: weekdays.mostCommon(3),
		BestHours:    bestHours,
	}
}

// contentPatterns summarizes Korean title keywords across the whole channel.
func contentPatterns(videos []domain.Video) domain.ContentPatterns {
	keywords := newCounter()
	total := 0
	for _, v := range videos {
		for _, k := range koreanWordRe.FindAllString(v.Title, -1) {
			if util.RuneLen(k) > 1 {
				keywords.add(k)
				total++
			}
		}
	}

	diversity := 0.0
	if total > 0 {
		diversity = float64(len(keywords.counts)) / float64(total)
	}

	return domain.ContentPatterns{
		TopKeywords:      keywords.mostCommon(20),
		ContentDiversity: diversity,
	}
}

const (
	msgUploadInsufficient = "분석할 영상이 부족합니다"
	msgUploadNoDates      = "날짜 데이터 부족"
)

// analyzeUploadPatterns derives the upload cadence from publish dates.
func (a *Analyzer) analyzeUploadPatterns(videos []domain.Video) domain.UploadPatterns {
	if len(videos) < a.cfg.Thresholds.MinUploadInterval {
		return domain.UploadPatterns{Message: msgUploadInsufficient}
	}

	var dates []time.Time
	for _, v := range videos {
		if t, ok := util.ParseTimestamp(v.PublishedAt); ok {
			dates = append(dates, t)
		}
	}
	if len(dates) < 2 {
		return domain.UploadPatterns{Message: msgUploadNoDates}
	}

	sort.Slice(dates, func(i, j int) bool { return dates[i].After(dates[j]) })

	totalDays := 0
	for i := 0; i < len(dates)-1; i++ {
		totalDays += int(dates[i].Sub(dates[i+1]).Hours() / 24)
	}
	avgInterval := float64(totalDays) / float64(len(dates)-1)

	frequency := "월 1-2회"
	switch {
	case avgInterval < 2:
		frequency = "매일"
	case avgInterval < 4:
		frequency = "주 2-3회"
	case avgInterval < 8:
		frequency = "주 1회"
	case avgInterval < 15:
		frequency = "격주"
	}

	weekdays := newCounter()
	monthly := newCounter()
	for _, d := range dates {
		weekdays.add(d.Weekday().String())
		monthly.add(d.Format("2006-01"))
	}

	monthKeys := make([]string, 0, len(monthly.counts))
	for k := range monthly.counts {
		monthKeys = append(monthKeys, k)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(monthKeys)))
	if len(monthKeys) > 6 {
		monthKeys = monthKeys[:6]
	}
	monthlyDist := make(map[string]int, len(monthKeys))
	for _, k := range monthKeys {
		monthlyDist[k] = monthly.counts[k]
	}

	return domain.UploadPatterns{
		AvgUploadIntervalDays: util.Round1(avgInterval),
		UploadFrequency:       frequency,
		WeekdayDistribution:   weekdays.toMap(),
		MonthlyDistribution:   monthlyDist,
		TotalVideosAnalyzed:   len(dates),
	}
}
