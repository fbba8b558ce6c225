package analyzer

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/jsky9292/youtubedata-analytics/internal/domain"
	"github.com/jsky9292/youtubedata-analytics/internal/util"
)

// deriveVelocity returns a copy of videos with view velocity and upload age
// filled in. A video with a missing or unparseable publish date counts as one
// day old, so its velocity equals its raw view count.
func deriveVelocity(videos []domain.Video, now time.Time) []domain.Video {
	out := make([]domain.Video, len(videos))
	copy(out, videos)

	for i := range out {
		v := &out[i]
		pub, ok := util.ParseTimestamp(v.PublishedAt)
		if !ok {
			v.ViewVelocity = float64(v.ViewCount)
			v.DaysSinceUpload = 1
			continue
		}
		days := util.Max(1, int(now.Sub(pub).Hours()/24))
		v.DaysSinceUpload = days
		v.ViewVelocity = util.Round1(float64(v.ViewCount) / float64(days))
	}

	return out
}

// metricsStats summarizes the population per metric. The rate metrics only
// count videos with at least one view; a zero-view video has no meaningful
// rate. Requires at least two videos, otherwise returns an empty map.
func metricsStats(videos []domain.Video) map[string]domain.Stats {
	stats := make(map[string]domain.Stats)
	if len(videos) < 2 {
		return stats
	}

	views := make([]float64, len(videos))
	likes := make([]float64, len(videos))
	comments := make([]float64, len(videos))
	velocities := make([]float64, len(videos))
	for i, v := range videos {
		views[i] = float64(v.ViewCount)
		likes[i] = float64(v.LikeCount)
		comments[i] = float64(v.CommentCount)
		velocities[i] = v.ViewVelocity
	}
	stats["view_count"] = describe(views)
	stats["like_count"] = describe(likes)
	stats["comment_count"] = describe(comments)
	stats["view_velocity"] = describe(velocities)

	var engagementRates, likeRatios, commentRates []float64
	for _, v := range videos {
		if v.ViewCount <= 0 {
			continue
		}
		views := float64(v.ViewCount)
		engagementRates = append(engagementRates, float64(v.LikeCount+v.CommentCount)/views*100)
		likeRatios = append(likeRatios, float64(v.LikeCount)/views*100)
		commentRates = append(commentRates, float64(v.CommentCount)/views*100)
	}
	if len(engagementRates) > 0 {
		stats["engagement_rate"] = describe(engagementRates)
		stats["like_ratio"] = describe(likeRatios)
		stats["comment_rate"] = describe(commentRates)
	}

	return stats
}

var isoDurationRe = regexp.MustCompile(`^PT(?:(\d+)H)?(?:(\d+)M)?(?:(\d+)S)?$`)

// durationToSeconds parses both the data API's ISO 8601 form (PT1H2M3S) and
// the colon form (1:02:03, 4:05) stored records use. Returns 0 on anything
// unparseable.
func durationToSeconds(duration string) int {
	duration = strings.TrimSpace(duration)
	if duration == "" {
		return 0
	}

	if m := isoDurationRe.FindStringSubmatch(duration); m != nil {
		h, _ := strconv.Atoi(m[1])
		min, _ := strconv.Atoi(m[2])
		s, _ := strconv.Atoi(m[3])
		return h*3600 + min*60 + s
	}

	parts := strings.Split(duration, ":")
	switch len(parts) {
	case 3:
		h, err1 := strconv.Atoi(parts[0])
		min, err2 := strconv.Atoi(parts[1])
		s, err3 := strconv.Atoi(parts[2])
		if err1 != nil || err2 != nil || err3 != nil {
			return 0
		}
		return h*3600 + min*60 + s
	case 2:
		min, err1 := strconv.Atoi(parts[0])
		s, err2 := strconv.Atoi(parts[1])
		if err1 != nil || err2 != nil {
			return 0
		}
		return min*60 + s
	}
	return 0
}

// viewsPerMinuteStats summarizes views-per-minute across the videos that have
// both a duration and views.
func viewsPerMinuteStats(videos []domain.Video) (meanVPM, stdevVPM float64) {
	var values []float64
	for _, v := range videos {
		seconds := durationToSeconds(v.Duration)
		if seconds > 0 && v.ViewCount > 0 {
			values = append(values, float64(v.ViewCount)/(float64(seconds)/60))
		}
	}
	if len(values) == 0 {
		return 0, 0
	}
	return mean(values), stdev(values)
}
