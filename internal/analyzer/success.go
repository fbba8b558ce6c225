package analyzer

import (
	"fmt"
	"math"
	"strings"

	"github.com/jsky9292/youtubedata-analytics/internal/domain"
	"github.com/jsky9292/youtubedata-analytics/internal/util"
)

const (
	msgNoSuccessful   = "성공한 영상이 없습니다"
	msgNoUnsuccessful = "저조한 영상이 없습니다"
	msgGenericFailure = "시청자 관심 영역 이탈 또는 경쟁 콘텐츠 대비 차별화 부족"
)

func filterByTiers(videos []domain.Video, tiers ...domain.Tier) []domain.Video {
	var out []domain.Video
	for _, v := range videos {
		for _, t := range tiers {
			if v.Classification == t {
				out = append(out, v)
				break
			}
		}
	}
	return out
}

func avgOf(videos []domain.Video, f func(domain.Video) float64) float64 {
	if len(videos) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range videos {
		sum += f(v)
	}
	return sum / float64(len(videos))
}

func titleScoreOf(v domain.Video) float64 {
	if v.TitleAnalysis != nil {
		return v.TitleAnalysis.Score
	}
	return 50
}

func toRankedVideo(v domain.Video, reasons []string) domain.RankedVideo {
	return domain.RankedVideo{
		VideoID:        v.VideoID,
		Title:          v.Title,
		ThumbnailURL:   v.ThumbnailURL,
		ViewCount:      v.ViewCount,
		LikeCount:      v.LikeCount,
		CommentCount:   v.CommentCount,
		ViewVelocity:   v.ViewVelocity,
		EngagementRate: v.EngagementRate,
		LikeRatio:      v.LikeRatio,
		Classification: v.Classification,
		AlgorithmScore: v.AlgorithmScore,
		ScoreBreakdown: v.ScoreBreakdown,
		TitleAnalysis:  v.TitleAnalysis,
		Reasons:        reasons,
	}
}

// analyzeSuccessful deep dives the viral and hit subset. Expects the
// classified list, best first, so the top videos fall out of slicing.
func (a *Analyzer) analyzeSuccessful(classified []domain.Video) domain.SuccessAnalysis {
	successful := filterByTiers(classified, domain.TierViral, domain.TierHit)
	if len(successful) == 0 {
		return domain.SuccessAnalysis{
			Message:   msgNoSuccessful,
			TopVideos: []domain.RankedVideo{},
			Patterns:  []string{},
		}
	}

	titles := titlePatterns(successful)
	durations := durationPatterns(successful)

	topVideos := make([]domain.RankedVideo, 0, 7)
	for _, v := range successful {
		if len(topVideos) == 7 {
			break
		}
		topVideos = append(topVideos, toRankedVideo(v, a.videoSuccessReasons(v)))
	}

	return domain.SuccessAnalysis{
		TotalCount:         len(successful),
		AvgViews:           int64(math.Round(avgOf(successful, func(v domain.Video) float64 { return float64(v.ViewCount) }))),
		AvgVelocity:        util.Round1(avgOf(successful, func(v domain.Video) float64 { return v.ViewVelocity })),
		AvgEngagement:      util.Round3(avgOf(successful, func(v domain.Video) float64 { return v.EngagementRate })),
		AvgLikeRatio:       util.Round3(avgOf(successful, func(v domain.Video) float64 { return v.LikeRatio })),
		AvgScore:           util.Round1(avgOf(successful, func(v domain.Video) float64 { return v.AlgorithmScore })),
		TitlePatterns:      titles,
		DurationAnalysis:   durations,
		TagAnalysis:        tagAnalysis(successful),
		UploadTimeAnalysis: uploadTimes(successful),
		CommonFactors:      a.successCommonFactors(successful),
		TopVideos:          topVideos,
		Patterns:           a.extractSuccessPatterns(successful, titles),
	}
}

func (a *Analyzer) successCommonFactors(successful []domain.Video) []domain.CommonFactor {
	factors := make([]domain.CommonFactor, 0, 5)

	avgTitleLen := avgOf(successful, func(v domain.Video) float64 { return float64(util.RuneLen(v.Title)) })
	lengthInsight := "조정 고려"
	if avgTitleLen >= 30 && avgTitleLen <= 50 {
		lengthInsight = "최적 범위"
	}
	factors = append(factors, domain.CommonFactor{
		Factor:  "제목 길이",
		Value:   fmt.Sprintf("%.0f자", avgTitleLen),
		Insight: lengthInsight,
	})

	avgVelocity := avgOf(successful, func(v domain.Video) float64 { return v.ViewVelocity })
	velocityInsight := "꾸준한 성장"
	if avgVelocity > 1000 {
		velocityInsight = "높은 초기 관심도"
	}
	factors = append(factors, domain.CommonFactor{
		Factor:  "평균 조회 속도",
		Value:   fmt.Sprintf("%.0f회/일", avgVelocity),
		Insight: velocityInsight,
	})

	avgEngagement := avgOf(successful, func(v domain.Video) float64 { return v.EngagementRate })
	factors = append(factors, domain.CommonFactor{
		Factor:  "평균 참여율",
		Value:   fmt.Sprintf("%.2f%%", avgEngagement),
		Insight: benchmarkStatus(avgEngagement, a.cfg.Benchmarks.EngagementRate),
	})

	avgLike := avgOf(successful, func(v domain.Video) float64 { return v.LikeRatio })
	likeInsight := "보통 만족도"
	if avgLike >= 3 {
		likeInsight = "높은 만족도"
	}
	factors = append(factors, domain.CommonFactor{
		Factor:  "평균 좋아요 비율",
		Value:   fmt.Sprintf("%.2f%%", avgLike),
		Insight: likeInsight,
	})

	avgCTR := avgOf(successful, titleScoreOf)
	ctrInsight := "CTR 개선 여지 있음"
	if avgCTR >= 70 {
		ctrInsight = "CTR 최적화됨"
	}
	factors = append(factors, domain.CommonFactor{
		Factor:  "제목 CTR 점수",
		Value:   fmt.Sprintf("%.0f/100", avgCTR),
		Insight: ctrInsight,
	})

	return factors
}

func (a *Analyzer) extractSuccessPatterns(successful []domain.Video, titles *domain.TitlePatterns) []string {
	patterns := []string{}

	avgTitleLen := titles.AvgLength
	if avgTitleLen >= 30 && avgTitleLen <= 50 {
		patterns = append(patterns, fmt.Sprintf("✓ 최적 제목 길이 유지 (평균 %d자)", avgTitleLen))
	} else if avgTitleLen > 50 {
		patterns = append(patterns, fmt.Sprintf("상세한 제목으로 정보 전달 (평균 %d자)", avgTitleLen))
	}

	total := titles.TotalAnalyzed
	if total == 0 {
		total = 1
	}
	if float64(titles.Patterns.HasNumbers)/float64(total) > 0.4 {
		patterns = append(patterns, fmt.Sprintf("✓ 숫자 활용 (%d%%) - CTR 향상 효과", titles.Patterns.HasNumbers*100/total))
	}
	if float64(titles.Patterns.HasQuestion)/float64(total) > 0.25 {
		patterns = append(patterns, fmt.Sprintf("✓ 질문형 제목 사용 (%d%%) - 호기심 유발", titles.Patterns.HasQuestion*100/total))
	}

	avgVelocity := avgOf(successful, func(v domain.Video) float64 { return v.ViewVelocity })
	patterns = append(patterns, fmt.Sprintf("✓ 높은 조회 속도 (평균 %.0f회/일)", avgVelocity))

	avgEngagement := avgOf(successful, func(v domain.Video) float64 { return v.EngagementRate })
	patterns = append(patterns, fmt.Sprintf("✓ 참여율 %.2f%% (%s)", avgEngagement, benchmarkStatus(avgEngagement, a.cfg.Benchmarks.EngagementRate)))

	avgLike := avgOf(successful, func(v domain.Video) float64 { return v.LikeRatio })
	if avgLike >= 3 {
		patterns = append(patterns, fmt.Sprintf("✓ 높은 좋아요 비율 (%.2f%%) - 시청자 만족도 높음", avgLike))
	}

	return patterns
}

func (a *Analyzer) videoSuccessReasons(v domain.Video) []string {
	reasons := []string{}
	b := v.ScoreBreakdown
	if b != nil {
		if b.ViewVelocity > 70 {
			reasons = append(reasons, fmt.Sprintf("빠른 조회 속도 (%.0f회/일) - 알고리즘 추천 효과", v.ViewVelocity))
		}
		if b.EngagementRate > 70 {
			reasons = append(reasons, fmt.Sprintf("높은 참여율 (%.2f%%)", b.EngagementRateRaw))
		}
		if b.LikeRatio > 70 {
			reasons = append(reasons, fmt.Sprintf("높은 만족도 (좋아요 %.2f%%)", b.LikeRatioRaw))
		}
		if b.CommentRate > 70 {
			reasons = append(reasons, fmt.Sprintf("활발한 댓글 소통 (%.2f%%)", b.CommentRateRaw))
		}
	}

	if v.TitleAnalysis != nil && v.TitleAnalysis.Score >= 70 && len(v.TitleAnalysis.Factors) > 0 {
		factors := v.TitleAnalysis.Factors
		if len(factors) > 2 {
			factors = factors[:2]
		}
		reasons = append(reasons, fmt.Sprintf("최적화된 제목 (%s)", strings.Join(factors, ", ")))
	}

	if len(reasons) == 0 {
		reasons = append(reasons, "채널 평균 이상의 종합 성과")
	}
	return reasons
}

// analyzeUnsuccessful deep dives the underperform subset and contrasts it
// against the successful one.
func (a *Analyzer) analyzeUnsuccessful(classified []domain.Video) domain.FailureAnalysis {
	unsuccessful := filterByTiers(classified, domain.TierUnderperform)
	if len(unsuccessful) == 0 {
		return domain.FailureAnalysis{
			Message:      msgNoUnsuccessful,
			BottomVideos: []domain.RankedVideo{},
			Patterns:     []string{},
		}
	}

	titles := titlePatterns(unsuccessful)
	successful := filterByTiers(classified, domain.TierViral, domain.TierHit)

	var comparison *domain.SuccessFailureComparison
	if len(successful) > 0 {
		comparison = compareSuccessFailure(successful, unsuccessful)
	}

	bottomVideos := make([]domain.RankedVideo, 0, 7)
	for _, v := range unsuccessful {
		if len(bottomVideos) == 7 {
			break
		}
		bottomVideos = append(bottomVideos, toRankedVideo(v, videoFailureReasons(v, comparison)))
	}

	return domain.FailureAnalysis{
		TotalCount:            len(unsuccessful),
		AvgViews:              int64(math.Round(avgOf(unsuccessful, func(v domain.Video) float64 { return float64(v.ViewCount) }))),
		AvgVelocity:           util.Round1(avgOf(unsuccessful, func(v domain.Video) float64 { return v.ViewVelocity })),
		AvgEngagement:         util.Round3(avgOf(unsuccessful, func(v domain.Video) float64 { return v.EngagementRate })),
		AvgScore:              util.Round1(avgOf(unsuccessful, func(v domain.Video) float64 { return v.AlgorithmScore })),
		TitlePatterns:         titles,
		DurationAnalysis:      durationPatterns(unsuccessful),
		TagAnalysis:           tagAnalysis(unsuccessful),
		ComparisonWithSuccess: comparison,
		BottomVideos:          bottomVideos,
		Patterns:              extractFailurePatterns(comparison),
	}
}

func compareSuccessFailure(successful, unsuccessful []domain.Video) *domain.SuccessFailureComparison {
	comp := &domain.SuccessFailureComparison{}

	successTitleLen := avgOf(successful, func(v domain.Video) float64 { return float64(util.RuneLen(v.Title)) })
	failTitleLen := avgOf(unsuccessful, func(v domain.Video) float64 { return float64(util.RuneLen(v.Title)) })
	lengthWord := "더 짧음"
	if successTitleLen > failTitleLen {
		lengthWord = "더 김"
	}
	comp.TitleLength = &domain.MetricComparison{
		SuccessAvg: util.Round1(successTitleLen),
		FailureAvg: util.Round1(failTitleLen),
		Difference: util.Round1(successTitleLen - failTitleLen),
		Insight:    fmt.Sprintf("성공 영상이 %.0f자 %s", math.Abs(successTitleLen-failTitleLen), lengthWord),
	}

	successVV := avgOf(successful, func(v domain.Video) float64 { return v.ViewVelocity })
	failVV := avgOf(unsuccessful, func(v domain.Video) float64 { return v.ViewVelocity })
	vvComp := &domain.MetricComparison{
		SuccessAvg: util.Round1(successVV),
		FailureAvg: util.Round1(failVV),
		Difference: util.Round1(successVV - failVV),
	}
	if failVV > 0 {
		vvComp.Ratio = util.Round1(successVV / failVV)
		vvComp.Insight = fmt.Sprintf("성공 영상이 %.1f배 빠른 조회 속도", successVV/failVV)
	}
	comp.ViewVelocity = vvComp

	successEng := avgOf(successful, func(v domain.Video) float64 { return v.EngagementRate })
	failEng := avgOf(unsuccessful, func(v domain.Video) float64 { return v.EngagementRate })
	engComp := &domain.MetricComparison{
		SuccessAvg: util.Round3(successEng),
		FailureAvg: util.Round3(failEng),
		Difference: util.Round3(successEng - failEng),
	}
	if failEng > 0 {
		engComp.Ratio = util.Round1(successEng / failEng)
	}
	comp.EngagementRate = engComp

	successLike := avgOf(successful, func(v domain.Video) float64 { return v.LikeRatio })
	failLike := avgOf(unsuccessful, func(v domain.Video) float64 { return v.LikeRatio })
	comp.LikeRatio = &domain.MetricComparison{
		SuccessAvg: util.Round3(successLike),
		FailureAvg: util.Round3(failLike),
		Difference: util.Round3(successLike - failLike),
	}

	successCTR := avgOf(successful, titleScoreOf)
	failCTR := avgOf(unsuccessful, titleScoreOf)
	comp.TitleCTRScore = &domain.MetricComparison{
		SuccessAvg: util.Round1(successCTR),
		FailureAvg: util.Round1(failCTR),
		Difference: util.Round1(successCTR - failCTR),
	}

	successTags := avgOf(successful, func(v domain.Video) float64 { return float64(len(v.Tags)) })
	failTags := avgOf(unsuccessful, func(v domain.Video) float64 { return float64(len(v.Tags)) })
	comp.TagCount = &domain.MetricComparison{
		SuccessAvg: util.Round1(successTags),
		FailureAvg: util.Round1(failTags),
	}

	return comp
}

func extractFailurePatterns(comparison *domain.SuccessFailureComparison) []string {
	patterns := []string{}
	if comparison == nil {
		return append(patterns, msgGenericFailure)
	}

	if tc := comparison.TitleLength; tc != nil {
		if tc.Difference > 5 {
			patterns = append(patterns, fmt.Sprintf("✗ 제목이 성공 영상 대비 %.0f자 짧음 - 정보 부족", math.Abs(tc.Difference)))
		} else if tc.Difference < -10 {
			patterns = append(patterns, fmt.Sprintf("✗ 제목이 성공 영상 대비 %.0f자 김 - 가독성 저하", math.Abs(tc.Difference)))
		}
	}

	if vc := comparison.ViewVelocity; vc != nil && vc.Ratio > 2 {
		patterns = append(patterns, fmt.Sprintf("✗ 조회 속도가 성공 영상의 %.0f%%에 불과 - 초기 노출 부족", 100/vc.Ratio))
	}

	if ec := comparison.EngagementRate; ec != nil && ec.Difference > 1 {
		patterns = append(patterns, fmt.Sprintf("✗ 참여율이 성공 영상 대비 %.2f%%p 낮음 - 콘텐츠 매력도 개선 필요", ec.Difference))
	}

	if lc := comparison.LikeRatio; lc != nil && lc.Difference > 1 {
		patterns = append(patterns, fmt.Sprintf("✗ 좋아요 비율이 성공 영상 대비 %.2f%%p 낮음 - 시청자 만족도 저조", lc.Difference))
	}

	if cc := comparison.TitleCTRScore; cc != nil && cc.Difference > 10 {
		patterns = append(patterns, fmt.Sprintf("✗ 제목 CTR 점수가 %.0f점 낮음 - 제목/썸네일 최적화 필요", cc.Difference))
	}

	if tc := comparison.TagCount; tc != nil && tc.SuccessAvg > tc.FailureAvg+3 {
		patterns = append(patterns, fmt.Sprintf("✗ 태그 수 부족 (성공: %.0f개 vs 실패: %.0f개)", tc.SuccessAvg, tc.FailureAvg))
	}

	if len(patterns) == 0 {
		patterns = append(patterns, msgGenericFailure)
	}
	return patterns
}

func videoFailureReasons(v domain.Video, comparison *domain.SuccessFailureComparison) []string {
	reasons := []string{}
	b := v.ScoreBreakdown
	if b != nil {
		if b.ViewVelocity < 30 {
			reasons = append(reasons, fmt.Sprintf("낮은 조회 속도 (%.0f회/일) - 노출/클릭률 개선 필요", v.ViewVelocity))
		}
		if b.EngagementRate < 30 {
			reasons = append(reasons, fmt.Sprintf("낮은 참여율 (%.2f%%)", b.EngagementRateRaw))
		}
		if b.LikeRatio < 30 {
			reasons = append(reasons, fmt.Sprintf("낮은 만족도 (좋아요 %.2f%%)", b.LikeRatioRaw))
		}
	}

	if v.TitleAnalysis != nil && v.TitleAnalysis.Score < 50 {
		reasons = append(reasons, fmt.Sprintf("제목 CTR 점수 낮음 (%.0f점) - 제목 최적화 필요", v.TitleAnalysis.Score))
	}

	if comparison != nil && comparison.TitleLength != nil {
		successLen := comparison.TitleLength.SuccessAvg
		if successLen > 0 && float64(util.RuneLen(v.Title)) < successLen-10 {
			reasons = append(reasons, fmt.Sprintf("제목 길이 부족 (%d자 vs 성공영상 %.0f자)", util.RuneLen(v.Title), successLen))
		}
	}

	if len(v.Tags) < 5 {
		reasons = append(reasons, fmt.Sprintf("태그 부족 (%d개) - 검색 노출 제한", len(v.Tags)))
	}

	if len(reasons) == 0 {
		reasons = append(reasons, msgGenericFailure)
	}
	return reasons
}
