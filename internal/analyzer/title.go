package analyzer

import (
	"fmt"
	"regexp"

	"github.com/jsky9292/youtubedata-analytics/internal/domain"
	"github.com/jsky9292/youtubedata-analytics/internal/util"
)

// keywordCategory is one group of click-through boosting patterns. Only the
// first matching pattern per category counts, so stacking synonyms in one
// title earns the bonus once.
type keywordCategory struct {
	bonus    float64
	factor   string
	patterns []*regexp.Regexp
}

// TitleScorer rates how click-friendly a Korean title is, 0 to 100.
// All patterns are compiled once at construction.
type TitleScorer struct {
	categories []keywordCategory
	emojiRe    *regexp.Regexp
	bracketRe  *regexp.Regexp
	punctRe    *regexp.Regexp
}

func compileAll(patterns ...string) []*regexp.Regexp {
	res := make([]*regexp.Regexp, len(patterns))
	for i, p := range patterns {
		res[i] = regexp.MustCompile("(?i)" + p)
	}
	return res
}

func NewTitleScorer() *TitleScorer {
	return &TitleScorer{
		categories: []keywordCategory{
			{
				bonus:    8,
				factor:   "호기심 유발 키워드",
				patterns: compileAll("비밀", "충격", "진실", "알려드", "몰랐던", "실제로", "결국", "드디어"),
			},
			{
				bonus:    7,
				factor:   "숫자 활용",
				patterns: compileAll(`\d+가지`, `\d+개`, `\d+%`, `\d+만`, `TOP\s*\d+`, `\d+위`),
			},
			{
				bonus:    5,
				factor:   "긴급성 키워드",
				patterns: compileAll("지금", "바로", "즉시", "오늘", "당장", "필수"),
			},
			{
				bonus:    6,
				factor:   "가치 제안 키워드",
				patterns: compileAll("무료", "꿀팁", "핵심", "완벽", "최고", "추천", "방법", "비법"),
			},
			{
				bonus:    7,
				factor:   "감정 유발 키워드",
				patterns: compileAll("대박", "미쳤", "놀라운", "충격", "감동", "웃긴", "레전드"),
			},
			{
				bonus:    5,
				factor:   "질문형 제목",
				patterns: compileAll(`\?$`, "왜", "어떻게", "무엇", "언제", "어디서"),
			},
		},
		emojiRe:   regexp.MustCompile(`[\x{1F300}-\x{1F9FF}]`),
		bracketRe: regexp.MustCompile(`[\[\]【】()]`),
		punctRe:   regexp.MustCompile(`[!?]{2,}`),
	}
}

// Score rates one title. The base is 50; length, keyword, emoji and bracket
// signals move it up or down, clamped to [0, 100]. Length counts characters,
// not bytes.
func (s *TitleScorer) Score(title string) domain.TitleAnalysis {
	score := 50.0
	factors := []string{}
	length := util.RuneLen(title)

	switch {
	case length >= 30 && length <= 50:
		score += 10
		factors = append(factors, fmt.Sprintf("최적 길이 (%d자)", length))
	case length >= 20 && length <= 60:
		score += 5
	case length < 15:
		score -= 10
		factors = append(factors, fmt.Sprintf("제목 너무 짧음 (%d자)", length))
	case length > 70:
		score -= 5
		factors = append(factors, fmt.Sprintf("제목 다소 김 (%d자)", length))
	}

	for _, cat := range s.categories {
		for _, re := range cat.patterns {
			if re.MatchString(title) {
				score += cat.bonus
				factors = append(factors, cat.factor)
				break
			}
		}
	}

	if s.emojiRe.MatchString(title) {
		score += 3
		factors = append(factors, "이모지 사용")
	}

	if s.bracketRe.MatchString(title) {
		score += 4
		factors = append(factors, "강조 괄호 사용")
	}

	if len(s.punctRe.FindAllString(title, -1)) > 2 {
		score -= 5
		factors = append(factors, "특수문자 과다")
	}

	return domain.TitleAnalysis{
		Score:   util.Clamp(score, 0, 100),
		Factors: factors,
		Length:  length,
	}
}
