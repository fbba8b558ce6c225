package analyzer

import (
	"strings"
	"testing"
)

func countFactor(factors []string, name string) int {
	n := 0
	for _, f := range factors {
		if f == name {
			n++
		}
	}
	return n
}

func TestTitleScorerPenalizesShortTitles(t *testing.T) {
	s := NewTitleScorer()
	got := s.Score("짧음")

	if got.Score != 40 {
		t.Fatalf("expected score 40, got %v", got.Score)
	}
	if got.Length != 2 {
		t.Fatalf("expected length 2, got %d", got.Length)
	}
	found := false
	for _, f := range got.Factors {
		if strings.Contains(f, "제목 너무 짧음") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected short-title factor, got %v", got.Factors)
	}
}

func TestTitleScorerRewardsOptimalLength(t *testing.T) {
	s := NewTitleScorer()
	got := s.Score("채널 운영 기록 영상 스물네번째 업로드 하이라이트 모음집 편집본")

	if got.Score != 60 {
		t.Fatalf("expected score 60, got %v", got.Score)
	}
	if len(got.Factors) != 1 || !strings.Contains(got.Factors[0], "최적 길이") {
		t.Fatalf("expected only the optimal-length factor, got %v", got.Factors)
	}
}

func TestTitleScorerCountsCategoryOnce(t *testing.T) {
	s := NewTitleScorer()
	// Both 비밀 and 진실 are curiosity keywords; the bonus applies once.
	got := s.Score("그 사건에 숨겨진 비밀과 진실을 정리한 영상입니다")

	if got.Score != 63 {
		t.Fatalf("expected score 63 (50 + 5 length + 8 curiosity), got %v", got.Score)
	}
	if countFactor(got.Factors, "호기심 유발 키워드") != 1 {
		t.Fatalf("expected curiosity factor exactly once, got %v", got.Factors)
	}
}

func TestTitleScorerDetectsQuestionTitles(t *testing.T) {
	s := NewTitleScorer()
	got := s.Score("이 채널은 어떻게 성장했을까?")

	if got.Score != 55 {
		t.Fatalf("expected score 55, got %v", got.Score)
	}
	if countFactor(got.Factors, "질문형 제목") != 1 {
		t.Fatalf("expected question factor exactly once, got %v", got.Factors)
	}
}

func TestTitleScorerClampsToHundred(t *testing.T) {
	s := NewTitleScorer()
	got := s.Score("충격! 드디어 무료 꿀팁 TOP 5가지 비밀 공개 지금 바로 확인 대박 레전드 🔥 [필수]")

	if got.Score > 100 {
		t.Fatalf("score must be clamped to 100, got %v", got.Score)
	}
	if countFactor(got.Factors, "이모지 사용") != 1 {
		t.Fatalf("expected emoji factor, got %v", got.Factors)
	}
	if countFactor(got.Factors, "강조 괄호 사용") != 1 {
		t.Fatalf("expected bracket factor, got %v", got.Factors)
	}
}
