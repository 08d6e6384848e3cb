package qa

import (
	"context"
	"fmt"
	"log"
	"strings"

	"medirag/internal/providers"
)

const retrieveTopK = 3

// noResultsMessage is returned without calling the language model at all.
const noResultsMessage = "죄송합니다. 해당 질문에 대한 관련 정보를 찾을 수 없습니다."

const systemPrompt = `의사 프로필 정보를 기반으로 사용자의 질문에 답변해주세요.

답변 형식:
1. 첫 문단에서는 추천하는 교수님들을 소속과 함께 간단히 소개해주세요.

2. 각 교수님별로 별도의 문단을 만들어 상세 설명을 해주세요:
- 주요 치료 방식과 특징
- 진료 스타일의 특징
- 상담 스타일과 접근성

3. 마지막에는 반드시 다음 형식으로 진료 키워드를 제시하세요:

[진료 키워드]
주요 진료분야(Main): (각 교수의 Main 컬럼 값)
세부 전문분야(Specialty): (각 교수의 Specialty 컬럼 값)

답변 스타일:
- 각 문단은 명확히 구분해주세요
- 교수별 설명은 3-4문장으로 구성해주세요
- 공식적이고 전문적인 어투를 사용해주세요
- 키워드는 반드시 굵은 글씨로 표시해주세요
- 핵심 정보는 bullet point로 구분해주세요

특정 질병이나 치료법에 대한 질문인 경우:
1. 해당 질병/치료법에 대한 설명 (3-4문단)
- 정의와 특징
- 치료 방법과 과정
- 장점과 주의사항
- 예후와 관리방법

2. [진료 키워드] 형식으로 마무리
주요 진료분야(Main): (관련된 Main 값들)
세부 전문분야(Specialty): (관련된 Specialty 값들)`

// Searcher is the retrieval surface the composer needs; satisfied by
// search.Engine.
type Searcher interface {
	Search(ctx context.Context, query string, topK int) ([]map[string]any, error)
}

// Composer retrieves matching profiles and asks a chat model to write the
// final answer.
type Composer struct {
	searcher  Searcher
	completer providers.Completer
}

func NewComposer(searcher Searcher, completer providers.Completer) *Composer {
	return &Composer{searcher: searcher, completer: completer}
}

// Answer retrieves the top profiles for the question and returns the model's
// generated text. Search failures propagate; completion failures are folded
// into a user-facing apology so the HTTP layer never special-cases them —
// this is best-effort advisory text, not a transaction.
func (c *Composer) Answer(ctx context.Context, question string) (string, error) {
	results, err := c.searcher.Search(ctx, question, retrieveTopK)
	if err != nil {
		return "", err
	}
	if len(results) == 0 {
		log.Printf("qa: no search results for question")
		return noResultsMessage, nil
	}

	answer, err := c.completer.Complete(ctx, systemPrompt, buildPrompt(question, results))
	if err != nil {
		log.Printf("qa: completion failed (%s): %v", providers.ClassifyError(err), err)
		return fmt.Sprintf("죄송합니다. 답변 생성 중 오류가 발생했습니다: %v", err), nil
	}
	return answer, nil
}

func buildPrompt(question string, results []map[string]any) string {
	var b strings.Builder
	fmt.Fprintf(&b, "다음과 같은 질문을 받았습니다: '%s'\n\n", question)
	b.WriteString("검색 결과에서 찾은 관련 정보입니다:\n\n")

	for i, r := range results {
		fmt.Fprintf(&b, "[의사 정보 %d]\n", i+1)
		fmt.Fprintf(&b, "• 이름: %s\n", field(r, "doctor_name"))
		fmt.Fprintf(&b, "• 소속: %s %s\n", field(r, "hospital"), field(r, "department"))
		fmt.Fprintf(&b, "• 주요진료: %s\n", field(r, "main_focus"))
		fmt.Fprintf(&b, "• 전문분야: %s\n", field(r, "specialty"))
		fmt.Fprintf(&b, "• 진료 스타일: %s\n", field(r, "treatment_style"))
		fmt.Fprintf(&b, "• 특징: %s\n", field(r, "uniqueness"))
		fmt.Fprintf(&b, "• 환자 평가: %s\n", field(r, "patient_evaluation"))
		fmt.Fprintf(&b, "• 상담 스타일: %s\n\n", field(r, "consultation_style"))
	}

	b.WriteString(`위 정보를 바탕으로 상세한 답변을 제공해주세요.

특정 교수에 대한 질문이라면:
1. 진료 스타일, 특징, 환자 평가, 상담 방식
2. 전문성과 경력
3. 진료 키워드 (Main, Specialty)

질병, 수술, 치료법에 대한 질문이라면:
1. 상세한 설명 (3-4문단)
   - 정의와 특징
   - 치료 방법과 과정
   - 장점과 주의사항
   - 예후와 관리방법
2. 진료 키워드 (Main, Specialty)`)
	return b.String()
}

func field(m map[string]any, key string) string {
	v, ok := m[key]
	if !ok || v == nil {
		return ""
	}
	return fmt.Sprintf("%v", v)
}
