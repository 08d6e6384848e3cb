package qa

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockSearcher struct{ mock.Mock }

func (m *mockSearcher) Search(ctx context.Context, query string, topK int) ([]map[string]any, error) {
	args := m.Called(ctx, query, topK)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]any), args.Error(1)
}

type mockCompleter struct{ mock.Mock }

func (m *mockCompleter) Complete(ctx context.Context, system, user string) (string, error) {
	args := m.Called(ctx, system, user)
	return args.String(0), args.Error(1)
}

func sampleResult(name string) map[string]any {
	return map[string]any{
		"doctor_name":        name,
		"hospital":           "서울성모병원",
		"department":         "방사선종양학과",
		"main_focus":         "폐암",
		"specialty":          "폐암 방사선치료",
		"treatment_style":    "세기조절방사선치료",
		"uniqueness":         "환자 맞춤 치료계획",
		"patient_evaluation": "친절함",
		"consultation_style": "충분한 설명",
	}
}

func TestAnswerNoResultsSkipsCompletion(t *testing.T) {
	searcher := &mockSearcher{}
	completer := &mockCompleter{}
	searcher.On("Search", mock.Anything, "폐암 명의", retrieveTopK).Return([]map[string]any{}, nil)

	c := NewComposer(searcher, completer)
	answer, err := c.Answer(context.Background(), "폐암 명의")
	require.NoError(t, err)
	require.Equal(t, noResultsMessage, answer)
	completer.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything, mock.Anything)
}

func TestAnswerSearchErrorPropagates(t *testing.T) {
	searcher := &mockSearcher{}
	searcher.On("Search", mock.Anything, mock.Anything, mock.Anything).Return(nil, fmt.Errorf("embed query: boom"))

	c := NewComposer(searcher, &mockCompleter{})
	_, err := c.Answer(context.Background(), "질문")
	require.Error(t, err)
}

func TestAnswerCompletionErrorBecomesApology(t *testing.T) {
	searcher := &mockSearcher{}
	completer := &mockCompleter{}
	searcher.On("Search", mock.Anything, mock.Anything, mock.Anything).
		Return([]map[string]any{sampleResult("강영남")}, nil)
	completer.On("Complete", mock.Anything, mock.Anything, mock.Anything).
		Return("", fmt.Errorf("status 429: rate limited"))

	c := NewComposer(searcher, completer)
	answer, err := c.Answer(context.Background(), "질문")
	require.NoError(t, err, "completion failures must not surface as errors")
	require.Contains(t, answer, "죄송합니다")
	require.Contains(t, answer, "429")
}

func TestAnswerPromptContainsResultBlocks(t *testing.T) {
	searcher := &mockSearcher{}
	completer := &mockCompleter{}
	searcher.On("Search", mock.Anything, mock.Anything, mock.Anything).
		Return([]map[string]any{sampleResult("강영남"), sampleResult("김철수")}, nil)

	var captured string
	completer.On("Complete", mock.Anything, systemPrompt, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.String(2) }).
		Return("생성된 답변", nil)

	c := NewComposer(searcher, completer)
	answer, err := c.Answer(context.Background(), "폐암 치료 잘하는 교수님?")
	require.NoError(t, err)
	require.Equal(t, "생성된 답변", answer)

	require.Contains(t, captured, "폐암 치료 잘하는 교수님?")
	require.Contains(t, captured, "[의사 정보 1]")
	require.Contains(t, captured, "[의사 정보 2]")
	require.Contains(t, captured, "• 이름: 강영남")
	require.Contains(t, captured, "• 환자 평가: 친절함")
	require.Equal(t, 2, strings.Count(captured, "• 상담 스타일:"))
}
