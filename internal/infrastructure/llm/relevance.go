package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"NewsClipper/internal/domain"
	"NewsClipper/internal/ports"
)

const relevanceSystem = `너는 입력된 뉴스 기사 리스트가 특정 키워드 또는 기업과 관련 있는지를 판단하는 AI 조수야.
관련도는 최상, 상, 중, 하, 최하 중 하나로 판단하고 리스트만 출력해.
예시: [[1, "상"], [2, "하"], [3, "중"]]`

// RelevanceFilter grades how related each record is to a keyword. Unlike
// the curator this surfaces errors: the caller decides what a missing
// grading means for its view.
type RelevanceFilter struct {
	client *Client
}

var _ ports.RelevanceFilter = (*RelevanceFilter)(nil)

// NewRelevanceFilter reuses an already constructed chat client.
func NewRelevanceFilter(client *Client) *RelevanceFilter {
	return &RelevanceFilter{client: client}
}

// Grade returns one relevance grade per listed record, indexed from 1 as
// presented in the prompt.
func (f *RelevanceFilter) Grade(ctx context.Context, keyword string, records []domain.Record) ([]ports.Relevance, error) {
	if len(records) == 0 {
		return nil, nil
	}

	var list strings.Builder
	for i, rec := range records {
		fmt.Fprintf(&list, "%d. %s\n", i+1, rec.Title)
	}

	user := fmt.Sprintf(`키워드: %s

뉴스 목록:
%s
출력은 반드시 한 줄 리스트로만 해:
[[1, "상"], [2, "하"], [3, "중"], [4, "최상"], [5, "최하"]]`, keyword, list.String())

	reply, err := f.client.chat(ctx, chatRequest{system: relevanceSystem, user: user})
	if err != nil {
		return nil, fmt.Errorf("relevance request: %w", err)
	}

	return parseGrades(reply)
}

func parseGrades(reply string) ([]ports.Relevance, error) {
	var raw [][]any
	if err := json.Unmarshal([]byte(stripCodeFence(reply)), &raw); err != nil {
		return nil, fmt.Errorf("parse grades: %w", err)
	}

	grades := make([]ports.Relevance, 0, len(raw))
	for _, pair := range raw {
		if len(pair) != 2 {
			continue
		}
		index, ok := pair[0].(float64)
		if !ok {
			continue
		}
		grade, ok := pair[1].(string)
		if !ok {
			continue
		}
		grades = append(grades, ports.Relevance{Index: int(index), Grade: grade})
	}
	return grades, nil
}
