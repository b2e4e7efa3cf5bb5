package mcp

import (
	"context"
	"strings"

	"github.com/legalis-labs/legalis-cli/internal/core/domain"
)

// mockAskService is a mock implementation of driving.AskService.
type mockAskService struct {
	exchange domain.Exchange
	err      error
}

func (m *mockAskService) Ask(_ context.Context, _ string) (domain.Exchange, error) {
	if m.err != nil {
		return domain.Exchange{}, m.err
	}
	return m.exchange, nil
}

// mockRetrievalService is a mock implementation of driving.RetrievalService.
type mockRetrievalService struct {
	hits []domain.RetrievedChunk
	err  error
}

func (m *mockRetrievalService) Retrieve(_ context.Context, _ string, k int) ([]domain.RetrievedChunk, error) {
	if m.err != nil {
		return nil, m.err
	}
	if k > 0 && k < len(m.hits) {
		return m.hits[:k], nil
	}
	return m.hits, nil
}

func (m *mockRetrievalService) Context(_ context.Context, _ string, _ int) (string, error) {
	if m.err != nil {
		return "", m.err
	}
	texts := make([]string, len(m.hits))
	for i := range m.hits {
		texts[i] = m.hits[i].Chunk.Text
	}
	return strings.Join(texts, "\n"), nil
}

// mockHistoryStore is a mock implementation of driven.HistoryStore.
type mockHistoryStore struct {
	exchanges []domain.Exchange
	err       error
}

func (m *mockHistoryStore) Record(_ context.Context, ex domain.Exchange) error {
	if m.err != nil {
		return m.err
	}
	m.exchanges = append(m.exchanges, ex)
	return nil
}

func (m *mockHistoryStore) Recent(_ context.Context, limit int) ([]domain.Exchange, error) {
	if m.err != nil {
		return nil, m.err
	}
	if limit > len(m.exchanges) {
		limit = len(m.exchanges)
	}
	return m.exchanges[:limit], nil
}

func (m *mockHistoryStore) Close() error {
	return nil
}
