package cli

import (
	"context"
	"time"

	"github.com/legalis-labs/legalis-cli/internal/adapters/driven/storage/memory"
	"github.com/legalis-labs/legalis-cli/internal/core/domain"
	"github.com/legalis-labs/legalis-cli/internal/core/services"
)

// mockAskService answers every question with a fixed grounded answer.
type mockAskService struct {
	err error
}

func (m *mockAskService) Ask(_ context.Context, question string) (domain.Exchange, error) {
	if m.err != nil {
		return domain.Exchange{}, m.err
	}
	return domain.Exchange{
		ID:            "ex-1",
		Question:      question,
		Answer:        "Digital signatures are legally recognised.",
		ContextChunks: 2,
		Model:         "test-model",
		CreatedAt:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}, nil
}

// mockRetrievalService returns fixed chunks.
type mockRetrievalService struct{}

func (m *mockRetrievalService) Retrieve(_ context.Context, _ string, _ int) ([]domain.RetrievedChunk, error) {
	return []domain.RetrievedChunk{}, nil
}

func (m *mockRetrievalService) Context(_ context.Context, _ string, _ int) (string, error) {
	return "", nil
}

// mockHistoryStore holds a single canned exchange.
type mockHistoryStore struct {
	recorded  []domain.Exchange
	exchanges []domain.Exchange
}

func (m *mockHistoryStore) Record(_ context.Context, ex domain.Exchange) error {
	m.recorded = append(m.recorded, ex)
	return nil
}

func (m *mockHistoryStore) Recent(_ context.Context, limit int) ([]domain.Exchange, error) {
	if limit <= 0 || limit > len(m.exchanges) {
		limit = len(m.exchanges)
	}
	return m.exchanges[:limit], nil
}

func (m *mockHistoryStore) Close() error { return nil }

// setupTestServices swaps in mock services and returns a restore func.
func setupTestServices() func() {
	oldAsk := askService
	oldRetrieval := retrievalService
	oldSettings := settingsService
	oldHistory := historyStore
	oldConfig := configStore

	store := memory.NewConfigStore()
	configStore = store
	settingsService = services.NewSettingsService(store, nil)
	askService = &mockAskService{}
	retrievalService = &mockRetrievalService{}
	historyStore = &mockHistoryStore{
		exchanges: []domain.Exchange{
			{
				ID:            "ex-1",
				Question:      "Is a digital signature valid?",
				Answer:        "Yes, under the Act it is.",
				ContextChunks: 3,
				Model:         "test-model",
				CreatedAt:     time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			},
		},
	}

	return func() {
		askService = oldAsk
		retrievalService = oldRetrieval
		settingsService = oldSettings
		historyStore = oldHistory
		configStore = oldConfig
	}
}
