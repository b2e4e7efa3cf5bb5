package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/legalis-labs/legalis-cli/internal/core/domain"
	"github.com/legalis-labs/legalis-cli/internal/core/ports/driven"
	"github.com/legalis-labs/legalis-cli/internal/core/ports/driving"
	"github.com/legalis-labs/legalis-cli/internal/logger"
)

// Ensure AnswerService implements the interface.
var _ driving.AskService = (*AnswerService)(nil)

const (
	// answerMaxTokens caps the generated answer length.
	answerMaxTokens = 500
	// answerTemperature is sent explicitly so repeat questions over the
	// same index produce the same answer.
	answerTemperature = 0.0
)

// answerPrompt grounds the model in the retrieved excerpts and the
// Nepal ETA domain. The context block comes first so the instructions
// stay adjacent to the question.
const answerPrompt = `You are a legal expert specializing in Nepal's Electronic Transactions Act (ETA) and associated cyber laws. Your primary responsibility is to assist users by providing clear, concise, and legally accurate information on topics related to:

1. Electronic records and digital signatures
2. Cybercrimes and their penalties
3. Legal recognition of electronic transactions
4. Roles and responsibilities of certifying authorities
5. Jurisdiction and enforcement of cyber laws in Nepal

Important Instructions:
- NO bullet points, NO special symbols like *, ~, # etc.
- Keep the formatting clean and formal.
- Do not hallucinate or add extra information.
- Answer length depends on the nature of the question and context.
- Maintain good grammar and professional tone.

Context:
%s

User's Question:
%s

Provide the answer following the exact format above.

Answer:
`

// AnswerService answers a question by retrieving supporting chunks and
// asking the language model to answer from them. Recording the exchange
// in history is best-effort; a history failure never fails the answer.
type AnswerService struct {
	retriever driving.RetrievalService
	llm       driven.LLMService
	history   driven.HistoryStore // optional, may be nil
	prompts   driven.PromptStore  // optional, may be nil
	topK      int
}

// AnswerOption configures an AnswerService.
type AnswerOption func(*AnswerService)

// WithHistory records every exchange in the given store.
func WithHistory(store driven.HistoryStore) AnswerOption {
	return func(s *AnswerService) {
		s.history = store
	}
}

// WithPrompts loads the answer prompt template from the given store
// instead of the built-in default.
func WithPrompts(store driven.PromptStore) AnswerOption {
	return func(s *AnswerService) {
		s.prompts = store
	}
}

// WithTopK overrides the number of chunks retrieved per question.
func WithTopK(k int) AnswerOption {
	return func(s *AnswerService) {
		s.topK = k
	}
}

// NewAnswerService creates a new answer service.
func NewAnswerService(retriever driving.RetrievalService, llm driven.LLMService, opts ...AnswerOption) *AnswerService {
	s := &AnswerService{
		retriever: retriever,
		llm:       llm,
		topK:      DefaultTopK,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// validPromptTemplate reports whether a template can take the context
// block and the question. Anything else would garble the prompt with
// missing or extra format verbs.
func validPromptTemplate(template string) bool {
	return strings.Count(template, "%s") == 2 &&
		strings.Count(template, "%") == 2
}

// Ask retrieves context for the question, generates a grounded answer
// and returns the completed exchange.
func (s *AnswerService) Ask(ctx context.Context, question string) (domain.Exchange, error) {
	if strings.TrimSpace(question) == "" {
		return domain.Exchange{}, fmt.Errorf("%w: empty question", domain.ErrInvalidArgument)
	}

	hits, err := s.retriever.Retrieve(ctx, question, s.topK)
	if err != nil {
		return domain.Exchange{}, fmt.Errorf("retrieve context: %w", err)
	}

	texts := make([]string, len(hits))
	for i := range hits {
		texts[i] = hits[i].Chunk.Text
	}
	contextBlock := strings.Join(texts, "\n")

	logger.Section("Generation")
	logger.Debug("Prompting %s with %d context chunks", s.llm.ModelName(), len(hits))

	template := answerPrompt
	if s.prompts != nil {
		if custom, err := s.prompts.Load(driven.PromptAnswer); err == nil && custom != "" {
			if validPromptTemplate(custom) {
				template = custom
			} else {
				logger.Warn("Custom answer template needs exactly two %%s placeholders (context, question); using the built-in template")
			}
		}
	}

	prompt := fmt.Sprintf(template, contextBlock, question)
	answer, err := s.llm.Generate(ctx, prompt, driven.GenerateOptions{
		MaxTokens:   answerMaxTokens,
		Temperature: answerTemperature,
	})
	if err != nil {
		return domain.Exchange{}, fmt.Errorf("%w: %v", domain.ErrGeneration, err)
	}

	exchange := domain.Exchange{
		ID:            uuid.NewString(),
		Question:      question,
		Answer:        answer,
		ContextChunks: len(hits),
		Model:         s.llm.ModelName(),
		CreatedAt:     time.Now().UTC(),
	}

	if s.history != nil {
		if err := s.history.Record(ctx, exchange); err != nil {
			logger.Warn("Could not record exchange in history: %v", err)
		}
	}

	return exchange, nil
}
