package driven

// Prompt names used with PromptStore.
const (
	// PromptAnswer grounds the model in retrieved excerpts when
	// composing an answer. Takes two %s placeholders: the context
	// block and the user's question.
	PromptAnswer = "answer"
)

// PromptStore provides prompt templates for LLM operations.
// This is an optional service - when nil, built-in defaults apply.
type PromptStore interface {
	// Load returns the prompt template for the given name.
	Load(name string) (string, error)

	// Reload discards any cached templates, forcing fresh loads.
	Reload()
}
