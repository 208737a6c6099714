package services

import (
	"fmt"
	"strings"

	"github.com/Ayankhan79/Offline-AI-Study-Assistant-via-LLMs/internal/core/domain"
)

// retrievalTopK is the number of chunks retrieved per question.
const retrievalTopK = 3

// noDocumentsAnswer is returned when the store has nothing indexed.
const noDocumentsAnswer = "No documents found. Please upload documents first."

// answerPromptTemplate instructs the model to answer only from the
// provided context. The wording is kept exactly as deployed, trailing
// space on the first line included.
const answerPromptTemplate = "You are a helpful study assistant. Answer the question based on the provided context. \n" +
	`If the answer is not in the context, say so clearly.

Context:
%s

Question: %s

Answer:`

// buildPrompt embeds the retrieved chunk texts and the question into
// the instructional template. Chunks are joined with a blank line.
func buildPrompt(question string, texts []string) string {
	context := strings.Join(texts, "\n\n")
	return fmt.Sprintf(answerPromptTemplate, context, question)
}

// errorAnswer converts a model-invocation failure into the user-facing
// answer text: the raw error plus a remediation checklist. Resource
// exhaustion gets memory-specific fixes; everything else gets the
// generic checks.
func errorAnswer(err error) string {
	msg := err.Error()
	if domain.IsResourceExhausted(msg) {
		return fmt.Sprintf("⚠️ Memory Error: %s\n\n"+
			"Quick fixes:\n"+
			"1. Restart Ollama: Close terminal running 'ollama serve', then run it again\n"+
			"2. Free up RAM: Close other applications\n"+
			"3. Try a smaller model: Run 'ollama pull tinyllama' then restart\n"+
			"4. Check available models: Visit http://localhost:8000/models", msg)
	}
	return fmt.Sprintf("⚠️ Error: %s\n\n"+
		"Please check:\n"+
		"1. Is Ollama running? (Run 'ollama serve' in terminal)\n"+
		"2. Is a model installed? (Run 'ollama pull llama3.2:1b' or 'ollama pull tinyllama')", msg)
}

// sourceRefs derives the citation list from retrieved chunks,
// preserving retrieval order.
func sourceRefs(retrieved []domain.Retrieved) []domain.SourceRef {
	refs := make([]domain.SourceRef, 0, len(retrieved))
	for _, r := range retrieved {
		refs = append(refs, r.SourceRef())
	}
	return refs
}

// chunkTexts extracts the retrieved chunk texts in order.
func chunkTexts(retrieved []domain.Retrieved) []string {
	texts := make([]string, 0, len(retrieved))
	for _, r := range retrieved {
		texts = append(texts, r.Text)
	}
	return texts
}
