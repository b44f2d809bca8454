package ai

import "fmt"

const cardSystemPrompt = "You are a helpful assistant that creates study flashcards. Always respond with valid JSON only, no other text."

const summarySystemPrompt = "You are a helpful assistant that summarizes study material. Always respond with valid JSON only, no other text."

func cardPrompt(text string) string {
	return fmt.Sprintf(`Create study flashcards from the following text. Generate between 5 and 15 flashcards covering the most important concepts.

Respond with ONLY a JSON array, no other text. Each element must have exactly these fields:
- "question": a clear question about the material
- "answer": a concise, accurate answer
- "source": a short reference to where in the text the answer comes from

Text:
%s`, text)
}

func summaryPrompt(text string) string {
	return fmt.Sprintf(`Summarize the following study material into 2 to 4 thematic blocks.

Respond with ONLY a JSON array, no other text. Each element must have exactly these fields:
- "title": a short heading for the block
- "content": a few sentences summarizing that theme
- "source": a short reference to where in the text the theme appears

Text:
%s`, text)
}
