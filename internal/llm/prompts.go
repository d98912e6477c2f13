package llm

import "fmt"

func analysisPrompt(text string) string {
	return fmt.Sprintf(`You are reviewing a property-management document. Analyze the following document and provide:
1. Document type and purpose
2. Key dates and deadlines
3. Important terms
4. Potential issues or concerns
5. Recommended actions

Document:
%s`, text)
}

func answerPrompt(contextText, question string) string {
	return fmt.Sprintf(`Answer the question using only the provided document context. Be concise and ground every statement in the context. If the context does not contain the answer, say so.

Context:
%s

Question: %s`, contextText, question)
}
