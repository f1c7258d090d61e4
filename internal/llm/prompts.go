package llm

import "fmt"

// Prompts are fixed to Brazilian Portuguese; the product's responses are
// always pt-BR regardless of the document language.

func reformatPrompt(text string) string {
	return fmt.Sprintf(`O texto abaixo foi extraído de um PDF, mas está mal formatado (palavras grudadas, estrutura confusa).
Corrija a estrutura, separe palavras corretamente e devolva o conteúdo reestruturado como se tivesse sido digitado manualmente, mantendo fidelidade ao original. Não explique, apenas corrija:

%s`, text)
}

func explainPrompt(text string) string {
	return fmt.Sprintf("Explique ou forneça um contexto ao seguinte texto: Responda em português(pt-br):\n\n%s", text)
}

func answerPrompt(documentText, question string) string {
	return fmt.Sprintf("Com base no seguinte texto extraído de um documento:\n\n%s\n\nResponda à seguinte pergunta em português(pt-br): %s", documentText, question)
}
