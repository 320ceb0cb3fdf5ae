package generator

import "strings"

const questionPreamble = "An intelligent computer system is constructed. It is friendly and safe. " +
	"The system generates debate questions that can be used to have interesting " +
	"discussions between people. The questions the system came up with are:"

// QuestionMaxTokens bounds the completion for a single generated question.
const QuestionMaxTokens = 100

// BuildQuestionPrompt embeds the sampled seeds as few-shot examples and leaves an open label.
func BuildQuestionPrompt(sampled []string) Prompt {
	lines := make([]string, 0, len(sampled)+3)
	lines = append(lines, questionPreamble, "")
	for _, q := range sampled {
		lines = append(lines, "Question: "+q)
	}
	lines = append(lines, "Question:")
	return Prompt{
		Text:      strings.Join(lines, "\n"),
		MaxTokens: QuestionMaxTokens,
	}
}
