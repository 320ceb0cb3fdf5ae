package answer

import (
	"fmt"
	"strings"

	"davinci_debate/search"
)

const qaPreamble = "Write an accurate and concise answer for the given user question, using _only_ the provided summarized web search results. " +
	"The answer should be correct, high-quality, and written by an expert using an unbiased and journalistic tone. " +
	"The user's language of choice such as English, Français, Español, Deutsch, or 日本語 should be used. " +
	"The answer should be informative, interesting, and engaging. " +
	"The answer's logic and reasoning should be rigorous and defensible. " +
	"Every sentence in the answer should be _immediately followed_ by an in-line citation to the search result(s). " +
	"The cited search result(s) should fully support _all_ the information in the sentence. " +
	"Search results need to be cited using [index]. " +
	"When citing several search results, use [1][2][3] format rather than [1, 2, 3]. " +
	"You can use multiple search results to respond comprehensively while avoiding irrelevant search results."

// BuildPrompt numbers each result from 1 and lays it out as title and summary lines under the question.
func BuildPrompt(query string, results []search.Result) string {
	var sb strings.Builder
	sb.WriteString(qaPreamble)
	sb.WriteString("\n\n")
	sb.WriteString(fmt.Sprintf("Question: %s\n\n", query))
	sb.WriteString("Search Results:\n")
	for i, r := range results {
		n := i + 1
		sb.WriteString(fmt.Sprintf("[%d] Original Search Query: %s\n", n, query))
		sb.WriteString(fmt.Sprintf("[%d] Search Result Title: %s\n", n, r.Name))
		sb.WriteString(fmt.Sprintf("[%d] Search Result Summary: %s\n", n, r.Snippet))
		sb.WriteString("\n")
	}
	sb.WriteString("\nAnswer:")
	return sb.String()
}
