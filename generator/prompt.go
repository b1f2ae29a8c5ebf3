package generator

import (
	"fmt"
	"strings"
)

func buildPrompt(input Input) string {
	var b strings.Builder

	b.WriteString("Create a complete educational course based on the provided keyword and constraints.\n")
	b.WriteString("Adhere strictly to the JSON schema for the output.\n\n")
	fmt.Fprintf(&b, "COURSE TOPIC: %q\n", input.Keyword)
	fmt.Fprintf(&b, "TARGET LEVEL: %s\n\n", input.Level)

	b.WriteString("CONSTRAINTS:\n")
	fmt.Fprintf(&b, "- Generate exactly %d chapters.\n", input.ChaptersCount)
	fmt.Fprintf(&b, "- The main course description should not exceed %d words.\n", input.MaxWordsDescription)
	fmt.Fprintf(&b, "- The text content for each chapter ('content_text') must not exceed %d words.\n", input.MaxWordsChapterText)

	if input.IncludeQuizzes {
		b.WriteString("- Include a quiz with at least three questions in each chapter.\n")
	} else {
		b.WriteString("- Do not include quizzes.\n")
	}
	if input.IncludeYoutube {
		b.WriteString("- If a relevant, high-quality educational video exists on YouTube, provide its URL for each chapter. Otherwise, set 'youtube_url' to null.\n")
	} else {
		b.WriteString("- Set 'youtube_url' to null for all chapters.\n")
	}

	b.WriteString("- All URLs must be HTTPS and point to publicly accessible resources.\n")
	b.WriteString("- Titles, summaries, and quiz options must be original and avoid copyrighted text.\n")
	b.WriteString("- Generate engaging and accurate educational content.\n")

	return b.String()
}
