package prompt

import (
	"fmt"
	"strings"
)

// RecommendationPromptVars holds variables for the recommendation prompt.
type RecommendationPromptVars struct {
	Genre             string
	Language          string
	AdditionalDetails string
	TitleCount        int
}

// BuildRecommendationPrompt builds the title-generation prompt. The response
// contract is a bare JSON array of strings: downstream parsing is strict, so
// the prompt forbids everything else.
func BuildRecommendationPrompt(vars RecommendationPromptVars) string {
	language := strings.TrimSpace(vars.Language)
	if language == "" {
		language = "en"
	}

	var details string
	if trimmed := strings.TrimSpace(vars.AdditionalDetails); trimmed != "" {
		details = fmt.Sprintf("\nAdditional viewer preferences to take into account: %s", trimmed)
	}

	return fmt.Sprintf(`You are a movie recommendation engine.

Suggest exactly %d movie titles for a viewer who wants to watch a %s movie.
The viewer's language is %q; prefer movies available in that language, but
include internationally recognized titles when they fit better.%s

Order the list from the strongest recommendation to the weakest.

## Response Format (JSON ONLY):
["Title 1", "Title 2", ...]

Rules:
- Respond with a single JSON array of strings and nothing else.
- Use each movie's official release title.
- No numbering, no commentary, no markdown.`,
		vars.TitleCount, strings.TrimSpace(vars.Genre), language, details)
}
