package chapter

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"ai-producer-be/internal/pkg/logger"
	"ai-producer-be/pkg/llm"
	"ai-producer-be/pkg/rag/prompt"
)

// chapterPattern matches chapter/part/section references in Russian and
// English, with an optional номер/№/# marker before the number.
var chapterPattern = regexp.MustCompile(`(?i)(?:глава|главе|главу|часть|раздел|chapter|part|section)\s*(?:номер|№|#)?\s*(\d+)`)

// Extractor resolves a chapter number out of a free-form query. The first
// strategy asks the model; the regex strategy takes over only when the
// provider call itself fails, so an available model stays authoritative.
type Extractor struct {
	llmProvider llm.LLMProvider
	logger      logger.ILogger
}

func NewExtractor(llmProvider llm.LLMProvider, log logger.ILogger) *Extractor {
	if log == nil {
		log = logger.NewNopLogger()
	}
	return &Extractor{
		llmProvider: llmProvider,
		logger:      log,
	}
}

// Extract returns the chapter number as a string and whether one was found.
func (e *Extractor) Extract(ctx context.Context, query string) (string, bool) {
	if e.llmProvider != nil {
		response, err := e.llmProvider.Generate(ctx,
			fmt.Sprintf(prompt.MetadataExtractor, query),
			llm.WithTemperature(0.0),
		)
		if err == nil {
			answer := strings.ToLower(strings.TrimSpace(response))
			if answer != "none" && isDigits(answer) {
				return answer, true
			}
			return "", false
		}
		e.logger.Warn("chapter", "llm extraction failed, falling back to regex", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return ExtractWithRegex(query)
}

// ExtractWithRegex is the pure fallback path. It needs no provider and is
// deterministic.
func ExtractWithRegex(query string) (string, bool) {
	match := chapterPattern.FindStringSubmatch(query)
	if match == nil {
		return "", false
	}
	return match[1], true
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
