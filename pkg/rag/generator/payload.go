package generator

import (
	"encoding/json"
	"regexp"
	"strings"
)

var fencedJSON = regexp.MustCompile("(?s)```json\\s*(.*?)\\s*```")

// ExtractStagePayload locates a JSON object inside a model answer. A fenced
// ```json block wins; otherwise the first top-level {...} span is taken.
// Only a valid JSON object passes; arrays and scalars are rejected so the
// blueprint never stores payloads it cannot be indexed by key.
func ExtractStagePayload(answer string) (json.RawMessage, bool) {
	if match := fencedJSON.FindStringSubmatch(answer); match != nil {
		if payload, ok := validObject(match[1]); ok {
			return payload, true
		}
	}

	if span, ok := firstObjectSpan(answer); ok {
		if payload, ok := validObject(span); ok {
			return payload, true
		}
	}

	return nil, false
}

func validObject(candidate string) (json.RawMessage, bool) {
	candidate = strings.TrimSpace(candidate)
	if !strings.HasPrefix(candidate, "{") {
		return nil, false
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal([]byte(candidate), &obj); err != nil {
		return nil, false
	}
	return json.RawMessage(candidate), true
}

// firstObjectSpan scans for the first balanced top-level brace span,
// ignoring braces inside JSON string literals.
func firstObjectSpan(s string) (string, bool) {
	start := strings.Index(s, "{")
	if start == -1 {
		return "", false
	}

	depth := 0
	inString := false
	escaped := false
	for i := start; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return s[start : i+1], true
			}
		}
	}
	return "", false
}
