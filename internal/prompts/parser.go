package prompts

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

// GenerateResult is the payload the chat model is asked to emit.
type GenerateResult struct {
	ImagePrompt     string `json:"imagePrompt"`
	VideoPrompt     string `json:"videoPrompt"`
	Explanation     string `json:"explanation"`
	Tips            string `json:"tips"`
	SoundSuggestion string `json:"soundSuggestion"`
}

// Empty reports whether no usable field was recovered.
func (r GenerateResult) Empty() bool {
	return r.ImagePrompt == "" && r.VideoPrompt == "" && r.Explanation == "" &&
		r.Tips == "" && r.SoundSuggestion == ""
}

// Parse strategies, in the order they are attempted.
const (
	StrategyDirect  = "direct"  // fence-stripped content is valid JSON
	StrategyExtract = "extract" // first {...} span is valid JSON
	StrategyFields  = "fields"  // per-field regex recovery
)

// ParseResult carries the recovered fields and which strategy produced them,
// so the success tier can be logged.
type ParseResult struct {
	Result   GenerateResult
	Strategy string
}

var (
	fenceOpenRe  = regexp.MustCompile("(?i)```json\\s*")
	fenceRe      = regexp.MustCompile("```\\s*")
	jsonObjectRe = regexp.MustCompile(`(?s)\{.*\}`)
)

// ParseGenerateResponse recovers GenerateResult fields from model output that
// is not guaranteed to be valid JSON. Strategies degrade from full unmarshal
// to span extraction to per-field regex recovery; the last tier tolerates a
// fully malformed envelope as long as individual fields are still quoted
// JSON-string shaped, leaving unrecoverable fields empty.
func ParseGenerateResponse(content string) ParseResult {
	clean := fenceOpenRe.ReplaceAllString(content, "")
	clean = fenceRe.ReplaceAllString(clean, "")
	clean = strings.TrimSpace(clean)

	var result GenerateResult
	if err := json.Unmarshal([]byte(clean), &result); err == nil {
		return ParseResult{Result: result, Strategy: StrategyDirect}
	}

	if span := jsonObjectRe.FindString(clean); span != "" {
		result = GenerateResult{}
		if err := json.Unmarshal([]byte(span), &result); err == nil {
			return ParseResult{Result: result, Strategy: StrategyExtract}
		}
	}

	return ParseResult{
		Result: GenerateResult{
			ImagePrompt:     extractField(content, "imagePrompt"),
			VideoPrompt:     extractField(content, "videoPrompt"),
			Explanation:     extractField(content, "explanation"),
			Tips:            extractField(content, "tips"),
			SoundSuggestion: extractField(content, "soundSuggestion"),
		},
		Strategy: StrategyFields,
	}
}

// extractField pulls one `"name": "..."` value out of arbitrary text,
// unescaping the sequences the models actually emit.
func extractField(content, fieldName string) string {
	re := regexp.MustCompile(fmt.Sprintf(`"%s"\s*:\s*"((?:[^"\\]|\\.)*)"`, regexp.QuoteMeta(fieldName)))
	match := re.FindStringSubmatch(content)
	if match == nil {
		return ""
	}
	value := strings.ReplaceAll(match[1], `\n`, "\n")
	value = strings.ReplaceAll(value, `\"`, `"`)
	return value
}
