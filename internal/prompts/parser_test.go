package prompts

import "testing"

const sampleJSON = `{
  "imagePrompt": "orange cat at a table",
  "videoPrompt": "cat eats fish slowly",
  "explanation": "说明文字",
  "tips": "使用技巧",
  "soundSuggestion": "ASMR咀嚼声"
}`

func assertSampleFields(t *testing.T, r GenerateResult) {
	t.Helper()
	if r.ImagePrompt != "orange cat at a table" {
		t.Errorf("Expected imagePrompt recovered, got %q", r.ImagePrompt)
	}
	if r.VideoPrompt != "cat eats fish slowly" {
		t.Errorf("Expected videoPrompt recovered, got %q", r.VideoPrompt)
	}
	if r.Explanation != "说明文字" {
		t.Errorf("Expected explanation recovered, got %q", r.Explanation)
	}
	if r.Tips != "使用技巧" {
		t.Errorf("Expected tips recovered, got %q", r.Tips)
	}
	if r.SoundSuggestion != "ASMR咀嚼声" {
		t.Errorf("Expected soundSuggestion recovered, got %q", r.SoundSuggestion)
	}
}

func TestParseGenerateResponse_PlainJSON(t *testing.T) {
	parsed := ParseGenerateResponse(sampleJSON)
	if parsed.Strategy != StrategyDirect {
		t.Errorf("Expected strategy %q, got %q", StrategyDirect, parsed.Strategy)
	}
	assertSampleFields(t, parsed.Result)
}

func TestParseGenerateResponse_FencedJSON(t *testing.T) {
	content := "```json\n" + sampleJSON + "\n```"
	parsed := ParseGenerateResponse(content)
	if parsed.Strategy != StrategyDirect {
		t.Errorf("Expected fenced JSON to parse directly, got strategy %q", parsed.Strategy)
	}
	assertSampleFields(t, parsed.Result)
}

func TestParseGenerateResponse_ProseWrappedJSON(t *testing.T) {
	content := "好的，以下是生成结果：\n" + sampleJSON + "\n希望对你有帮助！"
	parsed := ParseGenerateResponse(content)
	if parsed.Strategy != StrategyExtract {
		t.Errorf("Expected strategy %q for prose-wrapped JSON, got %q", StrategyExtract, parsed.Strategy)
	}
	assertSampleFields(t, parsed.Result)
}

func TestParseGenerateResponse_FieldRecovery(t *testing.T) {
	// Trailing comma makes the envelope invalid JSON; the quoted fields
	// should still be recoverable one by one.
	content := `{
  "imagePrompt": "line one\nline two with \"quotes\"",
  "videoPrompt": "cat eats fish slowly",
}`
	parsed := ParseGenerateResponse(content)
	if parsed.Strategy != StrategyFields {
		t.Errorf("Expected strategy %q, got %q", StrategyFields, parsed.Strategy)
	}
	if parsed.Result.ImagePrompt != "line one\nline two with \"quotes\"" {
		t.Errorf("Expected escapes unescaped, got %q", parsed.Result.ImagePrompt)
	}
	if parsed.Result.VideoPrompt != "cat eats fish slowly" {
		t.Errorf("Expected videoPrompt recovered, got %q", parsed.Result.VideoPrompt)
	}
	if parsed.Result.Tips != "" {
		t.Errorf("Expected missing field to stay empty, got %q", parsed.Result.Tips)
	}
}

func TestParseGenerateResponse_Unrecoverable(t *testing.T) {
	parsed := ParseGenerateResponse("the model refused to answer")
	if parsed.Strategy != StrategyFields {
		t.Errorf("Expected fallback strategy, got %q", parsed.Strategy)
	}
	if !parsed.Result.Empty() {
		t.Errorf("Expected empty result for unparseable content, got %+v", parsed.Result)
	}
}

func TestGenerateResultEmpty(t *testing.T) {
	if !(GenerateResult{}).Empty() {
		t.Errorf("Expected zero value to be empty")
	}
	if (GenerateResult{Tips: "x"}).Empty() {
		t.Errorf("Expected result with one field to be non-empty")
	}
}
