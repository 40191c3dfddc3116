package prompts

import (
	"strings"
	"testing"
)

func TestBuildBasicVideoPrompt(t *testing.T) {
	got := BuildBasicVideoPrompt("a cat on a table", "eats fish")

	want := "a cat on a table. eats fish. " + BasicClosingClause
	if got != want {
		t.Errorf("Expected %q, got %q", want, got)
	}
	if !strings.HasSuffix(got, BasicClosingClause) {
		t.Errorf("Expected basic prompt to end with closing clause, got %q", got)
	}
}

func TestBuildProfessionalVideoPrompt_Substitution(t *testing.T) {
	got := BuildProfessionalVideoPrompt("fluffy orange cat at a wooden table", "picks up a shrimp", false)

	if !strings.Contains(got, "Frame: fluffy orange cat at a wooden table") {
		t.Errorf("Expected frame description substituted, got %q", got)
	}
	if !strings.Contains(got, "Action: picks up a shrimp") {
		t.Errorf("Expected action description substituted, got %q", got)
	}
	if strings.Contains(got, "{FRAME_DESCRIPTION}") || strings.Contains(got, "{ACTION_DESCRIPTION}") {
		t.Errorf("Expected all placeholders replaced, got %q", got)
	}
	if strings.Contains(got, "Sound:") {
		t.Errorf("Expected no sound section when includeSound=false")
	}
}

func TestBuildProfessionalVideoPrompt_SoundSection(t *testing.T) {
	got := BuildProfessionalVideoPrompt("frame", "action", true)

	if !strings.HasSuffix(got, SoundSection) {
		t.Errorf("Expected sound section appended when includeSound=true")
	}
	if !strings.Contains(got, "Binaural ASMR audio experience") {
		t.Errorf("Expected ASMR sound description, got %q", got)
	}
}

func TestBuildVideoPrompt_PlanSelection(t *testing.T) {
	basic := BuildVideoPrompt("f", "a", VideoPromptOptions{IsPremium: false, IncludeSound: true})
	if basic != BuildBasicVideoPrompt("f", "a") {
		t.Errorf("Expected non-premium to get the basic template regardless of sound option")
	}
	if strings.Contains(basic, "Sound:") {
		t.Errorf("Expected basic prompt to never carry a sound section")
	}

	pro := BuildVideoPrompt("f", "a", VideoPromptOptions{IsPremium: true, IncludeSound: true})
	if !strings.Contains(pro, "Sound:") {
		t.Errorf("Expected premium prompt with sound option to carry the sound section")
	}
}

func TestSoundSuggestionFor(t *testing.T) {
	tests := []struct {
		option string
		want   string
	}{
		{"blogger_style", "博主同款音效：ASMR咀嚼声 + 轻快可爱BGM + 适当的音效点缀（惊讶音效、满足音效等）"},
		{"asmr_eating", "推荐音效：纯净ASMR咀嚼声，轻微环境白噪音，无背景音乐"},
		{"unknown_option", ""},
		{"", ""},
	}

	for _, tc := range tests {
		if got := SoundSuggestionFor(tc.option); got != tc.want {
			t.Errorf("SoundSuggestionFor(%q): expected %q, got %q", tc.option, tc.want, got)
		}
	}
}
