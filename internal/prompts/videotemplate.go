// Package prompts holds the pure text core of the generator: fixed template
// strings, the instruction-message builder, the tolerant JSON response parser
// and the post-processing rule table. Nothing in here touches the network or
// the database.
package prompts

import "strings"

// BasicClosingClause terminates every basic-mode video prompt.
const BasicClosingClause = "Smooth natural motion, cinematic quality, 4K high definition video."

// ProfessionalBaseTemplate is the fixed multi-section professional video
// prompt. {FRAME_DESCRIPTION} and {ACTION_DESCRIPTION} are substituted once.
const ProfessionalBaseTemplate = `Crucial: maintain absolute visual consistency with the initial reference frame throughout the entire sequence:1.7, continuous uninterrupted single shot video, seamless fluid motion, no cuts, no jump cuts, no camera angle changes, designed as one smooth long take sequences.

Frame: {FRAME_DESCRIPTION}

Action: {ACTION_DESCRIPTION}

Picture: Do not change the color tone of the picture, do not change the cat's fur color, and keep the same color tone as the first frame of the picture`

// SoundSection is appended only for the blogger-style sound option.
const SoundSection = `

Sound: Binaural ASMR audio experience, pristine audio quality with zero background noise, highly sensitive microphone capture, distinct and detailed mouth sounds, immersive stereo soundscape, macro lens shots focusing on textures. From time to time, there are the purring sounds of cats in the background`

// VideoPromptOptions selects the template variant. IsPremium picks the
// professional template; IncludeSound is honored only there.
type VideoPromptOptions struct {
	IsPremium    bool
	IncludeSound bool
}

func BuildBasicVideoPrompt(frameDescription, actionDescription string) string {
	return frameDescription + ". " + actionDescription + ". " + BasicClosingClause
}

func BuildProfessionalVideoPrompt(frameDescription, actionDescription string, includeSound bool) string {
	prompt := strings.Replace(ProfessionalBaseTemplate, "{FRAME_DESCRIPTION}", frameDescription, 1)
	prompt = strings.Replace(prompt, "{ACTION_DESCRIPTION}", actionDescription, 1)
	if includeSound {
		prompt += SoundSection
	}
	return prompt
}

func BuildVideoPrompt(frameDescription, actionDescription string, opts VideoPromptOptions) string {
	if opts.IsPremium {
		return BuildProfessionalVideoPrompt(frameDescription, actionDescription, opts.IncludeSound)
	}
	return BuildBasicVideoPrompt(frameDescription, actionDescription)
}

// soundSuggestions maps the sound option picked on the create-video page to a
// human-readable recommendation. Unknown options map to the empty string.
var soundSuggestions = map[string]string{
	"blogger_style": "博主同款音效：ASMR咀嚼声 + 轻快可爱BGM + 适当的音效点缀（惊讶音效、满足音效等）",
	"asmr_eating":   "推荐音效：纯净ASMR咀嚼声，轻微环境白噪音，无背景音乐",
	"cute_bgm":      "推荐音效：轻快卡通BGM + 可爱音效点缀",
	"relaxing":      "推荐音效：轻柔钢琴曲 + 自然环境音（雨声、鸟鸣）",
	"funny":         "推荐音效：综艺节目常用BGM + 夸张搞笑音效",
}

func SoundSuggestionFor(soundOption string) string {
	return soundSuggestions[soundOption]
}
