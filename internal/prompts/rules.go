package prompts

import "regexp"

// SpecialRequirements are the binary stylistic switches detected in the
// user's free-text extra requirements.
type SpecialRequirements struct {
	ShowPaws     bool
	LookAtFood   bool
	LookAtCamera bool
	Eating       bool
}

// Detection patterns over the user's free text.
var (
	pawPattern          = regexp.MustCompile(`(?i)爪|抓|拿|举|捧|握|手|paw|hold|grab|pick`)
	lookAtFoodPattern   = regexp.MustCompile(`(?i)看向食物|看食物|盯着食物|望向食物|look at food|looking at food|eyes on food`)
	lookAtCameraPattern = regexp.MustCompile(`(?i)看向镜头|看镜头|直视|look at camera|eye contact`)
	eatingPattern       = regexp.MustCompile(`(?i)正在吃|吃东西|进食|咬|咀嚼|eating|chewing|biting`)
)

func DetectSpecialRequirements(extraRequirements string) SpecialRequirements {
	return SpecialRequirements{
		ShowPaws:     pawPattern.MatchString(extraRequirements),
		LookAtFood:   lookAtFoodPattern.MatchString(extraRequirements),
		LookAtCamera: lookAtCameraPattern.MatchString(extraRequirements),
		Eating:       eatingPattern.MatchString(extraRequirements),
	}
}

// NeedsAdjustment reports whether any rule in AdjustmentRules would fire.
func (r SpecialRequirements) NeedsAdjustment() bool {
	return r.ShowPaws || (r.LookAtFood && !r.LookAtCamera)
}

// Replacement patterns over the generated image prompt. The model does not
// reliably honor the pose overrides in the instruction, so these rewrite its
// output as a last resort.
var (
	bodyHiddenRe    = regexp.MustCompile(`(?i)body completely hidden behind table,?\s*`)
	upperChestRe    = regexp.MustCompile(`(?i)only head neck and upper chest visible above table edge,?\s*`)
	furTextureRe    = regexp.MustCompile(`(?i)(detailed fluffy[^,]*fur texture),`)
	lookingCameraRe = regexp.MustCompile(`(?i)looking straight directly at the camera,?\s*`)
	eyesForwardRe   = regexp.MustCompile(`(?i)eyes focused directly forward at the viewer making direct eye contact,?\s*`)
	eyeContactRe    = regexp.MustCompile(`(?i)making direct eye contact,?\s*`)
)

// AdjustmentRule pairs a detector over the parsed requirements with a pure
// transform over the draft image prompt.
type AdjustmentRule struct {
	Name   string
	Detect func(SpecialRequirements) bool
	Apply  func(string) string
}

// AdjustmentRules run in order; each fires independently.
var AdjustmentRules = []AdjustmentRule{
	{
		Name:   "show-paws",
		Detect: func(r SpecialRequirements) bool { return r.ShowPaws },
		Apply: func(prompt string) string {
			adjusted := bodyHiddenRe.ReplaceAllString(prompt, "")
			adjusted = upperChestRe.ReplaceAllString(adjusted, "head neck chest and front paws visible above table edge, ")
			// The holding-food clause is inserted once, after the first fur
			// texture phrase, even if the model repeated the phrase.
			if loc := furTextureRe.FindStringSubmatchIndex(adjusted); loc != nil {
				texture := adjusted[loc[2]:loc[3]]
				adjusted = adjusted[:loc[0]] + texture + ", cat holding food with both front paws raised above the table," + adjusted[loc[1]:]
			}
			return adjusted
		},
	},
	{
		Name:   "look-at-food",
		Detect: func(r SpecialRequirements) bool { return r.LookAtFood && !r.LookAtCamera },
		Apply: func(prompt string) string {
			adjusted := lookingCameraRe.ReplaceAllString(prompt, "looking down at the food on the table, ")
			adjusted = eyesForwardRe.ReplaceAllString(adjusted, "eyes focused downward gazing at the delicious food with hungry anticipation, ")
			adjusted = eyeContactRe.ReplaceAllString(adjusted, "")
			return adjusted
		},
	},
}

// AdjustImagePrompt applies every matching rule to the generated image prompt.
func AdjustImagePrompt(imagePrompt string, requirements SpecialRequirements) string {
	adjusted := imagePrompt
	for _, rule := range AdjustmentRules {
		if rule.Detect(requirements) {
			adjusted = rule.Apply(adjusted)
		}
	}
	return adjusted
}
