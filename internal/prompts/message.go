package prompts

import (
	"fmt"
	"strings"

	"mukbang-backend/internal/models"
)

// MessageOptions carries the structured inputs folded into one instruction
// message for the chat model.
type MessageOptions struct {
	Cat                  *models.Cat
	CustomCatDescription string
	Style                *models.VisualStyle
	Foods                []*models.Food
	CustomFoods          []string
	Emotion              *models.Emotion
	Scene                *models.Scene
	CustomSceneDetails   string
	ExtraRequirements    string
	Template             *models.PromptTemplate
}

var eatingHints = []string{"正在吃", "进食", "吃东西", "咀嚼", "eating", "chewing"}

// NeedsEatingAction reports whether the extra requirements ask for an eating
// pose instead of the default ready-to-eat first frame.
func NeedsEatingAction(extraRequirements string) bool {
	if extraRequirements == "" {
		return false
	}
	lower := strings.ToLower(extraRequirements)
	for _, hint := range eatingHints {
		if strings.Contains(lower, strings.ToLower(hint)) {
			return true
		}
	}
	return false
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefOr(s *string, fallback string) string {
	if s == nil || *s == "" {
		return fallback
	}
	return *s
}

// BuildUserMessage assembles the natural-language instruction handed to the
// chat model. The extra-requirements block is flagged highest priority so the
// model overrides default camera and pose phrasing with it.
func BuildUserMessage(opts MessageOptions) string {
	var b strings.Builder

	allFoodNames := make([]string, 0, len(opts.Foods)+len(opts.CustomFoods))
	allFoodNamesEn := make([]string, 0, len(opts.Foods)+len(opts.CustomFoods))
	for _, f := range opts.Foods {
		allFoodNames = append(allFoodNames, f.Name)
		allFoodNamesEn = append(allFoodNamesEn, f.NameEn)
	}
	allFoodNames = append(allFoodNames, opts.CustomFoods...)
	allFoodNamesEn = append(allFoodNamesEn, opts.CustomFoods...)
	foodNames := strings.Join(allFoodNames, "、")
	foodNamesEn := strings.Join(allFoodNamesEn, " and ")

	b.WriteString("请生成猫咪吃播「首帧图片」的提示词。\n\n")
	if NeedsEatingAction(opts.ExtraRequirements) {
		b.WriteString("【特殊要求】用户要求猫咪有进食动作，请包含 eating/chewing 等词。\n")
	} else {
		b.WriteString("【默认首帧模式】猫咪看向镜头，食物摆好，还没开始吃。不要用 eating 等进食词。\n")
	}
	b.WriteString("\n【猫咪形象】\n")

	cat := opts.Cat
	if cat.CustomDescription != "" {
		fmt.Fprintf(&b, "用户描述：%s\n", cat.CustomDescription)
	} else {
		fmt.Fprintf(&b, "- 品种：%s（%s）\n", cat.Breed, derefOr(cat.BreedEn, cat.Breed))
		fmt.Fprintf(&b, "- 体型：%s（%s）\n", cat.BodyType, derefOr(cat.BodyTypeEn, cat.BodyType))
		fmt.Fprintf(&b, "- 毛色：%s（%s）\n", deref(cat.FurColor), deref(cat.FurColorEn))
		fmt.Fprintf(&b, "- 性格：%s（%s）\n", deref(cat.Personality), deref(cat.PersonalityEn))
		fmt.Fprintf(&b, "- 特征：%s（%s）\n", deref(cat.SpecialFeatures), deref(cat.SpecialFeaturesEn))
	}

	// Preset cat plus an extra free-text note on top of it.
	if opts.CustomCatDescription != "" && cat.CustomDescription == "" {
		fmt.Fprintf(&b, "- 额外描述：%s\n", opts.CustomCatDescription)
	}

	fmt.Fprintf(&b, "\n【视觉风格】\n- 名称：%s\n- 关键词：%s\n", opts.Style.Name, opts.Style.PromptKeywords)

	fmt.Fprintf(&b, "\n【食物组合】\n用户选择了 %d 种食物：%s（%s）\n\n", len(allFoodNames), foodNames, foodNamesEn)
	for i, food := range opts.Foods {
		fmt.Fprintf(&b, "食物%d：%s（%s）\n- 视觉描述：%s\n- 质感：%s\n- 音效：%s\n\n",
			i+1, food.Name, food.NameEn, food.VisualKeywords, deref(food.TextureKeywords), deref(food.SoundKeywords))
	}
	if len(opts.CustomFoods) > 0 {
		fmt.Fprintf(&b, "自定义食物：%s\n\n", strings.Join(opts.CustomFoods, "、"))
	}
	fmt.Fprintf(&b, "请在提示词中自然地组合这些食物，例如：\n\"cat with %s on the table\"\n\"桌上有%s\"\n", foodNamesEn, foodNames)

	if opts.Emotion != nil {
		fmt.Fprintf(&b, "\n【表情/情绪】\n- 名称：%s（%s）\n- 表情：%s\n- 动作：%s\n- 肢体：%s\n\n注意：这是表情描述，不是进食动作。猫咪应该是准备吃的状态，不是正在吃。\n",
			opts.Emotion.Name, opts.Emotion.NameEn, opts.Emotion.FacialExpression, opts.Emotion.ActionKeywords, deref(opts.Emotion.BodyLanguage))
	}

	sceneName := "简约背景"
	sceneVisual := "clean simple background"
	sceneLighting := "soft studio lighting"
	sceneCamera := "front view, eye level"
	if opts.Scene != nil {
		sceneName = opts.Scene.Name
		sceneVisual = opts.Scene.VisualKeywords
		sceneLighting = derefOr(opts.Scene.LightingKeywords, sceneLighting)
		sceneCamera = derefOr(opts.Scene.CameraAngle, sceneCamera)
	}
	fmt.Fprintf(&b, "\n【场景】\n- 名称：%s\n- 视觉：%s\n- 灯光：%s\n- 镜头：%s\n", sceneName, sceneVisual, sceneLighting, sceneCamera)
	if opts.CustomSceneDetails != "" {
		fmt.Fprintf(&b, "- 用户自定义环境：%s\n", opts.CustomSceneDetails)
	}

	if opts.ExtraRequirements != "" {
		fmt.Fprintf(&b, `
【⚠️ 用户额外要求 - 必须完整体现，优先级最高】
%s

重要规则：
1. 如果用户要求"猫咪用爪爪拿食物"或类似描述，则猫咪前爪必须可见并拿着食物，不要使用"body hidden behind table"
2. 如果用户要求"眼睛看向食物"或类似描述，则猫咪眼睛必须向下看食物，不要使用"looking at camera"或"direct eye contact"
3. 用户的额外要求优先级高于默认模板设置，当有冲突时以用户要求为准
4. 请将以上中文要求准确翻译成对应的英文描述并完整融入提示词中
`, opts.ExtraRequirements)
	}

	if opts.Template != nil {
		fmt.Fprintf(&b, `

【参考结构】
图片提示词结构：%s
视频提示词结构：%s

请严格按照系统提示词中的【独家爆款公式】生成高质量提示词。
`, opts.Template.ImagePromptTemplate, opts.Template.VideoPromptTemplate)
	}

	return b.String()
}
