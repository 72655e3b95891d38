// Package generator は外部生成APIを使用した投稿候補の生成機能を提供する。
// ブランドプロファイルとソーステキストからプロンプトを組み立てて生成APIを呼び出し、
// プラットフォーム別の投稿候補バンドルを構築する。
package generator

import (
	"fmt"
	"strings"

	"github.com/hitoshi/socialhub/internal/model"
)

// BuildPrompt は生成リクエストから生成APIに渡すプロンプトを組み立てる。
// プロファイルが未指定の場合はデフォルトプロファイルを使用する。
func BuildPrompt(req model.GenerationRequest) string {
	profile := req.Profile
	if profile == nil {
		profile = model.DefaultBrandProfile("")
	}

	sourceLabel := "Direct Quick Thought"
	if req.SourceKind == model.SourceKindYouTube {
		sourceLabel = "YouTube Video Transcript"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are an AI assistant tasked with generating social media content for %s.\n", profile.Name)
	fmt.Fprintf(&b, "Brand Identity and Voice Guidelines:\n")
	fmt.Fprintf(&b, "Name: %s\n", profile.Name)
	fmt.Fprintf(&b, "Agency: %s\n", profile.Agency)
	fmt.Fprintf(&b, "Dual Facets:\n")
	fmt.Fprintf(&b, "  Entrepreneur (Primary): Focus on %s Tone: %s\n", profile.Entrepreneur.Focus, profile.Entrepreneur.Tone)
	fmt.Fprintf(&b, "  AI Expert (Secondary): Focus on %s Tone: %s\n", profile.AIExpert.Focus, profile.AIExpert.Tone)
	fmt.Fprintf(&b, "Key Differentiators: %s\n", profile.Differentiators)
	fmt.Fprintf(&b, "Core Philosophy: %q\n", profile.Philosophy)
	fmt.Fprintf(&b, "Overall Tone: %s\n", profile.OverallTone)
	fmt.Fprintf(&b, "Mandatory Inclusion: %s\n", profile.MandatoryInclusion)
	fmt.Fprintf(&b, "\nContent Source: %s\n", sourceLabel)
	fmt.Fprintf(&b, "Source Text: %q\n\n", req.SourceText)

	b.WriteString("Based on the source text and the brand guidelines, generate engaging social media content for Instagram, LinkedIn, and X (Twitter).\n")
	b.WriteString("Ensure the content reflects the dual brand facets where appropriate, and always aims to provide value and maintain authenticity.\n\n")

	if req.SourceKind == model.SourceKindYouTube {
		b.WriteString("For YouTube videos:\n")
		b.WriteString("- Identify \"journey\" and \"value\" segments in the transcript.\n")
		b.WriteString("- Suggest 1-3 Instagram captions. For Instagram, suggest a conceptual clip URL (e.g., \"youtube_clip_1_timestamp_range\").\n")
		b.WriteString("- Generate 2-3 LinkedIn posts (longer, professional, insightful).\n")
		b.WriteString("- Generate 3-5 concise X (Twitter) tweets (short, impactful, use relevant hashtags).\n")
	} else {
		b.WriteString("For Quick X (Twitter) Thought:\n")
		b.WriteString("- Generate 1-2 tweets based on the thought.\n")
	}

	b.WriteString("\nFormat the output as a JSON object with the following structure:\n")
	b.WriteString(`{
  "instagramPosts": [{ "clipUrl": "...", "caption": "..." }],
  "linkedinPosts": [{ "text": "..." }],
  "twitterPosts": [{ "text": "..." }]
}
`)

	return b.String()
}
