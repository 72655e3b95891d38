// Package model はドメインモデルを定義する。
package model

import "time"

// BrandFacet はブランドボイスの一面（焦点とトーン）を表す。
type BrandFacet struct {
	Focus string
	Tone  string
}

// BrandProfile は生成リクエストをパラメータ化するボイス/ガイドライン設定。
// 生成呼び出し中はイミュータブルとして扱う。
// ユーザーの初回アクセス時にデフォルト値で遅延作成される。
type BrandProfile struct {
	ID                 string
	UserID             string
	Name               string
	Agency             string
	Entrepreneur       BrandFacet // 内省的・パーソナルなコンテンツ向け
	AIExpert           BrandFacet // 実務的・自動化系コンテンツ向け
	Differentiators    string
	Philosophy         string
	OverallTone        string
	MandatoryInclusion string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// DefaultBrandProfile は組み込みのデフォルトブランドプロファイルを返す。
// プロファイル未作成のユーザーの初回アクセス時と、
// プロファイルなしで生成が呼ばれた場合のフォールバックに使用する。
func DefaultBrandProfile(userID string) *BrandProfile {
	now := time.Now()
	return &BrandProfile{
		UserID: userID,
		Name:   "Jake Woodworth",
		Agency: "Woodworth AI",
		Entrepreneur: BrandFacet{
			Focus: "Jake's journey, mindset, leadership, adaptability, philosophy, broader business insights, growth strategies, personal development, the 'why' behind building things.",
			Tone:  "Personal, reflective, inspiring, philosophical, passionate, authentic.",
		},
		AIExpert: BrandFacet{
			Focus: "Practical AI applications, automation strategies, solving specific business inefficiencies with AI, industry trends in AI, tangible benefits of AI solutions.",
			Tone:  "Authoritative, practical, problem-solving, results-oriented, clear, concise.",
		},
		Differentiators:    "Young, driven, innately adaptable (military kid background), multifaceted thinker (philosopher, writer, psychologist, leader), authentic journey (AI interest grew organically), competitive drive ('will win,' 'love doing it').",
		Philosophy:         "If there's time to be saved and resources to be conserved, why not?",
		OverallTone:        "Confident, approachable, enthusiastic, transparent, insightful, action-oriented.",
		MandatoryInclusion: "Always aim to provide value and maintain authenticity.",
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}
