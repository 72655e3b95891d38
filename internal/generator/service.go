package generator

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/hitoshi/socialhub/internal/metrics"
	"github.com/hitoshi/socialhub/internal/model"
)

// プラットフォーム別の候補数の許容範囲。
// ソース種別ごとに生成APIへの指示と整合させる。
var candidateRanges = map[model.SourceKind]map[model.Platform][2]int{
	model.SourceKindYouTube: {
		model.PlatformInstagram: {1, 3},
		model.PlatformLinkedIn:  {2, 3},
		model.PlatformTwitter:   {3, 5},
	},
	model.SourceKindQuickThought: {
		model.PlatformInstagram: {0, 0},
		model.PlatformLinkedIn:  {0, 0},
		model.PlatformTwitter:   {1, 2},
	},
}

// Service は投稿候補の生成サービス。
// プロンプトの組み立て、生成APIの呼び出し、結果の検証とバンドル構築を担う。
type Service struct {
	api     GenerationAPI
	metrics metrics.MetricsCollector
	logger  *slog.Logger
}

// NewService はServiceの新しいインスタンスを生成する。
func NewService(api GenerationAPI, collector metrics.MetricsCollector, logger *slog.Logger) *Service {
	return &Service{
		api:     api,
		metrics: collector,
		logger:  logger,
	}
}

// Generate は生成リクエストから投稿候補バンドルを生成する。
// 生成APIの呼び出し失敗または不正な形状の結果の場合は
// GENERATION_FAILEDエラーを返し、部分的なバンドルは返さない。
// 全候補はpending状態で返る。
func (s *Service) Generate(ctx context.Context, req model.GenerationRequest) (model.CandidateBundle, error) {
	if !req.SourceKind.Valid() {
		return nil, model.NewInvalidSourceError(fmt.Sprintf("不明なソース種別: %s", req.SourceKind))
	}
	if strings.TrimSpace(req.SourceText) == "" {
		return nil, model.NewInvalidSourceError("ソーステキストが空です")
	}

	prompt := BuildPrompt(req)

	start := time.Now()
	result, err := s.api.Generate(ctx, prompt)
	s.metrics.RecordGenerationLatency(time.Since(start))
	if err != nil {
		s.metrics.RecordGenerationFailure()
		s.logger.Error("コンテンツ生成に失敗しました",
			slog.String("source_kind", string(req.SourceKind)),
			slog.String("error", err.Error()),
		)
		return nil, model.NewGenerationFailedError(err.Error())
	}

	bundle := buildBundle(result)

	if err := validateBundle(req.SourceKind, bundle); err != nil {
		s.metrics.RecordGenerationFailure()
		s.logger.Error("生成結果の形状が不正です",
			slog.String("source_kind", string(req.SourceKind)),
			slog.String("error", err.Error()),
		)
		return nil, model.NewGenerationFailedError(err.Error())
	}

	s.metrics.RecordGenerationSuccess()
	return bundle, nil
}

// buildBundle は生成APIの結果をCandidateBundleに変換する。
// 全プラットフォームのキーを持ち、全候補はpending状態になる。
func buildBundle(result *generationResult) model.CandidateBundle {
	bundle := model.NewCandidateBundle()

	for _, p := range result.InstagramPosts {
		bundle[model.PlatformInstagram] = append(bundle[model.PlatformInstagram], model.PostCandidate{
			Platform: model.PlatformInstagram,
			Body:     model.PostBody{ClipRef: p.ClipURL, Caption: p.Caption},
			Status:   model.CandidateStatusPending,
		})
	}
	for _, p := range result.LinkedinPosts {
		bundle[model.PlatformLinkedIn] = append(bundle[model.PlatformLinkedIn], model.PostCandidate{
			Platform: model.PlatformLinkedIn,
			Body:     model.PostBody{Text: p.Text},
			Status:   model.CandidateStatusPending,
		})
	}
	for _, p := range result.TwitterPosts {
		bundle[model.PlatformTwitter] = append(bundle[model.PlatformTwitter], model.PostCandidate{
			Platform: model.PlatformTwitter,
			Body:     model.PostBody{Text: p.Text},
			Status:   model.CandidateStatusPending,
		})
	}

	return bundle
}

// validateBundle は候補数がソース種別ごとの許容範囲に収まるかを検証する。
func validateBundle(kind model.SourceKind, bundle model.CandidateBundle) error {
	ranges := candidateRanges[kind]
	for _, platform := range model.AllPlatforms {
		r := ranges[platform]
		n := len(bundle[platform])
		if n < r[0] || n > r[1] {
			return fmt.Errorf("%s の候補数が許容範囲外です: %d件（許容: %d〜%d件）", platform, n, r[0], r[1])
		}
	}
	return nil
}
