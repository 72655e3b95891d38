package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/hitoshi/socialhub/internal/model"
	"github.com/hitoshi/socialhub/internal/source"
)

// GeneratorInterface はコンテンツ生成ハンドラーが必要とするサービスインターフェース。
type GeneratorInterface interface {
	Generate(ctx context.Context, req model.GenerationRequest) (model.CandidateBundle, error)
}

// SourceResolverInterface は動画URLからソーステキストを取得するインターフェース。
type SourceResolverInterface interface {
	Resolve(ctx context.Context, rawURL string) (*source.VideoMetadata, error)
}

// ProfileProviderInterface は生成に使うブランドプロファイルの取得インターフェース。
type ProfileProviderInterface interface {
	GetOrCreate(ctx context.Context, userID string) (*model.BrandProfile, error)
}

// GenerateHandler は投稿候補生成のHTTPハンドラー。
// ソースの解決、ブランドプロファイルの取得、生成サービスの呼び出しを組み立てる。
type GenerateHandler struct {
	generator GeneratorInterface
	resolver  SourceResolverInterface
	profiles  ProfileProviderInterface
}

// NewGenerateHandler はGenerateHandlerを生成する。
func NewGenerateHandler(generator GeneratorInterface, resolver SourceResolverInterface, profiles ProfileProviderInterface) *GenerateHandler {
	return &GenerateHandler{
		generator: generator,
		resolver:  resolver,
		profiles:  profiles,
	}
}

// generateRequest は候補生成リクエストのボディ。
type generateRequest struct {
	SourceKind string `json:"source_kind"`
	Source     struct {
		URL     string `json:"url"`
		Thought string `json:"thought"`
	} `json:"source"`
}

// generateResponse は候補生成のAPIレスポンス。
// 生成結果は永続化されない。保存するにはPOST /api/draftsを呼ぶ。
type generateResponse struct {
	SourceKind string                         `json:"source_kind"`
	Source     sourceResponse                 `json:"source"`
	Candidates map[string][]candidateResponse `json:"candidates"`
}

// Generate はソースから投稿候補バンドルを生成する。
// YouTube URLの場合は動画メタデータを取得してソーステキストとする。
// POST /api/generate
func (h *GenerateHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	kind := model.SourceKind(req.SourceKind)
	if !kind.Valid() {
		handleServiceError(w, model.NewInvalidSourceError("不明なソース種別です"))
		return
	}

	sourceText, err := h.resolveSourceText(r.Context(), kind, req)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	profile, err := h.profiles.GetOrCreate(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	bundle, err := h.generator.Generate(r.Context(), model.GenerationRequest{
		SourceKind: kind,
		SourceText: sourceText,
		Profile:    profile,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(generateResponse{
		SourceKind: string(kind),
		Source: sourceResponse{
			URL:     req.Source.URL,
			Thought: req.Source.Thought,
		},
		Candidates: toBundleResponse(bundle),
	})
}

// resolveSourceText はソース種別に応じて生成用のソーステキストを組み立てる。
func (h *GenerateHandler) resolveSourceText(ctx context.Context, kind model.SourceKind, req generateRequest) (string, error) {
	switch kind {
	case model.SourceKindYouTube:
		if strings.TrimSpace(req.Source.URL) == "" {
			return "", model.NewInvalidSourceError("動画URLが空です")
		}
		metadata, err := h.resolver.Resolve(ctx, req.Source.URL)
		if err != nil {
			return "", err
		}
		return metadata.SourceText(), nil
	case model.SourceKindQuickThought:
		if strings.TrimSpace(req.Source.Thought) == "" {
			return "", model.NewInvalidSourceError("思いつきテキストが空です")
		}
		return req.Source.Thought, nil
	default:
		return "", model.NewInvalidSourceError("不明なソース種別です")
	}
}
