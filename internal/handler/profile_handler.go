package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/hitoshi/socialhub/internal/model"
	"github.com/hitoshi/socialhub/internal/profile"
)

// ProfileServiceInterface はプロファイルハンドラーが必要とするサービスインターフェース。
type ProfileServiceInterface interface {
	GetOrCreate(ctx context.Context, userID string) (*model.BrandProfile, error)
	Update(ctx context.Context, userID string, input profile.UpdateInput) (*model.BrandProfile, error)
}

// ProfileHandler はブランドプロファイルのHTTPハンドラー。
type ProfileHandler struct {
	service ProfileServiceInterface
}

// NewProfileHandler はProfileHandlerを生成する。
func NewProfileHandler(service ProfileServiceInterface) *ProfileHandler {
	return &ProfileHandler{service: service}
}

// brandFacetPayload はブランドボイスの一面のリクエスト/レスポンス形式。
type brandFacetPayload struct {
	Focus string `json:"focus"`
	Tone  string `json:"tone"`
}

// profilePayload はブランドプロファイルのリクエスト/レスポンス形式。
type profilePayload struct {
	Name               string            `json:"name"`
	Agency             string            `json:"agency"`
	Entrepreneur       brandFacetPayload `json:"entrepreneur"`
	AIExpert           brandFacetPayload `json:"ai_expert"`
	Differentiators    string            `json:"differentiators"`
	Philosophy         string            `json:"philosophy"`
	OverallTone        string            `json:"overall_tone"`
	MandatoryInclusion string            `json:"mandatory_inclusion"`
}

// GetProfile はユーザーのブランドプロファイルを返す。
// 未作成の場合はデフォルト値で作成してから返す。
// GET /api/profile
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	p, err := h.service.GetOrCreate(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProfilePayload(p))
}

// UpdateProfile はブランドプロファイルを更新する。
// PUT /api/profile
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req profilePayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	p, err := h.service.Update(r.Context(), userID, profile.UpdateInput{
		Name:               req.Name,
		Agency:             req.Agency,
		Entrepreneur:       model.BrandFacet{Focus: req.Entrepreneur.Focus, Tone: req.Entrepreneur.Tone},
		AIExpert:           model.BrandFacet{Focus: req.AIExpert.Focus, Tone: req.AIExpert.Tone},
		Differentiators:    req.Differentiators,
		Philosophy:         req.Philosophy,
		OverallTone:        req.OverallTone,
		MandatoryInclusion: req.MandatoryInclusion,
	})
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toProfilePayload(p))
}

// toProfilePayload はmodel.BrandProfileからAPIレスポンスに変換する。
func toProfilePayload(p *model.BrandProfile) profilePayload {
	return profilePayload{
		Name:               p.Name,
		Agency:             p.Agency,
		Entrepreneur:       brandFacetPayload{Focus: p.Entrepreneur.Focus, Tone: p.Entrepreneur.Tone},
		AIExpert:           brandFacetPayload{Focus: p.AIExpert.Focus, Tone: p.AIExpert.Tone},
		Differentiators:    p.Differentiators,
		Philosophy:         p.Philosophy,
		OverallTone:        p.OverallTone,
		MandatoryInclusion: p.MandatoryInclusion,
	}
}
