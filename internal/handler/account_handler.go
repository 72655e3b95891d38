package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/hitoshi/socialhub/internal/model"
)

// AccountServiceInterface はアカウントハンドラーが必要とするサービスインターフェース。
type AccountServiceInterface interface {
	Connect(ctx context.Context, userID string, platform model.Platform, credential string) (*model.ConnectedAccount, error)
	Disconnect(ctx context.Context, userID string, platform model.Platform) error
	List(ctx context.Context, userID string) ([]*model.ConnectedAccount, error)
}

// AccountHandler はプラットフォーム接続管理のHTTPハンドラー。
type AccountHandler struct {
	service AccountServiceInterface
}

// NewAccountHandler はAccountHandlerを生成する。
func NewAccountHandler(service AccountServiceInterface) *AccountHandler {
	return &AccountHandler{service: service}
}

// connectRequest はアカウント接続リクエストのボディ。
type connectRequest struct {
	Credential string `json:"credential"`
}

// accountResponse は接続アカウントのAPIレスポンス。
// 資格情報そのものはレスポンスに含めない。
type accountResponse struct {
	Platform  string    `json:"platform"`
	State     string    `json:"state"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ConnectAccount はプラットフォームを接続する。
// 接続済みプラットフォームへの再接続は資格情報を上書きする。
// POST /api/accounts/{platform}/connect
func (h *AccountHandler) ConnectAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	platform := model.Platform(chi.URLParam(r, "platform"))

	var req connectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeInvalidRequestBody(w)
		return
	}

	if req.Credential == "" {
		writeAPIErrorResponse(w, http.StatusBadRequest, &model.APIError{
			Code:     "INVALID_REQUEST",
			Message:  "資格情報が空です。",
			Category: "validation",
			Action:   "credentialを指定してください。",
		})
		return
	}

	account, err := h.service.Connect(r.Context(), userID, platform, req.Credential)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(toAccountResponse(account))
}

// DisconnectAccount はプラットフォームの接続を解除する。
// 未接続プラットフォームへの切断は冪等に成功する。
// DELETE /api/accounts/{platform}
func (h *AccountHandler) DisconnectAccount(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	platform := model.Platform(chi.URLParam(r, "platform"))

	if !platform.Valid() {
		handleServiceError(w, model.NewInvalidPlatformError(string(platform)))
		return
	}

	if err := h.service.Disconnect(r.Context(), userID, platform); err != nil {
		handleServiceError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListAccounts はユーザーの接続アカウント一覧を返す。
// 接続レコードのないプラットフォームも未接続として含める。
// GET /api/accounts
func (h *AccountHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	accounts, err := h.service.List(r.Context(), userID)
	if err != nil {
		handleServiceError(w, err)
		return
	}

	byPlatform := make(map[model.Platform]*model.ConnectedAccount, len(accounts))
	for _, account := range accounts {
		byPlatform[account.Platform] = account
	}

	responses := make([]accountResponse, 0, len(model.AllPlatforms))
	for _, platform := range model.AllPlatforms {
		if account, ok := byPlatform[platform]; ok {
			responses = append(responses, toAccountResponse(account))
			continue
		}
		responses = append(responses, accountResponse{
			Platform: string(platform),
			State:    string(model.CredentialStateDisconnected),
		})
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]any{"accounts": responses})
}

// toAccountResponse はmodel.ConnectedAccountからAPIレスポンスに変換する。
func toAccountResponse(account *model.ConnectedAccount) accountResponse {
	return accountResponse{
		Platform:  string(account.Platform),
		State:     string(account.State),
		UpdatedAt: account.UpdatedAt,
	}
}
