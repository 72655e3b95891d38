package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/hitoshi/socialhub/internal/model"
)

// publishRequest はプラットフォーム投稿APIへのリクエスト形式。
type publishRequest struct {
	ClipRef string `json:"clip_ref,omitempty"`
	Caption string `json:"caption,omitempty"`
	Text    string `json:"text,omitempty"`
}

// publishResponse はプラットフォーム投稿APIのレスポンス形式。
type publishResponse struct {
	PostURL string `json:"post_url"`
}

// HTTPPublisher はHTTP JSON APIを使用するPublisherの実装。
// 各プラットフォームの投稿エンドポイントに対して同じ形式でリクエストを送る。
type HTTPPublisher struct {
	httpClient *http.Client
	platform   model.Platform
	endpoint   string
	logger     *slog.Logger
}

// NewHTTPPublisher はHTTPPublisherの新しいインスタンスを生成する。
func NewHTTPPublisher(httpClient *http.Client, platform model.Platform, endpoint string, logger *slog.Logger) *HTTPPublisher {
	return &HTTPPublisher{
		httpClient: httpClient,
		platform:   platform,
		endpoint:   endpoint,
		logger:     logger,
	}
}

// Publish は本文を投稿エンドポイントに送信し、投稿先のURLを返す。
func (p *HTTPPublisher) Publish(ctx context.Context, credential string, body model.PostBody) (string, error) {
	payload, err := json.Marshal(publishRequest{
		ClipRef: body.ClipRef,
		Caption: body.Caption,
		Text:    body.Text,
	})
	if err != nil {
		return "", fmt.Errorf("リクエストのシリアライズに失敗しました: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+credential)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		p.logger.Error("投稿APIの呼び出しに失敗しました",
			slog.String("platform", string(p.platform)),
			slog.String("error", err.Error()),
		)
		return "", fmt.Errorf("%s への投稿に失敗しました: %w", p.platform, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		p.logger.Error("投稿APIがエラーステータスを返しました",
			slog.String("platform", string(p.platform)),
			slog.Int("http_status", resp.StatusCode),
		)
		return "", fmt.Errorf("%s の投稿APIがステータス %d を返しました", p.platform, resp.StatusCode)
	}

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}

	var result publishResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return "", fmt.Errorf("レスポンスJSONのパースに失敗しました: %w", err)
	}
	if result.PostURL == "" {
		return "", fmt.Errorf("%s の投稿APIが投稿URLを返しませんでした", p.platform)
	}

	return result.PostURL, nil
}

// compile-time interface check
var _ Publisher = (*HTTPPublisher)(nil)
