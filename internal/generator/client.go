package generator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
)

// generationResult は生成APIのレスポンス形式。
type generationResult struct {
	InstagramPosts []instagramPost `json:"instagramPosts"`
	LinkedinPosts  []textPost      `json:"linkedinPosts"`
	TwitterPosts   []textPost      `json:"twitterPosts"`
}

type instagramPost struct {
	ClipURL string `json:"clipUrl"`
	Caption string `json:"caption"`
}

type textPost struct {
	Text string `json:"text"`
}

// GenerationAPI は生成APIクライアントのインターフェース。
type GenerationAPI interface {
	// Generate はプロンプトを生成APIに送信し、結果を返す。
	Generate(ctx context.Context, prompt string) (*generationResult, error)
}

// Client は生成APIのHTTPクライアント。
type Client struct {
	httpClient *http.Client
	endpoint   string
	apiKey     string
	logger     *slog.Logger
}

// NewClient はClientの新しいインスタンスを生成する。
func NewClient(httpClient *http.Client, endpoint, apiKey string, logger *slog.Logger) *Client {
	return &Client{
		httpClient: httpClient,
		endpoint:   endpoint,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// Generate はプロンプトを生成APIに送信し、結果を返す。
// 到達不能・エラーステータス・不正なレスポンスの場合はエラーを返す。
// 部分的な結果を返すことはない。
func (c *Client) Generate(ctx context.Context, prompt string) (*generationResult, error) {
	payload, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return nil, fmt.Errorf("リクエストのシリアライズに失敗しました: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("生成APIの呼び出しに失敗しました",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("生成APIに到達できません: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("生成APIがエラーステータスを返しました",
			slog.Int("http_status", resp.StatusCode),
		)
		return nil, fmt.Errorf("生成APIがステータス %d を返しました", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("レスポンスボディの読み取りに失敗しました: %w", err)
	}

	var result generationResult
	if err := json.Unmarshal(body, &result); err != nil {
		c.logger.Error("生成APIのレスポンスのパースに失敗しました",
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("レスポンスJSONのパースに失敗しました: %w", err)
	}

	return &result, nil
}

// compile-time interface check
var _ GenerationAPI = (*Client)(nil)
