// Package publisher は外部プラットフォームへの投稿機能を提供する。
// プラットフォームごとの投稿APIクライアントと、プラットフォーム名で
// クライアントを引くレジストリを含む。
package publisher

import (
	"context"
	"fmt"

	"github.com/hitoshi/socialhub/internal/model"
)

// Publisher は1プラットフォームへの投稿処理のインターフェース。
type Publisher interface {
	// Publish は本文を外部プラットフォームに投稿し、投稿先のURLを返す。
	// credentialには接続時に保存したオペーク資格情報を渡す。
	Publish(ctx context.Context, credential string, body model.PostBody) (string, error)
}

// Registry はプラットフォーム別のPublisherを保持する。
// 新しいプラットフォームの追加はRegisterの呼び出しだけで完結する。
type Registry struct {
	publishers map[model.Platform]Publisher
}

// NewRegistry は空のRegistryを生成する。
func NewRegistry() *Registry {
	return &Registry{
		publishers: make(map[model.Platform]Publisher),
	}
}

// Register はプラットフォームのPublisherを登録する。
// 同じプラットフォームへの再登録は上書きになる。
func (r *Registry) Register(platform model.Platform, p Publisher) {
	r.publishers[platform] = p
}

// Get は指定プラットフォームのPublisherを返す。
// 未登録の場合はエラーを返す。
func (r *Registry) Get(platform model.Platform) (Publisher, error) {
	p, ok := r.publishers[platform]
	if !ok {
		return nil, fmt.Errorf("プラットフォーム %s のPublisherが登録されていません", platform)
	}
	return p, nil
}
