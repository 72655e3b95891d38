// Package orchestrator はドラフト候補の外部プラットフォームへの一括投稿を提供する。
// 候補ごとのタスク展開、並列制御、投稿履歴の記録を含む。
package orchestrator

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/hitoshi/socialhub/internal/metrics"
	"github.com/hitoshi/socialhub/internal/model"
	"github.com/hitoshi/socialhub/internal/publisher"
)

// CredentialSource は接続済みプラットフォームの資格情報を取得するインターフェース。
type CredentialSource interface {
	// ConnectedCredentials は接続状態のプラットフォームのみを含む資格情報マップを返す。
	ConnectedCredentials(ctx context.Context, userID string) (map[model.Platform]string, error)
}

// PublisherRegistry はプラットフォーム別のPublisherを引くインターフェース。
type PublisherRegistry interface {
	Get(platform model.Platform) (publisher.Publisher, error)
}

// HistoryAppender は投稿履歴を追記するインターフェース。
type HistoryAppender interface {
	Append(ctx context.Context, entry *model.PostHistoryEntry) error
}

// publishTask は候補1件に対応する投稿タスク。
type publishTask struct {
	platform model.Platform
	index    int
	body     model.PostBody
}

// Orchestrator はドラフトの全候補を並列で投稿し、結果レポートを組み立てる。
// タスクは互いに独立しており、1件の失敗が他のタスクに影響することはない。
// semaphoreパターンで最大並列数を制御する。
type Orchestrator struct {
	credentials    CredentialSource
	registry       PublisherRegistry
	history        HistoryAppender
	metrics        metrics.MetricsCollector
	logger         *slog.Logger
	maxConcurrency int
}

// NewOrchestrator はOrchestratorの新しいインスタンスを生成する。
// maxConcurrencyが0以下の場合はデフォルト値10を使用する。
func NewOrchestrator(
	credentials CredentialSource,
	registry PublisherRegistry,
	history HistoryAppender,
	collector metrics.MetricsCollector,
	logger *slog.Logger,
	maxConcurrency int,
) *Orchestrator {
	if maxConcurrency <= 0 {
		maxConcurrency = 10
	}
	return &Orchestrator{
		credentials:    credentials,
		registry:       registry,
		history:        history,
		metrics:        collector,
		logger:         logger,
		maxConcurrency: maxConcurrency,
	}
}

// Publish はドラフトの全候補を投稿し、候補順を保持したレポートを返す。
// 未接続プラットフォームの候補は外部呼び出しなしで失敗として記録される。
// 各タスクの完了時点で投稿履歴が1件追記される。
// コンテキストがキャンセルされた場合、未開始のタスクは実行されず
// レポートにも含まれない。実行中のタスクは完了まで継続する。
func (o *Orchestrator) Publish(ctx context.Context, draft *model.Draft) (model.PublishReport, error) {
	start := time.Now()

	credentials, err := o.credentials.ConnectedCredentials(ctx, draft.UserID)
	if err != nil {
		return nil, fmt.Errorf("接続済みアカウントの取得に失敗しました: %w", err)
	}

	// 候補をプラットフォーム順・候補順でタスクに展開する
	var tasks []publishTask
	for _, p := range model.AllPlatforms {
		for i, candidate := range draft.Candidates[p] {
			tasks = append(tasks, publishTask{
				platform: p,
				index:    i,
				body:     candidate.Body,
			})
		}
	}

	o.logger.Info("投稿サイクルを開始します",
		slog.String("draft_id", draft.ID),
		slog.Int("task_count", len(tasks)),
		slog.Int("connected_count", len(credentials)),
	)

	// タスク順に対応する結果スロット。未開始のタスクはnilのまま残る。
	outcomes := make([]*model.PublishOutcome, len(tasks))

	// semaphoreパターンで並列数を制御
	sem := make(chan struct{}, o.maxConcurrency)
	var wg sync.WaitGroup

dispatch:
	for i, task := range tasks {
		select {
		case <-ctx.Done():
			o.logger.Warn("キャンセルにより残りのタスクを開始しません",
				slog.String("draft_id", draft.ID),
				slog.Int("remaining", len(tasks)-i),
			)
			break dispatch
		case sem <- struct{}{}: // semaphore取得（ブロック）
		}

		wg.Add(1)
		go func(slot int, t publishTask) {
			defer wg.Done()
			defer func() { <-sem }() // semaphore解放

			outcome := o.runTask(ctx, draft, credentials, t)
			outcomes[slot] = &outcome
		}(i, task)
	}

	wg.Wait()

	// タスク展開時の順序をそのまま保持してレポートを組み立てる
	report := make(model.PublishReport, len(model.AllPlatforms))
	for _, p := range model.AllPlatforms {
		report[p] = []model.PublishOutcome{}
	}
	for _, outcome := range outcomes {
		if outcome == nil {
			continue
		}
		report[outcome.Platform] = append(report[outcome.Platform], *outcome)
	}

	o.logger.Info("投稿サイクルが完了しました",
		slog.String("draft_id", draft.ID),
		slog.Int("task_count", len(tasks)),
		slog.Int("completed_count", report.TotalCount()),
		slog.Float64("duration_ms", float64(time.Since(start).Milliseconds())),
	)

	return report, nil
}

// runTask は投稿タスクを1件実行し、完了時点で履歴を追記する。
func (o *Orchestrator) runTask(ctx context.Context, draft *model.Draft, credentials map[model.Platform]string, t publishTask) model.PublishOutcome {
	outcome := model.PublishOutcome{
		Platform: t.platform,
		Index:    t.index,
	}

	credential, connected := credentials[t.platform]
	if !connected {
		// 未接続プラットフォームは外部呼び出しなしで即座に失敗とする
		outcome.Status = model.OutcomeFailed
		outcome.FailureReason = model.FailureReasonNotConnected
		o.metrics.RecordPublishFailure(string(t.platform), model.FailureReasonNotConnected)
	} else {
		postURL, err := o.executePublish(ctx, credential, t)
		if err != nil {
			outcome.Status = model.OutcomeFailed
			outcome.FailureReason = err.Error()
			o.metrics.RecordPublishFailure(string(t.platform), "publish_error")
			o.logger.Error("投稿タスクに失敗しました",
				slog.String("draft_id", draft.ID),
				slog.String("platform", string(t.platform)),
				slog.Int("index", t.index),
				slog.String("error", err.Error()),
			)
		} else {
			outcome.Status = model.OutcomeSuccess
			outcome.PostURL = postURL
			o.metrics.RecordPublishSuccess(string(t.platform))
		}
	}

	o.appendHistory(ctx, draft, t, outcome)

	return outcome
}

// executePublish はPublisherを引いて外部プラットフォームへの投稿を実行する。
func (o *Orchestrator) executePublish(ctx context.Context, credential string, t publishTask) (string, error) {
	pub, err := o.registry.Get(t.platform)
	if err != nil {
		return "", err
	}

	start := time.Now()
	postURL, err := pub.Publish(ctx, credential, t.body)
	o.metrics.RecordPublishLatency(time.Since(start))

	return postURL, err
}

// appendHistory はタスク結果を投稿履歴に追記する。
// 実行中にキャンセルされたタスクの結果も記録するため、
// 親コンテキストのキャンセルを引き継がない。
func (o *Orchestrator) appendHistory(ctx context.Context, draft *model.Draft, t publishTask, outcome model.PublishOutcome) {
	entry := &model.PostHistoryEntry{
		UserID:        draft.UserID,
		Platform:      t.platform,
		OriginDraftID: draft.ID,
		Content:       t.body,
		PostURL:       outcome.PostURL,
		Status:        outcome.Status,
		FailureReason: outcome.FailureReason,
	}

	if err := o.history.Append(context.WithoutCancel(ctx), entry); err != nil {
		o.logger.Error("投稿履歴の追記に失敗しました",
			slog.String("draft_id", draft.ID),
			slog.String("platform", string(t.platform)),
			slog.Int("index", t.index),
			slog.String("error", err.Error()),
		)
	}
}
