// Package model はドメインモデルを定義する。
package model

import "time"

// OutcomeStatus はpublishタスク1件の結果種別を表す。
type OutcomeStatus string

const (
	// OutcomeSuccess は外部プラットフォームへの投稿成功。
	OutcomeSuccess OutcomeStatus = "success"
	// OutcomeFailed は投稿失敗（未接続・外部呼び出し失敗を含む）。
	OutcomeFailed OutcomeStatus = "failed"
)

// FailureReasonNotConnected はプラットフォーム未接続によるタスク失敗理由。
// 外部呼び出しを行わずローカルのゲートで即時確定する。
const FailureReasonNotConnected = "not_connected"

// PostHistoryEntry はpublishタスク1件の結果を記録するイミュータブルなレコード。
// 追記専用で、作成後に更新・削除されることはない。
// 1つのDraftから候補数分のエントリが生成される。
type PostHistoryEntry struct {
	ID            string
	UserID        string
	Platform      Platform
	OriginDraftID string
	Content       PostBody // 投稿時点の本文スナップショット
	PostURL       string   // 成功時のみ: 外部プラットフォーム上のURL
	Status        OutcomeStatus
	FailureReason string // 失敗時のみ
	PostedAt      time.Time
}

// HistoryFilter は投稿履歴の検索条件を表す。
// ゼロ値のフィールドは条件なしとして扱う。
type HistoryFilter struct {
	Platform Platform   // 空文字列なら全プラットフォーム
	Date     *time.Time // 指定日（UTC日付単位）のみに絞り込む
}

// PublishOutcome はpublishタスク1件の結果を表す。
// Indexは同一プラットフォーム内の候補リスト上の位置で、
// レポートの順序復元に使用する。
type PublishOutcome struct {
	Platform      Platform
	Index         int
	Status        OutcomeStatus
	PostURL       string
	FailureReason string
}

// PublishReport はpublish呼び出し全体の結果をプラットフォーム別に集約したもの。
// 各プラットフォーム内の並び順は元の候補順を保持する。
// キャンセルにより開始されなかったタスクの結果は含まれない。
type PublishReport map[Platform][]PublishOutcome

// TotalCount はレポート内の結果の合計数を返す。
func (r PublishReport) TotalCount() int {
	n := 0
	for _, outcomes := range r {
		n += len(outcomes)
	}
	return n
}
