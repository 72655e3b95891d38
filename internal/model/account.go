// Package model はドメインモデルを定義する。
package model

import "time"

// CredentialState は接続済みアカウントの資格情報状態を表す。
type CredentialState string

const (
	// CredentialStateConnected は有効な資格情報が保存されている状態。
	CredentialStateConnected CredentialState = "connected"
	// CredentialStateDisconnected は接続が解除された状態。
	CredentialStateDisconnected CredentialState = "disconnected"
)

// ConnectedAccount はユーザーとプラットフォームの接続関係を表す。
// (UserID, Platform) が自然キーで、1ペアにつき1レコード。
// 資格情報の有効性判定は外部の資格発行コラボレータに委ねる。
type ConnectedAccount struct {
	ID         string
	UserID     string
	Platform   Platform
	Credential string // 外部発行のオペーク文字列。中身は解釈しない。
	State      CredentialState
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
