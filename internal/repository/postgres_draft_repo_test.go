package repository

import (
	"testing"

	"github.com/hitoshi/socialhub/internal/model"
)

// PostgresDraftRepoはDraftRepositoryインターフェースを満たすことを検証
func TestPostgresDraftRepo_ImplementsInterface(t *testing.T) {
	var _ DraftRepository = (*PostgresDraftRepo)(nil)
}

// 候補バンドルのシリアライズと復元で内容が保持されることを検証
func TestMarshalBundle_RoundTrip(t *testing.T) {
	bundle := model.NewCandidateBundle()
	bundle[model.PlatformInstagram] = []model.PostCandidate{
		{
			Platform: model.PlatformInstagram,
			Body:     model.PostBody{ClipRef: "clip-1", Caption: "キャプション1"},
			Status:   model.CandidateStatusPending,
		},
	}
	bundle[model.PlatformTwitter] = []model.PostCandidate{
		{
			Platform: model.PlatformTwitter,
			Body:     model.PostBody{Text: "ツイート1"},
			Status:   model.CandidateStatusPending,
		},
		{
			Platform: model.PlatformTwitter,
			Body:     model.PostBody{Text: "ツイート2"},
			Status:   model.CandidateStatusPending,
		},
	}

	data, err := marshalBundle(bundle)
	if err != nil {
		t.Fatalf("marshalBundle failed: %v", err)
	}

	restored, err := unmarshalBundle(data)
	if err != nil {
		t.Fatalf("unmarshalBundle failed: %v", err)
	}

	if len(restored[model.PlatformInstagram]) != 1 {
		t.Errorf("instagram candidates = %d, want 1", len(restored[model.PlatformInstagram]))
	}
	if len(restored[model.PlatformTwitter]) != 2 {
		t.Errorf("twitter candidates = %d, want 2", len(restored[model.PlatformTwitter]))
	}

	ig := restored[model.PlatformInstagram][0]
	if ig.Body.ClipRef != "clip-1" {
		t.Errorf("ClipRef = %q, want %q", ig.Body.ClipRef, "clip-1")
	}
	if ig.Body.Caption != "キャプション1" {
		t.Errorf("Caption = %q, want %q", ig.Body.Caption, "キャプション1")
	}
	if ig.Platform != model.PlatformInstagram {
		t.Errorf("Platform = %q, want %q", ig.Platform, model.PlatformInstagram)
	}

	tw := restored[model.PlatformTwitter][1]
	if tw.Body.Text != "ツイート2" {
		t.Errorf("Text = %q, want %q", tw.Body.Text, "ツイート2")
	}
	if tw.Status != model.CandidateStatusPending {
		t.Errorf("Status = %q, want %q", tw.Status, model.CandidateStatusPending)
	}
}

// 復元後のバンドルが全プラットフォームのキーを持つことを検証
func TestUnmarshalBundle_AllPlatformKeys(t *testing.T) {
	// LinkedInのキーが欠けた保存データ
	data := []byte(`{"instagram":[],"twitter":[{"text":"t","status":"pending"}]}`)

	bundle, err := unmarshalBundle(data)
	if err != nil {
		t.Fatalf("unmarshalBundle failed: %v", err)
	}

	for _, p := range model.AllPlatforms {
		candidates, ok := bundle[p]
		if !ok {
			t.Errorf("platform %q missing from bundle", p)
			continue
		}
		if candidates == nil {
			t.Errorf("platform %q candidates should be empty slice, got nil", p)
		}
	}
}

// 不明なプラットフォームのキーが復元時に無視されることを検証
func TestUnmarshalBundle_SkipsUnknownPlatform(t *testing.T) {
	data := []byte(`{"instagram":[],"myspace":[{"text":"t","status":"pending"}]}`)

	bundle, err := unmarshalBundle(data)
	if err != nil {
		t.Fatalf("unmarshalBundle failed: %v", err)
	}

	if _, ok := bundle[model.Platform("myspace")]; ok {
		t.Error("unknown platform should not appear in bundle")
	}
	if len(bundle) != len(model.AllPlatforms) {
		t.Errorf("bundle keys = %d, want %d", len(bundle), len(model.AllPlatforms))
	}
}

// 不正なJSONの復元がエラーになることを検証
func TestUnmarshalBundle_InvalidJSON(t *testing.T) {
	if _, err := unmarshalBundle([]byte(`{broken`)); err == nil {
		t.Error("expected error for invalid JSON")
	}
}
