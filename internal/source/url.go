// Package source はコンテンツ生成の入力ソースの解決機能を提供する。
// YouTube動画URLから動画IDを抽出し、メタデータ（タイトル・説明文）を取得して
// 生成プロンプトの素材となるソーステキストを組み立てる。
package source

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// videoIDPattern はYouTube動画IDの形式（11文字の英数字とハイフン・アンダースコア）。
var videoIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{11}$`)

// youtubeHosts はYouTube動画URLとして受け付けるホスト名。
var youtubeHosts = map[string]bool{
	"youtube.com":     true,
	"www.youtube.com": true,
	"m.youtube.com":   true,
	"youtu.be":        true,
}

// ParseVideoID はYouTube動画URLから動画IDを抽出する。
// 対応形式:
//   - https://www.youtube.com/watch?v=VIDEO_ID
//   - https://youtu.be/VIDEO_ID
//   - https://www.youtube.com/shorts/VIDEO_ID
//   - https://www.youtube.com/embed/VIDEO_ID
//
// YouTube以外のURLまたは動画IDを含まないURLの場合はエラーを返す。
func ParseVideoID(rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return "", fmt.Errorf("URLのパースに失敗しました: %w", err)
	}

	host := strings.ToLower(parsed.Hostname())
	if !youtubeHosts[host] {
		return "", fmt.Errorf("YouTubeのURLではありません: %s", host)
	}

	var id string
	switch {
	case host == "youtu.be":
		id = strings.Trim(parsed.Path, "/")
	case strings.HasPrefix(parsed.Path, "/watch"):
		id = parsed.Query().Get("v")
	case strings.HasPrefix(parsed.Path, "/shorts/"):
		id = strings.Trim(strings.TrimPrefix(parsed.Path, "/shorts/"), "/")
	case strings.HasPrefix(parsed.Path, "/embed/"):
		id = strings.Trim(strings.TrimPrefix(parsed.Path, "/embed/"), "/")
	}

	if id == "" {
		return "", fmt.Errorf("URLに動画IDが含まれていません: %s", rawURL)
	}
	if !videoIDPattern.MatchString(id) {
		return "", fmt.Errorf("動画IDの形式が不正です: %s", id)
	}

	return id, nil
}
