package source

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/mmcdole/gofeed"
	"golang.org/x/net/html"

	"github.com/hitoshi/socialhub/internal/model"
	"github.com/hitoshi/socialhub/internal/security"
)

const (
	// defaultWatchBaseURL は動画ページの取得先。
	defaultWatchBaseURL = "https://www.youtube.com/watch"
	// defaultFeedBaseURL はチャンネルRSSフィードの取得先。
	defaultFeedBaseURL = "https://www.youtube.com/feeds/videos.xml"
)

// VideoMetadata は解決済みの動画メタデータ。
type VideoMetadata struct {
	VideoID     string
	Title       string
	Description string
}

// SourceText は生成リクエストに渡すソーステキストを組み立てて返す。
func (m *VideoMetadata) SourceText() string {
	if m.Description == "" {
		return m.Title
	}
	return m.Title + "\n\n" + m.Description
}

// ResolverService は動画URLからメタデータを解決するインターフェース。
type ResolverService interface {
	// Resolve は動画URLを検証し、メタデータを取得して返す。
	Resolve(ctx context.Context, rawURL string) (*VideoMetadata, error)
}

// Resolver はResolverServiceの実装。
// 動画ページのog:メタタグからタイトルと概要を取得し、
// チャンネルRSSフィードに同じ動画のエントリがあれば、
// より詳細な説明文で補完する。
type Resolver struct {
	httpClient *http.Client
	guard      security.SSRFGuardService
	sanitizer  security.SourceSanitizerService
	parser     *gofeed.Parser
	logger     *slog.Logger
	maxSize    int64

	// テスト用に取得先を差し替え可能
	watchBaseURL string
	feedBaseURL  string
}

// NewResolver はResolverの新しいインスタンスを生成する。
// httpClientにはSSRFGuardServiceのNewSafeClientで生成したクライアントを渡すこと。
func NewResolver(httpClient *http.Client, guard security.SSRFGuardService, sanitizer security.SourceSanitizerService, maxSize int64, logger *slog.Logger) *Resolver {
	return &Resolver{
		httpClient:   httpClient,
		guard:        guard,
		sanitizer:    sanitizer,
		parser:       gofeed.NewParser(),
		logger:       logger,
		maxSize:      maxSize,
		watchBaseURL: defaultWatchBaseURL,
		feedBaseURL:  defaultFeedBaseURL,
	}
}

// Resolve は動画URLを検証し、メタデータを取得して返す。
// URLの検証に失敗した場合はAPIErrorを返し、外部リクエストは行わない。
func (r *Resolver) Resolve(ctx context.Context, rawURL string) (*VideoMetadata, error) {
	if err := r.guard.ValidateURL(rawURL); err != nil {
		r.logger.Warn("動画URLの検証に失敗しました",
			slog.String("url", rawURL),
			slog.String("error", err.Error()),
		)
		return nil, model.NewSSRFBlockedError()
	}

	videoID, err := ParseVideoID(rawURL)
	if err != nil {
		return nil, model.NewInvalidURLError(err.Error())
	}

	page, err := r.fetchWatchPage(ctx, videoID)
	if err != nil {
		r.logger.Error("動画ページの取得に失敗しました",
			slog.String("video_id", videoID),
			slog.String("error", err.Error()),
		)
		return nil, model.NewSourceFetchFailedError(err.Error())
	}

	meta := &VideoMetadata{
		VideoID:     videoID,
		Title:       r.sanitizer.SanitizeText(page.title),
		Description: r.sanitizer.SanitizeText(page.description),
	}
	if meta.Title == "" {
		return nil, model.NewSourceFetchFailedError("動画タイトルを取得できませんでした")
	}

	// RSSフィードの説明文の方が長い場合はそちらを採用する。
	// フィード取得の失敗はメタデータ解決全体の失敗にはしない。
	if page.channelID != "" {
		if desc := r.fetchFeedDescription(ctx, page.channelID, videoID); desc != "" {
			clean := r.sanitizer.SanitizeText(desc)
			if len(clean) > len(meta.Description) {
				meta.Description = clean
			}
		}
	}

	return meta, nil
}

// watchPage は動画ページから抽出したメタデータ。
type watchPage struct {
	title       string
	description string
	channelID   string
}

// fetchWatchPage は動画ページを取得し、og:メタタグを抽出する。
func (r *Resolver) fetchWatchPage(ctx context.Context, videoID string) (*watchPage, error) {
	reqURL := r.watchBaseURL + "?v=" + videoID

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("HTTPリクエストの作成に失敗しました: %w", err)
	}
	req.Header.Set("User-Agent", "SocialHub/1.0")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("動画ページがステータス %d を返しました", resp.StatusCode)
	}

	page, err := parseWatchPage(io.LimitReader(resp.Body, r.maxSize))
	if err != nil {
		return nil, fmt.Errorf("動画ページのパースに失敗しました: %w", err)
	}

	return page, nil
}

// parseWatchPage はHTMLからog:title、og:description、channelIdを抽出する。
func parseWatchPage(body io.Reader) (*watchPage, error) {
	doc, err := html.Parse(body)
	if err != nil {
		return nil, err
	}

	page := &watchPage{}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "meta" {
			var property, itemprop, content string
			for _, attr := range n.Attr {
				switch attr.Key {
				case "property", "name":
					property = attr.Val
				case "itemprop":
					itemprop = attr.Val
				case "content":
					content = attr.Val
				}
			}
			switch {
			case property == "og:title":
				page.title = content
			case property == "og:description":
				page.description = content
			case itemprop == "channelId":
				page.channelID = content
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	return page, nil
}

// fetchFeedDescription はチャンネルRSSフィードから指定動画の説明文を取得する。
// 見つからない場合や取得に失敗した場合は空文字列を返す。
func (r *Resolver) fetchFeedDescription(ctx context.Context, channelID, videoID string) string {
	feedURL := r.feedBaseURL + "?channel_id=" + channelID

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, feedURL, nil)
	if err != nil {
		return ""
	}
	req.Header.Set("User-Agent", "SocialHub/1.0")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		r.logger.Warn("チャンネルフィードの取得に失敗しました",
			slog.String("channel_id", channelID),
			slog.String("error", err.Error()),
		)
		return ""
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return ""
	}

	feed, err := r.parser.Parse(io.LimitReader(resp.Body, r.maxSize))
	if err != nil {
		r.logger.Warn("チャンネルフィードのパースに失敗しました",
			slog.String("channel_id", channelID),
			slog.String("error", err.Error()),
		)
		return ""
	}

	for _, item := range feed.Items {
		if strings.Contains(item.Link, videoID) {
			if item.Description != "" {
				return item.Description
			}
			// YouTubeのフィードは説明文をmedia:group配下に持つ
			if media, ok := item.Extensions["media"]; ok {
				for _, group := range media["group"] {
					for _, desc := range group.Children["description"] {
						if desc.Value != "" {
							return desc.Value
						}
					}
				}
			}
		}
	}

	return ""
}

// compile-time interface check
var _ ResolverService = (*Resolver)(nil)
