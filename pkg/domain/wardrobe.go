package domain

import "strings"

// ColorOriginal は「ガーメント本来の色を使う」ことを示す色指定のセンチネル値です。
// ActiveColor にこの値を設定すると上書き色がクリアされます。
const ColorOriginal = "original"

// ItemID はレジストリ内で一意なガーメントの識別子です。
// 表示名とは独立したキーとして扱います。
type ItemID string

// Category はガーメントの装着部位を表します。
type Category string

// ガーメントカテゴリの定義。
const (
	CategoryTop    Category = "top"
	CategoryBottom Category = "bottom"
)

// ParseCategory は外部から受け取った自由テキストのラベルを Category に正規化します。
// 前後の空白を除去し大文字小文字を無視して比較します。
// "top" / "bottom" 以外のラベルは分類失敗として ok=false を返すのだ。
func ParseCategory(label string) (Category, bool) {
	switch Category(strings.ToLower(strings.TrimSpace(label))) {
	case CategoryTop:
		return CategoryTop, true
	case CategoryBottom:
		return CategoryBottom, true
	}
	return "", false
}

// WardrobeItem はワードローブに登録された1着のガーメントです。
// ActiveColor 以外のフィールドは生成後に変更されません。色の変更は
// WithColor で同一 ID の新しい値を作ることで表現します。
type WardrobeItem struct {
	ID          ItemID   `json:"id"`
	Name        string   `json:"name"`
	ImageURL    string   `json:"image_url"` // http(s) または gs:// の画像ロケーター
	Category    Category `json:"category"`
	ActiveColor string   `json:"active_color,omitempty"` // 空文字は「元の色のまま」
}

// WithColor は色上書きを差し替えた新しい WardrobeItem を返します。
// レシーバーは変更しません。color が ColorOriginal の場合は上書きをクリアします。
func (w WardrobeItem) WithColor(color string) WardrobeItem {
	next := w
	if strings.EqualFold(strings.TrimSpace(color), ColorOriginal) {
		next.ActiveColor = ""
	} else {
		next.ActiveColor = color
	}
	return next
}

// HasColor は色上書きが設定されているかどうかを返します。
func (w WardrobeItem) HasColor() bool {
	return w.ActiveColor != ""
}
