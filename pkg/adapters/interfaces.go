// Package adapters はリモートコラボレーター（画像生成・ガーメント分類・
// 自由テキスト検証）との通信と、ガーメント画像ロケーターの解決を担当します。
package adapters

import (
	"context"
	"time"

	"github.com/shouni/gemini-fitting-kit/pkg/classifier"
	"github.com/shouni/gemini-fitting-kit/pkg/domain"
	"google.golang.org/genai"
)

// OutfitRenderer は組み立て済みパーツ列を画像生成コラボレーターへ送り、
// 分類済みの結果を返すインターフェースです。
type OutfitRenderer interface {
	RenderOutfit(ctx context.Context, parts []*genai.Part) classifier.Outcome
}

// GarmentAnalyzer はガーメント分類と自由テキスト検証のインターフェースです。
type GarmentAnalyzer interface {
	// CategorizeGarment は画像からガーメントカテゴリ（top / bottom）を判定します。
	// どちらにも正規化できないラベルは分類失敗のエラーになります。
	CategorizeGarment(ctx context.Context, img domain.ImageRef) (domain.Category, error)
	// ValidateFreeText は表情・背景の自由テキスト入力の妥当性を検証します。
	// 正規化済みの "yes" 以外の応答（通信エラー含む）はすべて却下です。
	ValidateFreeText(ctx context.Context, kind ValidationKind, value string) error
}

// ImageResolver は画像ロケーター（http(s) / gs://）を ImageRef に解決します。
type ImageResolver interface {
	Resolve(ctx context.Context, locator string) (domain.ImageRef, error)
}

// ImageCacher は、解決済みガーメント画像をキャッシュするためのインターフェースです。
type ImageCacher interface {
	// Get は、指定されたキーに紐づくアイテムを取得します。
	Get(key string) (any, bool)
	// Set は、指定されたキーと値、有効期限でアイテムを保存します。
	Set(key string, value any, d time.Duration)
}
