// Package classifier は画像生成コラボレーターの生レスポンス（または通信エラー）を
// ただ1つの型付き結果に分類します。分類は全域関数で、どのレスポンスに対しても
// 必ずいずれか1つの Kind に確定します。
package classifier

import (
	"fmt"

	"google.golang.org/genai"

	"github.com/shouni/gemini-fitting-kit/pkg/domain"
)

// Kind は分類結果の種別です。
type Kind string

// 分類結果の種別定義。
const (
	KindSuccess          Kind = "SUCCESS"
	KindBlocked          Kind = "BLOCKED"
	KindRefused          Kind = "REFUSED"
	KindEmpty            Kind = "EMPTY"
	KindTransportFailure Kind = "TRANSPORT_FAILURE"
)

// Outcome は1回のリモート呼び出しの分類済み結果です。
// Kind に対応するフィールドのみが意味を持ちます。
type Outcome struct {
	Kind Kind

	Image domain.ImageRef // Success: 最初に見つかった画像パーツ（MIMEタイプは宣言値のまま）

	BlockReason string // Blocked: ブロック理由コード
	BlockDetail string // Blocked: 追加メッセージ（あれば）

	FinishReason string // Refused: 異常終了の理由コード

	FallbackText string // Empty: 診断用のフォールバックテキスト（あれば）

	Cause error // TransportFailure: 元の通信エラー
}

// Classify はレスポンスと通信エラーの組を1つの Outcome に分類します。
// 判定順序は固定です: 通信エラー → ブロック指標 → 画像パーツ探索 →
// FinishReason 検査 → フォールバック。ブロック指標が立っている場合は
// たとえ画像が含まれていても抽出しません。
func Classify(resp *genai.GenerateContentResponse, callErr error) Outcome {
	if callErr != nil {
		return Outcome{Kind: KindTransportFailure, Cause: callErr}
	}
	if resp == nil {
		return Outcome{Kind: KindEmpty}
	}

	if fb := resp.PromptFeedback; fb != nil && fb.BlockReason != genai.BlockedReasonUnspecified {
		return Outcome{
			Kind:        KindBlocked,
			BlockReason: string(fb.BlockReason),
			BlockDetail: fb.BlockReasonMessage,
		}
	}

	if img, ok := firstImagePart(resp); ok {
		return Outcome{Kind: KindSuccess, Image: img}
	}

	if len(resp.Candidates) > 0 {
		reason := resp.Candidates[0].FinishReason
		if reason != genai.FinishReasonUnspecified && reason != genai.FinishReasonStop {
			return Outcome{Kind: KindRefused, FinishReason: string(reason)}
		}
	}

	return Outcome{Kind: KindEmpty, FallbackText: resp.Text()}
}

// Message は失敗系の Outcome をユーザー向けの原因説明文に変換します。
// Success に対しては空文字を返します。
func (o Outcome) Message() string {
	switch o.Kind {
	case KindBlocked:
		if o.BlockDetail != "" {
			return fmt.Sprintf("リクエストがブロックされました (%s): %s", o.BlockReason, o.BlockDetail)
		}
		return fmt.Sprintf("リクエストがブロックされました (%s)", o.BlockReason)
	case KindRefused:
		return fmt.Sprintf("画像生成が異常終了しました (FinishReason: %s)", o.FinishReason)
	case KindEmpty:
		if o.FallbackText != "" {
			return fmt.Sprintf("画像データが見つかりませんでした。応答テキスト: %s", o.FallbackText)
		}
		return "画像データが見つかりませんでした"
	case KindTransportFailure:
		return "通信に失敗しました。時間をおいて再試行してください"
	}
	return ""
}

// firstImagePart は候補の並び順に最初の画像パーツを探します。
// 見つかった画像の MIME タイプは宣言されたまま保持します。
func firstImagePart(resp *genai.GenerateContentResponse) (domain.ImageRef, bool) {
	for _, candidate := range resp.Candidates {
		if candidate == nil || candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if part != nil && part.InlineData != nil && len(part.InlineData.Data) > 0 {
				return domain.ImageRef{
					Data:     part.InlineData.Data,
					MIMEType: part.InlineData.MIMEType,
				}, true
			}
		}
	}
	return domain.ImageRef{}, false
}
