// Package composer は解決済みの着せ替え状態から、画像生成コラボレーターへ
// 送るマルチパートのリクエストを組み立てます。同じ入力からは常にバイト単位で
// 同一の指示テキストと同一のパーツ順序を生成します（再現性の要件）。
package composer

import (
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/shouni/gemini-fitting-kit/pkg/domain"
)

// ガーメント画像の直前に置くラベルマーカーです。順序・文言とも固定です。
const (
	topMarker    = "Top garment reference image:"
	bottomMarker = "Bottom garment reference image:"
)

// preamble はアイデンティティ保持と画像のみ出力のルールを定める固定の前文です。
const preamble = "You are a virtual fitting assistant editing the provided model photo. " +
	"Preserve the model's identity, face, body shape and proportions exactly as in the base image. " +
	"Output only the final photorealistic image, with no text or commentary."

// ResolvedOutfit はレンダリングに必要な画像がすべて解決済みの状態です。
// Base は committed のベースモデル画像、Top / Bottom は装着ガーメントの
// 画像（未装着スロットはゼロ値）です。
type ResolvedOutfit struct {
	State  domain.OutfitState
	Base   domain.ImageRef
	Top    domain.ImageRef
	Bottom domain.ImageRef
}

// BuildParts は決定的な順序でリクエストパーツを組み立てます。
// 順序: ベース画像 → (top マーカー + top 画像) → (bottom マーカー + bottom 画像)
// → 指示テキストブロック。入力は変更しません。
func BuildParts(r ResolvedOutfit) []*genai.Part {
	parts := []*genai.Part{imagePart(r.Base)}

	if r.State.Top != nil && !r.Top.IsZero() {
		parts = append(parts, &genai.Part{Text: topMarker}, imagePart(r.Top))
	}
	if r.State.Bottom != nil && !r.Bottom.IsZero() {
		parts = append(parts, &genai.Part{Text: bottomMarker}, imagePart(r.Bottom))
	}

	parts = append(parts, &genai.Part{Text: Instruction(r.State)})
	return parts
}

// Instruction は状態から自然言語の指示ブロックを固定順で構築します。
//  1. 前文（アイデンティティ保持・画像のみ出力）
//  2. top の着せ替え指示（色上書きがあれば色固定の追加指示）
//  3. bottom の着せ替え指示（同上）
//  4. ポーズ指示（カタログの該当テキストをそのまま使用）
//  5. 表情指示（デフォルト以外の場合のみ）
//  6. 背景指示（デフォルトなら原背景の保持、それ以外は全置換）
func Instruction(state domain.OutfitState) string {
	var b strings.Builder
	b.WriteString(preamble)

	if state.Top != nil {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf(
			"Replace the model's upper-body clothing with the garment shown in the top garment reference image (%s), adapting it naturally to the model's pose and the scene lighting.",
			state.Top.Name))
		if state.Top.HasColor() {
			b.WriteString("\n")
			b.WriteString(colorPin("upper-body garment", state.Top.ActiveColor))
		}
	}

	if state.Bottom != nil {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf(
			"Replace the model's lower-body clothing with the garment shown in the bottom garment reference image (%s), adapting it naturally to the model's pose and the scene lighting.",
			state.Bottom.Name))
		if state.Bottom.HasColor() {
			b.WriteString("\n")
			b.WriteString(colorPin("lower-body garment", state.Bottom.ActiveColor))
		}
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("Pose the model exactly as follows: %s.", domain.PoseInstruction(state.PoseIndex)))

	if state.Expression != domain.DefaultExpression {
		b.WriteString("\n")
		b.WriteString(fmt.Sprintf("Change the model's facial expression to: %s.", state.Expression))
	}

	b.WriteString("\n")
	if state.Background != domain.DefaultBackground {
		b.WriteString(fmt.Sprintf(
			"Replace the entire background with the following scene and match the lighting to it: %s.",
			state.Background))
	} else {
		b.WriteString("Keep the original background exactly as it is.")
	}

	return b.String()
}

// colorPin は出力色を固定しつつ質感と陰影を保つ追加指示です。
func colorPin(target, color string) string {
	return fmt.Sprintf(
		"Render the %s in the exact color %q, while preserving its original texture, material and lighting.",
		target, color)
}

// imagePart は ImageRef を MIME タイプを透過したまま InlineData パーツへ変換します。
func imagePart(ref domain.ImageRef) *genai.Part {
	return &genai.Part{
		InlineData: &genai.Blob{
			MIMEType: ref.MIMEType,
			Data:     ref.Data,
		},
	}
}
