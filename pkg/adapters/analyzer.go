package adapters

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"

	"github.com/shouni/gemini-fitting-kit/pkg/domain"
)

var errNilAIClient = errors.New("aiClient (gemini.GenerativeModel) is required")

// ValidationKind は自由テキスト検証の対象種別です。
type ValidationKind string

// 検証対象の定義。
const (
	ValidateExpression ValidationKind = "expression"
	ValidateBackground ValidationKind = "background"
)

// categorizePrompt はガーメント分類の固定プロンプトです。
// 応答は top / bottom のどちらか1語を要求します。
const categorizePrompt = "Analyze the provided garment image. " +
	"Respond with exactly one word: \"top\" if it is an upper-body garment, " +
	"or \"bottom\" if it is a lower-body garment."

// GeminiAnalyzer はガーメント分類と自由テキスト検証のリモート呼び出しを担当します。
type GeminiAnalyzer struct {
	aiClient gemini.GenerativeModel
	model    string
}

// NewGeminiAnalyzer は GeminiAnalyzer を初期化するのだ。
func NewGeminiAnalyzer(aiClient gemini.GenerativeModel, model string) (*GeminiAnalyzer, error) {
	if aiClient == nil {
		return nil, errNilAIClient
	}
	return &GeminiAnalyzer{aiClient: aiClient, model: model}, nil
}

// CategorizeGarment はアップロードされたガーメント画像のカテゴリを判定します。
// リモートの自由テキスト応答を正規化し、"top" / "bottom" の文字どおりの
// ラベルのみ受理します。それ以外は黙ってデフォルトに倒さず分類失敗です。
func (a *GeminiAnalyzer) CategorizeGarment(ctx context.Context, img domain.ImageRef) (domain.Category, error) {
	parts := []*genai.Part{
		{InlineData: &genai.Blob{MIMEType: img.MIMEType, Data: img.Data}},
		{Text: categorizePrompt},
	}

	resp, err := a.aiClient.GenerateWithParts(ctx, a.model, parts, gemini.GenerateOptions{})
	if err != nil {
		return "", fmt.Errorf("ガーメント分類の通信に失敗しました: %w", err)
	}

	label := responseText(resp)
	category, ok := domain.ParseCategory(label)
	if !ok {
		return "", fmt.Errorf("ガーメントを分類できませんでした (応答: %q)", label)
	}

	slog.Info("ガーメント分類が完了しました", "category", category)
	return category, nil
}

// ValidateFreeText は表情・背景の自由テキストをリモート検証にかけます。
// 正規化後に厳密一致で "yes" の場合のみ受理し、それ以外の応答と通信エラーは
// すべて却下として、却下された値をそのままメッセージに含めます。
func (a *GeminiAnalyzer) ValidateFreeText(ctx context.Context, kind ValidationKind, value string) error {
	prompt := fmt.Sprintf(
		"Is %q a reasonable and safe description for a fashion model's %s in a photo shoot? "+
			"Answer with exactly one word: yes or no.", value, kind)

	resp, err := a.aiClient.GenerateContent(ctx, a.model, prompt)
	if err != nil {
		slog.WarnContext(ctx, "自由テキスト検証の通信に失敗したため却下します", "kind", kind, "error", err)
		return rejectionError(kind, value)
	}

	if strings.ToLower(strings.TrimSpace(responseText(resp))) != "yes" {
		return rejectionError(kind, value)
	}
	return nil
}

func rejectionError(kind ValidationKind, value string) error {
	var label string
	if kind == ValidateExpression {
		label = "表情"
	} else {
		label = "背景"
	}
	return fmt.Errorf("%sとして %q は使用できません", label, value)
}

// responseText はレスポンスからテキストを安全に取り出します。
func responseText(resp *gemini.Response) string {
	if resp == nil || resp.RawResponse == nil {
		return ""
	}
	return resp.RawResponse.Text()
}
