package adapters

import (
	"context"
	"log/slog"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"

	"github.com/shouni/gemini-fitting-kit/pkg/classifier"
)

// GeminiRenderer は着せ替えレンダリングのリモート呼び出しを担当します。
// 通信結果は生のまま classifier に渡し、ここでは成否の解釈を行いません。
type GeminiRenderer struct {
	aiClient gemini.GenerativeModel
	model    string
}

// NewGeminiRenderer は GeminiRenderer を初期化するのだ。
func NewGeminiRenderer(aiClient gemini.GenerativeModel, model string) (*GeminiRenderer, error) {
	if aiClient == nil {
		return nil, errNilAIClient
	}
	return &GeminiRenderer{aiClient: aiClient, model: model}, nil
}

// RenderOutfit は組み立て済みパーツ列を送信し、分類済みの結果を返します。
// 通信エラーも classifier が TransportFailure として吸収するため、
// 戻り値は常にちょうど1つの Kind を持ちます。
func (r *GeminiRenderer) RenderOutfit(ctx context.Context, parts []*genai.Part) classifier.Outcome {
	slog.Info("着せ替えレンダリングをリクエストします", "model", r.model, "total_parts", len(parts))

	resp, err := r.aiClient.GenerateWithParts(ctx, r.model, parts, gemini.GenerateOptions{})

	var raw *genai.GenerateContentResponse
	if resp != nil {
		raw = resp.RawResponse
	}
	return classifier.Classify(raw, err)
}
