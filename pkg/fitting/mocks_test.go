package fitting

import (
	"context"
	"sync"

	"google.golang.org/genai"

	"github.com/shouni/gemini-fitting-kit/pkg/adapters"
	"github.com/shouni/gemini-fitting-kit/pkg/classifier"
	"github.com/shouni/gemini-fitting-kit/pkg/domain"
)

// --- Mocks ---

// mockRenderer は adapters.OutfitRenderer のテスト用モックなのだ。
// entered を設定すると呼び出し開始を通知し、release を設定すると
// 閉じられるまで応答をブロックできるのだ。
type mockRenderer struct {
	mu        sync.Mutex
	outcome   classifier.Outcome
	calls     int
	lastParts []*genai.Part

	entered chan struct{}
	release chan struct{}
}

func (m *mockRenderer) RenderOutfit(ctx context.Context, parts []*genai.Part) classifier.Outcome {
	m.mu.Lock()
	m.calls++
	m.lastParts = parts
	entered := m.entered
	release := m.release
	outcome := m.outcome
	m.mu.Unlock()

	if entered != nil {
		close(entered)
	}
	if release != nil {
		<-release
	}
	return outcome
}

func (m *mockRenderer) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockAnalyzer は adapters.GarmentAnalyzer のテスト用モックなのだ。
// categorizeHook を設定すると分類応答の直前に呼ばれ、タイミング制御に使えるのだ。
type mockAnalyzer struct {
	category       domain.Category
	categorizeErr  error
	categorizeHook func()
	validateErr    error
	validateCalls  int
}

func (m *mockAnalyzer) CategorizeGarment(ctx context.Context, img domain.ImageRef) (domain.Category, error) {
	if m.categorizeHook != nil {
		m.categorizeHook()
	}
	if m.categorizeErr != nil {
		return "", m.categorizeErr
	}
	return m.category, nil
}

func (m *mockAnalyzer) ValidateFreeText(ctx context.Context, kind adapters.ValidationKind, value string) error {
	m.validateCalls++
	return m.validateErr
}

// mockResolver は adapters.ImageResolver のテスト用モックなのだ。
type mockResolver struct {
	refs map[string]domain.ImageRef
	err  error
}

func (m *mockResolver) Resolve(ctx context.Context, locator string) (domain.ImageRef, error) {
	if m.err != nil {
		return domain.ImageRef{}, m.err
	}
	if ref, ok := m.refs[locator]; ok {
		return ref, nil
	}
	return domain.ImageRef{Data: []byte("resolved:" + locator), MIMEType: "image/png"}, nil
}
