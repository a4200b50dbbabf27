package adapters

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"
)

// --- Mocks ---

// mockAIClient は gemini.GenerativeModel のテスト用モックなのだ。
type mockAIClient struct {
	generateFunc func(model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error)
	contentFunc  func(model string, prompt string) (*gemini.Response, error)
	lastParts    []*genai.Part
	lastPrompt   string
}

func (m *mockAIClient) GenerateWithParts(ctx context.Context, model string, parts []*genai.Part, opts gemini.GenerateOptions) (*gemini.Response, error) {
	m.lastParts = parts
	if m.generateFunc != nil {
		return m.generateFunc(model, parts, opts)
	}
	return nil, nil
}

func (m *mockAIClient) GenerateContent(ctx context.Context, model string, prompt string) (*gemini.Response, error) {
	m.lastPrompt = prompt
	if m.contentFunc != nil {
		return m.contentFunc(model, prompt)
	}
	return nil, nil
}

// インターフェースを満たすための空実装群なのだ
func (m *mockAIClient) UploadFile(ctx context.Context, data []byte, mimeType, displayName string) (string, string, error) {
	return "", "", nil
}

func (m *mockAIClient) DeleteFile(ctx context.Context, name string) error { return nil }

func (m *mockAIClient) GetFile(ctx context.Context, name string) (*genai.File, error) {
	return nil, nil
}

// textResponse はテキスト1パーツの正常応答を作るヘルパーなのだ。
func textResponse(text string) *gemini.Response {
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content:      &genai.Content{Parts: []*genai.Part{{Text: text}}},
				FinishReason: genai.FinishReasonStop,
			}},
		},
	}
}

// mockHTTPClient は httpkit.ClientInterface を実装します。
type mockHTTPClient struct {
	data []byte
	err  error
}

func (m *mockHTTPClient) FetchBytes(ctx context.Context, url string) ([]byte, error) {
	return m.data, m.err
}

// インターフェースを満たすための空実装群なのだ
func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) { return nil, nil }

func (m *mockHTTPClient) DoRequest(req *http.Request) ([]byte, error) { return nil, nil }

func (m *mockHTTPClient) FetchAndDecodeJSON(ctx context.Context, url string, v any) error {
	return nil
}

func (m *mockHTTPClient) PostJSONAndFetchBytes(ctx context.Context, url string, data any) ([]byte, error) {
	return nil, nil
}

func (m *mockHTTPClient) PostRawBodyAndFetchBytes(ctx context.Context, url string, body []byte, contentType string) ([]byte, error) {
	return nil, nil
}

func (m *mockHTTPClient) IsSafeURL(urlStr string) (bool, error) { return true, nil }

func (m *mockHTTPClient) IsSecureServiceURL(serviceURL string) bool { return true }

// mockReader は remoteio.InputReader のテスト用モックなのだ。
type mockReader struct {
	data []byte
	err  error
}

func (m *mockReader) Open(ctx context.Context, uri string) (io.ReadCloser, error) {
	if m.err != nil {
		return nil, m.err
	}
	return io.NopCloser(bytes.NewReader(m.data)), nil
}

func (m *mockReader) List(ctx context.Context, uri string, fn func(string) error) error {
	return nil
}

// mockCache は ImageCacher インターフェースを実装するのだ。
type mockCache struct {
	data map[string]any
}

func (m *mockCache) Get(key string) (any, bool) {
	val, ok := m.data[key]
	return val, ok
}

func (m *mockCache) Set(key string, value any, d time.Duration) {
	if m.data == nil {
		m.data = make(map[string]any)
	}
	m.data[key] = value
}
