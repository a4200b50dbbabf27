package domain

// ImageRef はリモートコラボレーターと交換する画像の標準形です。
// MIMEタイプ付きのエンコード済みバイト列で、リクエスト組み立てと
// レスポンス解析の双方で同じ MIMEType を透過的に往復させます
// （この層では再エンコードを行いません）。
type ImageRef struct {
	Data     []byte `json:"data"`
	MIMEType string `json:"mime_type"`
}

// IsZero は画像データを保持していないことを返します。
func (r ImageRef) IsZero() bool {
	return len(r.Data) == 0
}

// RenderResult は1回の再レンダリングの成功結果です。
// Image は表示中のモデル画像を置き換え、State はその画像に対応する
// committed 状態となります。
type RenderResult struct {
	Image ImageRef
	State OutfitState
}
