package domain

// 式・背景が未変更であることを示すデフォルトのセンチネル値です。
const (
	DefaultExpression = "Default"
	DefaultBackground = "Original Studio"
)

// OutfitState はモデルの着せ替え状態のスナップショットです。
// committed（直近のレンダリング結果と一致する状態）と pending
// （未反映のユーザー編集を含む状態）の2つの役割で使用されます。
// 値として受け渡し、共有ミュータブルにはしません。
type OutfitState struct {
	Top        *WardrobeItem `json:"top,omitempty"`
	Bottom     *WardrobeItem `json:"bottom,omitempty"`
	Expression string        `json:"expression"`
	Background string        `json:"background"`
	PoseIndex  int           `json:"pose_index"`
}

// NewOutfitState はデフォルト値（素体・デフォルト表情・スタジオ背景・先頭ポーズ）の
// 状態を返します。
func NewOutfitState() OutfitState {
	return OutfitState{
		Expression: DefaultExpression,
		Background: DefaultBackground,
		PoseIndex:  0,
	}
}

// Clone はガーメント参照も含めて独立した複製を返します。
// commit 時に pending と committed が同じポインタを共有しないようにするためです。
func (s OutfitState) Clone() OutfitState {
	next := s
	if s.Top != nil {
		top := *s.Top
		next.Top = &top
	}
	if s.Bottom != nil {
		bottom := *s.Bottom
		next.Bottom = &bottom
	}
	return next
}

// Slot は指定カテゴリのガーメント参照を返します。未装着なら nil です。
func (s OutfitState) Slot(c Category) *WardrobeItem {
	if c == CategoryTop {
		return s.Top
	}
	return s.Bottom
}
