// Package fitting は着せ替えセッションのオーケストレーターです。
// pending / committed の2状態を唯一の所有者として管理し、編集の受付、
// 差分判定、リクエスト組み立て、リモート呼び出し、結果の確定までを駆動します。
package fitting

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"google.golang.org/genai"

	"github.com/shouni/gemini-fitting-kit/pkg/adapters"
	"github.com/shouni/gemini-fitting-kit/pkg/classifier"
	"github.com/shouni/gemini-fitting-kit/pkg/composer"
	"github.com/shouni/gemini-fitting-kit/pkg/domain"
	"github.com/shouni/gemini-fitting-kit/pkg/imgutil"
	"github.com/shouni/gemini-fitting-kit/pkg/outfit"
	"github.com/shouni/gemini-fitting-kit/pkg/wardrobe"
)

// セッション操作のエラー。
var (
	ErrBusy           = errors.New("別の再レンダリングが進行中です")
	ErrUnknownGarment = errors.New("指定されたガーメントが見つかりません")
	ErrInvalidPose    = errors.New("ポーズ番号が範囲外です")
	ErrMissingGarment = errors.New("ガーメント画像を解決できませんでした")
)

// Session は1人のユーザーの着せ替えセッションです。
// 再レンダリングは同時に1件のみで、実行中はすべての編集操作が ErrBusy に
// なります。キャンセルやタイムアウトはこの層では行いません。
type Session struct {
	mu        sync.Mutex
	busy      bool
	pending   domain.OutfitState
	committed domain.OutfitState
	baseImage domain.ImageRef

	// アップロードされたガーメントは URL を持たないため、ID ごとの
	// 解決済み画像をセッション内に保持します。
	uploaded map[domain.ItemID]domain.ImageRef

	registry *wardrobe.Registry
	renderer adapters.OutfitRenderer
	analyzer adapters.GarmentAnalyzer
	resolver adapters.ImageResolver

	maxUploadBytes int64
}

// NewSession はベースモデル画像と依存関係を注入してセッションを初期化します。
func NewSession(
	baseModel domain.ImageRef,
	registry *wardrobe.Registry,
	renderer adapters.OutfitRenderer,
	analyzer adapters.GarmentAnalyzer,
	resolver adapters.ImageResolver,
	maxUploadBytes int64,
) (*Session, error) {
	if baseModel.IsZero() {
		return nil, fmt.Errorf("baseModel is required")
	}
	if registry == nil {
		return nil, fmt.Errorf("registry is required")
	}
	if renderer == nil {
		return nil, fmt.Errorf("renderer is required")
	}
	if analyzer == nil {
		return nil, fmt.Errorf("analyzer is required")
	}
	if resolver == nil {
		return nil, fmt.Errorf("resolver is required")
	}

	return &Session{
		pending:        domain.NewOutfitState(),
		committed:      domain.NewOutfitState(),
		baseImage:      baseModel,
		uploaded:       make(map[domain.ItemID]domain.ImageRef),
		registry:       registry,
		renderer:       renderer,
		analyzer:       analyzer,
		resolver:       resolver,
		maxUploadBytes: maxUploadBytes,
	}, nil
}

// Pending は未反映の編集を含む状態の複製を返します。
func (s *Session) Pending() domain.OutfitState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending.Clone()
}

// Committed は直近のレンダリング結果に対応する状態の複製を返します。
func (s *Session) Committed() domain.OutfitState {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.committed.Clone()
}

// CurrentImage は表示中のモデル画像を返します。
func (s *Session) CurrentImage() domain.ImageRef {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.baseImage
}

// Busy は再レンダリングが進行中かどうかを返します。
func (s *Session) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.busy
}

// HasPendingChanges は pending と committed の間に差分があるかを返します。
func (s *Session) HasPendingChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return outfit.Diff(s.pending, s.committed)
}

// Registry はセッションのワードローブレジストリを返します。
func (s *Session) Registry() *wardrobe.Registry {
	return s.registry
}

// WearGarment は登録済みガーメントを pending に着せます。
func (s *Session) WearGarment(id domain.ItemID) error {
	item, ok := s.registry.Lookup(id)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownGarment, id)
	}
	return s.stage(outfit.Wear(item))
}

// RemoveGarment は指定カテゴリのスロットを pending 上で空にします。
func (s *Session) RemoveGarment(c domain.Category) error {
	return s.stage(outfit.Remove(c))
}

// SetGarmentColor は pending の指定スロットの色上書きを変更します。
// センチネル（original）は上書きのクリア、空スロットへの指定は no-op です。
func (s *Session) SetGarmentColor(c domain.Category, color string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.pending = outfit.SetColor(s.pending, c, color)
	return nil
}

// SetPose は pending のポーズを変更します。境界チェックは選択時のここで行います。
func (s *Session) SetPose(index int) error {
	if !domain.ValidPoseIndex(index) {
		return fmt.Errorf("%w: %d", ErrInvalidPose, index)
	}
	return s.stage(outfit.Patch{PoseIndex: &index})
}

// SetExpression は表情を変更します。デフォルト以外の自由テキストは
// リモート検証を通過した場合のみステージされます。
func (s *Session) SetExpression(ctx context.Context, value string) error {
	if value != domain.DefaultExpression {
		if err := s.analyzer.ValidateFreeText(ctx, adapters.ValidateExpression, value); err != nil {
			return err
		}
	}
	return s.stage(outfit.Patch{Expression: &value})
}

// SetBackground は背景を変更します。デフォルト以外の自由テキストは
// リモート検証を通過した場合のみステージされます。
func (s *Session) SetBackground(ctx context.Context, value string) error {
	if value != domain.DefaultBackground {
		if err := s.analyzer.ValidateFreeText(ctx, adapters.ValidateBackground, value); err != nil {
			return err
		}
	}
	return s.stage(outfit.Patch{Background: &value})
}

// UploadGarment はユーザー画像からガーメントを登録します。
// 入力検証 → リモート分類 → レジストリ登録の順で進み、いずれかで失敗した
// 場合は状態を一切変更しません。登録に成功したガーメントは製品要件に従い、
// 同時にそのカテゴリの選択ガーメントとしてステージされます。
func (s *Session) UploadGarment(ctx context.Context, name string, data []byte) (domain.WardrobeItem, error) {
	if s.Busy() {
		return domain.WardrobeItem{}, ErrBusy
	}

	mimeType, err := imgutil.ValidateUpload(data, s.maxUploadBytes)
	if err != nil {
		return domain.WardrobeItem{}, err
	}
	img := domain.ImageRef{Data: data, MIMEType: mimeType}

	category, err := s.analyzer.CategorizeGarment(ctx, img)
	if err != nil {
		return domain.WardrobeItem{}, err
	}

	item := domain.WardrobeItem{
		ID:       wardrobe.NewItemID(),
		Name:     name,
		Category: category,
	}

	// 分類中にレンダリングが開始されている可能性があるため、登録・画像保持・
	// ステージはロック下で busy を再確認してから一括で行います。busy であれば
	// レジストリには何も残しません。
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return domain.WardrobeItem{}, ErrBusy
	}
	s.registry.Insert(item)
	s.uploaded[item.ID] = img
	s.pending = outfit.Apply(s.pending, outfit.Wear(item))
	s.mu.Unlock()

	slog.Info("アップロードガーメントを登録しました", "id", item.ID, "category", category)
	return item, nil
}

// ApplyChanges は pending と committed の差分を判定し、差分がある場合のみ
// 再レンダリングを実行します。差分がなければ何もせず (nil, nil) を返します。
// 成功時は pending が committed として確定し、表示画像が置き換わります。
// 失敗時は committed と表示画像を変更せず、pending の編集内容は保持されます。
func (s *Session) ApplyChanges(ctx context.Context) (*domain.RenderResult, error) {
	s.mu.Lock()
	if s.busy {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	if !outfit.Diff(s.pending, s.committed) {
		s.mu.Unlock()
		return nil, nil
	}
	s.busy = true
	snapshot := s.pending.Clone()
	base := s.baseImage
	s.mu.Unlock()

	result, err := s.render(ctx, snapshot, base)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.busy = false
	if err != nil {
		// commit は発生させない。pending はユーザーの編集意図のまま残す。
		return nil, err
	}

	s.committed = outfit.Commit(snapshot)
	s.baseImage = result.Image
	return result, nil
}

func (s *Session) render(ctx context.Context, state domain.OutfitState, base domain.ImageRef) (*domain.RenderResult, error) {
	resolved, err := s.resolveOutfit(ctx, state, base)
	if err != nil {
		return nil, err
	}

	parts := composer.BuildParts(resolved)
	outcome := s.renderer.RenderOutfit(ctx, parts)
	if outcome.Kind != classifier.KindSuccess {
		slog.WarnContext(ctx, "再レンダリングに失敗しました", "kind", outcome.Kind)
		return nil, errors.New(outcome.Message())
	}

	return &domain.RenderResult{Image: outcome.Image, State: state}, nil
}

// resolveOutfit は装着中ガーメントの画像を解決します。アップロード品は
// セッション内の画像を、カタログ品はロケーター経由の取得結果を使います。
func (s *Session) resolveOutfit(ctx context.Context, state domain.OutfitState, base domain.ImageRef) (composer.ResolvedOutfit, error) {
	resolved := composer.ResolvedOutfit{State: state, Base: base}

	var err error
	if state.Top != nil {
		if resolved.Top, err = s.resolveGarment(ctx, *state.Top); err != nil {
			return composer.ResolvedOutfit{}, err
		}
	}
	if state.Bottom != nil {
		if resolved.Bottom, err = s.resolveGarment(ctx, *state.Bottom); err != nil {
			return composer.ResolvedOutfit{}, err
		}
	}
	return resolved, nil
}

func (s *Session) resolveGarment(ctx context.Context, item domain.WardrobeItem) (domain.ImageRef, error) {
	s.mu.Lock()
	img, ok := s.uploaded[item.ID]
	s.mu.Unlock()
	if ok {
		return img, nil
	}

	if item.ImageURL == "" {
		return domain.ImageRef{}, fmt.Errorf("%w: %s", ErrMissingGarment, item.ID)
	}
	ref, err := s.resolver.Resolve(ctx, item.ImageURL)
	if err != nil {
		return domain.ImageRef{}, fmt.Errorf("%w: %s (%v)", ErrMissingGarment, item.ID, err)
	}
	return ref, nil
}

// stage は patch を pending に適用します。再レンダリング中は編集を受け付けません。
func (s *Session) stage(patch outfit.Patch) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.busy {
		return ErrBusy
	}
	s.pending = outfit.Apply(s.pending, patch)
	return nil
}

// Parts は現在の pending 状態から組み立てられるリクエストパーツを返します。
// デバッグとテストの再現性確認用で、状態は変更しません。
func (s *Session) Parts(ctx context.Context) ([]*genai.Part, error) {
	s.mu.Lock()
	snapshot := s.pending.Clone()
	base := s.baseImage
	s.mu.Unlock()

	resolved, err := s.resolveOutfit(ctx, snapshot, base)
	if err != nil {
		return nil, err
	}
	return composer.BuildParts(resolved), nil
}
