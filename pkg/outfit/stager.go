// Package outfit は pending / committed の2状態モデルに対する差分判定と
// 純粋な部分更新（ステージング）を提供します。どの関数も引数を変更せず、
// 新しい状態値を返します。
package outfit

import (
	"github.com/shouni/gemini-fitting-kit/pkg/domain"
)

// GarmentChange はガーメントスロットへの変更指定です。
// Item が nil の場合はスロットを空にします（脱衣）。
type GarmentChange struct {
	Item *domain.WardrobeItem
}

// Patch は OutfitState への部分更新です。nil のフィールドは「変更なし」を
// 意味し、既存の値がそのまま残ります。
type Patch struct {
	Top        *GarmentChange
	Bottom     *GarmentChange
	Expression *string
	Background *string
	PoseIndex  *int
}

// Wear は指定スロットにガーメントを着せる Patch を返します。
func Wear(item domain.WardrobeItem) Patch {
	change := &GarmentChange{Item: &item}
	if item.Category == domain.CategoryTop {
		return Patch{Top: change}
	}
	return Patch{Bottom: change}
}

// Remove は指定カテゴリのスロットを空にする Patch を返します。
func Remove(c domain.Category) Patch {
	if c == domain.CategoryTop {
		return Patch{Top: &GarmentChange{}}
	}
	return Patch{Bottom: &GarmentChange{}}
}

// Apply は patch を pending に適用した新しい状態を返します。純粋関数です。
// PoseIndex はカタログ範囲内の値のみ反映されます（選択時の境界チェック）。
func Apply(pending domain.OutfitState, patch Patch) domain.OutfitState {
	next := pending.Clone()

	if patch.Top != nil {
		next.Top = cloneItem(patch.Top.Item)
	}
	if patch.Bottom != nil {
		next.Bottom = cloneItem(patch.Bottom.Item)
	}
	if patch.Expression != nil {
		next.Expression = *patch.Expression
	}
	if patch.Background != nil {
		next.Background = *patch.Background
	}
	if patch.PoseIndex != nil && domain.ValidPoseIndex(*patch.PoseIndex) {
		next.PoseIndex = *patch.PoseIndex
	}
	return next
}

// SetColor は指定カテゴリのガーメントの色上書きを差し替えた新しい状態を返します。
// color がセンチネル（original）の場合は上書きをクリアします。
// スロットが空の場合は何もしません。
func SetColor(pending domain.OutfitState, c domain.Category, color string) domain.OutfitState {
	worn := pending.Slot(c)
	if worn == nil {
		return pending.Clone()
	}
	return Apply(pending, Wear(worn.WithColor(color)))
}

// Diff は pending と committed の間に再レンダリングを要する差分があるかを返します。
// ガーメントは ID と色上書きの両方を比較します。空同士は等しく、
// 片側のみ装着・ID 違いは色に関わらず差分ありです。
func Diff(pending, committed domain.OutfitState) bool {
	if garmentDiffers(pending.Top, committed.Top) {
		return true
	}
	if garmentDiffers(pending.Bottom, committed.Bottom) {
		return true
	}
	if pending.Expression != committed.Expression {
		return true
	}
	if pending.Background != committed.Background {
		return true
	}
	return pending.PoseIndex != committed.PoseIndex
}

// Commit は描画成功直後の pending を committed として確定した複製を返します。
// 失敗時にはこの関数を呼んではいけません（committed は最後の正常状態のまま）。
func Commit(pending domain.OutfitState) domain.OutfitState {
	return pending.Clone()
}

func garmentDiffers(a, b *domain.WardrobeItem) bool {
	if a == nil && b == nil {
		return false
	}
	if a == nil || b == nil {
		return true
	}
	return a.ID != b.ID || a.ActiveColor != b.ActiveColor
}

func cloneItem(item *domain.WardrobeItem) *domain.WardrobeItem {
	if item == nil {
		return nil
	}
	c := *item
	return &c
}
