// Package wardrobe はガーメントカタログ（ワードローブ）の登録と参照を提供します。
// レジストリは挿入順を保持し、ID による重複挿入を no-op として吸収します。
package wardrobe

import (
	"sync"

	"github.com/google/uuid"

	"github.com/shouni/gemini-fitting-kit/pkg/domain"
)

// Registry は ID 一意・挿入順保持のガーメントコレクションです。
// セッションの編集とアップロードが並行に触れるため、操作は内部ミューテックスで
// 直列化されます。通常運用でガーメントが削除されることはありません。
type Registry struct {
	mu    sync.Mutex
	items []domain.WardrobeItem
	index map[domain.ItemID]struct{}
}

// NewRegistry は initial のアイテムを順に登録したレジストリを返します。
// 重複 ID は先勝ちで無視されます。
func NewRegistry(initial ...domain.WardrobeItem) *Registry {
	r := &Registry{index: make(map[domain.ItemID]struct{})}
	for _, item := range initial {
		r.Insert(item)
	}
	return r
}

// Insert は item を末尾に追加します。同じ ID のアイテムが既に存在する場合は
// 何もしません（冪等）。失敗することはありません。
func (r *Registry) Insert(item domain.WardrobeItem) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[item.ID]; exists {
		return
	}
	r.index[item.ID] = struct{}{}
	r.items = append(r.items, item)
}

// Len は登録されているアイテム数を返します。
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.items)
}

// Lookup は ID でアイテムを検索します。
func (r *Registry) Lookup(id domain.ItemID) (domain.WardrobeItem, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.index[id]; !exists {
		return domain.WardrobeItem{}, false
	}
	for _, item := range r.items {
		if item.ID == id {
			return item, true
		}
	}
	return domain.WardrobeItem{}, false
}

// Items は登録順のアイテム一覧の複製を返します。
func (r *Registry) Items() []domain.WardrobeItem {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]domain.WardrobeItem, len(r.items))
	copy(out, r.items)
	return out
}

// Partition はカテゴリ別のビュー（tops, bottoms）を返します。
// どちらもレジストリの登録順を保持した新しいスライスで、副作用はありません。
func (r *Registry) Partition() (tops, bottoms []domain.WardrobeItem) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range r.items {
		switch item.Category {
		case domain.CategoryTop:
			tops = append(tops, item)
		case domain.CategoryBottom:
			bottoms = append(bottoms, item)
		}
	}
	return tops, bottoms
}

// NewItemID はアップロードされたガーメント用の新しい一意 ID を生成します。
func NewItemID() domain.ItemID {
	return domain.ItemID("custom-" + uuid.NewString())
}
