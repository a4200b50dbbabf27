package outfit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shouni/gemini-fitting-kit/pkg/domain"
)

var (
	tee   = domain.WardrobeItem{ID: "gemini-tee", Name: "Gemini Tee", Category: domain.CategoryTop}
	denim = domain.WardrobeItem{ID: "classic-denim", Name: "Classic Denim", Category: domain.CategoryBottom}
)

func TestDiff(t *testing.T) {
	t.Run("構造的に等しい状態同士は差分なしなのだ", func(t *testing.T) {
		s := domain.NewOutfitState()
		assert.False(t, Diff(s, s.Clone()))
	})

	t.Run("空同士のスロットは等しいのだ", func(t *testing.T) {
		assert.False(t, Diff(domain.NewOutfitState(), domain.NewOutfitState()))
	})

	t.Run("片側だけ装着していれば色に関わらず差分ありなのだ", func(t *testing.T) {
		pending := Apply(domain.NewOutfitState(), Wear(tee))
		committed := domain.NewOutfitState()
		assert.True(t, Diff(pending, committed))
	})

	t.Run("同じガーメントでも色上書きが違えば差分ありなのだ", func(t *testing.T) {
		committed := Apply(domain.NewOutfitState(), Wear(tee))
		pending := SetColor(committed, domain.CategoryTop, "crimson")
		assert.True(t, Diff(pending, committed))
	})

	t.Run("各フィールド単独の変更がそれぞれ差分になるのだ", func(t *testing.T) {
		base := domain.NewOutfitState()

		expr := "Smiling"
		assert.True(t, Diff(Apply(base, Patch{Expression: &expr}), base))

		bg := "Tokyo at night"
		assert.True(t, Diff(Apply(base, Patch{Background: &bg}), base))

		pose := 1
		assert.True(t, Diff(Apply(base, Patch{PoseIndex: &pose}), base))

		assert.True(t, Diff(Apply(base, Wear(denim)), base))
	})
}

func TestApply(t *testing.T) {
	t.Run("未指定フィールドは変更されないのだ", func(t *testing.T) {
		base := Apply(domain.NewOutfitState(), Wear(tee))
		bg := "Mars colony"
		next := Apply(base, Patch{Background: &bg})

		assert.Equal(t, "Mars colony", next.Background)
		require.NotNil(t, next.Top)
		assert.Equal(t, tee.ID, next.Top.ID)
		assert.Equal(t, base.Expression, next.Expression)
		assert.Equal(t, base.PoseIndex, next.PoseIndex)
	})

	t.Run("同じ Patch を二度適用しても結果は一度と同じなのだ", func(t *testing.T) {
		base := domain.NewOutfitState()
		p := Wear(tee)
		once := Apply(base, p)
		twice := Apply(once, p)
		assert.False(t, Diff(once, twice))
	})

	t.Run("Apply は入力を変更しないのだ", func(t *testing.T) {
		base := domain.NewOutfitState()
		_ = Apply(base, Wear(tee))
		assert.Nil(t, base.Top)
	})

	t.Run("Remove でスロットが空になるのだ", func(t *testing.T) {
		dressed := Apply(domain.NewOutfitState(), Wear(tee))
		undressed := Apply(dressed, Remove(domain.CategoryTop))
		assert.Nil(t, undressed.Top)
	})

	t.Run("範囲外の PoseIndex は反映されないのだ", func(t *testing.T) {
		base := domain.NewOutfitState()
		bad := domain.PoseCount()
		next := Apply(base, Patch{PoseIndex: &bad})
		assert.Equal(t, 0, next.PoseIndex)
	})
}

func TestSetColor(t *testing.T) {
	t.Run("色を設定すると同一 ID の新しい値に差し替わるのだ", func(t *testing.T) {
		dressed := Apply(domain.NewOutfitState(), Wear(tee))
		colored := SetColor(dressed, domain.CategoryTop, "forest green")

		require.NotNil(t, colored.Top)
		assert.Equal(t, tee.ID, colored.Top.ID)
		assert.Equal(t, "forest green", colored.Top.ActiveColor)
		// 元の状態は変更されない
		assert.False(t, dressed.Top.HasColor())
	})

	t.Run("センチネル original で色上書きがクリアされるのだ", func(t *testing.T) {
		dressed := Apply(domain.NewOutfitState(), Wear(tee))
		colored := SetColor(dressed, domain.CategoryTop, "blue")
		cleared := SetColor(colored, domain.CategoryTop, domain.ColorOriginal)

		require.NotNil(t, cleared.Top)
		assert.False(t, cleared.Top.HasColor())
	})

	t.Run("空スロットへの色変更は no-op で panic しないのだ", func(t *testing.T) {
		base := domain.NewOutfitState()
		next := SetColor(base, domain.CategoryBottom, "red")
		assert.Nil(t, next.Bottom)
		assert.False(t, Diff(next, base))
	})
}

func TestCommit(t *testing.T) {
	t.Run("commit 直後の diff は false なのだ", func(t *testing.T) {
		pending := Apply(domain.NewOutfitState(), Wear(tee))
		committed := Commit(pending)
		assert.False(t, Diff(pending, committed))
	})

	t.Run("commit は独立した複製を返すのだ", func(t *testing.T) {
		pending := Apply(domain.NewOutfitState(), Wear(tee))
		committed := Commit(pending)
		require.NotNil(t, committed.Top)
		assert.NotSame(t, pending.Top, committed.Top)
	})

	t.Run("シナリオ: top だけ違う pending は差分あり、commit 後は差分なしなのだ", func(t *testing.T) {
		committed := domain.NewOutfitState()
		pending := Apply(committed, Wear(tee))

		require.True(t, Diff(pending, committed))
		committed = Commit(pending)
		assert.False(t, Diff(pending, committed))
	})
}
