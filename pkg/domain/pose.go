package domain

// poseCatalog はポーズ指示の固定カタログです。実行時には変更されません。
// PoseIndex の境界チェックは選択時に行う契約なので、描画時は有効な
// インデックスであることを前提にできます。
var poseCatalog = []string{
	"Full frontal view, hands on hips",
	"Slightly turned, 3/4 view",
	"Side profile view",
	"Jumping in the air, mid-action shot",
	"Walking towards camera",
	"Leaning against a wall",
}

// PoseCount はカタログに含まれるポーズ数を返します。
func PoseCount() int {
	return len(poseCatalog)
}

// ValidPoseIndex は i がカタログの有効なインデックスかを返します。
func ValidPoseIndex(i int) bool {
	return i >= 0 && i < len(poseCatalog)
}

// PoseInstruction はインデックス i のポーズ指示テキストを返します。
// i は ValidPoseIndex を満たしている前提です。
func PoseInstruction(i int) string {
	return poseCatalog[i]
}
