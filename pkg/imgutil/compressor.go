package imgutil

import (
	"bytes"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
)

// DefaultJPEGQuality はガーメント画像の転送前圧縮に使う標準品質です。
const DefaultJPEGQuality = 75

// CompressToJPEG は画像データ（PNG, GIF, JPEG等）をJPEG形式に再圧縮します。
// リモートコラボレーターへ送るガーメント参照画像のペイロード削減に使用します。
// quality が 0 以下の場合は DefaultJPEGQuality を適用します。
func CompressToJPEG(data []byte, quality int) ([]byte, error) {
	if quality <= 0 {
		quality = DefaultJPEGQuality
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := jpeg.Encode(buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
