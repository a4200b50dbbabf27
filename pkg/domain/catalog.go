package domain

// DefaultWardrobe は起動時に登録される標準のガーメントカタログを返します。
// 呼び出しごとに独立したスライスを返すため、呼び出し側で自由に追記できます。
func DefaultWardrobe() []WardrobeItem {
	return []WardrobeItem{
		{
			ID:       "gemini-sweat",
			Name:     "Gemini Sweat",
			ImageURL: "https://storage.googleapis.com/gemini-95-icons/try-on/gemini-sweat-2.png",
			Category: CategoryTop,
		},
		{
			ID:       "gemini-tee",
			Name:     "Gemini Tee",
			ImageURL: "https://storage.googleapis.com/gemini-95-icons/try-on/Gemini-tee.png",
			Category: CategoryTop,
		},
		{
			ID:       "classic-denim",
			Name:     "Classic Denim",
			ImageURL: "https://storage.googleapis.com/gemini-95-icons/try-on/classic-denim.png",
			Category: CategoryBottom,
		},
		{
			ID:       "studio-joggers",
			Name:     "Studio Joggers",
			ImageURL: "https://storage.googleapis.com/gemini-95-icons/try-on/studio-joggers.png",
			Category: CategoryBottom,
		},
	}
}
