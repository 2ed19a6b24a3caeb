package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Framing %s...":                  "%s をフレーミング中...",
		"Output saved to %s":             "出力を %s に保存しました",
		"Preview saved to %s":            "プレビューを %s に保存しました",
		"Pipeline completed successfully": "パイプラインが正常に完了しました",

		// Classify stage
		"Classified %dx%d as %s":                 "%dx%d を %s に分類しました",
		"Unsupported aspect ratio %dx%d":         "対応していないアスペクト比です: %dx%d",

		// Caption stage
		"No caption metadata found":        "キャプション用メタデータが見つかりません",
		"Caption built: %q / %q":           "キャプション生成完了: %q / %q",

		// Composite stage
		"Rendering %dx%d canvas (%s, spacing %s)": "%dx%d キャンバスを描画中 (%s, 余白 %s)",
		"No drawing surface available, skipping render": "描画サーフェスを取得できないため描画をスキップします",
		"Render completed: %dx%d":                 "描画完了: %dx%d",

		// Export
		"Encoding JPEG with quality %d":    "品質 %d でJPEGをエンコード中",
		"Export completed in %d ms":        "書き出しが %d ms で完了しました",

		// Errors
		"Failed to decode photo: %s":       "写真のデコードに失敗しました: %s",
		"Failed to write output: %s":       "出力の書き込みに失敗しました: %s",
	})
}
