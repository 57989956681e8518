package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Run level messages (info)
		"Encoding %s to %s":            "%s を %s にエンコード中",
		"Video size: %dx%d":            "動画サイズ: %dx%d",
		"Skipping %d frames":           "%d フレームをスキップ中",
		"Encoding completed":           "エンコードが完了しました",
		"Output saved to %s":           "出力を %s に保存しました",
		"Generating %d pattern frames": "%d 枚のパターンフレームを生成中",

		// Engine component
		"Opening encoder: %dx%d, QP %d": "エンコーダを起動中: %dx%d, QP %d",
		"Encoder headers: %d bytes":     "エンコーダヘッダ: %d バイト",
		"Draining %d in-flight frames":  "パイプライン内の %d フレームを排出中",

		// Warnings
		"Failed to read frame %d: %s": "フレーム %d の読み込みに失敗しました: %s",
		"Failed to release %s: %s":    "%s の解放に失敗しました: %s",

		// Errors
		"Failed to open input %s: %s":  "入力 %s を開けませんでした: %s",
		"Failed to open output %s: %s": "出力 %s を開けませんでした: %s",
		"Failed to seek %d frames: %s": "%d フレームのシークに失敗しました: %s",
		"Failed to open encoder: %s":   "エンコーダの起動に失敗しました: %s",
		"Encoding failed: %s":          "エンコードに失敗しました: %s",
	})
}
