package main

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		"framelens version %s":           "framelens バージョン %s",
		"Interrupted, shutting down...":  "中断されました。終了します...",
	})
}
