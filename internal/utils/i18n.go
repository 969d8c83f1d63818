package utils

// Server-side notices for fixed keys. The entry UI is Japanese-first; English
// is kept for mixed-language clinic staff. Unknown keys pass through verbatim.

var translations = map[string]map[string]string{
	"ja": {
		"health.ok": "ok",
		"confirm.required": "確認が必要な操作です。確認のうえ再実行してください。",
		"export.empty": "保存された記録がありません。先に記録を追加してください。",
		"recognize.busy": "読み取り処理が実行中です。完了までお待ちください。",
		"recognize.failed": "文字の読み取りに失敗しました。",
		"recognize.no_json": "構造化データを抽出できませんでした。テキストモードをお試しください。",
		"recognize.network": "通信エラーが発生しました。接続を確認してください。",
		"recognize.api_error": "読み取りAPIでエラーが発生しました。",
		"apikey.missing": "APIキーが設定されていません。設定画面から登録してください。",
		"apikey.rejected": "APIキーが拒否されました。設定を確認してください。",
		"apikey.required": "APIキーを入力してください。",
		"source.none": "ファイルが選択されていません。",
		"source.unreadable": "ファイルを読み込めませんでした。",
		"source.not_document": "ページ移動はPDFのみ可能です。",
		"source.render_failed": "ページの描画に失敗しました。",
		"page.out_of_range": "指定されたページは存在しません。",
	},
	"en": {
		"health.ok": "ok",
		"confirm.required": "This action is destructive and requires confirmation.",
		"export.empty": "No records to export. Add a record first.",
		"recognize.busy": "A recognition request is already in flight.",
		"recognize.failed": "Text recognition failed.",
		"recognize.no_json": "No structured data could be extracted. Try text mode.",
		"recognize.network": "Network error while contacting the recognition API.",
		"recognize.api_error": "The recognition API reported an error.",
		"apikey.missing": "No API key is configured. Save one in settings.",
		"apikey.rejected": "The API key was rejected. Check your settings.",
		"apikey.required": "An API key is required.",
		"source.none": "No file has been selected.",
		"source.unreadable": "The file could not be read.",
		"source.not_document": "Page navigation is only available for PDF documents.",
		"source.render_failed": "Failed to render the page.",
		"page.out_of_range": "The requested page does not exist.",
	},
}

// T returns the translated string for key in locale; falls back to Japanese,
// then to the key itself.
func T(locale, key string) string {
	if m, ok := translations[locale]; ok {
		if v, ok := m[key]; ok {
			return v
		}
	}
	if v, ok := translations["ja"][key]; ok {
		return v
	}
	return key
}
