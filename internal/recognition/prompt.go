package recognition

import (
	"strings"

	"github.com/touka-study/touka-entry/internal/catalog"
)

// TextPrompt asks for a verbatim transcription of the scanned sheet.
func TextPrompt() string {
	return "この画像はアンケートの回答用紙です。記載されている文字をそのまま書き起こしてください。" +
		"手書き文字も丁寧に判読し、レイアウトの説明は不要です。テキストのみを出力してください。"
}

// StructuredPrompt asks the model for a JSON object keyed exactly by the
// catalog field ids, with per-field guidance and enumerated choices for select
// fields. Unreadable fields must come back as empty strings.
func StructuredPrompt(fields []catalog.FieldDefinition) string {
	var b strings.Builder
	b.WriteString("この画像は「糖化アンケート」の回答用紙です。全ての質問の回答を読み取り、")
	b.WriteString("以下のキーを持つJSONオブジェクトのみを出力してください。\n\n")
	b.WriteString("【フィールド】\n")
	for _, f := range fields {
		b.WriteString("- \"")
		b.WriteString(f.ID)
		b.WriteString("\": ")
		b.WriteString(f.Label)
		switch f.Kind {
		case catalog.KindNumber:
			b.WriteString("（数値を半角で）")
		case catalog.KindSelect:
			b.WriteString("（次のいずれか: ")
			b.WriteString(strings.Join(f.Choices, " / "))
			b.WriteString("）")
		}
		b.WriteString("\n")
	}
	b.WriteString("\n【読み取りルール】\n")
	b.WriteString("1. 値はすべて文字列で出力してください\n")
	b.WriteString("2. チェックマーク（✓）や黒塗り（■）で選ばれた選択肢を読み取ってください\n")
	b.WriteString("3. 判読できない、または空欄のフィールドは空文字列 \"\" にしてください\n")
	b.WriteString("4. 説明文やコードブロックは不要です。JSONのみを出力してください\n")
	return b.String()
}
