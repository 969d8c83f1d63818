package catalog

// Kind describes the input widget a field is rendered with.
type Kind string

const (
	KindText     Kind = "text"
	KindNumber   Kind = "number"
	KindSelect   Kind = "select"
	KindTextarea Kind = "textarea"
)

// FieldDefinition is one survey question. The order of the catalog slice
// determines both form layout and CSV column order.
type FieldDefinition struct {
	ID          string   `json:"id"`
	Label       string   `json:"label"`
	Kind        Kind     `json:"kind"`
	Choices     []string `json:"choices,omitempty"`
	Placeholder string   `json:"placeholder,omitempty"`
}

var historyChoices = []string{"なし", "5年未満", "5〜10年前", "10年以上前", "わからない"}

// fields is the 糖化アンケート (glycation survey) question sheet.
var fields = []FieldDefinition{
	{ID: "clinic_name", Label: "医療機関名", Kind: KindText, Placeholder: "例: ○○歯科医院"},
	{ID: "patient_id", Label: "患者ID", Kind: KindText},
	{ID: "family_name", Label: "氏（姓）", Kind: KindText},
	{ID: "given_name", Label: "名", Kind: KindText},
	{ID: "birth_era", Label: "生年月日（元号）", Kind: KindSelect, Choices: []string{"昭和", "平成", "令和"}},
	{ID: "birth_year", Label: "生年月日（年）", Kind: KindNumber},
	{ID: "birth_month", Label: "生年月日（月）", Kind: KindNumber},
	{ID: "birth_day", Label: "生年月日（日）", Kind: KindNumber},
	{ID: "gender", Label: "性別", Kind: KindSelect, Choices: []string{"男", "女", "回答しない"}},
	{ID: "blood_type", Label: "血液型", Kind: KindSelect, Choices: []string{"A型", "B型", "O型", "AB型", "わからない"}},
	{ID: "height", Label: "身長（cm）", Kind: KindNumber},
	{ID: "weight", Label: "体重（kg）", Kind: KindNumber},
	{ID: "diabetes", Label: "糖尿病の既往", Kind: KindSelect, Choices: historyChoices},
	{ID: "dyslipidemia", Label: "脂質異常症の既往", Kind: KindSelect, Choices: historyChoices},
	{ID: "sibling_diabetes", Label: "兄弟姉妹の糖尿病歴", Kind: KindSelect, Choices: []string{"はい", "いいえ", "わからない"}},
	{ID: "parent_diabetes", Label: "両親の糖尿病歴", Kind: KindSelect, Choices: []string{"はい", "いいえ", "わからない"}},
	{ID: "no_exercise", Label: "運動習慣なし", Kind: KindSelect, Choices: []string{"はい", "いいえ"}},
	{ID: "snack_frequency", Label: "お菓子の頻度", Kind: KindSelect, Choices: []string{"ほぼ毎日", "週2〜3回", "週1回以下"}},
	{ID: "sweet_drinks", Label: "普段の飲み物", Kind: KindSelect, Choices: []string{"有糖飲料", "無糖飲料"}},
	{ID: "alcohol", Label: "飲酒", Kind: KindSelect, Choices: []string{"飲む", "ほとんど飲まない"}},
	{ID: "alcohol_detail", Label: "飲酒の詳細", Kind: KindText, Placeholder: "飲む場合のみ記入"},
	{ID: "extracted_tooth", Label: "抜去歯の位置", Kind: KindText},
	{ID: "comments", Label: "コメント欄", Kind: KindTextarea},
}

var byID = func() map[string]FieldDefinition {
	m := make(map[string]FieldDefinition, len(fields))
	for _, f := range fields {
		m[f.ID] = f
	}
	return m
}()

// Fields returns the catalog in definition order. The caller receives a copy.
func Fields() []FieldDefinition {
	return append([]FieldDefinition(nil), fields...)
}

// ByID looks up a field definition by id.
func ByID(id string) (FieldDefinition, bool) {
	f, ok := byID[id]
	return f, ok
}

// KnownID reports whether id belongs to the catalog.
func KnownID(id string) bool {
	_, ok := byID[id]
	return ok
}

// Labels returns the display labels in catalog order (the CSV header row).
func Labels() []string {
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		out = append(out, f.Label)
	}
	return out
}
