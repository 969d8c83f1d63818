package services

import "testing"

func TestSetFieldUnknownRejected(t *testing.T) {
	s := NewFormService()
	if err := s.SetField("patient_id", "001"); err != nil {
		t.Fatalf("SetField(patient_id): %v", err)
	}
	if err := s.SetField("nope", "x"); err == nil {
		t.Fatal("expected error for unknown field id")
	}
	if got := s.Snapshot()["patient_id"]; got != "001" {
		t.Fatalf("patient_id = %q", got)
	}
}

func TestSetFieldAcceptsFreeFormValues(t *testing.T) {
	s := NewFormService()
	// Number/select kinds accept arbitrary strings; scanned handwriting is
	// noisy and the operator fixes it in the form.
	if err := s.SetField("height", "約170"); err != nil {
		t.Fatalf("SetField(height): %v", err)
	}
	if err := s.SetField("gender", "unreadable"); err != nil {
		t.Fatalf("SetField(gender): %v", err)
	}
}

func TestClearRequiresConfirmation(t *testing.T) {
	s := NewFormService()
	_ = s.SetField("patient_id", "001")
	if err := s.Clear(false); err == nil {
		t.Fatal("unconfirmed clear must be rejected")
	}
	if got := s.Snapshot()["patient_id"]; got != "001" {
		t.Fatal("rejected clear must leave state unchanged")
	}
	if err := s.Clear(true); err != nil {
		t.Fatalf("confirmed clear: %v", err)
	}
	if len(s.Snapshot()) != 0 {
		t.Fatal("form not empty after clear")
	}
}

func TestLoadStructuredReplacesWholesale(t *testing.T) {
	s := NewFormService()
	_ = s.SetField("comments", "handwritten note")

	applied, err := s.LoadStructured(map[string]any{
		"patient_id": "123",
		"gender":     "男",
		"foo":        "bar",
	})
	if err != nil {
		t.Fatalf("LoadStructured: %v", err)
	}
	if applied != 2 {
		t.Fatalf("applied = %d, want 2", applied)
	}
	data := s.Snapshot()
	if data["patient_id"] != "123" || data["gender"] != "男" {
		t.Fatalf("known keys not applied: %v", data)
	}
	if _, ok := data["foo"]; ok {
		t.Fatal("unknown key must be dropped")
	}
	// Replacement, not merge: the previous manual entry is gone.
	if _, ok := data["comments"]; ok {
		t.Fatal("prior form state must be replaced wholesale")
	}
}

func TestLoadStructuredNilRejected(t *testing.T) {
	s := NewFormService()
	if _, err := s.LoadStructured(nil); err == nil {
		t.Fatal("nil payload must be rejected")
	}
}

func TestStringifyValue(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{nil, ""},
		{"男", "男"},
		{float64(170), "170"},
		{170.5, "170.5"},
		{true, "true"},
	}
	for _, c := range cases {
		if got := stringifyValue(c.in); got != c.want {
			t.Errorf("stringifyValue(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
