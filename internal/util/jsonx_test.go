package util

import "testing"

func TestUnmarshalLooseDirect(t *testing.T) {
	var v map[string]any
	if err := UnmarshalLoose(`{"a":1}`, &v); err != nil {
		t.Fatal(err)
	}
	if v["a"].(float64) != 1 {
		t.Fatalf("v=%v", v)
	}
}

func TestUnmarshalLooseEmbedded(t *testing.T) {
	var v struct {
		Products []any `json:"products"`
	}
	raw := `Sure, here is the extracted order: {"products": [], "delivery": {}} Let me know if you need more.`
	if err := UnmarshalLoose(raw, &v); err != nil {
		t.Fatal(err)
	}
	if v.Products == nil || len(v.Products) != 0 {
		t.Fatalf("products=%v", v.Products)
	}
}

func TestUnmarshalLooseNoObject(t *testing.T) {
	var v map[string]any
	if err := UnmarshalLoose("no json here", &v); err == nil {
		t.Fatal("expected error")
	}
}

func TestExtractJSONObject(t *testing.T) {
	got, err := ExtractJSONObject(`x {"k": {"n": 1}} y`)
	if err != nil {
		t.Fatal(err)
	}
	if got != `{"k": {"n": 1}}` {
		t.Fatalf("got %q", got)
	}
	if _, err := ExtractJSONObject("}{"); err == nil {
		t.Fatal("expected error for reversed braces")
	}
}
