package models

import "testing"

func TestDataRow_Dimension(t *testing.T) {
	r := DataRow{Chain: "ethereum", Protocol: "curve", Asset: "dai", Pair: "dai-usdc"}
	cases := map[string]string{
		"chain":    "ethereum",
		"protocol": "curve",
		"asset":    "dai",
		"pair":     "dai-usdc",
		"token":    "",
	}
	for id, want := range cases {
		if got := r.Dimension(id); got != want {
			t.Fatalf("Dimension(%q)=%q, want %q", id, got, want)
		}
	}
}
