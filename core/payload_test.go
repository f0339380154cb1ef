package core

import "testing"

func TestLookupString(t *testing.T) {
	raw := map[string]any{
		"RefundStep": float64(2),
		"result": map[string]any{
			"data": map[string]any{"status": "SUCCESSFULL", "amount": float64(1000)},
		},
		"empty": nil,
	}
	cases := []struct {
		keys []string
		want string
	}{
		{[]string{"RefundStep"}, "2"},
		{[]string{"result", "data", "status"}, "SUCCESSFULL"},
		{[]string{"result", "data", "amount"}, "1000"},
		{[]string{"result", "missing", "status"}, ""},
		{[]string{"RefundStep", "nested"}, ""},
		{[]string{"empty"}, ""},
	}
	for _, tc := range cases {
		if got := LookupString(raw, tc.keys...); got != tc.want {
			t.Fatalf("LookupString(%v): expected %q, got %q", tc.keys, tc.want, got)
		}
	}
}
