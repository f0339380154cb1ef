package auth

import (
	"encoding/base64"
	"testing"
)

func TestHash_IsBase64OfKeyColonSecret(t *testing.T) {
	cases := [][2]string{
		{"key", "secret"},
		{"", ""},
		{"user name", "p@ss:word!~"},
		{"K3y_-.", "S3cr3t/+="},
	}
	for _, tc := range cases {
		want := base64.StdEncoding.EncodeToString([]byte(tc[0] + ":" + tc[1]))
		if got := Hash(tc[0], tc[1]); got != want {
			t.Fatalf("Hash(%q, %q): expected %q, got %q", tc[0], tc[1], want, got)
		}
	}
	if got := Hash("Aladdin", "open sesame"); got != "QWxhZGRpbjpvcGVuIHNlc2FtZQ==" {
		t.Fatalf("unexpected basic credential %q", got)
	}
}

func TestEncodeForm_PreservesOrderAndEscapes(t *testing.T) {
	got := EncodeForm(FormField{Key: "a", Value: "1"}, FormField{Key: "b", Value: "x y"})
	if got != "a=1&b=x%20y" {
		t.Fatalf("unexpected form encoding %q", got)
	}

	got = EncodeForm(FormField{Key: "z", Value: "1"}, FormField{Key: "a key", Value: "a&b=c"})
	if got != "z=1&a%20key=a%26b%3Dc" {
		t.Fatalf("unexpected escaped encoding %q", got)
	}

	got = EncodeForm(FormField{Key: "mark", Value: "it's (ok)!*~"})
	if got != "mark=it's%20(ok)!*~" {
		t.Fatalf("expected component-style escaping, got %q", got)
	}

	if EncodeForm() != "" {
		t.Fatalf("expected empty encoding for no fields")
	}
}
