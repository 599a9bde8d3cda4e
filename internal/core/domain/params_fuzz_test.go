//go:build unit

package domain

import (
	"strings"
	"testing"
)

// FuzzCanonicalize tests that Canonicalize handles arbitrary input safely.
func FuzzCanonicalize(f *testing.F) {
	f.Add("name", "张三", "cert_no", "111111111111111111")
	f.Add("", "", "sign", "x")
	f.Add("a=b", "c&d", "z", strings.Repeat("v", 4096))

	f.Fuzz(func(t *testing.T, k1, v1, k2, v2 string) {
		a := Params{k1: v1, k2: v2}
		b := Params{k2: v2, k1: v1}
		if k1 == k2 {
			return
		}
		if Canonicalize(a) != Canonicalize(b) {
			t.Errorf("Canonicalize() depends on construction order")
		}
	})
}

// FuzzParseResult tests that ParseResult never panics.
func FuzzParseResult(f *testing.F) {
	f.Add([]byte(`{"success":true,"zm_score":"680"}`))
	f.Add([]byte(`{"success":false,"error_code":"X"}`))
	f.Add([]byte(`null`))
	f.Add([]byte(`[]`))
	f.Add([]byte{})

	f.Fuzz(func(t *testing.T, data []byte) {
		r, err := ParseResult(data)
		if err == nil && r == nil {
			t.Error("ParseResult() returned nil result without error")
		}
	})
}
