package domain

import (
	"encoding/json"
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// SignKey is the reserved parameter name that never takes part in signing.
const SignKey = "sign"

// Params is a mapping of business parameter names to scalar values.
// Supported values are strings, booleans, integer and float kinds,
// json.Number and fmt.Stringer. A nil value marks the key as absent.
type Params map[string]any

// Set stores value under key and returns p for chaining.
func (p Params) Set(key string, value any) Params {
	p[key] = value
	return p
}

// Clone returns a shallow copy of p.
func (p Params) Clone() Params {
	out := make(Params, len(p))
	for k, v := range p {
		out[k] = v
	}
	return out
}

// String returns the textual form of the value stored under key and whether
// the key is present with a non-nil value.
func (p Params) String(key string) (string, bool) {
	v, ok := p[key]
	if !ok || isNil(v) {
		return "", false
	}
	return FormatValue(v), true
}

// Keys returns the signable keys of p in ascending byte order.
// Nil values and the reserved sign key are skipped.
func (p Params) Keys() []string {
	keys := make([]string, 0, len(p))
	for k, v := range p {
		if k == SignKey || isNil(v) {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Canonicalize renders p as "k1=v1&k2=v2..." with keys sorted ascending by
// byte value and values unescaped. This is the exact string that is signed
// and verified on both sides of the protocol.
func Canonicalize(p Params) string {
	var b strings.Builder
	for i, k := range p.Keys() {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(FormatValue(p[k]))
	}
	return b.String()
}

// Values converts the signable entries of p to url.Values.
func (p Params) Values() url.Values {
	values := make(url.Values, len(p))
	for _, k := range p.Keys() {
		values.Set(k, FormatValue(p[k]))
	}
	return values
}

// Encode renders p as a URL-encoded form with sorted keys.
func (p Params) Encode() string {
	return p.Values().Encode()
}

// ParamsFromValues builds Params from decoded form values, taking the first
// value of every key.
func ParamsFromValues(values url.Values) Params {
	p := make(Params, len(values))
	for k, vs := range values {
		if len(vs) > 0 {
			p[k] = vs[0]
		}
	}
	return p
}

// FormatValue returns the textual representation of a parameter value.
func FormatValue(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case bool:
		return strconv.FormatBool(x)
	case int:
		return strconv.Itoa(x)
	case int8, int16, int32, int64:
		return strconv.FormatInt(reflect.ValueOf(x).Int(), 10)
	case uint, uint8, uint16, uint32, uint64:
		return strconv.FormatUint(reflect.ValueOf(x).Uint(), 10)
	case float32:
		return strconv.FormatFloat(float64(x), 'f', -1, 32)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case json.Number:
		return x.String()
	case fmt.Stringer:
		return x.String()
	}
	rv := reflect.ValueOf(v)
	if rv.Kind() == reflect.Pointer {
		return FormatValue(rv.Elem().Interface())
	}
	return fmt.Sprint(v)
}

// isNil reports whether v is nil or a typed nil pointer, map, slice or interface.
func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Map, reflect.Slice, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}
