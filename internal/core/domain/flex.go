package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// FlexValue is a value the store may hold either as a number or as its
// string form (applicationNo, value_cd). At most one of Num/Text is set.
type FlexValue struct {
	Num  *int64
	Text *string
}

// FlexInt creates a numeric FlexValue
func FlexInt(n int64) FlexValue {
	return FlexValue{Num: &n}
}

// FlexString creates a string FlexValue
func FlexString(s string) FlexValue {
	return FlexValue{Text: &s}
}

// FlexFromAny converts a decoded JSON value. Numbers that are whole become
// numeric values, everything else keeps its string form.
func FlexFromAny(raw any) FlexValue {
	switch v := raw.(type) {
	case nil:
		return FlexValue{}
	case FlexValue:
		return v
	case int:
		return FlexInt(int64(v))
	case int64:
		return FlexInt(v)
	case float64:
		if v == float64(int64(v)) {
			return FlexInt(int64(v))
		}
		return FlexString(strconv.FormatFloat(v, 'f', -1, 64))
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return FlexInt(n)
		}
		return FlexString(v.String())
	case string:
		return FlexString(v)
	default:
		b, _ := json.Marshal(v)
		return FlexString(string(b))
	}
}

// IsZero reports whether the value is absent or the empty string.
func (v FlexValue) IsZero() bool {
	if v.Num != nil {
		return false
	}
	return v.Text == nil || *v.Text == ""
}

// IsNumeric reports whether the value is stored as a number
func (v FlexValue) IsNumeric() bool {
	return v.Num != nil
}

// String returns the string representation ("" when absent)
func (v FlexValue) String() string {
	switch {
	case v.Num != nil:
		return strconv.FormatInt(*v.Num, 10)
	case v.Text != nil:
		return *v.Text
	default:
		return ""
	}
}

// Int returns the integer value if the value is numeric or a string that
// parses as an integer.
func (v FlexValue) Int() (int64, bool) {
	if v.Num != nil {
		return *v.Num, true
	}
	if v.Text == nil {
		return 0, false
	}
	n, err := strconv.ParseInt(strings.TrimSpace(*v.Text), 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// CoerceInt returns a numeric FlexValue when v is integer-coercible,
// otherwise v unchanged. Coercion failure is not an error.
func (v FlexValue) CoerceInt() FlexValue {
	if v.IsZero() || v.Num != nil {
		return v
	}
	if n, ok := v.Int(); ok {
		return FlexInt(n)
	}
	return v
}

// Equal compares two values verbatim, then by string form, then as integers.
func (v FlexValue) Equal(o FlexValue) bool {
	if v.Num == nil && v.Text == nil && o.Num == nil && o.Text == nil {
		return true
	}
	if v.Num != nil && o.Num != nil {
		return *v.Num == *o.Num
	}
	if v.String() == o.String() {
		return true
	}
	a, okA := v.Int()
	b, okB := o.Int()
	return okA && okB && a == b
}

// MarshalJSON writes numbers as JSON numbers and text as JSON strings.
func (v FlexValue) MarshalJSON() ([]byte, error) {
	switch {
	case v.Num != nil:
		return []byte(strconv.FormatInt(*v.Num, 10)), nil
	case v.Text != nil:
		return json.Marshal(*v.Text)
	default:
		return []byte(`""`), nil
	}
}

// UnmarshalJSON accepts a number, a string or null.
func (v *FlexValue) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = FlexValue{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*v = FlexString(s)
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw any
	if err := dec.Decode(&raw); err != nil {
		return err
	}
	*v = FlexFromAny(raw)
	return nil
}

// CodesEqual matches a requested code against a stored one: verbatim, then
// trimmed, then as integers ("100" == " 100" == "0100").
func CodesEqual(want, stored string) bool {
	if want == stored {
		return true
	}
	if strings.TrimSpace(want) == strings.TrimSpace(stored) {
		return true
	}
	a, errA := strconv.Atoi(strings.TrimSpace(want))
	b, errB := strconv.Atoi(strings.TrimSpace(stored))
	return errA == nil && errB == nil && a == b
}
