package domain

import (
	"bytes"
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

// LooseInt is an integer that clients send either as a JSON number or as a
// string ("3", "4 séries"). Only the leading digits of a string are used.
type LooseInt struct {
	Value int
	Valid bool
}

// NewLooseInt returns a valid LooseInt holding v.
func NewLooseInt(v int) LooseInt {
	return LooseInt{Value: v, Valid: true}
}

func (l *LooseInt) UnmarshalJSON(data []byte) error {
	*l = LooseInt{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if n, ok := leadingInt(s); ok {
			*l = NewLooseInt(n)
		}
		return nil
	}

	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		// booleans, objects and arrays carry no number
		return nil
	}
	if n, ok := floatToInt(f); ok {
		*l = NewLooseInt(n)
	}
	return nil
}

func (l LooseInt) MarshalJSON() ([]byte, error) {
	if !l.Valid {
		return []byte("null"), nil
	}
	return []byte(strconv.Itoa(l.Value)), nil
}

// LooseText is a value that clients send either as a number (10) or as free
// text ("10-12", "60s").
type LooseText struct {
	Text     string
	IsNumber bool
	Present  bool
}

// TextValue returns a LooseText holding s.
func TextValue(s string) LooseText {
	return LooseText{Text: s, Present: true}
}

// NumberValue returns a LooseText holding the number n.
func NumberValue(n int) LooseText {
	return LooseText{Text: strconv.Itoa(n), IsNumber: true, Present: true}
}

func (l *LooseText) UnmarshalJSON(data []byte) error {
	*l = LooseText{}
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*l = LooseText{Text: s, Present: strings.TrimSpace(s) != ""}
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return nil
	}
	*l = LooseText{Text: n.String(), IsNumber: true, Present: true}
	return nil
}

func (l LooseText) MarshalJSON() ([]byte, error) {
	if !l.Present {
		return []byte("null"), nil
	}
	if l.IsNumber {
		return []byte(l.Text), nil
	}
	return json.Marshal(l.Text)
}

// Int returns the value as an integer when it is a number.
func (l LooseText) Int() (int, bool) {
	if !l.Present || !l.IsNumber {
		return 0, false
	}
	f, err := strconv.ParseFloat(l.Text, 64)
	if err != nil {
		return 0, false
	}
	return floatToInt(f)
}

// Float parses the value as a decimal number. A comma decimal separator is
// accepted ("20,5").
func (l LooseText) Float() (float64, bool) {
	if !l.Present {
		return 0, false
	}
	s := strings.ReplaceAll(strings.TrimSpace(l.Text), ",", ".")
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

// DigitRuns returns every maximal run of ASCII digits in s as an integer.
func DigitRuns(s string) []int {
	var runs []int
	start := -1
	for i := 0; i <= len(s); i++ {
		isDigit := i < len(s) && s[i] >= '0' && s[i] <= '9'
		if isDigit && start < 0 {
			start = i
		}
		if !isDigit && start >= 0 {
			if n, err := strconv.Atoi(s[start:i]); err == nil {
				runs = append(runs, n)
			}
			start = -1
		}
	}
	return runs
}

// leadingInt parses the digits at the start of s, after optional whitespace.
func leadingInt(s string) (int, bool) {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// floatToInt truncates f toward zero. NaN and values outside the int range have
// no integer form.
func floatToInt(f float64) (int, bool) {
	if math.IsNaN(f) || f >= math.MaxInt || f < math.MinInt {
		return 0, false
	}
	return int(f), true
}
