package util

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrNoJSONObject = errors.New("no json object in text")

// UnmarshalLoose decodes raw into v, tolerating prose around the JSON
// object. Generation services sometimes wrap valid JSON in commentary;
// when direct decoding fails, the substring between the first '{' and
// the last '}' is tried before giving up.
func UnmarshalLoose(raw string, v any) error {
	if err := json.Unmarshal([]byte(raw), v); err == nil {
		return nil
	}
	embedded, err := ExtractJSONObject(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal([]byte(embedded), v)
}

// ExtractJSONObject returns the substring between the first '{' and the
// last '}' of raw, or ErrNoJSONObject when no such span exists.
func ExtractJSONObject(raw string) (string, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return "", ErrNoJSONObject
	}
	return raw[start : end+1], nil
}
