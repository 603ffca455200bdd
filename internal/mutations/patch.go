package mutations

import (
	"bytes"
	"fmt"
	"time"

	json "github.com/goccy/go-json"

	"mortgage-portal/internal/derive"
	"mortgage-portal/internal/model"
)

// decodeProps unmarshals the mutation properties into out. Absent properties
// decode as an empty object.
func decodeProps(mutation *model.Mutation, out interface{}) []model.Message {
	raw := bytes.TrimSpace(mutation.MutationProperties)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		raw = []byte("{}")
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return []model.Message{critical(CodeInvalidProperties,
			fmt.Sprintf("Invalid properties for %s: %v", mutation.MutationDefinitionName, err))}
	}
	return nil
}

// asOf returns the date a mutation is evaluated at. The engine has already
// checked ActualAt, so a parse failure falls back to today.
func asOf(mutation *model.Mutation) time.Time {
	if t, ok := derive.ParseDate(mutation.ActualAt); ok {
		return t
	}
	return time.Now().UTC()
}

// rawText turns a JSON scalar into the text a form input would have carried:
// strings are unquoted, null is blank, numbers and booleans keep their literal.
func rawText(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", err
		}
		return s, nil
	case '{', '[':
		return "", fmt.Errorf("value must be a scalar, got %s", raw)
	}
	return string(raw), nil
}

func marshalValue(v interface{}) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}
