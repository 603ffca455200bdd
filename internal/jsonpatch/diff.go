// Package jsonpatch computes RFC 6902 patches between two JSON documents.
package jsonpatch

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	json "github.com/goccy/go-json"
)

// Op is a single RFC 6902 operation. Value is absent for "remove".
type Op struct {
	Op    string          `json:"op"`
	Path  string          `json:"path"`
	Value json.RawMessage `json:"value,omitempty"`
}

// DiffJSON decodes a and b and returns the patch transforming a into b.
func DiffJSON(a, b []byte) ([]Op, error) {
	var av, bv interface{}
	if err := json.Unmarshal(a, &av); err != nil {
		return nil, fmt.Errorf("decode source document: %w", err)
	}
	if err := json.Unmarshal(b, &bv); err != nil {
		return nil, fmt.Errorf("decode target document: %w", err)
	}
	ops := Diff(av, bv, "")
	if ops == nil {
		ops = []Op{}
	}
	return ops, nil
}

// Diff computes the patch that transforms a into b.
// Both a and b should be the result of json.Unmarshal into interface{}.
// Path should be "" for the root document. Object keys are visited in sorted
// order so the output is stable.
func Diff(a, b interface{}, path string) []Op {
	if a == nil && b == nil {
		return nil
	}
	if a == nil || b == nil {
		return []Op{replaceOp(path, b)}
	}

	aMap, aIsMap := a.(map[string]interface{})
	bMap, bIsMap := b.(map[string]interface{})
	if aIsMap && bIsMap {
		return diffObjects(aMap, bMap, path)
	}

	aArr, aIsArr := a.([]interface{})
	bArr, bIsArr := b.([]interface{})
	if aIsArr && bIsArr {
		return diffArrays(aArr, bArr, path)
	}

	if aIsMap || bIsMap || aIsArr || bIsArr || a != b {
		return []Op{replaceOp(path, b)}
	}
	return nil
}

func diffObjects(a, b map[string]interface{}, path string) []Op {
	var ops []Op

	for _, k := range sortedKeys(a) {
		if _, ok := b[k]; !ok {
			ops = append(ops, removeOp(path+"/"+EscapeKey(k)))
		}
	}

	for _, k := range sortedKeys(b) {
		childPath := path + "/" + EscapeKey(k)
		av, inA := a[k]
		if !inA {
			ops = append(ops, addOp(childPath, b[k]))
			continue
		}
		ops = append(ops, Diff(av, b[k], childPath)...)
	}

	return ops
}

func diffArrays(a, b []interface{}, path string) []Op {
	var ops []Op

	minLen := len(a)
	if len(b) < minLen {
		minLen = len(b)
	}

	for i := 0; i < minLen; i++ {
		ops = append(ops, Diff(a[i], b[i], path+"/"+strconv.Itoa(i))...)
	}

	// Reverse order keeps the remaining indices valid while applying.
	for i := len(a) - 1; i >= minLen; i-- {
		ops = append(ops, removeOp(path+"/"+strconv.Itoa(i)))
	}

	for i := minLen; i < len(b); i++ {
		ops = append(ops, addOp(path+"/"+strconv.Itoa(i), b[i]))
	}

	return ops
}

func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func replaceOp(path string, value interface{}) Op {
	return Op{Op: "replace", Path: path, Value: marshalValue(value)}
}

func addOp(path string, value interface{}) Op {
	return Op{Op: "add", Path: path, Value: marshalValue(value)}
}

func removeOp(path string) Op {
	return Op{Op: "remove", Path: path}
}

func marshalValue(v interface{}) json.RawMessage {
	b, _ := json.Marshal(v)
	return b
}

// EscapeKey escapes a JSON Pointer token per RFC 6901.
func EscapeKey(s string) string {
	s = strings.ReplaceAll(s, "~", "~0")
	s = strings.ReplaceAll(s, "/", "~1")
	return s
}

// UnescapeKey reverses EscapeKey.
func UnescapeKey(s string) string {
	s = strings.ReplaceAll(s, "~1", "/")
	s = strings.ReplaceAll(s, "~0", "~")
	return s
}
