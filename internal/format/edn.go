package format

import (
	"bytes"
	"encoding/json"
	"io"
	"sort"
	"strconv"
	"strings"
)

// WriteEDN writes an EDN rendering of the payload.
//
// We target the safe subset our CLI payloads need: maps, vectors, strings,
// numbers, booleans, nil. Structs are routed through their JSON tags so both
// output formats agree on field names.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var x any
	if err := json.Unmarshal(raw, &x); err != nil {
		return err
	}

	var buf bytes.Buffer
	writeEDNValue(&buf, x, pretty, 0)
	buf.WriteByte('\n')
	_, err = w.Write(buf.Bytes())
	return err
}

func writeEDNValue(buf *bytes.Buffer, v any, pretty bool, depth int) {
	switch t := v.(type) {
	case nil:
		buf.WriteString("nil")
	case bool:
		buf.WriteString(strconv.FormatBool(t))
	case float64:
		// JSON numbers arrive as float64; print integers without a dot.
		if t == float64(int64(t)) {
			buf.WriteString(strconv.FormatInt(int64(t), 10))
		} else {
			buf.WriteString(strconv.FormatFloat(t, 'g', -1, 64))
		}
	case string:
		buf.WriteString(strconv.Quote(t))
	case []any:
		buf.WriteByte('[')
		for i, e := range t {
			if i > 0 {
				writeEDNSep(buf, pretty, depth+1)
			}
			writeEDNValue(buf, e, pretty, depth+1)
		}
		buf.WriteByte(']')
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		buf.WriteByte('{')
		for i, k := range keys {
			if i > 0 {
				writeEDNSep(buf, pretty, depth+1)
			}
			buf.WriteString(ednKeyword(k))
			buf.WriteByte(' ')
			writeEDNValue(buf, t[k], pretty, depth+1)
		}
		buf.WriteByte('}')
	default:
		// Unreachable for JSON-decoded input; keep output valid regardless.
		buf.WriteString(strconv.Quote(strings.TrimSpace(jsonString(v))))
	}
}

func writeEDNSep(buf *bytes.Buffer, pretty bool, depth int) {
	if !pretty {
		buf.WriteByte(' ')
		return
	}
	buf.WriteByte('\n')
	buf.WriteString(strings.Repeat(" ", depth*2))
}

// ednKeyword renders a map key as a keyword when it is a plain symbol-safe
// name, falling back to a quoted string key otherwise.
func ednKeyword(k string) string {
	if k == "" {
		return `""`
	}
	for _, r := range k {
		safe := r == '-' || r == '_' || r == '?' || r == '!' ||
			(r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9')
		if !safe {
			return strconv.Quote(k)
		}
	}
	return ":" + k
}

func jsonString(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		return ""
	}
	return string(b)
}
