package savefile

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// MarshalJSON renders the value as JSON: scalars as their native JSON
// types, mappings as objects in key insertion order, sequences as arrays.
func (v Value) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	if err := v.writeJSON(&buf); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func (v Value) writeJSON(buf *bytes.Buffer) error {
	switch v.kind {
	case KindText:
		raw, err := json.Marshal(v.text)
		if err != nil {
			return err
		}
		buf.Write(raw)
	case KindInt:
		buf.WriteString(strconv.FormatInt(v.integer, 10))
	case KindFloat:
		buf.WriteString(strconv.FormatFloat(v.real, 'g', -1, 64))
	case KindBool:
		buf.WriteString(strconv.FormatBool(v.boolean))
	case KindSequence:
		buf.WriteByte('[')

		for i, elem := range v.seq {
			if i > 0 {
				buf.WriteByte(',')
			}

			if err := elem.writeJSON(buf); err != nil {
				return err
			}
		}

		buf.WriteByte(']')
	case KindMapping:
		buf.WriteByte('{')

		for i, key := range v.mapping.keys {
			if i > 0 {
				buf.WriteByte(',')
			}

			raw, err := json.Marshal(key)
			if err != nil {
				return err
			}

			buf.Write(raw)
			buf.WriteByte(':')

			if err := v.mapping.vals[i].writeJSON(buf); err != nil {
				return err
			}
		}

		buf.WriteByte('}')
	}

	return nil
}
