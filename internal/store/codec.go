package store

import (
	"encoding/json"
	"fmt"

	"github.com/lumenlabs/lumen/internal/domain"
)

// EncodeDoc converts a record to its document form via a JSON round trip,
// so both backends see the record exactly as its json tags describe it.
func EncodeDoc(rec any) (Doc, error) {
	return encode(rec)
}

// DecodeDoc converts a document back into a typed record.
func DecodeDoc[T any](doc Doc) (T, error) {
	return decode[T](doc)
}

func encode(rec any) (Doc, error) {
	raw, err := json.Marshal(rec)
	if err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}
	var doc Doc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("encoding record: %w", err)
	}
	return doc, nil
}

func decode[T any](doc Doc) (T, error) {
	var rec T
	raw, err := json.Marshal(doc)
	if err != nil {
		return rec, fmt.Errorf("decoding record: %w", err)
	}
	if err := json.Unmarshal(raw, &rec); err != nil {
		return rec, fmt.Errorf("decoding record: %w", err)
	}
	return rec, nil
}

func decodeAll[T any](docs []Doc) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		rec, err := decode[T](d)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, nil
}

// stampTime sets the ordering field to the current time when the record
// carries none. Numbers survive the JSON round trip as float64.
func stampTime(doc Doc, field string) {
	if field == "" {
		return
	}
	if v, ok := doc[field]; ok {
		if f, isNum := v.(float64); !isNum || f != 0 {
			return
		}
	}
	doc[field] = float64(domain.NowMillis())
}

// docTime reads the ordering field, tolerating the numeric types either
// backend may hand back.
func docTime(doc Doc, field string) float64 {
	switch v := doc[field].(type) {
	case float64:
		return v
	case int64:
		return float64(v)
	case int:
		return float64(v)
	default:
		return 0
	}
}
