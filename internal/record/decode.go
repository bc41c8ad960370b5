package record

import (
	"encoding/json"
)

// Keyed is implemented by domain entities that carry their surrogate key.
// The stored row id is authoritative; decode overwrites whatever id the
// document itself carries.
type Keyed interface {
	SetID(id int64)
}

// Decode unmarshals one row into T and stamps the surrogate key.
func Decode[T any, P interface {
	*T
	Keyed
}](row Row) (T, error) {
	var v T
	if err := json.Unmarshal(row.Data, &v); err != nil {
		return v, &StorageError{Op: "decode", Err: err}
	}
	P(&v).SetID(row.ID)
	return v, nil
}

// DecodeAll unmarshals every row into T, stamping surrogate keys.
func DecodeAll[T any, P interface {
	*T
	Keyed
}](rows []Row) ([]T, error) {
	out := make([]T, 0, len(rows))
	for _, row := range rows {
		v, err := Decode[T, P](row)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// Encode marshals an entity into its stored document form.
func Encode(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, &StorageError{Op: "encode", Err: err}
	}
	return data, nil
}
