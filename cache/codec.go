package cache

import (
	"bytes"

	"github.com/vmihailenco/msgpack/v5"
)

// structTag makes msgpack honour the json tags of the entities, which keeps
// fields hidden from JSON (secret hashes) out of the cache as well.
const structTag = "json"

// EncodeList serializes an ordered entity list. A nil list is stored as an
// empty one so that cached empty pages decode as empty, not missing.
func EncodeList[E any](records []E) ([]byte, error) {
	if records == nil {
		records = []E{}
	}

	var buf bytes.Buffer
	enc := msgpack.NewEncoder(&buf)
	enc.SetCustomStructTag(structTag)
	if err := enc.Encode(records); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DecodeList is the inverse of EncodeList.
func DecodeList[E any](data []byte) ([]E, error) {
	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag(structTag)

	var records []E
	if err := dec.Decode(&records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []E{}
	}
	return records, nil
}
