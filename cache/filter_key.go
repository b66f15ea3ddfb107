package cache

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/thomasdelmas/Ecommerce-sub000/entity"
)

// FilterKeyPrefix starts every filtered page key.
const FilterKeyPrefix = "filterKey:"

var filterSerializer = NewDefaultKeySerializer()

// StableHash hashes a canonical serialization with xxhash64 and renders it
// as fixed width hex.
func StableHash(canonical string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(canonical))
}

// FilterKey derives the cache key of one filtered page:
//
//	filterKey:<hash>:page:<page>:productPerPage:<pageSize>
//
// Specs that differ only in map insertion order or in the order of set
// members produce the same key.
func FilterKey(spec entity.FilterSpec, page, pageSize int) string {
	hash := StableHash(filterSerializer.SerializeKey("filter", spec.Canonical()))
	return FilterKeyPrefix + hash +
		":page:" + strconv.Itoa(page) +
		":productPerPage:" + strconv.Itoa(pageSize)
}
