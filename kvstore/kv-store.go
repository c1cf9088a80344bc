// Package kvstore holds an in-memory mapping from string keys to string values.
//
// A KeyValueStore is not safe for concurrent use without external
// synchronization. Callers that share one between goroutines must guard it
// themselves.
package kvstore

import "sort"

// KeyValueStore maps keys to values. The zero value is an empty store ready
// to use.
type KeyValueStore struct {
	data map[string]string
}

// NewKeyValueStore returns an empty store.
func NewKeyValueStore() *KeyValueStore {
	return &KeyValueStore{data: make(map[string]string)}
}

// Insert associates value with key, overwriting any previous value.
func (kv *KeyValueStore) Insert(key, value string) {
	if kv.data == nil {
		kv.data = make(map[string]string)
	}
	kv.data[key] = value
}

// Get returns the value stored under key and whether it was present.
func (kv *KeyValueStore) Get(key string) (string, bool) {
	value, ok := kv.data[key]
	return value, ok
}

// Remove deletes key and returns the value it held. The second result is
// false when key was absent.
func (kv *KeyValueStore) Remove(key string) (string, bool) {
	value, ok := kv.data[key]
	if !ok {
		return "", false
	}
	delete(kv.data, key)
	return value, true
}

func (kv *KeyValueStore) Len() int {
	return len(kv.data)
}

func (kv *KeyValueStore) IsEmpty() bool {
	return kv.Len() == 0
}

// Dump returns a copy of every association in the store.
func (kv *KeyValueStore) Dump() map[string]string {
	out := make(map[string]string, len(kv.data))
	for k, v := range kv.data {
		out[k] = v
	}
	return out
}

// Keys returns the stored keys in ascending order.
func (kv *KeyValueStore) Keys() []string {
	keys := make([]string, 0, len(kv.data))
	for k := range kv.data {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
