// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"hash"
	"sync"
)

// hasherPool holds reusable HMAC-SHA256 instances. Must be initialized via
// InitHasherPool before Hash is called.
var hasherPool sync.Pool

// InitHasherPool initializes the pool of HMAC-SHA256 hashers keyed with
// hashKey. Client and server must use the same key.
func InitHasherPool(hashKey string) {
	hasherPool = sync.Pool{
		New: func() any {
			return hmac.New(sha256.New, []byte(hashKey))
		},
	}
}

// Hash computes an HMAC-SHA256 digest of data using a pooled hasher.
func Hash(data []byte) []byte {
	h := hasherPool.Get().(hash.Hash)
	h.Reset()

	h.Write(data)
	sum := h.Sum(nil)

	h.Reset()
	hasherPool.Put(h)

	return sum
}

// HashPayload marshals v to JSON and returns the hex-encoded HMAC of the
// result. Record payloads are maps, and encoding/json writes map keys in
// sorted order, so equal records always hash equally regardless of the
// field order the sender used.
func HashPayload(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("error marshaling payload for hashing: %w", err)
	}

	return hex.EncodeToString(Hash(data)), nil
}
