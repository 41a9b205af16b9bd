// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package store

import (
	"encoding/json"
	"fmt"

	"github.com/MKhiriev/passvault/models"
)

const payloadVersion = 1

// payloadDocument is the plaintext document sealed inside a container.
type payloadDocument struct {
	Version int            `json:"version"`
	Entries []models.Entry `json:"entries"`
}

// SerializePayload encodes entries, in order, into the plaintext payload.
// The result holds passwords in clear and must be wiped by the caller after
// encryption.
func SerializePayload(entries []models.Entry) ([]byte, error) {
	if entries == nil {
		entries = []models.Entry{}
	}

	data, err := json.MarshalIndent(payloadDocument{Version: payloadVersion, Entries: entries}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode payload: %w", err)
	}

	return data, nil
}

// DeserializePayload decodes a decrypted payload, preserving entry order.
// It rejects payloads with empty or duplicate entry IDs.
func DeserializePayload(data []byte) ([]models.Entry, error) {
	var doc payloadDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: payload: %w", ErrFormat, err)
	}

	if doc.Version > payloadVersion {
		return nil, fmt.Errorf("%w: payload version %d", ErrUnsupportedVersion, doc.Version)
	}

	seen := make(map[string]struct{}, len(doc.Entries))
	for i, e := range doc.Entries {
		if e.ID == "" {
			return nil, fmt.Errorf("%w: entry %d has no id", ErrFormat, i)
		}
		if _, ok := seen[e.ID]; ok {
			return nil, fmt.Errorf("%w: duplicate entry id %s", ErrFormat, e.ID)
		}
		seen[e.ID] = struct{}{}
	}

	return doc.Entries, nil
}
