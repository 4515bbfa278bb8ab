// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
)

// MarshalAssetManifest serializes an AssetManifest to bytes using the MUS
// format. Field order is part of the on-disk contract.
func MarshalAssetManifest(m *AssetManifest) []byte {
	storedAt := m.StoredAt.UnixMicro()

	size := ord.String.Size(m.Name) +
		ord.String.Size(m.ContentType) +
		varint.Uint64.Size(m.Size) +
		ord.String.Size(m.Checksum) +
		varint.Int64.Size(storedAt)

	buf := make([]byte, size)
	n := ord.String.Marshal(m.Name, buf)
	n += ord.String.Marshal(m.ContentType, buf[n:])
	n += varint.Uint64.Marshal(m.Size, buf[n:])
	n += ord.String.Marshal(m.Checksum, buf[n:])
	varint.Int64.Marshal(storedAt, buf[n:])

	return buf
}

// UnmarshalAssetManifest deserializes an AssetManifest from bytes.
func UnmarshalAssetManifest(data []byte) (*AssetManifest, error) {
	m := &AssetManifest{}
	offset := 0

	name, n, err := ord.String.Unmarshal(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("%w: name: %w", ErrSerializationFailed, err)
	}
	m.Name = name
	offset += n

	contentType, n, err := ord.String.Unmarshal(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("%w: content type: %w", ErrSerializationFailed, err)
	}
	m.ContentType = contentType
	offset += n

	objectSize, n, err := varint.Uint64.Unmarshal(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("%w: size: %w", ErrSerializationFailed, err)
	}
	m.Size = objectSize
	offset += n

	checksum, n, err := ord.String.Unmarshal(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("%w: checksum: %w", ErrSerializationFailed, err)
	}
	m.Checksum = checksum
	offset += n

	storedAt, _, err := varint.Int64.Unmarshal(data[offset:])
	if err != nil {
		return nil, fmt.Errorf("%w: stored at: %w", ErrSerializationFailed, err)
	}
	m.StoredAt = time.UnixMicro(storedAt).UTC()

	return m, nil
}
