// Copyright 2019, RadiantBlue Technologies, Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//   http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package records reads pre-packaged serialized tensor record files holding
// per-band brightness temperatures and projection metadata.
//
// The stream framing is: little-endian uint64 payload length, a masked
// crc32c of those 8 length bytes, the payload, and a masked crc32c of the
// payload. Payloads are Example messages in protobuf wire format.
package records

import (
	"encoding/binary"
	"fmt"
	"hash/crc32"
	"io"
)

var castagnoli = crc32.MakeTable(crc32.Castagnoli)

const crcMaskDelta = 0xa282ead8

// maskedCRC computes the masked crc32c used by the record framing.
func maskedCRC(data []byte) uint32 {
	crc := crc32.Checksum(data, castagnoli)
	return ((crc >> 15) | (crc << 17)) + crcMaskDelta
}

// Reader iterates over the records of a stream.
type Reader struct {
	r io.Reader
}

// NewReader wraps a record stream.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r}
}

// maxRecordLen bounds a single record so a corrupt length header cannot
// trigger an enormous allocation. A full 16-band case is well under this.
const maxRecordLen = 1 << 31

// Next returns the next record payload, or io.EOF at a clean end of stream.
func (r *Reader) Next() (*Record, error) {
	header := make([]byte, 12)
	if _, err := io.ReadFull(r.r, header); err != nil {
		if err == io.EOF {
			return nil, io.EOF
		}
		return nil, fmt.Errorf("reading record header: %w", err)
	}

	length := binary.LittleEndian.Uint64(header[:8])
	lengthCRC := binary.LittleEndian.Uint32(header[8:12])
	if maskedCRC(header[:8]) != lengthCRC {
		return nil, fmt.Errorf("corrupt record: length checksum mismatch")
	}
	if length > maxRecordLen {
		return nil, fmt.Errorf("corrupt record: unreasonable payload length %d", length)
	}

	payload := make([]byte, int(length)+4)
	if _, err := io.ReadFull(r.r, payload); err != nil {
		return nil, fmt.Errorf("reading record payload: %w", err)
	}

	data := payload[:length]
	dataCRC := binary.LittleEndian.Uint32(payload[length:])
	if maskedCRC(data) != dataCRC {
		return nil, fmt.Errorf("corrupt record: payload checksum mismatch")
	}

	return parseRecord(data)
}

// ReadAt skips to the record at the given index and returns it.
func (r *Reader) ReadAt(index int) (*Record, error) {
	if index < 0 {
		return nil, fmt.Errorf("record index %d is negative", index)
	}
	for i := 0; ; i++ {
		rec, err := r.Next()
		if err == io.EOF {
			return nil, fmt.Errorf("record index %d is past the end of the stream", index)
		}
		if err != nil {
			return nil, err
		}
		if i == index {
			return rec, nil
		}
	}
}
