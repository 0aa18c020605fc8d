// Package safetensors reads and writes float32 tensors in the safetensors
// container format: an 8-byte little-endian header length, a JSON header,
// then the raw tensor bytes.
package safetensors

import (
	"encoding/binary"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"
	"sort"
	"strings"
)

const (
	dtypeF32    = "F32"
	metadataKey = "__metadata__"
)

// Tensor holds a single named float32 tensor.
type Tensor struct {
	Name  string
	Shape []int64
	Data  []float32
}

// Store is a decoded safetensors payload.
type Store struct {
	raw      []byte
	entries  map[string]storeEntry
	names    []string
	metadata map[string]string
}

type storeEntry struct {
	Shape []int64
	Start int
	End   int
}

type headerEntry struct {
	DType   string  `json:"dtype"`
	Shape   []int64 `json:"shape"`
	Offsets [2]int  `json:"data_offsets"`
}

func OpenStore(path string) (*Store, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("safetensors: read %s: %w", path, err)
	}

	return OpenStoreFromBytes(data)
}

func OpenStoreFromBytes(data []byte) (*Store, error) {
	headerEnd, header, err := decodeHeader(data)
	if err != nil {
		return nil, err
	}

	store := &Store{
		raw:     data,
		entries: make(map[string]storeEntry, len(header)),
	}

	for name, rawEntry := range header {
		if name == metadataKey {
			if err := json.Unmarshal(rawEntry, &store.metadata); err != nil {
				return nil, fmt.Errorf("safetensors: decode metadata: %w", err)
			}

			continue
		}

		var entry headerEntry
		if err := json.Unmarshal(rawEntry, &entry); err != nil {
			return nil, fmt.Errorf("safetensors: decode header entry %q: %w", name, err)
		}

		if !strings.EqualFold(entry.DType, dtypeF32) {
			return nil, fmt.Errorf("safetensors: tensor %q has unsupported dtype %q", name, entry.DType)
		}

		elemCount, err := shapeElementCount(entry.Shape)
		if err != nil {
			return nil, fmt.Errorf("safetensors: tensor %q: %w", name, err)
		}

		start := headerEnd + entry.Offsets[0]
		end := headerEnd + entry.Offsets[1]

		if entry.Offsets[0] < 0 || end < start || end > len(data) {
			return nil, fmt.Errorf("safetensors: tensor %q data [%d:%d] exceeds file size %d", name, start, end, len(data))
		}

		if int64(end-start) != elemCount*4 {
			return nil, fmt.Errorf("safetensors: tensor %q needs %d bytes but data has %d", name, elemCount*4, end-start)
		}

		store.entries[name] = storeEntry{Shape: entry.Shape, Start: start, End: end}
		store.names = append(store.names, name)
	}

	if len(store.entries) == 0 {
		return nil, errors.New("safetensors: no tensors found")
	}

	sort.Strings(store.names)

	return store, nil
}

func (s *Store) Names() []string {
	return append([]string(nil), s.names...)
}

// Metadata returns the __metadata__ map, or nil when absent.
func (s *Store) Metadata() map[string]string {
	return s.metadata
}

func (s *Store) Tensor(name string) (*Tensor, error) {
	entry, ok := s.entries[name]
	if !ok {
		return nil, fmt.Errorf("safetensors: tensor %q not found (available: %s)", name, strings.Join(s.names, ", "))
	}

	raw := s.raw[entry.Start:entry.End]
	data := make([]float32, len(raw)/4)

	for i := range data {
		data[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}

	return &Tensor{
		Name:  name,
		Shape: append([]int64(nil), entry.Shape...),
		Data:  data,
	}, nil
}

func decodeHeader(data []byte) (int, map[string]json.RawMessage, error) {
	if len(data) < 8 {
		return 0, nil, fmt.Errorf("safetensors: file too short (%d bytes)", len(data))
	}

	headerLen := binary.LittleEndian.Uint64(data[:8])
	if headerLen > uint64(len(data)-8) {
		return 0, nil, fmt.Errorf("safetensors: header length %d exceeds file size %d", headerLen, len(data))
	}

	headerEnd := 8 + int(headerLen)

	var header map[string]json.RawMessage
	if err := json.Unmarshal(data[8:headerEnd], &header); err != nil {
		return 0, nil, fmt.Errorf("safetensors: parse header: %w", err)
	}

	return headerEnd, header, nil
}

func shapeElementCount(shape []int64) (int64, error) {
	total := int64(1)

	for _, d := range shape {
		if d < 0 {
			return 0, fmt.Errorf("negative dimension %d", d)
		}

		if d == 0 {
			return 0, nil
		}

		if total > math.MaxInt64/d {
			return 0, fmt.Errorf("shape %v overflows element count", shape)
		}

		total *= d
	}

	return total, nil
}
