package storage

import (
	"fmt"
	"io"
	"os"

	"github.com/pierrec/lz4/v4"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/ezbase/ezbase/pkg/domain"
)

// SaveToFile writes a snapshot of every collection to a single file:
// a fixed header followed by an lz4-compressed msgpack body.
func (se *StorageEngine) SaveToFile(filename string) error {
	storageData := NewStorageData()
	copiedVersions := make(map[string]int64)

	// Copy collections under their read locks so writers are never blocked
	// for the duration of the disk write
	for _, collName := range se.CollectionNames() {
		se.withCollectionReadLock(collName, func() error {
			se.mu.RLock()
			collection, exists := se.collections[collName]
			if exists {
				if info, ok := se.info[collName]; ok {
					copiedVersions[collName] = info.Version
				}
			}
			se.mu.RUnlock()
			if !exists {
				return nil
			}
			docs := make(map[string]interface{}, len(collection.Documents))
			for docID, doc := range collection.Documents {
				docs[docID] = map[string]interface{}(doc.Copy())
			}
			storageData.Collections[collName] = docs
			return nil
		})
	}

	msgpackData, err := msgpack.Marshal(storageData)
	if err != nil {
		return fmt.Errorf("%w: failed to encode MessagePack: %v", domain.ErrInternal, err)
	}

	compressedData := make([]byte, lz4.CompressBlockBound(len(msgpackData)))
	var hashTable [1 << 16]int
	n, err := lz4.CompressBlock(msgpackData, compressedData, hashTable[:])
	if err != nil {
		return fmt.Errorf("%w: failed to compress data: %v", domain.ErrInternal, err)
	}
	compressedData = compressedData[:n]

	se.saveMu.Lock()
	defer se.saveMu.Unlock()

	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("%w: failed to create file: %v", domain.ErrInternal, err)
	}
	defer file.Close()

	if err := WriteHeader(file); err != nil {
		return fmt.Errorf("%w: failed to write header: %v", domain.ErrInternal, err)
	}
	if _, err := file.Write(compressedData); err != nil {
		return fmt.Errorf("%w: failed to write compressed data: %v", domain.ErrInternal, err)
	}

	se.clearDirtyFlags(copiedVersions)
	return nil
}

// LoadFromFile restores a snapshot written by SaveToFile. A missing file is
// not an error, the store simply starts empty.
func (se *StorageEngine) LoadFromFile(filename string) error {
	se.dataFile = filename

	file, err := os.Open(filename)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("%w: failed to open file: %v", domain.ErrInternal, err)
	}
	defer file.Close()

	if _, err := ReadHeader(file); err != nil {
		return fmt.Errorf("%w: invalid file header: %v", domain.ErrInternal, err)
	}

	compressedData, err := io.ReadAll(file)
	if err != nil {
		return fmt.Errorf("%w: failed to read compressed data: %v", domain.ErrInternal, err)
	}

	decompressedData, err := decompressBlock(compressedData)
	if err != nil {
		return fmt.Errorf("%w: failed to decompress data: %v", domain.ErrInternal, err)
	}

	var storageData StorageData
	if err := msgpack.Unmarshal(decompressedData, &storageData); err != nil {
		return fmt.Errorf("%w: failed to decode MessagePack: %v", domain.ErrInternal, err)
	}

	se.mu.Lock()
	defer se.mu.Unlock()
	for collName, docs := range storageData.Collections {
		collection := domain.NewCollection(collName)
		for docID, docData := range docs {
			doc := domain.Document{}
			if fields, ok := docData.(map[string]interface{}); ok {
				for key, value := range fields {
					doc[key] = value
				}
			}
			collection.Documents[docID] = doc
		}
		se.collections[collName] = collection
		se.info[collName] = &CollectionInfo{
			Name:          collName,
			DocumentCount: int64(len(collection.Documents)),
		}
	}
	return nil
}

// decompressBlock grows the destination buffer until the whole block fits.
// lz4 block compression does not record the uncompressed size.
func decompressBlock(compressed []byte) ([]byte, error) {
	size := len(compressed) * 4
	if size == 0 {
		return nil, nil
	}
	for {
		dst := make([]byte, size)
		n, err := lz4.UncompressBlock(compressed, dst)
		if err == nil {
			return dst[:n], nil
		}
		if size > 1<<30 {
			return nil, err
		}
		size *= 2
	}
}

// clearDirtyFlags resets dirty tracking after a successful snapshot, but
// only for collections whose version still matches what the snapshot
// copied. A write landing after the copy keeps its collection dirty so the
// next save picks it up.
func (se *StorageEngine) clearDirtyFlags(copiedVersions map[string]int64) {
	se.mu.Lock()
	defer se.mu.Unlock()
	for collName, version := range copiedVersions {
		if info, ok := se.info[collName]; ok && info.Version == version {
			info.Dirty = false
		}
	}
}
