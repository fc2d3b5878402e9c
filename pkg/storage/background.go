package storage

import (
	"log"
	"time"
)

// StartBackgroundWorkers starts the periodic save worker when background
// saves are enabled
func (se *StorageEngine) StartBackgroundWorkers() {
	if !se.backgroundSave {
		return
	}

	se.backgroundWg.Add(1)
	go func() {
		defer se.backgroundWg.Done()
		ticker := time.NewTicker(se.saveInterval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				se.saveDirtyCollections()
			case <-se.stopChan:
				return
			}
		}
	}()
}

// StopBackgroundWorkers stops background workers
func (se *StorageEngine) StopBackgroundWorkers() {
	select {
	case <-se.stopChan:
		// Channel already closed, do nothing
	default:
		close(se.stopChan)
	}
	se.backgroundWg.Wait()
}

// saveDirtyCollections snapshots the store when any collection changed
// since the last save
func (se *StorageEngine) saveDirtyCollections() {
	if se.dataFile == "" {
		return
	}

	se.mu.RLock()
	dirty := false
	for _, info := range se.info {
		if info.Dirty {
			dirty = true
			break
		}
	}
	se.mu.RUnlock()

	if !dirty {
		return
	}

	if err := se.SaveToFile(se.dataFile); err != nil {
		log.Printf("ERROR: Background save failed: %v", err)
	}
}
