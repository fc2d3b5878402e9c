package storage

import "time"

type StorageOption func(*StorageEngine)

// WithDataFile sets the single-file persistence target. An empty path
// disables persistence entirely.
func WithDataFile(path string) StorageOption {
	return func(engine *StorageEngine) {
		engine.dataFile = path
	}
}

// WithSaveAfterWrite enables saving after every write operation (default: true)
func WithSaveAfterWrite(enabled bool) StorageOption {
	return func(engine *StorageEngine) {
		engine.saveAfterWrite = enabled
	}
}

// WithBackgroundSave switches persistence to a periodic save of dirty
// collections instead of saving after every write
func WithBackgroundSave(interval time.Duration) StorageOption {
	return func(engine *StorageEngine) {
		engine.backgroundSave = true
		engine.saveInterval = interval
		engine.saveAfterWrite = false
	}
}
