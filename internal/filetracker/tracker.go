// Package filetracker records which file handles are currently open.
package filetracker

import (
	"runtime"
	"sort"
	"sync"
	"time"

	"text-editor/internal/logger"
)

type FileInfo struct {
	Path       string
	Handle     uintptr
	OpenedAt   time.Time
	StackTrace []uintptr
}

// Tracker is safe for concurrent use. A nil *Tracker ignores every call.
type Tracker struct {
	openFiles map[uintptr]FileInfo
	mu        sync.RWMutex
	logger    logger.Logger
}

func NewTracker(log logger.Logger) *Tracker {
	if log == nil {
		log = logger.NoOpLogger{}
	}
	return &Tracker{
		openFiles: make(map[uintptr]FileInfo),
		logger:    log,
	}
}

func (ft *Tracker) TrackOpen(path string, handle uintptr) {
	if ft == nil {
		return
	}

	ft.mu.Lock()
	defer ft.mu.Unlock()

	var pcs [16]uintptr
	n := runtime.Callers(2, pcs[:])

	info := FileInfo{
		Path:       path,
		Handle:     handle,
		OpenedAt:   time.Now(),
		StackTrace: pcs[:n],
	}
	ft.openFiles[handle] = info

	ft.logger.Debug("FileTracker", "file opened", map[string]interface{}{
		"path":   path,
		"handle": handle,
	})
}

func (ft *Tracker) TrackClose(handle uintptr) {
	if ft == nil {
		return
	}

	ft.mu.Lock()
	defer ft.mu.Unlock()

	info, exists := ft.openFiles[handle]
	if !exists {
		return
	}
	delete(ft.openFiles, handle)

	ft.logger.Debug("FileTracker", "file closed", map[string]interface{}{
		"path":     info.Path,
		"handle":   handle,
		"duration": time.Since(info.OpenedAt).String(),
	})
}

// OpenFiles lists the handles still open, oldest first.
func (ft *Tracker) OpenFiles() []FileInfo {
	if ft == nil {
		return nil
	}

	ft.mu.RLock()
	defer ft.mu.RUnlock()

	result := make([]FileInfo, 0, len(ft.openFiles))
	for _, v := range ft.openFiles {
		result = append(result, v)
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].OpenedAt.Equal(result[j].OpenedAt) {
			return result[i].Handle < result[j].Handle
		}
		return result[i].OpenedAt.Before(result[j].OpenedAt)
	})
	return result
}

// DetectLeaks returns handles open for longer than age.
func (ft *Tracker) DetectLeaks(age time.Duration) []FileInfo {
	threshold := time.Now().Add(-age)
	var leaks []FileInfo

	for _, info := range ft.OpenFiles() {
		if info.OpenedAt.Before(threshold) {
			leaks = append(leaks, info)
		}
	}

	return leaks
}

