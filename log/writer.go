// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

package log

import (
	"errors"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/lestrrat-go/strftime"
)

// fileWriter writes logs into a file whose name is a strftime pattern.
// When the formatted name changes, e.g. at midnight for %Y%m%d, a new file is opened.
type fileWriter struct {
	mu       sync.Mutex
	pattern  *strftime.Strftime
	now      func() time.Time
	currPath string
	currFile *os.File
}

func newFileWriter(filename string) (*fileWriter, error) {
	if filename == "" {
		return nil, errors.New("invalid file path")
	}
	pattern, err := strftime.New(filename)
	if err != nil {
		return nil, errors.New("invalid time pattern")
	}
	return &fileWriter{pattern: pattern, now: time.Now}, nil
}

// Write writes logs. It implements io.Writer.
func (w *fileWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if err := w.reopenIfNeeded(); err != nil {
		return 0, err
	}
	return w.currFile.Write(p)
}

func (w *fileWriter) reopenIfNeeded() error {
	path := w.pattern.FormatString(w.now())
	if w.currFile != nil && path == w.currPath {
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return err
	}
	if w.currFile != nil {
		_ = w.currFile.Close()
	}
	w.currPath, w.currFile = path, f
	return nil
}

// Sync commits the current file to stable storage. It implements zapcore.WriteSyncer.
func (w *fileWriter) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.currFile == nil {
		return nil
	}
	return w.currFile.Sync()
}

// Close closes the current log file. It implements io.Closer.
func (w *fileWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.currFile == nil {
		return nil
	}
	err := w.currFile.Close()
	w.currFile = nil
	return err
}
