// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"trpc.group/trpc-go/lifo/errs"
	"trpc.group/trpc-go/lifo/log"
)

// Watch reloads the config file at path every time it is written or recreated and
// passes the result to onChange. A reload error is passed along instead of a config,
// an empty file is skipped.
// The parent directory is watched, so editors replacing the file are followed.
// Watch blocks until ctx is done, returning nil, or the watcher fails.
func Watch(ctx context.Context, path string, onChange func(*Config, error)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return errs.Wrap(err, errs.RetConfigIO, "new config watcher")
	}
	defer watcher.Close()

	path = filepath.Clean(path)
	if err := watcher.Add(filepath.Dir(path)); err != nil {
		return errs.Wrapf(err, errs.RetConfigIO, "watch %s", path)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case e, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !isModified(e, path) {
				continue
			}
			data, err := os.ReadFile(path)
			if err != nil {
				onChange(nil, errs.Wrapf(err, errs.RetConfigIO, "read config %s", path))
				continue
			}
			if len(data) == 0 {
				// truncated by a writer that has not written yet.
				continue
			}
			log.Debugf("config %s changed: %s", path, e.Op)
			onChange(Parse(data, FormatOf(path)))
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			return errs.Wrapf(err, errs.RetConfigIO, "watch %s", path)
		}
	}
}

func isModified(e fsnotify.Event, path string) bool {
	if filepath.Clean(e.Name) != path {
		return false
	}
	return e.Op&fsnotify.Write == fsnotify.Write || e.Op&fsnotify.Create == fsnotify.Create
}
