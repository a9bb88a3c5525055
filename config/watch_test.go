// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

package config_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/lifo/config"
	"trpc.group/trpc-go/lifo/errs"
)

func TestWatch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "lifo.yaml")
	require.Nil(t, os.WriteFile(path, []byte("stress:\n  depth: 1\n"), 0644))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	type result struct {
		cfg *config.Config
		err error
	}
	results := make(chan result, 16)
	done := make(chan error, 1)
	go func() {
		done <- config.Watch(ctx, path, func(cfg *config.Config, err error) {
			select {
			case results <- result{cfg, err}:
			default:
			}
		})
	}()

	// the watcher is registered asynchronously, keep writing until it reports.
	deadline := time.After(5 * time.Second)
	var got result
	for depth := 2; got.cfg == nil; depth++ {
		data := fmt.Sprintf("stress:\n  depth: %d\n", depth)
		require.Nil(t, os.WriteFile(path, []byte(data), 0644))
		select {
		case got = <-results:
		case <-time.After(100 * time.Millisecond):
		case <-deadline:
			t.Fatal("no reload observed")
		}
		if got.err != nil {
			// a partially written file may fail to parse, try again.
			got = result{}
		}
	}
	require.Greater(t, got.cfg.Stress.Depth, 1)

	require.Nil(t, os.WriteFile(path, []byte("stress:\n  kind: float\n"), 0644))
	for got.err == nil {
		select {
		case got = <-results:
		case <-deadline:
			t.Fatal("no reload error observed")
		}
	}
	require.Equal(t, errs.RetConfigInvalid, errs.Code(got.err))

	cancel()
	select {
	case err := <-done:
		require.Nil(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop")
	}
}

func TestWatchMissingDir(t *testing.T) {
	err := config.Watch(context.Background(), filepath.Join(t.TempDir(), "nope", "lifo.yaml"),
		func(*config.Config, error) {})
	require.NotNil(t, err)
	require.Equal(t, errs.RetConfigIO, errs.Code(err))
}
