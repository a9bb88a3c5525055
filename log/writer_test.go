// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

package log

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileWriterRollsOnPatternChange(t *testing.T) {
	dir := t.TempDir()
	w, err := newFileWriter(filepath.Join(dir, "sub", "lifo.%Y%m%d.log"))
	require.Nil(t, err)
	defer w.Close()

	now := time.Date(2023, 6, 1, 23, 59, 59, 0, time.Local)
	w.now = func() time.Time { return now }
	_, err = w.Write([]byte("first\n"))
	require.Nil(t, err)
	_, err = w.Write([]byte("second\n"))
	require.Nil(t, err)

	now = now.Add(time.Second)
	_, err = w.Write([]byte("third\n"))
	require.Nil(t, err)
	require.Nil(t, w.Sync())

	day1, err := os.ReadFile(filepath.Join(dir, "sub", "lifo.20230601.log"))
	require.Nil(t, err)
	assert.Equal(t, "first\nsecond\n", string(day1))

	day2, err := os.ReadFile(filepath.Join(dir, "sub", "lifo.20230602.log"))
	require.Nil(t, err)
	assert.Equal(t, "third\n", string(day2))
}

func TestFileWriterInvalidPath(t *testing.T) {
	_, err := newFileWriter("")
	assert.NotNil(t, err)
}

func TestFileWriterCloseWithoutWrite(t *testing.T) {
	w, err := newFileWriter(filepath.Join(t.TempDir(), "x.log"))
	require.Nil(t, err)
	assert.Nil(t, w.Sync())
	assert.Nil(t, w.Close())
}
