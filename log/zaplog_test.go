// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

package log

import (
	"bytes"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewZapBufLogger return a buffer logger using the formatter of c.
func NewZapBufLogger(buf *bytes.Buffer, c OutputConfig) Logger {
	lvl := zap.NewAtomicLevelAt(Levels[c.Level])
	core := zapcore.NewCore(newEncoder(&c), zapcore.AddSync(buf), lvl)
	return &zapLog{
		levels: []zap.AtomicLevel{lvl},
		logger: zap.New(
			core,
			zap.AddCallerSkip(2),
			zap.AddCaller(),
		),
	}
}
