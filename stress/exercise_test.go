// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

package stress

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"trpc.group/trpc-go/lifo/errs"
	"trpc.group/trpc-go/lifo/stack"
)

func identity(i int) int { return i }

func negate(v int) int { return -v - 1 }

func TestExerciseDetectsUnstableValues(t *testing.T) {
	calls := 0
	unstable := func(i int) int {
		calls++
		return i*1000 + calls
	}
	err := exercise(context.Background(), &runner{}, 8, unstable, negate)
	require.NotNil(t, err)
	assert.Equal(t, errs.RetPeekMismatch, errs.Code(err))
}

func TestPopRangeDetectsOrder(t *testing.T) {
	r := &runner{}
	st := stack.New[int]()
	st.Push(1)
	st.Push(0)

	err := popRange(context.Background(), r, st, 0, 2, identity)
	require.NotNil(t, err)
	assert.Equal(t, errs.RetOrderViolation, errs.Code(err))
	assert.Equal(t, int64(1), r.popped.Load())
}

func TestPopRangeDetectsUnderflow(t *testing.T) {
	err := popRange(context.Background(), &runner{}, stack.New[int](), 0, 1, identity)
	assert.Equal(t, errs.RetOrderViolation, errs.Code(err))
}

func TestCheckPeekRestoresTop(t *testing.T) {
	st := stack.New[int]()
	st.Push(5)
	require.Nil(t, checkPeek(st, 5, negate))
	v, ok := st.Peek()
	require.True(t, ok)
	assert.Equal(t, 5, v)

	assert.Equal(t, errs.RetPeekMismatch, errs.Code(checkPeek(st, 6, negate)))
}

func TestFailAggregates(t *testing.T) {
	r := &runner{}
	r.fail(errs.New(errs.RetOrderViolation, "first"))
	r.fail(errs.New(errs.RetPeekMismatch, "second"))

	assert.Equal(t, int64(2), r.failed.Load())
	assert.Equal(t, errs.RetOrderViolation, errs.Code(r.err))
	assert.Contains(t, r.err.Error(), "first")
	assert.Contains(t, r.err.Error(), "second")
}

func TestPushRangeCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := &runner{}
	err := pushRange(ctx, r, stack.New[int](), 0, 10, identity)
	assert.Equal(t, errs.RetCanceled, errs.Code(err))
	assert.Zero(t, r.pushed.Load())
}
