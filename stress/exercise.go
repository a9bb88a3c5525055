// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

package stress

import (
	"context"

	"trpc.group/trpc-go/lifo/errs"
	"trpc.group/trpc-go/lifo/stack"
)

// exercise runs one round on a fresh stack:
//  1. pushes gen(0) .. gen(depth-1),
//  2. checks Peek and a write through PeekMut,
//  3. pops the upper half, pushes it again and drains everything,
//  4. refills the stack and tears it down with Reset.
//
// mut must return a value different from its input.
// Per round it pushes 2*depth+(depth-depth/2) elements, pops depth+(depth-depth/2)
// and releases depth through Reset.
func exercise[T comparable](ctx context.Context, r *runner, depth int, gen func(int) T, mut func(T) T) error {
	st := stack.New[T]()
	if err := checkEmpty(st); err != nil {
		return err
	}

	if err := pushRange(ctx, r, st, 0, depth, gen); err != nil {
		return err
	}
	if st.Size() != depth {
		return errs.Newf(errs.RetOrderViolation, "size %d after %d pushes", st.Size(), depth)
	}
	if depth > 0 {
		if err := checkPeek(st, gen(depth-1), mut); err != nil {
			return err
		}
	}

	half := depth / 2
	if err := popRange(ctx, r, st, half, depth, gen); err != nil {
		return err
	}
	if err := pushRange(ctx, r, st, half, depth, gen); err != nil {
		return err
	}
	if err := popRange(ctx, r, st, 0, depth, gen); err != nil {
		return err
	}
	if err := checkEmpty(st); err != nil {
		return err
	}

	if err := pushRange(ctx, r, st, 0, depth, gen); err != nil {
		return err
	}
	st.Reset()
	if !st.Empty() || st.Values() != nil {
		return errs.Newf(errs.RetTeardownIncomplete, "%d elements left after reset", st.Size())
	}
	if _, ok := st.Pop(); ok {
		return errs.New(errs.RetTeardownIncomplete, "pop succeeded after reset")
	}
	r.released.Add(int64(depth))
	return nil
}

// pushRange pushes gen(from) .. gen(to-1).
func pushRange[T comparable](ctx context.Context, r *runner, st *stack.Stack[T], from, to int,
	gen func(int) T) error {
	var pushed int64
	defer func() { r.pushed.Add(pushed) }()
	for i := from; i < to; i++ {
		if (i-from)%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return errs.Wrapf(err, errs.RetCanceled, "push %d", i)
			}
		}
		st.Push(gen(i))
		pushed++
	}
	return nil
}

// popRange pops to-from elements expecting gen(to-1) down to gen(from).
func popRange[T comparable](ctx context.Context, r *runner, st *stack.Stack[T], from, to int,
	gen func(int) T) error {
	var popped int64
	defer func() { r.popped.Add(popped) }()
	for i := to - 1; i >= from; i-- {
		if (to-1-i)%checkEvery == 0 {
			if err := ctx.Err(); err != nil {
				return errs.Wrapf(err, errs.RetCanceled, "pop %d", i)
			}
		}
		v, ok := st.Pop()
		if !ok {
			return errs.Newf(errs.RetOrderViolation, "stack empty, want %v", gen(i))
		}
		popped++
		if want := gen(i); v != want {
			return errs.Newf(errs.RetOrderViolation, "popped %v, want %v", v, want)
		}
	}
	return nil
}

func checkPeek[T comparable](st *stack.Stack[T], top T, mut func(T) T) error {
	if v, ok := st.Peek(); !ok || v != top {
		return errs.Newf(errs.RetPeekMismatch, "peek %v, want %v", v, top)
	}
	p := st.PeekMut()
	if p == nil || *p != top {
		return errs.Newf(errs.RetPeekMismatch, "peek mut does not point at %v", top)
	}
	changed := mut(top)
	*p = changed
	if v, _ := st.Peek(); v != changed {
		return errs.Newf(errs.RetPeekMismatch, "peek %v after writing %v", v, changed)
	}
	*p = top
	return nil
}

func checkEmpty[T comparable](st *stack.Stack[T]) error {
	if _, ok := st.Pop(); ok {
		return errs.New(errs.RetOrderViolation, "pop on empty stack succeeded")
	}
	if _, ok := st.Peek(); ok {
		return errs.New(errs.RetPeekMismatch, "peek on empty stack succeeded")
	}
	if st.PeekMut() != nil {
		return errs.New(errs.RetPeekMismatch, "peek mut on empty stack succeeded")
	}
	return nil
}
