// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

package stack_test

import (
	"fmt"

	"trpc.group/trpc-go/lifo/stack"
)

func ExampleStack() {
	st := stack.New[string]()
	st.Push("a")
	st.Push("b")
	if p := st.PeekMut(); p != nil {
		*p = "B"
	}
	for !st.Empty() {
		v, _ := st.Pop()
		fmt.Println(v)
	}
	_, ok := st.Pop()
	fmt.Println(ok)
	// Output:
	// B
	// a
	// false
}
