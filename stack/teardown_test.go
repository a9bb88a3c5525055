// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

package stack

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPopDetachesNode(t *testing.T) {
	st := New[int]()
	st.Push(1)
	st.Push(2)
	top := st.head

	v, ok := st.Pop()
	require.True(t, ok)
	require.Equal(t, 2, v)
	assert.Nil(t, top.next)
	assert.Equal(t, 1, st.head.value)
}

func TestResetUnlinksEveryNode(t *testing.T) {
	st := New[*int]()
	var nodes []*node[*int]
	for i := 0; i < 100; i++ {
		v := i
		st.Push(&v)
		nodes = append(nodes, st.head)
	}

	st.Reset()
	require.Nil(t, st.head)
	require.Zero(t, st.size)
	for _, n := range nodes {
		assert.Nil(t, n.next)
		assert.Nil(t, n.value)
	}
}
