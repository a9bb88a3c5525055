// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("LIFO_A", "1")
	t.Setenv("LIFO_B", "two")

	for in, want := range map[string]string{
		"":                       "",
		"plain":                  "plain",
		"${LIFO_A}":              "1",
		"x${LIFO_A}y${LIFO_B}z":  "x1ytwoz",
		"$LIFO_A":                "$LIFO_A",
		"pa$$word":               "pa$$word",
		"${}":                    "",
		"${LIFO_UNSET_VARIABLE}": "",
		"${LIFO_A":               "${LIFO_A",
		"${a b}${LIFO_B}":        "${a b}two",
		"\"${LIFO_A\"}":          "\"${LIFO_A\"}",
	} {
		assert.Equal(t, want, string(expandEnv([]byte(in))), "input %q", in)
	}
}
