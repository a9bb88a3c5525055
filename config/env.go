// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

package config

import (
	"bytes"
	"os"
)

// expandEnv replaces ${var} in s with the value of the environment variable var.
// Bare $var is left alone, since values such as passwords may contain $.
// An empty ${} is removed, an unterminated ${ is kept as is.
func expandEnv(s []byte) []byte {
	if !bytes.Contains(s, []byte("${")) {
		return s
	}
	buf := make([]byte, 0, len(s))
	for {
		start := bytes.Index(s, []byte("${"))
		if start < 0 {
			break
		}
		end := bytes.IndexByte(s[start+2:], '}')
		if end < 0 || bytes.ContainsAny(s[start+2:start+2+end], " \n\"") {
			// not a reference, keep "${" and scan on.
			buf = append(buf, s[:start+2]...)
			s = s[start+2:]
			continue
		}
		name := s[start+2 : start+2+end]
		buf = append(buf, s[:start]...)
		buf = append(buf, os.Getenv(string(name))...)
		s = s[start+2+end+1:]
	}
	return append(buf, s...)
}
