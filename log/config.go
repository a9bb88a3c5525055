// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

package log

// output name, default support console and file.
const (
	OutputConsole = "console"
	OutputFile    = "file"
)

// console streams.
const (
	StreamStdout = "stdout"
	StreamStderr = "stderr"
)

// Config is the log config. Each log may have multiple outputs.
type Config []OutputConfig

// OutputConfig is the output config, includes console, file.
type OutputConfig struct {
	// Writer is the output of log, such as console or file.
	Writer string `yaml:"writer" mapstructure:"writer"`
	// Level controls the log level, like debug, info or error.
	Level string `yaml:"level" mapstructure:"level"`
	// Formatter is the format of log, such as console or json.
	Formatter string `yaml:"formatter" mapstructure:"formatter"`
	// EnableColor determines if the output is colored. The default value is false.
	EnableColor bool `yaml:"enable_color" mapstructure:"enable_color"`
	// TimeFmt is the time format of log output, default as "2006-01-02 15:04:05.000".
	// "seconds", "milliseconds" and "nanoseconds" select epoch encoders.
	TimeFmt string `yaml:"time_fmt" mapstructure:"time_fmt"`
	// Stream is where the console writer goes, stdout or stderr. The default is stdout.
	Stream string `yaml:"stream" mapstructure:"stream"`
	// Filename is the strftime pattern of the log file, only used by the file writer,
	// e.g. ./log/lifo.%Y%m%d.log.
	Filename string `yaml:"filename" mapstructure:"filename"`
}

var defaultConfig = Config{
	{
		Writer:    OutputConsole,
		Level:     "debug",
		Formatter: "console",
	},
}

// DefaultConfig returns a copy of the config used when none is given.
func DefaultConfig() Config {
	return append(Config(nil), defaultConfig...)
}
