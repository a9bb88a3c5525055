// Tencent is pleased to support the open source community by making tRPC available.
// Copyright (C) 2023 THL A29 Limited, a Tencent company. All rights reserved.
// If you have downloaded a copy of the tRPC source code from Tencent,
// please note that tRPC source code is licensed under the Apache 2.0 License that can be found in the LICENSE file.

// Package main is the lifostress command, which hammers many independent stacks
// and verifies their last-in-first-out behavior.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	jsoniter "github.com/json-iterator/go"
	"go.uber.org/automaxprocs/maxprocs"
	"golang.org/x/sync/errgroup"

	"trpc.group/trpc-go/lifo/config"
	"trpc.group/trpc-go/lifo/log"
	"trpc.group/trpc-go/lifo/stress"
)

type options struct {
	confPath string
	watch    bool
	asJSON   bool
}

func main() {
	var opts options
	flag.StringVar(&opts.confPath, "conf", config.DefaultPath, "config file path, .toml or .json select other formats")
	flag.BoolVar(&opts.watch, "watch", false, "run again every time the config file is written")
	flag.BoolVar(&opts.asJSON, "json", false, "print reports as json")
	flag.Parse()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	if err := run(ctx, opts, os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, out io.Writer) error {
	cfg, err := config.Load(opts.confPath)
	if err != nil {
		return err
	}
	closeLog, err := setupLog(cfg.Log, opts.asJSON)
	if err != nil {
		return err
	}
	defer closeLog()

	// set default GOMAXPROCS for docker
	if _, err := maxprocs.Set(maxprocs.Logger(log.Debugf)); err != nil {
		log.Warnf("set GOMAXPROCS: %v", err)
	}

	if !opts.watch {
		return runOnce(ctx, cfg.Stress, out, opts.asJSON)
	}
	return runWatch(ctx, opts, cfg, out)
}

func runOnce(ctx context.Context, cfg config.StressConfig, out io.Writer, asJSON bool) error {
	log.Infof("stress start: kind %s, %d rounds of depth %d", cfg.Kind, cfg.Rounds, cfg.Depth)
	rep, err := stress.Run(ctx, cfg)
	if perr := printReport(out, rep, asJSON); perr != nil {
		log.Errorf("print report: %v", perr)
	}
	return err
}

// runWatch runs once, then again with the new stress section every time the config
// file changes. Log outputs are kept from the first load.
func runWatch(ctx context.Context, opts options, cfg *config.Config, out io.Writer) error {
	reloads := make(chan *config.Config, 1)
	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return config.Watch(ctx, opts.confPath, func(c *config.Config, err error) {
			if err != nil {
				log.Errorf("reload config %s: %v", opts.confPath, err)
				return
			}
			// keep only the latest config.
			select {
			case <-reloads:
			default:
			}
			reloads <- c
		})
	})
	g.Go(func() error {
		for {
			if err := runOnce(ctx, cfg.Stress, out, opts.asJSON); err != nil {
				log.Errorf("stress run failed: %v", err)
			}
			select {
			case <-ctx.Done():
				return nil
			case cfg = <-reloads:
				log.Infof("config %s reloaded", opts.confPath)
			}
		}
	})
	return g.Wait()
}

// setupLog installs the configured logger. With asJSON stdout carries only the
// report, so console outputs are moved to stderr.
func setupLog(c log.Config, asJSON bool) (func(), error) {
	if len(c) == 0 {
		if !asJSON {
			return func() {}, nil
		}
		c = log.DefaultConfig()
	}
	if asJSON {
		c = append(log.Config(nil), c...)
		for i := range c {
			if c[i].Writer == "" || c[i].Writer == log.OutputConsole {
				c[i].Stream = log.StreamStderr
			}
		}
	}
	logger, err := log.NewZapLog(c)
	if err != nil {
		return nil, err
	}
	old := log.GetDefaultLogger()
	log.SetLogger(logger)
	return func() {
		log.SetLogger(old)
		if closer, ok := logger.(io.Closer); ok {
			if err := closer.Close(); err != nil {
				fmt.Fprintln(os.Stderr, "close log:", err)
			}
		}
	}, nil
}

func printReport(out io.Writer, rep *stress.Report, asJSON bool) error {
	if asJSON {
		enc := jsoniter.ConfigCompatibleWithStandardLibrary.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rep)
	}
	_, err := fmt.Fprintf(out,
		"kind=%s workers=%d rounds=%d depth=%d pushed=%d popped=%d released=%d passed=%d failed=%d elapsed=%s\n",
		rep.Kind, rep.Workers, rep.Rounds, rep.Depth, rep.Pushed, rep.Popped, rep.Released,
		rep.Passed, rep.Failed, rep.Elapsed)
	return err
}
