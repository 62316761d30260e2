// Copyright 2025 Born ML Framework. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package trainlog mirrors training output to the console and a log file.
//
// Example:
//
//	l, err := trainlog.New("train.log", os.Stdout)
//	if err != nil {
//	    return err
//	}
//	defer l.Close()
//	log := l.Slog(nil)
//	log.Info("epoch done", "epoch", 3, "loss", loss)
package trainlog

import (
	"io"

	"github.com/born-ml/trainkit/internal/trainlog"
)

// Logger writes to a console and an append-only file.
type Logger = trainlog.Logger

// New opens path for appending and tees writes to console.
func New(path string, console io.Writer) (*Logger, error) {
	return trainlog.New(path, console)
}
