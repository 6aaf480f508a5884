// Copyright (c) 2024 The Beacon Authors
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies of
// the Software, and to permit persons to whom the Software is furnished to do so,
// subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY, FITNESS
// FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE AUTHORS OR
// COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER LIABILITY, WHETHER
// IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM, OUT OF OR IN
// CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE SOFTWARE.

// Package config loads the beacon daemon's settings from an env-file
// with hashicorp/go-envparse, with CLI flags layered on top to override
// individual values.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/hashicorp/go-envparse"
)

// Config holds the runtime settings for the emitter and listener
// daemons, including the sleep interval between exhausted-mask emitter
// cycles.
type Config struct {
	// TimeSleep is how long the emitter sleeps once its mask is
	// exhausted, before rescanning the keystore (TIMESLEEP is in seconds).
	TimeSleep time.Duration
	// BindAddr is the UDP listen address for the listener loop.
	BindAddr string
	// LogLevel controls zerolog's global level ("debug", "info", ...).
	LogLevel string
	// PendingTTL bounds how long an unpaired slot 0 is retained before
	// the listener's sweep evicts it (see beacon.Tracker.SweepExpired).
	PendingTTL time.Duration
	// MetricsAddr, if non-empty, is the address the CLI serves
	// /metrics on via VictoriaMetrics' handler.
	MetricsAddr string
}

// Default returns the configuration used when no env-file or flags
// override it.
func Default() Config {
	return Config{
		TimeSleep:   10 * time.Second,
		BindAddr:    "0.0.0.0",
		LogLevel:    "info",
		PendingTTL:  3 * time.Second,
		MetricsAddr: "",
	}
}

// Load reads key=value pairs from path (in the format go-envparse
// understands) and overlays them onto Default().
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()

	vars, err := envparse.Parse(f)
	if err != nil {
		return cfg, err
	}

	if v, ok := vars["TIMESLEEP"]; ok {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.TimeSleep = time.Duration(secs) * time.Second
		}
	}
	if v, ok := vars["BIND_ADDR"]; ok {
		cfg.BindAddr = v
	}
	if v, ok := vars["LOG_LEVEL"]; ok {
		cfg.LogLevel = v
	}
	if v, ok := vars["PENDING_TTL_SECONDS"]; ok {
		if secs, err := strconv.Atoi(v); err == nil {
			cfg.PendingTTL = time.Duration(secs) * time.Second
		}
	}
	if v, ok := vars["METRICS_ADDR"]; ok {
		cfg.MetricsAddr = v
	}

	return cfg, nil
}
