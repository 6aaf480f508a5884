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

package main

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"

	"github.com/arcan-fe/beacon"
	"github.com/arcan-fe/beacon/emitter"
	"github.com/arcan-fe/beacon/internal/config"
	"github.com/arcan-fe/beacon/internal/keystore"
	"github.com/arcan-fe/beacon/listener"
)

// keyfile is the on-disk format genkeys writes and emit/listen read —
// a flat list of hex-encoded public keys with display tags.
type keyfile struct {
	Keys []keyfileEntry `json:"keys"`
}

type keyfileEntry struct {
	PubKey string `json:"pubkey"`
	Tag    string `json:"tag"`
}

func main() {
	app := &cli.App{
		Name:                 "beacond",
		Usage:                "local-network peer discovery beacon",
		EnableBashCompletion: true,
		Commands: []*cli.Command{
			genkeysCommand(),
			emitCommand(),
			listenCommand(),
		},
		Action: func(c *cli.Context) error {
			cli.ShowAppHelp(c)
			return nil
		},
	}

	if err := app.Run(os.Args); err != nil {
		zerolog.New(os.Stderr).With().Timestamp().Logger().Fatal().Err(err).Msg("beacond")
	}
}

func genkeysCommand() *cli.Command {
	return &cli.Command{
		Name:  "genkeys",
		Usage: "generate a local keyset file",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "count", Value: 5, Usage: "number of keys to generate"},
			&cli.StringFlag{Name: "out", Value: "./keys.json", Usage: "output keyset file"},
		},
		Action: func(c *cli.Context) error {
			count := c.Int("count")
			kf := keyfile{}
			for i := 0; i < count; i++ {
				var pub [beacon.MemberSize]byte
				if _, err := rand.Read(pub[:]); err != nil {
					return err
				}
				kf.Keys = append(kf.Keys, keyfileEntry{
					PubKey: hex.EncodeToString(pub[:]),
					Tag:    fmt.Sprintf("peer-%d", i),
				})
			}

			file, err := os.Create(c.String("out"))
			if err != nil {
				return err
			}
			defer file.Close()

			enc := json.NewEncoder(file)
			enc.SetIndent("", "\t")
			if err := enc.Encode(kf); err != nil {
				return err
			}

			fmt.Println("generated", count, "keys ->", c.String("out"))
			return nil
		},
	}
}

func loadKeystore(path string) (*keystore.Store, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	var kf keyfile
	if err := json.NewDecoder(file).Decode(&kf); err != nil {
		return nil, err
	}

	store := keystore.New(nil)
	for _, e := range kf.Keys {
		raw, err := hex.DecodeString(e.PubKey)
		if err != nil {
			return nil, err
		}
		if len(raw) != beacon.MemberSize {
			return nil, fmt.Errorf("keyfile entry %q: want %d raw bytes, got %d", e.Tag, beacon.MemberSize, len(raw))
		}
		var pub [beacon.MemberSize]byte
		copy(pub[:], raw)
		store.Add(pub, e.Tag)
	}
	return store, nil
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "keys", Value: "./keys.json", Usage: "keyset file to advertise or recognize"},
		&cli.StringFlag{Name: "env", Value: "", Usage: "optional env-file of config overrides"},
	}
}

func setupLogger(level string) zerolog.Logger {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if lvl, err := zerolog.ParseLevel(level); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	return zerolog.New(zerolog.NewConsoleWriter()).With().Timestamp().Logger()
}

func serveMetrics(addr string) {
	if addr == "" {
		return
	}
	mux := http.NewServeMux()
	mux.HandleFunc("/metrics", func(w http.ResponseWriter, r *http.Request) {
		metrics.WritePrometheus(w, true)
	})
	go http.ListenAndServe(addr, mux)
}

func cancelOnSignal() context.Context {
	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigCh
		cancel()
	}()
	return ctx
}

func emitCommand() *cli.Command {
	flags := append(commonFlags(), &cli.IntFlag{Name: "sleep", Value: 0, Usage: "override timesleep in seconds (0 = use config/default)"})
	return &cli.Command{
		Name:  "emit",
		Usage: "advertise this host's keyset as a beacon",
		Flags: flags,
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("env"))
			if err != nil && c.String("env") != "" {
				return err
			}
			if secs := c.Int("sleep"); secs > 0 {
				cfg.TimeSleep = time.Duration(secs) * time.Second
			}

			ks, err := loadKeystore(c.String("keys"))
			if err != nil {
				return err
			}

			log := setupLogger(cfg.LogLevel)
			serveMetrics(cfg.MetricsAddr)

			loop := emitter.New(ks, cfg.TimeSleep, log)
			log.Info().Int("keys", ks.Len()).Msg("emitter starting")
			return loop.Run(cancelOnSignal())
		},
	}
}

func listenCommand() *cli.Command {
	flags := append(commonFlags(), &cli.StringFlag{Name: "bind", Value: "0.0.0.0", Usage: "bind address"})
	return &cli.Command{
		Name:  "listen",
		Usage: "listen for beacons and report recognized peers",
		Flags: flags,
		Action: func(c *cli.Context) error {
			cfg, err := config.Load(c.String("env"))
			if err != nil && c.String("env") != "" {
				return err
			}
			if c.IsSet("bind") {
				cfg.BindAddr = c.String("bind")
			}

			ks, err := loadKeystore(c.String("keys"))
			if err != nil {
				return err
			}

			log := setupLogger(cfg.LogLevel)
			serveMetrics(cfg.MetricsAddr)

			onBeacon := func(ctx context.Context, matched [beacon.MemberSize]byte, challenge [8]byte, tag string, source string) bool {
				log.Info().
					Str("source", source).
					Str("pubkey", hex.EncodeToString(matched[:])).
					Str("tag", tag).
					Msg("peer discovered")
				return true
			}

			loop := listener.New(ks, cfg.BindAddr, cfg.PendingTTL, onBeacon, log)
			log.Info().Int("keys", ks.Len()).Str("bind", cfg.BindAddr).Msg("listener starting")
			return loop.Run(cancelOnSignal())
		},
	}
}
