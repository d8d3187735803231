// SPDX-License-Identifier: MPL-2.0
/*
 * Copyright (C) 2024 The Noisy Sockets Authors.
 *
 * This Source Code Form is subject to the terms of the Mozilla Public
 * License, v. 2.0. If a copy of the MPL was not distributed with this
 * file, You can obtain one at http://mozilla.org/MPL/2.0/.
 */

package main

import (
	"bufio"
	"fmt"
	"log/slog"
	"os"

	"github.com/cheggaaa/pb/v3"
	"github.com/hashicorp/go-multierror"
	"github.com/noisysockets/resolvernet/config"
	"github.com/noisysockets/resolvernet/endpoint"
	"github.com/noisysockets/resolvernet/internal/util"
	"github.com/noisysockets/resolvernet/reverse"
	"github.com/noisysockets/resolvernet/sockets"
	"github.com/urfave/cli/v2"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	sharedFlags := []cli.Flag{
		&cli.GenericFlag{
			Name:    "log-level",
			Aliases: []string{"l"},
			Usage:   "Set the log level",
			Value:   fromLogLevel(slog.LevelInfo),
		},
	}

	inputFlags := []cli.Flag{
		&cli.StringFlag{
			Name:    "input",
			Aliases: []string{"i"},
			Usage:   "Read addresses from a file, one per line",
		},
		&cli.BoolFlag{
			Name:  "progress",
			Usage: "Show a progress bar while processing addresses",
		},
	}

	before := func(c *cli.Context) error {
		logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: (*slog.Level)(c.Generic("log-level").(*logLevelFlag)),
		}))

		return nil
	}

	app := &cli.App{
		Name:  "resolvernet",
		Usage: "Inspect resolver addresses and prepare query sockets",
		Commands: []*cli.Command{
			{
				Name:      "parse",
				Usage:     "Parse resolver addresses and print their canonical form",
				ArgsUsage: "[address...]",
				Flags: append(append([]cli.Flag{
					&cli.UintFlag{
						Name:    "default-port",
						Aliases: []string{"p"},
						Usage:   "The port to use for addresses without one",
						Value:   config.DefaultPort,
					},
				}, inputFlags...), sharedFlags...),
				Before: before,
				Action: func(c *cli.Context) error {
					defaultPort := c.Uint("default-port")
					if defaultPort > 65535 {
						return fmt.Errorf("invalid default port: %d", defaultPort)
					}

					return forEachAddress(c, func(text string) error {
						e, err := endpoint.Parse(text, uint16(defaultPort))
						if err != nil {
							logger.Warn("Skipping unusable address", "error", err)
							return err
						}

						fmt.Printf("%s\t%s\t%d\n", e, e.Family(), e.WireLength())
						return nil
					})
				},
			},
			{
				Name:      "reverse",
				Usage:     "Print the reverse lookup name of addresses",
				ArgsUsage: "[address...]",
				Flags:     append(inputFlags, sharedFlags...),
				Before:    before,
				Action: func(c *cli.Context) error {
					return forEachAddress(c, func(text string) error {
						name, err := reverse.Name(text)
						if err != nil {
							logger.Warn("Skipping unusable address", "error", err)
							return err
						}

						fmt.Println(name)
						return nil
					})
				},
			},
			{
				Name:  "bootstrap",
				Usage: "Open and prepare the query sockets for the configured resolvers",
				Flags: append([]cli.Flag{
					&cli.StringFlag{
						Name:    "config",
						Aliases: []string{"c"},
						Usage:   "The configuration file to use",
						Value:   "resolvernet.yaml",
					},
				}, sharedFlags...),
				Before: before,
				Action: func(c *cli.Context) error {
					f, err := os.Open(c.String("config"))
					if err != nil {
						return fmt.Errorf("failed to open config: %w", err)
					}
					defer f.Close()

					conf, err := config.FromYAML(f)
					if err != nil {
						return fmt.Errorf("failed to read config: %w", err)
					}

					endpoints, err := conf.Endpoints()
					if err != nil {
						logger.Warn("Ignoring unusable resolvers", "error", err)
					}
					if len(endpoints) == 0 {
						return fmt.Errorf("no usable resolvers configured")
					}

					logger.Debug("Using resolvers", "resolvers", util.Strings(endpoints))

					g, closeSockets, err := openSockets(util.Families(endpoints), conf.SocketsPerFamily, conf.Control)
					if err != nil {
						return err
					}
					defer func() {
						if err := closeSockets(); err != nil {
							logger.Error("Failed to close sockets", "error", err)
						}
					}()

					if conf.SocketBufferSize > 0 {
						if err := g.ByRole(sockets.RoleQuery).SetBufferSize(conf.SocketBufferSize); err != nil {
							return fmt.Errorf("failed to size query sockets: %w", err)
						}
					}

					ep, err := sockets.Bootstrap(logger, g, conf.NetMode)
					if err != nil {
						return fmt.Errorf("failed to prepare sockets: %w", err)
					}
					if ep != nil {
						defer ep.Close()
					}

					for _, d := range g.Descriptors() {
						fmt.Printf("%d\t%s\n", d.FD, d.Role)
					}

					fmt.Printf("Prepared %d sockets for %d resolvers using %s\n",
						g.Len(), len(endpoints), conf.NetMode)

					return nil
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		logger.Error("Failed to run app", "error", err)
		os.Exit(1)
	}
}

// forEachAddress calls fn for every address given on the command line or in
// the input file. Failures do not stop processing, they are collected and
// returned at the end.
func forEachAddress(c *cli.Context, fn func(text string) error) error {
	addresses := c.Args().Slice()

	if path := c.String("input"); path != "" {
		f, err := os.Open(path)
		if err != nil {
			return fmt.Errorf("failed to open input: %w", err)
		}
		defer f.Close()

		scanner := bufio.NewScanner(f)
		for scanner.Scan() {
			if line := scanner.Text(); line != "" {
				addresses = append(addresses, line)
			}
		}
		if err := scanner.Err(); err != nil {
			return fmt.Errorf("failed to read input: %w", err)
		}
	}

	var bar *pb.ProgressBar
	if c.Bool("progress") {
		bar = pb.StartNew(len(addresses))
		defer bar.Finish()
	}

	var result *multierror.Error
	for _, text := range addresses {
		if err := fn(text); err != nil {
			result = multierror.Append(result, err)
		}
		if bar != nil {
			bar.Increment()
		}
	}

	if result != nil {
		return fmt.Errorf("%d of %d addresses could not be used", len(result.Errors), len(addresses))
	}

	return nil
}

type logLevelFlag slog.Level

func fromLogLevel(l slog.Level) *logLevelFlag {
	f := logLevelFlag(l)
	return &f
}

func (f *logLevelFlag) Set(value string) error {
	return (*slog.Level)(f).UnmarshalText([]byte(value))
}

func (f *logLevelFlag) String() string {
	return (*slog.Level)(f).String()
}
