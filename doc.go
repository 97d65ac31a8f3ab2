// Copyright (c) 2025 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

// parkmenugo is the main package for the parkmenu command line tool and web
// UI. It wires the CLI, delegates to internal packages, and serves as the
// entry point.
package main
