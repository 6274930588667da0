// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// rvvgen generates RISC-V "V" extension tests for the riscv-tests suite and
// merges reference-simulator results into them.
//
// Usage:
//
//	rvvgen generate [--out isa/rv64uv] [--vlen 4096] [--elen 64] [-j N] [--only GLOB]
//	rvvgen list [--only GLOB]
//	rvvgen merge [--src isa/rv64uv] [--build isa] [--out isa/rv64uxx] [--spike PATH]
//
// Every flag can also be set in a YAML file passed with --config or through
// an RVVGEN_<FLAG> environment variable (dashes become underscores).
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
