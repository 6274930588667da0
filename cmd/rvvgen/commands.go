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

package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/xyproto/env/v2"

	"github.com/ajroetker/rvvgen/rvv/merge"
)

const (
	keySrc   = "src"
	keyBuild = "build"
	keySpike = "spike"
)

func newGenerateCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Write the test sources and their Makefrag",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			arch, err := a.arch()
			if err != nil {
				return err
			}
			gen := &Generator{
				Arch:      arch,
				OutputDir: a.v.GetString(keyOut),
				Suite:     a.v.GetString(keySuite),
				Only:      a.v.GetString(keyOnly),
				Jobs:      a.v.GetInt(keyJobs),
				Logger:    a.logger,
			}
			stats, err := gen.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully generated %d tests (%d changed) in %s\n",
				stats.Cases, stats.Changed, gen.OutputDir)
			return nil
		},
	}
	f := cmd.Flags()
	f.String(keyOut, "isa/rv64uv", "output directory")
	f.IntP(keyJobs, "j", 0, "parallel workers (0 uses GOMAXPROCS)")
	f.String(keyOnly, "", "only generate files matching this glob")
	return cmd
}

func newListCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the names of the tests generate would write",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			arch, err := a.arch()
			if err != nil {
				return err
			}
			gen := &Generator{Arch: arch, Only: a.v.GetString(keyOnly)}
			cases, err := gen.Cases()
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()
			for _, c := range cases {
				fmt.Fprintln(w, c.Name())
			}
			return nil
		},
	}
	cmd.Flags().String(keyOnly, "", "only list files matching this glob")
	return cmd
}

func newMergeCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge",
		Short: "Splice simulator results into built tests",
		Long: `Runs every built vector test of the suite on the reference simulator and
replaces each marker of the test's source with the simulator's checks. The
merged sources and their Makefrag are written to --out.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			arch, err := a.arch()
			if err != nil {
				return err
			}
			spike, err := merge.NewSpike(a.v.GetString(keySpike), arch)
			if err != nil {
				return err
			}
			m := &merge.Merger{
				SrcDir:   a.v.GetString(keySrc),
				BuildDir: a.v.GetString(keyBuild),
				OutDir:   a.v.GetString(keyOut),
				Suite:    a.v.GetString(keySuite),
				Runner:   spike,
				Jobs:     a.v.GetInt(keyJobs),
				Logger:   a.logger,
			}
			stats, err := m.Run(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Successfully merged %d tests (%d changed) into %s\n",
				stats.Binaries, stats.Changed, m.OutDir)
			return nil
		},
	}
	f := cmd.Flags()
	f.String(keySrc, "isa/rv64uv", "generated test sources")
	f.String(keyBuild, "isa", "directory holding the built tests")
	f.String(keyOut, "isa/rv64uxx", "output directory")
	f.String(keySpike, env.Str("SPIKE", "spike"), "reference simulator ($SPIKE)")
	f.IntP(keyJobs, "j", 1, "parallel simulator runs")
	return cmd
}
