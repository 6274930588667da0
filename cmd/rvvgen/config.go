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
	"io"
	"log/slog"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ajroetker/rvvgen/rvv"
	"github.com/ajroetker/rvvgen/rvv/makefrag"
)

// EnvPrefix prefixes the environment variables that override flags.
const EnvPrefix = "RVVGEN"

// Config keys shared by several commands.
const (
	keyConfig  = "config"
	keyVerbose = "verbose"
	keyVLEN    = "vlen"
	keyELEN    = "elen"
	keySuite   = "suite"
	keyJobs    = "jobs"
	keyOnly    = "only"
	keyOut     = "out"
)

// app carries the settings resolved for the running command.
type app struct {
	v      *viper.Viper
	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	a := &app{v: viper.New()}
	root := &cobra.Command{
		Use:           "rvvgen",
		Short:         "Generate RISC-V vector extension tests",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.load(cmd.Flags()); err != nil {
				return err
			}
			a.logger = newLogger(cmd.ErrOrStderr(), a.v.GetBool(keyVerbose))
			return nil
		},
	}
	pf := root.PersistentFlags()
	pf.String(keyConfig, "", "YAML config file")
	pf.BoolP(keyVerbose, "v", false, "log every file")
	pf.Int(keyVLEN, rvv.DefaultArch.VLEN, "vector register length in bits")
	pf.Int(keyELEN, rvv.DefaultArch.ELEN, "maximum element width in bits")
	pf.String(keySuite, makefrag.DefaultSuite, "test suite prefix")

	root.AddCommand(newGenerateCmd(a), newListCmd(a), newMergeCmd(a))
	return root
}

// load binds the command's flags, the environment and the optional config
// file, in increasing order of precedence: file, environment, flags.
func (a *app) load(flags *pflag.FlagSet) error {
	if err := a.v.BindPFlags(flags); err != nil {
		return fmt.Errorf("bind flags: %w", err)
	}
	a.v.SetEnvPrefix(EnvPrefix)
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	a.v.AutomaticEnv()

	if file := a.v.GetString(keyConfig); file != "" {
		a.v.SetConfigFile(file)
		if err := a.v.ReadInConfig(); err != nil {
			return fmt.Errorf("read config %s: %w", file, err)
		}
	}
	return nil
}

// arch returns the configured machine.
func (a *app) arch() (rvv.Arch, error) {
	arch := rvv.Arch{VLEN: a.v.GetInt(keyVLEN), ELEN: a.v.GetInt(keyELEN)}
	if err := arch.Validate(); err != nil {
		return rvv.Arch{}, err
	}
	return arch, nil
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
