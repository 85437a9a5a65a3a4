// Copyright 2025 Florian Zenker (flo@znkr.io)
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


// diffpatch compares, patches, and merges text files.
//
// Usage:
//
//	diffpatch diff [flags] ORIGINAL MODIFIED
//	diffpatch apply [flags] FILE PATCH
//	diffpatch merge [flags] OURS ORIGINAL THEIRS
//
// Every flag can also be set with an environment variable prefixed with DIFFPATCH_, e.g.,
// DIFFPATCH_CONTEXT=5. The exit status is 0 on success, 1 if the files differ or a merge has
// conflicts, and 2 on errors.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// exitCode is returned by commands that finished without an error but want to report a result
// through the exit status.
type exitCode int

func (c exitCode) Error() string { return fmt.Sprintf("exit status %d", int(c)) }

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	app := &app{
		v:      viper.New(),
		stdin:  stdin,
		stdout: stdout,
		stderr: stderr,
		log:    zap.NewNop(),
	}
	root := app.rootCmd()
	root.SetArgs(args)
	root.SetIn(stdin)
	root.SetOut(stdout)
	root.SetErr(stderr)

	err := root.Execute()
	_ = app.log.Sync()
	var code exitCode
	switch {
	case err == nil:
		return 0
	case errors.As(err, &code):
		return int(code)
	default:
		fmt.Fprintf(stderr, "diffpatch: %v\n", err)
		return 2
	}
}

// app holds the state shared by all commands.
type app struct {
	v      *viper.Viper
	log    *zap.Logger
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "diffpatch",
		Short:         "Compare, patch, and merge text files",
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.bindFlags(cmd)
			log, err := buildLogger(a.stderr, a.v.GetString("log-level"))
			if err != nil {
				return err
			}
			a.log = log.Named(cmd.Name())
			return nil
		},
	}
	root.PersistentFlags().String("log-level", "warn", "log level (debug, info, warn, error)")

	root.AddCommand(a.diffCmd(), a.applyCmd(), a.mergeCmd())
	return root
}

// bindFlags makes the flags of cmd available through viper, with DIFFPATCH_ environment variables
// as a fallback for flags that aren't set on the command line.
func (a *app) bindFlags(cmd *cobra.Command) {
	a.v.SetEnvPrefix("diffpatch")
	a.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	a.v.AutomaticEnv()
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		_ = a.v.BindPFlag(f.Name, f)
	})
}

// readFile reads name, "-" reads stdin.
func (a *app) readFile(name string) ([]byte, error) {
	if name == "-" {
		return io.ReadAll(a.stdin)
	}
	return os.ReadFile(name)
}

// writeOutput writes data to the file in the "output" flag or to stdout if it's empty.
func (a *app) writeOutput(data []byte) error {
	out := a.v.GetString("output")
	if out == "" || out == "-" {
		_, err := a.stdout.Write(data)
		return err
	}
	return os.WriteFile(out, data, 0o644)
}

// buildLogger creates a logger writing JSON to w.
func buildLogger(w io.Writer, logLevel string) (*zap.Logger, error) {
	level, err := parseLogLevel(logLevel)
	if err != nil {
		return nil, err
	}

	encoderConfig := zap.NewProductionEncoderConfig()
	encoderConfig.TimeKey = "ts"
	encoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(w),
		level,
	)
	return zap.New(core), nil
}

// parseLogLevel converts a string log level to a zapcore.Level.
func parseLogLevel(logLevel string) (zapcore.Level, error) {
	switch logLevel {
	case "debug":
		return zap.DebugLevel, nil
	case "info":
		return zap.InfoLevel, nil
	case "warn", "":
		return zap.WarnLevel, nil
	case "error":
		return zap.ErrorLevel, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", logLevel)
	}
}
