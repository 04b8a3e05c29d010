// recoverydata prints the interpreter recovery listing with one more entry merged in.
//
//	recoverydata flink-2HTYRQ479 10.140.151.46:31549 > /opt/zeppelin/recovery/flink.recovery.new
//
// Existing entries are read from --dir/--file; duplicate lines are dropped.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/homemade/notebook-inject/inject"
	"github.com/spf13/pflag"
)

const usage = "Usage: recoverydata [--dir DIR] [--file NAME] {interpreterGroupId} {HostAndPort}"

var errUsage = errors.New(usage)

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(args []string, stdout io.Writer) error {
	var dir, file string
	flagSet := pflag.NewFlagSet("recoverydata", pflag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.StringVar(&dir, "dir", inject.RecoveryFileDir, "directory holding the recovery file")
	flagSet.StringVar(&file, "file", inject.RecoveryFileName, "recovery file name")
	if err := flagSet.Parse(args); err != nil {
		return fmt.Errorf("%w\n%v", errUsage, err)
	}
	if flagSet.NArg() != 2 {
		return errUsage
	}

	existing, err := inject.ReadRecoveryData(dir, file)
	if err != nil {
		return err
	}
	merged := inject.MergeRecoveryData(existing, inject.RecoveryEntry(flagSet.Arg(0), flagSet.Arg(1)))
	_, err = io.WriteString(stdout, strings.Join(merged, "\n"))
	return err
}
