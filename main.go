package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
)

func main() {
	log.SetPrefix("mage-install: ")
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run executes the command line and returns the process exit code
func run(args []string, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// also accept the help spellings pflag would reject
	norm := make([]string, 0, len(args))
	for _, a := range args {
		if a == "-help" || a == "--h" {
			a = "--help"
		}
		norm = append(norm, a)
	}
	args = norm

	cmd := newRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return 0
	}

	var uerr *usageError
	if errors.As(err, &uerr) {
		fmt.Fprintf(stderr, "%s %s\n", color.RedString("error:"), err)
		fmt.Fprint(stdout, cmd.UsageString())
		return 2
	}
	fmt.Fprintf(stderr, "%s %s\n", color.RedString("failed:"), err)
	return 1
}
