package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/edirooss/urlparts/internal/cli"
	"github.com/edirooss/urlparts/pkg/fmtt"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	err := cli.NewRootCmd(os.Stdin, os.Stdout, os.Stderr).ExecuteContext(ctx)
	if err == nil {
		return
	}

	var absent *cli.AbsentError
	if errors.As(err, &absent) {
		os.Exit(2)
	}

	if os.Getenv("URLPARTS_DEBUG") != "" {
		fmtt.PrintErrChain(os.Stderr, err)
	} else {
		fmt.Fprintln(os.Stderr, "error:", err)
	}
	os.Exit(1)
}
