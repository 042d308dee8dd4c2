package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"archie-go/internal/archie"
	"archie-go/internal/runner"
)

// operator is the part of app.ArchieApp the CLI and the menu drive.
type operator interface {
	Command(op archie.Operation, rawPath, rawFiles string) (archie.Command, error)
	Execute(ctx context.Context, op archie.Operation, rawPath, rawFiles string, beforeRun func(archie.Command)) (archie.Command, error)
	Seal(rawPath, passphrase string) (string, error)
}

// runOperation runs op and prints the command just before it starts. With
// dryRun the command is only checked for valid shell syntax and printed.
func runOperation(ctx context.Context, w io.Writer, o operator, op archie.Operation, rawPath, rawFiles string, dryRun bool) error {
	if dryRun {
		cmd, err := o.Command(op, rawPath, rawFiles)
		if err != nil {
			return err
		}
		if cmd.IsEmpty() {
			fmt.Fprintln(w, "Nothing to do.")
			return nil
		}
		if err := runner.Validate(cmd); err != nil {
			return err
		}
		fmt.Fprintln(w, cmd)
		return nil
	}

	_, err := o.Execute(ctx, op, rawPath, rawFiles, func(cmd archie.Command) {
		if cmd.IsEmpty() {
			fmt.Fprintln(w, "No archives found.")
			return
		}
		fmt.Fprintf(w, "Running command: %s\n", cmd)
	})
	return err
}

// translateLegacyArgs rewrites a leading short-flag operation such as "-ze"
// into its subcommand name so cobra can dispatch it.
func translateLegacyArgs(args []string) []string {
	if len(args) == 0 || !strings.HasPrefix(args[0], "-") {
		return args
	}
	op, err := archie.ParseOperation(args[0])
	if err != nil {
		return args
	}
	return append([]string{op.String()}, args[1:]...)
}
