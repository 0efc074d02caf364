package main

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

const (
	exitUsage   = 1
	exitFailure = 2
)

type exitError struct {
	code int
	err  error
}

func (e *exitError) Error() string { return e.err.Error() }
func (e *exitError) Unwrap() error { return e.err }

func usageError(err error) error {
	return &exitError{code: exitUsage, err: err}
}

func failure(err error) error {
	return &exitError{code: exitFailure, err: err}
}

func exitCode(err error) int {
	var e *exitError
	if errors.As(err, &e) {
		return e.code
	}
	// errors raised by cobra itself are about the command line
	return exitUsage
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "ear",
		Short: "Verify EAT Attestation Results",
		Long: `ear verifies EAT Attestation Results (EAR) in JWT format and reports
the appraisal outcomes they carry: the trust tier of every appraisal record
and, when present, the public key attested by the verifier.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return usageError(err)
	})
	root.AddCommand(newVerifyCmd())
	return root
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		slog.Error(err.Error())
		os.Exit(exitCode(err))
	}
}
