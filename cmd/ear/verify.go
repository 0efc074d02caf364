package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"slices"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/blocky/ear"
)

type verifyConfig struct {
	keyFile string
	earFile string
	alg     string
	records []string
	output  string
	at      string
	atTime  time.Time
	legacy  bool
	noColor bool
	verbose bool
}

func (c *verifyConfig) Validate() map[string]string {
	problems := make(map[string]string)

	if c.keyFile == "" {
		problems["--key"] = "argument is required"
	}
	if c.alg == "" {
		problems["--alg"] = "argument is required"
	}
	if !slices.Contains(outputFormats, c.output) {
		problems["--output"] = fmt.Sprintf(
			"unknown format %q, expected one of %s",
			c.output,
			strings.Join(outputFormats, ", "),
		)
	}
	if c.at != "" {
		at, err := time.Parse(time.RFC3339, c.at)
		if err != nil {
			problems["--at"] = fmt.Sprintf("%q is not an RFC 3339 time", c.at)
		}
		c.atTime = at
	}

	return problems
}

func sprintProblems(problems map[string]string) string {
	keys := make([]string, 0, len(problems))
	for key := range problems {
		keys = append(keys, key)
	}
	slices.Sort(keys)

	lines := make([]string, 0, len(keys))
	for _, key := range keys {
		lines = append(lines, key+": "+problems[key])
	}
	return strings.Join(lines, "; ")
}

func newVerifyCmd() *cobra.Command {
	cfg := &verifyConfig{}

	cmd := &cobra.Command{
		Use:   "verify [flags] EAR_FILE",
		Short: "Verify an EAR and report its appraisal records",
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return usageError(
					fmt.Errorf("expected exactly one EAR file, got %d", len(args)),
				)
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg.earFile = args[0]
			if problems := cfg.Validate(); len(problems) > 0 {
				return usageError(
					fmt.Errorf("invalid arguments: %s", sprintProblems(problems)),
				)
			}
			if err := runVerify(cmd.OutOrStdout(), cmd.ErrOrStderr(), cfg); err != nil {
				return failure(err)
			}
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVarP(&cfg.keyFile, "key", "k", "", "file with the verification key (PEM, or raw secret for HMAC)")
	flags.StringVarP(&cfg.alg, "alg", "a", "ES256", "JWT algorithm the EAR is signed with")
	flags.StringSliceVarP(&cfg.records, "record", "r", nil, "appraisal record to report (default all)")
	flags.StringVarP(&cfg.output, "output", "o", formatText, "output format: "+strings.Join(outputFormats, ", "))
	flags.StringVar(&cfg.at, "at", "", "validate the EAR at this RFC 3339 time instead of now")
	flags.BoolVar(&cfg.legacy, "legacy", false, "also accept EARs with the 2022 flat profile")
	flags.BoolVar(&cfg.noColor, "no-color", false, "disable colored output")
	flags.BoolVarP(&cfg.verbose, "verbose", "v", false, "verbose logging")

	return cmd
}

func runVerify(stdout, stderr io.Writer, cfg *verifyConfig) error {
	level := slog.LevelWarn
	if cfg.verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	if cfg.noColor {
		color.NoColor = true
	}

	key, err := os.ReadFile(cfg.keyFile)
	if err != nil {
		return fmt.Errorf("reading key: %w", err)
	}
	logger.Debug("read verification key", "file", cfg.keyFile, "size", len(key))

	token, err := os.ReadFile(cfg.earFile)
	if err != nil {
		return fmt.Errorf("reading EAR: %w", err)
	}
	logger.Debug("read EAR", "file", cfg.earFile, "size", len(token))

	var options []ear.VerifierConfigOption
	if cfg.at != "" {
		options = append(options, ear.WithTime(cfg.atTime))
	}
	if cfg.legacy {
		options = append(options, ear.WithProfiles(ear.ProfileEAR, ear.ProfileEARFlat))
	}

	verifier, err := ear.NewVerifier(options...)
	if err != nil {
		return fmt.Errorf("creating verifier: %w", err)
	}

	result, err := verifier.Verify(strings.TrimSpace(string(token)), key, cfg.alg)
	if err != nil {
		return err
	}
	logger.Debug(
		"verified EAR",
		"profile", result.Profile(),
		"layout", result.Layout().String(),
	)

	rep, err := makeReport(result, cfg.records)
	if err != nil {
		return err
	}

	if err := writeReport(stdout, rep, cfg.output); err != nil {
		return fmt.Errorf("writing report: %w", err)
	}
	return nil
}
