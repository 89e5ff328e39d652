package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sort"

	"github.com/loopcontext/msgcode"
	"github.com/spf13/cobra"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate message resources",
	Long: `Check reads every resource on its own, reports invalid codes, missing
files and codes defined by more than one resource, then loads them together.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd.Context(), cmd.OutOrStdout(), app.loader(), app.cfg.Resources)
	},
}

type checkReport struct {
	Missing  []string
	Invalid  map[string]error
	Defined  map[string][]string
	Messages int
}

func checkResources(ctx context.Context, loader msgcode.Loader, locators []string) checkReport {
	report := checkReport{
		Invalid: map[string]error{},
		Defined: map[string][]string{},
	}

	union := msgcode.New(msgcode.Config{})
	for _, locator := range locators {
		entries, err := loader.Load(ctx, locator)
		if errors.Is(err, msgcode.ErrResourceNotFound) {
			report.Missing = append(report.Missing, locator)
			continue
		} else if err != nil {
			report.Invalid[locator] = err
			continue
		}

		c := msgcode.New(msgcode.Config{})
		if err := c.LoadEntries(entries, msgcode.ReplaceAll); err != nil {
			report.Invalid[locator] = err
			continue
		}
		for _, code := range c.Keys() {
			report.Defined[code] = append(report.Defined[code], locator)
		}
		union.Merge(c)
	}
	report.Messages = union.Len()

	return report
}

func runCheck(ctx context.Context, w io.Writer, loader msgcode.Loader, locators []string) error {
	if len(locators) == 0 {
		return fmt.Errorf("no message resource given (use --resource or a configuration file)")
	}

	report := checkResources(ctx, loader, locators)

	for _, locator := range report.Missing {
		fmt.Fprintf(w, "%s: %s: not found\n", warnLabel(), locator)
	}

	codes := make([]string, 0, len(report.Defined))
	for code, defined := range report.Defined {
		if len(defined) > 1 {
			codes = append(codes, code)
		}
	}
	sort.Strings(codes)
	for _, code := range codes {
		fmt.Fprintf(w, "%s: %s defined in %v\n", warnLabel(), code, report.Defined[code])
	}

	invalid := make([]string, 0, len(report.Invalid))
	for locator := range report.Invalid {
		invalid = append(invalid, locator)
	}
	sort.Strings(invalid)
	for _, locator := range invalid {
		fmt.Fprintf(w, "%s: %s: %v\n", errorLabel(), locator, report.Invalid[locator])
	}

	if len(invalid) > 0 {
		return fmt.Errorf("%d invalid resource(s)", len(invalid))
	}

	fmt.Fprintf(w, "%d message(s) in %d resource(s)\n",
		report.Messages, len(locators)-len(report.Missing))
	return nil
}
