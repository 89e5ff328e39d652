package main

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/loopcontext/msgcode"
	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show [code [bind...]]",
	Short: "Print messages",
	Long: `Show prints every message of the catalog, or a single message expanded
with the given bind values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := app.loadCatalog(cmd.Context())
		if err != nil {
			return err
		}
		return runShow(cmd.OutOrStdout(), c, args)
	},
}

var levelColors = map[msgcode.Level]*color.Color{
	msgcode.LevelUnknown:     color.New(color.FgMagenta),
	msgcode.LevelError:       color.New(color.FgRed, color.Bold),
	msgcode.LevelWarning:     color.New(color.FgYellow, color.Bold),
	msgcode.LevelInformation: color.New(color.FgGreen),
	msgcode.LevelDebug:       color.New(color.FgCyan),
	msgcode.LevelTrace:       color.New(color.FgBlue),
	msgcode.LevelHide:        color.New(color.Faint),
}

func levelLabel(level msgcode.Level) string {
	if c, found := levelColors[level]; found {
		return c.Sprint(level.Value())
	}
	return level.Value()
}

func warnLabel() string {
	return levelColors[msgcode.LevelWarning].Sprint("warning")
}

func errorLabel() string {
	return levelColors[msgcode.LevelError].Sprint("error")
}

func runShow(w io.Writer, c msgcode.Catalog, args []string) error {
	if len(args) == 0 {
		messages := c.Messages()

		width := 0
		for _, message := range messages {
			if n := runewidth.StringWidth(message.Code()); n > width {
				width = n
			}
		}

		for _, message := range messages {
			fmt.Fprintf(w, "%s - %s | %s\n", levelLabel(message.Level()),
				runewidth.FillRight(message.Code(), width), message.Template())
		}
		return nil
	}

	message, found := c.Get(args[0])
	if !found {
		return fmt.Errorf("%w: %s", msgcode.ErrMissingCode, args[0])
	}

	binds := make([]interface{}, len(args)-1)
	for i, arg := range args[1:] {
		binds[i] = arg
	}

	fmt.Fprintf(w, "%s - %s | %s\n", levelLabel(message.Level()), message.Code(), message.Expand(binds...))
	return nil
}
