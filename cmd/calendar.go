package cmd

import (
	"fmt"
	"strings"

	"github.com/lepinkainen/cinegraph/imdb"
	"github.com/lepinkainen/cinegraph/internal/config"
)

// CalendarCmd lists upcoming releases from the coming-soon calendar.
type CalendarCmd struct{}

// Run executes the calendar command
func (c *CalendarCmd) Run(cli *CLI) error {
	ctx := commandContext()
	client := imdb.New(config.Load())

	entries, err := client.ComingSoon(ctx)
	if err != nil {
		return err
	}
	return renderReport(cli.Format, entries, renderCalendarText)
}

func renderCalendarText(entries []imdb.CalendarEntry) {
	if len(entries) == 0 {
		fmt.Println("No upcoming releases")
		return
	}
	for _, entry := range entries {
		line := fmt.Sprintf("%s  %s (tt%s)", formatDate(entry.Release), entry.Title, entry.ID)
		if len(entry.Genres) > 0 {
			line += fmt.Sprintf(" [%s]", strings.Join(entry.Genres, ", "))
		}
		fmt.Println(line)
		if len(entry.Cast) > 0 {
			fmt.Printf("            %s\n", strings.Join(entry.Cast, ", "))
		}
	}
}
