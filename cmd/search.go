package cmd

import (
	"fmt"

	"github.com/lepinkainen/cinegraph/imdb"
	"github.com/lepinkainen/cinegraph/internal/config"
)

// SearchCmd searches titles, names or keywords.
type SearchCmd struct {
	Term string `arg:"" help:"Search term"`
	Kind string `help:"What to search for" enum:"title,name,keyword" default:"title"`
}

// Run executes the search command
func (s *SearchCmd) Run(cli *CLI) error {
	ctx := commandContext()
	client := imdb.New(config.Load())

	switch s.Kind {
	case "name":
		results, err := client.SearchName(ctx, s.Term)
		if err != nil {
			return err
		}
		return renderReport(cli.Format, results, renderNameResults)
	case "keyword":
		results, err := client.SearchKeyword(ctx, s.Term)
		if err != nil {
			return err
		}
		return renderReport(cli.Format, results, renderKeywordResults)
	default:
		results, err := client.SearchTitle(ctx, s.Term)
		if err != nil {
			return err
		}
		return renderReport(cli.Format, results, renderTitleResults)
	}
}

func renderTitleResults(results []imdb.TitleSearchResult) {
	if len(results) == 0 {
		fmt.Println("No results")
		return
	}
	for _, result := range results {
		line := fmt.Sprintf("tt%s  %s", result.ID, result.Title)
		if result.Year > 0 {
			line += fmt.Sprintf(" (%d)", result.Year)
		}
		if result.Kind != "" {
			line += fmt.Sprintf(" [%s]", result.Kind)
		}
		fmt.Println(line)
	}
}

func renderNameResults(results []imdb.NameSearchResult) {
	if len(results) == 0 {
		fmt.Println("No results")
		return
	}
	for _, result := range results {
		line := fmt.Sprintf("nm%s  %s", result.ID, result.Name)
		if result.Profession != "" {
			line += fmt.Sprintf(" - %s", result.Profession)
		}
		if result.KnownFor != "" {
			line += fmt.Sprintf(" (%s)", result.KnownFor)
		}
		fmt.Println(line)
	}
}

func renderKeywordResults(results []imdb.KeywordSearchResult) {
	if len(results) == 0 {
		fmt.Println("No results")
		return
	}
	for _, result := range results {
		fmt.Printf("%s  %s (%d titles)\n", result.ID, result.Text, result.TitleCount)
	}
}
