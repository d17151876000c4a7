package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/lepinkainen/cinegraph/imdb"
	"github.com/lepinkainen/cinegraph/internal/config"
	"github.com/lepinkainen/cinegraph/internal/datastore"
	"github.com/lepinkainen/cinegraph/internal/tui"
)

// LookupCmd resolves a single title and prints its core fields.
type LookupCmd struct {
	Target         string `arg:"" help:"IMDb title id (tt0133093) or search term"`
	Interactive    bool   `short:"i" help:"Pick from search results interactively"`
	DB             string `help:"Write the record to this SQLite database file"`
	Datasette      string `help:"Write the record to this Datasette instance URL"`
	DatasetteToken string `help:"API token for the Datasette instance" env:"CINEGRAPH_DATASETTE_TOKEN"`
}

// titleIDPattern matches a bare or tt-prefixed numeric title id.
var titleIDPattern = regexp.MustCompile(`^(tt)?\d{1,8}$`)

// titleReport is the printable shape of a lookup.
type titleReport struct {
	ID            string   `json:"id" yaml:"id"`
	Title         string   `json:"title" yaml:"title"`
	OriginalTitle string   `json:"originalTitle,omitempty" yaml:"originalTitle,omitempty"`
	Year          int      `json:"year" yaml:"year"`
	Kind          string   `json:"kind" yaml:"kind"`
	Runtime       int      `json:"runtimeMinutes,omitempty" yaml:"runtimeMinutes,omitempty"`
	Rating        float64  `json:"rating,omitempty" yaml:"rating,omitempty"`
	Votes         int      `json:"votes,omitempty" yaml:"votes,omitempty"`
	Metacritic    int      `json:"metacritic,omitempty" yaml:"metacritic,omitempty"`
	Plot          string   `json:"plot,omitempty" yaml:"plot,omitempty"`
	Genres        []string `json:"genres,omitempty" yaml:"genres,omitempty"`
	Directors     []string `json:"directors,omitempty" yaml:"directors,omitempty"`
	Poster        string   `json:"poster,omitempty" yaml:"poster,omitempty"`
}

// Run executes the lookup command
func (l *LookupCmd) Run(cli *CLI) error {
	ctx := commandContext()
	client := imdb.New(config.Load())

	id, err := l.resolveTarget(ctx, client)
	if err != nil {
		return err
	}
	if id == "" {
		// User backed out of the picker or search came up empty.
		return nil
	}

	report, err := buildTitleReport(ctx, client, id)
	if err != nil {
		return err
	}

	if err := renderReport(cli.Format, report, renderTitleText); err != nil {
		return err
	}

	return l.export(report)
}

func (l *LookupCmd) resolveTarget(ctx context.Context, client *imdb.Client) (string, error) {
	if titleIDPattern.MatchString(l.Target) {
		return l.Target, nil
	}

	results, err := client.SearchTitle(ctx, l.Target)
	if err != nil {
		return "", fmt.Errorf("search failed: %w", err)
	}
	if len(results) == 0 {
		return "", fmt.Errorf("no results for %q", l.Target)
	}

	if l.Interactive && len(results) > 1 {
		selection, err := tui.Select(l.Target, results)
		if err != nil {
			return "", err
		}
		if selection.Action != tui.ActionSelected {
			slog.Info("Selection cancelled")
			return "", nil
		}
		return selection.Selection.ID, nil
	}

	slog.Debug("Using first search result", "id", results[0].ID, "title", results[0].Title)
	return results[0].ID, nil
}

func buildTitleReport(ctx context.Context, client *imdb.Client, id string) (titleReport, error) {
	title, err := imdb.NewTitle(client, id)
	if err != nil {
		return titleReport{}, err
	}

	report := titleReport{ID: "tt" + title.ID()}

	// The main accessors share one fetch; only the first call hits the
	// network (or cache).
	if report.Title, err = title.Title(ctx); err != nil {
		return titleReport{}, err
	}
	if report.Title == "" {
		return titleReport{}, fmt.Errorf("no data for tt%s", title.ID())
	}

	report.OriginalTitle, _ = title.OriginalTitle(ctx)
	if report.OriginalTitle == report.Title {
		report.OriginalTitle = ""
	}
	report.Year, _ = title.Year(ctx)
	report.Kind, _ = title.Kind(ctx)
	report.Runtime, _ = title.Runtime(ctx)
	report.Rating, _ = title.Rating(ctx)
	report.Votes, _ = title.Votes(ctx)
	report.Metacritic, _ = title.Metacritic(ctx)
	report.Plot, _ = title.Plot(ctx)
	report.Poster, _ = title.PosterThumbnailURL(ctx)

	if report.Genres, err = title.Genres(ctx); err != nil {
		return titleReport{}, err
	}

	directors, err := title.Directors(ctx)
	if err != nil {
		return titleReport{}, err
	}
	for _, d := range directors {
		report.Directors = append(report.Directors, d.Name)
	}

	return report, nil
}

func renderTitleText(report titleReport) {
	fmt.Printf("%s (%d)\n", report.Title, report.Year)
	if report.OriginalTitle != "" {
		fmt.Printf("  Original title: %s\n", report.OriginalTitle)
	}
	fmt.Printf("  ID:       %s\n", report.ID)
	fmt.Printf("  Kind:     %s\n", report.Kind)
	if report.Runtime > 0 {
		fmt.Printf("  Runtime:  %d min\n", report.Runtime)
	}
	if report.Rating > 0 {
		fmt.Printf("  Rating:   %.1f/10 (%d votes)\n", report.Rating, report.Votes)
	}
	if report.Metacritic > 0 {
		fmt.Printf("  Metacritic: %d\n", report.Metacritic)
	}
	if len(report.Genres) > 0 {
		fmt.Printf("  Genres:   %s\n", strings.Join(report.Genres, ", "))
	}
	if len(report.Directors) > 0 {
		fmt.Printf("  Directors: %s\n", strings.Join(report.Directors, ", "))
	}
	if report.Plot != "" {
		fmt.Printf("  Plot:     %s\n", report.Plot)
	}
	if report.Poster != "" {
		fmt.Printf("  Poster:   %s\n", report.Poster)
	}
}

// renderReport prints any report value in the requested format. The
// text renderer is per-shape; json and yaml come from the struct tags.
func renderReport[T any](format string, report T, text func(T)) error {
	switch format {
	case "json":
		out, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
	case "yaml":
		out, err := yaml.Marshal(report)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
	default:
		text(report)
	}
	return nil
}

func (l *LookupCmd) export(report titleReport) error {
	record := datastore.TitleRecord{
		ImdbID:         report.ID,
		Title:          report.Title,
		OriginalTitle:  report.OriginalTitle,
		Year:           report.Year,
		Kind:           report.Kind,
		RuntimeMinutes: report.Runtime,
		Rating:         report.Rating,
		Votes:          report.Votes,
		Metacritic:     report.Metacritic,
		Plot:           report.Plot,
		Genres:         report.Genres,
		Directors:      report.Directors,
		PosterURL:      report.Poster,
	}

	if l.DB != "" {
		store, err := datastore.OpenSQLiteStore(l.DB)
		if err != nil {
			return fmt.Errorf("sqlite open failed: %w", err)
		}
		defer func() { _ = store.Close() }()
		if err := datastore.InsertTitles(store, []datastore.TitleRecord{record}); err != nil {
			return fmt.Errorf("sqlite export failed: %w", err)
		}
		slog.Info("Wrote record", "db", l.DB, "id", report.ID)
	}

	if l.Datasette != "" {
		client := datastore.NewDatasetteClient(l.Datasette, l.DatasetteToken)
		if err := datastore.InsertTitles(client, []datastore.TitleRecord{record}); err != nil {
			return fmt.Errorf("datasette export failed: %w", err)
		}
		slog.Info("Wrote record", "datasette", l.Datasette, "id", report.ID)
	}

	return nil
}
