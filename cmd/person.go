package cmd

import (
	"fmt"
	"strings"

	"github.com/lepinkainen/cinegraph/imdb"
	"github.com/lepinkainen/cinegraph/internal/config"
)

// PersonCmd resolves a person by id and prints their core fields.
type PersonCmd struct {
	ID string `arg:"" help:"IMDb name id (nm0000008)"`
}

type personReport struct {
	ID         string               `json:"id" yaml:"id"`
	Name       string               `json:"name" yaml:"name"`
	Birth      string               `json:"birth,omitempty" yaml:"birth,omitempty"`
	BirthPlace string               `json:"birthPlace,omitempty" yaml:"birthPlace,omitempty"`
	Death      string               `json:"death,omitempty" yaml:"death,omitempty"`
	DeathPlace string               `json:"deathPlace,omitempty" yaml:"deathPlace,omitempty"`
	HeightCM   int                  `json:"heightCm,omitempty" yaml:"heightCm,omitempty"`
	Bio        string               `json:"bio,omitempty" yaml:"bio,omitempty"`
	KnownFor   []imdb.KnownForTitle `json:"knownFor,omitempty" yaml:"knownFor,omitempty"`
}

// Run executes the person command
func (p *PersonCmd) Run(cli *CLI) error {
	ctx := commandContext()
	client := imdb.New(config.Load())

	name, err := imdb.NewName(client, p.ID)
	if err != nil {
		return err
	}

	report := personReport{ID: "nm" + name.ID()}

	if report.Name, err = name.FullName(ctx); err != nil {
		return err
	}
	if report.Name == "" {
		return fmt.Errorf("no data for nm%s", name.ID())
	}

	birth, place, _ := name.Birth(ctx)
	report.Birth = formatDate(birth)
	report.BirthPlace = place

	death, _ := name.Death(ctx)
	if death.Dead {
		report.Death = formatDate(death.Date)
		report.DeathPlace = death.Place
	}

	report.HeightCM, _ = name.Height(ctx)
	report.Bio, _ = name.Bio(ctx)
	report.KnownFor, _ = name.KnownFor(ctx)

	return renderReport(cli.Format, report, renderPersonText)
}

func formatDate(d imdb.Date) string {
	if d.IsZero() {
		return ""
	}
	if d.Day == 0 || d.Mon == 0 {
		return fmt.Sprintf("%d", d.Year)
	}
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, d.Mon, d.Day)
}

func renderPersonText(report personReport) {
	fmt.Println(report.Name)
	fmt.Printf("  ID:     %s\n", report.ID)
	if report.Birth != "" {
		fmt.Printf("  Born:   %s%s\n", report.Birth, suffixPlace(report.BirthPlace))
	}
	if report.Death != "" {
		fmt.Printf("  Died:   %s%s\n", report.Death, suffixPlace(report.DeathPlace))
	}
	if report.HeightCM > 0 {
		fmt.Printf("  Height: %d cm\n", report.HeightCM)
	}
	if len(report.KnownFor) > 0 {
		titles := make([]string, len(report.KnownFor))
		for i, known := range report.KnownFor {
			titles[i] = fmt.Sprintf("%s (%d)", known.Title, known.Year)
		}
		fmt.Printf("  Known for: %s\n", strings.Join(titles, ", "))
	}
	if report.Bio != "" {
		fmt.Printf("  Bio:    %s\n", report.Bio)
	}
}

func suffixPlace(place string) string {
	if place == "" {
		return ""
	}
	return " in " + place
}
