package config

import (
	"github.com/spf13/viper"
)

// Thumb holds a target thumbnail box in pixels.
type Thumb struct {
	Width  int
	Height int
}

// Settings is a value snapshot of the library configuration.
// It is copied into each client at construction time, so later viper
// changes do not affect entities that already exist.
type Settings struct {
	// Country and Language select the locale IMDb renders localized
	// fields in (e.g. "US" / "en-US").
	Country  string
	Language string

	// Result limits per search kind.
	TitleSearchLimit   int
	NameSearchLimit    int
	KeywordSearchLimit int

	// Thumbnail boxes per attribute family.
	CastThumb     Thumb
	EpisodeThumb  Thumb
	RecommThumb   Thumb
	CalendarThumb Thumb
	PosterThumb   Thumb

	// Advanced search defaults.
	SortBy    string
	SortOrder string

	// MaxPages caps the pagination walker. 0 means the built-in default.
	MaxPages int

	Debug bool
}

// Global configuration variables
var (
	// Debug enables verbose logging in the CLI
	Debug bool
)

// InitConfig initializes the global configuration defaults
func InitConfig() {
	// Set default values
	viper.SetDefault("imdb.country", "US")
	viper.SetDefault("imdb.language", "en-US")
	viper.SetDefault("search.title_limit", 10)
	viper.SetDefault("search.name_limit", 10)
	viper.SetDefault("search.keyword_limit", 25)
	viper.SetDefault("search.sort_by", "POPULARITY")
	viper.SetDefault("search.sort_order", "ASC")
	viper.SetDefault("pagination.max_pages", 200)

	viper.SetDefault("thumbs.cast.width", 140)
	viper.SetDefault("thumbs.cast.height", 207)
	viper.SetDefault("thumbs.episode.width", 224)
	viper.SetDefault("thumbs.episode.height", 126)
	viper.SetDefault("thumbs.recommendation.width", 140)
	viper.SetDefault("thumbs.recommendation.height", 207)
	viper.SetDefault("thumbs.calendar.width", 140)
	viper.SetDefault("thumbs.calendar.height", 207)
	viper.SetDefault("thumbs.poster.width", 190)
	viper.SetDefault("thumbs.poster.height", 281)

	Debug = viper.GetBool("debug")
}

// SetDebug sets the debug flag
func SetDebug(debug bool) {
	Debug = debug
	viper.Set("debug", debug)
}

// Load builds a Settings snapshot from the current viper state.
// InitConfig should have been called first so defaults are in place.
func Load() Settings {
	return Settings{
		Country:            viper.GetString("imdb.country"),
		Language:           viper.GetString("imdb.language"),
		TitleSearchLimit:   viper.GetInt("search.title_limit"),
		NameSearchLimit:    viper.GetInt("search.name_limit"),
		KeywordSearchLimit: viper.GetInt("search.keyword_limit"),
		CastThumb:          thumbFromViper("thumbs.cast"),
		EpisodeThumb:       thumbFromViper("thumbs.episode"),
		RecommThumb:        thumbFromViper("thumbs.recommendation"),
		CalendarThumb:      thumbFromViper("thumbs.calendar"),
		PosterThumb:        thumbFromViper("thumbs.poster"),
		SortBy:             viper.GetString("search.sort_by"),
		SortOrder:          viper.GetString("search.sort_order"),
		MaxPages:           viper.GetInt("pagination.max_pages"),
		Debug:              viper.GetBool("debug"),
	}
}

func thumbFromViper(prefix string) Thumb {
	return Thumb{
		Width:  viper.GetInt(prefix + ".width"),
		Height: viper.GetInt(prefix + ".height"),
	}
}
