package cmd

import (
	"testing"

	"github.com/alecthomas/kong"
	"github.com/lepinkainen/cinegraph/imdb"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// parseCLI parses args into a fresh CLI without running any command.
func parseCLI(t *testing.T, args ...string) *CLI {
	t.Helper()

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("cinegraph"),
		kong.Exit(func(int) { t.Fatalf("unexpected exit during parse of %v", args) }),
	)
	require.NoError(t, err)

	_, err = parser.Parse(args)
	require.NoError(t, err)
	return &cli
}

func TestParseDefaults(t *testing.T) {
	cli := parseCLI(t, "lookup", "tt0133093")

	assert.False(t, cli.Debug)
	assert.Equal(t, "text", cli.Format)
	assert.Equal(t, "./cache.db", cli.CacheDBFile)
	assert.Equal(t, "24h", cli.CacheTTL)
	assert.Equal(t, "tt0133093", cli.Lookup.Target)
	assert.False(t, cli.Lookup.Interactive)
}

func TestParseLookupFlags(t *testing.T) {
	cli := parseCLI(t, "--format", "json", "lookup", "the matrix", "-i", "--db", "out.db")

	assert.Equal(t, "json", cli.Format)
	assert.Equal(t, "the matrix", cli.Lookup.Target)
	assert.True(t, cli.Lookup.Interactive)
	assert.Equal(t, "out.db", cli.Lookup.DB)
}

func TestParseSearchKind(t *testing.T) {
	cli := parseCLI(t, "search", "nolan", "--kind", "name")
	assert.Equal(t, "nolan", cli.Search.Term)
	assert.Equal(t, "name", cli.Search.Kind)

	var bad CLI
	parser, err := kong.New(&bad, kong.Exit(func(int) {}))
	require.NoError(t, err)
	_, err = parser.Parse([]string{"search", "nolan", "--kind", "movie"})
	assert.Error(t, err, "kind outside the enum should not parse")
}

func TestParseCalendar(t *testing.T) {
	cli := parseCLI(t, "--format", "yaml", "calendar")
	assert.Equal(t, "yaml", cli.Format)
}

func TestParseCacheInvalidate(t *testing.T) {
	cli := parseCLI(t, "cache", "invalidate", "gql")
	assert.Equal(t, "gql", cli.Cache.Invalidate.Source)
}

func TestUpdateGlobalConfig(t *testing.T) {
	defer viper.Reset()

	cli := parseCLI(t, "--debug", "--cache-db-file", "/tmp/c.db", "--cache-ttl", "1h", "lookup", "tt0133093")
	updateGlobalConfig(cli)

	assert.True(t, viper.GetBool("debug"))
	assert.Equal(t, "/tmp/c.db", viper.GetString("cache.dbfile"))
	assert.Equal(t, "1h", viper.GetString("cache.ttl"))
}

func TestInitLoggingLevels(t *testing.T) {
	for _, level := range []string{"", "debug", "warn", "error", "bogus"} {
		t.Setenv("CINEGRAPH_LOG_LEVEL", level)
		assert.NotPanics(t, initLogging)
	}
}

func TestTitleIDPattern(t *testing.T) {
	assert.True(t, titleIDPattern.MatchString("tt0133093"))
	assert.True(t, titleIDPattern.MatchString("0133093"))
	assert.False(t, titleIDPattern.MatchString("the matrix"))
	assert.False(t, titleIDPattern.MatchString("nm0000008"))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "", formatDate(imdb.Date{}))
	assert.Equal(t, "1999", formatDate(imdb.Date{Year: 1999}))
	assert.Equal(t, "1964-09-02", formatDate(imdb.Date{Year: 1964, Mon: 9, Day: 2}))
}
