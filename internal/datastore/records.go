package datastore

// DatabaseName is the logical database records are written to, both in
// the local SQLite file and on a remote Datasette instance.
const DatabaseName = "cinegraph"

// TitleTableSchema is the schema for exported title records.
const TitleTableSchema = `CREATE TABLE IF NOT EXISTS titles (
	imdb_id TEXT PRIMARY KEY,
	title TEXT NOT NULL,
	original_title TEXT,
	year INTEGER,
	kind TEXT,
	runtime_minutes INTEGER,
	rating REAL,
	votes INTEGER,
	metacritic INTEGER,
	plot TEXT,
	genres TEXT,
	directors TEXT,
	poster_url TEXT
)`

// TitleRecord is one exported title row.
type TitleRecord struct {
	ImdbID         string
	Title          string
	OriginalTitle  string
	Year           int
	Kind           string
	RuntimeMinutes int
	Rating         float64
	Votes          int
	Metacritic     int
	Plot           string
	Genres         []string
	Directors      []string
	PosterURL      string
}

// ToMap flattens the record into the column map InsertRows expects.
// Field names become snake_case columns; list fields are stored
// comma-separated so Datasette facets can split them back apart.
func (r TitleRecord) ToMap() map[string]any {
	return structToMap(r)
}

// InsertTitles writes title records through any Store implementation.
func InsertTitles(store Store, records []TitleRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := store.EnsureSchema(TitleTableSchema); err != nil {
		return err
	}
	rows := make([]map[string]any, len(records))
	for i, record := range records {
		rows[i] = record.ToMap()
	}
	return store.InsertRows("titles", rows)
}
