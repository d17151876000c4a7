package datastore

// Store is a destination for exported title rows. SQLiteStore writes a
// local file, DatasetteClient posts to a remote instance.
type Store interface {
	// EnsureSchema creates the target table if it does not exist yet.
	EnsureSchema(schema string) error

	// InsertRows writes rows into the named table.
	InsertRows(table string, rows []map[string]any) error

	// Close releases the underlying connection.
	Close() error
}
