package entities

// Model is a persisted entity described by its table and primary key
type Model interface {
	TableName() string
	PrimaryKey() string
	KeyValue() interface{}
	HasKey() bool
	// Values returns the writable columns, excluding the key and timestamps
	Values() map[string]interface{}
	// Columns lists every column a query may filter or sort on
	Columns() []string
}

// Identifiable is a model whose key is generated by the database on insert
type Identifiable interface {
	Model
	SetID(id int64)
}

var timestampColumns = []string{"created_at", "updated_at"}

func withTimestamps(cols ...string) []string {
	return append(cols, timestampColumns...)
}
