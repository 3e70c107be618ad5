package schema

// Custom string types for type safety.
type (
	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for the report archive.
	DatabaseBackend string

	// RunStatus represents the lifecycle state of an archived report run.
	RunStatus string
)

// All output modes supported.
const (
	TableOut OutputMode = "table" // default
	CSVOut   OutputMode = "csv"
	JSONOut  OutputMode = "json"
)

// All archive backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// All run statuses supported.
const (
	RunRunning   RunStatus = "running"
	RunCompleted RunStatus = "completed"
	RunFailed    RunStatus = "failed"
)

// TotalRowName labels the aggregate row summed across every entity.
// The name is reserved: input rows carrying it are treated as a prior
// total row, not as an entity.
const TotalRowName = "Total Enrollment"

// NameColumn is the header of the leading label column in report CSVs.
const NameColumn = "name"

// NoDataMarker renders a cell for which no value was ever observed.
const NoDataMarker = "-"

// DefaultWeeks is the report window length when none is configured.
const DefaultWeeks = 10

// DaysPerWeek is the fixed stride between week-ending dates.
const DaysPerWeek = 7

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	TableOut: {},
	CSVOut:   {},
	JSONOut:  {},
}

// ValidDatabaseBackends lists all valid archive backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}
