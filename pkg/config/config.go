package config

// this holds the resolved configuration values from CLI
var (
	DB                 string // connection string for the database
	ServerAddr         string // listen address of the HTTP server
	WaitForServices    string // duration to wait for other services to be ready
	LogLevel           string // sets the log level (zap log level values)
	SQLLogLevel        string // sets the log level for sql subsystem
	LogFormat          string // text vs json
	MigrationSourceURL string // location of migration files
	CorsOrigins        string // comma separated list of allowed CORS origins
	ProfilingPort      int    // port for profiling
)
