// Package config provides configuration management for faersetl.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Environment Variables
//
// Use FAERSETL_ prefix with underscores for nesting:
//
//	FAERSETL_EXTRACT_SEARCH='occurcountry:"US"'
//	FAERSETL_EXTRACT_TARGET_COUNT=5000
//	FAERSETL_STAGE_BACKEND=s3
//	FAERSETL_WAREHOUSE_HOST=localhost
//	FAERSETL_LOG_LEVEL=info
package config

// Config represents the complete faersetl configuration.
type Config struct {
	// Extract contains settings of the openFDA paginated extractor.
	Extract ExtractConfig `mapstructure:"extract" yaml:"extract"`

	// Stage contains settings of the object storage used for staging.
	Stage StageConfig `mapstructure:"stage" yaml:"stage"`

	// Warehouse contains settings of the database the tables are loaded to.
	Warehouse WarehouseConfig `mapstructure:"warehouse" yaml:"warehouse"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// HomeDir determines where config, cache and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// ExtractConfig contains parameters of the openFDA API extraction.
type ExtractConfig struct {
	// BaseURL is the endpoint of the drug adverse event API.
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`

	// Search is the openFDA filter expression sent as `search` parameter.
	Search string `mapstructure:"search" yaml:"search"`

	// PageSize is the number of records requested per page (`limit`).
	// openFDA does not serve more than 1000 records per page.
	PageSize int `mapstructure:"page_size" yaml:"page_size"`

	// TargetCount is the total number of records to extract.
	// Zero means no records at all.
	TargetCount int `mapstructure:"target_count" yaml:"target_count"`

	// RateLimit is the maximum number of requests per second.
	RateLimit int `mapstructure:"rate_limit" yaml:"rate_limit"`

	// Timeout is the HTTP client timeout in seconds.
	Timeout int `mapstructure:"timeout" yaml:"timeout"`

	// APIKey is an optional openFDA key that raises request quotas.
	APIKey string `mapstructure:"api_key" yaml:"api_key"`
}

// StageConfig describes where raw and normalized CSV files are staged.
type StageConfig struct {
	// Backend is one of "file", "s3", "gcs".
	Backend string `mapstructure:"backend" yaml:"backend"`

	// Bucket is the S3 or GCS bucket name.
	Bucket string `mapstructure:"bucket" yaml:"bucket"`

	// Region is the AWS region of the S3 bucket.
	Region string `mapstructure:"region" yaml:"region"`

	// Root is the local directory used by the "file" backend.
	// If empty, the stage directory inside the cache is used.
	Root string `mapstructure:"root" yaml:"root"`

	// AccessKey and SecretKey are optional static AWS credentials.
	AccessKey string `mapstructure:"access_key" yaml:"access_key"`
	SecretKey string `mapstructure:"secret_key" yaml:"secret_key"`

	// CredentialsFile is an optional GCP service account JSON file.
	CredentialsFile string `mapstructure:"credentials_file" yaml:"credentials_file"`

	// RawKey is the object key of extracted, not yet normalized data.
	RawKey string `mapstructure:"raw_key" yaml:"raw_key"`

	ReportsKey  string `mapstructure:"reports_key" yaml:"reports_key"`
	PatientsKey string `mapstructure:"patients_key" yaml:"patients_key"`
	SymptomsKey string `mapstructure:"symptoms_key" yaml:"symptoms_key"`
	DrugsKey    string `mapstructure:"drugs_key" yaml:"drugs_key"`
}

// WarehouseConfig contains connection parameters and table names of
// the warehouse.
type WarehouseConfig struct {
	// Driver is "postgres" or "sqlite".
	Driver string `mapstructure:"driver" yaml:"driver"`

	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// SQLitePath is the database file used by the "sqlite" driver.
	// If empty, faersetl.sqlite inside the cache directory is used.
	SQLitePath string `mapstructure:"sqlite_path" yaml:"sqlite_path"`

	ReportsTable  string `mapstructure:"reports_table" yaml:"reports_table"`
	PatientsTable string `mapstructure:"patients_table" yaml:"patients_table"`
	SymptomsTable string `mapstructure:"symptoms_table" yaml:"symptoms_table"`
	DrugsTable    string `mapstructure:"drugs_table" yaml:"drugs_table"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Extract: ExtractConfig{
			BaseURL: "https://api.fda.gov/drug/event.json",
			Search: `receivedate:[20200101 TO 20231231] AND ` +
				`occurcountry:"US" AND _missing_:companynumb`,
			PageSize:    1000,
			TargetCount: 79_250,
			// openFDA allows 240 requests per minute
			RateLimit: 4,
			Timeout:   60,
		},
		Stage: StageConfig{
			Backend:     "file",
			Region:      "us-east-1",
			RawKey:      "api-extracted-data/FDA_data.csv",
			ReportsKey:  "api-cleaned-data/reports.csv",
			PatientsKey: "api-cleaned-data/patients.csv",
			SymptomsKey: "api-cleaned-data/symptoms.csv",
			DrugsKey:    "api-cleaned-data/drugs.csv",
		},
		Warehouse: WarehouseConfig{
			Driver:        "postgres",
			Host:          "localhost",
			Port:          5432,
			User:          "postgres",
			Password:      "postgres",
			Database:      "fda_db",
			SSLMode:       "disable",
			ReportsTable:  "fda_reports",
			PatientsTable: "fda_patients",
			SymptomsTable: "fda_symptoms",
			DrugsTable:    "fda_drugs",
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
	}

	return res
}
