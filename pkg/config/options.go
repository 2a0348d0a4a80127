package config

import (
	"strings"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptExtractBaseURL sets the endpoint of the openFDA drug event API.
func OptExtractBaseURL(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidURL("Extract Base URL", s) {
			c.Extract.BaseURL = s
		}
	}
}

// OptExtractSearch sets the openFDA search expression.
func OptExtractSearch(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Extract Search", s) {
			c.Extract.Search = s
		}
	}
}

// OptExtractPageSize sets the number of records requested per page.
func OptExtractPageSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Extract Page Size", i) {
			c.Extract.PageSize = i
		}
	}
}

// OptExtractTargetCount sets the total number of records to extract.
// Zero is allowed and results in an empty extraction.
func OptExtractTargetCount(i int) Option {
	return func(c *Config) {
		if isValidNonNegative("Extract Target Count", i) {
			c.Extract.TargetCount = i
		}
	}
}

// OptExtractRateLimit sets the maximum number of API requests per second.
func OptExtractRateLimit(i int) Option {
	return func(c *Config) {
		if isValidInt("Extract Rate Limit", i) {
			c.Extract.RateLimit = i
		}
	}
}

// OptExtractTimeout sets the HTTP timeout in seconds.
func OptExtractTimeout(i int) Option {
	return func(c *Config) {
		if isValidInt("Extract Timeout", i) {
			c.Extract.Timeout = i
		}
	}
}

// OptExtractAPIKey sets the openFDA API key.
func OptExtractAPIKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Extract API Key", s) {
			c.Extract.APIKey = s
		}
	}
}

// OptStageBackend sets the object storage backend.
// Valid values: "file", "s3", "gcs".
func OptStageBackend(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Stage.Backend", s) {
			c.Stage.Backend = s
		}
	}
}

// OptStageBucket sets the bucket name for "s3" and "gcs" backends.
func OptStageBucket(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Stage Bucket", s) {
			c.Stage.Bucket = s
		}
	}
}

// OptStageRegion sets the AWS region of the bucket.
func OptStageRegion(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Stage Region", s) {
			c.Stage.Region = s
		}
	}
}

// OptStageRoot sets the local directory of the "file" backend.
func OptStageRoot(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Stage Root", s) {
			c.Stage.Root = s
		}
	}
}

// OptStageAccessKey sets a static AWS access key.
func OptStageAccessKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Stage Access Key", s) {
			c.Stage.AccessKey = s
		}
	}
}

// OptStageSecretKey sets a static AWS secret key.
func OptStageSecretKey(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Stage Secret Key", s) {
			c.Stage.SecretKey = s
		}
	}
}

// OptStageCredentialsFile sets a GCP service account file.
func OptStageCredentialsFile(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Stage Credentials File", s) {
			c.Stage.CredentialsFile = s
		}
	}
}

// OptStageRawKey sets the object key of the raw extracted data.
func OptStageRawKey(s string) Option {
	return stageKey("Stage Raw Key", s, func(c *Config, k string) {
		c.Stage.RawKey = k
	})
}

// OptStageReportsKey sets the object key of the reports table.
func OptStageReportsKey(s string) Option {
	return stageKey("Stage Reports Key", s, func(c *Config, k string) {
		c.Stage.ReportsKey = k
	})
}

// OptStagePatientsKey sets the object key of the patients table.
func OptStagePatientsKey(s string) Option {
	return stageKey("Stage Patients Key", s, func(c *Config, k string) {
		c.Stage.PatientsKey = k
	})
}

// OptStageSymptomsKey sets the object key of the symptoms table.
func OptStageSymptomsKey(s string) Option {
	return stageKey("Stage Symptoms Key", s, func(c *Config, k string) {
		c.Stage.SymptomsKey = k
	})
}

// OptStageDrugsKey sets the object key of the drugs table.
func OptStageDrugsKey(s string) Option {
	return stageKey("Stage Drugs Key", s, func(c *Config, k string) {
		c.Stage.DrugsKey = k
	})
}

func stageKey(name, s string, set func(*Config, string)) Option {
	s = strings.Trim(strings.TrimSpace(s), "/")
	return func(c *Config) {
		if isValidString(name, s) {
			set(c, s)
		}
	}
}

// OptWarehouseDriver sets the warehouse driver.
// Valid values: "postgres", "sqlite".
func OptWarehouseDriver(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Warehouse.Driver", s) {
			c.Warehouse.Driver = s
		}
	}
}

// OptWarehouseHost sets the PostgreSQL server hostname or IP address.
func OptWarehouseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Warehouse Host", s) {
			c.Warehouse.Host = s
		}
	}
}

// OptWarehousePort sets the PostgreSQL server port number.
func OptWarehousePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Warehouse Port", i) {
			c.Warehouse.Port = i
		}
	}
}

// OptWarehouseUser sets the PostgreSQL database username.
func OptWarehouseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Warehouse User", s) {
			c.Warehouse.User = s
		}
	}
}

// OptWarehousePassword sets the PostgreSQL database password.
func OptWarehousePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Warehouse Password", s) {
			c.Warehouse.Password = s
		}
	}
}

// OptWarehouseDatabase sets the PostgreSQL database name to connect to.
func OptWarehouseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Warehouse Database", s) {
			c.Warehouse.Database = s
		}
	}
}

// OptWarehouseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptWarehouseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Warehouse.SSLMode", s) {
			c.Warehouse.SSLMode = s
		}
	}
}

// OptWarehouseSQLitePath sets the SQLite warehouse file.
func OptWarehouseSQLitePath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Warehouse SQLite Path", s) {
			c.Warehouse.SQLitePath = s
		}
	}
}

// OptWarehouseReportsTable sets the name of the reports table.
func OptWarehouseReportsTable(s string) Option {
	return tableName("Warehouse Reports Table", s, func(c *Config, t string) {
		c.Warehouse.ReportsTable = t
	})
}

// OptWarehousePatientsTable sets the name of the patients table.
func OptWarehousePatientsTable(s string) Option {
	return tableName("Warehouse Patients Table", s, func(c *Config, t string) {
		c.Warehouse.PatientsTable = t
	})
}

// OptWarehouseSymptomsTable sets the name of the symptoms table.
func OptWarehouseSymptomsTable(s string) Option {
	return tableName("Warehouse Symptoms Table", s, func(c *Config, t string) {
		c.Warehouse.SymptomsTable = t
	})
}

// OptWarehouseDrugsTable sets the name of the drugs table.
func OptWarehouseDrugsTable(s string) Option {
	return tableName("Warehouse Drugs Table", s, func(c *Config, t string) {
		c.Warehouse.DrugsTable = t
	})
}

func tableName(name, s string, set func(*Config, string)) Option {
	s = strings.ToLower(strings.TrimSpace(s))
	return func(c *Config) {
		if isValidIdentifier(name, s) {
			set(c, s)
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptHomeDir sets the home directory for config, cache, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}
