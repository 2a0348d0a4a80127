package config

import (
	"fmt"
	"maps"
	"net/url"
	"regexp"
	"slices"
	"strings"

	"github.com/gnames/gn"
)

// Update applies a slice of Option functions to the Config.
// This is the only way to modify a Config after creation.
// Invalid options are rejected with warnings - config remains in valid state.
func (c *Config) Update(opts []Option) {
	for _, opt := range opts {
		opt(c)
	}
}

// ToOptions converts the Config to a slice of Option functions.
// Only includes persistent fields appropriate for config.yaml.
// Excludes runtime-only fields (HomeDir).
// Zero values are treated as "not set", so a zero TargetCount can only
// come from a CLI flag.
func (c *Config) ToOptions() []Option {
	var res []Option
	add := func(s string, fn func(string) Option) {
		if s != "" {
			res = append(res, fn(s))
		}
	}
	addInt := func(i int, fn func(int) Option) {
		if i > 0 {
			res = append(res, fn(i))
		}
	}

	add(c.Extract.BaseURL, OptExtractBaseURL)
	add(c.Extract.Search, OptExtractSearch)
	addInt(c.Extract.PageSize, OptExtractPageSize)
	addInt(c.Extract.TargetCount, OptExtractTargetCount)
	addInt(c.Extract.RateLimit, OptExtractRateLimit)
	addInt(c.Extract.Timeout, OptExtractTimeout)
	add(c.Extract.APIKey, OptExtractAPIKey)

	add(c.Stage.Backend, OptStageBackend)
	add(c.Stage.Bucket, OptStageBucket)
	add(c.Stage.Region, OptStageRegion)
	add(c.Stage.Root, OptStageRoot)
	add(c.Stage.AccessKey, OptStageAccessKey)
	add(c.Stage.SecretKey, OptStageSecretKey)
	add(c.Stage.CredentialsFile, OptStageCredentialsFile)
	add(c.Stage.RawKey, OptStageRawKey)
	add(c.Stage.ReportsKey, OptStageReportsKey)
	add(c.Stage.PatientsKey, OptStagePatientsKey)
	add(c.Stage.SymptomsKey, OptStageSymptomsKey)
	add(c.Stage.DrugsKey, OptStageDrugsKey)

	add(c.Warehouse.Driver, OptWarehouseDriver)
	add(c.Warehouse.Host, OptWarehouseHost)
	addInt(c.Warehouse.Port, OptWarehousePort)
	add(c.Warehouse.User, OptWarehouseUser)
	add(c.Warehouse.Password, OptWarehousePassword)
	add(c.Warehouse.Database, OptWarehouseDatabase)
	add(c.Warehouse.SSLMode, OptWarehouseSSLMode)
	add(c.Warehouse.SQLitePath, OptWarehouseSQLitePath)
	add(c.Warehouse.ReportsTable, OptWarehouseReportsTable)
	add(c.Warehouse.PatientsTable, OptWarehousePatientsTable)
	add(c.Warehouse.SymptomsTable, OptWarehouseSymptomsTable)
	add(c.Warehouse.DrugsTable, OptWarehouseDrugsTable)

	add(c.Log.Format, OptLogFormat)
	add(c.Log.Level, OptLogLevel)
	add(c.Log.Destination, OptLogDestination)

	return res
}

func isValidString(name, s string) bool {
	res := s != ""
	if !res {
		gn.Warn("<em>%s</em> cannot be empty, ignoring", name)
	}
	return res
}

func isValidInt(name string, i int) bool {
	res := i > 0
	if !res {
		gn.Warn("<em>%s</em> has to be positive number, ignoring %d", name, i)
	}
	return res
}

func isValidNonNegative(name string, i int) bool {
	res := i >= 0
	if !res {
		gn.Warn("<em>%s</em> cannot be negative, ignoring %d", name, i)
	}
	return res
}

func isValidURL(name, s string) bool {
	u, err := url.Parse(s)
	res := err == nil && (u.Scheme == "http" || u.Scheme == "https") &&
		u.Host != ""
	if !res {
		gn.Warn("<em>%s</em> is not a valid http(s) URL, ignoring '%s'",
			name, s)
	}
	return res
}

var identRe = regexp.MustCompile(`^[a-z_][a-z0-9_]{0,62}$`)

func isValidIdentifier(name, s string) bool {
	res := identRe.MatchString(s)
	if !res {
		gn.Warn("<em>%s</em> is not a valid SQL identifier, ignoring '%s'",
			name, s)
	}
	return res
}

func isValidEnum(name, val string) bool {
	s := struct{}{}
	data := map[string]map[string]struct{}{
		"Stage.Backend":    {"file": s, "s3": s, "gcs": s},
		"Warehouse.Driver": {"postgres": s, "sqlite": s},
		"Warehouse.SSLMode": {"disable": s, "require": s,
			"verify-ca": s, "verify-full": s},
		"Log.Level":       {"debug": s, "info": s, "warn": s, "error": s},
		"Log.Format":      {"json": s, "text": s, "tint": s},
		"Log.Destination": {"file": s, "stderr": s, "stdout": s},
	}
	vals := slices.Sorted(maps.Keys(data[name]))
	var lines []string
	for _, v := range vals {
		line := fmt.Sprintf("  * %s", v)
		lines = append(lines, line)
	}
	if _, ok := data[name][val]; ok {
		return true
	}
	gn.Warn(
		"<em>%s</em> does not support '%s' as a value. "+
			"Valid values are: \n%s\nIgnoring...",
		name, val, strings.Join(lines, "\n"),
	)
	return false
}
