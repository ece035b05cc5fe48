package observability

import (
	"net/url"
	"strings"
)

const (
	AttrStoreName  = "store.name"
	AttrCollection = "db.collection.name"
	AttrOperation  = "db.operation.name"
	AttrStage      = "seeder.stage"
	AttrRunID      = "seeder.run.id"
	AttrDocuments  = "seeder.documents"
	AttrErrorType  = "error.type"
)

var secretKeySubstrings = []string{
	"password",
	"passwd",
	"secret",
	"token",
	"authorization",
}

// RedactAttributeValue masks values for known-sensitive attribute keys.
func RedactAttributeValue(key string, value string) string {
	lower := strings.ToLower(key)
	for _, needle := range secretKeySubstrings {
		if strings.Contains(lower, needle) {
			return "[REDACTED]"
		}
	}
	return value
}

// RedactURI masks the password and sensitive query parameters of a
// connection string so it can be logged.
func RedactURI(uri string) string {
	parsed, err := url.Parse(uri)
	if err != nil || parsed.Host == "" {
		return "[REDACTED]"
	}
	if parsed.User != nil {
		if _, hasPassword := parsed.User.Password(); hasPassword {
			parsed.User = url.UserPassword(parsed.User.Username(), "xxxxx")
		}
	}
	if parsed.RawQuery != "" {
		query := parsed.Query()
		for key, values := range query {
			for i, v := range values {
				values[i] = RedactAttributeValue(key, v)
			}
			query[key] = values
		}
		parsed.RawQuery = query.Encode()
	}
	return parsed.String()
}
