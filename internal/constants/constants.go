package constants

import "time"

// File and directory permissions.
const (
	// ConfigDirPerm is the permission for configuration directories.
	ConfigDirPerm = 0750

	// ConfigFilePerm is the permission for configuration files.
	ConfigFilePerm = 0600
)

// HTTP and network timeouts.
const (
	// DefaultHTTPTimeout is the default timeout for HTTP requests.
	DefaultHTTPTimeout = 30 * time.Second

	// ShortHTTPTimeout is used for quick operations such as token requests.
	ShortHTTPTimeout = 10 * time.Second
)

// Retry limits.
const (
	// DefaultRetryMax is the default maximum number of retries.
	DefaultRetryMax = 5

	// LowRetryMax is used for operations that should retry fewer times.
	LowRetryMax = 3

	// DefaultRetryWaitMin is the minimum wait time between retries.
	DefaultRetryWaitMin = 1 * time.Second

	// DefaultRetryWaitMax is the maximum wait time between retries.
	DefaultRetryWaitMax = 10 * time.Second

	// ExtendedRetryWaitMax is used for operations that need longer waits.
	ExtendedRetryWaitMax = 30 * time.Second
)

// Polling intervals.
const (
	// DefaultPollInterval is used for request polling operations.
	DefaultPollInterval = 2 * time.Second

	// DefaultRequestPollTimeout bounds how long PollUntilComplete waits.
	DefaultRequestPollTimeout = 10 * time.Minute
)

// Token handling.
const (
	// TokenExpirationBuffer is the buffer time before token expiration after
	// which a cached token is considered stale.
	TokenExpirationBuffer = 30 * time.Second
)

// Pagination limits.
const (
	// DefaultPageSize is the default number of items per page.
	DefaultPageSize = 20

	// LargePageSize is used for efficient bulk listings.
	LargePageSize = 100

	// MaxPages is used to prevent infinite loops in pagination.
	MaxPages = 50
)

// Cache sizing.
const (
	// DefaultCacheSize is the default cache entry limit.
	DefaultCacheSize = 1000

	// DefaultCacheTTL is the default cache time-to-live.
	DefaultCacheTTL = 2 * time.Minute

	// MaxCacheValueSize is the maximum size for cached values (1MB).
	MaxCacheValueSize = 1024 * 1024
)

// Output formats.
const (
	// FormatJSON for JSON output.
	FormatJSON = "json"

	// FormatYAML for YAML output.
	FormatYAML = "yaml"

	// FormatTable for tabular output.
	FormatTable = "table"
)

// Display constants.
const (
	// NotAvailable is used when information is not available.
	NotAvailable = "N/A"

	// JSONIndentSize is the number of spaces for JSON indentation.
	JSONIndentSize = 2
)
