package config

import (
	"io/fs"
	"time"
)

// -----------------------------------------------------------------------------
// Build Information
// -----------------------------------------------------------------------------

// Build variables are injected via -ldflags.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// UserAgent identifies the HTTP client.
var UserAgent = "Go-Lunar/" + Version

// -----------------------------------------------------------------------------
// Application Constants
// -----------------------------------------------------------------------------

const (
	AppName           = "Go Lunar"
	AppID             = "com.github.tartampluch.go-lunar"
	KeyringService    = "com.github.tartampluch.go-lunar"
	KeyringUser       = "gemini-api-key"
	LocalhostBindAddr = "127.0.0.1"
	LogFileName       = "app.log"
	ConfigFileName    = ".go-lunar"
	ConfigFileType    = "yaml"
	EnvPrefix         = "LUNAR"
)

// -----------------------------------------------------------------------------
// Exit Codes
// -----------------------------------------------------------------------------

const (
	ExitCodeSuccess = 0
	ExitCodeError   = 1
)

// -----------------------------------------------------------------------------
// System & File Permissions
// -----------------------------------------------------------------------------

const (
	// FilePermUserRW represents -rw------- (Read/Write for owner only).
	// Used for sensitive files like logs.
	FilePermUserRW fs.FileMode = 0600

	// FilePermPublic represents -rw-r--r--.
	// The almanac file is consumed by other processes (publishers).
	FilePermPublic fs.FileMode = 0644

	// DirPermUserRWX represents drwx------ (Read/Write/Exec for owner only).
	DirPermUserRWX fs.FileMode = 0700

	ChannelBufferSize = 1
)

// -----------------------------------------------------------------------------
// CLI Flags & Descriptions
// -----------------------------------------------------------------------------

const (
	FlagVersion   = "version"
	FlagDebug     = "debug"
	FlagConfig    = "config"
	FlagYear      = "year"
	FlagMonth     = "month"
	FlagOutput    = "output"
	FlagICS       = "ics"
	FlagDate      = "date"
	FlagAllVoC    = "all-voc"
	FlagPort      = "port"
	FlagDescDebug = "Enable debug logging"
	FlagDescCfg   = "config file (default .go-lunar.yaml in cwd or home)"
	FlagDescYear  = "target year (default: current year in the configured location)"
	FlagDescMonth = "target month 1-12 (default: current month in the configured location)"
	FlagDescOut   = "almanac JSON output path"
	FlagDescICS   = "optional iCalendar output path"
	FlagDescDate  = "date to show, YYYY-MM-DD (default: tomorrow)"
	FlagDescVoC   = "show void-of-course windows shorter than the hide threshold"
	FlagDescSumm  = "print the summary of the whole month instead of one day"
	FlagDescPort  = "HTTP port bound on localhost"

	MsgVersionOutput = "%s version %s (%s/%s)\n"
)

// -----------------------------------------------------------------------------
// Setting Keys (viper)
// -----------------------------------------------------------------------------

const (
	KeyLocation        = "location"
	KeyOutput          = "output"
	KeyICSOutput       = "ics_output"
	KeyLanguage        = "language"
	KeyReferenceHour   = "reference_hour"
	KeyEphemBackend    = "ephemeris.backend"
	KeyEphemPath       = "ephemeris.path"
	KeyFavorableFile   = "favorable_file"
	KeyGeminiAPIKey    = "gemini.api_key"
	KeyGeminiModel     = "gemini.model"
	KeyGeminiTimeout   = "gemini.timeout"
	KeyServerPort      = "server.port"
	KeyServerCheckIntv = "server.check_interval"

	// Unprefixed environment variables still honored.
	EnvLocation   = "LUNAR_TZ"
	EnvOutput     = "LUNAR_OUT"
	EnvEphemPath  = "LUNAR_EPHEMERIS_PATH"
	EnvVSOP87     = "VSOP87"
	EnvGeminiKey  = "GEMINI_API_KEY"
	EnvGeminiMdl  = "GEMINI_MODEL"
	EnvKeyReplace = "_"
)

// -----------------------------------------------------------------------------
// Default Values & Business Logic
// -----------------------------------------------------------------------------

const (
	DefaultLocation      = "Asia/Nicosia"
	DefaultOutput        = "lunar_calendar.json"
	DefaultLanguage      = "ru"
	DefaultReferenceHour = 12
	DefaultFavorableFile = "monthly_calendar.yml"
	DefaultGeminiModel   = "gemini-2.0-flash"
	DefaultGeminiTimeout = 30 * time.Second
	DefaultPort          = "18080"
	DefaultCheckInterval = time.Hour

	BackendVSOP87 = "vsop87"
	BackendMean   = "mean"

	// AdviceCount is how many advisory lines each day carries.
	AdviceCount = 3

	// VoCHideMinutes hides very short windows in the "show" output.
	VoCHideMinutes = 5

	// SummaryVoCMinutes is the shortest window listed in the monthly summary.
	SummaryVoCMinutes = 15

	// PeriodRetries is how many follow-up requests ask for missing period descriptions.
	PeriodRetries = 3
)

// SupportedLanguages lists the embedded locales (ISO 639-1).
var SupportedLanguages = []string{"ru", "en"}

// Favorable-day categories, in display order.
const (
	CategoryGeneral  = "general"
	CategoryHaircut  = "haircut"
	CategoryTravel   = "travel"
	CategoryShopping = "shopping"
	CategoryHealth   = "health"
)

// Categories lists every favorable-day category.
var Categories = []string{CategoryGeneral, CategoryHaircut, CategoryTravel, CategoryShopping, CategoryHealth}

// -----------------------------------------------------------------------------
// Search & Precision (Julian Day arithmetic)
// -----------------------------------------------------------------------------

const (
	VoidScanStep      = time.Hour
	VoidPrecision     = time.Minute
	VoidHorizon       = 7 * 24 * time.Hour
	SynodicMonthDays  = 29.530588853
	MaxPhaseSteps     = 6
	SecondsPerDay     = 86400.0
	HoursPerDay       = 24
	BreakerMaxFailure = 3
	BreakerOpenPeriod = 10 * time.Minute
)

// -----------------------------------------------------------------------------
// Data Formats
// -----------------------------------------------------------------------------

const (
	DateFormatKey     = "2006-01-02"
	DateFormatVoC     = "02.01 15:04"
	DateFormatPhase   = time.RFC3339
	DateFormatMonth   = "2006-01"
	DateFormatClock   = "15:04"
	FormatDeviation   = "%+.1f"
	FormatAspect      = "%s %s (%s°)"
	FormatFavKey      = "%04d-%02d"
	TempFilePattern   = ".almanac-*.tmp"
	AdviceBulletChars = "-•—–*●·"

	// Summary period header "<emoji> <span>" and its " (<signs>)" suffix.
	FormatSummaryPeriod = "%s %s"
	FormatSummarySigns  = " (%s)"
)

// -----------------------------------------------------------------------------
// Standards: iCalendar
// -----------------------------------------------------------------------------

const (
	ICalVersion = "2.0"
	ICalProdid  = "-//Go Lunar//Almanac//EN"
	ICalCalName = "Lunar Almanac"
	ICalMethod  = "PUBLISH"
	ICalScale   = "GREGORIAN"
	ICalDomain  = "golunar"

	PropUID         = "UID"
	PropSummary     = "SUMMARY"
	PropDescription = "DESCRIPTION"
	PropDTStart     = "DTSTART"
	PropDTEnd       = "DTEND"
	PropDTStamp     = "DTSTAMP"
	PropRefresh     = "REFRESH-INTERVAL"
	PropVersion     = "VERSION"
	PropProdid      = "PRODID"
	PropXWRCalName  = "X-WR-CALNAME"
	PropCalScale    = "CALSCALE"
	PropMethod      = "METHOD"
	PropCategories  = "CATEGORIES"

	CategoryPhase = "MOON-PHASE"
	CategoryVoC   = "VOID-OF-COURSE"

	DefaultICalRefresh = 24 * time.Hour

	// StubVCalendar is the minimal valid iCalendar object used when the month has no events.
	StubVCalendar = "BEGIN:VCALENDAR\r\nVERSION:2.0\r\nPRODID:" + ICalProdid + "\r\nEND:VCALENDAR\r\n"
)

// -----------------------------------------------------------------------------
// Network & Timeouts
// -----------------------------------------------------------------------------

const (
	ShutdownTimeout    = 5 * time.Second
	WatchDebounce      = 100 * time.Millisecond
	ServerReadTimeout  = 10 * time.Second
	ServerWriteTimeout = 30 * time.Second
	ServerIdleTimeout  = 60 * time.Second
	RetryAfterSeconds  = "10"
	AllowedMethods     = "GET, HEAD"
	RouteAlmanacJSON   = "/almanac.json"
	RouteAlmanacICS    = "/almanac.ics"
	RouteMetrics       = "/metrics"
	AddrSeparator      = ":"
	MinPort            = 1
	MaxPort            = 65535
)

// -----------------------------------------------------------------------------
// HTTP Headers & MIME Types
// -----------------------------------------------------------------------------

const (
	HeaderContentType     = "Content-Type"
	HeaderCacheControl    = "Cache-Control"
	HeaderETag            = "ETag"
	HeaderLastModified    = "Last-Modified"
	HeaderRetryAfter      = "Retry-After"
	HeaderAllow           = "Allow"
	HeaderXContentType    = "X-Content-Type-Options"
	HeaderIfNoneMatch     = "If-None-Match"
	HeaderIfModifiedSince = "If-Modified-Since"

	MimeTextCalendar    = "text/calendar; charset=utf-8"
	MimeJSON            = "application/json; charset=utf-8"
	MimeJSONPlain       = "application/json"
	MimeNoSniff         = "nosniff"
	CacheControlPrivate = "private, no-cache"

	// FormatETag expects a string argument.
	FormatETag = `"%s"`
)

// -----------------------------------------------------------------------------
// Error Messages (Technical/Logs)
// -----------------------------------------------------------------------------

const (
	ErrInvalidLocation  = "configuration error: unknown time zone"
	ErrInvalidBackend   = "configuration error: unsupported ephemeris backend"
	ErrEphemPathEmpty   = "configuration error: ephemeris data path is empty"
	ErrInvalidRefHour   = "configuration error: reference hour must be between 0 and 23"
	ErrInvalidLanguage  = "configuration error: unsupported language"
	ErrInvalidInterval  = "configuration error: check interval must be positive"
	ErrConfigRead       = "failed to read config file"
	ErrConfigDecode     = "failed to decode settings"
	ErrEphemLoad        = "failed to load ephemeris data"
	ErrEphemQuery       = "ephemeris query failed"
	ErrDayFailed        = "almanac day computation failed"
	ErrAlmanacWrite     = "failed to write almanac"
	ErrAlmanacRead      = "failed to read almanac"
	ErrAlmanacDecode    = "failed to decode almanac"
	ErrTableRead        = "failed to read favorable days file"
	ErrTableDecode      = "failed to decode favorable days file"
	ErrICalEncode       = "failed to encode iCalendar data"
	ErrAdviceClient     = "failed to create advisory client"
	ErrServerStartup    = "server startup failed"
	ErrServerShutdown   = "server shutdown failed"
	ErrPortRequired     = "server port is required"
	ErrPortNumber       = "server port must be a number"
	ErrPortRange        = "server port must be between 1 and 65535"
	ErrWatch            = "failed to watch favorable days file"
	ErrLogFile          = "failed to open log file"
	ErrCacheDir         = "could not determine user cache dir"
	ErrCreateDir        = "could not create app cache dir"
	ErrAppFailed        = "application failed unexpectedly"
	ErrWriteResp        = "failed to write response body"
	ErrLocalesAccess    = "failed to access embedded locales"
	ErrLocaleLoad       = "failed to load locale file"
	ErrKeyRead          = "failed to read API key"
	ErrKeyEmpty         = "API key cannot be empty"
	ErrDateParse        = "unable to parse date"
	ErrDateMissing      = "date not present in almanac"
	ErrGenerationFailed = "almanac generation failed"
)

// -----------------------------------------------------------------------------
// HTTP Server Responses
// -----------------------------------------------------------------------------

const (
	HTTPMsgInitializing = "Almanac initializing, please try again shortly."
	HTTPMsgMethodNotAll = "Method Not Allowed"
	HTTPMsgNotFound     = "Not Found"
)

// -----------------------------------------------------------------------------
// Translation Keys (I18n)
// -----------------------------------------------------------------------------

const (
	TKeyPhaseLine           = "phase_line"
	TKeyNextEvent           = "next_event"       // Requires Count > 0
	TKeyNextEventToday      = "next_event_today" // Explicit key for 0
	TKeyAdvicePrompt        = "advice_prompt"
	TKeyVoCLine             = "voc_line"
	TKeyDayFavorable        = "day_favorable"
	TKeyDayUnfavorable      = "day_unfavorable"
	TKeyCategoryFavorable   = "category_favorable"
	TKeyCategoryUnfavorable = "category_unfavorable"
	TKeyDigestPhase         = "digest_phase"
	TKeyICSPhaseSummary     = "ics_phase_summary"
	TKeyICSVoCSummary       = "ics_voc_summary"
	TKeyICSVoCDescription   = "ics_voc_description"
	TKeyPeriodPrompt        = "period_prompt"
	TKeyPeriodRetryPrompt   = "period_retry_prompt"
	TKeySpanDay             = "span_day"
	TKeySpanRange           = "span_range"
	TKeySummaryTitle        = "summary_title"
	TKeySummaryFavorable    = "summary_favorable"
	TKeySummaryUnfavorable  = "summary_unfavorable"
	TKeySummaryCategory     = "summary_category"
	TKeySummaryVoCTitle     = "summary_voc_title"
	TKeySummaryVoCItem      = "summary_voc_item"
	TKeySummaryFooter       = "summary_footer"
	TKeySummaryNone         = "summary_none"

	// Prefixes joined with a phase, sign, body or category key.
	TKeyPrefixPhase    = "phase_"
	TKeyPrefixSign     = "sign_"
	TKeyPrefixBody     = "body_"
	TKeyPrefixCategory = "category_"
	TKeyPrefixMonth    = "month_"
	TKeyPrefixMonthAbr = "month_short_"
	TKeyPrefixMonthIn  = "month_in_"
)

// -----------------------------------------------------------------------------
// Log Messages
// -----------------------------------------------------------------------------

const (
	MsgAppStarting    = "Starting application"
	MsgAppStop        = "Application stopped gracefully"
	MsgGenStarted     = "Almanac generation started"
	MsgGenSuccess     = "Almanac generation successful"
	MsgAlmanacWritten = "Almanac written"
	MsgICSWritten     = "iCalendar written"
	MsgAdviceFallback = "Advisory service unavailable, using fallback table"
	MsgAdviceShort    = "Advisory response too short, padding from fallback table"
	MsgAdviceProvider = "Advisory provider selected"
	MsgTableDefault   = "Favorable days not configured for month, using built-in table"
	MsgTableSmall     = "Advisory table has fewer entries than requested"
	MsgBreakerState   = "Advisory circuit breaker state changed"
	MsgPeriodFailed   = "Period description request failed"
	MsgPeriodFallback = "Period descriptions incomplete, using fallback texts"
	MsgEphemLoaded    = "Ephemeris loaded"
	MsgServerListen   = "HTTP server listening"
	MsgServerStop     = "Shutting down HTTP server..."
	MsgCacheUpdated   = "Almanac cache updated"
	MsgWorkerStart    = "Background worker started"
	MsgWorkerStop     = "Worker stopping due to context cancellation"
	MsgMonthRollover  = "Month changed, regenerating almanac"
	MsgFileChanged    = "Favorable days file changed, regenerating almanac"
	MsgWatchStarted   = "Watching favorable days file"
	MsgLocaleSkip     = "Skipping non-locale file"
	MsgLocaleBadName  = "Skipping malformed locale filename"
	MsgLocaleLoaded   = "Locale loaded successfully"
	MsgTransMissing   = "Missing translation key"
	MsgKeyMissing     = "No advisory API key configured"
	MsgKeyStored      = "API key stored in keyring\n"
	MsgKeyDeleted     = "API key removed from keyring\n"
	MsgKeyPrompt      = "Gemini API key: "
	MsgLogWarning     = "Warning: %s at %s: %v\n"
)

// -----------------------------------------------------------------------------
// Structured Logging Keys (slog)
// -----------------------------------------------------------------------------

const (
	LogKeyComponent = "component"
	LogKeyError     = "error"
	LogKeyFile      = "file"
	LogKeyLang      = "lang"
	LogKeyKey       = "key"
	LogKeyPort      = "port"
	LogKeyDate      = "date"
	LogKeyMonth     = "month"
	LogKeyDays      = "days"
	LogKeyFallbacks = "advice_fallbacks"
	LogKeyPeriods   = "period_fallbacks"
	LogKeyPhase     = "phase"
	LogKeyProvider  = "provider"
	LogKeyBackend   = "backend"
	LogKeyPath      = "path"
	LogKeyModel     = "model"
	LogKeyGot       = "got"
	LogKeyWant      = "want"
	LogKeyFrom      = "from"
	LogKeyTo        = "to"
	LogKeyInterval  = "interval"
	LogKeySizeBytes = "size_bytes"
	LogKeyETag      = "etag"
	LogKeyRoute     = "route"
	LogKeyDuration  = "duration_ms"

	// Startup Info Keys
	LogKeyBuild   = "build"
	LogKeyApp     = "app"
	LogKeyVersion = "version"
	LogKeyGoVer   = "go_version"
	LogKeyEnv     = "env"
	LogKeyOS      = "os"
	LogKeyArch    = "arch"
	LogKeyPID     = "pid"
)

// -----------------------------------------------------------------------------
// Log Components
// -----------------------------------------------------------------------------

const (
	CompMain      = "main"
	CompCLI       = "cli"
	CompEphemeris = "ephemeris"
	CompLunar     = "lunar"
	CompAdvice    = "advice"
	CompAlmanac   = "almanac"
	CompServer    = "server"
	CompWorker    = "worker"
	CompI18n      = "i18n"
	CompKeyring   = "keyring"
)
