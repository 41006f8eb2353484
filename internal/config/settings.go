package config

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EphemerisSettings selects and locates the ephemeris backend.
type EphemerisSettings struct {
	Backend string `mapstructure:"backend"`
	Path    string `mapstructure:"path"`
}

// GeminiSettings configures the optional generated-advice service.
type GeminiSettings struct {
	APIKey  string        `mapstructure:"api_key"`
	Model   string        `mapstructure:"model"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// ServerSettings configures the "serve" command.
type ServerSettings struct {
	Port          string        `mapstructure:"port"`
	CheckInterval time.Duration `mapstructure:"check_interval"`
}

// Settings holds all runtime configuration.
// Values are populated from .go-lunar.yaml, environment variables and CLI flags.
type Settings struct {
	Location      string            `mapstructure:"location"`
	Output        string            `mapstructure:"output"`
	ICSOutput     string            `mapstructure:"ics_output"`
	Language      string            `mapstructure:"language"`
	ReferenceHour int               `mapstructure:"reference_hour"`
	FavorableFile string            `mapstructure:"favorable_file"`
	Ephemeris     EphemerisSettings `mapstructure:"ephemeris"`
	Gemini        GeminiSettings    `mapstructure:"gemini"`
	Server        ServerSettings    `mapstructure:"server"`
}

// NewViper returns a viper instance carrying the defaults and environment
// bindings. Callers bind their flags on it before calling Load.
func NewViper() *viper.Viper {
	v := viper.New()

	v.SetDefault(KeyLocation, DefaultLocation)
	v.SetDefault(KeyOutput, DefaultOutput)
	v.SetDefault(KeyICSOutput, "")
	v.SetDefault(KeyLanguage, DefaultLanguage)
	v.SetDefault(KeyReferenceHour, DefaultReferenceHour)
	v.SetDefault(KeyFavorableFile, DefaultFavorableFile)
	v.SetDefault(KeyEphemBackend, BackendVSOP87)
	v.SetDefault(KeyEphemPath, "")
	v.SetDefault(KeyGeminiAPIKey, "")
	v.SetDefault(KeyGeminiModel, DefaultGeminiModel)
	v.SetDefault(KeyGeminiTimeout, DefaultGeminiTimeout)
	v.SetDefault(KeyServerPort, DefaultPort)
	v.SetDefault(KeyServerCheckIntv, DefaultCheckInterval)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", EnvKeyReplace))
	v.AutomaticEnv()

	// Unprefixed legacy names take precedence over the prefixed form.
	_ = v.BindEnv(KeyLocation, EnvLocation)
	_ = v.BindEnv(KeyOutput, EnvOutput)
	_ = v.BindEnv(KeyEphemPath, EnvEphemPath, EnvVSOP87)
	_ = v.BindEnv(KeyGeminiAPIKey, EnvGeminiKey)
	_ = v.BindEnv(KeyGeminiModel, EnvGeminiMdl)

	return v
}

// Load reads the optional config file into v and decodes the result.
// An explicit cfgFile must exist; the implicit search is best effort.
func Load(v *viper.Viper, cfgFile string) (Settings, error) {
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return Settings{}, fmt.Errorf("%s: %w", ErrConfigRead, err)
		}
	} else {
		v.SetConfigName(ConfigFileName)
		v.SetConfigType(ConfigFileType)
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(home)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return Settings{}, fmt.Errorf("%s: %w", ErrConfigRead, err)
			}
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("%s: %w", ErrConfigDecode, err)
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

// Validate rejects settings that would make a run fail half-way.
func (s Settings) Validate() error {
	if _, err := time.LoadLocation(s.Location); err != nil {
		return fmt.Errorf("%s: %q: %w", ErrInvalidLocation, s.Location, err)
	}
	if s.ReferenceHour < 0 || s.ReferenceHour >= HoursPerDay {
		return fmt.Errorf("%s: %d", ErrInvalidRefHour, s.ReferenceHour)
	}
	if !slices.Contains(SupportedLanguages, s.Language) {
		return fmt.Errorf("%s: %q", ErrInvalidLanguage, s.Language)
	}
	if s.Server.CheckInterval <= 0 {
		return fmt.Errorf("%s: %s", ErrInvalidInterval, s.Server.CheckInterval)
	}
	return ValidatePort(s.Server.Port)
}

// ValidateEphemeris checks the backend selection. Only commands that compute
// positions need it; reading a written almanac does not.
func (s Settings) ValidateEphemeris() error {
	switch s.Ephemeris.Backend {
	case BackendVSOP87:
		if s.Ephemeris.Path == "" {
			return errors.New(ErrEphemPathEmpty)
		}
	case BackendMean:
	default:
		return fmt.Errorf("%s: %q", ErrInvalidBackend, s.Ephemeris.Backend)
	}
	return nil
}

// TimeZone returns the display and calendar location.
func (s Settings) TimeZone() *time.Location {
	loc, err := time.LoadLocation(s.Location)
	if err != nil {
		return time.UTC
	}
	return loc
}

// ValidatePort checks that port is a number within the TCP range.
func ValidatePort(port string) error {
	if port == "" {
		return errors.New(ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil {
		return errors.New(ErrPortNumber)
	}
	if n < MinPort || n > MaxPort {
		return errors.New(ErrPortRange)
	}
	return nil
}
