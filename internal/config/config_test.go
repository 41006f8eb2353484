package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-lunar/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"KeyringService", config.KeyringService},
		{"KeyringUser", config.KeyringUser},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"ICalDomain", config.ICalDomain},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

// TestUserAgent_Format ensures the UA string follows the standard format.
func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-Lunar/"), "UserAgent must start with AppName/")
}

// TestDefaults_Sanity checks that default values make sense logically.
func TestDefaults_Sanity(t *testing.T) {
	assert.Equal(t, 12, config.DefaultReferenceHour)
	assert.Equal(t, 3, config.AdviceCount)
	assert.Contains(t, config.SupportedLanguages, config.DefaultLanguage)
	assert.Equal(t, config.CategoryGeneral, config.Categories[0], "general is always shown first")
	assert.Nil(t, config.ValidatePort(config.DefaultPort))
}

// TestSearchPrecision ensures the void-of-course search constants nest.
func TestSearchPrecision(t *testing.T) {
	t.Parallel()

	assert.Less(t, config.VoidPrecision, config.VoidScanStep)
	assert.Less(t, config.VoidScanStep, config.VoidHorizon)
	assert.Equal(t, 7*24*time.Hour, config.VoidHorizon)
	assert.InDelta(t, 29.53, config.SynodicMonthDays, 0.01)
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")
}

func TestStubVCalendar(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.StubVCalendar, "BEGIN:VCALENDAR\r\n"))
	assert.True(t, strings.HasSuffix(config.StubVCalendar, "END:VCALENDAR\r\n"))
	assert.Contains(t, config.StubVCalendar, config.ICalProdid)
}
