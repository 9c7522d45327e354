package validation

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"user@example.com",
		"first.last@sub.example.org",
		"a+tag@example.cn",
	}
	invalid := []string{
		"",
		"plain",
		"@example.com",
		"user@",
		"user@example",
		strings.Repeat("a", 250) + "@example.com",
	}

	for _, e := range valid {
		assert.True(t, IsValidEmail(e), e)
	}
	for _, e := range invalid {
		assert.False(t, IsValidEmail(e), e)
	}
}

func TestIsValidUUID(t *testing.T) {
	assert.True(t, IsValidUUID("a2f1c8d0-1234-4abc-9def-0123456789ab"))
	assert.False(t, IsValidUUID("not-a-uuid"))
	assert.False(t, IsValidUUID(""))
	assert.False(t, IsValidUUID("a2f1c8d0-1234-4abc-9def-0123456789abcd"))
}

func TestIsValidPhone(t *testing.T) {
	valid := []string{"+34 612 345 678", "612345678", "91-234-5678"}
	invalid := []string{"", "abc", "+", "12345", strings.Repeat("9", 25)}

	for _, p := range valid {
		assert.True(t, IsValidPhone(p), p)
	}
	for _, p := range invalid {
		assert.False(t, IsValidPhone(p), p)
	}
}

func TestIsValidToken(t *testing.T) {
	assert.True(t, IsValidToken("pRzV4nFh3Kk9mX2sT7wQ1yB8dC5eG0aJ"))
	assert.True(t, IsValidToken("abc_DEF-123456789012"))
	assert.False(t, IsValidToken("short"))
	assert.False(t, IsValidToken("has spaces in token here"))
	assert.False(t, IsValidToken("bad/chars+here=========="))
	assert.False(t, IsValidToken(strings.Repeat("a", 200)))
}

func TestIsValidLocale(t *testing.T) {
	for _, l := range []string{"en", "es", "zh"} {
		assert.True(t, IsValidLocale(l))
	}
	for _, l := range []string{"", "fr", "EN", "zh-CN"} {
		assert.False(t, IsValidLocale(l))
	}
}

func TestStatusEnums(t *testing.T) {
	assert.True(t, IsValidConsultationStatus("new"))
	assert.True(t, IsValidConsultationStatus("contacted"))
	assert.False(t, IsValidConsultationStatus("archived"))

	assert.True(t, IsValidRegistrationStatus("confirmed"))
	assert.False(t, IsValidRegistrationStatus("pending"))

	assert.True(t, IsValidAuditAction("INSERT"))
	assert.False(t, IsValidAuditAction("insert"))
	assert.False(t, IsValidAuditAction("TRUNCATE"))

	assert.True(t, IsValidAuditTable("invitations"))
	assert.False(t, IsValidAuditTable("pg_catalog"))
}

func TestIsFutureDate(t *testing.T) {
	assert.True(t, IsFutureDate(time.Now().Add(time.Hour)))
	assert.False(t, IsFutureDate(time.Now().Add(-time.Second)))
	assert.False(t, IsFutureDate(time.Time{}))
}

func TestSeatAndLevelBounds(t *testing.T) {
	assert.True(t, IsValidSeatCount(1))
	assert.True(t, IsValidSeatCount(1000))
	assert.False(t, IsValidSeatCount(0))
	assert.False(t, IsValidSeatCount(1001))
	assert.False(t, IsValidSeatCount(-5))

	assert.True(t, IsValidHSKLevel(1))
	assert.True(t, IsValidHSKLevel(6))
	assert.False(t, IsValidHSKLevel(0))
	assert.False(t, IsValidHSKLevel(7))
}

func TestIsValidPassword(t *testing.T) {
	tests := []struct {
		password string
		ok       bool
	}{
		{"Str0ng!Pass", true},
		{"short1!", false},
		{"alllowercase1!", false},
		{"ALLUPPERCASE1!", false},
		{"NoNumbers!!", false},
		{"NoSpecial123", false},
		{strings.Repeat("Aa1!", 20), false}, // over 72 bytes
	}

	for _, tt := range tests {
		ok, _ := IsValidPassword(tt.password)
		assert.Equal(t, tt.ok, ok, tt.password)
	}
}

func TestSanitizeString(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain text untouched", "hello world", "hello world"},
		{"script removed with content", `before<script>alert("x")</script>after`, "beforeafter"},
		{"tags stripped", "<b>bold</b> and <i>italic</i>", "bold and italic"},
		{"img with handler", `<img src=x onerror=alert(1)>text`, "text"},
		{"null bytes removed", "a\x00b", "ab"},
		{"control chars removed", "a\x01b\nc", "ab\nc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeString(tt.in)
			if tt.name == "control chars removed" {
				// newline survives, \x01 does not
				assert.Equal(t, "ab\nc", got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestSanitizeStringIdempotent(t *testing.T) {
	inputs := []string{
		"plain",
		`<script>bad()</script>hello`,
		"<div><p>nested</p></div>",
		"mixed <b>tags</b> and \x00 bytes",
	}

	for _, in := range inputs {
		once := SanitizeString(in)
		twice := SanitizeString(once)
		assert.Equal(t, once, twice, "sanitizing %q twice must be a no-op", in)
	}
}

func TestSanitizeStoreError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		category string
	}{
		{"nil passthrough", nil, ""},
		{"not found", gorm.ErrRecordNotFound, ErrCategoryNotFound},
		{"duplicate key", gorm.ErrDuplicatedKey, ErrCategoryDuplicate},
		{"foreign key", gorm.ErrForeignKeyViolated, ErrCategoryReference},
		{"check constraint", gorm.ErrCheckConstraintViolated, ErrCategoryConstraint},
		{"raw pg duplicate", errors.New(`ERROR: duplicate key value violates unique constraint "profiles_email_key" (SQLSTATE 23505)`), ErrCategoryDuplicate},
		{"raw pg permission", errors.New("ERROR: permission denied for table profiles (SQLSTATE 42501)"), ErrCategoryPermission},
		{"unknown collapses to internal", errors.New("dial tcp 10.0.0.3:5432: connect: connection refused"), ErrCategoryInternal},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SanitizeStoreError(tt.err)
			if tt.err == nil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.category, got.Category)
			// no internal detail leaks
			assert.NotContains(t, got.Message, "SQLSTATE")
			assert.NotContains(t, got.Message, "profiles_email_key")
			assert.NotContains(t, got.Message, "10.0.0.3")
		})
	}
}
