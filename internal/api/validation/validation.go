package validation

import (
	"regexp"
	"time"
	"unicode"
)

var (
	// EmailRegex validates email format
	emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

	// UUIDRegex validates UUID format
	uuidRegex = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{4}-[0-9a-fA-F]{12}$`)

	// PhoneRegex validates phone numbers: digits, spaces, hyphens,
	// optional leading country code
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,19}$`)

	// TokenRegex validates opaque invitation tokens: url-safe base64
	// alphabet, bounded length
	tokenRegex = regexp.MustCompile(`^[A-Za-z0-9\-_]{16,128}$`)
)

// Field length ceilings enforced before any write.
const (
	MaxNameLength        = 120
	MaxTitleLength       = 200
	MaxBioLength         = 2000
	MaxDescriptionLength = 5000
	MaxMessageLength     = 5000
	MaxPhoneLength       = 20
	MaxEmailLength       = 254
)

// Slot-count bounds for exam sessions.
const (
	MinSeats = 1
	MaxSeats = 1000
)

// supportedLocales is the closed set of site languages.
var supportedLocales = map[string]bool{
	"en": true,
	"es": true,
	"zh": true,
}

var consultationStatuses = map[string]bool{
	"new":       true,
	"contacted": true,
	"closed":    true,
}

var registrationStatuses = map[string]bool{
	"registered": true,
	"confirmed":  true,
	"cancelled":  true,
}

var auditActions = map[string]bool{
	"INSERT": true,
	"UPDATE": true,
	"DELETE": true,
}

var auditTables = map[string]bool{
	"profiles":           true,
	"invitations":        true,
	"classes":            true,
	"events":             true,
	"team_members":       true,
	"exam_sessions":      true,
	"exam_registrations": true,
	"inquiries":          true,
}

// IsValidEmail checks if the string is a valid email format
func IsValidEmail(email string) bool {
	if len(email) > MaxEmailLength {
		return false
	}
	return emailRegex.MatchString(email)
}

// IsValidUUID checks if the string is a valid UUID format
func IsValidUUID(id string) bool {
	return uuidRegex.MatchString(id)
}

// IsValidPhone checks phone number shape and length
func IsValidPhone(phone string) bool {
	if len(phone) > MaxPhoneLength {
		return false
	}
	return phoneRegex.MatchString(phone)
}

// IsValidToken checks the shape of an opaque invitation token
func IsValidToken(token string) bool {
	return tokenRegex.MatchString(token)
}

// IsValidLocale checks membership in the supported locale set
func IsValidLocale(locale string) bool {
	return supportedLocales[locale]
}

// IsValidConsultationStatus checks inquiry status membership
func IsValidConsultationStatus(status string) bool {
	return consultationStatuses[status]
}

// IsValidRegistrationStatus checks HSK registration status membership
func IsValidRegistrationStatus(status string) bool {
	return registrationStatuses[status]
}

// IsValidAuditAction checks audit action membership
func IsValidAuditAction(action string) bool {
	return auditActions[action]
}

// IsValidAuditTable checks audit table membership
func IsValidAuditTable(table string) bool {
	return auditTables[table]
}

// IsFutureDate reports whether t is strictly after now. Exam dates must
// pass this check.
func IsFutureDate(t time.Time) bool {
	return t.After(time.Now())
}

// IsValidSeatCount checks exam slot-count bounds
func IsValidSeatCount(seats int) bool {
	return seats >= MinSeats && seats <= MaxSeats
}

// IsValidHSKLevel checks the HSK level range
func IsValidHSKLevel(level int) bool {
	return level >= 1 && level <= 6
}

// IsValidPassword checks password strength
func IsValidPassword(password string) (bool, string) {
	if len(password) < 8 {
		return false, "Password must be at least 8 characters"
	}
	// bcrypt truncates beyond 72 bytes
	if len(password) > 72 {
		return false, "Password must be at most 72 characters"
	}

	var (
		hasUpper   bool
		hasLower   bool
		hasNumber  bool
		hasSpecial bool
	)

	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsNumber(char):
			hasNumber = true
		case unicode.IsPunct(char) || unicode.IsSymbol(char):
			hasSpecial = true
		}
	}

	if !hasUpper {
		return false, "Password must contain at least one uppercase letter"
	}
	if !hasLower {
		return false, "Password must contain at least one lowercase letter"
	}
	if !hasNumber {
		return false, "Password must contain at least one number"
	}
	if !hasSpecial {
		return false, "Password must contain at least one special character"
	}

	return true, ""
}
