package testutil

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/puentehua/centro-admin/internal/auth"
	"github.com/puentehua/centro-admin/internal/database/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB creates an in-memory SQLite database for testing
func SetupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}

	err = db.AutoMigrate(
		&models.Profile{},
		&models.Invitation{},
		&models.AuditLogEntry{},
		&models.ClassOffering{},
		&models.Event{},
		&models.TeamMember{},
		&models.ExamSession{},
		&models.ExamRegistration{},
		&models.Inquiry{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

// CreateTestProfile creates an active staff profile with the given role
func CreateTestProfile(t *testing.T, db *gorm.DB, role string) *models.Profile {
	t.Helper()

	hash, err := auth.HashPassword("Testpassw0rd!")
	if err != nil {
		t.Fatalf("failed to hash password: %v", err)
	}

	profile := &models.Profile{
		Base: models.Base{
			ID: uuid.New(),
		},
		Email:        "test-" + uuid.New().String()[:8] + "@example.com",
		PasswordHash: hash,
		FullName:     "Test User",
		Role:         role,
		IsActive:     true,
	}

	if err := db.Create(profile).Error; err != nil {
		t.Fatalf("failed to create test profile: %v", err)
	}

	return profile
}

// CreateTestInvitation creates a pending invitation
func CreateTestInvitation(t *testing.T, db *gorm.DB, email, role string, invitedBy uuid.UUID, expiresAt time.Time) *models.Invitation {
	t.Helper()

	inv := &models.Invitation{
		Base: models.Base{
			ID: uuid.New(),
		},
		Email:     email,
		Role:      role,
		Token:     "tok-" + uuid.New().String() + uuid.New().String()[:8],
		InvitedBy: invitedBy,
		ExpiresAt: expiresAt,
	}

	if err := db.Create(inv).Error; err != nil {
		t.Fatalf("failed to create test invitation: %v", err)
	}

	return inv
}

// CreateTestJWTService creates a JWT service for testing
func CreateTestJWTService() *auth.JWTService {
	return auth.NewJWTService("test-secret-key-for-testing", 24*time.Hour)
}

// GenerateTestToken generates a valid JWT token for the given profile
func GenerateTestToken(t *testing.T, jwtService *auth.JWTService, profile *models.Profile) string {
	t.Helper()

	token, err := jwtService.GenerateToken(profile.ID, profile.Email)
	if err != nil {
		t.Fatalf("failed to generate test token: %v", err)
	}

	return token
}

// AuthenticatedRequest creates an HTTP request with a bearer token and a
// same-origin header so it passes the CSRF check.
func AuthenticatedRequest(t *testing.T, method, path string, body interface{}, token string) *http.Request {
	t.Helper()

	var reqBody *bytes.Buffer
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("failed to marshal request body: %v", err)
		}
		reqBody = bytes.NewBuffer(jsonData)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req := httptest.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Origin", TestOrigin)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	return req
}

// UnauthenticatedRequest creates an HTTP request without authentication
func UnauthenticatedRequest(t *testing.T, method, path string, body interface{}) *http.Request {
	t.Helper()
	return AuthenticatedRequest(t, method, path, body, "")
}

// TestOrigin is the origin test requests claim; routers under test
// allow-list it.
const TestOrigin = "https://admin.example.org"

// ParseJSONResponse parses the response body into the given struct
func ParseJSONResponse(t *testing.T, rr *httptest.ResponseRecorder, v interface{}) {
	t.Helper()

	if err := json.Unmarshal(rr.Body.Bytes(), v); err != nil {
		t.Fatalf("failed to parse response body: %v. Body: %s", err, rr.Body.String())
	}
}

// CreateTestExamSession creates an exam session with the given capacity
func CreateTestExamSession(t *testing.T, db *gorm.DB, level, seats int) *models.ExamSession {
	t.Helper()

	session := &models.ExamSession{
		Base: models.Base{
			ID: uuid.New(),
		},
		Level:          level,
		ExamDate:       time.Now().Add(30 * 24 * time.Hour),
		Location:       "Main Hall",
		SeatsTotal:     seats,
		SeatsAvailable: seats,
		PriceCents:     4500,
	}

	if err := db.Create(session).Error; err != nil {
		t.Fatalf("failed to create test exam session: %v", err)
	}

	return session
}

// TestSetup holds the common test dependencies
type TestSetup struct {
	DB         *gorm.DB
	JWTService *auth.JWTService
	Owner      *models.Profile
	Admin      *models.Profile
	Officer    *models.Profile
	OwnerToken string
	AdminToken string
	OfficerTok string
}

// NewTestContext creates a complete test setup with DB, one profile per
// role, and tokens for each.
func NewTestContext(t *testing.T) *TestSetup {
	t.Helper()

	db := SetupTestDB(t)
	jwtService := CreateTestJWTService()
	owner := CreateTestProfile(t, db, "owner")
	admin := CreateTestProfile(t, db, "admin")
	officer := CreateTestProfile(t, db, "officer")

	return &TestSetup{
		DB:         db,
		JWTService: jwtService,
		Owner:      owner,
		Admin:      admin,
		Officer:    officer,
		OwnerToken: GenerateTestToken(t, jwtService, owner),
		AdminToken: GenerateTestToken(t, jwtService, admin),
		OfficerTok: GenerateTestToken(t, jwtService, officer),
	}
}

// Cleanup closes the test database
func (ts *TestSetup) Cleanup() {
	if ts.DB != nil {
		sqlDB, err := ts.DB.DB()
		if err == nil {
			sqlDB.Close()
		}
	}
}
