package controllers_test

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"coursegen/config"
	"coursegen/controllers"
	"coursegen/generator"
	"coursegen/models"
	"coursegen/routes"
)

const (
	testJWTSecret  = "test-secret"
	testWebhookKey = "0123456789abcdef0123456789abcdef"
)

type stubGenerator struct {
	doc *generator.CourseDocument
	err error
}

func (s *stubGenerator) GenerateCourse(ctx context.Context, input generator.Input) (*generator.CourseDocument, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.doc, nil
}

func testConfig() *config.Config {
	return &config.Config{
		AuthJWTSecret:        testJWTSecret,
		WebhookSigningSecret: "whsec_" + base64.StdEncoding.EncodeToString([]byte(testWebhookKey)),
	}
}

func setupApp(t *testing.T, gen controllers.CourseGenerator) (*fiber.App, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.Course{},
		&models.Progress{},
	))

	app := fiber.New()
	routes.SetupRoutes(app, db, testConfig(), gen, zap.NewNop())
	return app, db
}

func authToken(t *testing.T, userID string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	require.NoError(t, err)
	return "Bearer " + signed
}

func jsonRequest(t *testing.T, method, target string, body interface{}, token string) *http.Request {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	return req
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	var result map[string]interface{}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&result))
	return result
}

func signedWebhookRequest(t *testing.T, event interface{}) *http.Request {
	t.Helper()
	payload, err := json.Marshal(event)
	require.NoError(t, err)

	msgID := "msg_test"
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)

	mac := hmac.New(sha256.New, []byte(testWebhookKey))
	fmt.Fprintf(mac, "%s.%s.", msgID, timestamp)
	mac.Write(payload)
	signature := "v1," + base64.StdEncoding.EncodeToString(mac.Sum(nil))

	req := httptest.NewRequest(http.MethodPost, "/api/webhooks/user", bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("svix-id", msgID)
	req.Header.Set("svix-timestamp", timestamp)
	req.Header.Set("svix-signature", signature)
	return req
}

func sampleDocument() *generator.CourseDocument {
	return &generator.CourseDocument{
		CourseID:              "intro-to-go",
		Title:                 "Intro to Go",
		Subtitle:              "A short course",
		Category:              "Programming",
		Level:                 models.LevelBeginner,
		DurationWeeks:         2,
		EstimatedTotalMinutes: 180,
		ImageRequired:         true,
		Description:           "desc",
		LearningOutcomes:      []string{"write Go"},
		Chapters: models.ChapterList{
			{Index: 0, Title: "Basics", ContentText: "text"},
			{Index: 1, Title: "Tooling", ContentText: "text"},
			{Index: 2, Title: "Testing", ContentText: "text"},
		},
		Meta: generator.Meta{
			CreatedByModelVersion: "gemini-2.5-flash",
			PromptUsed:            "Go basics",
			Constraints:           "3 chapters",
		},
	}
}
