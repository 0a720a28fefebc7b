// test/e2e/e2e_test.go
//
// Full-stack smoke test against real services (Zeebe, PostgreSQL, Redis).
// Gated behind RUN_E2E=1 so the unit suite stays self-contained.
package e2e

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"visa-workers/internal/common/config"
	"visa-workers/internal/common/database"
	"visa-workers/internal/common/logger"
	"visa-workers/internal/visa/application"
	"visa-workers/internal/visa/catalog"
	"visa-workers/internal/visa/eligibility"
	"visa-workers/internal/visa/pricing"

	createapplicationrecord "visa-workers/internal/workers/application/create-application-record"
	sendnotification "visa-workers/internal/workers/application/send-notification"
	validateapplication "visa-workers/internal/workers/application/validate-application"
	classifyeligibility "visa-workers/internal/workers/visa/classify-eligibility"
	composepricing "visa-workers/internal/workers/visa/compose-pricing"
	lookuprequirements "visa-workers/internal/workers/visa/lookup-requirements"
)

var (
	zeebeClient zbc.Client
	zapLog      *zap.Logger
)

func TestMain(m *testing.M) {
	if os.Getenv("RUN_E2E") != "1" {
		fmt.Println("RUN_E2E not set, skipping e2e suite")
		os.Exit(0)
	}

	var err error
	zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         "localhost:26500",
		UsePlaintextConnection: true,
	})
	if err != nil {
		panic(fmt.Sprintf("❌ Failed to connect to Zeebe: %v", err))
	}

	zapLog, _ = zap.NewProduction()

	code := m.Run()

	zeebeClient.Close()
	os.Exit(code)
}

func TestFullE2E(t *testing.T) {
	_, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	t.Log("🚀 Starting FULL E2E Test with real services...")

	// 1. Check all external services are available
	assertAllServicesConnectivity(t, cfg)

	// 2. Create DB tables if needed and insert test data
	createDatabaseTables(t, cfg)

	// 3. Deploy all BPMN files
	deployAllBPMN(t)

	// 4. Run every worker against the live services
	testAllWorkers(t, cfg, zapLog)

	t.Log("✅ ALL TESTS PASSED — Full E2E workflow successful!")
}

func assertAllServicesConnectivity(t *testing.T, cfg *config.Config) {
	t.Log("🔍 Checking service connectivity...")

	// 🔧 FORCE LOCALHOST FOR E2E TESTS
	cfg.Database.Postgres.Host = "localhost"
	cfg.Database.Redis.Address = "localhost:6379"

	// --- PostgreSQL ---
	db, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err, "❌ PostgreSQL connection failed")
	assert.NoError(t, db.Ping(context.Background()), "❌ PostgreSQL ping failed")
	db.Close()
	t.Log("✅ PostgreSQL connected")

	// --- Redis ---
	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err, "❌ Redis client creation failed")
	assert.NoError(t, rdb.Ping(context.Background()), "❌ Redis ping failed")
	rdb.Close()
	t.Log("✅ Redis connected")

	// --- Zeebe ---
	_, err = zeebeClient.NewTopologyCommand().Send(context.Background())
	assert.NoError(t, err, "❌ Zeebe topology request failed")
	t.Log("✅ Zeebe connected")
}

// ==========================
// 2. Database Tables Setup + Test Data
// ==========================
func createDatabaseTables(t *testing.T, cfg *config.Config) {
	t.Log("🔧 Creating database tables and inserting test data...")

	dbClient, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	defer dbClient.Close()

	db := dbClient.GetDB()

	queries := []string{
		`CREATE TABLE IF NOT EXISTS applicants (
			id VARCHAR(255) PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			phone VARCHAR(50),
			nationality VARCHAR(2),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS case_officers (
			id VARCHAR(255) PRIMARY KEY,
			email VARCHAR(255) UNIQUE NOT NULL,
			phone VARCHAR(50),
			destination VARCHAR(100),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS applications (
			id VARCHAR(255) PRIMARY KEY,
			applicant_id VARCHAR(255) NOT NULL,
			destination VARCHAR(100) NOT NULL,
			visa_type VARCHAR(100),
			service_tier VARCHAR(50),
			application_data JSONB,
			quoted_total VARCHAR(50),
			quoted_currency VARCHAR(10),
			status VARCHAR(50),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS audit_log (
			id SERIAL PRIMARY KEY,
			event_type VARCHAR(100),
			resource_type VARCHAR(100),
			resource_id VARCHAR(255),
			details JSONB,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, query := range queries {
		_, err := db.ExecContext(context.Background(), query)
		if err != nil {
			t.Logf("Warning: Failed to create table: %v", err)
		}
	}

	testData := []string{
		`INSERT INTO applicants (id, email, phone, nationality)
		 VALUES ('applicant-e2e-001', 'traveler@example.com', '+33123456789', 'US')
		 ON CONFLICT (id) DO NOTHING`,
		`INSERT INTO case_officers (id, email, phone, destination)
		 VALUES ('officer-e2e-001', 'officer@visaassist.example', '', 'schengen')
		 ON CONFLICT (id) DO NOTHING`,
	}

	for _, query := range testData {
		_, err := db.ExecContext(context.Background(), query)
		if err != nil {
			t.Logf("Warning: Failed to insert test data: %v", err)
		}
	}

	t.Log("✅ Database tables created/verified with test data")
}

// ==========================
// 3. Deploy All BPMN Files
// ==========================
func deployAllBPMN(t *testing.T) {
	t.Log("🏗️ Deploying BPMN files...")

	possiblePaths := []string{
		"bpmn",
		"../bpmn",
		"../../bpmn",
		"./bpmn",
	}

	var bpmnDir string
	var files []os.DirEntry

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			entries, err := os.ReadDir(path)
			if err == nil {
				bpmnDir = path
				files = entries
				t.Logf("📁 Found BPMN directory: %s", bpmnDir)
				break
			}
		}
	}

	if bpmnDir == "" {
		t.Log("⚠️ BPMN directory not found in any expected location, skipping deployment")
		return
	}

	bpmnCount := 0
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(f.Name()), ".bpmn") {
			continue
		}

		path := fmt.Sprintf("%s/%s", bpmnDir, f.Name())
		_, err := zeebeClient.NewDeployResourceCommand().AddResourceFile(path).Send(context.Background())
		if err != nil {
			t.Logf("⚠️ Failed to deploy BPMN %s: %v", f.Name(), err)
		} else {
			t.Logf("✅ Deployed: %s", f.Name())
			bpmnCount++
		}
	}

	if bpmnCount == 0 {
		t.Log("ℹ️ No BPMN files were successfully deployed")
	}
}

// ==========================
// 4. Worker Smoke Tests
// ==========================
func testAllWorkers(t *testing.T, cfg *config.Config, log *zap.Logger) {
	t.Log("🧪 Testing all workers with real execution...")

	dbClient, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	defer dbClient.Close()

	db := dbClient.GetDB()

	rdbClient, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err)
	defer rdbClient.Close()

	testCases := []struct {
		name   string
		testFn func(*testing.T, *zap.Logger, *sql.DB, *database.RedisClient)
	}{
		{"classify-eligibility", testClassifyEligibility},
		{"lookup-requirements", testLookupRequirements},
		{"compose-pricing", testComposePricing},
		{"validate-application", testValidateApplication},
		{"create-application-record", testCreateApplicationRecord},
		{"send-notification", testSendNotification},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.testFn(t, log, db, rdbClient)
		})
	}
}

func testClassifyEligibility(t *testing.T, log *zap.Logger, db *sql.DB, rdb *database.RedisClient) {
	handler := classifyeligibility.NewHandler(
		classifyeligibility.LoadConfig(),
		eligibility.NewClassifier(eligibility.DefaultTables()),
		logger.NewZapAdapter(log),
	)

	output, err := handler.Execute(context.Background(), &classifyeligibility.Input{
		Nationality:         "IN",
		Destination:         "schengen",
		Purpose:             "tourism",
		PlannedDurationDays: 14,
	})
	require.NoError(t, err)
	assert.Equal(t, string(eligibility.OutcomeVisaRequired), output.Outcome)
	assert.NotEmpty(t, output.VisaType)
}

func testLookupRequirements(t *testing.T, log *zap.Logger, db *sql.DB, rdb *database.RedisClient) {
	handler := lookuprequirements.NewHandler(&lookuprequirements.Config{
		Timeout:  10 * time.Second,
		CacheTTL: time.Minute,
	}, catalog.Catalogs(), rdb, logger.NewZapAdapter(log))

	// First lookup populates the cache, second must hit it.
	first, err := handler.Execute(context.Background(), &lookuprequirements.Input{
		Destination:  "schengen",
		VisaCategory: "Work",
	})
	require.NoError(t, err)

	second, err := handler.Execute(context.Background(), &lookuprequirements.Input{
		Destination:  "schengen",
		VisaCategory: "Work",
	})
	require.NoError(t, err)
	assert.True(t, second.FromCache)
	assert.Equal(t, first.Requirements, second.Requirements)
}

func testComposePricing(t *testing.T, log *zap.Logger, db *sql.DB, rdb *database.RedisClient) {
	table, err := pricing.DefaultTable()
	require.NoError(t, err)

	handler := composepricing.NewHandler(composepricing.LoadConfig(), table, logger.NewZapAdapter(log))

	output, err := handler.Execute(context.Background(), &composepricing.Input{
		VisaType:    "short_stay_uniform",
		ServiceTier: "express",
	})
	require.NoError(t, err)
	assert.Equal(t, "EUR", output.Currency)
	assert.True(t, output.ConsularFee.Add(output.CenterFee).Add(output.ServiceFee).Equal(output.Total))
}

func testValidateApplication(t *testing.T, log *zap.Logger, db *sql.DB, rdb *database.RedisClient) {
	handler := validateapplication.NewHandler(
		validateapplication.LoadConfig(),
		application.NewValidator(),
		logger.NewZapAdapter(log),
	)

	departure := time.Now().AddDate(0, 2, 0)
	payload := &application.Payload{
		Nationality:    "US",
		CityOfBirth:    "Chicago",
		CountryOfBirth: "US",
		Passport: application.Passport{
			Number:     "ab1234567",
			IssueDate:  time.Now().AddDate(-2, 0, 0).Format("2006-01-02"),
			ExpiryDate: time.Now().AddDate(5, 0, 0).Format("2006-01-02"),
		},
		DepartureDate: departure.Format("2006-01-02"),
		ReturnDate:    departure.AddDate(0, 0, 14).Format("2006-01-02"),
		Employment: &application.Employment{
			Status: application.StatusEmployed,
			Employer: &application.EmployerDetails{
				Name:    "Acme Corp",
				Address: "1 Main St, Chicago",
				Phone:   "+13125550100",
			},
		},
	}

	output, err := handler.Execute(context.Background(), &validateapplication.Input{Application: payload})
	require.NoError(t, err)
	assert.True(t, output.IsValid, "validation errors: %v", output.ValidationErrors)
	require.NotNil(t, output.ValidatedData)
	assert.Equal(t, "AB1234567", output.ValidatedData.Passport.Number)
}

func testCreateApplicationRecord(t *testing.T, log *zap.Logger, db *sql.DB, rdb *database.RedisClient) {
	handler := createapplicationrecord.NewHandler(&createapplicationrecord.Config{
		Timeout: 30 * time.Second,
	}, db, logger.NewZapAdapter(log))

	uniqueID := fmt.Sprintf("%d", time.Now().UnixNano())
	input := &createapplicationrecord.Input{
		ApplicantID:    "e2e-applicant-" + uniqueID,
		Destination:    "schengen",
		VisaType:       "short_stay_uniform",
		ServiceTier:    "standard",
		ValidatedData:  map[string]interface{}{"nationality": "US"},
		QuotedTotal:    "134.50",
		QuotedCurrency: "EUR",
	}

	result, err := handler.Execute(context.Background(), input)
	require.NoError(t, err, "Should create application record successfully")
	assert.NotEmpty(t, result.ApplicationID, "Should generate application ID")
	assert.Equal(t, "submitted", result.ApplicationStatus)

	// The open-application rule must reject an immediate resubmission.
	_, err = handler.Execute(context.Background(), input)
	assert.ErrorIs(t, err, createapplicationrecord.ErrDuplicateApplication)
}

func testSendNotification(t *testing.T, log *zap.Logger, db *sql.DB, rdb *database.RedisClient) {
	// Channels disabled: exercises the recipient lookup and template paths
	// without touching AWS.
	handler, err := sendnotification.NewHandler(&sendnotification.Config{
		EmailEnabled: false,
		SMSEnabled:   false,
		AWSRegion:    "eu-west-1",
		Timeout:      30 * time.Second,
	}, db, logger.NewZapAdapter(log))
	require.NoError(t, err)

	output, err := handler.Execute(context.Background(), &sendnotification.Input{
		RecipientID:      "applicant-e2e-001",
		RecipientType:    sendnotification.RecipientTypeApplicant,
		NotificationType: sendnotification.TypeApplicationSubmitted,
		ApplicationID:    "app-e2e-001",
		ServiceTier:      "standard",
	})
	require.NoError(t, err)
	assert.Equal(t, sendnotification.StatusDisabled, output.Status)
}

// ==========================
// Benchmark Tests
// ==========================
func BenchmarkHandler_ClassifyEligibility(b *testing.B) {
	handler := classifyeligibility.NewHandler(
		classifyeligibility.LoadConfig(),
		eligibility.NewClassifier(eligibility.DefaultTables()),
		logger.NewStructured("info", "json"),
	)

	input := &classifyeligibility.Input{
		Nationality:         "IN",
		Destination:         "schengen",
		Purpose:             "tourism",
		PlannedDurationDays: 14,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}

func BenchmarkHandler_ComposePricing(b *testing.B) {
	table, err := pricing.DefaultTable()
	if err != nil {
		b.Fatal(err)
	}
	handler := composepricing.NewHandler(composepricing.LoadConfig(), table, logger.NewStructured("info", "json"))

	input := &composepricing.Input{
		VisaType:    "short_stay_uniform",
		ServiceTier: "premium",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}

func BenchmarkHandler_LookupRequirements(b *testing.B) {
	cfg, _ := config.Load()
	rdbClient, _ := database.NewRedis(cfg.Database.Redis)
	defer rdbClient.Close()

	handler := lookuprequirements.NewHandler(&lookuprequirements.Config{
		Timeout:  10 * time.Second,
		CacheTTL: time.Minute,
	}, catalog.Catalogs(), rdbClient, logger.NewStructured("info", "json"))

	input := &lookuprequirements.Input{
		Destination:  "united-kingdom",
		VisaCategory: "Study",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}
