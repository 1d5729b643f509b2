package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/gofiber/fiber/v2"
	"github.com/maccam68/caredesk/internal/database"
	"github.com/maccam68/caredesk/internal/handlers"
	"github.com/maccam68/caredesk/internal/middleware"
	"github.com/maccam68/caredesk/internal/models"
	"github.com/maccam68/caredesk/internal/services"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB creates an in-memory SQLite database for testing
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("Failed to create test database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate test database: %v", err)
	}
	return db
}

// TestLoginEndpoint tests POST /api/auth/login
func TestLoginEndpoint(t *testing.T) {
	db := setupTestDB(t)
	if err := database.Seed(db); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	app := fiber.New()
	handler := &handlers.AuthHandler{DB: db}
	app.Post("/api/auth/login", handler.Login)

	body, _ := json.Marshal(map[string]string{"username": "Maccam68", "pin": "13121"})
	req := httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected status 200, got %d", resp.StatusCode)
	}

	var result handlers.LoginResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if result.Token == "" {
		t.Error("Expected a session token")
	}
	if result.User.Username != "Maccam68" {
		t.Errorf("Expected master user, got %q", result.User.Username)
	}

	// The PIN hash must not appear in the response
	raw, _ := json.Marshal(result.User)
	if bytes.Contains(raw, []byte("pin")) {
		t.Error("User payload must not carry the pin")
	}

	// Wrong pin is a 401
	body, _ = json.Marshal(map[string]string{"username": "Maccam68", "pin": "00000"})
	req = httptest.NewRequest("POST", "/api/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Errorf("Expected status 401, got %d", resp.StatusCode)
	}
}

// TestAuthMiddleware tests session enforcement and the role gate
func TestAuthMiddleware(t *testing.T) {
	db := setupTestDB(t)
	if err := database.Seed(db); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	if _, err := services.CreateUser(db, services.UserInput{
		Username: "viewer", Pin: "11111", Role: models.RoleUser,
	}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}

	app := fiber.New()
	usersHandler := &handlers.UsersHandler{DB: db}
	app.Get("/api/users", middleware.RequireAdmin(db), usersHandler.List)

	// No token
	req := httptest.NewRequest("GET", "/api/users", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 401 {
		t.Errorf("Expected 401 without a session, got %d", resp.StatusCode)
	}

	// Non-admin token
	_, userSession, err := services.Login(db, "viewer", "11111")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	req = httptest.NewRequest("GET", "/api/users", nil)
	req.Header.Set("X-Session-Token", userSession.Token)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 403 {
		t.Errorf("Expected 403 for non-admin, got %d", resp.StatusCode)
	}

	// Admin token via header
	_, adminSession, err := services.Login(db, "Maccam68", "13121")
	if err != nil {
		t.Fatalf("Login failed: %v", err)
	}
	req = httptest.NewRequest("GET", "/api/users", nil)
	req.Header.Set("X-Session-Token", adminSession.Token)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected 200 for admin, got %d", resp.StatusCode)
	}

	// Admin token via cookie
	req = httptest.NewRequest("GET", "/api/users", nil)
	req.Header.Set("Cookie", middleware.SessionCookie+"="+adminSession.Token)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Errorf("Expected 200 for admin cookie, got %d", resp.StatusCode)
	}
}

// TestStaffEndpoints tests staff CRUD over HTTP
func TestStaffEndpoints(t *testing.T) {
	db := setupTestDB(t)

	app := fiber.New()
	handler := &handlers.StaffHandler{DB: db}
	app.Get("/api/staff", handler.List)
	app.Get("/api/staff/:id", handler.Get)
	app.Post("/api/staff", handler.Create)
	app.Delete("/api/staff/:id", handler.Delete)

	// Create
	body, _ := json.Marshal(models.StaffMember{Name: "Alex Doe", Role: "Support Worker"})
	req := httptest.NewRequest("POST", "/api/staff", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected 200 on create, got %d", resp.StatusCode)
	}

	// List
	req = httptest.NewRequest("GET", "/api/staff", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	var staff []models.StaffMember
	if err := json.NewDecoder(resp.Body).Decode(&staff); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if len(staff) != 1 || staff[0].Status != models.StaffActive {
		t.Errorf("Expected one active staff member, got %+v", staff)
	}

	// Get missing id
	req = httptest.NewRequest("GET", "/api/staff/999", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 404 {
		t.Errorf("Expected 404, got %d", resp.StatusCode)
	}

	// Bad id parameter
	req = httptest.NewRequest("GET", "/api/staff/abc", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected 400 for bad id, got %d", resp.StatusCode)
	}
}

// TestAllocationConflictEndpoint tests the 409 transition envelope
func TestAllocationConflictEndpoint(t *testing.T) {
	db := setupTestDB(t)

	module, err := services.CreateModule(db, models.TrainingModule{Title: "Safeguarding", Category: "Mandatory"})
	if err != nil {
		t.Fatalf("CreateModule failed: %v", err)
	}

	app := fiber.New()
	handler := &handlers.TrainingHandler{DB: db}
	app.Post("/api/training/allocations", handler.SaveAllocation)

	post := func(status models.AllocationStatus) int {
		body, _ := json.Marshal(models.TrainingAllocation{StaffID: 1, ModuleID: module.ID, Status: status})
		req := httptest.NewRequest("POST", "/api/training/allocations", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		resp, err := app.Test(req)
		if err != nil {
			t.Fatalf("Failed to execute request: %v", err)
		}
		return resp.StatusCode
	}

	if code := post(models.AllocationCompleted); code != 200 {
		t.Fatalf("Expected 200, got %d", code)
	}
	if code := post(models.AllocationNotStarted); code != 409 {
		t.Errorf("Expected 409 for backward transition, got %d", code)
	}
}

// TestAllocationBatchSave tests the one-or-many allocation body with
// string ids
func TestAllocationBatchSave(t *testing.T) {
	db := setupTestDB(t)

	module, err := services.CreateModule(db, models.TrainingModule{Title: "Safeguarding", Category: "Mandatory"})
	if err != nil {
		t.Fatalf("CreateModule failed: %v", err)
	}

	app := fiber.New()
	handler := &handlers.TrainingHandler{DB: db}
	app.Post("/api/training/allocations", handler.SaveAllocation)
	app.Get("/api/training/allocations", handler.ListAllocations)

	// Array body, ids as strings
	body := []byte(`[
		{"staffId":"1","moduleId":"1","status":"not_started"},
		{"staffId":2,"moduleId":1,"status":"completed","completionDate":"2026-08-01"}
	]`)
	req := httptest.NewRequest("POST", "/api/training/allocations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected 200 for batch save, got %d", resp.StatusCode)
	}

	allocations, err := services.ListAllocations(db, module.ID, 0)
	if err != nil {
		t.Fatalf("ListAllocations failed: %v", err)
	}
	if len(allocations) != 2 {
		t.Errorf("Expected 2 allocations, got %d", len(allocations))
	}

	// Empty body is a 400
	req = httptest.NewRequest("POST", "/api/training/allocations", bytes.NewReader([]byte(`[]`)))
	req.Header.Set("Content-Type", "application/json")
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected 400 for empty batch, got %d", resp.StatusCode)
	}
}

// TestMFHReturnEndpoint tests POST /api/mfh/:id/return
func TestMFHReturnEndpoint(t *testing.T) {
	db := setupTestDB(t)

	report, err := services.CreateMFHReport(db, models.MFHReport{
		Name: "Jordan", Age: 15, LastSeen: "2026-08-20T19:30", RiskLevel: models.RiskHigh,
	})
	if err != nil {
		t.Fatalf("CreateMFHReport failed: %v", err)
	}

	app := fiber.New()
	handler := &handlers.MFHHandler{DB: db}
	app.Post("/api/mfh/:id/return", handler.MarkReturned)

	body, _ := json.Marshal(services.ReturnDetails{
		ReturnDate: "2026-08-21T02:15",
		FoundBy:    "Night staff",
	})
	req := httptest.NewRequest("POST", "/api/mfh/1/return", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	got, err := services.GetMFHReport(db, report.ID)
	if err != nil {
		t.Fatalf("GetMFHReport failed: %v", err)
	}
	if got.Status != models.MFHResolved || got.FoundBy != "Night staff" {
		t.Errorf("Expected resolved report with return details, got %+v", got)
	}
}

// TestSettingsExportEndpoint tests the attachment headers
func TestSettingsExportEndpoint(t *testing.T) {
	db := setupTestDB(t)

	app := fiber.New()
	handler := &handlers.SettingsHandler{DB: db}
	app.Get("/api/settings/export", handler.Export)

	req := httptest.NewRequest("GET", "/api/settings/export", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}

	disposition := resp.Header.Get("Content-Disposition")
	if disposition == "" || !bytes.Contains([]byte(disposition), []byte("settings-backup-")) {
		t.Errorf("Expected dated attachment header, got %q", disposition)
	}

	var settings models.Settings
	if err := json.NewDecoder(resp.Body).Decode(&settings); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if settings.Security.SessionTimeout != 30 {
		t.Errorf("Expected default settings in export, got %+v", settings.Security)
	}
}

// TestReportCSVEndpoint tests the CSV download headers and body
func TestReportCSVEndpoint(t *testing.T) {
	db := setupTestDB(t)

	module, _ := services.CreateModule(db, models.TrainingModule{Title: "Safeguarding", Category: "Mandatory"})
	staff, _ := services.CreateStaff(db, models.StaffMember{Name: "Alex Doe"})
	services.SaveAllocation(db, models.TrainingAllocation{
		StaffID: staff.ID, ModuleID: module.ID, Status: models.AllocationCompleted, CompletionDate: "2026-08-01",
	})

	app := fiber.New()
	handler := &handlers.ReportsHandler{DB: db}
	app.Get("/api/reports/training/:type/csv", handler.TrainingCSV)

	req := httptest.NewRequest("GET", "/api/reports/training/staff-training/csv", nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("Expected 200, got %d", resp.StatusCode)
	}
	if ct := resp.Header.Get("Content-Type"); ct != "text/csv; charset=utf-8" {
		t.Errorf("Expected CSV content type, got %q", ct)
	}
	disposition := resp.Header.Get("Content-Disposition")
	if !bytes.Contains([]byte(disposition), []byte("training-report-staff-training-")) {
		t.Errorf("Expected dated report filename, got %q", disposition)
	}

	// Unknown type is a 400
	req = httptest.NewRequest("GET", "/api/reports/training/weekly-digest/csv", nil)
	resp, err = app.Test(req)
	if err != nil {
		t.Fatalf("Failed to execute request: %v", err)
	}
	if resp.StatusCode != 400 {
		t.Errorf("Expected 400 for unknown type, got %d", resp.StatusCode)
	}
}
