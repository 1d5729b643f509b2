package database_test

import (
	"context"
	"testing"
	"time"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/maccam68/caredesk/internal/config"
	"github.com/maccam68/caredesk/internal/database"
	"github.com/maccam68/caredesk/internal/models"
	"github.com/maccam68/caredesk/internal/services"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// TestMariaDBIntegration runs the connect/migrate/seed path against a real
// MariaDB container. Use -short to skip when Docker is unavailable.
func TestMariaDBIntegration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping container-backed integration test in short mode")
	}

	ctx := context.Background()

	tcpPort, err := nat.NewPort("tcp", "3306")
	if err != nil {
		t.Fatalf("Failed to create DB port: %v", err)
	}

	dbContainer, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "mariadb:11",
			ExposedPorts: []string{string(tcpPort)},
			Env: map[string]string{
				"MARIADB_ROOT_PASSWORD": "testroot",
				"MARIADB_DATABASE":      "caredesk_test",
				"MARIADB_USER":          "caredesk",
				"MARIADB_PASSWORD":      "caredesk",
			},
			WaitingFor: wait.ForListeningPort(tcpPort).WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		t.Fatalf("Failed to start MariaDB: %v", err)
	}
	defer func() {
		if err := dbContainer.Terminate(ctx); err != nil {
			t.Logf("Failed to terminate MariaDB: %v", err)
		}
	}()

	host, err := dbContainer.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get container host: %v", err)
	}
	mappedPort, err := dbContainer.MappedPort(ctx, tcpPort)
	if err != nil {
		t.Fatalf("Failed to get mapped port: %v", err)
	}

	cfg := &config.Config{
		DBType:            "mariadb",
		DBHost:            host,
		DBPort:            mappedPort.Port(),
		DBDatabase:        "caredesk_test",
		DBUser:            "caredesk",
		DBPassword:        "caredesk",
		DBConnectionLimit: 5,
	}

	db, err := database.Connect(cfg)
	if err != nil {
		t.Fatalf("Failed to connect: %v", err)
	}
	defer database.Close(db)

	if err := database.AutoMigrate(db); err != nil {
		t.Fatalf("Failed to migrate: %v", err)
	}
	if err := database.Seed(db); err != nil {
		t.Fatalf("Failed to seed: %v", err)
	}
	// Seeding again must be a no-op
	if err := database.Seed(db); err != nil {
		t.Fatalf("Second seed failed: %v", err)
	}
	var userCount int64
	db.Model(&models.User{}).Count(&userCount)
	if userCount != 1 {
		t.Errorf("Expected one seeded user, got %d", userCount)
	}

	// Exercise the service layer against the real driver, including the
	// JSON-backed columns
	if _, _, err := services.Login(db, "Maccam68", "13121"); err != nil {
		t.Errorf("Master login failed on MariaDB: %v", err)
	}

	staff, err := services.CreateStaff(db, models.StaffMember{
		Name: "Alex Doe",
		Qualifications: []models.Qualification{
			{Title: "NVQ Level 3", DateAchieved: "2019-06-01"},
		},
	})
	if err != nil {
		t.Fatalf("CreateStaff failed on MariaDB: %v", err)
	}
	got, err := services.GetStaff(db, staff.ID)
	if err != nil || len(got.Qualifications) != 1 {
		t.Errorf("Staff round trip failed on MariaDB: %v", err)
	}

	supervision, err := services.CreateSupervision(db, models.Supervision{
		StaffID: staff.ID,
		Date:    "2026-09-15",
		Actions: []string{"Review caseload"},
	})
	if err != nil {
		t.Fatalf("CreateSupervision failed on MariaDB: %v", err)
	}
	gotSup, err := services.GetSupervision(db, supervision.ID)
	if err != nil || len(gotSup.Actions) != 1 {
		t.Errorf("Supervision JSON column round trip failed: %v", err)
	}

	health := services.HealthCheck(cfg, db)
	if health.Status != "healthy" {
		t.Errorf("Expected healthy, got %+v", health)
	}
}
