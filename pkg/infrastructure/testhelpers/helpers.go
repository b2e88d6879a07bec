package testhelpers

import (
	"context"
	"fmt"
	"net"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
	"go.uber.org/zap"

	"github.com/vsinha/bigen/pkg/application/services/generation"
	"github.com/vsinha/bigen/pkg/domain/entities"
)

// SnapshotConfig is the small quarter-long run the integration tests load
func SnapshotConfig(salesRows int) generation.Config {
	return generation.Config{
		Seed:      42,
		StartDate: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2023, 3, 31, 0, 0, 0, 0, time.UTC),
		SalesRows: salesRows,
	}
}

// BuildSnapshot generates the test snapshot in memory
func BuildSnapshot(t *testing.T, salesRows int) *entities.Snapshot {
	t.Helper()
	g, err := generation.NewGenerator(SnapshotConfig(salesRows), zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to create generator: %v", err)
	}
	snapshot, err := g.Generate(context.Background())
	if err != nil {
		t.Fatalf("Failed to generate snapshot: %v", err)
	}
	return snapshot
}

// Database is a shared database container for integration tests
type Database struct {
	Container testcontainers.Container
	Host      string
	Port      int
	User      string
	Password  string
	Name      string
}

// PostgresURL returns a pgx connection string for the container
func (d *Database) PostgresURL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable", d.User, d.Password, d.Host, d.Port, d.Name)
}

var (
	sharedPostgres     *Database
	sharedPostgresOnce sync.Once
	sharedPostgresErr  error

	sharedMySQL     *Database
	sharedMySQLOnce sync.Once
	sharedMySQLErr  error
)

// GetPostgres returns a PostgreSQL container shared by every test in the run
func GetPostgres(t *testing.T) *Database {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedPostgresOnce.Do(func() {
		sharedPostgres, sharedPostgresErr = startDatabase(testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_DB":       "bevco_dw",
				"POSTGRES_USER":     "bigen",
				"POSTGRES_PASSWORD": "test_password",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		}, "bigen", "test_password", "bevco_dw")
	})

	if sharedPostgresErr != nil {
		t.Fatalf("Failed to setup postgres container: %v", sharedPostgresErr)
	}
	return sharedPostgres
}

// GetMySQL returns a MySQL container shared by every test in the run
func GetMySQL(t *testing.T) *Database {
	t.Helper()

	if testing.Short() {
		t.Skip("Skipping integration test in short mode (requires Docker)")
	}

	sharedMySQLOnce.Do(func() {
		sharedMySQL, sharedMySQLErr = startDatabase(testcontainers.ContainerRequest{
			Image:        "mysql:8.0",
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_DATABASE":      "bevco_dw",
				"MYSQL_USER":          "bigen",
				"MYSQL_PASSWORD":      "test_password",
				"MYSQL_ROOT_PASSWORD": "root_password",
			},
			WaitingFor: wait.ForLog("port: 3306  MySQL Community Server").
				WithStartupTimeout(120 * time.Second),
		}, "bigen", "test_password", "bevco_dw")
	})

	if sharedMySQLErr != nil {
		t.Fatalf("Failed to setup mysql container: %v", sharedMySQLErr)
	}
	return sharedMySQL
}

func startDatabase(req testcontainers.ContainerRequest, user, password, name string) (*Database, error) {
	ctx := context.Background()

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start test container: %w", err)
	}

	// Endpoint resolves the first exposed port, the only one requested
	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get container endpoint: %w", err)
	}

	host, mappedPort, err := net.SplitHostPort(endpoint)
	if err != nil {
		return nil, fmt.Errorf("failed to parse container endpoint %s: %w", endpoint, err)
	}
	port, err := strconv.Atoi(mappedPort)
	if err != nil {
		return nil, fmt.Errorf("failed to parse container port %s: %w", mappedPort, err)
	}

	return &Database{
		Container: container,
		Host:      host,
		Port:      port,
		User:      user,
		Password:  password,
		Name:      name,
	}, nil
}
