// This file is a helper for running tests against a real database with
// testcontainers. It is used by the integration tests and by the devdb
// standalone executable.
//

package helpers

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	defaultImage    = "mariadb:11"
	defaultDatabase = "personafolio"
	defaultUser     = "folio"
	defaultPassword = "folio-test-password"
	defaultRootPass = "folio-root-password"
)

// Database is a running throwaway database container.
type Database struct {
	Container testcontainers.Container
	Host      string
	Port      string
	Name      string
	User      string
	Password  string
}

// StartMariaDB creates and starts a MariaDB container ready for connections.
// Image and credentials come from DB_IMAGE / DB_DATABASE / DB_USER /
// DB_PASSWORD when set, with usable defaults otherwise.
func StartMariaDB(t *testing.T) (*Database, error) {
	ctx := context.Background()

	image := envOr("DB_IMAGE", defaultImage)
	name := envOr("DB_DATABASE", defaultDatabase)
	user := envOr("DB_USER", defaultUser)
	password := envOr("DB_PASSWORD", defaultPassword)

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        image,
			ExposedPorts: []string{"3306/tcp"},
			Env: map[string]string{
				"MYSQL_ROOT_PASSWORD": envOr("DB_ROOT_PASSWORD", defaultRootPass),
				"MYSQL_DATABASE":      name,
				"MYSQL_USER":          user,
				"MYSQL_PASSWORD":      password,
			},
			WaitingFor: wait.ForListeningPort("3306/tcp").WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		exitWithError(t, err, "Failed to start database container")
		return nil, err
	}

	host, err := container.Host(ctx)
	if err != nil {
		_ = container.Terminate(ctx)
		exitWithError(t, err, "Failed to resolve container host")
		return nil, err
	}
	port, err := container.MappedPort(ctx, "3306/tcp")
	if err != nil {
		_ = container.Terminate(ctx)
		exitWithError(t, err, "Failed to resolve mapped port")
		return nil, err
	}

	db := &Database{
		Container: container,
		Host:      host,
		Port:      port.Port(),
		Name:      name,
		User:      user,
		Password:  password,
	}
	logMessage(t, "MariaDB testcontainer started on %s:%s", db.Host, db.Port)
	return db, nil
}

// Apply exports the container's coordinates as the DB_* environment the
// service configuration reads.
func (d *Database) Apply() {
	os.Setenv("DB_TYPE", "mysql")
	os.Setenv("DB_HOST", d.Host)
	os.Setenv("DB_PORT", d.Port)
	os.Setenv("DB_DATABASE", d.Name)
	os.Setenv("DB_USER", d.User)
	os.Setenv("DB_PASSWORD", d.Password)
}

// Terminate stops and removes the container.
func (d *Database) Terminate(t *testing.T) {
	if d == nil || d.Container == nil {
		return
	}
	if err := d.Container.Terminate(context.Background()); err != nil {
		logMessage(t, "Failed to terminate database container: %v", err)
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func exitWithError(t *testing.T, err error, msg string) {
	if err == nil {
		return
	}
	if t != nil {
		t.Fatalf(msg+": %v", err)
	} else {
		fmt.Printf(msg+": %v\n", err)
		os.Exit(1)
	}
}

func logMessage(t *testing.T, format string, args ...any) {
	if t != nil {
		t.Logf(format, args...)
	} else {
		fmt.Printf(format+"\n", args...)
	}
}
