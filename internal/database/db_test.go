package database_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/database"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/logging"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/models"
	"github.com/edwardvalandre-netizen/ugel-monitor/internal/testutil"
)

func TestOpen_CreatesSchema(t *testing.T) {
	db := testutil.OpenDB(t)

	for _, table := range []string{"usuarios", "visitas", "contadores_informe", "auditoria_usuarios"} {
		require.True(t, db.Migrator().HasTable(table), table)
	}

	var last int64
	require.NoError(t, db.Raw("SELECT ultimo FROM contadores_informe WHERE nombre = ?", "visitas").Scan(&last).Error)
	require.Zero(t, last)

	require.NoError(t, database.Ping(db))
}

func TestMigrate_Idempotent(t *testing.T) {
	db := testutil.OpenDB(t)

	// a second run at startup must be a no-op
	require.NoError(t, database.Migrate(db, database.DriverSQLite))
	require.True(t, db.Migrator().HasTable(&models.User{}))
}

func TestMigrate_RoleCheckConstraint(t *testing.T) {
	db := testutil.OpenDB(t)

	err := db.Exec(`INSERT INTO usuarios (usuario, contrasena, rol) VALUES ('x', 'h', 'viewer')`).Error
	require.Error(t, err)
}

func TestMigrate_ForeignKeyEnforced(t *testing.T) {
	db := testutil.OpenDB(t)

	err := db.Exec(`INSERT INTO visitas (usuario_id, numero_informe) VALUES (999, 'INF-2025-001')`).Error
	require.Error(t, err)
}

func TestOpen_UnsupportedDriver(t *testing.T) {
	_, err := database.Open("mysql", "dsn", logging.Discard())
	require.Error(t, err)
}
