package visits

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/models"
)

func TestCriteria_RejectsUnknownColumns(t *testing.T) {
	c := Criteria{}.Equal("nivel", "Primaria").Equal("contrasena", "x").Equal("fecha", "y")
	require.ErrorIs(t, c.Err(), ErrUnknownColumn)

	_, err := c.Scope()
	require.ErrorIs(t, err, ErrUnknownColumn)

	_, err = Criteria{}.HasPrefix("1=1; --", "x").Scope()
	require.ErrorIs(t, err, ErrUnknownColumn)
}

func TestCriteria_SiblingsDoNotShareState(t *testing.T) {
	base := Criteria{}.Equal("nivel", "Primaria")
	a := base.Equal("tipo_visita", "Monitoreo")
	b := base.Equal("tipo_visita", "Asesoría")

	require.Len(t, base.preds, 1)
	require.Equal(t, "Monitoreo", a.preds[1].arg)
	require.Equal(t, "Asesoría", b.preds[1].arg)
}

func TestCriteria_PrefixIsLiteral(t *testing.T) {
	s, db := setup(t)
	ana := createUser(t, db, "ana", models.RoleSpecialist)
	createVisit(t, s, ana, "2025-03-01", "Primaria", "Monitoreo")
	createVisit(t, s, ana, "2025_03 (sic)", "Primaria", "Monitoreo")
	createVisit(t, s, ana, "100% 2025", "Primaria", "Monitoreo")

	ctx := context.Background()

	list, err := s.list(ctx, Criteria{}.HasPrefix("fecha", "2025_03"))
	require.NoError(t, err)
	require.Len(t, list, 1)
	require.Equal(t, "2025_03 (sic)", list[0].Date)

	list, err = s.list(ctx, Criteria{}.HasPrefix("fecha", "100%"))
	require.NoError(t, err)
	require.Len(t, list, 1)

	list, err = s.list(ctx, Criteria{}.HasPrefix("fecha", "%"))
	require.NoError(t, err)
	require.Empty(t, list)
}

func TestEscapeLike(t *testing.T) {
	require.Equal(t, `a\%b\_c\\d`, escapeLike(`a%b_c\d`))
}
