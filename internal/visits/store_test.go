package visits

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/edwardvalandre-netizen/ugel-monitor/internal/models"
)

func TestCreate_AssignsSequentialReportNumbers(t *testing.T) {
	s, db := setup(t)
	ana := createUser(t, db, "ana", models.RoleSpecialist)

	first := createVisit(t, s, ana, "2025-04-01", "Primaria", "Monitoreo")
	second := createVisit(t, s, ana, "2025-04-02", "Primaria", "Monitoreo")

	require.Equal(t, "INF-2025-001", first.ReportNumber)
	require.Equal(t, "INF-2025-002", second.ReportNumber)
	require.Equal(t, ana.ID, first.UserID)
	require.NotZero(t, first.CreatedAt)
}

func TestCreate_TrimsAndValidates(t *testing.T) {
	s, db := setup(t)
	ana := createUser(t, db, "ana", models.RoleSpecialist)
	ctx := context.Background()

	v, err := s.Create(ctx, ana.ID, VisitInput{Date: " 2025-04-01 ", Institution: "  IE 301  "})
	require.NoError(t, err)
	require.Equal(t, "2025-04-01", v.Date)
	require.Equal(t, "IE 301", v.Institution)

	_, err = s.Create(ctx, ana.ID, VisitInput{Date: "2025-04-01", Institution: "   "})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.Create(ctx, ana.ID, VisitInput{Institution: "IE 301"})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestCreate_ObservationLength(t *testing.T) {
	s, db := setup(t)
	ana := createUser(t, db, "ana", models.RoleSpecialist)
	ctx := context.Background()

	// limit counts characters, not bytes
	fits := strings.Repeat("ñ", 16000)
	v, err := s.Create(ctx, ana.ID, VisitInput{Date: "2025-04-01", Institution: "IE 301", Strengths: fits})
	require.NoError(t, err)
	require.Equal(t, fits, v.Strengths)

	tooLong := strings.Repeat("a", 16001)
	for _, in := range []VisitInput{
		{Strengths: tooLong},
		{Improvements: tooLong},
		{Recommendations: tooLong},
		{Commitments: tooLong},
	} {
		in.Date, in.Institution = "2025-04-01", "IE 301"
		_, err := s.Create(ctx, ana.ID, in)
		require.ErrorIs(t, err, ErrInvalidInput)
	}
}

func TestCreate_UnknownOwnerFails(t *testing.T) {
	s, _ := setup(t)
	_, err := s.Create(context.Background(), 999, VisitInput{Date: "2025-04-01", Institution: "IE"})
	require.Error(t, err)
}

func TestCreate_FailedInsertDoesNotConsumeNumber(t *testing.T) {
	s, db := setup(t)
	ana := createUser(t, db, "ana", models.RoleSpecialist)

	_, err := s.Create(context.Background(), 999, VisitInput{Date: "2025-04-01", Institution: "IE"})
	require.Error(t, err)

	v := createVisit(t, s, ana, "2025-04-01", "Inicial", "Asesoría")
	require.Equal(t, "INF-2025-001", v.ReportNumber)
}

func TestCreate_DuplicateReportNumberFails(t *testing.T) {
	s, db := setup(t)
	ana := createUser(t, db, "ana", models.RoleSpecialist)

	// a legacy row that already holds the next number
	require.NoError(t, db.Exec(
		`INSERT INTO visitas (usuario_id, numero_informe, fecha, institucion) VALUES (?, ?, ?, ?)`,
		ana.ID, "INF-2025-001", "2025-01-01", "IE legado",
	).Error)

	_, err := s.Create(context.Background(), ana.ID, VisitInput{Date: "2025-04-01", Institution: "IE"})
	require.ErrorIs(t, err, ErrDuplicateReportNumber)

	var count int64
	require.NoError(t, db.Model(&models.Visit{}).Count(&count).Error)
	require.EqualValues(t, 1, count)
}

func TestCreate_ConcurrentInsertsGetUniqueNumbers(t *testing.T) {
	s, db := setup(t)
	ana := createUser(t, db, "ana", models.RoleSpecialist)
	beto := createUser(t, db, "beto", models.RoleChief)

	const n = 24
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		numbers = make(map[string]int)
		errs    []error
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			owner := ana
			if i%2 == 1 {
				owner = beto
			}
			v, err := s.Create(context.Background(), owner.ID, VisitInput{Date: "2025-04-05", Institution: "IE"})
			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				errs = append(errs, err)
				return
			}
			numbers[v.ReportNumber]++
		}(i)
	}
	wg.Wait()

	require.Empty(t, errs)
	require.Len(t, numbers, n)
	for num, c := range numbers {
		require.Equal(t, 1, c, num)
	}

	var distinct int64
	require.NoError(t, db.Raw(`SELECT COUNT(DISTINCT numero_informe) FROM visitas`).Scan(&distinct).Error)
	require.EqualValues(t, n, distinct)
}

func TestGetVisible(t *testing.T) {
	s, db := setup(t)
	ana := createUser(t, db, "ana", models.RoleSpecialist)
	beto := createUser(t, db, "beto", models.RoleSpecialist)
	jefe := createUser(t, db, "jefe", models.RoleChief)
	admin := createUser(t, db, "root", models.RoleAdmin)
	ctx := context.Background()

	v := createVisit(t, s, ana, "2025-04-01", "Primaria", "Monitoreo")

	got, err := s.GetVisible(ctx, viewerOf(ana), v.ID)
	require.NoError(t, err)
	require.Equal(t, v.ReportNumber, got.ReportNumber)
	require.Equal(t, "Nombre ana", got.User.FullName)

	_, err = s.GetVisible(ctx, viewerOf(beto), v.ID)
	require.ErrorIs(t, err, ErrNotFound)

	for _, u := range []models.User{jefe, admin} {
		_, err = s.GetVisible(ctx, viewerOf(u), v.ID)
		require.NoError(t, err)
	}

	_, err = s.GetVisible(ctx, viewerOf(admin), 12345)
	require.ErrorIs(t, err, ErrNotFound)
}

func TestListVisible(t *testing.T) {
	s, db := setup(t)
	ana := createUser(t, db, "ana", models.RoleSpecialist)
	beto := createUser(t, db, "beto", models.RoleSpecialist)
	ctx := context.Background()

	createVisit(t, s, ana, "2025-03-01", "Primaria", "Monitoreo")
	createVisit(t, s, beto, "2025-03-02", "Inicial", "Monitoreo")
	createVisit(t, s, ana, "2025-04-01", "Primaria", "Asesoría")

	list, err := s.ListVisible(ctx, viewerOf(ana), "")
	require.NoError(t, err)
	require.Len(t, list, 2)
	require.Equal(t, "2025-04-01", list[0].Date, "newest first")

	list, err = s.ListVisible(ctx, viewerOf(ana), "2025-03")
	require.NoError(t, err)
	require.Len(t, list, 1)

	_, err = s.ListVisible(ctx, viewerOf(ana), "marzo")
	require.ErrorIs(t, err, ErrInvalidMonth)
}
