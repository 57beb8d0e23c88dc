package services

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/hare-edu/hare-backend/internal/app/models"
	"github.com/hare-edu/hare-backend/internal/app/repositories"
	"github.com/hare-edu/hare-backend/internal/db"
	"github.com/hare-edu/hare-backend/internal/pkg/apperrors"
)

// fakeTxRunner executes the function directly; transactional rollback is
// the database's job and out of scope here.
type fakeTxRunner struct{}

func (f *fakeTxRunner) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}

type fakeCatalogRepo struct {
	maps map[models.CatalogKind]map[string]int64
}

func (f *fakeCatalogRepo) Create(ctx context.Context, kind models.CatalogKind, item *models.CatalogItem) error {
	return nil
}
func (f *fakeCatalogRepo) GetByID(ctx context.Context, kind models.CatalogKind, id int64) (*models.CatalogItem, error) {
	return nil, apperrors.ErrCatalogItemNotFound
}
func (f *fakeCatalogRepo) GetAll(ctx context.Context, kind models.CatalogKind) ([]*models.CatalogItem, error) {
	return nil, nil
}
func (f *fakeCatalogRepo) UpdateName(ctx context.Context, kind models.CatalogKind, id int64, name string) error {
	return nil
}
func (f *fakeCatalogRepo) Delete(ctx context.Context, kind models.CatalogKind, id int64) error {
	return nil
}
func (f *fakeCatalogRepo) NameExists(ctx context.Context, kind models.CatalogKind, name string) (bool, error) {
	return false, nil
}
func (f *fakeCatalogRepo) NameMap(ctx context.Context, kind models.CatalogKind) (map[string]int64, error) {
	return f.maps[kind], nil
}

type fakeStudentRepo struct {
	nextID   int64
	students map[string]*models.Student // keyed by code+"|"+document
	updates  int
}

func (f *fakeStudentRepo) key(code, document string) string { return code + "|" + document }

func (f *fakeStudentRepo) Create(ctx context.Context, s *models.Student) error {
	return f.CreateTx(ctx, nil, s)
}
func (f *fakeStudentRepo) CreateTx(ctx context.Context, q repositories.Querier, s *models.Student) error {
	f.nextID++
	s.ID = f.nextID
	copied := *s
	f.students[f.key(s.Code, s.Document)] = &copied
	return nil
}
func (f *fakeStudentRepo) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	for _, s := range f.students {
		if s.ID == id {
			return s, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}
func (f *fakeStudentRepo) GetByCodeAndDocumentTx(ctx context.Context, q repositories.Querier, code, document string) (*models.Student, error) {
	if s, ok := f.students[f.key(code, document)]; ok {
		copied := *s
		return &copied, nil
	}
	return nil, nil
}
func (f *fakeStudentRepo) CodeAndDocumentExists(ctx context.Context, code, document string, excludeID int64) (bool, error) {
	s, ok := f.students[f.key(code, document)]
	return ok && s.ID != excludeID, nil
}
func (f *fakeStudentRepo) GetAll(ctx context.Context, skip, limit int) ([]*models.Student, error) {
	return nil, nil
}
func (f *fakeStudentRepo) Update(ctx context.Context, s *models.Student) error {
	return f.UpdateTx(ctx, nil, s)
}
func (f *fakeStudentRepo) UpdateTx(ctx context.Context, q repositories.Querier, s *models.Student) error {
	f.updates++
	copied := *s
	f.students[f.key(s.Code, s.Document)] = &copied
	return nil
}
func (f *fakeStudentRepo) Delete(ctx context.Context, id int64) error { return nil }

type fakeMetricRepo struct {
	averages map[int64]float64
}

func (f *fakeMetricRepo) GetByStudentIDTx(ctx context.Context, q repositories.Querier, studentID int64) (*models.Metric, error) {
	avg, ok := f.averages[studentID]
	if !ok {
		return nil, nil
	}
	return &models.Metric{StudentID: studentID, Average: avg}, nil
}
func (f *fakeMetricRepo) UpsertTx(ctx context.Context, q repositories.Querier, studentID int64, average float64) error {
	f.averages[studentID] = average
	return nil
}

type fakeAssocRepo struct {
	pairs   map[[2]int64]bool
	inserts int
}

func (f *fakeAssocRepo) ExistsTx(ctx context.Context, q repositories.Querier, userID, studentID int64) (bool, error) {
	return f.pairs[[2]int64{userID, studentID}], nil
}
func (f *fakeAssocRepo) CreateTx(ctx context.Context, q repositories.Querier, userID, studentID int64) error {
	f.pairs[[2]int64{userID, studentID}] = true
	f.inserts++
	return nil
}

type fakeUserRepo struct {
	user *models.User
}

func (f *fakeUserRepo) Create(ctx context.Context, u *models.User) error { return nil }
func (f *fakeUserRepo) GetByID(ctx context.Context, id int64) (*models.User, error) {
	return f.user, nil
}
func (f *fakeUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.user == nil || f.user.Email != email {
		return nil, apperrors.ErrUserNotFound
	}
	return f.user, nil
}
func (f *fakeUserRepo) GetAll(ctx context.Context, skip, limit int) ([]*models.User, error) {
	return nil, nil
}
func (f *fakeUserRepo) Update(ctx context.Context, u *models.User) error { return nil }
func (f *fakeUserRepo) Delete(ctx context.Context, id int64) error       { return nil }
func (f *fakeUserRepo) EmailExists(ctx context.Context, email string) (bool, error) {
	return false, nil
}
func (f *fakeUserRepo) NamePairExists(ctx context.Context, firstNames, lastName string, excludeID int64) (bool, error) {
	return false, nil
}

func newImportFixture() (*ImportService, *fakeStudentRepo, *fakeMetricRepo, *fakeAssocRepo) {
	catalogRepo := &fakeCatalogRepo{
		maps: map[models.CatalogKind]map[string]int64{
			models.CatalogDocumentTypes:      {"CC": 1, "TI": 2},
			models.CatalogEnrollmentStatuses: {"Matriculado": 1, "Retirado": 2},
			models.CatalogSchools:            {"INEM": 1, "Normal Superior": 2},
			models.CatalogMunicipalities:     {"Pasto": 1, "Ipiales": 2},
		},
	}
	studentRepo := &fakeStudentRepo{students: make(map[string]*models.Student)}
	metricRepo := &fakeMetricRepo{averages: make(map[int64]float64)}
	assocRepo := &fakeAssocRepo{pairs: make(map[[2]int64]bool)}
	userRepo := &fakeUserRepo{user: &models.User{ID: 7, Email: "ana@hare.edu.co", Role: models.RoleAdmin}}

	service := NewImportService(&fakeTxRunner{}, catalogRepo, studentRepo, metricRepo, assocRepo, userRepo)
	return service, studentRepo, metricRepo, assocRepo
}

var importHeaders = []interface{}{
	"Codigo Alumno", "Nombre Alumno", "Tipo Doc", "Documento", "Semestre",
	"Pensum", "Ingreso", "Promedio", "Estado Matricula", "Celular", "Email",
	"Email Institucional", "Colegio Egresado", "Municipio Nacimiento",
}

func buildImportWorkbook(t *testing.T, rows ...[]interface{}) *bytes.Reader {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &importHeaders); err != nil {
		t.Fatalf("failed to write header: %v", err)
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			t.Fatalf("failed to compute cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &rows[i]); err != nil {
			t.Fatalf("failed to write row: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("failed to serialize workbook: %v", err)
	}
	return bytes.NewReader(buf.Bytes())
}

func validRow(code, document, average string) []interface{} {
	return []interface{}{
		code, "Carlos Perez", "CC", document, "5", "2018-2", "2020-1",
		average, "Matriculado", "3109876543", "carlos@gmail.com",
		"cperez@hare.edu.co", "INEM", "Pasto",
	}
}

func TestImportCreatesStudentsMetricsAndAssociations(t *testing.T) {
	service, studentRepo, metricRepo, assocRepo := newImportFixture()

	wb := buildImportWorkbook(t,
		validRow("20201578", "1002003004", "3.456"),
		validRow("20201579", "1002003005", "0.8"),
	)

	result, err := service.Import(context.Background(), "ana@hare.edu.co", wb)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}

	if result.Created != 2 || result.Updated != 0 {
		t.Errorf("created/updated = %d/%d, want 2/0", result.Created, result.Updated)
	}
	if len(studentRepo.students) != 2 {
		t.Errorf("stored students = %d, want 2", len(studentRepo.students))
	}
	// Averages are rounded to two decimals.
	if metricRepo.averages[1] != 3.46 {
		t.Errorf("metric for student 1 = %v, want 3.46", metricRepo.averages[1])
	}
	if metricRepo.averages[2] != 0.8 {
		t.Errorf("metric for student 2 = %v, want 0.8", metricRepo.averages[2])
	}
	if assocRepo.inserts != 2 {
		t.Errorf("association inserts = %d, want 2", assocRepo.inserts)
	}
}

func TestImportIsIdempotent(t *testing.T) {
	service, studentRepo, _, assocRepo := newImportFixture()

	first := buildImportWorkbook(t, validRow("20201578", "1002003004", "3.4"))
	if _, err := service.Import(context.Background(), "ana@hare.edu.co", first); err != nil {
		t.Fatalf("first import returned error: %v", err)
	}

	second := buildImportWorkbook(t, validRow("20201578", "1002003004", "2.1"))
	result, err := service.Import(context.Background(), "ana@hare.edu.co", second)
	if err != nil {
		t.Fatalf("second import returned error: %v", err)
	}

	if result.Created != 0 || result.Updated != 1 {
		t.Errorf("created/updated = %d/%d, want 0/1", result.Created, result.Updated)
	}
	if len(studentRepo.students) != 1 {
		t.Errorf("stored students = %d, want 1", len(studentRepo.students))
	}
	if assocRepo.inserts != 1 {
		t.Errorf("association inserts = %d, want 1 (no duplicate association)", assocRepo.inserts)
	}
}

func TestImportMissingColumns(t *testing.T) {
	service, _, _, _ := newImportFixture()

	f := excelize.NewFile()
	defer f.Close()
	headers := []interface{}{"Codigo Alumno", "Nombre Alumno"}
	if err := f.SetSheetRow(f.GetSheetName(0), "A1", &headers); err != nil {
		t.Fatalf("failed to write header: %v", err)
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("failed to serialize workbook: %v", err)
	}

	_, err = service.Import(context.Background(), "ana@hare.edu.co", bytes.NewReader(buf.Bytes()))
	if !errors.Is(err, apperrors.ErrValidationFailed) {
		t.Fatalf("error = %v, want ErrValidationFailed", err)
	}
	if !strings.Contains(err.Error(), "Promedio") {
		t.Errorf("error %q does not name the missing column", err.Error())
	}
}

func TestImportUnknownCatalogValue(t *testing.T) {
	service, _, _, _ := newImportFixture()

	row := validRow("20201578", "1002003004", "3.4")
	row[12] = "Colegio Desconocido" // Colegio Egresado

	wb := buildImportWorkbook(t, validRow("20201580", "1002003009", "4.0"), row)

	_, err := service.Import(context.Background(), "ana@hare.edu.co", wb)
	if !errors.Is(err, apperrors.ErrImportFailed) {
		t.Fatalf("error = %v, want ErrImportFailed", err)
	}
	// The bad row is the second data row: worksheet row 3.
	if !strings.Contains(err.Error(), "row 3") {
		t.Errorf("error %q does not reference row 3", err.Error())
	}
}

func TestImportBadAverage(t *testing.T) {
	service, _, _, _ := newImportFixture()

	tests := []struct {
		name    string
		average string
	}{
		{"non-numeric", "tres punto cuatro"},
		{"comma separator", "0,8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wb := buildImportWorkbook(t, validRow("20201578", "1002003004", tt.average))
			_, err := service.Import(context.Background(), "ana@hare.edu.co", wb)
			if !errors.Is(err, apperrors.ErrImportFailed) {
				t.Errorf("error = %v, want ErrImportFailed", err)
			}
			if err != nil && !strings.Contains(err.Error(), "row 2") {
				t.Errorf("error %q does not reference row 2", err.Error())
			}
		})
	}
}

// Averages beyond the 0-5 grading scale are imported untouched; the risk
// classifier simply treats them as LOW.
func TestImportOutOfScaleAverage(t *testing.T) {
	service, _, metricRepo, _ := newImportFixture()

	wb := buildImportWorkbook(t,
		validRow("20201578", "1002003004", "5.5"),
		validRow("20201579", "1002003005", "-1"),
	)

	result, err := service.Import(context.Background(), "ana@hare.edu.co", wb)
	if err != nil {
		t.Fatalf("Import returned error: %v", err)
	}
	if result.Created != 2 {
		t.Errorf("created = %d, want 2", result.Created)
	}
	if metricRepo.averages[1] != 5.5 {
		t.Errorf("metric for student 1 = %v, want 5.5", metricRepo.averages[1])
	}
	if metricRepo.averages[2] != -1.0 {
		t.Errorf("metric for student 2 = %v, want -1", metricRepo.averages[2])
	}
}

func TestImportUnknownUser(t *testing.T) {
	service, _, _, _ := newImportFixture()

	wb := buildImportWorkbook(t, validRow("20201578", "1002003004", "3.4"))
	_, err := service.Import(context.Background(), "nadie@hare.edu.co", wb)
	if !errors.Is(err, apperrors.ErrUserNotFound) {
		t.Errorf("error = %v, want ErrUserNotFound", err)
	}
}
