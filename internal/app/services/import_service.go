package services

import (
	"context"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/hare-edu/hare-backend/internal/app/models"
	"github.com/hare-edu/hare-backend/internal/app/models/dto"
	"github.com/hare-edu/hare-backend/internal/app/repositories"
	"github.com/hare-edu/hare-backend/internal/db"
	"github.com/hare-edu/hare-backend/internal/pkg/apperrors"
	"github.com/hare-edu/hare-backend/internal/pkg/excel"
	"github.com/hare-edu/hare-backend/internal/pkg/logger"
)

// Worksheet column headers of the bulk import format. The file format is
// an external contract; the Spanish headers are kept verbatim.
const (
	colCode               = "Codigo Alumno"
	colName               = "Nombre Alumno"
	colDocumentType       = "Tipo Doc"
	colDocument           = "Documento"
	colSemester           = "Semestre"
	colPensum             = "Pensum"
	colIntakePeriod       = "Ingreso"
	colAverage            = "Promedio"
	colEnrollmentStatus   = "Estado Matricula"
	colPhone              = "Celular"
	colPersonalEmail      = "Email"
	colInstitutionalEmail = "Email Institucional"
	colSchool             = "Colegio Egresado"
	colMunicipality       = "Municipio Nacimiento"
)

var requiredColumns = []string{
	colCode, colName, colDocumentType, colDocument, colSemester,
	colPensum, colIntakePeriod, colAverage, colEnrollmentStatus,
	colPhone, colPersonalEmail, colInstitutionalEmail, colSchool,
	colMunicipality,
}

// TxRunner runs a function inside a database transaction.
type TxRunner interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// ImportService reconciles an uploaded student workbook against the
// database. The whole file is applied in one transaction: the first bad
// row rolls back everything, including rows already processed.
type ImportService struct {
	txRunner    TxRunner
	catalogRepo repositories.ICatalogRepository
	studentRepo repositories.IStudentRepository
	metricRepo  repositories.IMetricRepository
	assocRepo   repositories.IAssociationRepository
	userRepo    repositories.IUserRepository
}

// NewImportService creates a new ImportService instance
func NewImportService(
	txRunner TxRunner,
	catalogRepo repositories.ICatalogRepository,
	studentRepo repositories.IStudentRepository,
	metricRepo repositories.IMetricRepository,
	assocRepo repositories.IAssociationRepository,
	userRepo repositories.IUserRepository,
) *ImportService {
	return &ImportService{
		txRunner:    txRunner,
		catalogRepo: catalogRepo,
		studentRepo: studentRepo,
		metricRepo:  metricRepo,
		assocRepo:   assocRepo,
		userRepo:    userRepo,
	}
}

// catalogIndex holds the four reference catalogs as name-to-id lookups,
// loaded once per import.
type catalogIndex struct {
	documentTypes      map[string]int64
	enrollmentStatuses map[string]int64
	schools            map[string]int64
	municipalities     map[string]int64
}

// Import parses the workbook and applies every row: students are upserted
// by their (code, document) pair, their metric is replaced, and each one
// is associated to the importing user. Row numbers in errors are worksheet
// rows, counting the header as row 1.
func (s *ImportService) Import(ctx context.Context, userEmail string, file io.Reader) (*dto.ImportResponse, error) {
	table, err := excel.ReadTable(file)
	if err != nil {
		return nil, apperrors.NewValidationError("could not read the uploaded workbook: " + err.Error())
	}

	if missing := table.MissingColumns(requiredColumns); len(missing) > 0 {
		return nil, apperrors.NewValidationError("missing required columns: " + strings.Join(missing, ", "))
	}

	user, err := s.userRepo.GetByEmail(ctx, userEmail)
	if err != nil {
		return nil, err
	}

	catalogs, err := s.loadCatalogs(ctx)
	if err != nil {
		return nil, err
	}

	var created, updated int
	err = s.txRunner.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		for i := 0; i < table.RowCount(); i++ {
			wasCreated, rowErr := s.applyRow(ctx, tx, table, i, user.ID, catalogs)
			if rowErr != nil {
				return apperrors.NewCustomError(apperrors.ErrImportFailed,
					fmt.Sprintf("row %d: %v", i+2, rowErr))
			}
			if wasCreated {
				created++
			} else {
				updated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logger.Info().
		Str("user", userEmail).
		Int("created", created).
		Int("updated", updated).
		Msg("Student import completed")

	return &dto.ImportResponse{
		Message: fmt.Sprintf("Import completed: %d students created, %d updated", created, updated),
		Created: created,
		Updated: updated,
	}, nil
}

func (s *ImportService) loadCatalogs(ctx context.Context) (*catalogIndex, error) {
	idx := &catalogIndex{}

	var err error
	if idx.documentTypes, err = s.catalogRepo.NameMap(ctx, models.CatalogDocumentTypes); err != nil {
		return nil, err
	}
	if idx.enrollmentStatuses, err = s.catalogRepo.NameMap(ctx, models.CatalogEnrollmentStatuses); err != nil {
		return nil, err
	}
	if idx.schools, err = s.catalogRepo.NameMap(ctx, models.CatalogSchools); err != nil {
		return nil, err
	}
	if idx.municipalities, err = s.catalogRepo.NameMap(ctx, models.CatalogMunicipalities); err != nil {
		return nil, err
	}

	return idx, nil
}

// applyRow reconciles a single data row inside the transaction. The bool
// result reports whether the student was created (as opposed to updated).
func (s *ImportService) applyRow(ctx context.Context, tx pgx.Tx, table *excel.Table, row int, userID int64, catalogs *catalogIndex) (bool, error) {
	code := table.Cell(row, colCode)
	document := table.Cell(row, colDocument)
	name := table.Cell(row, colName)
	if code == "" || document == "" || name == "" {
		return false, fmt.Errorf("code, name and document are required")
	}

	documentTypeID, err := resolveCatalog(catalogs.documentTypes, "document type", table.Cell(row, colDocumentType))
	if err != nil {
		return false, err
	}
	enrollmentStatusID, err := resolveCatalog(catalogs.enrollmentStatuses, "enrollment status", table.Cell(row, colEnrollmentStatus))
	if err != nil {
		return false, err
	}
	schoolID, err := resolveCatalog(catalogs.schools, "school", table.Cell(row, colSchool))
	if err != nil {
		return false, err
	}
	municipalityID, err := resolveCatalog(catalogs.municipalities, "municipality", table.Cell(row, colMunicipality))
	if err != nil {
		return false, err
	}

	average, err := parseAverage(table.Cell(row, colAverage))
	if err != nil {
		return false, err
	}

	incoming := &models.Student{
		Code:               code,
		Name:               name,
		DocumentTypeID:     documentTypeID,
		Document:           document,
		Semester:           table.Cell(row, colSemester),
		Pensum:             table.Cell(row, colPensum),
		IntakePeriod:       table.Cell(row, colIntakePeriod),
		EnrollmentStatusID: enrollmentStatusID,
		Phone:              optionalCell(table, row, colPhone),
		PersonalEmail:      optionalCell(table, row, colPersonalEmail),
		InstitutionalEmail: table.Cell(row, colInstitutionalEmail),
		SchoolID:           schoolID,
		MunicipalityID:     municipalityID,
	}

	existing, err := s.studentRepo.GetByCodeAndDocumentTx(ctx, tx, code, document)
	if err != nil {
		return false, err
	}

	wasCreated := existing == nil
	if wasCreated {
		if err := s.studentRepo.CreateTx(ctx, tx, incoming); err != nil {
			return false, err
		}
	} else {
		incoming.ID = existing.ID
		if err := s.studentRepo.UpdateTx(ctx, tx, incoming); err != nil {
			return false, err
		}
	}

	if err := s.metricRepo.UpsertTx(ctx, tx, incoming.ID, average); err != nil {
		return false, err
	}

	associated, err := s.assocRepo.ExistsTx(ctx, tx, userID, incoming.ID)
	if err != nil {
		return false, err
	}
	if !associated {
		if err := s.assocRepo.CreateTx(ctx, tx, userID, incoming.ID); err != nil {
			return false, err
		}
	}

	return wasCreated, nil
}

func resolveCatalog(index map[string]int64, kind, name string) (int64, error) {
	if name == "" {
		return 0, fmt.Errorf("%s is required", kind)
	}
	id, ok := index[name]
	if !ok {
		return 0, fmt.Errorf("unknown %s: %q", kind, name)
	}
	return id, nil
}

// parseAverage parses the Promedio cell and rounds to two decimals.
// Out-of-scale values are stored as-is; the classifier treats them as LOW.
func parseAverage(raw string) (float64, error) {
	if raw == "" {
		return 0, fmt.Errorf("average is required")
	}

	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid average %q", raw)
	}

	return math.Round(value*100) / 100, nil
}

func optionalCell(table *excel.Table, row int, column string) *string {
	value := table.Cell(row, column)
	if value == "" {
		return nil
	}
	return &value
}
