package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"mariageBack/internal/models"
	"mariageBack/internal/repositories"
)

func newFactureService(t *testing.T) (*FactureService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return &FactureService{
		FactureRepo:     &repositories.FactureRepository{DB: db},
		DevisRepo:       &repositories.DevisRepository{DB: db},
		AmbassadorRepo:  &repositories.AmbassadorRepository{DB: db},
		PrestataireRepo: &repositories.PrestataireRepository{DB: db},
	}, mock
}

var devisCols = []string{"id", "prestataire_id", "couple_id", "status", "total_ht", "currency", "valid_until", "converted_at", "created_at", "updated_at"}
var devisItemCols = []string{"id", "devis_id", "description", "quantity", "unit_price"}

func expectDevisFetch(mock sqlmock.Sqlmock, id uuid.UUID, prestataireID int, status string, totalHT float64) {
	mock.ExpectQuery("SELECT id, prestataire_id, couple_id, status, total_ht").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(devisCols).
			AddRow(id, prestataireID, 42, status, totalHT, "EUR", nil, nil, time.Now(), nil))
	mock.ExpectQuery("SELECT id, devis_id, description").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(devisItemCols))
}

func TestConvertFromDevis(t *testing.T) {
	svc, mock := newFactureService(t)
	devisID := uuid.New()

	expectDevisFetch(mock, devisID, 7, "accepted", 1000)
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(devisID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO factures").
		WillReturnRows(sqlmock.NewRows([]string{"issued_at"}).AddRow(time.Now()))
	mock.ExpectExec("UPDATE devis SET converted_at").
		WithArgs(devisID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	facture, err := svc.ConvertFromDevis(context.Background(), 7, devisID, nil, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if facture.Status != models.FactureStatusSent {
		t.Errorf("expected sent, got %s", facture.Status)
	}
	if facture.TotalTVA != 200 {
		t.Errorf("expected TVA 200 at the default rate, got %v", facture.TotalTVA)
	}
	if facture.TotalTTC != 1200 {
		t.Errorf("expected TTC 1200, got %v", facture.TotalTTC)
	}
	if !strings.HasPrefix(facture.Number, "FAC-") {
		t.Errorf("unexpected facture number %q", facture.Number)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestConvertFromDevisNotOwner(t *testing.T) {
	svc, mock := newFactureService(t)
	devisID := uuid.New()

	expectDevisFetch(mock, devisID, 7, "accepted", 1000)

	_, err := svc.ConvertFromDevis(context.Background(), 99, devisID, nil, false)
	if !errors.Is(err, models.ErrNotDevisOwner) {
		t.Fatalf("expected ErrNotDevisOwner, got %v", err)
	}
}

func TestConvertFromDevisNotAccepted(t *testing.T) {
	svc, mock := newFactureService(t)
	devisID := uuid.New()

	expectDevisFetch(mock, devisID, 7, "sent", 1000)

	_, err := svc.ConvertFromDevis(context.Background(), 7, devisID, nil, false)
	if !errors.Is(err, models.ErrDevisNotAccepted) {
		t.Fatalf("expected ErrDevisNotAccepted, got %v", err)
	}
}

func TestConvertFromDevisAlreadyConverted(t *testing.T) {
	svc, mock := newFactureService(t)
	devisID := uuid.New()

	expectDevisFetch(mock, devisID, 7, "accepted", 1000)
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(devisID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	_, err := svc.ConvertFromDevis(context.Background(), 7, devisID, nil, false)
	if !errors.Is(err, models.ErrFactureExists) {
		t.Fatalf("expected ErrFactureExists, got %v", err)
	}
}

// The COUNT pre-check can miss a concurrent insert; the UNIQUE(devis_id)
// violation from the database is the real guard.
func TestConvertFromDevisLosesRace(t *testing.T) {
	svc, mock := newFactureService(t)
	devisID := uuid.New()

	expectDevisFetch(mock, devisID, 7, "accepted", 1000)
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(devisID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO factures").
		WillReturnError(&pgconn.PgError{Code: "23505"})
	mock.ExpectRollback()

	_, err := svc.ConvertFromDevis(context.Background(), 7, devisID, nil, false)
	if !errors.Is(err, models.ErrFactureExists) {
		t.Fatalf("expected ErrFactureExists, got %v", err)
	}
}

func TestConvertFromDevisCustomTVARate(t *testing.T) {
	svc, mock := newFactureService(t)
	devisID := uuid.New()
	rate := 0.055

	expectDevisFetch(mock, devisID, 7, "accepted", 1000)
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(devisID).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectBegin()
	mock.ExpectQuery("INSERT INTO factures").
		WillReturnRows(sqlmock.NewRows([]string{"issued_at"}).AddRow(time.Now()))
	mock.ExpectExec("UPDATE devis SET converted_at").
		WithArgs(devisID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	facture, err := svc.ConvertFromDevis(context.Background(), 7, devisID, &rate, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if facture.TotalTVA != 55 {
		t.Errorf("expected TVA 55, got %v", facture.TotalTVA)
	}
}

func TestSyncOverdueIdempotent(t *testing.T) {
	svc, mock := newFactureService(t)
	now := time.Now()

	mock.ExpectExec("UPDATE factures").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec("UPDATE factures").
		WithArgs(now).
		WillReturnResult(sqlmock.NewResult(0, 0))

	updated, err := svc.SyncOverdue(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 3 {
		t.Errorf("expected 3 updated, got %d", updated)
	}

	updated, err = svc.SyncOverdue(context.Background(), now)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated != 0 {
		t.Errorf("second run should touch nothing, got %d", updated)
	}
}

var factureCols = []string{
	"id", "devis_id", "prestataire_id", "couple_id", "number", "status",
	"total_ht", "tva_rate", "total_tva", "total_ttc", "amount_paid", "currency",
	"online_payment_enabled", "due_date", "issued_at", "paid_at",
}

func factureRow(id uuid.UUID, status string, amountPaid float64, online bool) *sqlmock.Rows {
	return sqlmock.NewRows(factureCols).AddRow(
		id, uuid.New(), 7, 42, "FAC-2026-abc", status,
		1000.0, 0.20, 200.0, 1200.0, amountPaid, "EUR",
		online, time.Now().Add(720*time.Hour), time.Now(), nil,
	)
}

func TestRecordPaymentPartial(t *testing.T) {
	svc, mock := newFactureService(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT(.+)FROM factures WHERE id").
		WithArgs(id).
		WillReturnRows(factureRow(id, "sent", 0, true))
	mock.ExpectQuery("UPDATE factures").
		WithArgs(id, 500.0, sqlmock.AnyArg()).
		WillReturnRows(factureRow(id, "sent", 500, true))

	facture, err := svc.RecordPayment(context.Background(), id, 42, 500)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if facture.Status != models.FactureStatusSent {
		t.Errorf("partial payment must not settle, got %s", facture.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRecordPaymentSettles(t *testing.T) {
	svc, mock := newFactureService(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT(.+)FROM factures WHERE id").
		WithArgs(id).
		WillReturnRows(factureRow(id, "overdue", 0, true))
	mock.ExpectQuery("UPDATE factures").
		WithArgs(id, 1200.0, sqlmock.AnyArg()).
		WillReturnRows(factureRow(id, "paid", 1200, true))
	// the conversion bonus is best effort; the referral lookup failing here
	// must not undo the payment
	mock.ExpectQuery("FROM prestataire_profiles").
		WillReturnError(models.ErrPrestataireNotFound)

	facture, err := svc.RecordPayment(context.Background(), id, 42, 1200)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if facture.Status != models.FactureStatusPaid {
		t.Errorf("expected paid, got %s", facture.Status)
	}
}

func TestRecordPaymentOnlineDisabled(t *testing.T) {
	svc, mock := newFactureService(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT(.+)FROM factures WHERE id").
		WithArgs(id).
		WillReturnRows(factureRow(id, "sent", 0, false))

	_, err := svc.RecordPayment(context.Background(), id, 42, 100)
	if !errors.Is(err, models.ErrPaymentNotAllowed) {
		t.Fatalf("expected ErrPaymentNotAllowed, got %v", err)
	}
}

func TestRecordPaymentAlreadyPaid(t *testing.T) {
	svc, mock := newFactureService(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT(.+)FROM factures WHERE id").
		WithArgs(id).
		WillReturnRows(factureRow(id, "paid", 1200, true))

	_, err := svc.RecordPayment(context.Background(), id, 42, 100)
	if !errors.Is(err, models.ErrPaymentNotAllowed) {
		t.Fatalf("expected ErrPaymentNotAllowed, got %v", err)
	}
}
