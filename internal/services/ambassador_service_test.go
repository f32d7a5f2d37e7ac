package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"

	"mariageBack/internal/models"
	"mariageBack/internal/repositories"
)

func errUnique() error {
	return &pgconn.PgError{Code: "23505"}
}

func newAmbassadorService(t *testing.T) (*AmbassadorService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return &AmbassadorService{
		AmbassadorRepo:  &repositories.AmbassadorRepository{DB: db},
		PrestataireRepo: &repositories.PrestataireRepository{DB: db},
	}, mock
}

var earningCols = []string{
	"id", "ambassador_id", "referral_usage_id", "amount", "type", "status",
	"validated_at", "paid_at", "created_at",
}

func earningRowWithStatus(id int, status string) *sqlmock.Rows {
	return sqlmock.NewRows(earningCols).
		AddRow(id, 7, 3, 10.0, "signup", status, nil, nil, time.Now())
}

func TestRecordReferredSignup(t *testing.T) {
	svc, mock := newAmbassadorService(t)

	mock.ExpectQuery("SELECT id FROM prestataire_profiles WHERE referral_code").
		WithArgs("AMB2026").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery("INSERT INTO referral_usages").
		WithArgs(7, 55, "AMB2026").
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(3, time.Now()))
	mock.ExpectQuery("INSERT INTO ambassador_earnings").
		WithArgs(7, 3, 10.0, models.EarningTypeSignup, models.EarningStatusPending).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(1, time.Now()))

	if err := svc.RecordReferredSignup(context.Background(), "AMB2026", 55); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestRecordReferredSignupUnknownCode(t *testing.T) {
	svc, mock := newAmbassadorService(t)

	mock.ExpectQuery("SELECT id FROM prestataire_profiles WHERE referral_code").
		WithArgs("NOPE").
		WillReturnError(models.ErrReferralCodeNotFound)

	err := svc.RecordReferredSignup(context.Background(), "NOPE", 55)
	if !errors.Is(err, models.ErrReferralCodeNotFound) {
		t.Fatalf("expected ErrReferralCodeNotFound, got %v", err)
	}
}

func TestRecordReferredSignupSecondUse(t *testing.T) {
	svc, mock := newAmbassadorService(t)

	mock.ExpectQuery("SELECT id FROM prestataire_profiles WHERE referral_code").
		WithArgs("AMB2026").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectQuery("INSERT INTO referral_usages").
		WithArgs(7, 55, "AMB2026").
		WillReturnError(errUnique())

	err := svc.RecordReferredSignup(context.Background(), "AMB2026", 55)
	if !errors.Is(err, models.ErrAlreadyReferred) {
		t.Fatalf("expected ErrAlreadyReferred, got %v", err)
	}
}

// AdvanceEarnings treats every ID independently: valid transitions advance,
// skips and unknown IDs land in the failure map without aborting the batch.
func TestAdvanceEarningsMixedBatch(t *testing.T) {
	svc, mock := newAmbassadorService(t)

	// id 1: pending, advances to validated
	mock.ExpectQuery("SELECT id, ambassador_id, referral_usage_id").
		WithArgs(1).
		WillReturnRows(earningRowWithStatus(1, "pending"))
	mock.ExpectExec("UPDATE ambassador_earnings SET status").
		WithArgs(1, models.EarningStatusPending, models.EarningStatusValidated, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	// id 2: already paid, cannot go back to validated
	mock.ExpectQuery("SELECT id, ambassador_id, referral_usage_id").
		WithArgs(2).
		WillReturnRows(earningRowWithStatus(2, "paid"))

	// id 3: unknown
	mock.ExpectQuery("SELECT id, ambassador_id, referral_usage_id").
		WithArgs(3).
		WillReturnError(models.ErrEarningNotFound)

	result, err := svc.AdvanceEarnings(context.Background(), models.AdvanceEarningsRequest{
		EarningIDs: []int{1, 2, 3},
		Status:     models.EarningStatusValidated,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Advanced) != 1 || result.Advanced[0] != 1 {
		t.Errorf("expected only id 1 advanced, got %v", result.Advanced)
	}
	if len(result.Failed) != 2 {
		t.Errorf("expected ids 2 and 3 to fail, got %v", result.Failed)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

// A pending earning cannot jump straight to paid.
func TestAdvanceEarningsNoSkippedSteps(t *testing.T) {
	svc, mock := newAmbassadorService(t)

	mock.ExpectQuery("SELECT id, ambassador_id, referral_usage_id").
		WithArgs(1).
		WillReturnRows(earningRowWithStatus(1, "pending"))

	result, err := svc.AdvanceEarnings(context.Background(), models.AdvanceEarningsRequest{
		EarningIDs: []int{1},
		Status:     models.EarningStatusPaid,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Advanced) != 0 {
		t.Errorf("expected no advances, got %v", result.Advanced)
	}
	if result.Failed[1] != models.ErrEarningBadTransition.Error() {
		t.Errorf("expected bad transition failure, got %v", result.Failed)
	}
}

// Paid earnings stamp paid_at, validated earnings stamp validated_at; the
// repository picks the column from the target status.
func TestAdvanceEarningsValidatedToPaid(t *testing.T) {
	svc, mock := newAmbassadorService(t)

	mock.ExpectQuery("SELECT id, ambassador_id, referral_usage_id").
		WithArgs(1).
		WillReturnRows(earningRowWithStatus(1, "validated"))
	mock.ExpectExec("UPDATE ambassador_earnings SET status(.+)paid_at").
		WithArgs(1, models.EarningStatusValidated, models.EarningStatusPaid, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	result, err := svc.AdvanceEarnings(context.Background(), models.AdvanceEarningsRequest{
		EarningIDs: []int{1},
		Status:     models.EarningStatusPaid,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Advanced) != 1 {
		t.Errorf("expected advance, got %v", result.Failed)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}
