package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"

	"mariageBack/internal/models"
	"mariageBack/internal/repositories"
)

func newConsentService(t *testing.T) (*BillingConsentService, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return &BillingConsentService{
		ConsentRepo: &repositories.BillingConsentRepository{DB: db},
		CoupleRepo:  &repositories.CoupleRepository{DB: db},
		Notifier:    &NotificationService{},
	}, mock
}

var consentCols = []string{"id", "couple_id", "prestataire_id", "status", "message", "expires_at", "responded_at", "created_at"}

func pendingConsentRow(id uuid.UUID, coupleID int, expiresAt time.Time) *sqlmock.Rows {
	return sqlmock.NewRows(consentCols).
		AddRow(id, coupleID, 7, "pending", "", expiresAt, nil, time.Now().Add(-time.Hour))
}

func TestConsentRespondApproved(t *testing.T) {
	svc, mock := newConsentService(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT id, couple_id, prestataire_id, status").
		WithArgs(id).
		WillReturnRows(pendingConsentRow(id, 42, time.Now().Add(24*time.Hour)))
	mock.ExpectExec("UPDATE billing_consent_requests").
		WithArgs(id, models.ConsentStatusApproved, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	resp, err := svc.Respond(context.Background(), id, 42, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Success {
		t.Error("expected success")
	}
	if resp.ConsentRequest.Status != models.ConsentStatusApproved {
		t.Errorf("expected approved, got %s", resp.ConsentRequest.Status)
	}
	if resp.NeedsBillingInfo {
		t.Error("billing info exists, should not be requested")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestConsentRespondApprovedWithoutBillingInfo(t *testing.T) {
	svc, mock := newConsentService(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT id, couple_id, prestataire_id, status").
		WithArgs(id).
		WillReturnRows(pendingConsentRow(id, 42, time.Now().Add(24*time.Hour)))
	mock.ExpectExec("UPDATE billing_consent_requests").
		WithArgs(id, models.ConsentStatusApproved, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(42).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))

	resp, err := svc.Respond(context.Background(), id, 42, true)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.NeedsBillingInfo {
		t.Error("expected needsBillingInfo to be set")
	}
}

func TestConsentRespondRejectedSkipsBillingCheck(t *testing.T) {
	svc, mock := newConsentService(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT id, couple_id, prestataire_id, status").
		WithArgs(id).
		WillReturnRows(pendingConsentRow(id, 42, time.Now().Add(24*time.Hour)))
	mock.ExpectExec("UPDATE billing_consent_requests").
		WithArgs(id, models.ConsentStatusRejected, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))

	resp, err := svc.Respond(context.Background(), id, 42, false)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.ConsentRequest.Status != models.ConsentStatusRejected {
		t.Errorf("expected rejected, got %s", resp.ConsentRequest.Status)
	}
	if resp.NeedsBillingInfo {
		t.Error("rejection must never ask for billing info")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Error(err)
	}
}

func TestConsentRespondWrongCouple(t *testing.T) {
	svc, mock := newConsentService(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT id, couple_id, prestataire_id, status").
		WithArgs(id).
		WillReturnRows(pendingConsentRow(id, 42, time.Now().Add(24*time.Hour)))

	_, err := svc.Respond(context.Background(), id, 99, true)
	if !errors.Is(err, models.ErrNotConsentOwner) {
		t.Fatalf("expected ErrNotConsentOwner, got %v", err)
	}
}

func TestConsentRespondAlreadyProcessed(t *testing.T) {
	svc, mock := newConsentService(t)
	id := uuid.New()
	respondedAt := time.Now().Add(-time.Hour)

	mock.ExpectQuery("SELECT id, couple_id, prestataire_id, status").
		WithArgs(id).
		WillReturnRows(sqlmock.NewRows(consentCols).
			AddRow(id, 42, 7, "approved", "", time.Now().Add(24*time.Hour), respondedAt, time.Now().Add(-2*time.Hour)))

	_, err := svc.Respond(context.Background(), id, 42, false)
	if !errors.Is(err, models.ErrConsentAlreadyProcessed) {
		t.Fatalf("expected ErrConsentAlreadyProcessed, got %v", err)
	}
}

func TestConsentRespondExpired(t *testing.T) {
	svc, mock := newConsentService(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT id, couple_id, prestataire_id, status").
		WithArgs(id).
		WillReturnRows(pendingConsentRow(id, 42, time.Now().Add(-time.Minute)))

	_, err := svc.Respond(context.Background(), id, 42, true)
	if !errors.Is(err, models.ErrConsentExpired) {
		t.Fatalf("expected ErrConsentExpired, got %v", err)
	}
}

// A concurrent responder can slip between the read and the update; the
// zero-row update must surface as already processed, not as success.
func TestConsentRespondLosesRace(t *testing.T) {
	svc, mock := newConsentService(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT id, couple_id, prestataire_id, status").
		WithArgs(id).
		WillReturnRows(pendingConsentRow(id, 42, time.Now().Add(24*time.Hour)))
	mock.ExpectExec("UPDATE billing_consent_requests").
		WithArgs(id, models.ConsentStatusApproved, sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))

	_, err := svc.Respond(context.Background(), id, 42, true)
	if !errors.Is(err, models.ErrConsentAlreadyProcessed) {
		t.Fatalf("expected ErrConsentAlreadyProcessed, got %v", err)
	}
}

func TestConsentGetForCoupleExpiredPending(t *testing.T) {
	svc, mock := newConsentService(t)
	id := uuid.New()

	mock.ExpectQuery("SELECT id, couple_id, prestataire_id, status").
		WithArgs(id).
		WillReturnRows(pendingConsentRow(id, 42, time.Now().Add(-time.Hour)))

	_, err := svc.GetForCouple(context.Background(), id, 42)
	if !errors.Is(err, models.ErrConsentExpired) {
		t.Fatalf("expected ErrConsentExpired, got %v", err)
	}
}

func TestHasApprovedConsent(t *testing.T) {
	svc, mock := newConsentService(t)
	approvedAt := time.Now().Add(-time.Hour)

	mock.ExpectQuery("SELECT id, couple_id, prestataire_id, status").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(consentCols).
			AddRow(uuid.New(), 41, 7, "rejected", "", time.Now().Add(24*time.Hour), approvedAt, time.Now()).
			AddRow(uuid.New(), 42, 7, "approved", "", time.Now().Add(24*time.Hour), approvedAt, time.Now()))

	ok, err := svc.HasApprovedConsent(context.Background(), 7, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Error("expected approved consent to be found")
	}
}
