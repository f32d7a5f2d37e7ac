package models

import (
	"errors"
)

var ErrCoupleNotFound = errors.New("couple profile not found")
var ErrPrestataireNotFound = errors.New("prestataire profile not found")
var ErrSlotNotFound = errors.New("availability slot not found")
var ErrNotSlotOwner = errors.New("slot belongs to another prestataire")
var (
	ErrNoRecord           = errors.New("models: no matching record found")
	ErrInvalidCredentials = errors.New("models: invalid credentials")
	ErrDuplicateEmail     = errors.New("models: duplicate email")
	ErrDuplicatePhone     = errors.New("models: duplicate phone number")
	ErrUserNotFound       = errors.New("models: user not found")
	ErrInvalidPassword    = errors.New("models: invalid password")

	ErrConsentNotFound         = errors.New("billing consent request not found")
	ErrNotConsentOwner         = errors.New("consent request addressed to another couple")
	ErrConsentAlreadyProcessed = errors.New("consent request already responded to")
	ErrConsentExpired          = errors.New("consent request expired")

	ErrDevisNotFound     = errors.New("devis not found")
	ErrNotDevisOwner     = errors.New("devis belongs to another prestataire")
	ErrDevisNotAccepted  = errors.New("devis is not in accepted status")
	ErrDevisNotSent      = errors.New("devis is not in sent status")
	ErrFactureExists     = errors.New("a facture already exists for this devis")
	ErrFactureNotFound   = errors.New("facture not found")
	ErrPaymentNotAllowed = errors.New("facture is not eligible for online payment")

	ErrEarningNotFound      = errors.New("ambassador earning not found")
	ErrEarningBadTransition = errors.New("earning status can only move forward")
	ErrReferralCodeNotFound = errors.New("referral code not found")
	ErrAlreadyReferred      = errors.New("user already recorded as referred")
	ErrChatNotFound         = errors.New("chat not found")
	ErrReviewNotFound       = errors.New("review not found")
	ErrAlreadyReviewed      = errors.New("user already reviewed")
	ErrBillingInfoNotFound  = errors.New("billing info not found")
	ErrProfileDeactivated   = errors.New("couple profile is deactivated")
)
