package main

import (
	"net/http"

	"github.com/bmizerany/pat"
	"github.com/justinas/alice"

	"mariageBack/internal/models"
)

func (app *application) JWTMiddlewareWithRole(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return app.JWTMiddleware(next, requiredRole)
	}
}

func (app *application) routes() http.Handler {
	standardMiddleware := alice.New(app.recoverPanic, app.logRequest, secureHeaders)
	authMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(""))
	coupleMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleCouple))
	prestataireMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RolePrestataire))
	adminMiddleware := standardMiddleware.Append(app.JWTMiddlewareWithRole(models.RoleAdmin))

	mux := pat.New()

	// Auth
	mux.Post("/api/users/sign_up", standardMiddleware.ThenFunc(app.userHandler.SignUp))
	mux.Post("/api/users/sign_in", standardMiddleware.ThenFunc(app.userHandler.SignIn))
	mux.Post("/api/users/sign_out", authMiddleware.ThenFunc(app.userHandler.SignOut))
	mux.Get("/api/users/me", authMiddleware.ThenFunc(app.userHandler.Me))
	mux.Post("/api/users/change_password", authMiddleware.ThenFunc(app.userHandler.ChangePassword))
	mux.Post("/api/users/device_token", authMiddleware.ThenFunc(app.userHandler.SaveDeviceToken))

	// Couple profiles
	mux.Post("/api/couples", coupleMiddleware.ThenFunc(app.coupleHandler.CreateCouple))
	mux.Get("/api/couples/me", coupleMiddleware.ThenFunc(app.coupleHandler.GetMyCouple))
	mux.Put("/api/couples/billing_info", coupleMiddleware.ThenFunc(app.coupleHandler.UpsertBillingInfo))
	mux.Put("/api/couples/:id", coupleMiddleware.ThenFunc(app.coupleHandler.UpdateCouple))
	mux.Del("/api/couples/:id", coupleMiddleware.ThenFunc(app.coupleHandler.DeactivateCouple))

	// Prestataire profiles
	mux.Post("/api/prestataires", prestataireMiddleware.ThenFunc(app.prestataireHandler.CreatePrestataire))
	mux.Get("/api/prestataires/me", prestataireMiddleware.ThenFunc(app.prestataireHandler.GetMyPrestataire))
	mux.Get("/api/prestataires/category/:category", authMiddleware.ThenFunc(app.prestataireHandler.GetPrestatairesByCategory))
	mux.Get("/api/prestataires/:id", standardMiddleware.ThenFunc(app.prestataireHandler.GetPrestataireByID))
	mux.Put("/api/prestataires/:id", prestataireMiddleware.ThenFunc(app.prestataireHandler.UpdatePrestataire))
	mux.Post("/api/prestataires/:id/portfolio", prestataireMiddleware.ThenFunc(app.prestataireHandler.UploadPortfolioImage))

	// Availability
	mux.Post("/api/provider-availability", prestataireMiddleware.ThenFunc(app.availabilityHandler.CreateSlot))
	mux.Get("/api/provider-availability", prestataireMiddleware.ThenFunc(app.availabilityHandler.GetMySlots))
	mux.Get("/api/provider-availability/calendar", prestataireMiddleware.ThenFunc(app.availabilityHandler.GetMyCalendar))
	mux.Get("/api/provider-availability/public/:prestataire_id", standardMiddleware.ThenFunc(app.availabilityHandler.GetPublicAvailability))
	mux.Get("/api/provider-availability/check/:prestataire_id", standardMiddleware.ThenFunc(app.availabilityHandler.CheckDate))
	mux.Put("/api/provider-availability/:id", prestataireMiddleware.ThenFunc(app.availabilityHandler.UpdateSlot))
	mux.Del("/api/provider-availability/:id", prestataireMiddleware.ThenFunc(app.availabilityHandler.DeleteSlot))

	// Billing consent
	mux.Post("/api/billing-consent", prestataireMiddleware.ThenFunc(app.billingConsentHandler.CreateConsent))
	mux.Get("/api/billing-consent/couple", coupleMiddleware.ThenFunc(app.billingConsentHandler.ListForCouple))
	mux.Get("/api/billing-consent/prestataire", prestataireMiddleware.ThenFunc(app.billingConsentHandler.ListForPrestataire))
	mux.Post("/api/billing-consent/:id/respond", coupleMiddleware.ThenFunc(app.billingConsentHandler.RespondConsent))
	mux.Get("/api/billing-consent/:id", coupleMiddleware.ThenFunc(app.billingConsentHandler.GetConsent))

	// Devis
	mux.Post("/api/devis", prestataireMiddleware.ThenFunc(app.devisHandler.CreateDevis))
	mux.Get("/api/devis/couple", coupleMiddleware.ThenFunc(app.devisHandler.ListForCouple))
	mux.Get("/api/devis/prestataire", prestataireMiddleware.ThenFunc(app.devisHandler.ListForPrestataire))
	mux.Post("/api/devis/:id/send", prestataireMiddleware.ThenFunc(app.devisHandler.SendDevis))
	mux.Post("/api/devis/:id/respond", coupleMiddleware.ThenFunc(app.devisHandler.RespondDevis))
	mux.Get("/api/devis/:id", authMiddleware.ThenFunc(app.devisHandler.GetDevisByID))

	// Factures
	mux.Post("/api/factures/from-devis", prestataireMiddleware.ThenFunc(app.factureHandler.ConvertFromDevis))
	mux.Get("/api/factures/couple", coupleMiddleware.ThenFunc(app.factureHandler.ListForCouple))
	mux.Get("/api/factures/prestataire", prestataireMiddleware.ThenFunc(app.factureHandler.ListForPrestataire))
	mux.Post("/api/factures/:id/payments", coupleMiddleware.ThenFunc(app.factureHandler.RecordPayment))
	mux.Get("/api/factures/:id", authMiddleware.ThenFunc(app.factureHandler.GetFactureByID))
	// The sweep is idempotent and global, so any authenticated caller may
	// trigger it; the background sweeper keeps it current regardless.
	mux.Post("/api/couple-payments/sync-overdue", authMiddleware.ThenFunc(app.factureHandler.SyncOverdue))

	// Ambassadors
	mux.Post("/api/ambassadors/enroll", prestataireMiddleware.ThenFunc(app.ambassadorHandler.Enroll))
	mux.Get("/api/ambassadors/earnings", prestataireMiddleware.ThenFunc(app.ambassadorHandler.ListEarnings))
	mux.Get("/api/ambassadors/earnings/summary", prestataireMiddleware.ThenFunc(app.ambassadorHandler.Summary))
	mux.Post("/api/ambassadors/earnings/advance", adminMiddleware.ThenFunc(app.ambassadorHandler.AdvanceEarnings))

	// Matching
	mux.Get("/api/matching/explain/:prestataire_id", coupleMiddleware.ThenFunc(app.matchingHandler.ExplainMatch))
	mux.Get("/api/matching/:category", coupleMiddleware.ThenFunc(app.matchingHandler.FindMatches))

	// Reviews
	mux.Post("/api/reviews", coupleMiddleware.ThenFunc(app.reviewHandler.CreateReview))
	mux.Get("/api/reviews/:prestataire_id", standardMiddleware.ThenFunc(app.reviewHandler.GetReviewsByPrestataire))
	mux.Del("/api/reviews/:id/prestataire/:prestataire_id", prestataireMiddleware.ThenFunc(app.reviewHandler.DeleteReview))

	// Chat
	mux.Get("/ws", authMiddleware.ThenFunc(app.WebSocketHandler))
	mux.Post("/api/chats", authMiddleware.ThenFunc(app.chatHandler.CreateChat))
	mux.Get("/api/chats/:id", authMiddleware.ThenFunc(app.chatHandler.GetChatByID))
	mux.Get("/api/chats", authMiddleware.ThenFunc(app.chatHandler.GetMyChats))
	mux.Del("/api/chats/:id", authMiddleware.ThenFunc(app.chatHandler.DeleteChat))

	mux.Post("/api/messages", authMiddleware.ThenFunc(app.messageHandler.CreateMessage))
	mux.Get("/api/messages/:chat_id", authMiddleware.ThenFunc(app.messageHandler.GetMessagesForChat))
	mux.Del("/api/messages/:id", authMiddleware.ThenFunc(app.messageHandler.DeleteMessage))

	return standardMiddleware.Then(mux)
}
