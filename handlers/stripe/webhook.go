package stripe

import (
	"encoding/json"
	"io"
	"net/http"
	"os"
	"time"

	"telegroups-backend/db"
	"telegroups-backend/handlers/activity"
	"telegroups-backend/models"
	"telegroups-backend/utils"
	mailsmodels "telegroups-backend/utils/mails-models"

	"github.com/gin-gonic/gin"
	stripe "github.com/stripe/stripe-go/v82"
	"github.com/stripe/stripe-go/v82/webhook"
)

// StripeWebhookHandler consumes payment settlement events. Activation of a
// promotion only ever happens here.
func StripeWebhookHandler(c *gin.Context) {
	const MaxBodyBytes = int64(65536)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxBodyBytes)

	payload, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Impossible de lire le corps de la requête"})
		return
	}

	secret := os.Getenv("STRIPE_WEBHOOK_SECRET")
	if secret == "" {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Webhook secret non configuré"})
		return
	}

	sig := c.GetHeader("Stripe-Signature")
	event, err := webhook.ConstructEvent(payload, sig, secret)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Vérification de la signature Stripe échouée"})
		return
	}

	switch event.Type {
	case "checkout.session.completed":
		handleCheckoutSessionCompleted(c, event)
	case "payment_intent.payment_failed":
		handlePaymentIntentFailed(c, event)
	default:
		c.JSON(http.StatusOK, gin.H{"message": "Événement ignoré"})
	}
}

func handleCheckoutSessionCompleted(c *gin.Context, event stripe.Event) {
	var session stripe.CheckoutSession
	if err := json.Unmarshal(event.Data.Raw, &session); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Erreur parsing CheckoutSession"})
		return
	}

	promotionID := session.ClientReferenceID
	if promotionID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "ClientReferenceID manquant"})
		return
	}

	var promotion models.Promotion
	if err := db.DB.First(&promotion, "id = ?", promotionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Promotion non trouvée pour cette session"})
		return
	}

	// Ré-invocation idempotente: un settlement déjà appliqué est un no-op
	if promotion.Status == models.PromotionActive {
		c.JSON(http.StatusOK, gin.H{"message": "Promotion déjà activée"})
		return
	}

	var paymentIntentID string
	if session.PaymentIntent != nil {
		paymentIntentID = session.PaymentIntent.ID
	}

	now := time.Now()
	result := db.DB.Model(&models.Promotion{}).
		Where("id = ? AND status = ?", promotion.ID, models.PromotionPending).
		Updates(map[string]interface{}{
			"status":                   models.PromotionActive,
			"paid_at":                  now,
			"stripe_payment_intent_id": paymentIntentID,
		})
	if result.Error != nil {
		utils.LogError(result.Error, "Erreur activation promotion dans handleCheckoutSessionCompleted")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur activation promotion"})
		return
	}
	if result.RowsAffected == 0 {
		// Course avec un autre webhook: l'activation a déjà eu lieu
		c.JSON(http.StatusOK, gin.H{"message": "Promotion déjà activée"})
		return
	}

	activity.Record(promotion.UserID, models.ActivityPromote, "promotion", promotion.ID,
		"Promotion activated until "+promotion.EndDate.Format("2006-01-02"))

	notifyPromotionActivated(promotion)

	utils.LogSuccessWithUser(promotion.UserID, "Promotion activée avec succès dans handleCheckoutSessionCompleted")
	c.JSON(http.StatusOK, gin.H{"message": "Promotion activée"})
}

func handlePaymentIntentFailed(c *gin.Context, event stripe.Event) {
	var intent stripe.PaymentIntent
	if err := json.Unmarshal(event.Data.Raw, &intent); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Erreur parsing PaymentIntent"})
		return
	}

	// La promotion reste PENDING: un paiement échoué n'a pas d'état
	// dédié, un nouveau checkout crée une nouvelle promotion. L'id de
	// promotion est posé dans les metadata du PaymentIntent au checkout
	if promotionID := intent.Metadata["promotion_id"]; promotionID != "" {
		var promotion models.Promotion
		if err := db.DB.First(&promotion, "id = ?", promotionID).Error; err == nil {
			activity.Record(promotion.UserID, models.ActivityPromote, "promotion", promotion.ID,
				"Promotion payment failed")
		}
	}

	utils.LogError(nil, "Paiement de promotion échoué: "+intent.ID)
	c.JSON(http.StatusOK, gin.H{"message": "Échec de paiement enregistré"})
}

// notifyPromotionActivated envoie l'email d'activation. Best effort.
func notifyPromotionActivated(promotion models.Promotion) {
	var owner models.User
	if err := db.DB.First(&owner, "id = ?", promotion.UserID).Error; err != nil {
		utils.LogErrorWithUser(promotion.UserID, err, "Could not load owner in notifyPromotionActivated")
		return
	}

	var group models.Group
	if err := db.DB.First(&group, "id = ?", promotion.GroupID).Error; err != nil {
		utils.LogErrorWithUser(promotion.UserID, err, "Could not load group in notifyPromotionActivated")
		return
	}

	planName := promotion.PlanID
	if plan, ok := models.GetPromotionPlan(promotion.PlanID); ok {
		planName = plan.Name
	}

	mailsmodels.PromotionActivated(mailsmodels.PromotionActivatedData{
		FullName:  owner.FullName,
		Email:     owner.Email,
		GroupName: group.GroupName,
		PlanName:  planName,
		EndDate:   promotion.EndDate,
	})
}
