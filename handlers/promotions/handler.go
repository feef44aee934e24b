package promotions

import (
	"net/http"
	"os"
	"time"

	"telegroups-backend/db"
	"telegroups-backend/models"
	"telegroups-backend/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	stripe "github.com/stripe/stripe-go/v82"
	session "github.com/stripe/stripe-go/v82/checkout/session"
	"github.com/stripe/stripe-go/v82/customer"
)

// @Summary List the promotion plans
// @Description Retrieves the fixed promotion plan catalog
// @Tags promotions
// @Produce json
// @Success 200 {array} models.PromotionPlan
// @Router /promotions/plans [get]
func GetPlans(c *gin.Context) {
	c.JSON(http.StatusOK, models.PromotionPlans)
}

// CreatePromotionCheckout starts a Stripe payment for a featured placement on a
// catalog entry. The promotion stays PENDING until the webhook reports settlement.
// @Summary Create a Stripe Checkout session for a promotion
// @Description Starts a paid featured placement on a group. Only the group's owner or an admin can promote it. Returns the Stripe payment URL.
// @Tags promotions
// @Accept json
// @Produce json
// @Param groupId path string true "ID of the catalog entry to promote"
// @Param plan body models.PromotionCreate true "Chosen plan"
// @Security BearerAuth
// @Success 200 {object} map[string]string "paymentId: Stripe session ID, paymentUrl: Stripe Checkout URL"
// @Failure 400 {object} map[string]string "error: Unknown plan"
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 403 {object} map[string]string "error: Only the group owner can promote it"
// @Failure 404 {object} map[string]string "error: Group not found"
// @Failure 409 {object} map[string]string "error: Group already promoted"
// @Failure 500 {object} map[string]string "error: Stripe error or server error"
// @Router /promotions/checkout/{groupId} [post]
func CreatePromotionCheckout(c *gin.Context) {
	groupID := c.Param("groupId")

	stripe.Key = os.Getenv("STRIPE_SECRET_KEY")

	userID := c.MustGet("user_id").(string)
	role := c.MustGet("role")

	var input models.PromotionCreate
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid input: " + err.Error()})
		return
	}

	plan, ok := models.GetPromotionPlan(input.PlanID)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown promotion plan"})
		return
	}

	var payer models.User
	if err := db.DB.First(&payer, "id = ?", userID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "User not found dans CreatePromotionCheckout")
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var group models.Group
	if err := db.DB.First(&group, "id = ?", groupID).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Group not found dans CreatePromotionCheckout")
		c.JSON(http.StatusNotFound, gin.H{"error": "Group not found"})
		return
	}

	// Seul le propriétaire (provenance) ou un admin peut promouvoir
	if group.UserID != userID && role != string(models.AdminRole) {
		utils.LogErrorWithUser(userID, nil, "Not the group owner dans CreatePromotionCheckout")
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the group owner can promote it"})
		return
	}

	now := time.Now()

	var existing models.Promotion
	err := db.DB.Where("group_id = ? AND status = ? AND end_date >= ?",
		group.ID, models.PromotionActive, now).First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"error": "This group already has an active promotion"})
		return
	}

	if payer.StripeCustomerId != "" {
		// Vérifie que le customer existe vraiment sur Stripe
		_, err := customer.Get(payer.StripeCustomerId, nil)
		if err != nil {
			// S'il n'existe pas, on le recrée
			payer.StripeCustomerId = ""
		}
	}
	if payer.StripeCustomerId == "" {
		custParams := &stripe.CustomerParams{
			Name:  stripe.String(payer.UserName),
			Email: stripe.String(payer.Email),
		}
		cust, err := customer.New(custParams)
		if err != nil {
			utils.LogErrorWithUser(userID, err, "Erreur lors de la création du client Stripe dans CreatePromotionCheckout")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur lors de la création du client Stripe"})
			return
		}
		db.DB.Model(&payer).Update("stripe_customer_id", cust.ID)
		payer.StripeCustomerId = cust.ID
	}

	promotion := models.Promotion{
		GroupID:   group.ID,
		UserID:    userID,
		PlanID:    plan.ID,
		OrderRef:  uuid.NewString(),
		StartDate: now,
		EndDate:   models.PlanEndDate(now, plan),
		Status:    models.PromotionPending,
		Amount:    plan.Amount,
		Currency:  plan.Currency,
	}

	if err := db.DB.Create(&promotion).Error; err != nil {
		utils.LogErrorWithUser(userID, err, "Erreur création promotion dans CreatePromotionCheckout")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	frontendURL := os.Getenv("FRONTEND_URL")
	if frontendURL == "" {
		frontendURL = "http://localhost:3000"
	}

	params := &stripe.CheckoutSessionParams{
		Customer:           stripe.String(payer.StripeCustomerId),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String(plan.Currency),
					UnitAmount: stripe.Int64(int64(plan.Amount)),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String("Promotion " + plan.Name + " - " + group.GroupName),
					},
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL:        stripe.String(frontendURL + "/promotion/success"),
		CancelURL:         stripe.String(frontendURL + "/promotion/cancel"),
		ClientReferenceID: stripe.String(promotion.ID),
		// L'id de promotion voyage aussi dans les metadata du PaymentIntent,
		// pour que le webhook payment_failed puisse la retrouver
		PaymentIntentData: &stripe.CheckoutSessionPaymentIntentDataParams{
			Metadata: map[string]string{"promotion_id": promotion.ID},
		},
	}

	s, err := session.New(params)
	if err != nil {
		// La promotion PENDING reste en base, inerte: elle ne sera jamais
		// activée sans settlement et n'influence pas le flag featured
		utils.LogErrorWithUser(userID, err, "Erreur lors de la création de la session Stripe dans CreatePromotionCheckout")
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	db.DB.Model(&promotion).Update("stripe_session_id", s.ID)

	utils.LogSuccessWithUser(userID, "Session Stripe de promotion créée avec succès dans CreatePromotionCheckout")
	c.JSON(http.StatusOK, gin.H{"paymentId": s.ID, "paymentUrl": s.URL})
}

// @Summary Get the current user's promotions
// @Description Retrieves the promotions of the authenticated user with their effective status (expiry applied)
// @Tags promotions
// @Produce json
// @Security BearerAuth
// @Success 200 {array} models.Promotion
// @Failure 401 {object} map[string]string "error: Unauthorized"
// @Failure 500 {object} map[string]string "error: Error message"
// @Router /promotions [get]
func GetMyPromotions(c *gin.Context) {
	userID := c.MustGet("user_id").(string)

	var promotions []models.Promotion
	result := db.DB.Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&promotions)

	if result.Error != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
		return
	}

	now := time.Now()
	for i := range promotions {
		promotions[i].Status = promotions[i].EffectiveStatus(now)
	}

	c.JSON(http.StatusOK, promotions)
}
