package paymentController

import (
	"lms/database"
	"lms/middleware"
	"lms/models"

	"github.com/gofiber/fiber/v2"
)

// GetPaymentHistory returns the authenticated student's payments
func GetPaymentHistory(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", userId).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied!", nil)
	}

	reqData, ok := c.Locals("validatedPaymentHistory").(*struct {
		Page   *int   `query:"page"`
		Limit  *int   `query:"limit"`
		Status string `query:"status"`
	})
	if !ok {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request data!", nil)
	}

	page := 1
	limit := 10
	if reqData.Page != nil {
		page = *reqData.Page
	}
	if reqData.Limit != nil {
		limit = *reqData.Limit
	}
	offset := (page - 1) * limit

	db := database.Database.Db
	query := db.Model(&models.Payment{}).Where("student_id = ? AND is_deleted = false", userId)

	if reqData.Status != "" {
		query = query.Where("status = ?", reqData.Status)
	}

	var total int64
	query.Count(&total)

	var paymentList []models.Payment
	if err := query.
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&paymentList).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch payment history!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Payment history fetched!", fiber.Map{
		"payments": paymentList,
		"pagination": fiber.Map{
			"total": total,
			"page":  page,
			"limit": limit,
		},
	})
}

// GetInstructorEarnings returns aggregated earnings for the authenticated instructor
func GetInstructorEarnings(c *fiber.Ctx) error {
	userId := c.Locals("userId").(uint)

	var user models.User
	if err := database.Database.Db.Where("id = ? AND is_deleted = false AND role IN ?", userId, []string{"INSTRUCTOR", "ADMIN"}).First(&user).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusUnauthorized, false, "Access Denied! Instructor role required.", nil)
	}

	type earningsRow struct {
		Sales       int64 `json:"sales"`
		GrossAmount int64 `json:"grossAmount"`
		PlatformFee int64 `json:"platformFee"`
		Payout      int64 `json:"payout"`
	}

	var totals earningsRow
	if err := database.Database.Db.Model(&models.Payment{}).
		Select("COUNT(*) AS sales, COALESCE(SUM(amount), 0) AS gross_amount, COALESCE(SUM(platform_fee), 0) AS platform_fee, COALESCE(SUM(instructor_payout), 0) AS payout").
		Where("instructor_id = ? AND status = ? AND is_deleted = false", userId, models.PaymentStatusCompleted).
		Scan(&totals).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch earnings!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Earnings fetched!", totals)
}
