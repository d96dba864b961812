package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/upm-platform/complaint-service/internal/api/dto"
	"github.com/upm-platform/complaint-service/internal/auth"
	"github.com/upm-platform/complaint-service/internal/domain"
	"github.com/upm-platform/complaint-service/internal/i18n"
	"github.com/upm-platform/complaint-service/internal/service"
	apperrors "github.com/upm-platform/complaint-service/pkg/util"
)

const dateLayout = "2006-01-02 15:04"

// ComplaintsHandler manages the student complaint endpoints and the public
// tracking view.
type ComplaintsHandler struct {
	complaints *service.ComplaintService
	responses  *service.ResponseService
}

// NewComplaintsHandler constructs handler.
func NewComplaintsHandler(complaintService *service.ComplaintService, responseService *service.ResponseService) *ComplaintsHandler {
	return &ComplaintsHandler{complaints: complaintService, responses: responseService}
}

// Home GET / lists the caller's complaints, newest first.
func (h *ComplaintsHandler) Home(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}
	complaints, err := h.complaints.ListForStudent(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.ComplaintSummary, 0, len(complaints))
	for i := range complaints {
		items = append(items, complaintSummary(&complaints[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create POST / submits a new complaint.
func (h *ComplaintsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}
	var req dto.CreateComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("complaint.fill_fields", "invalid payload")
	}

	complaint, err := h.complaints.Submit(c.Context(), principal.User, req.Title, req.Description)
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": i18n.T(auth.LangFromContext(c), "complaint.submitted"),
		"data":    complaintSummary(complaint),
	})
}

// Delete POST /delete-complaint removes one of the caller's complaints. The
// response shape is {success: bool}; every denial is a uniform 403.
func (h *ComplaintsHandler) Delete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{"success": false})
	}
	var req dto.DeleteComplaintRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusForbidden).JSON(fiber.Map{"success": false})
	}

	if err := h.complaints.Delete(c.Context(), principal.User, req.ComplaintID); err != nil {
		if de := apperrors.ToDomainError(err); de.Code == "FORBIDDEN" {
			return c.Status(http.StatusForbidden).JSON(fiber.Map{"success": false})
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

// Track GET /track-complaints renders a complaint by id, or a not-found state
// without raising. No ownership check: this is an intentional public lookup.
func (h *ComplaintsHandler) Track(c *fiber.Ctx) error {
	complaint, responses, err := h.complaints.Track(c.Context(), c.Query("complaint_id"))
	if err != nil {
		return err
	}

	if complaint == nil {
		resp := dto.TrackComplaintResponse{Found: false}
		if principal, ok := auth.PrincipalFromContext(c); ok {
			resp.UserType = string(principal.User.UserType)
		}
		return c.JSON(resp)
	}

	detail := complaintDetail(complaint, responses)
	return c.JSON(dto.TrackComplaintResponse{Found: true, Complaint: &detail})
}

// Data GET /complaint-data/:id returns the owner-only JSON detail.
func (h *ComplaintsHandler) Data(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}
	complaint, responses, err := h.complaints.Detail(c.Context(), principal.User, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(complaintDetail(complaint, responses))
}

// SubmitRating POST /submit-rating stores a rating on an admin response.
func (h *ComplaintsHandler) SubmitRating(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}
	lang := auth.LangFromContext(c)

	var req dto.SubmitRatingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": i18n.T(lang, "rating.invalid"),
		})
	}
	if req.ResponseID == "" || req.Rating == 0 {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"message": i18n.T(lang, "rating.invalid"),
		})
	}

	if err := h.responses.SubmitRating(c.Context(), principal.User, req.ResponseID, req.Rating); err != nil {
		de := apperrors.ToDomainError(err)
		switch de.Code {
		case "NOT_FOUND", "VALIDATION_FAILED":
			return c.Status(de.HTTPStatus).JSON(fiber.Map{
				"success": false,
				"message": i18n.T(lang, de.MessageKey),
			})
		}
		return err
	}
	return c.JSON(fiber.Map{"success": true})
}

func complaintSummary(complaint *domain.Complaint) dto.ComplaintSummary {
	return dto.ComplaintSummary{
		ID:          complaint.ID,
		Title:       complaint.Title,
		Description: complaint.Description,
		Date:        complaint.CreatedAt.Format(dateLayout),
		Rating:      complaint.Rating,
	}
}

func complaintDetail(complaint *domain.Complaint, responses []domain.Response) dto.ComplaintDetailResponse {
	entries := make([]dto.ResponseEntry, 0, len(responses))
	for _, response := range responses {
		entries = append(entries, dto.ResponseEntry{
			Text: response.Text,
			Date: response.CreatedAt.Format(dateLayout),
		})
	}
	return dto.ComplaintDetailResponse{
		Title:       complaint.Title,
		Description: complaint.Description,
		Date:        complaint.CreatedAt.Format(dateLayout),
		Responses:   entries,
		Rating:      complaint.Rating,
	}
}
