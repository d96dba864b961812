package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/upm-platform/complaint-service/internal/api/dto"
	"github.com/upm-platform/complaint-service/internal/auth"
	"github.com/upm-platform/complaint-service/internal/i18n"
	"github.com/upm-platform/complaint-service/internal/service"
	apperrors "github.com/upm-platform/complaint-service/pkg/util"
)

// AdminHandler exposes the admin dashboard and the two response entry points.
type AdminHandler struct {
	complaints *service.ComplaintService
	responses  *service.ResponseService
}

// NewAdminHandler constructs handler.
func NewAdminHandler(complaintService *service.ComplaintService, responseService *service.ResponseService) *AdminHandler {
	return &AdminHandler{complaints: complaintService, responses: responseService}
}

// Dashboard GET /admin/dashboard lists all complaints, newest first.
func (h *AdminHandler) Dashboard(c *fiber.Ctx) error {
	complaints, err := h.complaints.ListAll(c.Context())
	if err != nil {
		return err
	}
	items := make([]dto.ComplaintSummary, 0, len(complaints))
	for i := range complaints {
		items = append(items, complaintSummary(&complaints[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// RespondForm GET /admin/respond/:complaint_id returns the complaint under
// review together with its existing responses.
func (h *AdminHandler) RespondForm(c *fiber.Ctx) error {
	complaint, responses, err := h.complaints.Track(c.Context(), c.Params("complaint_id"))
	if err != nil {
		return err
	}
	if complaint == nil {
		return apperrors.NewNotFound("complaint.not_found", "complaint")
	}
	return c.JSON(fiber.Map{"data": complaintDetail(complaint, responses)})
}

// Respond POST /admin/respond/:complaint_id creates a response; the text must
// be at least four characters on this path.
func (h *AdminHandler) Respond(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}
	var req dto.ReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("response.required", "invalid payload")
	}

	if _, err := h.responses.Respond(c.Context(), principal.User, c.Params("complaint_id"), req.Response); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message":  i18n.T(auth.LangFromContext(c), "response.sent"),
		"redirect": service.RedirectAdminDashboard,
	})
}

// Reply POST /reply-complaint/:id creates a response through the quick-reply
// endpoint, which only requires non-empty text.
func (h *AdminHandler) Reply(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("login required")
	}
	var req dto.ReplyRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidation("response.required", "invalid payload")
	}

	complaintID := c.Params("id")
	if _, err := h.responses.Reply(c.Context(), principal.User, complaintID, req.Response); err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"success":  true,
		"redirect": "/track-complaints?complaint_id=" + complaintID,
	})
}
