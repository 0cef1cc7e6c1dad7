package handlers

import (
	"errors"
	"log"

	"mindcare/internal/services"

	"github.com/gofiber/fiber/v2"
)

// AdminHandler handles the moderation surface: user listing, ban management
// and journal moderation.
type AdminHandler struct {
	authService    *services.AuthService
	journalService *services.JournalService
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(authService *services.AuthService, journalService *services.JournalService) *AdminHandler {
	return &AdminHandler{
		authService:    authService,
		journalService: journalService,
	}
}

// RegisterRoutes registers the admin routes behind the given auth and admin
// middleware, scoped to the /admin prefix.
func (h *AdminHandler) RegisterRoutes(router fiber.Router, auth, admin fiber.Handler) {
	adminRoutes := router.Group("/admin", auth, admin)
	adminRoutes.Get("/users", h.HandleListUsers)
	adminRoutes.Patch("/users/:id/ban", h.HandleBanUser)
	adminRoutes.Patch("/users/:id/unban", h.HandleUnbanUser)
	adminRoutes.Get("/journals", h.HandleListJournals)
	adminRoutes.Delete("/journals/:id", h.HandleDeleteJournal)
}

// HandleListUsers returns every user including ban and verification state.
func (h *AdminHandler) HandleListUsers(c *fiber.Ctx) error {
	users, err := h.authService.GetAllUsers()
	if err != nil {
		log.Printf("Error listing users: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to get users",
			"error":   err.Error(),
		})
	}
	// Password and OTP are untagged on the model and never serialize.
	return c.JSON(fiber.Map{
		"success": true,
		"users":   users,
	})
}

func (h *AdminHandler) setBanned(c *fiber.Ctx, banned bool, okMessage string) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "User not found",
		})
	}

	if err := h.authService.SetUserBanned(id, banned); err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "User not found",
			})
		}
		log.Printf("Error updating ban state for user %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to update ban state",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": okMessage,
	})
}

// HandleBanUser sets the ban flag on a user. Existing tokens stay valid until
// they expire.
func (h *AdminHandler) HandleBanUser(c *fiber.Ctx) error {
	return h.setBanned(c, true, "User banned successfully")
}

// HandleUnbanUser clears the ban flag on a user.
func (h *AdminHandler) HandleUnbanUser(c *fiber.Ctx) error {
	return h.setBanned(c, false, "User unbanned successfully")
}

// HandleListJournals returns every journal across all users for moderation.
func (h *AdminHandler) HandleListJournals(c *fiber.Ctx) error {
	journals, err := h.journalService.AdminListAll()
	if err != nil {
		log.Printf("Error listing journals: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to fetch journals",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{
		"success":  true,
		"journals": journals,
	})
}

// HandleDeleteJournal removes any user's journal as a moderation action.
func (h *AdminHandler) HandleDeleteJournal(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"success": false,
			"message": "Journal not found",
		})
	}

	if err := h.journalService.AdminDelete(id); err != nil {
		if errors.Is(err, services.ErrJournalNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"success": false,
				"message": "Journal not found",
			})
		}
		log.Printf("Error deleting journal %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"message": "Failed to delete journal",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Journal deleted successfully",
	})
}
