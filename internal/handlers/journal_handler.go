package handlers

import (
	"errors"
	"log"

	"mindcare/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

// JournalHandler handles HTTP requests for journal entries. All routes assume
// the auth middleware has already attached the caller's identity.
type JournalHandler struct {
	journalService *services.JournalService
	validate       *validator.Validate
}

// NewJournalHandler creates a new JournalHandler.
func NewJournalHandler(journalService *services.JournalService) *JournalHandler {
	return &JournalHandler{
		journalService: journalService,
		validate:       validator.New(),
	}
}

// RegisterRoutes registers the journal routes behind the given auth
// middleware. The middleware is scoped to the /journals prefix so unrelated
// routes stay public.
func (h *JournalHandler) RegisterRoutes(router fiber.Router, auth fiber.Handler) {
	journals := router.Group("/journals", auth)
	journals.Post("/", h.HandleCreate)
	journals.Get("/", h.HandleList)
	journals.Get("/:id", h.HandleGetByID)
	journals.Put("/:id", h.HandleUpdate)
	journals.Delete("/:id", h.HandleDelete)
	journals.Patch("/:id/pin", h.HandleTogglePin)
}

// JournalRequest represents the request body for creating or updating an entry.
type JournalRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
	// Mood is a free-form label; no server-side enum or length check.
	Mood    string `json:"mood"`
}

func callerID(c *fiber.Ctx) uint {
	id, _ := c.Locals("user_id").(uint)
	return id
}

// HandleCreate inserts a new journal entry owned by the caller.
func (h *JournalHandler) HandleCreate(c *fiber.Ctx) error {
	var req JournalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Title and content are required",
		})
	}

	journal, err := h.journalService.Create(callerID(c), req.Title, req.Content, req.Mood)
	if err != nil {
		log.Printf("Error creating journal: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to create journal",
			"error":   err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message":   "Journal created successfully",
		"journalId": journal.ID,
	})
}

// HandleList returns the caller's journals, pinned first, newest first.
func (h *JournalHandler) HandleList(c *fiber.Ctx) error {
	journals, err := h.journalService.ListAll(callerID(c))
	if err != nil {
		log.Printf("Error listing journals: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch journals",
			"error":   err.Error(),
		})
	}
	return c.JSON(fiber.Map{"journals": journals})
}

// HandleGetByID returns one of the caller's journals.
func (h *JournalHandler) HandleGetByID(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Journal not found",
		})
	}

	journal, err := h.journalService.GetByID(id, callerID(c))
	if err != nil {
		if errors.Is(err, services.ErrJournalNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Journal not found",
			})
		}
		log.Printf("Error fetching journal %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to fetch journal",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"journal": journal})
}

// HandleUpdate overwrites title, content and mood on the caller's journal.
func (h *JournalHandler) HandleUpdate(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Journal not found",
		})
	}

	var req JournalRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Invalid request body",
			"error":   err.Error(),
		})
	}
	if err := h.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"message": "Title and content are required",
		})
	}

	if err := h.journalService.Update(id, callerID(c), req.Title, req.Content, req.Mood); err != nil {
		if errors.Is(err, services.ErrJournalNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Journal not found",
			})
		}
		log.Printf("Error updating journal %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to update journal",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "Journal updated successfully"})
}

// HandleDelete permanently removes the caller's journal.
func (h *JournalHandler) HandleDelete(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Journal not found",
		})
	}

	if err := h.journalService.Delete(id, callerID(c)); err != nil {
		if errors.Is(err, services.ErrJournalNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Journal not found",
			})
		}
		log.Printf("Error deleting journal %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to delete journal",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "Journal deleted successfully"})
}

// HandleTogglePin flips the pinned flag on the caller's journal.
func (h *JournalHandler) HandleTogglePin(c *fiber.Ctx) error {
	id, err := parseIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"message": "Journal not found",
		})
	}

	if err := h.journalService.TogglePin(id, callerID(c)); err != nil {
		if errors.Is(err, services.ErrJournalNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"message": "Journal not found",
			})
		}
		log.Printf("Error toggling pin on journal %d: %v", id, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to toggle pin status",
			"error":   err.Error(),
		})
	}

	return c.JSON(fiber.Map{"message": "Journal pin status toggled successfully"})
}
