package objects

import (
	"errors"
	"strings"

	"objectsync/core/events"
	"objectsync/core/logger"
	"objectsync/core/model"
	"objectsync/core/refresh"
	"objectsync/feature/mapping"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for objects.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RefreshRequest is the body of POST /objects/refresh.
type RefreshRequest struct {
	Refs  []model.Ref `json:"refs"`
	Force bool        `json:"force"`
}

// ObjectsResponse lists resolved objects in request order.
type ObjectsResponse struct {
	Objects []model.Reference `json:"objects"`
}

// WalkRequest is the body of POST /objects/walk.
type WalkRequest struct {
	Root  model.Ref `json:"root"`
	Path  []string  `json:"path"`
	Force bool      `json:"force"`
}

// WalkResponse is the outcome of a cascading refresh.
type WalkResponse struct {
	Items    []model.Reference `json:"items"`
	Multiple bool              `json:"multiple"`
}

// BindingsResponse lists the mapped results of an owner.
type BindingsResponse struct {
	Results []mapping.MappedResult `json:"results"`
}

// EventRequest is the body of POST /events/{type}/{event}.
type EventRequest struct {
	Records []model.Record `json:"records"`
}

// RegisterRoutes registers the objects routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/objects")
	group.Post("/refresh", h.HandleRefresh)
	group.Post("/walk", h.HandleWalk)
	group.Get("/:type/:id", h.HandleGetObject)

	app.Get("/bindings/:mapping/:type/:id", h.HandleGetBindings)
	app.Post("/events/:type/:event", h.HandlePublishEvent)
}

// HandleRefresh refreshes a batch of references.
// @Summary Refresh Objects
// @Description Resolve references through the shared batching queues. Results keep request order.
// @Tags objects
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "References to refresh"
// @Success 200 {object} ObjectsResponse "Resolved objects"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Unknown Model"
// @Failure 502 {object} map[string]string "Upstream Fetch Failed"
// @Router /objects/refresh [post]
func (h *Handler) HandleRefresh(c *fiber.Ctx) error {
	var req RefreshRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if len(req.Refs) == 0 {
		return badRequest(c, "refs must not be empty")
	}
	for _, ref := range req.Refs {
		if ref.Type == "" || ref.ID == "" {
			return badRequest(c, "every ref needs a type and an id")
		}
	}

	items, err := h.service.Refresh(c.UserContext(), req.Refs, req.Force)
	if err != nil {
		return h.fail(c, "Refresh failed", err)
	}
	return c.JSON(ObjectsResponse{Objects: items})
}

// HandleGetObject returns one object.
// @Summary Get Object
// @Description Fetch one object, sharing the batch with concurrent requests.
// @Tags objects
// @Produce json
// @Param type path string true "Model type (e.g. 'Person')"
// @Param id path string true "Object id"
// @Param force query bool false "Refetch even when cached"
// @Success 200 {object} map[string]interface{} "Object"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 502 {object} map[string]string "Upstream Fetch Failed"
// @Router /objects/{type}/{id} [get]
func (h *Handler) HandleGetObject(c *fiber.Ctx) error {
	obj, err := h.service.Get(c.UserContext(), c.Params("type"), c.Params("id"), c.QueryBool("force"))
	if err != nil {
		return h.fail(c, "Get object failed", err)
	}
	return c.JSON(obj)
}

// HandleWalk refreshes objects along an attribute path.
// @Summary Walk Objects
// @Description Refresh each hop of an attribute path, fanning out over list attributes.
// @Tags objects
// @Accept json
// @Produce json
// @Param request body WalkRequest true "Root and path"
// @Success 200 {object} WalkResponse "Objects at the end of the path"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 502 {object} map[string]string "Upstream Fetch Failed"
// @Router /objects/walk [post]
func (h *Handler) HandleWalk(c *fiber.Ctx) error {
	var req WalkRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Root.Type == "" || req.Root.ID == "" {
		return badRequest(c, "root needs a type and an id")
	}

	res, err := h.service.Walk(c.UserContext(), req.Root, req.Path, req.Force)
	if err != nil {
		return h.fail(c, "Walk failed", err)
	}
	items := res.Items
	if items == nil {
		items = []model.Reference{}
	}
	return c.JSON(WalkResponse{Items: items, Multiple: res.Multiple})
}

// HandleGetBindings returns the live mapped results of an owner.
// @Summary Get Bindings
// @Description List the objects related to an owner through a configured mapping.
// @Tags bindings
// @Produce json
// @Param mapping path string true "Mapping name"
// @Param type path string true "Owner model type"
// @Param id path string true "Owner id"
// @Success 200 {object} BindingsResponse "Mapped results"
// @Failure 404 {object} map[string]string "Not Found"
// @Failure 502 {object} map[string]string "Upstream Fetch Failed"
// @Router /bindings/{mapping}/{type}/{id} [get]
func (h *Handler) HandleGetBindings(c *fiber.Ctx) error {
	results, err := h.service.Bindings(c.UserContext(), c.Params("mapping"), c.Params("type"), c.Params("id"))
	if err != nil {
		return h.fail(c, "Get bindings failed", err)
	}
	if results == nil {
		results = []mapping.MappedResult{}
	}
	return c.JSON(BindingsResponse{Results: results})
}

// HandlePublishEvent publishes a lifecycle event.
// @Summary Publish Event
// @Description Notify live bindings that records were created, destroyed or orphaned.
// @Tags events
// @Accept json
// @Produce json
// @Param type path string true "Model type"
// @Param event path string true "created, destroyed or orphaned"
// @Param request body EventRequest true "Affected records"
// @Success 202 {object} ObjectsResponse "Published references"
// @Failure 400 {object} map[string]string "Bad Request"
// @Failure 404 {object} map[string]string "Unknown Model"
// @Router /events/{type}/{event} [post]
func (h *Handler) HandlePublishEvent(c *fiber.Ctx) error {
	var req EventRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if len(req.Records) == 0 {
		return badRequest(c, "records must not be empty")
	}

	event := events.Event(strings.ToLower(c.Params("event")))
	refs, err := h.service.Publish(c.UserContext(), c.Params("type"), event, req.Records)
	if err != nil {
		return h.fail(c, "Publish event failed", err)
	}
	return c.Status(fiber.StatusAccepted).JSON(ObjectsResponse{Objects: refs})
}

func (h *Handler) fail(c *fiber.Ctx, msg string, err error) error {
	status := statusFor(err)
	l := logger.WithRayID(h.service.logger, c)
	if status >= fiber.StatusInternalServerError {
		l.Error(msg, zap.Error(err))
	} else {
		l.Debug(msg, zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func statusFor(err error) int {
	var fetchErr *refresh.FetchError
	switch {
	case errors.Is(err, refresh.ErrUnknownModel),
		errors.Is(err, ErrNotFound),
		errors.Is(err, ErrUnknownMapping):
		return fiber.StatusNotFound
	case errors.Is(err, ErrInvalidEvent):
		return fiber.StatusBadRequest
	case errors.As(err, &fetchErr):
		return fiber.StatusBadGateway
	default:
		return fiber.StatusInternalServerError
	}
}

func badRequest(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error": msg,
	})
}
