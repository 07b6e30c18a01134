package handler

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"clientrepo/internal/repository"
	"clientrepo/internal/service"
)

// HealthChecker reports whether the configured storage is reachable.
type HealthChecker func(ctx context.Context) error

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, check HealthChecker, svc service.ClientService) {
	app.Get("/health", HealthCheck(check))
	app.Get("/healthz", LivenessProbe())

	clients := app.Group("/clients")
	clients.Get("/", ListClients(svc))
	clients.Get("/count", CountClients(svc))
	clients.Post("/", CreateClient(svc))
	clients.Get("/:id", GetClient(svc))
	clients.Put("/:id", ReplaceClient(svc))
	clients.Delete("/:id", DeleteClient(svc))
}

// HealthCheck godoc
// @Summary Storage health
// @Tags health
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 503 {object} errorPayload
// @Router /health [get]
func HealthCheck(check HealthChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := check(ctx); err != nil {
			return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe is a dependency-free probe.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// ListClients godoc
// @Summary List clients
// @Tags clients
// @Produce json
// @Param page query int false "page number, starting at 1"
// @Param size query int false "page size"
// @Param sort query string false "sort field" Enums(id, last_name, haircut, discount)
// @Param order query string false "sort order" Enums(asc, desc)
// @Param last_name query string false "exact last name, case-insensitive"
// @Param min_discount query number false "minimum discount"
// @Param max_discount query number false "maximum discount"
// @Success 200 {object} service.ClientListResult
// @Failure 400 {object} errorPayload
// @Router /clients [get]
func ListClients(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		page, err := strconv.Atoi(c.Query("page", "1"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_PAGE", "invalid page")
		}
		size, err := strconv.Atoi(c.Query("size", "10"))
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_SIZE", "invalid size")
		}

		var desc bool
		switch strings.ToLower(c.Query("order", "asc")) {
		case "asc":
		case "desc":
			desc = true
		default:
			return writeError(c, fiber.StatusBadRequest, "INVALID_ORDER", "order must be asc or desc")
		}

		filter, ok := parseFilter(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DISCOUNT", "invalid discount bound")
		}

		res, err := svc.List(c.UserContext(), service.ListParams{
			Filter: filter,
			Page:   page,
			Size:   size,
			Sort:   repository.SortField(c.Query("sort")),
			Desc:   desc,
		})
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(res)
	}
}

// CountClients godoc
// @Summary Count clients matching the filters
// @Tags clients
// @Produce json
// @Param last_name query string false "exact last name, case-insensitive"
// @Param min_discount query number false "minimum discount"
// @Param max_discount query number false "maximum discount"
// @Success 200 {object} map[string]int
// @Router /clients/count [get]
func CountClients(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		filter, ok := parseFilter(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_DISCOUNT", "invalid discount bound")
		}
		n, err := svc.Count(c.UserContext(), filter)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"count": n})
	}
}

// GetClient godoc
// @Summary Get a client
// @Tags clients
// @Produce json
// @Param id path int true "client id"
// @Success 200 {object} model.Client
// @Failure 404 {object} errorPayload
// @Router /clients/{id} [get]
func GetClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		client, err := svc.Get(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(client)
	}
}

// CreateClient godoc
// @Summary Create a client
// @Tags clients
// @Accept json
// @Produce json
// @Param client body service.ClientInput true "client"
// @Success 201 {object} model.Client
// @Failure 400 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /clients [post]
func CreateClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in service.ClientInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		client, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(client)
	}
}

// ReplaceClient godoc
// @Summary Replace a client
// @Tags clients
// @Accept json
// @Produce json
// @Param id path int true "client id"
// @Param client body service.ClientInput true "client"
// @Success 200 {object} model.Client
// @Failure 404 {object} errorPayload
// @Failure 409 {object} errorPayload
// @Router /clients/{id} [put]
func ReplaceClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		var in service.ClientInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		client, err := svc.Replace(c.UserContext(), id, in)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(client)
	}
}

// DeleteClient godoc
// @Summary Delete a client
// @Tags clients
// @Param id path int true "client id"
// @Success 204
// @Failure 404 {object} errorPayload
// @Router /clients/{id} [delete]
func DeleteClient(svc service.ClientService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
		}
		if err := svc.Delete(c.UserContext(), id); err != nil {
			return writeServiceError(c, err)
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

func parseID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func parseFilter(c *fiber.Ctx) (service.Filter, bool) {
	f := service.Filter{LastName: strings.TrimSpace(c.Query("last_name"))}
	for key, dst := range map[string]**float64{"min_discount": &f.MinDiscount, "max_discount": &f.MaxDiscount} {
		raw := c.Query(key)
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return service.Filter{}, false
		}
		*dst = &v
	}
	return f, true
}
