package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"clientrepo/internal/http/middleware"
	"clientrepo/internal/model"
	"clientrepo/internal/repository"
	"clientrepo/internal/service"
	serviceMocks "clientrepo/internal/service/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func jsonRequest(method, target string, body any) *http.Request {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(method, target, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func decodeError(t *testing.T, resp *http.Response) errorPayload {
	t.Helper()
	var body errorPayload
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return body
}

func TestHealthCheck(t *testing.T) {
	var checkErr error
	app := fiber.New()
	app.Get("/health", HealthCheck(func(context.Context) error { return checkErr }))

	t.Run("healthy", func(t *testing.T) {
		checkErr = nil

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body map[string]string
		json.NewDecoder(resp.Body).Decode(&body)
		assert.Equal(t, "healthy", body["status"])
	})

	t.Run("unhealthy", func(t *testing.T) {
		checkErr = errors.New("db error")

		req := httptest.NewRequest(http.MethodGet, "/health", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
		assert.Equal(t, "SERVICE_UNAVAILABLE", decodeError(t, resp).Error.Code)
	})
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestListClients(t *testing.T) {
	mockSvc := new(serviceMocks.MockClientService)
	app := fiber.New()
	app.Get("/clients", ListClients(mockSvc))

	t.Run("success", func(t *testing.T) {
		expectedRes := &service.ClientListResult{
			Items: []model.Client{{ID: 1, FirstName: "Ivan", LastName: "Ivanov", FatherName: "Ivanovich"}},
			Total: 1, Page: 1, Size: 10,
		}
		mockSvc.On("List", mock.Anything, service.ListParams{Page: 1, Size: 10}).Return(expectedRes, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/clients", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var result service.ClientListResult
		json.NewDecoder(resp.Body).Decode(&result)
		assert.Len(t, result.Items, 1)
		assert.Equal(t, 1, result.Total)
		mockSvc.AssertExpectations(t)
	})

	t.Run("sort and filters", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, mock.MatchedBy(func(p service.ListParams) bool {
			return p.Page == 2 && p.Size == 5 && p.Sort == repository.SortByLastName && p.Desc &&
				p.LastName == "Petrov" && p.MinDiscount != nil && *p.MinDiscount == 2.5 && p.MaxDiscount == nil
		})).Return(&service.ClientListResult{Items: []model.Client{}}, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/clients?page=2&size=5&sort=last_name&order=DESC&last_name=Petrov&min_discount=2.5", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("invalid page", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/clients?page=abc", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_PAGE", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid order", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/clients?order=sideways", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_ORDER", decodeError(t, resp).Error.Code)
	})

	t.Run("invalid discount", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/clients?max_discount=lots", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_DISCOUNT", decodeError(t, resp).Error.Code)
	})

	t.Run("unknown sort field", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, mock.Anything).
			Return(nil, errors.Join(service.ErrInvalidInput, errors.New("unknown sort field"))).Once()

		req := httptest.NewRequest(http.MethodGet, "/clients?sort=age", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "VALIDATION_ERROR", decodeError(t, resp).Error.Code)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, mock.Anything).Return(nil, errors.New("service error")).Once()

		req := httptest.NewRequest(http.MethodGet, "/clients", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "INTERNAL_ERROR", decodeError(t, resp).Error.Code)
	})

	t.Run("storage unavailable", func(t *testing.T) {
		mockSvc.On("List", mock.Anything, mock.Anything).Return(nil, repository.ErrStorageUnavailable).Once()

		req := httptest.NewRequest(http.MethodGet, "/clients", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
	})
}

func TestCountClients(t *testing.T) {
	mockSvc := new(serviceMocks.MockClientService)
	app := fiber.New()
	app.Get("/clients/count", CountClients(mockSvc))

	mockSvc.On("Count", mock.Anything, service.Filter{LastName: "Ivanov"}).Return(2, nil).Once()

	req := httptest.NewRequest(http.MethodGet, "/clients/count?last_name=Ivanov", nil)
	resp, _ := app.Test(req)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var body map[string]int
	json.NewDecoder(resp.Body).Decode(&body)
	assert.Equal(t, 2, body["count"])
	mockSvc.AssertExpectations(t)
}

func TestGetClient(t *testing.T) {
	mockSvc := new(serviceMocks.MockClientService)
	app := fiber.New()
	app.Get("/clients/:id", GetClient(mockSvc))

	t.Run("success", func(t *testing.T) {
		c := &model.Client{ID: 7, FirstName: "Ivan", LastName: "Ivanov", FatherName: "Ivanovich"}
		mockSvc.On("Get", mock.Anything, int64(7)).Return(c, nil).Once()

		req := httptest.NewRequest(http.MethodGet, "/clients/7", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		var got model.Client
		json.NewDecoder(resp.Body).Decode(&got)
		assert.Equal(t, *c, got)
	})

	t.Run("invalid id", func(t *testing.T) {
		for _, id := range []string{"abc", "0", "-4"} {
			req := httptest.NewRequest(http.MethodGet, "/clients/"+id, nil)
			resp, _ := app.Test(req)

			assert.Equal(t, http.StatusBadRequest, resp.StatusCode, id)
			assert.Equal(t, "INVALID_ID", decodeError(t, resp).Error.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Get", mock.Anything, int64(8)).Return(nil, service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodGet, "/clients/8", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Error.Code)
	})
}

func TestCreateClient(t *testing.T) {
	mockSvc := new(serviceMocks.MockClientService)
	app := fiber.New()
	app.Post("/clients", CreateClient(mockSvc))

	in := service.ClientInput{FirstName: "Ivan", LastName: "Ivanov", FatherName: "Ivanovich", HaircutCounter: 2, Discount: 5}

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, in).
			Return(&model.Client{ID: 1, FirstName: "Ivan", LastName: "Ivanov", FatherName: "Ivanovich", HaircutCounter: 2, Discount: 5}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/clients", in))

		assert.Equal(t, http.StatusCreated, resp.StatusCode)
		var got model.Client
		json.NewDecoder(resp.Body).Decode(&got)
		assert.Equal(t, int64(1), got.ID)
	})

	t.Run("invalid body", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/clients", bytes.NewBufferString("{"))
		req.Header.Set("Content-Type", "application/json")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "INVALID_BODY", decodeError(t, resp).Error.Code)
	})

	t.Run("conflict", func(t *testing.T) {
		mockSvc.On("Create", mock.Anything, in).Return(nil, service.ErrConflict).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/clients", in))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
		assert.Equal(t, "CONFLICT", decodeError(t, resp).Error.Code)
	})

	t.Run("validation error", func(t *testing.T) {
		bad := in
		bad.Discount = 400
		mockSvc.On("Create", mock.Anything, bad).
			Return(nil, errors.Join(service.ErrInvalidInput, model.ErrValidation)).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPost, "/clients", bad))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "VALIDATION_ERROR", body.Error.Code)
		assert.Contains(t, body.Error.Message, "invalid client")
	})
}

func TestReplaceClient(t *testing.T) {
	mockSvc := new(serviceMocks.MockClientService)
	app := fiber.New()
	app.Put("/clients/:id", ReplaceClient(mockSvc))

	in := service.ClientInput{FirstName: "Petr", LastName: "Petrov", FatherName: "Petrovich", HaircutCounter: 1}

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Replace", mock.Anything, int64(3), in).
			Return(&model.Client{ID: 3, FirstName: "Petr", LastName: "Petrov", FatherName: "Petrovich", HaircutCounter: 1}, nil).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/clients/3", in))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Replace", mock.Anything, int64(4), in).Return(nil, service.ErrNotFound).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/clients/4", in))

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("conflict", func(t *testing.T) {
		mockSvc.On("Replace", mock.Anything, int64(3), in).Return(nil, service.ErrConflict).Once()

		resp, _ := app.Test(jsonRequest(http.MethodPut, "/clients/3", in))

		assert.Equal(t, http.StatusConflict, resp.StatusCode)
	})

	t.Run("invalid id", func(t *testing.T) {
		resp, _ := app.Test(jsonRequest(http.MethodPut, "/clients/x", in))

		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	mockSvc.AssertExpectations(t)
}

func TestDeleteClient(t *testing.T) {
	mockSvc := new(serviceMocks.MockClientService)
	app := fiber.New()
	app.Delete("/clients/:id", DeleteClient(mockSvc))

	t.Run("success", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(1)).Return(nil).Once()

		req := httptest.NewRequest(http.MethodDelete, "/clients/1", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	})

	t.Run("not found", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(2)).Return(service.ErrNotFound).Once()

		req := httptest.NewRequest(http.MethodDelete, "/clients/2", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})

	t.Run("service error", func(t *testing.T) {
		mockSvc.On("Delete", mock.Anything, int64(3)).Return(errors.New("boom")).Once()

		req := httptest.NewRequest(http.MethodDelete, "/clients/3", nil)
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	})

	mockSvc.AssertExpectations(t)
}

func TestRegisterRoutes(t *testing.T) {
	mockSvc := new(serviceMocks.MockClientService)
	app := fiber.New(fiber.Config{ErrorHandler: ErrorHandler()})
	app.Use(middleware.RequestID())
	RegisterRoutes(app, func(context.Context) error { return nil }, mockSvc)

	t.Run("count is not shadowed by id", func(t *testing.T) {
		mockSvc.On("Count", mock.Anything, service.Filter{}).Return(0, nil).Once()

		resp, _ := app.Test(httptest.NewRequest(http.MethodGet, "/clients/count", nil))

		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("unknown route uses error handler", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/nope", nil)
		req.Header.Set(middleware.RequestIDHeader, "rid-1")
		resp, _ := app.Test(req)

		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		body := decodeError(t, resp)
		assert.Equal(t, "NOT_FOUND", body.Error.Code)
		assert.Equal(t, "rid-1", body.RequestID)
	})

	mockSvc.AssertExpectations(t)
}
