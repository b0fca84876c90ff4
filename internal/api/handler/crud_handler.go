package handler

import (
	"encoding/json"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Tourism-Ease/booking-api/internal/core/ports"
	"github.com/Tourism-Ease/booking-api/internal/infrastructure/storage"
)

// CrudHandler serves one catalog resource with the shared REST
// contract: public reads with pagination/keyword/sort, admin-only
// writes. Create and Update accept either plain JSON or a multipart
// form carrying the entity JSON in "data" plus an optional "image"
// upload whose stored path is injected via setImage.
type CrudHandler[T any] struct {
	name     string
	svc      ports.CrudService[T]
	files    *storage.LocalStore
	setImage func(*T, string)
}

// NewCrudHandler builds the handler for one resource. setImage may be
// nil for resources without an image field.
func NewCrudHandler[T any](name string, svc ports.CrudService[T], files *storage.LocalStore, setImage func(*T, string)) *CrudHandler[T] {
	return &CrudHandler[T]{name: name, svc: svc, files: files, setImage: setImage}
}

// Register mounts the resource routes on g. adminMW guards the
// mutating routes; reads stay public.
func (h *CrudHandler[T]) Register(g *echo.Group, adminMW ...echo.MiddlewareFunc) {
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.Create, adminMW...)
	g.PUT("/:id", h.Update, adminMW...)
	g.DELETE("/:id", h.Delete, adminMW...)
}

// List returns one page of the resource.
//
// @Summary      List a catalog resource
// @Tags         catalog
// @Produce      json
// @Param        page     query  int     false  "Page number"
// @Param        limit    query  int     false  "Page size"
// @Param        keyword  query  string  false  "Keyword filter"
// @Param        sort     query  string  false  "Sort expression, e.g. price,-createdAt"
// @Success      200      {object}  listEnvelope[any]
// @Failure      400      {object}  map[string]string
func (h *CrudHandler[T]) List(c echo.Context) error {
	q, err := bindListQuery(c)
	if err != nil {
		return err
	}

	page, err := h.svc.List(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newListEnvelope(page))
}

// Get returns a single entity by id.
//
// @Summary      Get a catalog entity
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Entity id"
// @Success      200  {object}  dataEnvelope[any]
// @Failure      404  {object}  map[string]string
func (h *CrudHandler[T]) Get(c echo.Context) error {
	entity, err := h.svc.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataEnvelope[*T]{Data: entity})
}

// Create inserts a new entity. Admin only.
//
// @Summary      Create a catalog entity
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Success      201  {object}  dataEnvelope[any]
// @Failure      400  {object}  map[string]string
func (h *CrudHandler[T]) Create(c echo.Context) error {
	entity, err := h.bindEntity(c)
	if err != nil {
		return err
	}

	created, err := h.svc.Create(c.Request().Context(), entity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, dataEnvelope[*T]{Data: created})
}

// Update replaces an entity. Admin only.
//
// @Summary      Update a catalog entity
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id   path      string  true  "Entity id"
// @Success      200  {object}  dataEnvelope[any]
// @Failure      404  {object}  map[string]string
func (h *CrudHandler[T]) Update(c echo.Context) error {
	entity, err := h.bindEntity(c)
	if err != nil {
		return err
	}

	updated, err := h.svc.Update(c.Request().Context(), c.Param("id"), entity)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dataEnvelope[*T]{Data: updated})
}

// Delete removes an entity. Admin only.
//
// @Summary      Delete a catalog entity
// @Tags         catalog
// @Produce      json
// @Param        id   path      string  true  "Entity id"
// @Success      200  {object}  messageResponse
// @Failure      404  {object}  map[string]string
func (h *CrudHandler[T]) Delete(c echo.Context) error {
	if err := h.svc.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, messageResponse{Message: h.name + " deleted"})
}

// bindEntity decodes the entity from a JSON body or a multipart form.
// Multipart requests put the entity JSON in the "data" part; an
// attached "image" file is stored first so its public path lands on
// the entity before validation.
func (h *CrudHandler[T]) bindEntity(c echo.Context) (*T, error) {
	entity := new(T)

	contentType := c.Request().Header.Get(echo.HeaderContentType)
	if isMultipart(contentType) {
		raw := c.FormValue("data")
		if raw == "" {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "missing data payload")
		}
		if err := json.Unmarshal([]byte(raw), entity); err != nil {
			return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid data payload")
		}
		if file, err := c.FormFile("image"); err == nil && h.setImage != nil {
			path, err := h.files.Save(file)
			if err != nil {
				return nil, err
			}
			h.setImage(entity, path)
		}
	} else if err := c.Bind(entity); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	if err := c.Validate(entity); err != nil {
		return nil, echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return entity, nil
}
