package handler

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pkg/errors"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"github.com/Astemirdum/store-service/pkg/auth"
	md "github.com/Astemirdum/store-service/pkg/middleware"
	"github.com/Astemirdum/store-service/pkg/validate"
	"github.com/Astemirdum/store-service/store/internal/errs"
	"github.com/Astemirdum/store-service/store/internal/model"
	_ "github.com/Astemirdum/store-service/swagger"
)

const tokenTTL = 24 * time.Hour

type Handler struct {
	storeSvc StoreService
	log      *zap.Logger
}

func New(storeSvc StoreService, log *zap.Logger) *Handler {
	h := &Handler{
		storeSvc: storeSvc,
		log:      log,
	}
	return h
}

func (h *Handler) NewRouter() *echo.Echo {
	e := echo.New()
	const (
		baseRPS = 10
		apiRPS  = 100
	)
	e.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{
		StackSize: 4 << 10, // 4 KB
	}))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{http.MethodGet, http.MethodOptions, http.MethodHead, http.MethodPut, http.MethodPatch, http.MethodPost, http.MethodDelete},
		AllowCredentials: true,
	}))

	base := e.Group("", md.NewRateLimiter(baseRPS))
	base.GET("/manage/health", h.Health)
	base.GET("/swagger/*", echoSwagger.WrapHandler)

	e.Validator = validate.NewCustomValidator()

	api := e.Group("/api/v1",
		middleware.RequestLoggerWithConfig(md.RequestLoggerConfig()),
		middleware.RequestID(),
		md.NewRateLimiter(apiRPS),
		md.JwtAuthentication,
	)

	api.POST("/register", h.Register)
	api.POST("/authorize", h.Authorize)

	api.GET("/book", h.ListBooks)
	api.POST("/book", h.CreateBook)
	api.GET("/book/:id", h.GetBook)
	api.PUT("/book/:id", h.UpdateBook)
	api.PATCH("/book/:id", h.PatchBook)
	api.DELETE("/book/:id", h.DeleteBook)

	api.PATCH("/book/relation/:bookID", h.PatchRelation)

	return e
}

func (h *Handler) Health(c echo.Context) error {
	return c.String(http.StatusOK, "OK")
}

// Register godoc
// @Summary  Create a user account
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    input body model.UserCreateRequest true "credentials"
// @Success  201 {object} model.User
// @Router   /register [post]
func (h *Handler) Register(c echo.Context) error {
	var req model.UserCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.storeSvc.Register(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, user)
}

// Authorize godoc
// @Summary  Exchange credentials for a bearer token
// @Tags     auth
// @Accept   json
// @Produce  json
// @Param    input body model.AuthRequest true "credentials"
// @Success  200 {object} model.AuthResponse
// @Router   /authorize [post]
func (h *Handler) Authorize(c echo.Context) error {
	var req model.AuthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	user, err := h.storeSvc.Authorize(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}

	role := auth.RoleUser
	if user.IsStaff {
		role = auth.RoleStaff
	}
	token, expiresAt, err := auth.NewToken(user.Username, role, tokenTTL)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}

	return c.JSON(http.StatusOK, model.AuthResponse{
		ExpiresIn:   int(expiresAt.Unix()),
		AccessToken: token,
	})
}

// ListBooks godoc
// @Summary  List books with like/rating aggregates
// @Tags     books
// @Produce  json
// @Param    search   query string false "substring match over name and author_name"
// @Param    price    query number false "price equality filter"
// @Param    ordering query string false "price | -price | author_name | -author_name"
// @Success  200 {array} model.BookResponse
// @Router   /book [get]
func (h *Handler) ListBooks(c echo.Context) error {
	listQ := model.ListBooksQuery{
		Search:   c.QueryParam("search"),
		Ordering: c.QueryParam("ordering"),
	}
	if priceParam := c.QueryParam("price"); priceParam != "" {
		price, err := strconv.ParseFloat(priceParam, 64)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "price is invalid")
		}
		listQ.Price = &price
	}

	books, err := h.storeSvc.ListBooks(c.Request().Context(), listQ)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, model.NewBookResponses(books))
}

// GetBook godoc
// @Summary  Retrieve one book with aggregates
// @Tags     books
// @Produce  json
// @Param    id path int true "book id"
// @Success  200 {object} model.BookResponse
// @Router   /book/{id} [get]
func (h *Handler) GetBook(c echo.Context) error {
	id, err := bookID(c, "id")
	if err != nil {
		return err
	}
	book, err := h.storeSvc.GetBook(c.Request().Context(), id)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, model.NewBookResponse(book))
}

// CreateBook godoc
// @Summary  Create a book owned by the requester
// @Tags     books
// @Accept   json
// @Produce  json
// @Param    input body model.BookCreateRequest true "book"
// @Success  201 {object} model.BookResponse
// @Security BearerAuth
// @Router   /book [post]
func (h *Handler) CreateBook(c echo.Context) error {
	userName, err := auth.GetUserName(c.Request().Context())
	if err != nil {
		return httpError(errs.ErrNotAuthenticated)
	}

	var req model.BookCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	book, err := h.storeSvc.CreateBook(c.Request().Context(), userName, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, model.NewBookResponse(book))
}

// UpdateBook godoc
// @Summary  Replace a book (owner or staff)
// @Tags     books
// @Accept   json
// @Produce  json
// @Param    id    path int true "book id"
// @Param    input body model.BookCreateRequest true "book"
// @Success  200 {object} model.BookResponse
// @Security BearerAuth
// @Router   /book/{id} [put]
func (h *Handler) UpdateBook(c echo.Context) error {
	id, err := bookID(c, "id")
	if err != nil {
		return err
	}
	userName, err := auth.GetUserName(c.Request().Context())
	if err != nil {
		return httpError(errs.ErrNotAuthenticated)
	}

	var req model.BookCreateRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	upd := model.BookUpdateRequest{
		Name:       &req.Name,
		Price:      &req.Price,
		AuthorName: &req.AuthorName,
	}
	book, err := h.storeSvc.UpdateBook(c.Request().Context(), userName, id, upd)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, model.NewBookResponse(book))
}

// PatchBook godoc
// @Summary  Partially update a book (owner or staff)
// @Tags     books
// @Accept   json
// @Produce  json
// @Param    id    path int true "book id"
// @Param    input body model.BookUpdateRequest true "fields to change"
// @Success  200 {object} model.BookResponse
// @Security BearerAuth
// @Router   /book/{id} [patch]
func (h *Handler) PatchBook(c echo.Context) error {
	id, err := bookID(c, "id")
	if err != nil {
		return err
	}
	userName, err := auth.GetUserName(c.Request().Context())
	if err != nil {
		return httpError(errs.ErrNotAuthenticated)
	}

	var upd model.BookUpdateRequest
	if err := c.Bind(&upd); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	book, err := h.storeSvc.UpdateBook(c.Request().Context(), userName, id, upd)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, model.NewBookResponse(book))
}

// DeleteBook godoc
// @Summary  Delete a book (owner or staff)
// @Tags     books
// @Param    id path int true "book id"
// @Success  204
// @Security BearerAuth
// @Router   /book/{id} [delete]
func (h *Handler) DeleteBook(c echo.Context) error {
	id, err := bookID(c, "id")
	if err != nil {
		return err
	}
	userName, err := auth.GetUserName(c.Request().Context())
	if err != nil {
		return httpError(errs.ErrNotAuthenticated)
	}

	if err := h.storeSvc.DeleteBook(c.Request().Context(), userName, id); err != nil {
		return httpError(err)
	}
	return c.NoContent(http.StatusNoContent)
}

// PatchRelation godoc
// @Summary  Upsert the requester's relation to a book
// @Tags     relations
// @Accept   json
// @Produce  json
// @Param    bookID path int true "book id"
// @Param    input  body model.RelationPatchRequest true "like / in_bookmarks / rate"
// @Success  200 {object} model.RelationResponse
// @Security BearerAuth
// @Router   /book/relation/{bookID} [patch]
func (h *Handler) PatchRelation(c echo.Context) error {
	id, err := bookID(c, "bookID")
	if err != nil {
		return err
	}
	userName, err := auth.GetUserName(c.Request().Context())
	if err != nil {
		return httpError(errs.ErrNotAuthenticated)
	}

	var req model.RelationPatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	rel, err := h.storeSvc.PatchRelation(c.Request().Context(), userName, id, req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, model.NewRelationResponse(rel))
}

func bookID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, echo.NewHTTPError(http.StatusBadRequest, fmt.Sprintf("invalid path param %q", name))
	}
	return id, nil
}

// httpError maps domain errors onto the uniform error policy: validation
// failures carry field-keyed messages, authorization failures keep their
// fixed messages, unknown ids are 404.
func httpError(err error) *echo.HTTPError {
	var vErr *errs.ValidationError
	switch {
	case errors.As(err, &vErr):
		return echo.NewHTTPError(http.StatusBadRequest, vErr.Response())
	case errors.Is(err, errs.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, errs.ErrNotAuthenticated), errors.Is(err, errs.ErrPermissionDenied):
		return echo.NewHTTPError(http.StatusForbidden, err.Error())
	case errors.Is(err, errs.ErrUserExists):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, errs.ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusUnauthorized, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
}
