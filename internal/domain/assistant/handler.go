package assistant

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/ehr/backoffice/internal/domain/catalog"
	"github.com/ehr/backoffice/pkg/pagination"
)

type Handler struct {
	svc    *Service
	logger zerolog.Logger
}

func NewHandler(svc *Service, logger zerolog.Logger) *Handler {
	return &Handler{svc: svc, logger: logger}
}

// RegisterRoutes mounts the process endpoints on api (/api) and the catalog
// listings on v1 (/api/v1).
func (h *Handler) RegisterRoutes(api *echo.Group, v1 *echo.Group) {
	api.POST("/verify-insurance", h.VerifyInsurance)
	api.POST("/follow-up-claim", h.FollowUpClaim)
	api.POST("/coordinate-care", h.CoordinateCare)
	api.POST("/stop-process", h.StopProcess)

	v1.GET("/patients", h.ListPatients)
	v1.GET("/patients/:id", h.GetPatient)
	v1.GET("/claims", h.ListClaims)
	v1.GET("/claims/:id", h.GetClaim)
	v1.GET("/care-tasks", h.ListCareTasks)
	v1.GET("/care-tasks/:id", h.GetCareTask)
}

// Ids are kept raw so that a well-formed body with a non-numeric id reads
// as an unknown record rather than a bad request.
type verifyRequest struct {
	PatientID json.RawMessage `json:"patient_id"`
}

type followUpRequest struct {
	ClaimID json.RawMessage `json:"claim_id"`
}

type coordinateRequest struct {
	TaskID json.RawMessage `json:"task_id"`
}

// recordID accepts any integral JSON number, so 2 and 2.0 both resolve to
// record 2. Strings, booleans, null and a missing field do not resolve.
func recordID(raw json.RawMessage) (int, bool) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return 0, false
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}

// bind decodes the request body. Errors the body reader already classified,
// such as 413 from the body limit, pass through unchanged.
func bind(c echo.Context, v interface{}) error {
	err := c.Bind(v)
	if err == nil {
		return nil
	}
	var he *echo.HTTPError
	if errors.As(err, &he) && he.Code != http.StatusBadRequest {
		return he
	}
	return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
}

func notFoundBody(c echo.Context, msg string) error {
	return c.JSON(http.StatusNotFound, map[string]string{"error": msg})
}

// ctx returns the request context carrying a logger tagged with the request id.
func (h *Handler) ctx(c echo.Context) context.Context {
	rid, _ := c.Get("request_id").(string)
	l := h.logger.With().Str("request_id", rid).Logger()
	return l.WithContext(c.Request().Context())
}

func notFound(c echo.Context, err error, msg string) error {
	if errors.Is(err, catalog.ErrNotFound) {
		return notFoundBody(c, msg)
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// -- Processes --

func (h *Handler) VerifyInsurance(c echo.Context) error {
	var req verifyRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id, ok := recordID(req.PatientID)
	if !ok {
		return notFoundBody(c, "Patient not found")
	}
	resp, err := h.svc.VerifyInsurance(h.ctx(c), id)
	if err != nil {
		return notFound(c, err, "Patient not found")
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) FollowUpClaim(c echo.Context) error {
	var req followUpRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id, ok := recordID(req.ClaimID)
	if !ok {
		return notFoundBody(c, "Claim not found")
	}
	resp, err := h.svc.FollowUpClaim(h.ctx(c), id)
	if err != nil {
		return notFound(c, err, "Claim not found")
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) CoordinateCare(c echo.Context) error {
	var req coordinateRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	id, ok := recordID(req.TaskID)
	if !ok {
		return notFoundBody(c, "Task not found")
	}
	resp, err := h.svc.CoordinateCare(h.ctx(c), id)
	if err != nil {
		return notFound(c, err, "Task not found")
	}
	return c.JSON(http.StatusOK, resp)
}

func (h *Handler) StopProcess(c echo.Context) error {
	return c.JSON(http.StatusOK, h.svc.StopProcess(h.ctx(c)))
}

// -- Catalog --

func page[T any](c echo.Context, items []T) error {
	resp := pagination.Page(items, pagination.FromContext(c)).WithLinks(c.Request().URL.Path)
	return c.JSON(http.StatusOK, resp)
}

func pathID(c echo.Context) (int, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}

func badQuery(err error) error {
	if errors.Is(err, catalog.ErrInvalidQuery) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
}

// ListPatients accepts q (name substring), insurance and sort
// (name|insurance|dob).
func (h *Handler) ListPatients(c echo.Context) error {
	items, err := h.svc.Store().FindPatients(catalog.PatientQueryFrom(c.QueryParams()))
	if err != nil {
		return badQuery(err)
	}
	return page(c, items)
}

func (h *Handler) GetPatient(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	p, err := h.svc.Store().Patient(id)
	if err != nil {
		return notFound(c, err, "Patient not found")
	}
	return c.JSON(http.StatusOK, p)
}

// ListClaims accepts q (patient substring), status, amount (low|medium|high)
// and sort (patient|amount|days|date).
func (h *Handler) ListClaims(c echo.Context) error {
	items, err := h.svc.Store().FindClaims(catalog.ClaimQueryFrom(c.QueryParams()))
	if err != nil {
		return badQuery(err)
	}
	return page(c, items)
}

func (h *Handler) GetClaim(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	cl, err := h.svc.Store().Claim(id)
	if err != nil {
		return notFound(c, err, "Claim not found")
	}
	return c.JSON(http.StatusOK, cl)
}

// ListCareTasks accepts priority, type, contact_method and sort
// (due|priority).
func (h *Handler) ListCareTasks(c echo.Context) error {
	items, err := h.svc.Store().FindCareTasks(catalog.CareTaskQueryFrom(c.QueryParams()))
	if err != nil {
		return badQuery(err)
	}
	return page(c, items)
}

func (h *Handler) GetCareTask(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	t, err := h.svc.Store().CareTask(id)
	if err != nil {
		return notFound(c, err, "Task not found")
	}
	return c.JSON(http.StatusOK, t)
}
