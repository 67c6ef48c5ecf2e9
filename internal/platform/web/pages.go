package web

import (
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/ehr/backoffice/internal/domain/catalog"
)

// Stats summarizes the catalogs for the dashboard.
type Stats struct {
	PendingVerifications int
	DeniedClaims         int
	PendingClaims        int
	HighPriorityTasks    int
	OpenTasks            int
}

// Summarize counts the work items in store.
func Summarize(store *catalog.Store) Stats {
	var s Stats
	for _, p := range store.Patients() {
		if p.Status == catalog.PatientStatusPendingVerification {
			s.PendingVerifications++
		}
	}
	for _, c := range store.Claims() {
		switch c.Status {
		case catalog.ClaimStatusDenied:
			s.DeniedClaims++
		case catalog.ClaimStatusPending:
			s.PendingClaims++
		}
	}
	for _, t := range store.CareTasks() {
		s.OpenTasks++
		if t.Priority == catalog.PriorityHigh {
			s.HighPriorityTasks++
		}
	}
	return s
}

type PageHandler struct {
	store *catalog.Store
}

func NewPageHandler(store *catalog.Store) *PageHandler {
	return &PageHandler{store: store}
}

func (h *PageHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/", h.Dashboard)
	e.GET("/insurance", h.Insurance)
	e.GET("/care-coordination", h.CareCoordination)
	e.GET("/static/*", StaticHandler())
}

func (h *PageHandler) Dashboard(c echo.Context) error {
	return c.Render(http.StatusOK, PageDashboard, map[string]interface{}{
		"Title": "Dashboard",
		"Stats": Summarize(h.store),
	})
}

// Insurance lists patients and claims. Patients take q, insurance and sort;
// claims take claim_q, status, amount and claim_sort so both lists can be
// filtered from one form.
func (h *PageHandler) Insurance(c echo.Context) error {
	v := c.QueryParams()
	pq := catalog.PatientQueryFrom(v)
	cq := catalog.ClaimQueryFrom(url.Values{
		"q":      v["claim_q"],
		"status": v["status"],
		"amount": v["amount"],
		"sort":   v["claim_sort"],
	})

	patients, err := h.store.FindPatients(pq)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	claims, err := h.store.FindClaims(cq)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.Render(http.StatusOK, PageInsurance, map[string]interface{}{
		"Title":        "Insurance",
		"Patients":     patients,
		"Claims":       claims,
		"PatientQuery": pq,
		"ClaimQuery":   cq,
		"Insurers":     h.store.Insurers(),
	})
}

func (h *PageHandler) CareCoordination(c echo.Context) error {
	q := catalog.CareTaskQueryFrom(c.QueryParams())
	tasks, err := h.store.FindCareTasks(q)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return c.Render(http.StatusOK, PageCareCoordination, map[string]interface{}{
		"Title":     "Care Coordination",
		"CareTasks": tasks,
		"Query":     q,
		"TaskTypes": h.store.TaskTypes(),
	})
}
