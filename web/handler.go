package web

import (
	"math"
	"net/http"
	"strconv"
	"strings"

	bench "github.com/fjl/dbbench-advisor"
	"github.com/labstack/echo/v4"
)

type pageData struct {
	Operations     []string
	Submitted      bool
	NumFiles       string
	OperationType  string
	Recommendation string
	Ranking        []bench.Score
}

type recommendResponse struct {
	OperationType  string        `json:"operation_type"`
	Recommendation string        `json:"recommendation"`
	Ranking        []bench.Score `json:"ranking"`
}

func (s *Server) index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", pageData{
		Operations: s.adv.Operations(),
	})
}

// recommend handles the form. num_files must be an integer but does not
// influence the result.
func (s *Server) recommend(c echo.Context) error {
	numFiles := strings.TrimSpace(c.FormValue("num_files"))
	if _, err := strconv.Atoi(numFiles); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "num_files must be an integer")
	}
	data := pageData{
		Operations:    s.adv.Operations(),
		Submitted:     true,
		NumFiles:      numFiles,
		OperationType: strings.TrimSpace(c.FormValue("operation_type")),
	}
	if data.OperationType != "" {
		data.Ranking = s.adv.Rank(data.OperationType)
		data.Recommendation = s.adv.Recommend(data.OperationType)
	}
	return c.Render(http.StatusOK, "index.html", data)
}

func (s *Server) recommendAPI(c echo.Context) error {
	op := strings.TrimSpace(c.QueryParam("operation_type"))
	if op == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "operation_type is required")
	}
	resp := recommendResponse{
		OperationType: op,
		Ranking:       s.adv.Rank(op),
	}
	// JSON has no infinity; a zero mean latency reports the largest float.
	for i := range resp.Ranking {
		if math.IsInf(resp.Ranking[i].Value, 1) {
			resp.Ranking[i].Value = math.MaxFloat64
		}
	}
	resp.Recommendation = s.adv.Recommend(op)
	return c.JSON(http.StatusOK, resp)
}

func (s *Server) health(c echo.Context) error {
	return c.String(http.StatusOK, "ok")
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
