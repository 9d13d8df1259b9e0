package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveEvaluationLabelsOutcome(t *testing.T) {
	matchedBefore := testutil.ToFloat64(evaluationsTotal.WithLabelValues("matched"))
	noneBefore := testutil.ToFloat64(evaluationsTotal.WithLabelValues("none"))

	ObserveEvaluation(2)
	ObserveEvaluation(0)

	if got := testutil.ToFloat64(evaluationsTotal.WithLabelValues("matched")) - matchedBefore; got != 1 {
		t.Fatalf("expected matched +1, got %v", got)
	}
	if got := testutil.ToFloat64(evaluationsTotal.WithLabelValues("none")) - noneBefore; got != 1 {
		t.Fatalf("expected none +1, got %v", got)
	}
}

func TestHandlerExposesCounters(t *testing.T) {
	gin.SetMode(gin.TestMode)
	IncSubmission(StatusOK)
	IncLogicMutation("add_premise")

	r := gin.New()
	r.GET("/metrics", Handler())
	resp := httptest.NewRecorder()
	r.ServeHTTP(resp, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	if resp.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.Code)
	}
	body := resp.Body.String()
	for _, want := range []string{
		`survey_submissions_total{status="ok"}`,
		`survey_logic_mutations_total{op="add_premise"}`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %s in metrics output", want)
		}
	}
}
