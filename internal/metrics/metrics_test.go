package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTutorCounters(t *testing.T) {
	m := New()

	m.ObserveSubmission("linear", ResultCorrect)
	m.ObserveSubmission("linear", ResultCorrect)
	m.ObserveSubmission("quadratic", ResultInvalid)
	m.ObserveHint("quadratic", "catalog")
	m.ObserveCompletion("linear")
	m.ObserveQuiz("high")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.Submissions.WithLabelValues("linear", ResultCorrect)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Submissions.WithLabelValues("quadratic", ResultInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Hints.WithLabelValues("quadratic", "catalog")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Completions.WithLabelValues("linear")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.QuizScores.WithLabelValues("high")))
	assert.Equal(t, 2, testutil.CollectAndCount(m.Submissions))
}

func TestMiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := New()

	r := gin.New()
	r.Use(m.Middleware())
	r.GET("/linear/equation/:id", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/metrics", m.Handler())

	for _, path := range []string{"/linear/equation/1", "/linear/equation/2", "/missing"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	}

	assert.Equal(t, 2.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "/linear/equation/:id", "200")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.RequestCounter.WithLabelValues("GET", "unmatched", "404")))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "algebrix_http_requests_total")
	assert.Contains(t, w.Body.String(), "go_goroutines")
}

func TestSeparateRegistries(t *testing.T) {
	a, b := New(), New()
	a.ObserveCompletion("linear")
	assert.Equal(t, 0.0, testutil.ToFloat64(b.Completions.WithLabelValues("linear")))
	assert.NotSame(t, a.Registry(), b.Registry())
}
