package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMutation(t *testing.T) {
	before := testutil.ToFloat64(Mutations.WithLabelValues("likes", "create"))
	Mutation("likes", "create")
	Mutation("likes", "create")
	assert.Equal(t, before+2, testutil.ToFloat64(Mutations.WithLabelValues("likes", "create")))
}

func TestHandlerExposesCollectors(t *testing.T) {
	Mutation("posts", "create")

	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `social_mutations_total{entity="posts",op="create"}`)
}
