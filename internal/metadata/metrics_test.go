package metadata

import (
	"errors"
	"fmt"
	"testing"

	promtest "github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"thothexport/internal/exporterr"
	"thothexport/internal/testutil"
	"thothexport/internal/work"
)

func TestOutcome(t *testing.T) {
	assert.Equal(t, "ok", outcome(nil))
	assert.Equal(t, "incomplete", outcome(exporterr.Incomplete("csv::thoth", "x")))
	assert.Equal(t, "not_implemented", outcome(fmt.Errorf("oapen: %w", exporterr.ErrNotImplemented)))
	assert.Equal(t, "error", outcome(errors.New("boom")))
}

func TestObserveExport(t *testing.T) {
	counter := exportsTotal.WithLabelValues("csv::thoth", scopeWork, "ok")
	before := promtest.ToFloat64(counter)

	rec, err := Generate("csv::thoth", []work.Work{testutil.TestWork()}, "x")
	observeExport("csv::thoth", scopeWork, rec, err)

	assert.Equal(t, before+1, promtest.ToFloat64(counter))
}
