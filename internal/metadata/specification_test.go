package metadata

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thothexport/internal/exporterr"
	"thothexport/internal/testutil"
	"thothexport/internal/work"
)

func TestParseSpecification(t *testing.T) {
	tests := []struct {
		id          string
		format      Format
		contentType string
	}{
		{"onix_2.1::ebsco_host", FormatOnix, "text/xml; charset=utf-8"},
		{"onix_3.0::project_muse", FormatOnix, "text/xml; charset=utf-8"},
		{"onix_3.0::oapen", FormatOnix, "text/xml; charset=utf-8"},
		{"csv::thoth", FormatCSV, "text/csv; charset=utf-8"},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			spec, err := ParseSpecification(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.id, spec.ID)
			assert.Equal(t, tt.format, spec.Format)
			assert.Equal(t, tt.contentType, spec.ContentType())
			assert.NotEmpty(t, spec.AcceptedBy)
		})
	}
}

func TestParseSpecificationUnknown(t *testing.T) {
	for _, id := range []string{"", "onix_3.0::unknown", "CSV::THOTH", "csv::thoth "} {
		_, err := ParseSpecification(id)

		var invalid *exporterr.InvalidSpecificationError
		require.True(t, errors.As(err, &invalid), id)
		assert.Equal(t, id, invalid.Name)
		assert.Equal(t, "Invalid metadata specification: "+id, err.Error())
	}
}

func TestSpecificationsReturnsCopy(t *testing.T) {
	specs := Specifications()
	require.Len(t, specs, 4)
	specs[0].ID = "mutated"
	assert.NotEqual(t, "mutated", Specifications()[0].ID)
}

func TestGenerateRecord(t *testing.T) {
	t.Run("csv", func(t *testing.T) {
		rec, err := Generate("csv::thoth", []work.Work{testutil.TestWork()}, testutil.TestWorkID)
		require.NoError(t, err)
		assert.Equal(t, "text/csv; charset=utf-8", rec.ContentType())
		assert.Equal(t, "csv__thoth__00000000-0000-0000-aaaa-000000000001.csv", rec.Filename)
		assert.Equal(t, `attachment; filename="csv__thoth__00000000-0000-0000-aaaa-000000000001.csv"`, rec.ContentDisposition())
		assert.Contains(t, string(rec.Body), `"publisher","imprint","work_type"`)
	})

	t.Run("onix", func(t *testing.T) {
		rec, err := Generate("onix_3.0::project_muse", []work.Work{testutil.TestWork()}, "batch")
		require.NoError(t, err)
		assert.Equal(t, "onix_3_0__project_muse__batch.xml", rec.Filename)
		assert.Contains(t, string(rec.Body), `<ONIXMessage xmlns="http://ns.editeur.org/onix/3.0/reference" release="3.0">`)
	})

	t.Run("incomplete record", func(t *testing.T) {
		_, err := Generate("onix_2.1::ebsco_host", []work.Work{{WorkID: testutil.TestWork().WorkID}}, "x")

		var incomplete *exporterr.IncompleteRecordError
		require.True(t, errors.As(err, &incomplete))
		assert.Equal(t, "onix_2.1::ebsco_host", incomplete.Specification)
		assert.Equal(t, "No PDF or EPUB URL", incomplete.Reason)
	})

	t.Run("not implemented", func(t *testing.T) {
		_, err := Generate("onix_3.0::oapen", []work.Work{testutil.TestWork()}, "x")
		assert.ErrorIs(t, err, exporterr.ErrNotImplemented)
	})
}
