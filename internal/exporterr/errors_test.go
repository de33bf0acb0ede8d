package exporterr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIncompleteRecordError(t *testing.T) {
	err := Incomplete("onix_2.1::ebsco_host", "No PDF or EPUB URL")

	assert.EqualError(t, err, "Could not generate onix_2.1::ebsco_host: No PDF or EPUB URL")

	var incomplete *IncompleteRecordError
	wrapped := fmt.Errorf("export work: %w", err)
	assert.True(t, errors.As(wrapped, &incomplete))
	assert.Equal(t, "onix_2.1::ebsco_host", incomplete.Specification)
	assert.Equal(t, "No PDF or EPUB URL", incomplete.Reason)
}

func TestInvalidSpecificationError(t *testing.T) {
	var err error = &InvalidSpecificationError{Name: "onix_9.9::nowhere"}
	assert.EqualError(t, err, "Invalid metadata specification: onix_9.9::nowhere")
}

func TestInternal(t *testing.T) {
	err := Internal("Could not generate ONIX", errors.New("short write"))
	assert.ErrorIs(t, err, ErrInternal)
	assert.Contains(t, err.Error(), "Could not generate ONIX")
}
