package pdftest

import (
	"bytes"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func relaxed() *model.Configuration {
	api.DisableConfigDir()
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

func TestBuild_PassesValidation(t *testing.T) {
	for _, pages := range [][]string{{"Assets: 100"}, {"first page", "second (page)"}} {
		err := api.Validate(bytes.NewReader(Build(pages...)), relaxed())
		assert.NoError(t, err, "pages %q", pages)
	}
}

func TestBuild_PageCount(t *testing.T) {
	n, err := api.PageCount(bytes.NewReader(Build("a", "b", "c")), relaxed())

	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestEscape(t *testing.T) {
	assert.Equal(t, `a\(b\)c\\`, escape(`a(b)c\`))
}
