package oasgen_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	oasgen "github.com/oasgen/oasgen"
)

func TestDocumentOptionsValidate(t *testing.T) {
	assert.NoError(t, oasgen.DocumentOptions{}.Validate())
	assert.NoError(t, oasgen.DocumentOptions{
		TagCase: oasgen.TagCaseTitle,
		Naming:  oasgen.NamingSnake,
		Dialect: oasgen.DialectSwagger2,
	}.Validate())

	assert.Error(t, oasgen.DocumentOptions{TagSegmentIndex: -1}.Validate())
	assert.Error(t, oasgen.DocumentOptions{TagCase: "weird"}.Validate())
	assert.Error(t, oasgen.DocumentOptions{Naming: "bogus"}.Validate())
	assert.Error(t, oasgen.DocumentOptions{Dialect: "swagger1"}.Validate())
}

func TestNewBuilderRejectsInvalidOptions(t *testing.T) {
	_, err := oasgen.NewBuilder(oasgen.NewDocument("t", "", "1.0"), oasgen.DocumentOptions{TagSegmentIndex: -1})
	assert.Error(t, err)
}
