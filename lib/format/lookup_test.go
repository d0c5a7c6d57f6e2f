package format_test

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"

	"github.com/schemagraph/schemagraph/lib/format"
	"github.com/schemagraph/schemagraph/lib/format/formattest"
	"github.com/schemagraph/schemagraph/lib/ir"
)

func TestLookup_UnknownFormat(t *testing.T) {
	_, err := format.Lookup("oracle")
	assert.EqualError(t, err, "no such sql format as oracle")
}

func TestUnknownDataTypes(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()
	platform := formattest.NewMockPlatform(ctrl)
	platform.EXPECT().DataTypes().Return([]string{"int", "nvarchar"})

	def := &ir.Definition{Tables: []*ir.Table{{
		Name: "t",
		Columns: []*ir.Column{
			{Name: "a", DataType: "INT"},
			{Name: "b", DataType: "nvarchar(50)"},
			{Name: "c", DataType: "geography"},
			{Name: "d", DataType: "Geography"},
			{Name: "e", IsComputed: true, ComputedFormula: "a + 1"},
		},
	}}}
	assert.Equal(t, []string{"geography"}, format.UnknownDataTypes(platform, def))
}
