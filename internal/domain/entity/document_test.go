package entity_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/foliolabs/folio/internal/domain/entity"
)

func TestPageLayout_ViewerModes(t *testing.T) {
	tests := []struct {
		layout entity.PageLayout
		scroll entity.ScrollMode
		spread entity.SpreadMode
	}{
		{entity.LayoutSinglePage, entity.ScrollPage, entity.SpreadNone},
		{entity.LayoutOneColumn, entity.ScrollVertical, entity.SpreadNone},
		{entity.LayoutTwoPageLeft, entity.ScrollPage, entity.SpreadOdd},
		{entity.LayoutTwoColumnLeft, entity.ScrollVertical, entity.SpreadOdd},
		{entity.LayoutTwoPageRight, entity.ScrollPage, entity.SpreadEven},
		{entity.LayoutTwoColumnRight, entity.ScrollVertical, entity.SpreadEven},
		{entity.PageLayout("Bogus"), entity.ScrollVertical, entity.SpreadNone},
	}

	for _, tt := range tests {
		t.Run(string(tt.layout), func(t *testing.T) {
			scroll, spread := tt.layout.ViewerModes()
			assert.Equal(t, tt.scroll, scroll)
			assert.Equal(t, tt.spread, spread)
		})
	}
}

func TestPageMode_SidebarView(t *testing.T) {
	assert.Equal(t, entity.SidebarThumbs, entity.PageModeUseThumbs.SidebarView())
	assert.Equal(t, entity.SidebarOutline, entity.PageModeUseOutlines.SidebarView())
	assert.Equal(t, entity.SidebarAttachments, entity.PageModeUseAttachments.SidebarView())
	assert.Equal(t, entity.SidebarLayers, entity.PageModeUseOC.SidebarView())
	assert.Equal(t, entity.SidebarNone, entity.PageModeUseNone.SidebarView())
	assert.Equal(t, entity.SidebarNone, entity.PageModeFullScreen.SidebarView())
	assert.Equal(t, entity.SidebarNone, entity.PageMode("Bogus").SidebarView())
}

func TestMeaningfulPageLabels(t *testing.T) {
	tests := []struct {
		name   string
		labels []string
		want   bool
	}{
		{"nil", nil, false},
		{"empty", []string{}, false},
		{"all standard", []string{"1", "2", "3"}, false},
		{"all empty", []string{"", "", ""}, false},
		{"roman numerals", []string{"i", "ii", "iii", "1", "2"}, true},
		{"standard prefix then custom", []string{"1", "2", "Appendix"}, true},
		{"single custom", []string{"Cover"}, true},
		{"single standard", []string{"1"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, entity.MeaningfulPageLabels(tt.labels))
		})
	}
}

func TestDocumentInfo_FormType(t *testing.T) {
	assert.Equal(t, entity.FormTypeNone, entity.DocumentInfo{}.FormType())
	assert.Equal(t, entity.FormTypeAcroForm,
		entity.DocumentInfo{IsAcroFormPresent: true}.FormType())
	assert.Equal(t, entity.FormTypeXFA,
		entity.DocumentInfo{IsXFAPresent: true}.FormType())
	// XFA wins when both are present.
	assert.Equal(t, entity.FormTypeXFA,
		entity.DocumentInfo{IsAcroFormPresent: true, IsXFAPresent: true}.FormType())
}
