package document

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dsaudit/internal/domain"
)

const fixture = `{
  "name": "Checkout",
  "key": "file-1",
  "selection": ["1:1"],
  "variableCollections": {
    "C:1": {"key": "brand", "name": "Brand", "remote": true,
            "modes": [{"modeId": "m:2", "name": "Light"}, {"modeId": "m:1", "name": "Dark"}]}
  },
  "variables": {
    "V:1": {"name": "primary", "variableCollectionId": "C:1",
            "valuesByMode": {"m:1": {"r": 0, "g": 0, "b": 0}, "m:2": {"type": "VARIABLE_ALIAS", "id": "V:2"}}},
    "V:2": {"name": "blue-500", "variableCollectionId": "C:1",
            "valuesByMode": {"m:2": {"r": 0, "g": 0, "b": 1}}}
  },
  "document": {
    "id": "0:0", "name": "Document", "type": "DOCUMENT",
    "children": [{
      "id": "0:1", "name": "Page", "type": "PAGE",
      "children": [{
        "id": "1:1", "name": "Screen", "type": "FRAME",
        "fills": [{"type": "SOLID", "color": {"r": 1, "g": 1, "b": 1}}],
        "cornerRadius": 8,
        "boundVariables": {"fills": [{"type": "VARIABLE_ALIAS", "id": "V:1"}]},
        "children": [
          {"id": "2:1", "name": "Button", "type": "INSTANCE",
           "mainComponent": {"id": "c:1", "key": "btn", "name": "Button", "remote": true},
           "strokes": "mixed",
           "cornerRadius": "mixed", "topLeftRadius": 4,
           "boundVariables": {"cornerRadius": {"type": "VARIABLE_ALIAS", "id": "V:3"}}},
          {"id": "2:2", "name": "Label", "type": "TEXT", "visible": false,
           "fills": [{"type": "SOLID", "opacity": 0.5, "color": {"r": 0, "g": 0, "b": 0, "a": 0.4},
                      "boundVariables": {"color": {"type": "VARIABLE_ALIAS", "id": "V:2"}}}],
           "fontSize": 16,
           "lineHeight": {"value": 150, "unit": "PERCENT"},
           "letterSpacing": {"value": 0, "unit": "PIXELS"},
           "fontName": {"family": "Inter", "style": "Bold"},
           "textStyleId": "mixed"},
          {"id": "2:3", "name": "Caption", "type": "TEXT",
           "fontSize": "mixed", "lineHeight": {"unit": "AUTO"},
           "fontName": {"family": "Inter", "style": "Regular"}, "fontWeight": 400,
           "textStyleId": "S:caption"}
        ]
      }]
    }]
  }
}`

func decodeFixture(t *testing.T) *Snapshot {
	t.Helper()
	snap, err := Decode(strings.NewReader(fixture))
	require.NoError(t, err)
	return snap
}

func TestDecode_Tree(t *testing.T) {
	snap := decodeFixture(t)

	assert.Equal(t, "Checkout", snap.Name())
	assert.Equal(t, "file-1", snap.Key())
	assert.Equal(t, []string{"1:1"}, snap.Selection())
	assert.Equal(t, domain.NodeTypeDocument, snap.Root().Type)

	screen, ok := snap.NodeByID("1:1")
	require.True(t, ok)
	assert.Equal(t, "0:1", screen.Parent.ID)
	require.Len(t, screen.Children, 3)
	assert.True(t, screen.Has(domain.HasFills|domain.HasCornerRadius|domain.HasChildren))
	assert.False(t, screen.Has(domain.HasStrokes))
	assert.True(t, screen.CornerRadius.Present())
	assert.Equal(t, "#FFFFFF", screen.Fills.Items[0].Color.Hex())
	assert.True(t, screen.Bindings.BoundAt("fills", 0))

	_, ok = snap.NodeByID("9:9")
	assert.False(t, ok)
}

func TestDecode_MixedValues(t *testing.T) {
	snap := decodeFixture(t)

	button, _ := snap.NodeByID("2:1")
	require.NotNil(t, button.MainComponent)
	assert.Equal(t, "btn", button.MainComponent.Key)
	assert.True(t, button.MainComponent.Remote)
	assert.True(t, button.Strokes.Mixed)
	assert.True(t, button.CornerRadius.Mixed)
	assert.False(t, button.CornerRadius.Present())
	assert.Equal(t, 4.0, button.CornerRadius.TopLeft)
	assert.True(t, button.Bindings.Bound("cornerRadius"))
	assert.Nil(t, button.Text)
}

func TestDecode_Text(t *testing.T) {
	snap := decodeFixture(t)

	label, _ := snap.NodeByID("2:2")
	assert.False(t, label.IsVisible())
	require.NotNil(t, label.Text)
	assert.False(t, label.Text.UsesTextStyle(), "mixed text style counts as no style")
	assert.Equal(t, "16", label.Text.FontSize.Value)
	assert.Equal(t, "150%", label.Text.LineHeight.Value)
	assert.Equal(t, "0px", label.Text.LetterSpacing.Value)
	assert.Equal(t, "Inter", label.Text.FontFamily.Value)
	assert.Equal(t, "Bold", label.Text.FontWeight.Value)

	paint := label.Fills.Items[0]
	assert.True(t, paint.Bindings.Bound("color"))
	assert.Equal(t, 0.4, paint.Color.A)
	assert.Equal(t, "#00000066", paint.Color.Hex())

	caption, _ := snap.NodeByID("2:3")
	assert.True(t, caption.Text.UsesTextStyle())
	assert.True(t, caption.Text.FontSize.Mixed)
	assert.Equal(t, "AUTO", caption.Text.LineHeight.Value)
	assert.Equal(t, "400", caption.Text.FontWeight.Value)
}

func TestDecode_Variables(t *testing.T) {
	snap := decodeFixture(t)

	v, ok := snap.VariableByID("V:1")
	require.True(t, ok)
	assert.Equal(t, []string{"m:2", "m:1"}, v.ModeOrder)

	first, ok := v.FirstModeValue()
	require.True(t, ok)
	require.True(t, first.IsAlias())
	assert.Equal(t, "V:2", first.Alias.ID)

	dark := v.Values["m:1"]
	assert.False(t, dark.IsAlias())
	assert.NotNil(t, dark.Literal)

	c, ok := snap.CollectionByID("C:1")
	require.True(t, ok)
	assert.Equal(t, "brand", c.Key)
	assert.True(t, c.Remote)

	r := domain.NewResolver(snap.VariableByID, nil)
	assert.Equal(t, "V:2", r.ResolveAlias("V:1"))
}

func TestDecode_Errors(t *testing.T) {
	tests := []struct {
		name string
		json string
		want string
	}{
		{"not json", `{`, "invalid document JSON"},
		{"no root", `{"name": "x"}`, "no root node"},
		{"node without id", `{"document": {"name": "x", "type": "DOCUMENT"}}`, "has no id"},
		{"duplicate id", `{"document": {"id": "0", "type": "DOCUMENT", "children": [{"id": "0", "type": "PAGE"}]}}`, "duplicate node id"},
		{"bad fills", `{"document": {"id": "0", "type": "FRAME", "fills": 3}}`, "fills"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.json))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoad_DefaultsKeyAndName(t *testing.T) {
	path := filepath.Join(t.TempDir(), "landing.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"document": {"id": "0:0", "type": "DOCUMENT"}}`), 0o644))

	snap, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "landing", snap.Name())
	assert.Equal(t, path, snap.Key())

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}
