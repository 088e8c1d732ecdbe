package document

import (
	"encoding/json"
	"fmt"
	"strconv"

	"dsaudit/internal/domain"
)

const aliasType = "VARIABLE_ALIAS"

type snapshotJSON struct {
	Name        string                    `json:"name"`
	Key         string                    `json:"key"`
	Selection   []string                  `json:"selection"`
	Document    *nodeJSON                 `json:"document"`
	Variables   map[string]variableJSON   `json:"variables"`
	Collections map[string]collectionJSON `json:"variableCollections"`
}

type nodeJSON struct {
	ID       string      `json:"id"`
	Name     string      `json:"name"`
	Type     string      `json:"type"`
	Visible  *bool       `json:"visible"`
	Children []*nodeJSON `json:"children"`

	Fills   json.RawMessage `json:"fills"`
	Strokes json.RawMessage `json:"strokes"`

	CornerRadius      json.RawMessage `json:"cornerRadius"`
	TopLeftRadius     float64         `json:"topLeftRadius"`
	TopRightRadius    float64         `json:"topRightRadius"`
	BottomRightRadius float64         `json:"bottomRightRadius"`
	BottomLeftRadius  float64         `json:"bottomLeftRadius"`

	TextStyleID   json.RawMessage `json:"textStyleId"`
	FontSize      json.RawMessage `json:"fontSize"`
	LineHeight    json.RawMessage `json:"lineHeight"`
	LetterSpacing json.RawMessage `json:"letterSpacing"`
	FontName      json.RawMessage `json:"fontName"`
	FontWeight    json.RawMessage `json:"fontWeight"`

	BoundVariables map[string]json.RawMessage `json:"boundVariables"`
	MainComponent  *componentJSON             `json:"mainComponent"`
}

type componentJSON struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	Name   string `json:"name"`
	Remote bool   `json:"remote"`
}

type paintJSON struct {
	Type           string                     `json:"type"`
	Visible        *bool                      `json:"visible"`
	Opacity        *float64                   `json:"opacity"`
	Color          *colorJSON                 `json:"color"`
	BoundVariables map[string]json.RawMessage `json:"boundVariables"`
}

type colorJSON struct {
	R float64  `json:"r"`
	G float64  `json:"g"`
	B float64  `json:"b"`
	A *float64 `json:"a"`
}

type aliasJSON struct {
	Type string `json:"type"`
	ID   string `json:"id"`
}

type variableJSON struct {
	ID           string                     `json:"id"`
	Name         string                     `json:"name"`
	CollectionID string                     `json:"variableCollectionId"`
	ValuesByMode map[string]json.RawMessage `json:"valuesByMode"`
}

type collectionJSON struct {
	ID     string     `json:"id"`
	Key    string     `json:"key"`
	Name   string     `json:"name"`
	Remote bool       `json:"remote"`
	Modes  []modeJSON `json:"modes"`
}

type modeJSON struct {
	ModeID string `json:"modeId"`
	Name   string `json:"name"`
}

type unitValueJSON struct {
	Value float64 `json:"value"`
	Unit  string  `json:"unit"`
}

type fontNameJSON struct {
	Family string `json:"family"`
	Style  string `json:"style"`
}

// decodeBindings accepts both single alias objects and alias arrays. Array
// entries that are null keep their slot so paint indexes stay aligned.
func decodeBindings(raw map[string]json.RawMessage) domain.Bindings {
	if len(raw) == 0 {
		return nil
	}
	b := make(domain.Bindings, len(raw))
	for prop, value := range raw {
		var list []*aliasJSON
		if err := json.Unmarshal(value, &list); err == nil {
			aliases := make([]domain.VariableAlias, len(list))
			for i, a := range list {
				if a != nil && a.Type == aliasType {
					aliases[i] = domain.VariableAlias{ID: a.ID}
				}
			}
			b[prop] = aliases
			continue
		}
		var single aliasJSON
		if err := json.Unmarshal(value, &single); err == nil && single.Type == aliasType {
			b[prop] = []domain.VariableAlias{{ID: single.ID}}
		}
	}
	return b
}

func decodeValue(raw json.RawMessage) domain.VariableValue {
	var alias aliasJSON
	if err := json.Unmarshal(raw, &alias); err == nil && alias.Type == aliasType {
		return domain.VariableValue{Alias: &domain.VariableAlias{ID: alias.ID}}
	}
	var literal any
	_ = json.Unmarshal(raw, &literal)
	return domain.VariableValue{Literal: literal}
}

func decodePaints(raw json.RawMessage) (*domain.Paints, error) {
	if !present(raw) {
		return nil, nil
	}
	if isMixed(raw) {
		return &domain.Paints{Mixed: true}, nil
	}
	var list []paintJSON
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	paints := &domain.Paints{Items: make([]domain.Paint, 0, len(list))}
	for _, p := range list {
		paint := domain.Paint{
			Type:     p.Type,
			Visible:  p.Visible,
			Opacity:  p.Opacity,
			Bindings: decodeBindings(p.BoundVariables),
		}
		if p.Color != nil {
			c := &domain.Color{R: p.Color.R, G: p.Color.G, B: p.Color.B, A: 1}
			if p.Color.A != nil {
				c.A = *p.Color.A
			}
			paint.Color = c
		}
		paints.Items = append(paints.Items, paint)
	}
	return paints, nil
}

func decodeRadius(raw *nodeJSON) *domain.CornerRadius {
	if !present(raw.CornerRadius) {
		return nil
	}
	r := &domain.CornerRadius{
		TopLeft:     raw.TopLeftRadius,
		TopRight:    raw.TopRightRadius,
		BottomRight: raw.BottomRightRadius,
		BottomLeft:  raw.BottomLeftRadius,
	}
	if isMixed(raw.CornerRadius) {
		r.Mixed = true
		return r
	}
	if err := json.Unmarshal(raw.CornerRadius, &r.Value); err != nil {
		r.Mixed = true
	}
	return r
}

func decodeText(raw *nodeJSON) *domain.TextProps {
	t := &domain.TextProps{
		FontSize:      numberValue(raw.FontSize),
		LineHeight:    unitValue(raw.LineHeight),
		LetterSpacing: unitValue(raw.LetterSpacing),
		FontWeight:    numberValue(raw.FontWeight),
	}
	if present(raw.TextStyleID) && !isMixed(raw.TextStyleID) {
		_ = json.Unmarshal(raw.TextStyleID, &t.StyleID)
	}

	switch {
	case !present(raw.FontName):
	case isMixed(raw.FontName):
		t.FontFamily = domain.TextValue{Mixed: true}
		if !t.FontWeight.Present() {
			t.FontWeight = domain.TextValue{Mixed: true}
		}
	default:
		var fn fontNameJSON
		if err := json.Unmarshal(raw.FontName, &fn); err == nil {
			t.FontFamily = domain.TextValue{Value: fn.Family}
			if !present(raw.FontWeight) {
				t.FontWeight = domain.TextValue{Value: fn.Style}
			}
		}
	}
	return t
}

func numberValue(raw json.RawMessage) domain.TextValue {
	if !present(raw) {
		return domain.TextValue{}
	}
	if isMixed(raw) {
		return domain.TextValue{Mixed: true}
	}
	var v float64
	if err := json.Unmarshal(raw, &v); err != nil {
		return domain.TextValue{}
	}
	return domain.TextValue{Value: strconv.FormatFloat(v, 'f', -1, 64)}
}

// unitValue renders line height and letter spacing as 24px, 150% or AUTO
func unitValue(raw json.RawMessage) domain.TextValue {
	if !present(raw) {
		return domain.TextValue{}
	}
	if isMixed(raw) {
		return domain.TextValue{Mixed: true}
	}
	var uv unitValueJSON
	if err := json.Unmarshal(raw, &uv); err != nil {
		return numberValue(raw)
	}
	num := strconv.FormatFloat(uv.Value, 'f', -1, 64)
	switch uv.Unit {
	case "AUTO":
		return domain.TextValue{Value: "AUTO"}
	case "PERCENT":
		return domain.TextValue{Value: num + "%"}
	case "PIXELS", "":
		return domain.TextValue{Value: num + "px"}
	default:
		return domain.TextValue{Value: fmt.Sprintf("%s %s", num, uv.Unit)}
	}
}
