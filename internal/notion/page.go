package notion

// Page is a single record returned by the external store. Properties are
// operator-editable, so every accessor below tolerates missing fields and
// unexpected shapes and falls back to a caller-supplied default.
type Page struct {
	ID         string              `json:"id"`
	Properties map[string]Property `json:"properties"`
}

// Property is the union of the property shapes this system reads. Only the
// variant named by Type is populated.
type Property struct {
	Type     string        `json:"type"`
	Title    []RichText    `json:"title,omitempty"`
	Select   *SelectOption `json:"select,omitempty"`
	Relation []PageRef     `json:"relation,omitempty"`
	Rollup   *Rollup       `json:"rollup,omitempty"`
	Date     *DateValue    `json:"date,omitempty"`
	Number   *float64      `json:"number,omitempty"`
}

type RichText struct {
	Text struct {
		Content string `json:"content"`
	} `json:"text"`
	PlainText string `json:"plain_text,omitempty"`
}

type SelectOption struct {
	Name string `json:"name"`
}

type PageRef struct {
	ID string `json:"id"`
}

// Rollup is a value the store computes from a related record. Depending on
// the rollup configuration it is either a direct scalar or an array of
// property values.
type Rollup struct {
	Type   string        `json:"type"`
	Date   *DateValue    `json:"date,omitempty"`
	Number *float64      `json:"number,omitempty"`
	Select *SelectOption `json:"select,omitempty"`
	Array  []Property    `json:"array,omitempty"`
}

type DateValue struct {
	Start string `json:"start"`
	End   string `json:"end,omitempty"`
}

// TitleText returns the first title fragment of the named property, or
// fallback when the property is absent or empty.
func (p Page) TitleText(name, fallback string) string {
	prop, ok := p.Properties[name]
	if !ok || len(prop.Title) == 0 {
		return fallback
	}
	if prop.Title[0].Text.Content != "" {
		return prop.Title[0].Text.Content
	}
	if prop.Title[0].PlainText != "" {
		return prop.Title[0].PlainText
	}
	return fallback
}

// SelectName returns the selected option of the named property, or fallback.
func (p Page) SelectName(name, fallback string) string {
	prop, ok := p.Properties[name]
	if !ok || prop.Select == nil || prop.Select.Name == "" {
		return fallback
	}
	return prop.Select.Name
}

// RelationIDs returns the ids of all related pages, preserving order. An
// absent or empty relation yields nil.
func (p Page) RelationIDs(name string) []string {
	prop, ok := p.Properties[name]
	if !ok || len(prop.Relation) == 0 {
		return nil
	}
	ids := make([]string, 0, len(prop.Relation))
	for _, ref := range prop.Relation {
		ids = append(ids, ref.ID)
	}
	return ids
}

// DateStart returns the start of the named plain date property, or "".
func (p Page) DateStart(name string) string {
	prop, ok := p.Properties[name]
	if !ok || prop.Date == nil {
		return ""
	}
	return prop.Date.Start
}

// NumberValue returns the named number property, or fallback.
func (p Page) NumberValue(name string, fallback float64) float64 {
	prop, ok := p.Properties[name]
	if !ok || prop.Number == nil {
		return fallback
	}
	return *prop.Number
}

// RollupDateStart resolves a date rollup. A direct date wins; otherwise the
// first array element is used if it is a date; anything else resolves to "".
// The first-element precedence is deliberate: only the first related
// location's window surfaces on a device.
func (p Page) RollupDateStart(name string) string {
	prop, ok := p.Properties[name]
	if !ok || prop.Rollup == nil {
		return ""
	}
	r := prop.Rollup
	switch {
	case r.Type == "date" && r.Date != nil:
		return r.Date.Start
	case r.Type == "array" && len(r.Array) > 0:
		first := r.Array[0]
		if first.Type == "date" && first.Date != nil {
			return first.Date.Start
		}
	}
	return ""
}

// RollupSelectName resolves a select rollup with the same first-element-wins
// precedence as RollupDateStart.
func (p Page) RollupSelectName(name, fallback string) string {
	prop, ok := p.Properties[name]
	if !ok || prop.Rollup == nil {
		return fallback
	}
	r := prop.Rollup
	switch {
	case r.Type == "select" && r.Select != nil && r.Select.Name != "":
		return r.Select.Name
	case r.Type == "array" && len(r.Array) > 0:
		first := r.Array[0]
		if first.Type == "select" && first.Select != nil && first.Select.Name != "" {
			return first.Select.Name
		}
	}
	return fallback
}
