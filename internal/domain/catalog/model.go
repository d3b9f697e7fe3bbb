package catalog

import (
	"time"

	"github.com/google/uuid"

	"github.com/implantdesk/implantdesk/internal/filter"
)

// Implant maps to the implant_catalog table. One row per implant
// reference the practice stocks.
type Implant struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Brand     string    `db:"brand" json:"brand"`
	Reference string    `db:"reference" json:"reference"`
	Diameter  float64   `db:"diameter" json:"diameter"`
	Length    float64   `db:"length" json:"length"`
	Lot       *string   `db:"lot" json:"lot,omitempty"`
	Stock     int       `db:"stock" json:"stock"`
	Note      *string   `db:"note" json:"note,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// Prosthesis maps to the prosthesis_catalog table.
type Prosthesis struct {
	ID        uuid.UUID `db:"id" json:"id"`
	Brand     string    `db:"brand" json:"brand"`
	Reference string    `db:"reference" json:"reference"`
	Type      string    `db:"type" json:"type"`
	Material  *string   `db:"material" json:"material,omitempty"`
	Shade     *string   `db:"shade" json:"shade,omitempty"`
	Lot       *string   `db:"lot" json:"lot,omitempty"`
	Stock     int       `db:"stock" json:"stock"`
	Note      *string   `db:"note" json:"note,omitempty"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// ImplantFilterSchema declares the fields the advanced filter exposes
// on the implant list.
var ImplantFilterSchema = filter.Schema{
	{Name: "brand", Label: "Brand", Type: filter.FieldText},
	{Name: "reference", Label: "Reference", Type: filter.FieldText},
	{Name: "lot", Label: "Lot", Type: filter.FieldText},
	{Name: "diameter", Label: "Diameter", Type: filter.FieldNumber},
	{Name: "length", Label: "Length", Type: filter.FieldNumber},
	{Name: "stock", Label: "Stock", Type: filter.FieldNumber},
}

// ProsthesisFilterSchema declares the filterable fields of the
// prosthesis list.
var ProsthesisFilterSchema = filter.Schema{
	{Name: "brand", Label: "Brand", Type: filter.FieldText},
	{Name: "reference", Label: "Reference", Type: filter.FieldText},
	{Name: "type", Label: "Type", Type: filter.FieldText},
	{Name: "material", Label: "Material", Type: filter.FieldText},
	{Name: "shade", Label: "Shade", Type: filter.FieldText},
	{Name: "lot", Label: "Lot", Type: filter.FieldText},
	{Name: "stock", Label: "Stock", Type: filter.FieldNumber},
}

// FilterFields projects the implant onto its filterable field map.
// Optional fields are omitted when unset so negative operators get
// their vacuous-truth behavior.
func (i *Implant) FilterFields() map[string]interface{} {
	m := map[string]interface{}{
		"brand":     i.Brand,
		"reference": i.Reference,
		"diameter":  i.Diameter,
		"length":    i.Length,
		"stock":     float64(i.Stock),
	}
	if i.Lot != nil {
		m["lot"] = *i.Lot
	}
	return m
}

func (p *Prosthesis) FilterFields() map[string]interface{} {
	m := map[string]interface{}{
		"brand":     p.Brand,
		"reference": p.Reference,
		"type":      p.Type,
		"stock":     float64(p.Stock),
	}
	if p.Material != nil {
		m["material"] = *p.Material
	}
	if p.Shade != nil {
		m["shade"] = *p.Shade
	}
	if p.Lot != nil {
		m["lot"] = *p.Lot
	}
	return m
}
