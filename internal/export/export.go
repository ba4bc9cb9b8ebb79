package export

import (
	"fmt"

	"github.com/beevik/etree"
	"github.com/numenapp/numen-service/internal/models"
)

// DeclarationsXML renders the saved tax declarations as an XML document
// suitable for handing to an accountant or filing tool.
func DeclarationsXML(profile models.FiscalProfile, declarations []models.TaxDeclaration) ([]byte, error) {
	doc := etree.NewDocument()
	doc.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)

	root := doc.CreateElement("Declarations")
	root.CreateAttr("taxId", profile.TaxID)
	root.CreateAttr("regime", profile.Regime)
	root.CreateAttr("count", fmt.Sprintf("%d", len(declarations)))

	for _, d := range declarations {
		el := root.CreateElement("Declaration")
		el.CreateAttr("period", d.Period)
		el.CreateAttr("paid", fmt.Sprintf("%t", d.Paid))
		el.CreateElement("Income").SetText(formatAmount(d.Income))
		el.CreateElement("Deductibles").SetText(formatAmount(d.Deductibles))
		el.CreateElement("ISR").SetText(formatAmount(d.ISR))
		el.CreateElement("IVA").SetText(formatAmount(d.IVA))
		el.CreateElement("Total").SetText(formatAmount(d.Total))
		el.CreateElement("Date").SetText(d.Date.Format("2006-01-02"))
	}

	doc.Indent(2)
	out, err := doc.WriteToBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to serialize declarations: %w", err)
	}
	return out, nil
}

func formatAmount(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
