package utils

import (
	"encoding/csv"
	"io"

	"github.com/qonnected/qonnected-backend/internal/models"
)

// WritePaymentsCSV writes the admin payment export. Column order matches the
// review table in the admin UI.
func WritePaymentsCSV(w io.Writer, payments []*models.Payment) error {
	cw := csv.NewWriter(w)
	header := []string{"reference", "user", "email", "item", "type", "amount", "status", "reviewed_by", "feedback", "created_at", "updated_at"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, p := range payments {
		updated := ""
		if !p.UpdatedAt.IsZero() {
			updated = FormatDate(p.UpdatedAt)
		}
		row := []string{
			p.Reference,
			p.UserName,
			p.UserEmail,
			p.ItemName,
			p.ItemType,
			FormatAmount(p.Amount),
			p.Status,
			p.ReviewedBy,
			p.Feedback,
			FormatDate(p.CreatedAt),
			updated,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
