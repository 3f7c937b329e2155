package service

import (
	"math"

	"github.com/anst-dev/ChotTienBanHang/internal/model"
)

// BuildReport reconciles a session against the catalog: per product it
// derives units sold from the stock deltas and prices them, then compares
// the theoretical revenue with the session's recorded totals.
//
// Pure function of its inputs; it never mutates the session and calling it
// twice on unchanged state yields identical output.
func BuildReport(sess *model.DailySession, products []model.Product) *model.SessionReport {
	report := &model.SessionReport{
		SessionID:      sess.ID,
		Date:           sess.Date,
		IsActive:       sess.IsActive,
		Items:          make([]model.ProductReport, 0, len(products)),
		ActualCash:     sess.ActualCash,
		ActualTransfer: sess.ActualTransfer,
	}

	for _, p := range products {
		log := sess.StockLogs[p.ID] // missing entries count as all-zero
		sold := math.Max(0, log.StartQty+log.AddedQty-log.EndQty)
		revenue := sold * p.Price
		report.Items = append(report.Items, model.ProductReport{
			ProductID: p.ID,
			Name:      p.Name,
			Unit:      p.Unit,
			Price:     p.Price,
			StartQty:  log.StartQty,
			AddedQty:  log.AddedQty,
			EndQty:    log.EndQty,
			Sold:      sold,
			Revenue:   revenue,
		})
		report.TotalRevenue += revenue
	}

	report.RecordedTotal = sess.ActualCash + sess.ActualTransfer
	report.Difference = report.RecordedTotal - report.TotalRevenue
	switch {
	case report.Difference > 0:
		report.Status = model.StatusSurplus
	case report.Difference < 0:
		report.Status = model.StatusDeficit
	default:
		report.Status = model.StatusBalanced
	}
	return report
}
