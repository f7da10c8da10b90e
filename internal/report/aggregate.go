package report

import (
	"bascula-backend/internal/models"
	"bascula-backend/internal/weighing"
)

// table: conversion constants in force for the facility. The scale reads
// pounds; everything downstream works in quintals.
var table = weighing.DefaultTable

// checkMutable rejects lifecycle operations on terminal reports. Cancelled
// reports get their own error because cancellation is absorbing.
func checkMutable(r *models.Report) error {
	switch r.State {
	case models.ReportPending:
		return nil
	case models.ReportCancelled:
		return ErrCancelled
	default:
		return ErrNotPending
	}
}

// capacityQuintals: the bound item weights are checked against. Net weight
// once tare is known, gross weight as a conservative bound before that.
func capacityQuintals(r *models.Report) (float64, error) {
	bound := r.GrossWeight
	if r.NetWeight > 0 {
		bound = r.NetWeight
	}
	return table.ToQuintals(bound, weighing.UnitPounds)
}

func usedQuintals(r *models.Report) float64 {
	values := make([]float64, 0, len(r.Items))
	for _, item := range r.Items {
		values = append(values, item.WeightInQuintals)
	}
	return weighing.SumQuintals(values...)
}

// computeAddItem converts, deducts and capacity-checks a new line, appends it
// to the aggregate and returns it. The price per quintal is snapshotted from
// the product at this moment.
func computeAddItem(r *models.Report, product *models.Product, weight float64, unit weighing.Unit, discountWeight float64) (*models.ReportItem, error) {
	if err := checkMutable(r); err != nil {
		return nil, err
	}
	if weight <= 0 || discountWeight < 0 {
		return nil, weighing.ErrInvalidWeight
	}

	raw, err := table.ToQuintals(weight, unit)
	if err != nil {
		return nil, err
	}

	effective, err := weighing.ApplyDeductions(raw, weighing.DefaultMoistureRate, r.ExtraPercentage, discountWeight)
	if err != nil {
		return nil, err
	}

	capacity, err := capacityQuintals(r)
	if err != nil {
		return nil, err
	}
	if err := weighing.EnsureCapacity(usedQuintals(r), effective, capacity); err != nil {
		return nil, err
	}

	item := models.ReportItem{
		ReportID:         r.ID,
		ProductID:        product.ID,
		Weight:           weight,
		WeightUnit:       unit,
		DiscountWeight:   discountWeight,
		WeightInQuintals: effective,
		PricePerQuintal:  product.PricePerQuintal,
		BasePrice:        weighing.Price(product.PricePerQuintal, effective),
	}
	r.Items = append(r.Items, item)

	return &r.Items[len(r.Items)-1], nil
}

// computeFinish records the tare, recomputes every line from its as-submitted
// weight, reconciles the total against the net weight and locks the report as
// APPROVED.
func computeFinish(r *models.Report, tareWeight float64) error {
	if err := checkMutable(r); err != nil {
		return err
	}
	if tareWeight <= 0 || tareWeight >= r.GrossWeight {
		return ErrInvalidTare
	}

	net := weighing.Round2(r.GrossWeight - tareWeight)
	netQuintals, err := table.ToQuintals(net, weighing.UnitPounds)
	if err != nil {
		return err
	}

	linePrices := make([]float64, 0, len(r.Items))
	for i := range r.Items {
		item := &r.Items[i]

		raw, err := table.ToQuintals(item.Weight, item.WeightUnit)
		if err != nil {
			return err
		}
		effective, err := weighing.ApplyDeductions(raw, weighing.DefaultMoistureRate, r.ExtraPercentage, item.DiscountWeight)
		if err != nil {
			return err
		}

		item.WeightInQuintals = effective
		item.BasePrice = weighing.Price(item.PricePerQuintal, effective)
		linePrices = append(linePrices, item.BasePrice)
	}

	// Final reconciliation: per-item checks earlier may have run against the
	// provisional gross-weight bound.
	if err := weighing.EnsureCapacity(usedQuintals(r), 0, netQuintals); err != nil {
		return err
	}

	r.TareWeight = tareWeight
	r.NetWeight = net
	r.BasePrice = weighing.SumPrices(linePrices...)
	r.TotalPrice = r.BasePrice
	r.State = models.ReportApproved

	return nil
}

// computeCancel moves a report to CANCELLED from either PENDING or APPROVED,
// without touching any computed field. A second cancel fails.
func computeCancel(r *models.Report) error {
	if r.State == models.ReportCancelled {
		return ErrCancelled
	}
	r.State = models.ReportCancelled
	return nil
}
