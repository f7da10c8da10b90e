package report

import (
	"errors"
	"testing"

	"bascula-backend/internal/models"
	"bascula-backend/internal/weighing"

	"github.com/google/uuid"
)

func pendingReport(gross, extraPercentage float64) *models.Report {
	return &models.Report{
		ID:              uuid.New(),
		TicketNumber:    "000001",
		GrossWeight:     gross,
		ExtraPercentage: extraPercentage,
		State:           models.ReportPending,
	}
}

func testProduct(pricePerQuintal float64) *models.Product {
	return &models.Product{
		ID:              uuid.New(),
		Name:            "Green coffee",
		PricePerQuintal: pricePerQuintal,
	}
}

// 50 lb on a 200 lb gross ticket: 0.50 qq raw, 0.475 qq after the 5%
// moisture cut, priced per effective quintal.
func TestAddItemMoistureAndPricing(t *testing.T) {
	rep := pendingReport(200, 0)
	product := testProduct(150)

	item, err := computeAddItem(rep, product, 50, weighing.UnitPounds, 0)
	if err != nil {
		t.Fatalf("computeAddItem() error = %v", err)
	}

	if item.WeightInQuintals != 0.475 {
		t.Errorf("WeightInQuintals = %v, want 0.475", item.WeightInQuintals)
	}
	if item.BasePrice != 71.25 {
		t.Errorf("BasePrice = %v, want 71.25", item.BasePrice)
	}
	if item.PricePerQuintal != 150 {
		t.Errorf("PricePerQuintal snapshot = %v, want 150", item.PricePerQuintal)
	}
	if item.Weight != 50 || item.WeightUnit != weighing.UnitPounds {
		t.Errorf("submitted weight/unit must be stored untouched, got %v %v", item.Weight, item.WeightUnit)
	}
	if len(rep.Items) != 1 {
		t.Fatalf("item not appended to aggregate")
	}
}

func TestAddItemExtraPercentageCompounds(t *testing.T) {
	rep := pendingReport(200, 10)
	product := testProduct(100)

	item, err := computeAddItem(rep, product, 100, weighing.UnitPounds, 0)
	if err != nil {
		t.Fatalf("computeAddItem() error = %v", err)
	}
	if item.WeightInQuintals != 0.855 {
		t.Errorf("WeightInQuintals = %v, want 0.855 (0.95 minus 10%%)", item.WeightInQuintals)
	}
	if item.BasePrice != 85.5 {
		t.Errorf("BasePrice = %v, want 85.5", item.BasePrice)
	}
}

func TestAddItemFixedDiscount(t *testing.T) {
	rep := pendingReport(200, 0)
	product := testProduct(150)

	item, err := computeAddItem(rep, product, 100, weighing.UnitPounds, 0.05)
	if err != nil {
		t.Fatalf("computeAddItem() error = %v", err)
	}
	if item.WeightInQuintals != 0.9 {
		t.Errorf("WeightInQuintals = %v, want 0.9 (0.95 minus fixed 0.05 qq)", item.WeightInQuintals)
	}
	if item.BasePrice != 135 {
		t.Errorf("BasePrice = %v, want 135", item.BasePrice)
	}
}

// The running effective-quintal sum must never pass the bound in force at
// call time; the rejected item must not be appended.
func TestAddItemCapacityInvariant(t *testing.T) {
	rep := pendingReport(100, 0) // 1 qq bound before tare
	product := testProduct(100)

	for i := 0; i < 3; i++ {
		if _, err := computeAddItem(rep, product, 30, weighing.UnitPounds, 0); err != nil {
			t.Fatalf("item %d rejected: %v", i+1, err)
		}
	}
	// 3 * 0.285 = 0.855 used; a fourth would reach 1.14.
	if _, err := computeAddItem(rep, product, 30, weighing.UnitPounds, 0); !errors.Is(err, weighing.ErrCapacityExceeded) {
		t.Fatalf("4th item error = %v, want ErrCapacityExceeded", err)
	}
	if len(rep.Items) != 3 {
		t.Errorf("rejected item must not be appended, have %d items", len(rep.Items))
	}
}

// With tare recorded at creation the net weight is the bound from the start.
func TestAddItemUsesNetWeightWhenKnown(t *testing.T) {
	rep := pendingReport(200, 0)
	rep.TareWeight = 100
	rep.NetWeight = 100 // 1 qq
	product := testProduct(100)

	if _, err := computeAddItem(rep, product, 60, weighing.UnitPounds, 0); err != nil {
		t.Fatalf("first item rejected: %v", err)
	}
	if _, err := computeAddItem(rep, product, 50, weighing.UnitPounds, 0); !errors.Is(err, weighing.ErrCapacityExceeded) {
		t.Fatalf("error = %v, want ErrCapacityExceeded against the net bound", err)
	}
}

func TestAddItemValidation(t *testing.T) {
	rep := pendingReport(200, 0)
	product := testProduct(100)

	if _, err := computeAddItem(rep, product, 0, weighing.UnitPounds, 0); !errors.Is(err, weighing.ErrInvalidWeight) {
		t.Errorf("zero weight error = %v, want ErrInvalidWeight", err)
	}
	if _, err := computeAddItem(rep, product, 10, weighing.Unit("bags"), 0); !errors.Is(err, weighing.ErrInvalidUnit) {
		t.Errorf("bad unit error = %v, want ErrInvalidUnit", err)
	}
	if _, err := computeAddItem(rep, product, 10, weighing.UnitPounds, 1); !errors.Is(err, weighing.ErrInvalidEffectiveWeight) {
		t.Errorf("discount eating the item error = %v, want ErrInvalidEffectiveWeight", err)
	}
}

func TestFinishComputesTotals(t *testing.T) {
	rep := pendingReport(200, 0)
	product := testProduct(150)

	for i := 0; i < 2; i++ {
		if _, err := computeAddItem(rep, product, 50, weighing.UnitPounds, 0); err != nil {
			t.Fatalf("computeAddItem() error = %v", err)
		}
	}

	if err := computeFinish(rep, 40); err != nil {
		t.Fatalf("computeFinish() error = %v", err)
	}

	if rep.NetWeight != 160 {
		t.Errorf("NetWeight = %v, want 160", rep.NetWeight)
	}
	if rep.TareWeight != 40 {
		t.Errorf("TareWeight = %v, want 40", rep.TareWeight)
	}
	if rep.BasePrice != 142.5 || rep.TotalPrice != 142.5 {
		t.Errorf("BasePrice/TotalPrice = %v/%v, want 142.5 (2 lines at 71.25)", rep.BasePrice, rep.TotalPrice)
	}
	if rep.State != models.ReportApproved {
		t.Errorf("State = %v, want APPROVED", rep.State)
	}
}

// Items that passed the provisional gross bound can still overshoot the final
// net weight; finish must catch that.
func TestFinishCapacityReconciliation(t *testing.T) {
	rep := pendingReport(200, 0) // gross bound 2 qq
	product := testProduct(150)

	for i := 0; i < 4; i++ {
		if _, err := computeAddItem(rep, product, 50, weighing.UnitPounds, 0); err != nil {
			t.Fatalf("computeAddItem() error = %v", err)
		}
	}
	// 4 * 0.475 = 1.9 qq used; tare 40 leaves net 160 lb = 1.6 qq.
	if err := computeFinish(rep, 40); !errors.Is(err, weighing.ErrCapacityExceeded) {
		t.Fatalf("computeFinish() error = %v, want ErrCapacityExceeded", err)
	}
	if rep.State != models.ReportPending {
		t.Errorf("failed finish must not transition state, got %v", rep.State)
	}
}

func TestFinishTareValidation(t *testing.T) {
	for _, tare := range []float64{0, -10, 200, 250} {
		rep := pendingReport(200, 0)
		if err := computeFinish(rep, tare); !errors.Is(err, ErrInvalidTare) {
			t.Errorf("tare %v: error = %v, want ErrInvalidTare", tare, err)
		}
	}
}

func TestFinishRecomputesFromSubmittedValues(t *testing.T) {
	rep := pendingReport(200, 0)
	product := testProduct(100)

	item, err := computeAddItem(rep, product, 100, weighing.UnitPounds, 0)
	if err != nil {
		t.Fatalf("computeAddItem() error = %v", err)
	}
	// Simulate a stale derived value; finish must rebuild it from the
	// submitted weight/unit/discount.
	item.WeightInQuintals = 999
	item.BasePrice = 999

	if err := computeFinish(rep, 50); err != nil {
		t.Fatalf("computeFinish() error = %v", err)
	}
	if rep.Items[0].WeightInQuintals != 0.95 {
		t.Errorf("WeightInQuintals = %v, want 0.95", rep.Items[0].WeightInQuintals)
	}
	if rep.Items[0].BasePrice != 95 {
		t.Errorf("BasePrice = %v, want 95", rep.Items[0].BasePrice)
	}
}

func TestCancelPendingKeepsZeroPrices(t *testing.T) {
	rep := pendingReport(200, 0)

	if err := computeCancel(rep); err != nil {
		t.Fatalf("computeCancel() error = %v", err)
	}
	if rep.State != models.ReportCancelled {
		t.Errorf("State = %v, want CANCELLED", rep.State)
	}
	if rep.BasePrice != 0 || rep.TotalPrice != 0 || rep.TareWeight != 0 || rep.NetWeight != 0 {
		t.Errorf("cancel must not touch computed fields: %+v", rep)
	}
}

func TestCancelIsAbsorbing(t *testing.T) {
	rep := pendingReport(200, 0)

	if err := computeCancel(rep); err != nil {
		t.Fatalf("first cancel error = %v", err)
	}
	if err := computeCancel(rep); !errors.Is(err, ErrCancelled) {
		t.Errorf("second cancel error = %v, want ErrCancelled", err)
	}
	if _, err := computeAddItem(rep, testProduct(100), 10, weighing.UnitPounds, 0); !errors.Is(err, ErrCancelled) {
		t.Errorf("addItem on cancelled error = %v, want ErrCancelled", err)
	}
	if err := computeFinish(rep, 40); !errors.Is(err, ErrCancelled) {
		t.Errorf("finish on cancelled error = %v, want ErrCancelled", err)
	}
}

func TestCancelApprovedReport(t *testing.T) {
	rep := pendingReport(200, 0)
	if _, err := computeAddItem(rep, testProduct(150), 50, weighing.UnitPounds, 0); err != nil {
		t.Fatalf("computeAddItem() error = %v", err)
	}
	if err := computeFinish(rep, 40); err != nil {
		t.Fatalf("computeFinish() error = %v", err)
	}

	if err := computeCancel(rep); err != nil {
		t.Fatalf("cancel of approved report error = %v", err)
	}
	if rep.State != models.ReportCancelled {
		t.Errorf("State = %v, want CANCELLED", rep.State)
	}
	// No recomputation on cancel.
	if rep.TotalPrice != 71.25 {
		t.Errorf("TotalPrice = %v, want 71.25 untouched", rep.TotalPrice)
	}
}

func TestAddItemOnApprovedReport(t *testing.T) {
	rep := pendingReport(200, 0)
	product := testProduct(150)
	if _, err := computeAddItem(rep, product, 50, weighing.UnitPounds, 0); err != nil {
		t.Fatalf("computeAddItem() error = %v", err)
	}
	if err := computeFinish(rep, 40); err != nil {
		t.Fatalf("computeFinish() error = %v", err)
	}

	if _, err := computeAddItem(rep, product, 50, weighing.UnitPounds, 0); !errors.Is(err, ErrNotPending) {
		t.Errorf("addItem on APPROVED error = %v, want ErrNotPending", err)
	}
	if err := computeFinish(rep, 30); !errors.Is(err, ErrNotPending) {
		t.Errorf("finish on APPROVED error = %v, want ErrNotPending", err)
	}
}
