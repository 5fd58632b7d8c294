package features

import (
	"math"
	"reflect"
	"testing"

	"github.com/yungbote/materna-backend/internal/cohort"
)

func TestEncodeDeterministic(t *testing.T) {
	r := cohort.PatientRecord{
		ID:                 7,
		Age:                29,
		DeliveryType:       cohort.DeliveryVaginal,
		LaborDurationHours: 12,
		HasComplications:   false,
		LengthOfStayDays:   3,
		Location:           cohort.LocationUrban,
	}
	a := Encode(r)
	b := Encode(r)
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("encoding the same record twice differed: %v vs %v", a, b)
	}
}

func TestEncodeUpperBoundRecord(t *testing.T) {
	r := cohort.PatientRecord{
		Age:                45,
		DeliveryType:       cohort.DeliveryCesarean,
		LaborDurationHours: 23,
		HasComplications:   true,
		LengthOfStayDays:   10,
		Location:           cohort.LocationRural,
	}
	got := Encode(r)
	want := []float64{1, 1, 23.0 / 24.0, 1, 1, 1}
	if len(got) != Count {
		t.Fatalf("expected width %d, got %d", Count, len(got))
	}
	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-12 {
			t.Fatalf("feature %d: expected %v, got %v", i, want[i], got[i])
		}
	}
}

func TestEncodeIndicatorPositions(t *testing.T) {
	r := cohort.PatientRecord{
		Age:                30,
		DeliveryType:       cohort.DeliveryVaginal,
		LaborDurationHours: 10,
		HasComplications:   false,
		LengthOfStayDays:   2,
		Location:           cohort.LocationUrban,
	}
	got := Encode(r)
	for _, idx := range []int{1, 3, 5} {
		if got[idx] != 0 {
			t.Fatalf("indicator %d should be 0 for vaginal/no-complications/urban, got %v", idx, got[idx])
		}
	}
}

func TestEncodeAllAlignsLabels(t *testing.T) {
	records := []cohort.PatientRecord{
		{ID: 1, Age: 25, DeliveryType: cohort.DeliveryVaginal, LaborDurationHours: 8, LengthOfStayDays: 2, Location: cohort.LocationUrban, Readmitted: true},
		{ID: 2, Age: 33, DeliveryType: cohort.DeliveryCesarean, LaborDurationHours: 15, LengthOfStayDays: 5, Location: cohort.LocationRural, Readmitted: false},
	}
	matrix, labels := EncodeAll(records)
	if len(matrix) != 2 || len(labels) != 2 {
		t.Fatalf("expected 2 rows and 2 labels, got %d/%d", len(matrix), len(labels))
	}
	if labels[0] != 1 || labels[1] != 0 {
		t.Fatalf("labels misaligned with records: %v", labels)
	}
	if len(matrix[0]) != Count || len(matrix[1]) != Count {
		t.Fatalf("matrix rows must be %d wide", Count)
	}
}
