package cohort

import (
	"errors"
	"math"
	"reflect"
	"testing"
)

func TestGenerateFieldRanges(t *testing.T) {
	records, err := NewSeededGenerator(42).Generate(1000)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(records) != 1000 {
		t.Fatalf("expected 1000 records, got %d", len(records))
	}
	for i, r := range records {
		if r.ID != i+1 {
			t.Fatalf("record %d: expected sequential id %d, got %d", i, i+1, r.ID)
		}
		if r.Age < 18 || r.Age > 45 {
			t.Fatalf("record %d: age %d out of range", r.ID, r.Age)
		}
		if r.LaborDurationHours < 4 || r.LaborDurationHours > 23 {
			t.Fatalf("record %d: labor duration %d out of range", r.ID, r.LaborDurationHours)
		}
		if r.LengthOfStayDays < 2 {
			t.Fatalf("record %d: length of stay %d below minimum", r.ID, r.LengthOfStayDays)
		}
		if r.DeliveryType == DeliveryCesarean && r.LengthOfStayDays < 4 {
			t.Fatalf("record %d: cesarean stay %d below base", r.ID, r.LengthOfStayDays)
		}
		if r.DeliveryType != DeliveryVaginal && r.DeliveryType != DeliveryCesarean {
			t.Fatalf("record %d: unknown delivery type %q", r.ID, r.DeliveryType)
		}
		if r.Location != LocationUrban && r.Location != LocationRural {
			t.Fatalf("record %d: unknown location %q", r.ID, r.Location)
		}
	}
}

func TestGenerateSingleRecord(t *testing.T) {
	records, err := NewSeededGenerator(1).Generate(1)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if len(records) != 1 || records[0].ID != 1 {
		t.Fatalf("expected exactly one record with id 1, got %+v", records)
	}
}

func TestGenerateRejectsNonPositiveCount(t *testing.T) {
	for _, count := range []int{0, -1, -100} {
		if _, err := NewSeededGenerator(1).Generate(count); !errors.Is(err, ErrInvalidCount) {
			t.Fatalf("count %d: expected ErrInvalidCount, got %v", count, err)
		}
	}
}

func TestGenerateDeterministicForSeed(t *testing.T) {
	a, err := NewSeededGenerator(99).Generate(200)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	b, err := NewSeededGenerator(99).Generate(200)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("same seed produced different cohorts")
	}
}

func TestReadmissionRiskAdditive(t *testing.T) {
	tests := []struct {
		name   string
		record PatientRecord
		want   float64
	}{
		{
			name: "high risk cesarean",
			record: PatientRecord{
				Age:              40,
				DeliveryType:     DeliveryCesarean,
				HasComplications: true,
				LengthOfStayDays: 6,
				Location:         LocationRural,
			},
			want: 0.65,
		},
		{
			name: "baseline vaginal",
			record: PatientRecord{
				Age:              30,
				DeliveryType:     DeliveryVaginal,
				LengthOfStayDays: 3,
				Location:         LocationUrban,
			},
			want: 0.05,
		},
		{
			name: "short stay vaginal",
			record: PatientRecord{
				Age:              30,
				DeliveryType:     DeliveryVaginal,
				LengthOfStayDays: 2,
				Location:         LocationUrban,
			},
			want: 0.20,
		},
		{
			name: "short stay increment excluded for cesarean",
			record: PatientRecord{
				Age:              30,
				DeliveryType:     DeliveryCesarean,
				LengthOfStayDays: 2,
				Location:         LocationUrban,
			},
			want: 0.20,
		},
	}
	for _, tt := range tests {
		got := ReadmissionRisk(tt.record)
		if math.Abs(got-tt.want) > 1e-9 {
			t.Fatalf("%s: expected risk %v, got %v", tt.name, tt.want, got)
		}
	}
}
