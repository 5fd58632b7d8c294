package cohort

import (
	"errors"
	"math/rand"
)

var ErrInvalidCount = errors.New("cohort: count must be positive")

const (
	ageMin = 18
	ageMax = 45

	laborHoursMin = 4
	laborHoursMax = 23

	cesareanRate      = 0.3
	urbanRate         = 0.6
	complicationsRate = 0.2
)

// Generator produces synthetic patient records from an explicit random
// source, so callers that need reproducible cohorts can fix the seed.
type Generator struct {
	rng *rand.Rand
}

func NewGenerator(rng *rand.Rand) *Generator {
	return &Generator{rng: rng}
}

func NewSeededGenerator(seed int64) *Generator {
	return NewGenerator(rand.New(rand.NewSource(seed)))
}

// Generate draws count independent records with sequential IDs 1..count.
func (g *Generator) Generate(count int) ([]PatientRecord, error) {
	if count <= 0 {
		return nil, ErrInvalidCount
	}

	records := make([]PatientRecord, 0, count)
	for i := 0; i < count; i++ {
		r := PatientRecord{
			ID:                 i + 1,
			Age:                ageMin + g.rng.Intn(ageMax-ageMin+1),
			DeliveryType:       DeliveryVaginal,
			LaborDurationHours: laborHoursMin + g.rng.Intn(laborHoursMax-laborHoursMin+1),
			HasComplications:   g.rng.Float64() < complicationsRate,
			Location:           LocationRural,
		}
		if g.rng.Float64() < cesareanRate {
			r.DeliveryType = DeliveryCesarean
		}
		if g.rng.Float64() < urbanRate {
			r.Location = LocationUrban
		}

		stay := 2
		if r.DeliveryType == DeliveryCesarean {
			stay = 4
		}
		if r.HasComplications {
			stay += 2
		}
		stay += g.rng.Intn(2)
		r.LengthOfStayDays = stay

		r.Readmitted = g.rng.Float64() < ReadmissionRisk(r)
		records = append(records, r)
	}
	return records, nil
}

// ReadmissionRisk is the hand-specified additive ground-truth model. The sum
// is intentionally not clamped to [0,1]; the delivery-type guard on the
// short-stay increment keeps the attainable maximum below 1, but nothing here
// enforces that if the increments are ever retuned.
func ReadmissionRisk(r PatientRecord) float64 {
	p := 0.05
	if r.DeliveryType == DeliveryCesarean {
		p += 0.15
	}
	if r.HasComplications {
		p += 0.25
	}
	if r.Location == LocationRural {
		p += 0.10
	}
	if r.Age > 35 {
		p += 0.10
	}
	if r.DeliveryType == DeliveryVaginal && r.LengthOfStayDays < 3 {
		p += 0.15
	}
	return p
}
