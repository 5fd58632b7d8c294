package features

import "github.com/yungbote/materna-backend/internal/cohort"

// Count is the width of every encoded feature vector. The model's weight
// vector is sized against it.
const Count = 6

// Fixed normalization bounds. These are part of the encoding contract, not
// statistics of any particular cohort, so train-time and inference-time
// vectors always agree.
const (
	ageScale   = 45.0
	laborScale = 24.0
	stayScale  = 10.0
)

// Encode maps a record to its fixed-order feature vector:
// [age, cesarean, labor duration, complications, length of stay, rural].
func Encode(r cohort.PatientRecord) []float64 {
	v := make([]float64, Count)
	v[0] = float64(r.Age) / ageScale
	if r.DeliveryType == cohort.DeliveryCesarean {
		v[1] = 1
	}
	v[2] = float64(r.LaborDurationHours) / laborScale
	if r.HasComplications {
		v[3] = 1
	}
	v[4] = float64(r.LengthOfStayDays) / stayScale
	if r.Location == cohort.LocationRural {
		v[5] = 1
	}
	return v
}

// EncodeAll builds the training matrix and label vector in record order.
func EncodeAll(records []cohort.PatientRecord) ([][]float64, []float64) {
	matrix := make([][]float64, 0, len(records))
	labels := make([]float64, 0, len(records))
	for _, r := range records {
		matrix = append(matrix, Encode(r))
		label := 0.0
		if r.Readmitted {
			label = 1
		}
		labels = append(labels, label)
	}
	return matrix, labels
}
