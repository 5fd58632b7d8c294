package cohort

type DeliveryType string

const (
	DeliveryVaginal  DeliveryType = "vaginal"
	DeliveryCesarean DeliveryType = "cesarean"
)

type Location string

const (
	LocationUrban Location = "urban"
	LocationRural Location = "rural"
)

// PatientRecord is one synthetic maternity admission. Records are immutable
// once generated; Readmitted is the supervised-learning ground truth, drawn
// exactly once at generation time and never recomputed.
type PatientRecord struct {
	ID                 int          `json:"id"`
	Age                int          `json:"age"`
	DeliveryType       DeliveryType `json:"delivery_type"`
	LaborDurationHours int          `json:"labor_duration_hours"`
	HasComplications   bool         `json:"has_complications"`
	LengthOfStayDays   int          `json:"length_of_stay_days"`
	Location           Location     `json:"location"`
	Readmitted         bool         `json:"readmitted"`
}
