package domain

import "math"

// QuoteRequest is the input of a segmented tariff quote.
type QuoteRequest struct {
	DepartureCity        string `validate:"required"`
	ArrivalCity          string `validate:"required"`
	DepartureDistrict    string
	ArrivalDistrict      string
	AgencyDepartureCity  string
	AgencyDepartureDist  string
	AgencyArrivalCity    string
	AgencyArrivalDist    string
	FinalCourierCity     string
	FinalCourierDistrict string
	FinalCourierID       int64 `validate:"gte=0"`
	ArticleIDs           []int64
	DeliveryType         string  `validate:"required,oneof=LOCALE INTERVILLE"`
	WeightKg             float64 `validate:"gte=1"`
	OrderAmount          float64 `validate:"gte=0"`
	VolumeM3             *float64
}

// MinWeightKg is the weight floor applied to every quote.
const MinWeightKg = 1.0

// Normalize applies the weight floor and drops a non-positive volume.
func (r QuoteRequest) Normalize() QuoteRequest {
	if r.WeightKg < MinWeightKg {
		r.WeightKg = MinWeightKg
	}
	if r.VolumeM3 != nil && *r.VolumeM3 <= 0 {
		r.VolumeM3 = nil
	}
	return r
}

// DeliveryQuote is the segmented cost breakdown returned by the backend.
// Total is authoritative; the parts are only displayed.
type DeliveryQuote struct {
	Total           float64
	PickupLocalKm   float64
	PickupLocalCost float64
	LinehaulKm      float64
	LinehaulCost    float64
	FinalLocalKm    float64
	FinalLocalCost  float64
	InsuranceCost   float64
	SurchargeCost   float64
	Currency        string
}

// QuoteTolerance is the rounding tolerance used when checking a breakdown.
const QuoteTolerance = 0.01

// PartsSum adds up the segment costs.
func (q DeliveryQuote) PartsSum() float64 {
	return q.PickupLocalCost + q.LinehaulCost + q.FinalLocalCost + q.InsuranceCost + q.SurchargeCost
}

// Consistent reports whether Total matches the segment sum within tol.
func (q DeliveryQuote) Consistent(tol float64) bool {
	return math.Abs(q.Total-q.PartsSum()) <= tol
}
