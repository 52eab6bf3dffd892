package handlers

import (
	"delivery-relay/internal/domain"
	"delivery-relay/internal/service/assignment"
	"delivery-relay/internal/service/dispatch"
	"delivery-relay/internal/service/lifecycle"
	"delivery-relay/internal/service/tariff"
)

func courierRefToResponse(c *domain.CourierRef) *courierRefDTO {
	if c == nil {
		return nil
	}
	return &courierRefDTO{ID: c.ID, Name: c.Name, Phone: c.Phone}
}

func orderToResponse(o domain.DeliveryOrder) orderDTO {
	items := make([]orderItemDTO, 0, len(o.Items))
	for _, it := range o.Items {
		items = append(items, orderItemDTO{
			ArticleID:   it.ArticleID,
			Designation: it.Designation,
			Quantity:    it.Quantity,
			UnitPrice:   it.UnitPrice,
		})
	}
	return orderDTO{
		ID:          o.ID,
		DeliveryID:  o.DeliveryID,
		Code:        o.Code,
		Status:      string(o.Status),
		Total:       o.Total,
		DeliveryFee: o.DeliveryFee,
		Items:       items,
		ClientID:    o.ClientID,
		Client: addressDTO{
			Name:       o.Client.Name,
			Phone:      o.Client.Phone,
			Street:     o.Client.Street,
			City:       o.Client.City,
			PostalCode: o.Client.PostalCode,
		},
		Merchant:      merchantDTO{Name: o.Merchant.Name, Email: o.Merchant.Email, City: o.Merchant.City},
		Pickup:        courierRefToResponse(o.Pickup),
		Final:         courierRefToResponse(o.Final),
		RefusalReason: o.RefusalReason,
	}
}

func viewToResponse(v lifecycle.View) orderViewResponse {
	actions := make([]string, 0, len(v.Actions))
	for _, a := range v.Actions {
		actions = append(actions, string(a))
	}
	return orderViewResponse{
		Order:    orderToResponse(v.Order),
		Mode:     string(v.Mode),
		Role:     string(v.Role),
		Actions:  actions,
		Terminal: v.Terminal,
	}
}

func courierToResponse(c domain.Courier) courierDTO {
	out := courierDTO{
		ID:         c.ID,
		Name:       c.Name,
		Phone:      c.Phone,
		Zone:       c.Zone,
		Status:     string(c.Status),
		DistanceKm: c.DistanceKm,
		Demo:       c.Demo,
	}
	if c.LocationKnown {
		out.Location = &coordinateDTO{Lat: c.Location.Lat, Lon: c.Location.Lon}
	}
	return out
}

func poolToResponse(p assignment.Pool) poolDTO {
	cs := make([]courierDTO, 0, len(p.Couriers))
	for _, c := range p.Couriers {
		cs = append(cs, courierToResponse(c))
	}
	return poolDTO{City: p.City, Degraded: p.Degraded, Couriers: cs}
}

func planToResponse(p dispatch.Plan) planResponse {
	out := planResponse{
		OrderID:          p.Order.ID,
		Status:           string(p.Order.Status),
		Mode:             string(p.Mode),
		DeliveryType:     p.Mode.DeliveryType(),
		MerchantCity:     p.MerchantCity,
		ClientCity:       p.ClientCity,
		MerchantDistrict: p.MerchantDistrict,
		ClientDistrict:   p.ClientDistrict,
		Origin:           coordinateDTO{Lat: p.Origin.Lat, Lon: p.Origin.Lon},
		Source:           p.Source,
		Availability:     string(p.Availability),
		Degraded:         p.Pools.Degraded(),
		DeliveryPool:     poolToResponse(p.Pools.Delivery),
	}
	if p.Pools.Pickup != nil {
		pp := poolToResponse(*p.Pools.Pickup)
		out.PickupPool = &pp
	}
	return out
}

func quoteToResponse(q domain.DeliveryQuote) quoteDTO {
	return quoteDTO{
		Total:           q.Total,
		Currency:        q.Currency,
		PickupLocalKm:   q.PickupLocalKm,
		PickupLocalCost: q.PickupLocalCost,
		LinehaulKm:      q.LinehaulKm,
		LinehaulCost:    q.LinehaulCost,
		FinalLocalKm:    q.FinalLocalKm,
		FinalLocalCost:  q.FinalLocalCost,
		InsuranceCost:   q.InsuranceCost,
		SurchargeCost:   q.SurchargeCost,
	}
}

func resultToResponse(r domain.AssignmentResult) assignmentResultDTO {
	return assignmentResultDTO{
		OrderID:          r.OrderID,
		Mode:             string(r.Mode),
		Pickup:           courierRefToResponse(r.Pickup),
		Final:            courierRefToResponse(r.Final),
		EstimatedMinutes: r.EstimatedMinutes,
		Status:           string(r.Status),
		Message:          r.Message,
	}
}

func snapshotToResponse(s dispatch.Snapshot) sessionResponse {
	out := sessionResponse{
		ID:   s.ID,
		Plan: planToResponse(s.Plan),
		Selection: selectionDTO{
			PickupID:              s.Selection.Pickup,
			DeliveryID:            s.Selection.Delivery,
			QuartierAgenceDepart:  s.Selection.AgencyDepartureDist,
			QuartierAgenceArrivee: s.Selection.AgencyArrivalDist,
			QuartierLivreurFinal:  s.Selection.FinalDistrict,
			PoidsKg:               s.Selection.WeightKg,
			VolumeM3:              s.Selection.VolumeM3,
		},
	}
	if s.Quote != nil {
		q := quoteToResponse(*s.Quote)
		out.Quote = &q
	}
	if s.Result != nil {
		r := resultToResponse(*s.Result)
		out.Result = &r
	}
	return out
}

func confirmationToResponse(c dispatch.Confirmation) confirmResponse {
	out := confirmResponse{Result: resultToResponse(c.Result)}
	if c.Order != nil {
		o := orderToResponse(*c.Order)
		out.Order = &o
	}
	return out
}

func (r detailsRequest) toModel() dispatch.Details {
	return dispatch.Details{
		AgencyDepartureDist: r.QuartierAgenceDepart,
		AgencyArrivalDist:   r.QuartierAgenceArrivee,
		FinalDistrict:       r.QuartierLivreurFinal,
		WeightKg:            r.PoidsKg,
		VolumeM3:            r.VolumeM3,
	}
}

func (r openSessionRequest) toHint() dispatch.Hint {
	h := dispatch.Hint{MerchantCity: r.MerchantCity, ClientCity: r.ClientCity}
	if r.Lat != nil && r.Lon != nil {
		h.Origin = domain.Coordinate{Lat: *r.Lat, Lon: *r.Lon}
	}
	return h
}

// toModel fills the delivery type from the cities when the caller left it out.
func (r estimateRequest) toModel() domain.QuoteRequest {
	deliveryType := r.DeliveryType
	if deliveryType == "" {
		deliveryType = assignment.Classify(r.VilleDepart, r.VilleArrivee).DeliveryType()
	}
	ids := r.ArticleIDs
	if ids == nil {
		ids = []int64{}
	}
	return domain.QuoteRequest{
		DepartureCity:     r.VilleDepart,
		ArrivalCity:       r.VilleArrivee,
		DepartureDistrict: r.QuartierDepart,
		ArrivalDistrict:   r.QuartierArrivee,
		ArticleIDs:        ids,
		DeliveryType:      deliveryType,
		WeightKg:          r.PoidsKg,
		OrderAmount:       r.MontantCommande,
		VolumeM3:          r.VolumeM3,
	}
}

func estimateToResponse(e tariff.Estimate) estimateResponse {
	out := estimateResponse{Amount: e.Amount, Fallback: e.Fallback}
	if e.Quote != nil {
		q := quoteToResponse(*e.Quote)
		out.Quote = &q
	}
	return out
}
