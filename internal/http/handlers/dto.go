package handlers

type coordinateDTO struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type courierRefDTO struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Phone string `json:"phone,omitempty"`
}

type orderItemDTO struct {
	ArticleID   int64   `json:"articleId"`
	Designation string  `json:"designation"`
	Quantity    int     `json:"quantity"`
	UnitPrice   float64 `json:"unitPrice"`
}

type addressDTO struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Street     string `json:"street"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode,omitempty"`
}

type merchantDTO struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	City  string `json:"city"`
}

type orderDTO struct {
	ID            int64          `json:"id"`
	DeliveryID    int64          `json:"deliveryId,omitempty"`
	Code          string         `json:"code"`
	Status        string         `json:"status"`
	Total         float64        `json:"total"`
	DeliveryFee   float64        `json:"deliveryFee"`
	Items         []orderItemDTO `json:"items"`
	ClientID      int64          `json:"clientId"`
	Client        addressDTO     `json:"client"`
	Merchant      merchantDTO    `json:"merchant"`
	Pickup        *courierRefDTO `json:"pickup,omitempty"`
	Final         *courierRefDTO `json:"final,omitempty"`
	RefusalReason string         `json:"refusalReason,omitempty"`
}

type orderViewResponse struct {
	Order    orderDTO `json:"order"`
	Mode     string   `json:"mode"`
	Role     string   `json:"role"`
	Actions  []string `json:"actions"`
	Terminal bool     `json:"terminal"`
}

type courierDTO struct {
	ID         int64          `json:"id"`
	Name       string         `json:"name"`
	Phone      string         `json:"phone,omitempty"`
	Zone       string         `json:"zone,omitempty"`
	Status     string         `json:"status"`
	DistanceKm float64        `json:"distanceKm"`
	Location   *coordinateDTO `json:"location,omitempty"`
	Demo       bool           `json:"demo,omitempty"`
}

type poolDTO struct {
	City     string       `json:"city"`
	Degraded bool         `json:"degraded"`
	Couriers []courierDTO `json:"couriers"`
}

type planResponse struct {
	OrderID          int64         `json:"orderId"`
	Status           string        `json:"status"`
	Mode             string        `json:"mode"`
	DeliveryType     string        `json:"deliveryType"`
	MerchantCity     string        `json:"merchantCity"`
	ClientCity       string        `json:"clientCity"`
	MerchantDistrict string        `json:"merchantDistrict,omitempty"`
	ClientDistrict   string        `json:"clientDistrict,omitempty"`
	Origin           coordinateDTO `json:"origin"`
	Source           string        `json:"source"`
	Availability     string        `json:"availability"`
	Degraded         bool          `json:"degraded"`
	PickupPool       *poolDTO      `json:"pickupPool,omitempty"`
	DeliveryPool     poolDTO       `json:"deliveryPool"`
}

type quoteDTO struct {
	Total           float64 `json:"total"`
	Currency        string  `json:"currency"`
	PickupLocalKm   float64 `json:"pickupLocalKm"`
	PickupLocalCost float64 `json:"pickupLocalCost"`
	LinehaulKm      float64 `json:"linehaulKm"`
	LinehaulCost    float64 `json:"linehaulCost"`
	FinalLocalKm    float64 `json:"finalLocalKm"`
	FinalLocalCost  float64 `json:"finalLocalCost"`
	InsuranceCost   float64 `json:"insuranceCost"`
	SurchargeCost   float64 `json:"surchargeCost"`
}

type assignmentResultDTO struct {
	OrderID          int64          `json:"orderId"`
	Mode             string         `json:"mode"`
	Pickup           *courierRefDTO `json:"pickup,omitempty"`
	Final            *courierRefDTO `json:"final,omitempty"`
	EstimatedMinutes int            `json:"estimatedMinutes,omitempty"`
	Status           string         `json:"status"`
	Message          string         `json:"message,omitempty"`
}

type selectionDTO struct {
	PickupID              int64    `json:"pickupId,omitempty"`
	DeliveryID            int64    `json:"deliveryId,omitempty"`
	QuartierAgenceDepart  string   `json:"quartierAgenceDepart,omitempty"`
	QuartierAgenceArrivee string   `json:"quartierAgenceArrivee,omitempty"`
	QuartierLivreurFinal  string   `json:"quartierLivreurFinal,omitempty"`
	PoidsKg               float64  `json:"poidsKg"`
	VolumeM3              *float64 `json:"volumeM3,omitempty"`
}

type sessionResponse struct {
	ID        string               `json:"id"`
	Plan      planResponse         `json:"plan"`
	Selection selectionDTO         `json:"selection"`
	Quote     *quoteDTO            `json:"quote,omitempty"`
	Result    *assignmentResultDTO `json:"result,omitempty"`
}

type confirmResponse struct {
	Result assignmentResultDTO `json:"result"`
	Order  *orderDTO           `json:"order,omitempty"`
}

type estimateResponse struct {
	Amount   float64   `json:"amount"`
	Fallback bool      `json:"fallback"`
	Quote    *quoteDTO `json:"quote,omitempty"`
}

type openSessionRequest struct {
	MerchantCity string   `json:"merchantCity"`
	ClientCity   string   `json:"clientCity"`
	Lat          *float64 `json:"lat" validate:"omitempty,gte=-90,lte=90"`
	Lon          *float64 `json:"lon" validate:"omitempty,gte=-180,lte=180"`
}

type selectCourierRequest struct {
	CourierID int64 `json:"courierId" validate:"gt=0"`
}

type detailsRequest struct {
	QuartierAgenceDepart  string   `json:"quartierAgenceDepart"`
	QuartierAgenceArrivee string   `json:"quartierAgenceArrivee"`
	QuartierLivreurFinal  string   `json:"quartierLivreurFinal"`
	PoidsKg               float64  `json:"poidsKg" validate:"gte=0"`
	VolumeM3              *float64 `json:"volumeM3"`
}

type actionRequest struct {
	Role           string `json:"role" validate:"required,oneof=merchant courier final_courier"`
	Reason         string `json:"reason"`
	LivreurFinalID int64  `json:"livreurFinalId" validate:"gte=0"`
	ExpectedStatus string `json:"expectedStatus"`
}

type estimateRequest struct {
	VilleDepart     string   `json:"villeDepart" validate:"required"`
	VilleArrivee    string   `json:"villeArrivee" validate:"required"`
	QuartierDepart  string   `json:"quartierDepart"`
	QuartierArrivee string   `json:"quartierArrivee"`
	ArticleIDs      []int64  `json:"articleIds"`
	DeliveryType    string   `json:"deliveryType" validate:"omitempty,oneof=LOCALE INTERVILLE"`
	PoidsKg         float64  `json:"poidsKg" validate:"gte=0"`
	MontantCommande float64  `json:"montantCommande" validate:"gte=0"`
	VolumeM3        *float64 `json:"volumeM3"`
}
