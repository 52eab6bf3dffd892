package backend

import (
	"fmt"
	"strings"

	"delivery-relay/internal/domain"
)

// CourierRaw is one entry of the availability list as the backend sends it.
// Several fields have historical aliases.
type CourierRaw struct {
	ID        int64    `json:"id"`
	Nom       string   `json:"nom"`
	Prenom    string   `json:"prenom"`
	Name      string   `json:"name"`
	Telephone string   `json:"telephone"`
	Phone     string   `json:"phone"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Distance  *float64 `json:"distance"`
	Statut    string   `json:"statut"`
	Status    string   `json:"status"`
	Ville     string   `json:"ville"`
	Zone      string   `json:"zone"`
}

// NormalizeCourier maps a raw entry onto the domain courier. Missing or
// zero coordinates become (0,0) with LocationKnown=false, a missing distance
// becomes domain.UnknownDistanceKm and a missing status is DISPONIBLE.
func NormalizeCourier(r CourierRaw) domain.Courier {
	c := domain.Courier{
		ID:         r.ID,
		Name:       strings.TrimSpace(r.Name),
		Phone:      firstNonEmpty(r.Telephone, r.Phone),
		DistanceKm: domain.UnknownDistanceKm,
		Status:     domain.CourierAvailable,
		Zone:       strings.TrimSpace(firstNonEmpty(r.Ville, r.Zone)),
	}
	if c.Name == "" {
		c.Name = strings.TrimSpace(strings.TrimSpace(r.Prenom) + " " + strings.TrimSpace(r.Nom))
	}
	if c.Name == "" {
		c.Name = fmt.Sprintf("Livreur #%d", r.ID)
	}
	if r.Latitude != nil && r.Longitude != nil {
		c.Location = domain.Coordinate{Lat: *r.Latitude, Lon: *r.Longitude}
		c.LocationKnown = c.Location.Known()
	}
	if r.Distance != nil && *r.Distance >= 0 {
		c.DistanceKm = *r.Distance
	}
	if s := domain.CourierStatus(strings.ToUpper(strings.TrimSpace(firstNonEmpty(r.Statut, r.Status)))); s.Valid() {
		c.Status = s
	}
	return c
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

type quoteRequestDTO struct {
	VilleDepart           string   `json:"villeDepart"`
	VilleArrivee          string   `json:"villeArrivee"`
	QuartierDepart        string   `json:"quartierDepart,omitempty"`
	QuartierArrivee       string   `json:"quartierArrivee,omitempty"`
	VilleAgenceDepart     string   `json:"villeAgenceDepart,omitempty"`
	QuartierAgenceDepart  string   `json:"quartierAgenceDepart,omitempty"`
	VilleAgenceArrivee    string   `json:"villeAgenceArrivee,omitempty"`
	QuartierAgenceArrivee string   `json:"quartierAgenceArrivee,omitempty"`
	VilleLivreurFinal     string   `json:"villeLivreurFinal,omitempty"`
	QuartierLivreurFinal  string   `json:"quartierLivreurFinal,omitempty"`
	LivreurFinalID        int64    `json:"livreurFinalId,omitempty"`
	ArticleIDs            []int64  `json:"articleIds"`
	TypeLivraison         string   `json:"typeLivraison"`
	PoidsKg               float64  `json:"poidsKg"`
	MontantCommande       float64  `json:"montantCommande,omitempty"`
	VolumeM3              *float64 `json:"volumeM3,omitempty"`
}

func toQuoteRequestDTO(r domain.QuoteRequest) quoteRequestDTO {
	ids := r.ArticleIDs
	if ids == nil {
		ids = []int64{}
	}
	return quoteRequestDTO{
		VilleDepart:           r.DepartureCity,
		VilleArrivee:          r.ArrivalCity,
		QuartierDepart:        r.DepartureDistrict,
		QuartierArrivee:       r.ArrivalDistrict,
		VilleAgenceDepart:     r.AgencyDepartureCity,
		QuartierAgenceDepart:  r.AgencyDepartureDist,
		VilleAgenceArrivee:    r.AgencyArrivalCity,
		QuartierAgenceArrivee: r.AgencyArrivalDist,
		VilleLivreurFinal:     r.FinalCourierCity,
		QuartierLivreurFinal:  r.FinalCourierDistrict,
		LivreurFinalID:        r.FinalCourierID,
		ArticleIDs:            ids,
		TypeLivraison:         r.DeliveryType,
		PoidsKg:               r.WeightKg,
		MontantCommande:       r.OrderAmount,
		VolumeM3:              r.VolumeM3,
	}
}

type quoteResponseDTO struct {
	Total               float64 `json:"total"`
	DistancePickupLocal float64 `json:"distancePickupLocal"`
	CoutPickupLocal     float64 `json:"coutPickupLocal"`
	DistanceInterVille  float64 `json:"distanceInterVille"`
	CoutInterVille      float64 `json:"coutInterVille"`
	DistanceFinalLocal  float64 `json:"distanceFinalLocal"`
	CoutFinalLocal      float64 `json:"coutFinalLocal"`
	CoutAssurance       float64 `json:"coutAssurance"`
	CoutSupplements     float64 `json:"coutSupplementsPoidsVolume"`
	Devise              string  `json:"devise"`
}

func (d quoteResponseDTO) toDomain() domain.DeliveryQuote {
	cur := d.Devise
	if cur == "" {
		cur = "XAF"
	}
	return domain.DeliveryQuote{
		Total:           d.Total,
		PickupLocalKm:   d.DistancePickupLocal,
		PickupLocalCost: d.CoutPickupLocal,
		LinehaulKm:      d.DistanceInterVille,
		LinehaulCost:    d.CoutInterVille,
		FinalLocalKm:    d.DistanceFinalLocal,
		FinalLocalCost:  d.CoutFinalLocal,
		InsuranceCost:   d.CoutAssurance,
		SurchargeCost:   d.CoutSupplements,
		Currency:        cur,
	}
}

type courierRefDTO struct {
	ID        int64  `json:"id"`
	Nom       string `json:"nom"`
	Prenom    string `json:"prenom"`
	Telephone string `json:"telephone"`
}

func (d *courierRefDTO) toDomain() *domain.CourierRef {
	if d == nil || d.ID == 0 {
		return nil
	}
	return &domain.CourierRef{
		ID:    d.ID,
		Name:  strings.TrimSpace(d.Prenom + " " + d.Nom),
		Phone: d.Telephone,
	}
}

type orderItemDTO struct {
	ArticleID    int64   `json:"articleId"`
	Designation  string  `json:"designation"`
	Quantite     int     `json:"quantite"`
	PrixUnitaire float64 `json:"prixUnitaire"`
}

type addressDTO struct {
	Nom        string `json:"nom"`
	Telephone  string `json:"telephone"`
	Rue        string `json:"rue"`
	Ville      string `json:"ville"`
	CodePostal string `json:"codePostal"`
}

type merchantDTO struct {
	Nom   string `json:"nom"`
	Email string `json:"email"`
	Ville string `json:"ville"`
}

type orderDTO struct {
	ID               int64          `json:"id"`
	LivraisonID      int64          `json:"livraisonId"`
	NumeroCommande   string         `json:"numeroCommande"`
	Statut           string         `json:"statut"`
	MontantTotal     float64        `json:"montantTotal"`
	FraisLivraison   float64        `json:"fraisLivraison"`
	Articles         []orderItemDTO `json:"articles"`
	ClientID         int64          `json:"clientId"`
	AdresseLivraison addressDTO     `json:"adresseLivraison"`
	Commercant       merchantDTO    `json:"commercant"`
	LivreurPickup    *courierRefDTO `json:"livreurPickup"`
	LivreurFinal     *courierRefDTO `json:"livreurFinal"`
	MotifRefus       string         `json:"motifRefus"`
}

func (d orderDTO) toDomain() (domain.DeliveryOrder, error) {
	status := domain.DeliveryStatus(strings.ToUpper(strings.TrimSpace(d.Statut)))
	if !status.Valid() {
		return domain.DeliveryOrder{}, fmt.Errorf("order %d: unknown status %q", d.ID, d.Statut)
	}
	items := make([]domain.OrderItem, 0, len(d.Articles))
	for _, a := range d.Articles {
		items = append(items, domain.OrderItem{
			ArticleID:   a.ArticleID,
			Designation: a.Designation,
			Quantity:    a.Quantite,
			UnitPrice:   a.PrixUnitaire,
		})
	}
	return domain.DeliveryOrder{
		ID:          d.ID,
		DeliveryID:  d.LivraisonID,
		Code:        d.NumeroCommande,
		Status:      status,
		Total:       d.MontantTotal,
		DeliveryFee: d.FraisLivraison,
		Items:       items,
		ClientID:    d.ClientID,
		Client: domain.Address{
			Name:       d.AdresseLivraison.Nom,
			Phone:      d.AdresseLivraison.Telephone,
			Street:     d.AdresseLivraison.Rue,
			City:       d.AdresseLivraison.Ville,
			PostalCode: d.AdresseLivraison.CodePostal,
		},
		Merchant: domain.MerchantRef{
			Name:  d.Commercant.Nom,
			Email: d.Commercant.Email,
			City:  d.Commercant.Ville,
		},
		Pickup:        d.LivreurPickup.toDomain(),
		Final:         d.LivreurFinal.toDomain(),
		RefusalReason: d.MotifRefus,
	}, nil
}

type partyDTO struct {
	Ville     string   `json:"ville"`
	Quartier  string   `json:"quartier"`
	Adresse   string   `json:"adresse"`
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
}

func (p partyDTO) toDomain() domain.Party {
	out := domain.Party{
		City:     strings.TrimSpace(p.Ville),
		District: strings.TrimSpace(p.Quartier),
		Address:  p.Adresse,
	}
	if p.Latitude != nil && p.Longitude != nil {
		out.Location = domain.Coordinate{Lat: *p.Latitude, Lon: *p.Longitude}
	}
	return out
}

type deliveryInfoDTO struct {
	CommandeID int64    `json:"commandeId"`
	Commercant partyDTO `json:"commercant"`
	Client     partyDTO `json:"client"`
}

func (d deliveryInfoDTO) toDomain(orderID int64) domain.DeliveryInfo {
	id := d.CommandeID
	if id == 0 {
		id = orderID
	}
	return domain.DeliveryInfo{
		OrderID:  id,
		Merchant: d.Commercant.toDomain(),
		Client:   d.Client.toDomain(),
	}
}

type assignmentResultDTO struct {
	CommandeID         int64          `json:"commandeId"`
	Livreur            *courierRefDTO `json:"livreur"`
	LivreurPickup      *courierRefDTO `json:"livreurPickup"`
	LivreurFinal       *courierRefDTO `json:"livreurFinal"`
	TempsEstimeMinutes int            `json:"tempsEstimeMinutes"`
	Statut             string         `json:"statut"`
	Message            string         `json:"message"`
}

func (d assignmentResultDTO) toDomain(orderID int64, mode domain.AssignmentMode) domain.AssignmentResult {
	id := d.CommandeID
	if id == 0 {
		id = orderID
	}
	res := domain.AssignmentResult{
		OrderID:          id,
		Mode:             mode,
		Pickup:           d.LivreurPickup.toDomain(),
		Final:            d.LivreurFinal.toDomain(),
		EstimatedMinutes: d.TempsEstimeMinutes,
		Status:           domain.DeliveryStatus(strings.ToUpper(strings.TrimSpace(d.Statut))),
		Message:          d.Message,
	}
	// a single-leg reply names one courier; it occupies the final slot.
	if res.Final == nil {
		res.Final = d.Livreur.toDomain()
	}
	return res
}

type dualAssignmentDTO struct {
	ClientID              int64    `json:"clientId"`
	MerchantEmail         string   `json:"merchantEmail"`
	LivreurPickupID       int64    `json:"livreurPickupId"`
	LivreurLivraisonID    int64    `json:"livreurLivraisonId"`
	QuartierAgenceDepart  string   `json:"quartierAgenceDepart,omitempty"`
	QuartierAgenceArrivee string   `json:"quartierAgenceArrivee,omitempty"`
	QuartierLivreurFinal  string   `json:"quartierLivreurFinal,omitempty"`
	PoidsKg               float64  `json:"poidsKg"`
	VolumeM3              *float64 `json:"volumeM3,omitempty"`
}

type statusDTO struct {
	Statut string `json:"statut"`
}

type refusalDTO struct {
	Raison string `json:"raison"`
}

type finalAssignDTO struct {
	LivreurFinalID int64 `json:"livreurFinalId"`
}
