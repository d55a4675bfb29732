package catalog

type Treatment struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type Product struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

// FallbackTreatment is priced into the cart when a draft carries no service.
const FallbackTreatment = "60 Min Therapy"

const (
	TreatmentFootSoak      = "Herbal Foot Soak (30 Min)"
	TreatmentJustFeetCombo = "Just Feet Combo (Soak & Reflex) 60 Min"
)

// Prices are whole Rands; no cents anywhere in the price list.
var Treatments = []Treatment{
	{Name: "Online Assessment", Price: 100},
	{Name: "Assessment", Price: 200},
	{Name: "40 Min Therapy", Price: 250},
	{Name: "60 Min Therapy", Price: 300},
	{Name: "90 Min Therapy", Price: 440},
	{Name: "2 Hr Therapy", Price: 550},
	{Name: TreatmentFootSoak, Price: 140},
	{Name: TreatmentJustFeetCombo, Price: 320},
	{Name: "7 Up-Front Sessions (5% Discount)", Price: 1995},
	{Name: "10 Up-Front Sessions (10% Discount)", Price: 2700},
}

var Products = []Product{
	{Name: "Green Tea", Price: 79},
	{Name: "Moringa", Price: 129},
	{Name: "Calcium Powder", Price: 99},
}

var Branches = map[string][]string{
	"Western Cape":  {"Cape Town CBD", "Stellenbosch", "Claremont"},
	"Gauteng":       {"Sandton", "Rosebank", "Pretoria East"},
	"KwaZulu-Natal": {"Umhlanga", "Durban North"},
	"Eastern Cape":  {"Gqeberha", "East London"},
	"Free State":    {"Bloemfontein"},
	"Limpopo":       {"Polokwane"},
	"Mpumalanga":    {"Mbombela"},
	"Northern Cape": {"Kimberley"},
	"North West":    {"Rustenburg"},
}

// TimeSlots is the fixed daily grid; every appointment starts on one of
// these and runs for ServiceDurationMinutes.
var TimeSlots = []string{"09:00", "10:30", "12:00", "13:30", "15:00", "16:30"}

const ServiceDurationMinutes = 60
