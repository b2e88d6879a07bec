package generation

// Reference vocabularies for the beverage distributor the dashboard models.
// Slices, not maps, so that iteration order and therefore output is fixed.

var categories = []string{"Beer", "Wine", "Spirits", "Soft Drinks", "Water"}

var vendors = []string{"SAB Miller", "Distell", "Coca-Cola", "Pepsi", "Local Brands"}

var packSizes = []string{"330ml", "500ml", "750ml", "1L", "2L"}

type priceRange struct {
	Min, Max float64
}

// unit price range per category, in rand
var categoryPrices = map[string]priceRange{
	"Beer":        {15, 45},
	"Wine":        {50, 300},
	"Spirits":     {80, 500},
	"Soft Drinks": {8, 25},
	"Water":       {5, 15},
}

// unit cost is the unit price times a factor drawn from this range
const (
	minCostFactor = 0.50
	maxCostFactor = 0.80
)

// salesTerms bounds the quantity and discount of a sales line per category
type salesTerms struct {
	MaxQuantity int
	MaxDiscount float64
}

var categoryTerms = map[string]salesTerms{
	"Beer":        {MaxQuantity: 100, MaxDiscount: 0.15},
	"Wine":        {MaxQuantity: 48, MaxDiscount: 0.10},
	"Spirits":     {MaxQuantity: 36, MaxDiscount: 0.10},
	"Soft Drinks": {MaxQuantity: 100, MaxDiscount: 0.15},
	"Water":       {MaxQuantity: 100, MaxDiscount: 0.05},
}

type region struct {
	Name   string
	Cities []string
}

var regions = []region{
	{"Gauteng", []string{"Johannesburg", "Pretoria", "Sandton", "Randburg"}},
	{"Western Cape", []string{"Cape Town", "Stellenbosch", "Paarl", "George"}},
	{"KwaZulu-Natal", []string{"Durban", "Pietermaritzburg", "Newcastle", "Richards Bay"}},
	{"Eastern Cape", []string{"Port Elizabeth", "East London", "Grahamstown"}},
	{"Free State", []string{"Bloemfontein", "Welkom", "Kroonstad"}},
	{"Limpopo", []string{"Polokwane", "Tzaneen", "Musina"}},
	{"Mpumalanga", []string{"Nelspruit", "Witbank", "Secunda"}},
	{"North West", []string{"Rustenburg", "Klerksdorp", "Potchefstroom"}},
	{"Northern Cape", []string{"Kimberley", "Upington", "Springbok"}},
}

var channels = []string{"Retail", "Wholesale", "On-Trade", "Export"}

var customerTypes = []string{"Chain Store", "Independent", "Restaurant", "Bar", "Hotel"}

var paymentTerms = []int{7, 14, 30, 45}

// department ladders: the last position heads the department
type department struct {
	Name      string
	Positions []string
}

var departments = []department{
	{"Sales", []string{"Sales Rep", "Sales Manager", "Regional Manager", "Sales Director"}},
	{"Marketing", []string{"Marketing Coordinator", "Brand Manager", "Marketing Manager", "CMO"}},
	{"Finance", []string{"Accountant", "Financial Analyst", "Finance Manager", "CFO"}},
	{"Operations", []string{"Warehouse Clerk", "Logistics Coordinator", "Operations Manager", "COO"}},
	{"HR", []string{"HR Assistant", "HR Generalist", "HR Manager", "CHRO"}},
	{"IT", []string{"IT Support", "Developer", "IT Manager", "CTO"}},
}

type salaryRange struct {
	Min, Max int
}

var positionSalaries = map[string]salaryRange{
	"Sales Rep":             {180000, 300000},
	"Sales Manager":         {400000, 600000},
	"Regional Manager":      {600000, 800000},
	"Sales Director":        {800000, 1200000},
	"Marketing Coordinator": {200000, 350000},
	"Brand Manager":         {450000, 650000},
	"Marketing Manager":     {600000, 800000},
	"CMO":                   {1000000, 1500000},
}

var defaultSalary = salaryRange{200000, 500000}

var firstNames = []string{
	"Thabo", "Lerato", "Sipho", "Naledi", "Pieter", "Anika", "Johan", "Zanele",
	"Mandla", "Ayesha", "Kagiso", "Refilwe", "David", "Priya", "Themba", "Lindiwe",
}

var lastNames = []string{
	"Nkosi", "Dlamini", "Botha", "van der Merwe", "Naidoo", "Mokoena", "Pillay",
	"Khumalo", "Smith", "Jacobs", "Mahlangu", "Pretorius", "Ndlovu", "Fourie",
}

var warehouses = []string{"JHB Main", "CPT Main", "DBN Main", "PE Branch"}

const (
	minBudget = 500000
	maxBudget = 2000000
)
