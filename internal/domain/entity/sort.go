package entity

// SortField columna reconocida para ordenar listados de ventas.
// Solo se obtiene con ParseSortField, así el almacén nunca recibe un nombre arbitrario.
type SortField struct {
	column string
}

// Column nombre de la columna en la tabla customer_sales.
func (f SortField) Column() string { return f.column }

func (f SortField) String() string { return f.column }

// IsZero indica un SortField no construido con ParseSortField.
func (f SortField) IsZero() bool { return f.column == "" }

// SortByID orden por defecto.
var SortByID = SortField{column: "id"}

var sortFields = map[string]SortField{
	"id":                SortByID,
	"customer_id":       {column: "customer_id"},
	"first_name":        {column: "first_name"},
	"last_name":         {column: "last_name"},
	"company":           {column: "company"},
	"city":              {column: "city"},
	"country":           {column: "country"},
	"phone1":            {column: "phone1"},
	"phone2":            {column: "phone2"},
	"email":             {column: "email"},
	"subscription_date": {column: "subscription_date"},
	"website":           {column: "website"},
	"sales_2021":        {column: "sales_2021"},
	"sales_2022":        {column: "sales_2022"},
}

// ParseSortField valida name contra el conjunto fijo de columnas (sensible a mayúsculas).
func ParseSortField(name string) (SortField, bool) {
	f, ok := sortFields[name]
	return f, ok
}

// SortFieldNames lista los nombres aceptados por ParseSortField.
func SortFieldNames() []string {
	return []string{
		"id", "customer_id", "first_name", "last_name", "company", "city", "country",
		"phone1", "phone2", "email", "subscription_date", "website", "sales_2021", "sales_2022",
	}
}

// SortOrder dirección del ordenamiento.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// ParseSortOrder solo "asc" exacto es ascendente; cualquier otro valor, incluido "", es descendente.
func ParseSortOrder(s string) SortOrder {
	if s == string(SortAsc) {
		return SortAsc
	}
	return SortDesc
}

// SQL devuelve ASC o DESC.
func (o SortOrder) SQL() string {
	if o == SortDesc {
		return "DESC"
	}
	return "ASC"
}
