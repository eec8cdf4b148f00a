package importer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/jhoicas/sales-dashboard-api/internal/domain/entity"
)

// Delimiter separador de campos del archivo de ventas. Las comillas no tienen significado especial.
const Delimiter = ";"

// Columnas del encabezado que la carga necesita.
const (
	ColCustomerID       = "Customer Id"
	ColFirstName        = "First Name"
	ColLastName         = "Last Name"
	ColCompany          = "Company"
	ColCity             = "City"
	ColCountry          = "Country"
	ColPhone1           = "Phone 1"
	ColPhone2           = "Phone 2"
	ColEmail            = "Email"
	ColSubscriptionDate = "Subscription Date"
	ColWebsite          = "Website"
	ColSales2021        = "SALES 2021"
	ColSales2022        = "SALES 2022"
)

var requiredColumns = []string{
	ColCustomerID, ColFirstName, ColLastName, ColCompany, ColCity, ColCountry,
	ColPhone1, ColPhone2, ColEmail, ColSubscriptionDate, ColWebsite, ColSales2021, ColSales2022,
}

var (
	ErrEmptySource    = errors.New("archivo de ventas vacío")
	ErrMissingColumn  = errors.New("columna requerida ausente en el encabezado")
	ErrInvalidSales   = errors.New("valor de ventas no convertible a entero")
	ErrSourceNotFound = errors.New("archivo de ventas no encontrado")
)

// ParseResult registros bien formados y cantidad de líneas descartadas.
type ParseResult struct {
	Records []*entity.CustomerSales
	Skipped int
}

// Parse lee el archivo completo antes de devolver: si una venta no es convertible
// no se devuelve ningún registro.
//   - Líneas en blanco se ignoran.
//   - Líneas con un número de campos distinto al del encabezado se descartan (Skipped),
//     sin límite de longitud de línea.
//   - SALES 2021/2022 no convertibles abortan todo con ErrInvalidSales.
func Parse(r io.Reader) (*ParseResult, error) {
	br := bufio.NewReader(r)

	var (
		header  []string
		index   map[string]int
		lineNum int
		res     = &ParseResult{Records: make([]*entity.CustomerSales, 0)}
	)
	for {
		raw, err := br.ReadString('\n')
		if err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("leer archivo de ventas: %w", err)
		}
		if raw == "" && err != nil {
			break
		}
		lineNum++
		line := strings.TrimRight(raw, "\r\n")
		if strings.TrimSpace(line) == "" {
			continue
		}
		fields := strings.Split(line, Delimiter)

		if header == nil {
			var err error
			if index, err = headerIndex(fields); err != nil {
				return nil, err
			}
			header = fields
			continue
		}

		if len(fields) != len(header) {
			res.Skipped++
			continue
		}

		rec, err := buildRecord(fields, index, lineNum)
		if err != nil {
			return nil, err
		}
		res.Records = append(res.Records, rec)
	}
	if header == nil {
		return nil, ErrEmptySource
	}
	return res, nil
}

func headerIndex(fields []string) (map[string]int, error) {
	index := make(map[string]int, len(fields))
	for i, f := range fields {
		name := strings.TrimSpace(f)
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			return nil, fmt.Errorf("%w: %q", ErrMissingColumn, col)
		}
	}
	return index, nil
}

func buildRecord(fields []string, index map[string]int, lineNum int) (*entity.CustomerSales, error) {
	get := func(col string) string { return strings.TrimSpace(fields[index[col]]) }

	s2021, err := parseSales(get(ColSales2021))
	if err != nil {
		return nil, fmt.Errorf("%w: línea %d, %s=%q", ErrInvalidSales, lineNum, ColSales2021, get(ColSales2021))
	}
	s2022, err := parseSales(get(ColSales2022))
	if err != nil {
		return nil, fmt.Errorf("%w: línea %d, %s=%q", ErrInvalidSales, lineNum, ColSales2022, get(ColSales2022))
	}

	return &entity.CustomerSales{
		CustomerID:       get(ColCustomerID),
		FirstName:        get(ColFirstName),
		LastName:         get(ColLastName),
		Company:          get(ColCompany),
		City:             get(ColCity),
		Country:          get(ColCountry),
		Phone1:           get(ColPhone1),
		Phone2:           get(ColPhone2),
		Email:            get(ColEmail),
		SubscriptionDate: get(ColSubscriptionDate),
		Website:          get(ColWebsite),
		Sales2021:        s2021,
		Sales2022:        s2022,
	}, nil
}

// parseSales acepta enteros ("150") y decimales ("150.0", "99.9" -> 99); trunca hacia cero.
func parseSales(s string) (int64, error) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) || f >= 1<<63 || f < -(1<<63) {
		return 0, fmt.Errorf("fuera de rango: %q", s)
	}
	return int64(f), nil
}
