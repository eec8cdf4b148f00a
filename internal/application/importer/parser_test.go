package importer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testHeader = "Index;Customer Id;First Name;Last Name;Company;City;Country;Phone 1;Phone 2;Email;Subscription Date;Website;SALES 2021;SALES 2022"

func TestParse_FilasValidas(t *testing.T) {
	src := testHeader + "\n" +
		"1;C001;John;Doe;Acme;Austin;USA;555-0001;555-1001;john@acme.test;2021-01-10;https://acme.test;100;150\r\n" +
		"2;C002;Jane;Roe;Beta;Boston;Canada;555-0002;555-1002;jane@beta.test;2020-05-02;https://beta.test;200;50\n"

	res, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	assert.Zero(t, res.Skipped)

	john := res.Records[0]
	assert.Equal(t, "C001", john.CustomerID)
	assert.Equal(t, "John", john.FirstName)
	assert.Equal(t, "Doe", john.LastName)
	assert.Equal(t, "555-1001", john.Phone2)
	assert.Equal(t, "2021-01-10", john.SubscriptionDate)
	assert.Equal(t, "https://acme.test", john.Website)
	assert.Equal(t, int64(100), john.Sales2021)
	assert.Equal(t, int64(150), john.Sales2022)
	assert.Zero(t, john.ID)
	assert.Equal(t, int64(50), res.Records[1].Sales2022)
}

func TestParse_DescartaLineasMalFormadas(t *testing.T) {
	src := testHeader + "\n" +
		"1;C001;John;Doe;Acme;Austin;USA;1;2;j@a.test;2021-01-10;https://a.test;100;150\n" +
		"2;C002;Jane;Roe;Beta;Boston\n" +
		"\n" +
		"3;C003;Bob;Doe;Acme;Austin;USA;1;2;b@a.test;2021-01-10;https://a.test;1;2;extra\n" +
		"4;C004;Ann;Lee;Core;Quito;Ecuador;1;2;a@c.test;2022-01-01;https://c.test;7;8\n"

	res, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, res.Records, 2)
	assert.Equal(t, 2, res.Skipped)
	assert.Equal(t, "C004", res.Records[1].CustomerID)
}

func TestParse_LineaMuyLargaSeDescarta(t *testing.T) {
	long := "2;C002;" + strings.Repeat("x", 2<<20) + "\n"
	src := testHeader + "\n" +
		long +
		"3;C003;Bob;Doe;Acme;Austin;USA;1;2;b@a.test;2021-01-10;https://a.test;1;2\n"

	res, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Records, 1)
	assert.Equal(t, "C003", res.Records[0].CustomerID)
}

func TestParse_UltimaLineaSinSaltoDeLinea(t *testing.T) {
	src := testHeader + "\n" +
		"3;C003;Bob;Doe;Acme;Austin;USA;1;2;b@a.test;2021-01-10;https://a.test;1;2"

	res, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, int64(2), res.Records[0].Sales2022)
}

func TestParse_ComillasSonLiterales(t *testing.T) {
	src := testHeader + "\n" +
		`1;C001;"John;Doe";Acme;Austin;USA;1;2;j@a.test;2021-01-10;https://a.test;100;150` + "\n" +
		`2;C002;"Jane";O"Roe;Beta;Boston;Canada;1;2;j@b.test;2020-05-02;https://b.test;200;50` + "\n"

	res, err := Parse(strings.NewReader(src))
	require.NoError(t, err)
	// La primera línea tiene un ';' dentro de comillas: 15 campos, se descarta.
	assert.Equal(t, 1, res.Skipped)
	require.Len(t, res.Records, 1)
	assert.Equal(t, `"Jane"`, res.Records[0].FirstName)
	assert.Equal(t, `O"Roe`, res.Records[0].LastName)
}

func TestParse_VentaNoNumericaAbortaTodo(t *testing.T) {
	src := testHeader + "\n" +
		"1;C001;John;Doe;Acme;Austin;USA;1;2;j@a.test;2021-01-10;https://a.test;100;150\n" +
		"2;C002;Jane;Roe;Beta;Boston;Canada;1;2;j@b.test;2020-05-02;https://b.test;mucho;50\n"

	res, err := Parse(strings.NewReader(src))
	assert.Nil(t, res)
	require.ErrorIs(t, err, ErrInvalidSales)
	assert.Contains(t, err.Error(), "línea 3")
	assert.Contains(t, err.Error(), "SALES 2021")
}

func TestParse_VentaVaciaAbortaTodo(t *testing.T) {
	src := testHeader + "\n" +
		"1;C001;John;Doe;Acme;Austin;USA;1;2;j@a.test;2021-01-10;https://a.test;100;\n"

	_, err := Parse(strings.NewReader(src))
	assert.ErrorIs(t, err, ErrInvalidSales)
}

func TestParse_ColumnaFaltante(t *testing.T) {
	header := strings.Replace(testHeader, ";SALES 2022", "", 1)

	_, err := Parse(strings.NewReader(header + "\n"))
	require.ErrorIs(t, err, ErrMissingColumn)
	assert.Contains(t, err.Error(), "SALES 2022")
}

func TestParse_ArchivoVacio(t *testing.T) {
	_, err := Parse(strings.NewReader("\n\n"))
	assert.ErrorIs(t, err, ErrEmptySource)
}

func TestParse_SoloEncabezado(t *testing.T) {
	res, err := Parse(strings.NewReader(testHeader))
	require.NoError(t, err)
	assert.Empty(t, res.Records)
}

func TestParseSales(t *testing.T) {
	cases := map[string]int64{
		"150":   150,
		"150.0": 150,
		"99.9":  99,
		"-12.5": -12,
		"0":     0,
	}
	for in, want := range cases {
		got, err := parseSales(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	for _, bad := range []string{"", "abc", " 7 ", "NaN", "Inf", "1e30", "9223372036854775808", "9.3e18"} {
		_, err := parseSales(bad)
		assert.Error(t, err, bad)
	}
}
