package importer

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sourceEncoding resuelve el nombre configurado (IMPORT_ENCODING) a un decodificador.
// UTF-8 descarta el BOM inicial si existe.
func sourceEncoding(name string) (encoding.Encoding, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "utf-8", "utf8":
		return unicode.UTF8BOM, nil
	case "latin1", "latin-1", "iso-8859-1", "iso8859-1":
		return charmap.ISO8859_1, nil
	case "windows-1252", "cp1252":
		return charmap.Windows1252, nil
	default:
		return nil, fmt.Errorf("codificación no soportada: %q", name)
	}
}

// openSource abre path y lo decodifica a UTF-8.
func openSource(path, enc string) (io.ReadCloser, error) {
	e, err := sourceEncoding(enc)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrSourceNotFound, path)
		}
		return nil, fmt.Errorf("abrir archivo de ventas: %w", err)
	}
	return struct {
		io.Reader
		io.Closer
	}{transform.NewReader(f, e.NewDecoder()), f}, nil
}
