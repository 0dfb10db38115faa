package cnj

import (
	"errors"
	"fmt"
)

// DefaultTribunal is used for well-formed numbers whose court code is not in
// the table.
const DefaultTribunal = "api_publica_tjsp"

// ErrInvalidLength is returned when a number is not NumberLength digits long.
var ErrInvalidLength = errors.New("process number must have 20 digits")

// tribunals maps the TR segment of a CNJ number to its DataJud index alias.
var tribunals = map[string]string{
	"01": "api_publica_trf1",
	"02": "api_publica_trf2",
	"03": "api_publica_trf3",
	"04": "api_publica_trf4",
	"05": "api_publica_trf5",
	"06": "api_publica_trf6",
	"08": "api_publica_tjsp",
	"19": "api_publica_tjrj",
	"13": "api_publica_tjmg",
	"21": "api_publica_tjrs",
	"16": "api_publica_tjpr",
	"24": "api_publica_tjsc",
}

// CourtCode returns the two-digit TR segment of a normalized number.
// NNNNNNN DD AAAA J TR OOOO puts TR at offset 14; offset 12 would read the
// last two digits of the year.
func CourtCode(number string) (string, error) {
	if len(number) != NumberLength {
		return "", fmt.Errorf("%w: got %d", ErrInvalidLength, len(number))
	}
	return number[14:16], nil
}

// ResolveTribunal returns the DataJud alias for number. Unknown court codes
// fall back to DefaultTribunal; only a wrong length is an error.
func ResolveTribunal(number string) (string, error) {
	code, err := CourtCode(number)
	if err != nil {
		return "", err
	}

	if alias, ok := tribunals[code]; ok {
		return alias, nil
	}
	return DefaultTribunal, nil
}
