package parser

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

func parsePlainText(raw []byte, filename string) (string, error) {
	if !utf8.Valid(raw) {
		return "", fmt.Errorf("file is not valid UTF-8 text: %s", filename)
	}
	return strings.TrimSpace(string(raw)), nil
}
