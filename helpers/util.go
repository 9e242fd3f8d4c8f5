package helpers

import (
	"errors"
	"strconv"
	"strings"
)

func GetSplitPart(target string, separate string, index int) (string, error) {
	parts := strings.Split(target, separate)
	if index >= len(parts) {
		return "", errors.New("index out of range")
	}
	return parts[index], nil
}

// PageURL returns the URL for the given result page. Page 1 is always the
// bare URL; later pages get a page query parameter appended.
func PageURL(baseURL string, page int) string {
	if page <= 1 {
		return baseURL
	}
	sep := "?"
	if strings.Contains(baseURL, "?") {
		sep = "&"
	}
	return baseURL + sep + "page=" + strconv.Itoa(page)
}
