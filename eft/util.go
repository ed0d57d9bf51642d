package eft

import (
	"strconv"
	"strings"
)

func parseInt(s string) (int, error) {
	return strconv.Atoi(strings.TrimSpace(s))
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
