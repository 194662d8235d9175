package internal

import (
	"fmt"
	"net/url"
	"strings"
)

func StringContains(s []string, e string) bool {
	for _, item := range s {
		if item == e {
			return true
		}
	}
	return false
}

// RemovePassword masks the password of a URL-like address so it can be logged.
func RemovePassword(uri string) string {
	if u, err := url.Parse(uri); err == nil && u.User != nil {
		if _, ok := u.User.Password(); ok {
			return strings.Replace(uri, u.User.String(), u.User.Username()+":****", 1)
		}
		return uri
	}
	// user:pass@host without a scheme
	at := strings.LastIndex(uri, "@")
	colon := strings.Index(uri, ":")
	if at > 0 && colon > 0 && colon < at {
		return uri[:colon+1] + "****" + uri[at:]
	}
	return uri
}

// FormatBytes renders n with a binary unit, keeping the exact count for larger values.
func FormatBytes(n uint64) string {
	if n < 1024 {
		return fmt.Sprintf("%d Bytes", n)
	}
	units := []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}
	v := float64(n)
	i := -1
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	return fmt.Sprintf("%.2f %s (%d Bytes)", v, units[i], n)
}
