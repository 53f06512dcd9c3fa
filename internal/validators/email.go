package validators

import (
	"net"
	"strings"
)

// IsEmailDomainValid reports whether the address's domain is resolvable:
// an MX record, or any host address for domains without mail routing.
// Gin's binding already checks the address shape; this catches typo'd
// domains at registration time.
func IsEmailDomainValid(email string) bool {
	at := strings.LastIndex(email, "@")
	if at < 0 || at == len(email)-1 {
		return false
	}

	host := email[at+1:]

	if mx, err := net.LookupMX(host); err == nil && len(mx) > 0 {
		return true
	}

	ips, err := net.LookupIP(host)
	return err == nil && len(ips) > 0
}
