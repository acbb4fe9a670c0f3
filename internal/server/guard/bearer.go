package guard

import (
	"strings"

	"github.com/dmitrijs2005/gophauth/internal/common"
)

// ParseBearer extracts the token from an "authorization" header value.
// The scheme is matched case-insensitively; an empty result means no
// usable token was presented.
func ParseBearer(header string) string {
	header = strings.TrimSpace(header)
	n := len(common.BearerPrefix)
	if len(header) <= n || !strings.EqualFold(header[:n], common.BearerPrefix) {
		return ""
	}
	return strings.TrimSpace(header[n:])
}
