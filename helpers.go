package homepage

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"path"
	"strings"
)

// BuildURL joins a base URL with a site path. The root keeps its trailing
// slash; page paths end in their file name.
func BuildURL(base string, sitePath ...string) string {
	u, err := url.Parse(base)
	if err != nil {
		return base
	}
	joined := path.Join(append([]string{"/", u.Path}, sitePath...)...)
	if joined == "/" || (len(sitePath) == 0 && !strings.HasSuffix(joined, "/")) {
		joined = strings.TrimSuffix(joined, "/") + "/"
	}
	u.Path = joined
	return u.String()
}

// contentHash is the manifest fingerprint of an output file.
func contentHash(b []byte) string {
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}
