package site

import (
	"net"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
)

// validateSocial checks that every social link is an absolute URI, that the
// email platform uses mailto and that host names are valid IDNA labels.
func validateSocial(links map[string]string) error {
	for _, platform := range sortedKeys(links) {
		raw := links[platform]
		if strings.TrimSpace(platform) == "" {
			return invalidSocialError(platform, raw, "platform name is empty")
		}
		u, err := url.Parse(strings.TrimSpace(raw))
		if err != nil {
			return invalidSocialError(platform, raw, err.Error())
		}
		if u.Scheme == "" {
			return invalidSocialError(platform, raw, "URI must be absolute")
		}
		if strings.EqualFold(platform, "email") && u.Scheme != "mailto" {
			return invalidSocialError(platform, raw, "email links must use the mailto: scheme")
		}
		if u.Scheme == "mailto" && u.Opaque == "" {
			return invalidSocialError(platform, raw, "mailto link has no address")
		}
		if host := linkHost(u); host != "" {
			if err := checkHost(host); err != nil {
				return invalidSocialError(platform, raw, "invalid host: "+err.Error())
			}
		}
	}
	return nil
}

// linkHost returns the host part of a link. For mailto links it is the
// domain of the address.
func linkHost(u *url.URL) string {
	if u.Scheme != "mailto" {
		return u.Hostname()
	}
	addr, _, _ := strings.Cut(u.Opaque, "?")
	if i := strings.LastIndex(addr, "@"); i >= 0 {
		return addr[i+1:]
	}
	return ""
}

func checkHost(host string) error {
	if net.ParseIP(host) != nil {
		return nil
	}
	_, err := idna.Lookup.ToASCII(host)
	return err
}
