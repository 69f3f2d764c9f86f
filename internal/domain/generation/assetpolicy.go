package generation

import (
	"net/url"
	"strings"
)

// AssetPolicy decides which provider asset URLs may be fetched. Only https
// URLs whose host equals or is a subdomain of an allowed host pass.
type AssetPolicy struct {
	allowedHosts []string
}

func NewAssetPolicy(allowedHosts []string) *AssetPolicy {
	hosts := make([]string, 0, len(allowedHosts))
	for _, h := range allowedHosts {
		h = strings.ToLower(strings.Trim(strings.TrimSpace(h), "."))
		if h != "" {
			hosts = append(hosts, h)
		}
	}
	return &AssetPolicy{allowedHosts: hosts}
}

func (p *AssetPolicy) Allows(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Scheme != "https" || u.User != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	if host == "" {
		return false
	}
	for _, allowed := range p.allowedHosts {
		if host == allowed || strings.HasSuffix(host, "."+allowed) {
			return true
		}
	}
	return false
}

// StoragePath is the object key for a generated video.
func StoragePath(userID, projectID, taskID string) string {
	return userID + "/" + projectID + "/" + taskID + ".mp4"
}
