package blocklist

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	logpkg "github.com/mohe22/ads-blocker/internal/dns/common/log"
	"github.com/mohe22/ads-blocker/internal/dns/common/utils"
	"github.com/mohe22/ads-blocker/internal/dns/dnserr"
	"github.com/mohe22/ads-blocker/internal/dns/domain"
	"github.com/mohe22/ads-blocker/internal/dns/repos/blocklist/parsers"
)

// LoadFiles reads every path in order, parses it with the hosts-file parser
// when its base name contains "hosts" (case-insensitive), and the plain
// suffix-list parser otherwise, and returns the concatenated,
// still-ordered rule set.
//
// A path that cannot be opened, parsed, or closed stops the walk right
// there, but every rule already parsed from earlier paths is still
// returned alongside the wrapped error — mirroring the original proxy's
// loadBlocklist, which inserts each file's lines into its blocklist set
// as it goes, so a later missing file never undoes what already loaded.
// The caller decides whether a non-empty partial result is acceptable.
// When every path loads but together they yield no rules, LoadFiles
// returns nil with BLOCKER_EMPTY.
func LoadFiles(paths []string, logger logpkg.Logger, now time.Time) ([]domain.BlockRule, error) {
	var rules []domain.BlockRule

	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return rules, dnserr.Wrap(dnserr.BlockerFileNotFound, "blocklist: cannot open "+path, err)
		}

		var (
			parsed []domain.BlockRule
			perr   error
		)
		if looksLikeHostsFile(path) {
			parsed, perr = parsers.ParseHostsFile(f, path, logger, now)
		} else {
			parsed, perr = parsers.ParsePlainList(f, path, logger, now)
		}
		closeErr := f.Close()
		if perr != nil {
			return rules, dnserr.Wrap(dnserr.BlockerParseError, "blocklist: parse failed for "+path, perr)
		}
		if closeErr != nil {
			return rules, dnserr.Wrap(dnserr.BlockerParseError, "blocklist: close failed for "+path, closeErr)
		}

		rules = append(rules, parsed...)
		logger.Info(map[string]any{"path": path, "rules": len(parsed)}, "blocklist_source_loaded")
	}

	if len(rules) == 0 {
		return nil, dnserr.New(dnserr.BlockerEmpty, "blocklist: no rules loaded")
	}

	logger.Info(map[string]any{
		"total":        len(rules),
		"apex_domains": countDistinctApexDomains(rules),
	}, "blocklist_loaded")
	return rules, nil
}

// countDistinctApexDomains reports how many distinct registrable domains
// (eTLD+1) the loaded rules span, useful for spotting a blocklist source
// dominated by a single provider's subdomains.
func countDistinctApexDomains(rules []domain.BlockRule) int {
	seen := make(map[string]struct{}, len(rules))
	for _, r := range rules {
		seen[utils.GetApexDomain(r.Name)] = struct{}{}
	}
	return len(seen)
}

func looksLikeHostsFile(path string) bool {
	base := strings.ToLower(filepath.Base(path))
	return strings.Contains(base, "hosts")
}
