package criteria

import (
	"strings"

	"github.com/mateovilla/tradein-backend/pkg/db/models"
)

// BrandMatches reports whether a criterion's applicable_brands value covers
// the given brand. "All" matches everything; otherwise the brand must appear
// in the comma-separated list (substring match, case-insensitive), mirroring
// the query in ListForBrand.
func BrandMatches(applicableBrands, brand string) bool {
	if applicableBrands == models.BrandSentinelAll {
		return true
	}
	return strings.Contains(
		strings.ToLower(applicableBrands),
		strings.ToLower(strings.TrimSpace(brand)),
	)
}
