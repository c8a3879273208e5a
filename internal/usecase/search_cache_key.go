package usecase

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"
	"strconv"
	"strings"
)

const discoverKeyPrefix = "discover:search:"

type discoverCacheKeyInput struct {
	Viewer    string   `json:"viewer"`
	Query     string   `json:"q"`
	Skills    []string `json:"skills"`
	Genres    []string `json:"genres"`
	Location  string   `json:"location"`
	Verified  string   `json:"verified"`
	MinRating string   `json:"min_rating"`
}

// normalizeSearchValue matches how the query engine reads free text: case
// and surrounding blanks are ignored, inner spacing is significant.
func normalizeSearchValue(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func normalizeTags(in []string) []string {
	if len(in) == 0 {
		return nil
	}
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// normalizeDiscoverParams is applied once per search; both the cache key and
// the filter see its result.
func normalizeDiscoverParams(p DiscoverParams) DiscoverParams {
	p.Query = normalizeSearchValue(p.Query)
	p.Location = normalizeSearchValue(p.Location)
	p.Skills = normalizeTags(p.Skills)
	p.Genres = normalizeTags(p.Genres)
	return p
}

// DiscoverCacheKey hashes the normalized search under an invalidation
// generation. Tag order does not change the result set, so tags are sorted;
// tag case does, so it is kept.
func DiscoverCacheKey(generation uint64, viewerID string, params DiscoverParams) string {
	params = normalizeDiscoverParams(params)
	sorted := func(in []string) []string {
		out := append([]string{}, in...)
		sort.Strings(out)
		return out
	}

	in := discoverCacheKeyInput{
		Viewer:   viewerID,
		Query:    params.Query,
		Skills:   sorted(params.Skills),
		Genres:   sorted(params.Genres),
		Location: params.Location,
	}
	if params.Verified != nil {
		in.Verified = strconv.FormatBool(*params.Verified)
	}
	if params.MinRating != nil {
		in.MinRating = strconv.FormatFloat(*params.MinRating, 'f', -1, 64)
	}

	b, _ := json.Marshal(in)
	sum := sha256.Sum256(b)
	return discoverKeyPrefix + strconv.FormatUint(generation, 10) + ":" + hex.EncodeToString(sum[:])
}

// DiscoverCachePattern matches every cached discover result.
func DiscoverCachePattern() string {
	return discoverKeyPrefix + "*"
}
