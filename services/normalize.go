package services

import (
	"strings"

	"villa-client/models"
	"villa-client/utils"
)

// ImageResolver turns the API's mixed image references into displayable URLs.
// Absolute URLs pass through, server-relative paths get the API base
// prepended, and missing paths fall back to the placeholder.
type ImageResolver struct {
	baseURL     string
	placeholder string
}

// NewImageResolver creates an ImageResolver for the given API base URL.
func NewImageResolver(baseURL, placeholder string) *ImageResolver {
	return &ImageResolver{
		baseURL:     strings.TrimRight(baseURL, "/"),
		placeholder: placeholder,
	}
}

// Resolve maps one stored image reference to a displayable URL.
func (r *ImageResolver) Resolve(path string) string {
	path = strings.TrimSpace(path)
	if path == "" {
		return r.placeholder
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return r.baseURL + path
}

// ResolveAll maps a list of stored references, dropping blanks rather than
// padding the result with placeholders.
func (r *ImageResolver) ResolveAll(paths models.StringList) []string {
	out := make([]string, 0, len(paths))
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		out = append(out, r.Resolve(p))
	}
	return out
}

// ApprovedOnly filters a villa list down to publicly visible records.
// Non-approved villas never render in a public view, regardless of what the
// server returned.
func ApprovedOnly(villas []models.Villa, logger *utils.Logger) []models.Villa {
	out := make([]models.Villa, 0, len(villas))
	for _, v := range villas {
		if v.Status != models.VillaApproved {
			logger.Debug("[listing] Hiding non-approved villa %d (%s)", v.ID, v.Status)
			continue
		}
		out = append(out, v)
	}
	return out
}
