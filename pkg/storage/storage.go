// Package storage follows the object store's path and public URL conventions.
// Uploads are handled by the backend; this package only names and resolves objects.
package storage

import (
	"fmt"
	"net/url"
	"path"
	"strings"
)

// Purposes used under a restaurant's prefix.
const (
	PurposeLogo     = "logo"
	PurposeCover    = "cover"
	PurposeMenuItem = "menu-items"
)

// ObjectPath builds restaurants/{restaurant_id}/{purpose}/{entity_id}/{filename}.
func ObjectPath(restaurantID uint, purpose string, entityID uint, filename string) string {
	return fmt.Sprintf("restaurants/%d/%s/%d/%s", restaurantID, purpose, entityID, path.Base(filename))
}

type URLResolver struct {
	baseURL string
	bucket  string
}

func NewURLResolver(baseURL, bucket string) *URLResolver {
	return &URLResolver{baseURL: strings.TrimRight(baseURL, "/"), bucket: strings.Trim(bucket, "/")}
}

// Resolve turns a stored asset reference into a browser URL. Absolute http(s)
// URLs pass through; anything else is read as an object path in the bucket.
func (r *URLResolver) Resolve(ref string) string {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return ""
	}
	if u, err := url.Parse(ref); err == nil && (u.Scheme == "http" || u.Scheme == "https") && u.Host != "" {
		return ref
	}
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", r.baseURL, r.bucket, strings.TrimLeft(ref, "/"))
}
