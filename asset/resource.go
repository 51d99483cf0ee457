package asset

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// Resource is a readable scene stream backed by a local file, a remote
// http/https URL or an in-memory reader.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Returns the path or URL of this resource.
func (r *Resource) Path() string {
	return r.url.String()
}

// Returns true if the resource is streamed over http/https.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// Wrap an in-memory reader into a resource named name. Relative resources
// opened against it resolve against name.
func NewResourceFromReader(name string, reader io.Reader) *Resource {
	return &Resource{
		ReadCloser: io.NopCloser(reader),
		url:        &url.URL{Path: filepath.ToSlash(name)},
	}
}

// Open a resource. Relative paths are resolved against the location of relTo
// when it is not nil, so a remote resource can reference other files that
// live next to it on the same server.
//
// The caller must close the returned resource.
func NewResource(pathToResource string, relTo *Resource) (*Resource, error) {
	resURL, err := url.Parse(strings.Replace(pathToResource, `\`, `/`, -1))
	if err != nil {
		return nil, err
	}

	if resURL.Scheme == "" && relTo != nil && !filepath.IsAbs(resURL.Path) {
		if resURL, err = resolveRelative(resURL.Path, relTo); err != nil {
			return nil, err
		}
	}

	var reader io.ReadCloser
	switch resURL.Scheme {
	case "":
		if reader, err = os.Open(filepath.Clean(filepath.FromSlash(resURL.Path))); err != nil {
			return nil, err
		}
	case "http", "https":
		resp, err := http.Get(resURL.String())
		if err != nil {
			return nil, fmt.Errorf("resource: could not fetch '%s': %s", resURL.String(), err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("resource: could not fetch '%s': status %d", resURL.String(), resp.StatusCode)
		}
		reader = resp.Body
	default:
		return nil, fmt.Errorf("resource: unsupported scheme '%s'", resURL.Scheme)
	}

	return &Resource{ReadCloser: reader, url: resURL}, nil
}

func resolveRelative(relPath string, relTo *Resource) (*url.URL, error) {
	if relTo.IsRemote() {
		resolved := *relTo.url
		resolved.Path = path.Join(path.Dir(relTo.url.Path), relPath)
		resolved.RawQuery = ""
		return &resolved, nil
	}

	parentDir, err := filepath.Abs(filepath.Dir(filepath.FromSlash(relTo.url.Path)))
	if err != nil {
		return nil, fmt.Errorf("resource: could not detect abs path for %s; %s", relTo.Path(), err.Error())
	}
	return &url.URL{Path: filepath.ToSlash(filepath.Join(parentDir, relPath))}, nil
}
