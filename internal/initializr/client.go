package initializr

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/bootstitch-labs/bootstitch/internal/params"
)

// DefaultBaseURL is the public Spring Initializr instance.
const DefaultBaseURL = "https://start.spring.io"

// defaultDependencies are requested with every skeleton; "web" pulls in
// the embedded servlet container that serves the copied frontend assets.
var defaultDependencies = []string{"web"}

// Client talks to an Initializr-compatible skeleton service.
type Client struct {
	baseURL      string
	httpClient   *http.Client
	progress     io.Writer
	dependencies []string
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client (useful for testing).
func WithHTTPClient(c *http.Client) Option {
	return func(cl *Client) { cl.httpClient = c }
}

// WithProgress sets the writer for download progress output.
func WithProgress(w io.Writer) Option {
	return func(cl *Client) { cl.progress = w }
}

// WithDependencies overrides the starter dependencies requested from the service.
func WithDependencies(deps ...string) Option {
	return func(cl *Client) { cl.dependencies = deps }
}

// New creates a Client for the given service base URL.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:      strings.TrimRight(baseURL, "/"),
		httpClient:   http.DefaultClient,
		progress:     os.Stderr,
		dependencies: defaultDependencies,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// starterURL builds the starter.zip request URL for the given parameters.
func (c *Client) starterURL(p *params.Params) string {
	q := url.Values{}
	q.Set("type", "maven-project")
	q.Set("language", "java")
	q.Set("groupId", p.GroupID)
	q.Set("artifactId", p.ArtifactID)
	q.Set("name", p.ArtifactID)
	q.Set("packageName", p.GroupID+"."+packageSegment(p.ArtifactID))
	q.Set("packaging", p.Packaging)
	q.Set("javaVersion", p.JavaVersion)
	q.Set("bootVersion", p.BootVersion)
	q.Set("dependencies", strings.Join(c.dependencies, ","))
	return c.baseURL + "/starter.zip?" + q.Encode()
}

// packageSegment turns an artifact id into a legal Java package segment.
func packageSegment(artifactID string) string {
	return strings.ReplaceAll(artifactID, "-", "")
}

// FetchSkeleton downloads the backend skeleton for p and extracts it into
// destDir. The extracted tree contains the ready-to-merge build descriptor
// at destDir/pom.xml.
func (c *Client) FetchSkeleton(ctx context.Context, p *params.Params, destDir string) error {
	reqURL := c.starterURL(p)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating skeleton request: %w", err)
	}
	req.Header.Set("User-Agent", "bootstitch")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("fetching backend skeleton: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("skeleton service returned status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	archive, err := c.saveArchive(resp)
	if err != nil {
		return err
	}
	defer os.Remove(archive)

	if err := extractZip(archive, destDir); err != nil {
		return fmt.Errorf("extracting skeleton: %w", err)
	}

	// The merge stage depends on the descriptor being where the build
	// tool expects it.
	if _, err := os.Stat(filepath.Join(destDir, "pom.xml")); err != nil {
		return fmt.Errorf("skeleton archive did not contain a build descriptor: %w", err)
	}
	return nil
}

// saveArchive streams the response body to a temp file, reporting
// percentage progress when the content length is known.
func (c *Client) saveArchive(resp *http.Response) (string, error) {
	f, err := os.CreateTemp("", "bootstitch-starter-*.zip")
	if err != nil {
		return "", fmt.Errorf("creating download file: %w", err)
	}
	defer f.Close()

	total := resp.ContentLength
	var downloaded int64
	lastPercent := -1

	buf := make([]byte, 32*1024)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			if _, writeErr := f.Write(buf[:n]); writeErr != nil {
				return "", fmt.Errorf("writing download: %w", writeErr)
			}
			downloaded += int64(n)
			if total > 0 {
				percent := int(downloaded * 100 / total)
				if percent != lastPercent {
					fmt.Fprintf(c.progress, "\rDownloading skeleton... %d%%", percent)
					lastPercent = percent
				}
			}
		}
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			return "", fmt.Errorf("reading download stream: %w", readErr)
		}
	}
	if total > 0 {
		fmt.Fprintln(c.progress)
	}

	return f.Name(), nil
}

// metadata is the subset of the Initializr metadata document we read.
type metadata struct {
	BootVersion struct {
		Values []struct {
			ID string `json:"id"`
		} `json:"values"`
	} `json:"bootVersion"`
}

// SupportedBootVersions queries the service metadata for the Spring Boot
// versions it can generate. Callers treat an error as "unknown" rather
// than fatal; the starter request itself is the authority.
func (c *Client) SupportedBootVersions(ctx context.Context) ([]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating metadata request: %w", err)
	}
	req.Header.Set("Accept", "application/vnd.initializr.v2.2+json")
	req.Header.Set("User-Agent", "bootstitch")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching service metadata: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("metadata request returned status %d", resp.StatusCode)
	}

	var meta metadata
	if err := json.NewDecoder(resp.Body).Decode(&meta); err != nil {
		return nil, fmt.Errorf("parsing service metadata: %w", err)
	}

	versions := make([]string, 0, len(meta.BootVersion.Values))
	for _, v := range meta.BootVersion.Values {
		versions = append(versions, v.ID)
	}
	return versions, nil
}
