package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/google/go-github/v57/github"
	"github.com/hashicorp/go-hclog"
	"golang.org/x/oauth2"

	"github.com/jmylchreest/irodori/internal/compression"
	"github.com/jmylchreest/irodori/internal/security"
	"github.com/jmylchreest/irodori/pkg/plugin"
)

// maxProviderSize caps how large a downloaded provider binary may be,
// before and after decompression.
const maxProviderSize = 100 * 1024 * 1024

// archAliases maps GOARCH values to the names release assets commonly
// use for them.
var archAliases = map[string][]string{
	"amd64": {"amd64", "x86_64", "x64"},
	"arm64": {"arm64", "aarch64"},
	"386":   {"386", "i386"},
}

// Installer downloads provider binaries from GitHub releases.
type Installer struct {
	client  *github.Client
	http    *http.Client
	log     hclog.Logger
	destDir string
}

// NewInstaller creates an installer that writes binaries into destDir.
// A GITHUB_TOKEN in the environment raises the API rate limit.
func NewInstaller(destDir string, log hclog.Logger) *Installer {
	if log == nil {
		log = hclog.NewNullLogger()
	}

	var httpClient *http.Client
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	return &Installer{
		client:  github.NewClient(httpClient),
		http:    &http.Client{Timeout: 60 * time.Second},
		log:     log,
		destDir: destDir,
	}
}

// ParseRepoSpec parses "owner/repo" or "owner/repo@version". The
// version defaults to "latest".
func ParseRepoSpec(spec string) (owner, repo, version string, err error) {
	name := spec
	version = "latest"
	if at := strings.LastIndex(name, "@"); at >= 0 {
		version = name[at+1:]
		name = name[:at]
		if version == "" {
			return "", "", "", fmt.Errorf("invalid provider spec %q: empty version", spec)
		}
	}

	parts := strings.Split(name, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "", fmt.Errorf("invalid provider spec %q: expected owner/repo[@version]", spec)
	}
	return parts[0], parts[1], version, nil
}

// Install downloads the release asset matching the running platform and
// installs it as an executable provider. It returns the installed path.
func (ins *Installer) Install(ctx context.Context, spec string) (string, error) {
	owner, repo, version, err := ParseRepoSpec(spec)
	if err != nil {
		return "", err
	}

	release, err := ins.resolveRelease(ctx, owner, repo, version)
	if err != nil {
		return "", err
	}

	asset := pickAsset(release.Assets, runtime.GOOS, runtime.GOARCH)
	if asset == nil {
		return "", fmt.Errorf("release %s of %s/%s has no asset for %s/%s",
			release.GetTagName(), owner, repo, runtime.GOOS, runtime.GOARCH)
	}

	ins.log.Debug("downloading provider asset",
		"asset", asset.GetName(), "release", release.GetTagName())

	data, err := ins.download(ctx, asset.GetBrowserDownloadURL())
	if err != nil {
		return "", err
	}

	name := repo
	if !strings.HasPrefix(name, ExternalPrefix) {
		name = ExternalPrefix + name
	}

	binary, member, err := compression.ExtractBinary(asset.GetName(), data, repo, maxProviderSize)
	if err != nil {
		return "", err
	}
	ins.log.Debug("extracted provider binary", "member", member)

	if err := os.MkdirAll(ins.destDir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create provider directory: %w", err)
	}
	dest := filepath.Join(ins.destDir, name)
	if err := writeExecutable(dest, binary); err != nil {
		return "", err
	}

	// Probe the installed binary before declaring success.
	info, err := QueryInfo(dest)
	if err != nil {
		_ = os.Remove(dest)
		return "", fmt.Errorf("installed provider failed its probe: %w", err)
	}
	if info.ProtocolVersion != "" {
		compatible, err := plugin.IsCompatible(info.ProtocolVersion)
		if err != nil || !compatible {
			_ = os.Remove(dest)
			errMsg := "unknown error"
			if err != nil {
				errMsg = err.Error()
			}
			return "", fmt.Errorf(
				"provider %q protocol version %s is incompatible with host version %s: %s",
				info.Name, info.ProtocolVersion, plugin.ProtocolVersion, errMsg,
			)
		}
	}

	ins.log.Info("installed provider",
		"name", info.Name, "path", dest, "release", release.GetTagName())
	return dest, nil
}

// resolveRelease resolves a version specifier to a concrete release.
func (ins *Installer) resolveRelease(ctx context.Context, owner, repo, version string) (*github.RepositoryRelease, error) {
	if version == "latest" {
		release, _, err := ins.client.Repositories.GetLatestRelease(ctx, owner, repo)
		if err != nil {
			return nil, fmt.Errorf("failed to get latest release: %w", err)
		}
		return release, nil
	}

	release, _, err := ins.client.Repositories.GetReleaseByTag(ctx, owner, repo, version)
	if err != nil {
		return nil, fmt.Errorf("failed to get release %s: %w", version, err)
	}
	return release, nil
}

// pickAsset returns the first asset whose name matches the platform, or
// nil when none does.
func pickAsset(assets []*github.ReleaseAsset, goos, goarch string) *github.ReleaseAsset {
	aliases, ok := archAliases[goarch]
	if !ok {
		aliases = []string{goarch}
	}

	for _, asset := range assets {
		name := strings.ToLower(asset.GetName())
		if !strings.Contains(name, goos) {
			continue
		}
		for _, arch := range aliases {
			if strings.Contains(name, arch) {
				return asset
			}
		}
	}
	return nil
}

func (ins *Installer) download(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build download request: %w", err)
	}

	resp, err := ins.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download asset: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to download asset: HTTP %d", resp.StatusCode)
	}

	data, err := io.ReadAll(security.NewLimitedReader(resp.Body, maxProviderSize))
	if err != nil {
		return nil, fmt.Errorf("failed to read asset: %w", err)
	}
	return data, nil
}

// writeExecutable writes data to path and marks it executable.
func writeExecutable(path string, data []byte) error {
	out, err := os.Create(path) // #nosec G304 - destination inside the provider directory
	if err != nil {
		return fmt.Errorf("failed to create provider file: %w", err)
	}

	_, writeErr := out.Write(data)
	closeErr := out.Close()

	if writeErr != nil {
		return fmt.Errorf("failed to write provider: %w", writeErr)
	}
	if closeErr != nil {
		return fmt.Errorf("failed to close provider file: %w", closeErr)
	}

	if err := os.Chmod(path, 0o755); err != nil { // #nosec G302 - provider executable needs execute permission
		return fmt.Errorf("failed to make provider executable: %w", err)
	}
	return nil
}
